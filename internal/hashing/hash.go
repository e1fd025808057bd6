package hashing

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

// HashTable fingerprints a resolved table: its name, column order, type
// clauses and rule parameters.
func HashTable(table *domain.Table) (string, error) {
	data, err := json.Marshal(canonicalizeTable(table))
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:]), nil
}

func canonicalizeTable(table *domain.Table) map[string]interface{} {
	columns := make([]map[string]interface{}, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = map[string]interface{}{
			"name":        col.Column.Name,
			"type_clause": col.Column.TypeClause,
			"rule":        canonicalizeRule(col.Rule),
		}
	}

	return map[string]interface{}{
		"name":    table.Name,
		"columns": columns,
	}
}

func canonicalizeRule(rule domain.GenerationRule) map[string]interface{} {
	result := map[string]interface{}{
		"kind": rule.Kind,
	}
	switch rule.Kind {
	case domain.RuleInt:
		result["digits"] = rule.Digits
	case domain.RuleText:
		result["min_len"] = rule.MinLen
		result["max_len"] = rule.MaxLen
	case domain.RuleDateTime:
		result["start"] = rule.Start.UTC().Format(time.RFC3339Nano)
		result["end"] = rule.End.UTC().Format(time.RFC3339Nano)
	case domain.RuleDouble:
		result["min"] = rule.Min
		result["max"] = rule.Max
	}
	return result
}
