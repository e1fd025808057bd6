package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// identifier validation: allow simple SQL identifiers only (prevents injection via table/column names).
var (
	identRe       = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reservedWords = map[string]struct{}{
		"add": {}, "all": {}, "alter": {}, "and": {}, "any": {}, "as": {},
		"asc": {}, "between": {}, "by": {}, "case": {}, "check": {},
		"column": {}, "constraint": {}, "create": {}, "cross": {}, "current_date": {},
		"current_time": {}, "current_timestamp": {}, "database": {}, "default": {}, "delete": {},
		"desc": {}, "distinct": {}, "do": {}, "drop": {}, "else": {},
		"end": {}, "except": {}, "exists": {}, "false": {}, "for": {},
		"foreign": {}, "from": {}, "full": {}, "grant": {}, "group": {},
		"having": {}, "in": {}, "index": {}, "inner": {}, "insert": {},
		"intersect": {}, "into": {}, "is": {}, "join": {}, "key": {},
		"left": {}, "like": {}, "limit": {}, "natural": {}, "not": {},
		"null": {}, "offset": {}, "on": {}, "or": {}, "order": {},
		"outer": {}, "primary": {}, "references": {}, "returning": {}, "revoke": {},
		"right": {}, "schema": {}, "select": {}, "set": {}, "table": {},
		"then": {}, "to": {}, "true": {}, "truncate": {}, "union": {},
		"unique": {}, "update": {}, "user": {}, "using": {}, "values": {},
		"view": {}, "when": {}, "where": {}, "with": {},
	}
)

func IsValidIdentifier(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if !identRe.MatchString(s) {
		return false
	}
	if _, ok := reservedWords[strings.ToLower(s)]; ok {
		return false
	}
	return true
}

// ValidateRunConfig checks the run configuration before any file is read.
func (v *Validator) ValidateRunConfig(cfg *domain.RunConfig) error {
	if strings.TrimSpace(cfg.InputPath) == "" {
		return errors.New("input path is required")
	}
	if strings.TrimSpace(cfg.OutputPath) == "" {
		return errors.New("output path is required")
	}
	if cfg.Rows < 0 {
		return fmt.Errorf("%w: rows must be >= 0, got %d", domain.ErrInvalidRowCount, cfg.Rows)
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", cfg.Workers)
	}
	if cfg.BatchSize < 1 {
		return fmt.Errorf("batch size must be >= 1, got %d", cfg.BatchSize)
	}
	if cfg.Target != nil {
		if err := v.ValidateTarget(cfg.Target); err != nil {
			return fmt.Errorf("target validation failed: %w", err)
		}
	}
	return nil
}

func (v *Validator) ValidateTarget(t *domain.TargetConfig) error {
	if t.Kind == "" {
		return errors.New("target kind is required")
	}
	if t.DSN == "" {
		return errors.New("target dsn is required")
	}

	switch t.Kind {
	case domain.TargetKindSQLite, domain.TargetKindPostgres:
	default:
		return fmt.Errorf("unsupported target kind: %s", t.Kind)
	}

	return nil
}

// ValidateTableForTarget rejects table and column names that cannot be
// interpolated into SQL safely. CSV output has no such restriction.
func (v *Validator) ValidateTableForTarget(table *domain.Table) error {
	if !IsValidIdentifier(table.Name) {
		return fmt.Errorf("invalid table identifier: %s", table.Name)
	}

	columnNames := make(map[string]bool)
	for _, col := range table.Columns {
		name := col.Column.Name
		if !IsValidIdentifier(name) {
			return fmt.Errorf("invalid column identifier: %s", name)
		}
		key := strings.ToLower(name)
		if columnNames[key] {
			return fmt.Errorf("duplicate column name: %s", name)
		}
		columnNames[key] = true
	}

	return nil
}
