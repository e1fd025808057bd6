// Package ddl turns a loosely formatted CREATE TABLE statement into an
// ordered column schema.
package ddl

import (
	"regexp"
	"strings"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

var createTableRe = regexp.MustCompile(
	"(?is)\\bCREATE\\s+(?:TEMPORARY\\s+)?TABLE\\s+(?:IF\\s+NOT\\s+EXISTS\\s+)?" +
		"(`[^`]+`|\"[^\"]+\"|\\[[^\\]]+\\]|[\\w.$]+)\\s*\\(")

// keywords that open a table-level clause declaring no column
var directiveKeywords = map[string]struct{}{
	"unique": {}, "key": {}, "index": {}, "foreign": {}, "check": {},
	"fulltext": {}, "spatial": {},
}

// Parse extracts the table name and the column descriptors, in declared
// order, from a flattened statement. Primary key and constraint clauses are
// dropped.
func Parse(statement string) (*domain.Schema, error) {
	loc := createTableRe.FindStringSubmatchIndex(statement)
	if loc == nil {
		return nil, &domain.ClauseError{
			Kind:   domain.ErrMalformedStatement,
			Reason: "no CREATE TABLE <name> (...) found",
		}
	}

	name := unquote(statement[loc[2]:loc[3]])
	open := loc[1] - 1
	end := matchingParen(statement, open)
	if end < 0 {
		return nil, &domain.ClauseError{
			Kind:   domain.ErrMalformedStatement,
			Reason: "unterminated column list",
			Clause: statement[open:],
		}
	}

	schema := &domain.Schema{TableName: name}
	for _, clause := range SplitClauses(statement[open+1 : end]) {
		col, isColumn, err := parseClause(clause)
		if err != nil {
			return nil, err
		}
		if isColumn {
			schema.Columns = append(schema.Columns, col)
		}
	}

	if len(schema.Columns) == 0 {
		return nil, &domain.ClauseError{
			Kind:   domain.ErrMalformedStatement,
			Reason: "table declares no columns",
			Clause: statement[open : end+1],
		}
	}

	return schema, nil
}

func parseClause(clause string) (domain.ColumnDescriptor, bool, error) {
	clause = strings.TrimSpace(clause)
	if IsDirective(clause) {
		return domain.ColumnDescriptor{}, false, nil
	}
	tokens := Fields(clause)
	if len(tokens) < 2 {
		return domain.ColumnDescriptor{}, false, &domain.ClauseError{
			Kind:   domain.ErrEmptyClause,
			Reason: "column declared without a type",
			Clause: clause,
		}
	}

	return domain.ColumnDescriptor{
		Name:       unquote(tokens[0]),
		TypeClause: joinTypeClause(tokens[1:]),
	}, true, nil
}

// IsDirective reports whether a clause declares a table-level key, index or
// constraint rather than a column. A column that happens to be named like a
// keyword (key int(3), check text) is not a directive: the keyword must be
// followed by a column list, e.g. KEY idx (a, b) or UNIQUE KEY (a).
func IsDirective(clause string) bool {
	tokens := Fields(clause)
	if len(tokens) == 0 {
		return false
	}
	first := strings.ToLower(tokens[0])
	if strings.Contains(first, "primary") || strings.Contains(first, "constraint") {
		return true
	}

	word, _, hasGroup := strings.Cut(first, "(")
	if _, ok := directiveKeywords[word]; !ok {
		return false
	}
	if hasGroup {
		return true
	}
	if len(tokens) == 1 {
		return false
	}

	second := strings.ToLower(tokens[1])
	if w, _, _ := strings.Cut(second, "("); w == "key" || w == "index" {
		return true
	}
	var group string
	switch {
	case strings.Contains(second, "("):
		group = second[strings.IndexByte(second, '('):]
	case len(tokens) > 2 && strings.HasPrefix(tokens[2], "("):
		group = tokens[2]
	default:
		return false
	}
	return !isTypeParams(group)
}

// isTypeParams reports whether a parenthesized group looks like type
// parameters, int(11) or decimal(10, 2) or enum('a'), rather than a column
// list.
func isTypeParams(group string) bool {
	s := strings.TrimSpace(strings.Trim(group, "()"))
	if s == "" {
		return false
	}
	if s[0] == '\'' || s[0] == '"' {
		return true
	}
	for _, c := range s {
		if (c < '0' || c > '9') && c != ',' && c != ' ' {
			return false
		}
	}
	return true
}

// Fields splits a clause on whitespace outside quoted identifiers and
// string literals, so `first name` stays one token.
func Fields(clause string) []string {
	var tokens []string
	var closing byte
	start := -1
	for i := 0; i < len(clause); i++ {
		c := clause[i]
		if closing != 0 {
			if c == closing {
				closing = 0
			}
			continue
		}
		switch c {
		case ' ', '\t', '\n', '\r':
			if start >= 0 {
				tokens = append(tokens, clause[start:i])
				start = -1
			}
			continue
		case '\'', '"', '`':
			closing = c
		case '[':
			closing = ']'
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, clause[start:])
	}
	return tokens
}

// joinTypeClause returns the type token plus any parameter tokens needed to
// close its parentheses, e.g. ["decimal(10,", "2)"] or ["int", "(11)"].
func joinTypeClause(tokens []string) string {
	tc := tokens[0]
	i := 1
	if i < len(tokens) && !strings.Contains(tc, "(") && strings.HasPrefix(tokens[i], "(") {
		tc += tokens[i]
		i++
	}
	for ; i < len(tokens) && parenDepth(tc) > 0; i++ {
		tc += " " + tokens[i]
	}
	return tc
}

// SplitClauses splits a column-list body on commas at paren depth zero,
// ignoring commas inside quoted strings and identifiers.
func SplitClauses(body string) []string {
	var clauses []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(body); i++ {
		c := body[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				clauses = append(clauses, body[start:i])
				start = i + 1
			}
		}
	}
	return append(clauses, body[start:])
}

func matchingParen(s string, open int) int {
	depth := 0
	var quote byte
	for i := open; i < len(s); i++ {
		c := s[i]
		if quote != 0 {
			if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func parenDepth(s string) int {
	return strings.Count(s, "(") - strings.Count(s, ")")
}

func unquote(ident string) string {
	if len(ident) >= 2 {
		first, last := ident[0], ident[len(ident)-1]
		if (first == '`' && last == '`') || (first == '"' && last == '"') || (first == '[' && last == ']') {
			return ident[1 : len(ident)-1]
		}
	}
	return ident
}
