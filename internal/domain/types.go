package domain

import (
	"time"
)

// ColumnDescriptor is one column clause of a CREATE TABLE body, kept as the
// raw tokens that appeared in the DDL.
type ColumnDescriptor struct {
	Name       string `json:"name" yaml:"name"`
	TypeClause string `json:"type_clause" yaml:"type_clause"`
}

type Schema struct {
	TableName string             `json:"table_name" yaml:"table_name"`
	Columns   []ColumnDescriptor `json:"columns" yaml:"columns"`
}

type RuleKind string

const (
	RuleTinyInt  RuleKind = "tinyint"
	RuleInt      RuleKind = "int"
	RuleText     RuleKind = "text"
	RuleDateTime RuleKind = "datetime"
	RuleDouble   RuleKind = "double"
	RuleSkip     RuleKind = "skip"
)

// GenerationRule is the resolved instruction for one column. Only the fields
// belonging to Kind are meaningful.
type GenerationRule struct {
	Kind   RuleKind  `json:"kind" yaml:"kind"`
	Digits uint      `json:"digits,omitempty" yaml:"digits,omitempty"`
	MinLen int       `json:"min_len,omitempty" yaml:"min_len,omitempty"`
	MaxLen int       `json:"max_len,omitempty" yaml:"max_len,omitempty"`
	Start  time.Time `json:"start,omitzero" yaml:"start,omitempty"`
	End    time.Time `json:"end,omitzero" yaml:"end,omitempty"`
	Min    float64   `json:"min,omitempty" yaml:"min,omitempty"`
	Max    float64   `json:"max,omitempty" yaml:"max,omitempty"`
}

func TinyInt() GenerationRule { return GenerationRule{Kind: RuleTinyInt} }

func Int(digits uint) GenerationRule { return GenerationRule{Kind: RuleInt, Digits: digits} }

func Text(minLen, maxLen int) GenerationRule {
	return GenerationRule{Kind: RuleText, MinLen: minLen, MaxLen: maxLen}
}

func DateTime(start, end time.Time) GenerationRule {
	return GenerationRule{Kind: RuleDateTime, Start: start, End: end}
}

func Double(min, max float64) GenerationRule {
	return GenerationRule{Kind: RuleDouble, Min: min, Max: max}
}

func Skip() GenerationRule { return GenerationRule{Kind: RuleSkip} }

// ResolvedColumn pairs a descriptor with the rule it resolved to.
type ResolvedColumn struct {
	Column ColumnDescriptor `json:"column" yaml:"column"`
	Rule   GenerationRule   `json:"rule" yaml:"rule"`
}

// Table is the generation plan for one statement. Columns never contain
// Skip rules.
type Table struct {
	Name    string           `json:"name" yaml:"name"`
	Columns []ResolvedColumn `json:"columns" yaml:"columns"`
}

func (t *Table) Header() []string {
	header := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col.Column.Name
	}
	return header
}

func (t *Table) Rules() []GenerationRule {
	rules := make([]GenerationRule, len(t.Columns))
	for i, col := range t.Columns {
		rules[i] = col.Rule
	}
	return rules
}

type Row []interface{}

// TargetConfig describes an optional database sink receiving the generated
// rows in addition to the CSV file.
type TargetConfig struct {
	Kind string `json:"kind" yaml:"kind"`
	DSN  string `json:"dsn" yaml:"dsn"`
}

const (
	TargetKindSQLite   = "sqlite"
	TargetKindPostgres = "postgres"
)

// RunConfig is built once at the process boundary and passed into the
// pipeline.
type RunConfig struct {
	InputPath  string
	OutputPath string
	Rows       int64
	Seed       *int64
	Workers    int
	BatchSize  int
	Target     *TargetConfig
}

type RunStats struct {
	RunID           string  `json:"run_id"`
	TableName       string  `json:"table_name"`
	SchemaHash      string  `json:"schema_hash"`
	Columns         int     `json:"columns"`
	RowsGenerated   int64   `json:"rows_generated"`
	Seed            int64   `json:"seed"`
	DurationSeconds float64 `json:"duration_seconds"`
}
