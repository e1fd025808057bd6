package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/infra/targets"
)

type PostgresTarget struct {
	dsn    string
	schema string
	db     *sql.DB
}

func NewPostgresTarget(dsn, schema string) *PostgresTarget {
	if schema == "" {
		schema = "public"
	}
	return &PostgresTarget{
		dsn:    dsn,
		schema: schema,
	}
}

func (t *PostgresTarget) Connect() error {
	db, err := sql.Open("postgres", t.dsn)
	if err != nil {
		return err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return err
	}
	t.db = db
	return nil
}

func (t *PostgresTarget) Close() error {
	if t.db != nil {
		return t.db.Close()
	}
	return nil
}

func (t *PostgresTarget) CreateTableIfNotExists(table *domain.Table) error {
	var exists bool
	query := `SELECT EXISTS (
		SELECT FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2
	)`
	err := t.db.QueryRow(query, t.schema, table.Name).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		return nil
	}

	_, err = t.db.Exec(CreateTableSQL(t.schema, table))
	return err
}

// CreateTableSQL renders the DDL used when the target table is missing.
// Identifiers are quoted so their case matches the information_schema lookup.
func CreateTableSQL(schema string, table *domain.Table) string {
	columnDefs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columnDefs[i] = fmt.Sprintf("%s %s NOT NULL", pq.QuoteIdentifier(col.Column.Name), mapRuleType(col.Rule))
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)",
		qualifiedName(schema, table.Name), strings.Join(columnDefs, ", "))
}

func qualifiedName(schema, tableName string) string {
	return pq.QuoteIdentifier(schema) + "." + pq.QuoteIdentifier(tableName)
}

func mapRuleType(rule domain.GenerationRule) string {
	switch rule.Kind {
	case domain.RuleTinyInt:
		return "SMALLINT"
	case domain.RuleInt:
		switch {
		case rule.Digits <= 9:
			return "INTEGER"
		case rule.Digits <= 18:
			return "BIGINT"
		default:
			return fmt.Sprintf("NUMERIC(%d, 0)", rule.Digits)
		}
	case domain.RuleDouble:
		return "DOUBLE PRECISION"
	case domain.RuleDateTime:
		return "TIMESTAMP"
	default:
		return "TEXT"
	}
}

// maxBindParams is the protocol limit on parameters in one statement.
const maxBindParams = 65535

// RowsPerInsert caps how many rows of the given width fit in one INSERT.
func RowsPerInsert(columns int) int {
	if columns < 1 {
		return maxBindParams
	}
	if n := maxBindParams / columns; n > 0 {
		return n
	}
	return 1
}

// InsertSQL renders a multi-row INSERT with positional parameters.
func InsertSQL(schema, tableName string, columns []string, rowCount int) string {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pq.QuoteIdentifier(c)
	}
	placeholders := make([]string, rowCount)
	for i := 0; i < rowCount; i++ {
		rowPlaceholders := make([]string, len(columns))
		for j := range columns {
			rowPlaceholders[j] = fmt.Sprintf("$%d", i*len(columns)+j+1)
		}
		placeholders[i] = "(" + strings.Join(rowPlaceholders, ", ") + ")"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		qualifiedName(schema, tableName), strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
}

// InsertBatch writes rows, splitting them into as many statements as the
// bind parameter limit requires.
func (t *PostgresTarget) InsertBatch(tableName string, columns []string, rows [][]interface{}) error {
	step := RowsPerInsert(len(columns))
	for start := 0; start < len(rows); start += step {
		end := start + step
		if end > len(rows) {
			end = len(rows)
		}
		part := rows[start:end]
		if _, err := t.db.Exec(InsertSQL(t.schema, tableName, columns, len(part)), targets.BindArgs(part...)...); err != nil {
			return err
		}
	}
	return nil
}
