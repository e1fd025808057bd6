package registry

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mmrzaf/ddlgen/internal/ddl"
	"github.com/mmrzaf/ddlgen/internal/domain"
)

// Defaults holds the parameters used for rules whose width is not taken
// from the type clause.
type Defaults struct {
	TextMinLen    int
	TextMaxLen    int
	DateTimeStart time.Time
	DateTimeEnd   time.Time
	DoubleMin     float64
	DoubleMax     float64
}

func DefaultDefaults() Defaults {
	return Defaults{
		TextMinLen:    1,
		TextMaxLen:    10,
		DateTimeStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local),
		DateTimeEnd:   time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local),
		DoubleMin:     1.0,
		DoubleMax:     1000.0,
	}
}

// Entry is one classifier: Match is tested against the lower-cased type
// clause and Build constructs the rule for a matching descriptor.
type Entry struct {
	Name  string
	Match func(typeClause string) bool
	Build func(col domain.ColumnDescriptor, d Defaults) (domain.GenerationRule, error)
}

// TypeRegistry resolves column descriptors to generation rules by walking
// its entries in registration order. The first matching entry wins.
type TypeRegistry struct {
	mu       sync.RWMutex
	entries  []Entry
	defaults Defaults
}

func NewTypeRegistry(defaults Defaults) *TypeRegistry {
	return &TypeRegistry{defaults: defaults}
}

func (r *TypeRegistry) Register(e Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, e)
}

func (r *TypeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.entries))
	for _, e := range r.entries {
		names = append(names, e.Name)
	}
	return names
}

func (r *TypeRegistry) Defaults() Defaults {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaults
}

// Resolve maps one descriptor to its rule.
func (r *TypeRegistry) Resolve(col domain.ColumnDescriptor) (domain.GenerationRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tc := strings.ToLower(col.TypeClause)
	for _, e := range r.entries {
		if e.Match(tc) {
			return e.Build(col, r.defaults)
		}
	}

	if ddl.IsDirective(col.Name + " " + col.TypeClause) {
		return domain.Skip(), nil
	}

	return domain.GenerationRule{}, &domain.ColumnError{
		Kind:       domain.ErrUnknownType,
		Column:     col.Name,
		TypeClause: col.TypeClause,
	}
}

// ResolveSchema resolves every column and drops Skip rules. It fails on the
// first column that cannot be resolved, before any row is generated.
func (r *TypeRegistry) ResolveSchema(schema *domain.Schema) (*domain.Table, error) {
	table := &domain.Table{
		Name:    schema.TableName,
		Columns: make([]domain.ResolvedColumn, 0, len(schema.Columns)),
	}
	for _, col := range schema.Columns {
		rule, err := r.Resolve(col)
		if err != nil {
			return nil, err
		}
		if rule.Kind == domain.RuleSkip {
			continue
		}
		table.Columns = append(table.Columns, domain.ResolvedColumn{Column: col, Rule: rule})
	}
	return table, nil
}

var intWidthRe = regexp.MustCompile(`\w*\(\s*(\d+)\s*\)`)

func contains(substr string) func(string) bool {
	return func(tc string) bool { return strings.Contains(tc, substr) }
}

func buildInt(col domain.ColumnDescriptor, _ Defaults) (domain.GenerationRule, error) {
	m := intWidthRe.FindStringSubmatch(col.TypeClause)
	if m == nil {
		return domain.GenerationRule{}, &domain.ColumnError{
			Kind:       domain.ErrUnparsableIntWidth,
			Column:     col.Name,
			TypeClause: col.TypeClause,
		}
	}
	digits, err := strconv.ParseUint(m[1], 10, 32)
	if err != nil || digits == 0 {
		return domain.GenerationRule{}, &domain.ColumnError{
			Kind:       fmt.Errorf("%w: width must be a positive integer", domain.ErrUnparsableIntWidth),
			Column:     col.Name,
			TypeClause: col.TypeClause,
		}
	}
	return domain.Int(uint(digits)), nil
}

func DefaultTypeRegistry() *TypeRegistry {
	return NewDefaultTypeRegistry(DefaultDefaults())
}

func NewDefaultTypeRegistry(defaults Defaults) *TypeRegistry {
	r := NewTypeRegistry(defaults)
	r.Register(Entry{Name: "tinyint", Match: contains("tinyint"),
		Build: func(domain.ColumnDescriptor, Defaults) (domain.GenerationRule, error) {
			return domain.TinyInt(), nil
		}})
	r.Register(Entry{Name: "int", Match: contains("int"), Build: buildInt})
	r.Register(Entry{Name: "text", Match: contains("text"),
		Build: func(_ domain.ColumnDescriptor, d Defaults) (domain.GenerationRule, error) {
			return domain.Text(d.TextMinLen, d.TextMaxLen), nil
		}})
	r.Register(Entry{Name: "datetime", Match: contains("datetime"),
		Build: func(_ domain.ColumnDescriptor, d Defaults) (domain.GenerationRule, error) {
			return domain.DateTime(d.DateTimeStart, d.DateTimeEnd), nil
		}})
	r.Register(Entry{Name: "double", Match: contains("double"),
		Build: func(_ domain.ColumnDescriptor, d Defaults) (domain.GenerationRule, error) {
			return domain.Double(d.DoubleMin, d.DoubleMax), nil
		}})
	return r
}
