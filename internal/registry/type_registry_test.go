package registry

import (
	"errors"
	"reflect"
	"testing"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

func TestResolve_PriorityOrder(t *testing.T) {
	r := DefaultTypeRegistry()
	d := r.Defaults()

	cases := []struct {
		typeClause string
		want       domain.GenerationRule
	}{
		{"tinyint(1)", domain.TinyInt()},
		{"tinyint", domain.TinyInt()},
		{"int(11)", domain.Int(11)},
		{"INT(4)", domain.Int(4)},
		{"bigint(20)", domain.Int(20)},
		{"bigint(20) unsigned", domain.Int(20)},
		{"int(25)", domain.Int(25)},
		{"longtext", domain.Text(1, 10)},
		{"text", domain.Text(1, 10)},
		{"datetime", domain.DateTime(d.DateTimeStart, d.DateTimeEnd)},
		{"DATETIME(6)", domain.DateTime(d.DateTimeStart, d.DateTimeEnd)},
		{"double", domain.Double(1.0, 1000.0)},
		{"inttext(3)", domain.Int(3)},
	}
	for _, tc := range cases {
		got, err := r.Resolve(domain.ColumnDescriptor{Name: "c", TypeClause: tc.typeClause})
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.typeClause, err)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("%s: expected %#v, got %#v", tc.typeClause, tc.want, got)
		}
	}
}

func TestResolve_DefaultWindow(t *testing.T) {
	d := DefaultDefaults()
	if d.DateTimeStart.Year() != 2024 || d.DateTimeEnd.Year() != 2026 {
		t.Fatalf("unexpected window %v - %v", d.DateTimeStart, d.DateTimeEnd)
	}
	if d.TextMinLen != 1 || d.TextMaxLen != 10 {
		t.Fatalf("unexpected text bounds %d..%d", d.TextMinLen, d.TextMaxLen)
	}
}

func TestResolve_UnknownType(t *testing.T) {
	r := DefaultTypeRegistry()
	_, err := r.Resolve(domain.ColumnDescriptor{Name: "email", TypeClause: "varchar(255)"})
	if !errors.Is(err, domain.ErrUnknownType) {
		t.Fatalf("expected UnknownType, got %v", err)
	}
	var ce *domain.ColumnError
	if !errors.As(err, &ce) || ce.Column != "email" {
		t.Fatalf("expected error to carry column name, got %v", err)
	}
}

func TestResolve_UnparsableIntWidth(t *testing.T) {
	r := DefaultTypeRegistry()
	for _, tc := range []string{"int", "integer", "int()", "int(0)"} {
		_, err := r.Resolve(domain.ColumnDescriptor{Name: "n", TypeClause: tc})
		if !errors.Is(err, domain.ErrUnparsableIntWidth) {
			t.Fatalf("%s: expected UnparsableIntWidth, got %v", tc, err)
		}
	}
}

func TestResolve_DirectiveIsSkip(t *testing.T) {
	r := DefaultTypeRegistry()
	got, err := r.Resolve(domain.ColumnDescriptor{Name: "PRIMARY", TypeClause: "KEY(id)"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Kind != domain.RuleSkip {
		t.Fatalf("expected skip, got %#v", got)
	}
}

func TestResolveSchema_DropsSkipAndKeepsOrder(t *testing.T) {
	r := DefaultTypeRegistry()
	schema := &domain.Schema{
		TableName: "t",
		Columns: []domain.ColumnDescriptor{
			{Name: "b", TypeClause: "text"},
			{Name: "constraint", TypeClause: "pk"},
			{Name: "a", TypeClause: "int(2)"},
		},
	}
	table, err := r.ResolveSchema(schema)
	if err != nil {
		t.Fatal(err)
	}
	if got := table.Header(); !reflect.DeepEqual(got, []string{"b", "a"}) {
		t.Fatalf("unexpected header %v", got)
	}
	if table.Columns[1].Rule.Digits != 2 {
		t.Fatalf("unexpected rule %#v", table.Columns[1].Rule)
	}
}

func TestList(t *testing.T) {
	got := DefaultTypeRegistry().List()
	want := []string{"tinyint", "int", "text", "datetime", "double"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
