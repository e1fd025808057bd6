package generators

import (
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/mmrzaf/ddlgen/internal/domain"
	"github.com/mmrzaf/ddlgen/internal/timeutil"
)

const trials = 10000

func TestUniformInt_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g, err := New(domain.Int(3))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < trials; i++ {
		v, _ := g.Generate(rng)
		n := v.(int64)
		if n < 1 || n > 999 {
			t.Fatalf("value out of range: %d", n)
		}
	}
}

func TestUniformInt_SingleDigitCoversRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	g, err := NewUniformIntGenerator(1)
	if err != nil {
		t.Fatal(err)
	}
	seen := map[int64]bool{}
	for i := 0; i < trials; i++ {
		v, _ := g.Generate(rng)
		seen[v.(int64)] = true
	}
	if seen[0] {
		t.Fatal("zero must never be generated")
	}
	for n := int64(1); n <= 9; n++ {
		if !seen[n] {
			t.Fatalf("expected %d to appear", n)
		}
	}
}

func TestUniformInt_RejectsZeroWidth(t *testing.T) {
	if _, err := NewUniformIntGenerator(0); err == nil {
		t.Fatal("expected error for zero digits")
	}
}

func TestUniformInt_WideWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for _, digits := range []uint{18, 19, 20, 25} {
		g, err := NewUniformIntGenerator(digits)
		if err != nil {
			t.Fatalf("%d digits: %v", digits, err)
		}
		for i := 0; i < 1000; i++ {
			v, err := g.Generate(rng)
			if err != nil {
				t.Fatal(err)
			}
			var s string
			switch n := v.(type) {
			case int64:
				if digits > 18 || n < 1 {
					t.Fatalf("%d digits: unexpected int64 %d", digits, n)
				}
				s = strconv.FormatInt(n, 10)
			case *big.Int:
				if digits <= 18 || n.Sign() <= 0 {
					t.Fatalf("%d digits: unexpected big value %s", digits, n)
				}
				s = n.String()
			default:
				t.Fatalf("unexpected type %T", v)
			}
			if uint(len(s)) > digits {
				t.Fatalf("%d digits: %s is too wide", digits, s)
			}
		}
	}
}

func TestUniformInt_WideIsSeeded(t *testing.T) {
	g, err := NewUniformIntGenerator(20)
	if err != nil {
		t.Fatal(err)
	}
	a, _ := g.Generate(rand.New(rand.NewSource(5)))
	b, _ := g.Generate(rand.New(rand.NewSource(5)))
	if a.(*big.Int).Cmp(b.(*big.Int)) != 0 {
		t.Fatalf("expected same draw for same seed, got %v and %v", a, b)
	}
}

func TestTinyInt(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := &TinyIntGenerator{}
	for i := 0; i < trials; i++ {
		v, _ := g.Generate(rng)
		if n := v.(int64); n != 0 && n != 1 {
			t.Fatalf("unexpected tinyint %d", n)
		}
	}
}

func TestText_LengthAndAlphabet(t *testing.T) {
	if len(Alphanumeric) != 62 {
		t.Fatalf("expected 62 characters, got %d", len(Alphanumeric))
	}
	rng := rand.New(rand.NewSource(4))
	g, err := New(domain.Text(1, 10))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < trials; i++ {
		v, _ := g.Generate(rng)
		s := v.(string)
		if len(s) < 1 || len(s) > 10 {
			t.Fatalf("length out of range: %q", s)
		}
		for _, c := range s {
			if !strings.ContainsRune(Alphanumeric, c) {
				t.Fatalf("unexpected character %q in %q", c, s)
			}
		}
	}
}

func TestDouble_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	g, err := New(domain.Double(1.0, 1000.0))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < trials; i++ {
		v, _ := g.Generate(rng)
		f := v.(float64)
		if f < 1.0 || f > 1000.0 {
			t.Fatalf("value out of range: %v", f)
		}
	}
}

func TestDateTime_WindowAndFormat(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, 1, 1, 0, 0, 0, 0, time.Local)
	rng := rand.New(rand.NewSource(6))
	g, err := New(domain.DateTime(start, end))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		v, _ := g.Generate(rng)
		s := v.(string)
		ts, err := time.ParseInLocation(timeutil.DateTimeLayout, s, time.Local)
		if err != nil {
			t.Fatalf("unexpected format %q: %v", s, err)
		}
		if ts.Before(start) || ts.After(end) {
			t.Fatalf("timestamp outside window: %s", s)
		}
	}
}

func TestDateTime_RejectsInvertedWindow(t *testing.T) {
	now := time.Now()
	if _, err := NewDateTimeGenerator(now, now.Add(-time.Hour)); err == nil {
		t.Fatal("expected error for end before start")
	}
}

func TestForRules_OmitsSkip(t *testing.T) {
	gens, err := ForRules([]domain.GenerationRule{domain.TinyInt(), domain.Skip(), domain.Int(2)})
	if err != nil {
		t.Fatal(err)
	}
	if len(gens) != 2 {
		t.Fatalf("expected 2 generators, got %d", len(gens))
	}
}

func TestNew_UnknownKind(t *testing.T) {
	if _, err := New(domain.GenerationRule{Kind: "varchar"}); err == nil {
		t.Fatal("expected error for unknown rule kind")
	}
}
