package csv

import (
	"bytes"
	"errors"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/mmrzaf/ddlgen/internal/domain"
)

func TestEncode_QuotesDelimiters(t *testing.T) {
	var buf bytes.Buffer
	rows := []domain.Row{
		{int64(12), "a,b", 3.5},
		{int64(7), `say "hi"`, 1000.0},
	}
	if err := Encode(&buf, []string{"id", "note", "score"}, rows); err != nil {
		t.Fatal(err)
	}
	want := "id,note,score\n12,\"a,b\",3.5\n7,\"say \"\"hi\"\"\",1000\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestEncode_HeaderOnlyForNoRows(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []string{"a", "b"}, nil); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "a,b\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestEncode_RejectsRaggedRow(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, []string{"a", "b"}, []domain.Row{{"x"}}); err == nil {
		t.Fatal("expected error for short row")
	}
}

func TestFileSink_OverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	if err := os.WriteFile(path, []byte("stale"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := NewFileSink(path).Write([]string{"id"}, []domain.Row{{int64(1)}}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "id\n1\n" {
		t.Fatalf("unexpected file content %q", data)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only the output file, got %d entries", len(entries))
	}
}

func TestFileSink_UnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	err := NewFileSink(path).Write([]string{"id"}, nil)
	if !errors.Is(err, domain.ErrIOFailure) {
		t.Fatalf("expected IOFailure, got %v", err)
	}
}

func TestFormatValue(t *testing.T) {
	cases := map[string]interface{}{
		"":        nil,
		"abc":     "abc",
		"42":      int64(42),
		"0.25":    0.25,
		"1":       true,
		"0":       false,
		"2024-01": "2024-01",
		"123456789012345678901": func() *big.Int {
			n, _ := new(big.Int).SetString("123456789012345678901", 10)
			return n
		}(),
	}
	for want, in := range cases {
		if got := FormatValue(in); got != want {
			t.Fatalf("FormatValue(%#v): expected %q, got %q", in, want, got)
		}
	}
}
