package targets

import (
	"math/big"
	"reflect"
	"testing"
)

func TestBindArgs(t *testing.T) {
	wide, _ := new(big.Int).SetString("12345678901234567890", 10)
	got := BindArgs(
		[]interface{}{int64(1), "a"},
		[]interface{}{wide, 2.5},
	)
	want := []interface{}{int64(1), "a", "12345678901234567890", 2.5}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %#v, got %#v", want, got)
	}
}
