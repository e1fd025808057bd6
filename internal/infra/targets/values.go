package targets

import "math/big"

// BindArgs flattens rows into statement arguments, rendering values the
// database/sql drivers cannot bind (wide integers) as decimal strings.
func BindArgs(rows ...[]interface{}) []interface{} {
	n := 0
	for _, row := range rows {
		n += len(row)
	}
	args := make([]interface{}, 0, n)
	for _, row := range rows {
		for _, v := range row {
			if b, ok := v.(*big.Int); ok {
				args = append(args, b.String())
				continue
			}
			args = append(args, v)
		}
	}
	return args
}
