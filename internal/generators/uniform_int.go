package generators

import (
	"errors"
	"math/big"
	"math/rand"
)

// maxInt64Digits is the widest width whose 10^digits-1 still fits int64.
const maxInt64Digits = 18

// UniformIntGenerator draws from [1, 10^digits - 1]. Zero is never produced.
// Widths up to 18 digits yield int64, wider ones *big.Int.
type UniformIntGenerator struct {
	max    int64
	bigMax *big.Int
}

func NewUniformIntGenerator(digits uint) (*UniformIntGenerator, error) {
	if digits == 0 {
		return nil, errors.New("int digits must be > 0")
	}
	if digits > maxInt64Digits {
		bigMax := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
		return &UniformIntGenerator{bigMax: bigMax.Sub(bigMax, big.NewInt(1))}, nil
	}
	max := int64(1)
	for i := uint(0); i < digits; i++ {
		max *= 10
	}
	return &UniformIntGenerator{max: max - 1}, nil
}

func (g *UniformIntGenerator) Generate(rng *rand.Rand) (interface{}, error) {
	if g.bigMax != nil {
		n := new(big.Int).Rand(rng, g.bigMax)
		return n.Add(n, big.NewInt(1)), nil
	}
	return 1 + rng.Int63n(g.max), nil
}
