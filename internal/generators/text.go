package generators

import (
	"fmt"
	"math/rand"
)

const Alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

type TextGenerator struct {
	minLen int
	maxLen int
}

func NewTextGenerator(minLen, maxLen int) (*TextGenerator, error) {
	if minLen < 0 {
		return nil, fmt.Errorf("min length must be >= 0, got %d", minLen)
	}
	if maxLen < minLen {
		return nil, fmt.Errorf("max length (%d) must not be less than min length (%d)", maxLen, minLen)
	}
	return &TextGenerator{minLen: minLen, maxLen: maxLen}, nil
}

func (g *TextGenerator) Generate(rng *rand.Rand) (interface{}, error) {
	n := g.minLen + rng.Intn(g.maxLen-g.minLen+1)
	b := make([]byte, n)
	for i := range b {
		b[i] = Alphanumeric[rng.Intn(len(Alphanumeric))]
	}
	return string(b), nil
}
