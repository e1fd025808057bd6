package generators

import (
	"math/rand"
)

type TinyIntGenerator struct{}

func (g *TinyIntGenerator) Generate(rng *rand.Rand) (interface{}, error) {
	return int64(rng.Intn(2)), nil
}
