package generators

import (
	"fmt"
	"math/rand"
)

type UniformFloatGenerator struct {
	min float64
	max float64
}

func NewUniformFloatGenerator(min, max float64) (*UniformFloatGenerator, error) {
	if max < min {
		return nil, fmt.Errorf("max (%v) must not be less than min (%v)", max, min)
	}
	return &UniformFloatGenerator{min: min, max: max}, nil
}

func (g *UniformFloatGenerator) Generate(rng *rand.Rand) (interface{}, error) {
	return g.min + rng.Float64()*(g.max-g.min), nil
}
