package generators

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/mmrzaf/ddlgen/internal/timeutil"
)

// DateTimeGenerator draws a uniform instant in [start, end] and renders it
// in local calendar time.
type DateTimeGenerator struct {
	start time.Time
	span  int64
}

func NewDateTimeGenerator(start, end time.Time) (*DateTimeGenerator, error) {
	if end.Before(start) {
		return nil, fmt.Errorf("datetime end (%s) is before start (%s)",
			end.Format(timeutil.DateTimeLayout), start.Format(timeutil.DateTimeLayout))
	}
	return &DateTimeGenerator{start: start, span: int64(end.Sub(start))}, nil
}

func (g *DateTimeGenerator) Generate(rng *rand.Rand) (interface{}, error) {
	offset := int64(0)
	switch {
	case g.span == math.MaxInt64:
		offset = rng.Int63n(g.span)
	case g.span > 0:
		offset = rng.Int63n(g.span + 1)
	}
	return g.start.Add(time.Duration(offset)).Local().Format(timeutil.DateTimeLayout), nil
}
