// Package summary describes the numeric leaves of a sampled result.
package summary

import (
	"github.com/montanaflynn/stats"

	"symrand/domain/expr"
)

// Summary holds descriptive statistics of the real-valued leaves of a
// result. Complex leaves contribute their real and imaginary parts to
// separate summaries.
type Summary struct {
	Count  int     `json:"count"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	StdDev float64 `json:"stddev"`

	Imaginary *Summary `json:"imaginary,omitempty"`
}

// Of summarises e. It reports false when e has no numeric leaves.
func Of(e expr.Expr) (*Summary, bool) {
	var re, im []float64
	collect(e, &re, &im)
	if len(re) == 0 {
		return nil, false
	}

	s, err := describe(re)
	if err != nil {
		return nil, false
	}
	if len(im) > 0 {
		if s.Imaginary, err = describe(im); err != nil {
			return nil, false
		}
	}
	return s, true
}

func collect(e expr.Expr, re, im *[]float64) {
	switch x := e.(type) {
	case expr.Integer:
		*re = append(*re, x.Float64())
	case expr.Real:
		*re = append(*re, x.Float64())
	case expr.Complex:
		*re = append(*re, x.Re())
		*im = append(*im, x.Im())
	case expr.Expression:
		for _, leaf := range x.Leaves() {
			collect(leaf, re, im)
		}
	}
}

func describe(values []float64) (*Summary, error) {
	data := stats.Float64Data(values)

	lo, err := data.Min()
	if err != nil {
		return nil, err
	}
	hi, err := data.Max()
	if err != nil {
		return nil, err
	}
	mean, err := data.Mean()
	if err != nil {
		return nil, err
	}
	median, err := data.Median()
	if err != nil {
		return nil, err
	}
	stddev, err := data.StandardDeviation()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Count:  data.Len(),
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		Median: median,
		StdDev: stddev,
	}, nil
}
