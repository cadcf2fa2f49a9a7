// Package grid samples a rectangular region of the plane on a uniform lattice
// so a classifier can be evaluated at every cell.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const defaultMargin = 1.0

// Grid is the Cartesian sampling of a bounding box. XX and YY have one row per
// y sample and one column per x sample.
type Grid struct {
	XX, YY *mat.Dense
	Xs, Ys []float64
	Step   float64
}

type options struct {
	margin float64
}

// Option customises Make.
type Option func(*options)

// WithMargin pads the data range by m on every side instead of 1.
func WithMargin(m float64) Option {
	return func(o *options) {
		o.margin = m
	}
}

// Make builds the meshgrid covering [min(xs)-margin, max(xs)+margin] ×
// [min(ys)-margin, max(ys)+margin] at spacing h. Each axis starts exactly at
// its lower bound and its last sample is at or beyond the upper bound.
func Make(xs, ys []float64, h float64, opts ...Option) (*Grid, error) {
	if h <= 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return nil, fmt.Errorf("%w (got %g)", ErrStep, h)
	}
	o := options{margin: defaultMargin}
	for _, opt := range opts {
		opt(&o)
	}

	ax, err := axis(xs, h, o.margin)
	if err != nil {
		return nil, fmt.Errorf("x axis: %w", err)
	}
	ay, err := axis(ys, h, o.margin)
	if err != nil {
		return nil, fmt.Errorf("y axis: %w", err)
	}

	xx, yy := Meshgrid(ax, ay)
	return &Grid{XX: xx, YY: yy, Xs: ax, Ys: ay, Step: h}, nil
}

// Meshgrid returns the coordinate matrices of every (xs[j], ys[i]) pair.
func Meshgrid(xs, ys []float64) (xx, yy *mat.Dense) {
	rows, cols := len(ys), len(xs)
	xx = mat.NewDense(rows, cols, nil)
	yy = mat.NewDense(rows, cols, nil)
	for i := 0; i < rows; i++ {
		xx.SetRow(i, xs)
		row := yy.RawRowView(i)
		for j := range row {
			row[j] = ys[i]
		}
	}
	return xx, yy
}

func axis(values []float64, h, margin float64) ([]float64, error) {
	if len(values) == 0 {
		return nil, ErrEmptyRange
	}
	if floats.HasNaN(values) {
		return nil, ErrNonFinite
	}
	lo, hi := floats.Min(values)-margin, floats.Max(values)+margin
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return nil, ErrNonFinite
	}
	// Absorb division round-off so an exact multiple of h does not gain a sample.
	n := int(math.Ceil((hi-lo)/h-1e-9)) + 1
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*h
	}
	return out, nil
}

// Dims returns the number of y samples and x samples.
func (g *Grid) Dims() (rows, cols int) {
	return len(g.Ys), len(g.Xs)
}

// Extent returns the first and last sample of each axis.
func (g *Grid) Extent() (minX, maxX, minY, maxY float64) {
	return g.Xs[0], g.Xs[len(g.Xs)-1], g.Ys[0], g.Ys[len(g.Ys)-1]
}

// Points flattens the grid into an (rows*cols)×2 batch. Row i*cols+j holds
// (Xs[j], Ys[i]).
func (g *Grid) Points() *mat.Dense {
	rows, cols := g.Dims()
	data := make([]float64, 0, rows*cols*2)
	for _, y := range g.Ys {
		for _, x := range g.Xs {
			data = append(data, x, y)
		}
	}
	return mat.NewDense(rows*cols, 2, data)
}

// Reshape folds a flat label vector produced from Points back into rows.
func (g *Grid) Reshape(labels []int) ([][]int, error) {
	rows, cols := g.Dims()
	if len(labels) != rows*cols {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrLabelCount, len(labels), rows*cols)
	}
	out := make([][]int, rows)
	for i := range out {
		out[i] = labels[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return out, nil
}
