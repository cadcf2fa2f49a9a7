package model

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Batch represents a set of 2-D points and their class labels.
type Batch struct {
	Points *mat.Dense
	Labels []int
}

// Len returns the number of points in the batch.
func (b Batch) Len() int {
	if b.Points == nil {
		return 0
	}
	n, _ := b.Points.Dims()
	return n
}

// Column returns a copy of column j of the points.
func (b Batch) Column(j int) []float64 {
	return mat.Col(nil, j, b.Points)
}

// Bounds returns the per-axis minimum and maximum of the points.
func (b Batch) Bounds() (minX, maxX, minY, maxY float64) {
	xs, ys := b.Column(0), b.Column(1)
	return floats.Min(xs), floats.Max(xs), floats.Min(ys), floats.Max(ys)
}

// Model defines the prediction functionality required by the renderer.
type Model interface {
	NumClasses() int
	Predict(points mat.Matrix) (*mat.Dense, error)
	Classify(points mat.Matrix) ([]int, error)
}
