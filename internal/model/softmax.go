package model

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrShape indicates the bias length does not match the number of weight rows.
	ErrShape = errors.New("model: bias length must equal the number of weight rows")
	// ErrDims indicates the input width does not match the weight columns.
	ErrDims = errors.New("model: input columns must equal the number of weight columns")
)

// Softmax is a fixed multinomial logistic classifier. Weights hold one row
// per class; the score of class k for x is weights[k]·x + bias[k].
type Softmax struct {
	weights *mat.Dense
	bias    []float64
}

var _ Model = (*Softmax)(nil)

// NewSoftmax constructs the classifier. Weights and bias are copied.
func NewSoftmax(weights mat.Matrix, bias []float64) (*Softmax, error) {
	k, _ := weights.Dims()
	if len(bias) != k {
		return nil, fmt.Errorf("%w: %d rows, %d biases", ErrShape, k, len(bias))
	}
	return &Softmax{
		weights: mat.DenseCopyOf(weights),
		bias:    append([]float64(nil), bias...),
	}, nil
}

// Default returns the three-class classifier drawn in the figure. Class 0
// favours the lower left, class 1 the upper right and class 2 the lower right.
func Default() *Softmax {
	m, err := NewSoftmax(mat.NewDense(3, 2, []float64{
		-1, -1,
		1, 1,
		1, -1,
	}), []float64{0, -4, -4})
	if err != nil {
		panic(err)
	}
	return m
}

// NumClasses returns the number of output classes.
func (m *Softmax) NumClasses() int {
	return len(m.bias)
}

// Weights returns a copy of the weight matrix.
func (m *Softmax) Weights() *mat.Dense {
	return mat.DenseCopyOf(m.weights)
}

// Bias returns a copy of the bias vector.
func (m *Softmax) Bias() []float64 {
	return append([]float64(nil), m.bias...)
}

// Scores computes points·Wᵀ + b, one row per point. An input with no rows
// yields an empty matrix, since gonum has no zero-row Dense.
func (m *Softmax) Scores(points mat.Matrix) (*mat.Dense, error) {
	n, d := points.Dims()
	if n == 0 {
		return &mat.Dense{}, nil
	}
	_, wd := m.weights.Dims()
	if d != wd {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDims, d, wd)
	}
	scores := mat.NewDense(n, len(m.bias), nil)
	scores.Mul(points, m.weights.T())
	for i := 0; i < n; i++ {
		floats.Add(scores.RawRowView(i), m.bias)
	}
	return scores, nil
}

// Predict returns the class-probability batch for points.
func (m *Softmax) Predict(points mat.Matrix) (*mat.Dense, error) {
	probs, err := m.Scores(points)
	if err != nil {
		return nil, err
	}
	n, _ := probs.Dims()
	for i := 0; i < n; i++ {
		softmax(probs.RawRowView(i))
	}
	return probs, nil
}

// Classify returns the arg-max class of every point. Ties resolve to the
// highest class index, so (4,0) under Default belongs to class 2.
func (m *Softmax) Classify(points mat.Matrix) ([]int, error) {
	probs, err := m.Predict(points)
	if err != nil {
		return nil, err
	}
	return Argmax(probs), nil
}

// Argmax returns the column index of the largest value in every row,
// preferring the last of equal maxima.
func Argmax(probs *mat.Dense) []int {
	n, _ := probs.Dims()
	out := make([]int, n)
	for i := range out {
		row := probs.RawRowView(i)
		best := 0
		for k, v := range row {
			if v >= row[best] {
				best = k
			}
		}
		out[i] = best
	}
	return out
}

// softmax replaces scores with exp(s - max) / Σ exp(s - max).
func softmax(scores []float64) {
	maxScore := floats.Max(scores)
	for i, v := range scores {
		scores[i] = math.Exp(v - maxScore)
	}
	floats.Scale(1/floats.Sum(scores), scores)
}
