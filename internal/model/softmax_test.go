package model

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func TestPredictRowsAreDistributions(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	data := make([]float64, 200*2)
	for i := range data {
		data[i] = rng.NormFloat64() * 50
	}
	probs, err := Default().Predict(mat.NewDense(200, 2, data))
	require.NoError(t, err)

	n, k := probs.Dims()
	require.Equal(t, 200, n)
	require.Equal(t, 3, k)
	for i := 0; i < n; i++ {
		row := probs.RawRowView(i)
		for _, p := range row {
			require.GreaterOrEqual(t, p, 0.0)
			require.LessOrEqual(t, p, 1.0)
		}
		require.InDelta(t, 1.0, floats.Sum(row), 1e-6, "row %d", i)
	}
}

func TestSoftmaxShiftInvariance(t *testing.T) {
	base := []float64{-1.5, 0.25, 3}
	want := append([]float64(nil), base...)
	softmax(want)

	for _, shift := range []float64{-1000, -3.5, 0, 42, 700} {
		got := []float64{base[0] + shift, base[1] + shift, base[2] + shift}
		softmax(got)
		for i := range got {
			require.InDelta(t, want[i], got[i], 1e-12, "shift %v class %d", shift, i)
		}
	}
}

func TestSoftmaxLargeScoresStayFinite(t *testing.T) {
	scores := []float64{1e308, 1e308, -1e308}
	softmax(scores)
	for _, p := range scores {
		require.False(t, math.IsNaN(p) || math.IsInf(p, 0))
	}
	require.InDelta(t, 0.5, scores[0], 1e-12)
	require.InDelta(t, 0.0, scores[2], 1e-12)
}

func TestDominantScoreWinsArgmax(t *testing.T) {
	m, err := NewSoftmax(mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		-1, -1,
	}), []float64{0, 0, 0})
	require.NoError(t, err)

	points := mat.NewDense(3, 2, []float64{
		5, 0,
		0, 5,
		-5, -5,
	})
	probs, err := m.Predict(points)
	require.NoError(t, err)
	classes, err := m.Classify(points)
	require.NoError(t, err)
	for i, want := range []int{0, 1, 2} {
		require.Equal(t, want, classes[i])
		row := probs.RawRowView(i)
		require.Equal(t, floats.Max(row), row[want])
	}
}

func TestDefaultClassifierRegions(t *testing.T) {
	m := Default()
	points := mat.NewDense(4, 2, []float64{
		0, 0,
		4, 4,
		4, 0,
		2, 0,
	})
	classes, err := m.Classify(points)
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, classes[:3])

	scores, err := m.Scores(points)
	require.NoError(t, err)
	require.Equal(t, scores.At(3, 0), scores.At(3, 2), "(2,0) lies on the class 0/2 boundary")
	require.Equal(t, scores.At(2, 1), scores.At(2, 2), "(4,0) lies on the class 1/2 boundary")

	probs, err := m.Predict(points)
	require.NoError(t, err)
	require.InDelta(t, probs.At(3, 0), probs.At(3, 2), 1e-12)
}

func TestBoundaryBetweenClassZeroAndTwo(t *testing.T) {
	m := Default()
	for _, y := range []float64{-2, -1, -0.5} {
		points := mat.NewDense(2, 2, []float64{
			1.9, y,
			2.1, y,
		})
		classes, err := m.Classify(points)
		require.NoError(t, err)
		require.Equal(t, []int{0, 2}, classes, "y=%v", y)
	}
}

func TestArgmaxPrefersLastTie(t *testing.T) {
	probs := mat.NewDense(3, 3, []float64{
		0.5, 0.5, 0,
		0.2, 0.4, 0.4,
		0.1, 0.8, 0.1,
	})
	require.Equal(t, []int{1, 2, 1}, Argmax(probs))
}

func TestNewSoftmaxRejectsMismatchedBias(t *testing.T) {
	_, err := NewSoftmax(mat.NewDense(3, 2, nil), []float64{0, 0})
	require.ErrorIs(t, err, ErrShape)
}

func TestScoresRejectsWrongWidth(t *testing.T) {
	_, err := Default().Scores(mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, ErrDims)
}

func TestEmptyInputYieldsEmptyResult(t *testing.T) {
	clf := Default()
	probs, err := clf.Predict(&mat.Dense{})
	require.NoError(t, err)
	require.True(t, probs.IsEmpty())

	classes, err := clf.Classify(&mat.Dense{})
	require.NoError(t, err)
	require.Empty(t, classes)
}

func TestBatchBounds(t *testing.T) {
	b := Batch{
		Points: mat.NewDense(3, 2, []float64{
			1, -2,
			-3, 4,
			2, 0,
		}),
		Labels: []int{0, 1, 2},
	}
	minX, maxX, minY, maxY := b.Bounds()
	require.Equal(t, 3, b.Len())
	require.Equal(t, -3.0, minX)
	require.Equal(t, 2.0, maxX)
	require.Equal(t, -2.0, minY)
	require.Equal(t, 4.0, maxY)
}
