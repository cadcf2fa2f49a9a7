package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

func TestGenerateDefaultShape(t *testing.T) {
	batch, err := Generate(DefaultClusterOptions())
	require.NoError(t, err)
	require.Equal(t, 3000, batch.Len())
	require.Len(t, batch.Labels, 3000)

	for i, label := range batch.Labels {
		require.Equal(t, i/1000, label, "labels must be in class order")
	}
}

func TestGenerateDeterministic(t *testing.T) {
	opts := DefaultClusterOptions()
	opts.Seed = 7
	first, err := Generate(opts)
	require.NoError(t, err)
	second, err := Generate(opts)
	require.NoError(t, err)

	require.True(t, mat.Equal(first.Points, second.Points), "same seed must reproduce the points")
	require.Equal(t, first.Labels, second.Labels)

	opts.Seed = 8
	third, err := Generate(opts)
	require.NoError(t, err)
	require.False(t, mat.Equal(first.Points, third.Points))
}

func TestGenerateZeroSeedUsesDefault(t *testing.T) {
	opts := DefaultClusterOptions()
	withDefault, err := Generate(opts)
	require.NoError(t, err)
	opts.Seed = 0
	zero, err := Generate(opts)
	require.NoError(t, err)
	require.True(t, mat.Equal(withDefault.Points, zero.Points))
}

func TestGenerateClusterMoments(t *testing.T) {
	batch, err := Generate(DefaultClusterOptions())
	require.NoError(t, err)

	for label, center := range DefaultCenters() {
		rows := batch.Points.Slice(label*1000, (label+1)*1000, 0, 2)
		for axis := 0; axis < 2; axis++ {
			col := mat.Col(nil, axis, rows)
			mean, std := stat.MeanStdDev(col, nil)
			require.InDelta(t, center[axis], mean, 0.15, "class %d axis %d mean", label, axis)
			require.InDelta(t, 1.0, std, 0.1, "class %d axis %d std", label, axis)
		}
	}
}

func TestGenerateRejectsBadOptions(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*ClusterOptions)
		err    error
	}{
		{"NoCenters", func(o *ClusterOptions) { o.Centers = nil }, ErrNoClusters},
		{"ZeroSamples", func(o *ClusterOptions) { o.SamplesPerClass = 0 }, ErrSamples},
		{"NegativeSigma", func(o *ClusterOptions) { o.Sigma = -1 }, ErrSigma},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultClusterOptions()
			tc.mutate(&opts)
			_, err := Generate(opts)
			require.ErrorIs(t, err, tc.err)
		})
	}
}
