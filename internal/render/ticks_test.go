package render

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNiceTicks(t *testing.T) {
	cases := []struct {
		name   string
		lo, hi float64
		want   []float64
		step   float64
	}{
		{"DataRange", -4.2, 8.3, []float64{-4, -2, 0, 2, 4, 6, 8}, 2},
		{"UnitRange", 0, 1, []float64{0, 0.2, 0.4, 0.6, 0.8, 1}, 0.2},
		{"TwoAndAHalf", -3, 15, []float64{-2.5, 0, 2.5, 5, 7.5, 10, 12.5, 15}, 2.5},
		{"Quarter", 0, 1.8, []float64{0, 0.25, 0.5, 0.75, 1, 1.25, 1.5, 1.75}, 0.25},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ticks, step := niceTicks(tc.lo, tc.hi, targetTicks)
			require.InDelta(t, tc.step, step, 1e-12)
			require.Len(t, ticks, len(tc.want))
			for i := range ticks {
				require.InDelta(t, tc.want[i], ticks[i], 1e-9)
			}
		})
	}
}

func TestNiceTicksDegenerate(t *testing.T) {
	ticks, step := niceTicks(3, 3, targetTicks)
	require.Equal(t, []float64{3}, ticks)
	require.Zero(t, step)
}

func TestTickLabel(t *testing.T) {
	require.Equal(t, "-2", tickLabel(-2, 2))
	require.Equal(t, "0", tickLabel(0, 2))
	require.Equal(t, "0.4", tickLabel(0.4, 0.2))
	require.Equal(t, "1.25", tickLabel(1.25, 0.25))
	require.Equal(t, "20", tickLabel(20, 10))
}

func TestTickLabelsKeepHalfSteps(t *testing.T) {
	ticks, step := niceTicks(-3, 15, targetTicks)
	labels := make([]string, len(ticks))
	for i, v := range ticks {
		labels[i] = tickLabel(v, step)
	}
	require.Equal(t, []string{"-2.5", "0.0", "2.5", "5.0", "7.5", "10.0", "12.5", "15.0"}, labels)
}
