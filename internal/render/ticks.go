package render

import (
	"math"
	"strconv"
)

const targetTicks = 8

// niceTicks returns round tick positions inside [lo, hi] spaced by 1, 2, 2.5
// or 5 times a power of ten.
func niceTicks(lo, hi float64, target int) (ticks []float64, step float64) {
	if hi <= lo || target <= 0 {
		return []float64{lo}, 0
	}
	raw := (hi - lo) / float64(target)
	mag := math.Pow(10, math.Floor(math.Log10(raw)))
	step = 10 * mag
	for _, m := range []float64{1, 2, 2.5, 5} {
		if m*mag >= raw {
			step = m * mag
			break
		}
	}
	first := math.Ceil(lo/step-1e-9) * step
	for v := first; v <= hi+step*1e-9; v += step {
		if math.Abs(v) < step*1e-9 {
			v = 0
		}
		ticks = append(ticks, v)
	}
	return ticks, step
}

// maxTickDecimals bounds the precision of tick labels.
const maxTickDecimals = 6

// tickLabel formats v with just enough decimals to distinguish ticks spaced
// by step, so 2.5 keeps one decimal and 0.25 keeps two.
func tickLabel(v, step float64) string {
	decimals := 0
	if step > 0 {
		for decimals < maxTickDecimals {
			scaled := step * math.Pow(10, float64(decimals))
			if math.Abs(scaled-math.Round(scaled)) <= 1e-9*math.Max(1, scaled) {
				break
			}
			decimals++
		}
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}
