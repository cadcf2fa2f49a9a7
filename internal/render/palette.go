package render

import "github.com/gogpu/gg"

const (
	regionAlpha = 0.4
	pointAlpha  = 0.8
)

var (
	regionColors = []gg.RGBA{gg.Hex("#FF9999"), gg.Hex("#66B2FF"), gg.Hex("#99FF99")}
	pointColors  = []gg.RGBA{gg.Hex("#FF0000"), gg.Hex("#0000FF"), gg.Hex("#00FF00")}
	edgeColor    = gg.Black
	legendEdge   = gg.Hex("#CCCCCC")
)

// regionColor returns the translucent region colour already composited over
// the white background, so shared cell edges never blend twice.
func regionColor(class int) gg.RGBA {
	return gg.White.Lerp(cycle(regionColors, class), regionAlpha)
}

func pointColor(class int) gg.RGBA {
	c := cycle(pointColors, class)
	c.A = pointAlpha
	return c
}

func cycle(colors []gg.RGBA, class int) gg.RGBA {
	if class < 0 {
		class = -class
	}
	return colors[class%len(colors)]
}
