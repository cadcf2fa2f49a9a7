package render

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"

	"softmax-geometry/internal/grid"
	"softmax-geometry/internal/model"
)

// Scene is everything drawn on the figure.
type Scene struct {
	Grid *grid.Grid
	// Regions holds the predicted class of every grid cell, one row per y sample.
	Regions [][]int
	Data    model.Batch
	// NoteX and NoteY anchor the lower-left corner of the annotation box in
	// data coordinates.
	NoteX, NoteY float64
}

// Draw renders the scene in back-to-front order.
func (f *Figure) Draw(s Scene) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"regions", func() error { return f.DrawRegions(s.Grid, s.Regions) }},
		{"scatter", func() error { return f.DrawScatter(s.Data) }},
		{"boundaries", func() error { return f.DrawBoundaries(s.Grid, s.Regions) }},
		{"axes", f.DrawAxes},
		{"legend", f.DrawLegend},
		{"title", f.DrawTitle},
		{"note", func() error { return f.DrawNote(s.NoteX, s.NoteY) }},
	}
	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("draw %s: %w", step.name, err)
		}
	}
	return nil
}

func checkRegions(g *grid.Grid, classes [][]int) error {
	rows, cols := g.Dims()
	if len(classes) != rows {
		return fmt.Errorf("%w: %d region rows for %d grid rows", ErrShape, len(classes), rows)
	}
	for i, row := range classes {
		if len(row) != cols {
			return fmt.Errorf("%w: region row %d has %d cells, want %d", ErrShape, i, len(row), cols)
		}
	}
	return nil
}

// cellEdges returns the pixel edges of the cells centred on samples, clamped
// to [lo, hi] and rounded so neighbouring cells share an edge exactly.
func cellEdges(samples []float64, step, lo, hi float64, toPx func(float64) float64) []float64 {
	edges := make([]float64, len(samples)+1)
	for k := range edges {
		var v float64
		switch k {
		case 0:
			v = samples[0] - step/2
		case len(samples):
			v = samples[k-1] + step/2
		default:
			v = (samples[k-1] + samples[k]) / 2
		}
		edges[k] = math.Round(toPx(math.Min(math.Max(v, lo), hi)))
	}
	return edges
}

// DrawRegions fills every grid cell with the colour of its predicted class.
// Runs of equal class along a row are merged into one rectangle.
func (f *Figure) DrawRegions(g *grid.Grid, classes [][]int) error {
	if err := checkRegions(g, classes); err != nil {
		return err
	}
	xEdges := cellEdges(g.Xs, g.Step, f.limits.MinX, f.limits.MaxX, f.px)
	yEdges := cellEdges(g.Ys, g.Step, f.limits.MinY, f.limits.MaxY, f.py)

	for i, row := range classes {
		top, bottom := yEdges[i+1], yEdges[i]
		if bottom <= top {
			continue
		}
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && row[j] == row[start] {
				continue
			}
			x0, x1 := xEdges[start], xEdges[j]
			if x1 > x0 {
				c := regionColor(row[start])
				f.dc.SetRGB(c.R, c.G, c.B)
				f.dc.DrawRectangle(x0, top, x1-x0, bottom-top)
				if err := f.dc.Fill(); err != nil {
					return err
				}
			}
			start = j
		}
	}
	return nil
}

// DrawBoundaries strokes the lines where the predicted class changes. Each
// 2×2 block of samples contributes segments joining the midpoints of its
// edges whose endpoints disagree; blocks where three or more edges disagree
// join every midpoint to the block centre.
func (f *Figure) DrawBoundaries(g *grid.Grid, classes [][]int) error {
	if err := checkRegions(g, classes); err != nil {
		return err
	}
	segments := 0
	segment := func(a, b [2]float64) {
		f.dc.MoveTo(f.px(a[0]), f.py(a[1]))
		f.dc.LineTo(f.px(b[0]), f.py(b[1]))
		segments++
	}

	rows, cols := g.Dims()
	var mids [4][2]float64
	for i := 0; i+1 < rows; i++ {
		for j := 0; j+1 < cols; j++ {
			a, b := classes[i][j], classes[i][j+1]
			c, d := classes[i+1][j+1], classes[i+1][j]
			if a == b && b == c && c == d {
				continue
			}
			x0, x1 := g.Xs[j], g.Xs[j+1]
			y0, y1 := g.Ys[i], g.Ys[i+1]
			xm, ym := (x0+x1)/2, (y0+y1)/2

			k := 0
			if a != b {
				mids[k] = [2]float64{xm, y0}
				k++
			}
			if b != c {
				mids[k] = [2]float64{x1, ym}
				k++
			}
			if c != d {
				mids[k] = [2]float64{xm, y1}
				k++
			}
			if d != a {
				mids[k] = [2]float64{x0, ym}
				k++
			}
			switch {
			case k == 2:
				segment(mids[0], mids[1])
			case k > 2:
				for m := 0; m < k; m++ {
					segment(mids[m], [2]float64{xm, ym})
				}
			}
		}
	}
	if segments == 0 {
		return nil
	}
	f.dc.SetColor(edgeColor.Color())
	f.dc.SetLineWidth(f.pt(boundaryWidth))
	f.dc.SetLineCap(gg.LineCapRound)
	return f.dc.Stroke()
}

// DrawScatter draws every point as a circle coloured by its true label.
func (f *Figure) DrawScatter(b model.Batch) error {
	n := b.Len()
	if len(b.Labels) != n {
		return fmt.Errorf("%w: %d labels for %d points", ErrShape, len(b.Labels), n)
	}
	f.dc.ClipRect(f.plot.x0, f.plot.y0, f.plot.w(), f.plot.h())
	defer f.dc.ResetClip()

	r := f.pt(markerRadius)
	f.dc.SetLineWidth(f.pt(markerEdge))
	for i := 0; i < n; i++ {
		if err := f.marker(f.px(b.Points.At(i, 0)), f.py(b.Points.At(i, 1)), r, b.Labels[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *Figure) marker(x, y, r float64, class int) error {
	c := pointColor(class)
	f.dc.DrawCircle(x, y, r)
	f.dc.SetRGBA(c.R, c.G, c.B, c.A)
	if err := f.dc.FillPreserve(); err != nil {
		return err
	}
	f.dc.SetRGBA(edgeColor.R, edgeColor.G, edgeColor.B, pointAlpha)
	return f.dc.Stroke()
}

// DrawAxes draws the frame, ticks, tick labels and axis labels.
func (f *Figure) DrawAxes() error {
	p := f.plot
	f.dc.SetRGB(0, 0, 0)
	f.dc.SetLineWidth(f.pt(frameWidth))
	f.dc.SetLineCap(gg.LineCapButt)
	f.dc.DrawRectangle(p.x0, p.y0, p.w(), p.h())
	if err := f.dc.Stroke(); err != nil {
		return err
	}

	for _, v := range f.xTicks {
		x := f.px(v)
		f.dc.MoveTo(x, p.y1)
		f.dc.LineTo(x, p.y1+f.pt(tickLen))
	}
	for _, v := range f.yTicks {
		y := f.py(v)
		f.dc.MoveTo(p.x0, y)
		f.dc.LineTo(p.x0-f.pt(tickLen), y)
	}
	if err := f.dc.Stroke(); err != nil {
		return err
	}

	tickTop := p.y1 + f.pt(tickLen+tickPad)
	for _, v := range f.xTicks {
		f.drawText(f.tickFace, tickLabel(v, f.xStep), f.px(v), tickTop, 0.5, 0)
	}
	tickRight := p.x0 - f.pt(tickLen+tickPad)
	for _, v := range f.yTicks {
		f.drawText(f.tickFace, tickLabel(v, f.yStep), tickRight, f.py(v), 1, 0.5)
	}

	labelTop := tickTop + lineHeight(f.tickFace) + f.pt(labelPad)
	f.drawText(f.labelFace, f.labels.XLabel, (p.x0+p.x1)/2, labelTop, 0.5, 0)

	labelRight := tickRight - f.yTickWidth - f.pt(labelPad)
	f.drawVertical(f.labelFace, f.labels.YLabel, labelRight-lineHeight(f.labelFace)/2, (p.y0+p.y1)/2)
	return nil
}

// DrawLegend draws one marker and label per class in the upper-right corner
// of the plot.
func (f *Figure) DrawLegend() error {
	classes := f.labels.Classes
	if len(classes) == 0 {
		return nil
	}
	lh := lineHeight(f.legendFace)
	pad := f.pt(boxPad)
	markerW := f.pt(2 * markerRadius)
	gap := f.pt(legendGap)
	rowH := lh + f.pt(legendSpacing)

	textW := 0.0
	for _, name := range classes {
		textW = math.Max(textW, f.legendFace.Advance(name))
	}
	boxW := pad + markerW + gap + textW + pad
	boxH := 2*pad + rowH*float64(len(classes)) - f.pt(legendSpacing)
	x0 := f.plot.x1 - f.pt(legendInset) - boxW
	y0 := f.plot.y0 + f.pt(legendInset)

	if err := f.box(x0, y0, boxW, boxH, legendEdge, f.pt(2)); err != nil {
		return err
	}
	f.dc.SetLineWidth(f.pt(markerEdge))
	for k, name := range classes {
		cy := y0 + pad + rowH*float64(k) + lh/2
		if err := f.marker(x0+pad+markerW/2, cy, f.pt(markerRadius), k); err != nil {
			return err
		}
		f.drawText(f.legendFace, name, x0+pad+markerW+gap, cy, 0, 0.5)
	}
	return nil
}

// DrawTitle centres the title lines above the plot.
func (f *Figure) DrawTitle() error {
	lh := lineHeight(f.titleFace)
	top := f.plot.y0 - f.pt(titlePad) - lh*float64(len(f.labels.Title))
	for k, line := range f.labels.Title {
		f.drawText(f.titleFace, line, (f.plot.x0+f.plot.x1)/2, top+lh*float64(k), 0.5, 0)
	}
	return nil
}

// DrawNote draws the explanatory text box with its lower-left corner at the
// data point (x, y), shifted as needed to stay inside the plot.
func (f *Figure) DrawNote(x, y float64) error {
	lines := f.labels.Note
	if len(lines) == 0 {
		return nil
	}
	lh := lineHeight(f.noteFace)
	pad := f.pt(boxPad)
	textW := 0.0
	for _, line := range lines {
		textW = math.Max(textW, f.noteFace.Advance(line))
	}
	boxW := textW + 2*pad
	boxH := lh*float64(len(lines)) + 2*pad

	x0 := math.Min(math.Max(f.px(x), f.plot.x0), f.plot.x1-boxW)
	y1 := math.Max(math.Min(f.py(y), f.plot.y1), f.plot.y0+boxH)
	y0 := y1 - boxH

	if err := f.box(x0, y0, boxW, boxH, edgeColor, 0); err != nil {
		return err
	}
	for k, line := range lines {
		f.drawText(f.noteFace, line, x0+pad, y0+pad+lh*float64(k), 0, 0)
	}
	return nil
}

// box fills a translucent white rectangle and outlines it.
func (f *Figure) box(x, y, w, h float64, edge gg.RGBA, radius float64) error {
	if radius > 0 {
		f.dc.DrawRoundedRectangle(x, y, w, h, radius)
	} else {
		f.dc.DrawRectangle(x, y, w, h)
	}
	f.dc.SetRGBA(1, 1, 1, 0.8)
	if err := f.dc.FillPreserve(); err != nil {
		return err
	}
	f.dc.SetColor(edge.Color())
	f.dc.SetLineWidth(f.pt(frameWidth))
	return f.dc.Stroke()
}

// drawText draws s in black so that the anchor (ax, ay) of its box lies at
// (x, y). (0, 0) is the top-left of the box and (1, 1) the bottom-right.
func (f *Figure) drawText(face text.Face, s string, x, y, ax, ay float64) {
	m := face.Metrics()
	w, h := face.Advance(s), m.Ascent+m.Descent
	f.dc.SetRGB(0, 0, 0)
	f.dc.SetFont(face)
	f.dc.DrawString(s, x-w*ax, y-h*ay+m.Ascent)
}

// drawVertical draws s rotated a quarter turn counter-clockwise, centred on
// (cx, cy).
func (f *Figure) drawVertical(face text.Face, s string, cx, cy float64) {
	m := face.Metrics()
	w := int(math.Ceil(face.Advance(s)))
	h := int(math.Ceil(m.Ascent + m.Descent))
	if w == 0 || h == 0 {
		return
	}
	src := image.NewRGBA(image.Rect(0, 0, w, h))
	text.Draw(src, s, face, 0, m.Ascent, color.Black)

	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dst.SetRGBA(y, w-1-x, src.RGBAAt(x, y))
		}
	}
	f.dc.DrawImage(gg.ImageBufFromImage(dst), math.Round(cx-float64(h)/2), math.Round(cy-float64(w)/2))
}
