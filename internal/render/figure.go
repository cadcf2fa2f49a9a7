// Package render draws the decision-region figure onto a gg canvas and
// encodes it as PNG.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"unicode"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Sizes are in typographic points and scaled by DPI/72.
const (
	tickPt   = 10.0
	labelPt  = 10.0
	titlePt  = 12.0
	legendPt = 10.0
	notePt   = 10.0

	tickLen       = 3.5
	tickPad       = 3.5
	labelPad      = 4.0
	titlePad      = 6.0
	frameWidth    = 0.8
	boundaryWidth = 0.5
	markerRadius  = 3.0
	markerEdge    = 1.0
	boxPad        = 4.0
	legendInset   = 6.0
	legendGap     = 6.0
	legendSpacing = 2.0

	// tight bounding-box padding, in inches
	bboxPadIn = 0.1
)

var (
	// ErrLimits indicates empty or non-finite axis limits.
	ErrLimits = errors.New("render: axis limits must be finite and non-empty")
	// ErrSize indicates a canvas too small to hold the axes.
	ErrSize = errors.New("render: figure is too small for its decorations")
	// ErrShape indicates drawing input whose shape does not match the grid or labels.
	ErrShape = errors.New("render: input shape mismatch")
)

// Limits is the data range mapped onto the plot area.
type Limits struct {
	MinX, MaxX float64
	MinY, MaxY float64
}

func (l Limits) valid() bool {
	for _, v := range []float64{l.MinX, l.MaxX, l.MinY, l.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return l.MaxX > l.MinX && l.MaxY > l.MinY
}

// Options configures the canvas.
type Options struct {
	WidthIn  float64
	HeightIn float64
	DPI      float64
	// FontPath selects a TTF/OTF file. Go Regular is used when empty; it has
	// no CJK glyphs.
	FontPath string
	Labels   Labels
}

// DefaultOptions returns a 12×8 inch canvas at 300 DPI.
func DefaultOptions() Options {
	return Options{WidthIn: 12, HeightIn: 8, DPI: 300}
}

type rect struct {
	x0, y0, x1, y1 float64
}

func (r rect) w() float64 { return r.x1 - r.x0 }
func (r rect) h() float64 { return r.y1 - r.y0 }

// Figure owns a canvas and the layout of a single axes. It must be closed.
type Figure struct {
	dc     *gg.Context
	font   *text.FontSource
	labels Labels
	dpi    float64
	scale  float64
	limits Limits
	plot   rect

	xTicks, yTicks []float64
	xStep, yStep   float64
	yTickWidth     float64

	tickFace, labelFace, titleFace, legendFace, noteFace text.Face
}

// New allocates the canvas and lays out the axes for limits.
func New(opts Options, limits Limits) (*Figure, error) {
	if !limits.valid() {
		return nil, fmt.Errorf("%w: %+v", ErrLimits, limits)
	}
	width := int(math.Round(opts.WidthIn * opts.DPI))
	height := int(math.Round(opts.HeightIn * opts.DPI))
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d px", ErrSize, width, height)
	}
	if len(opts.Labels.Classes) == 0 {
		labels, err := NewLabels("", len(regionColors))
		if err != nil {
			return nil, err
		}
		opts.Labels = labels
	}

	src, err := loadFont(opts.FontPath)
	if err != nil {
		return nil, err
	}

	f := &Figure{
		dc:     gg.NewContext(width, height),
		font:   src,
		labels: opts.Labels,
		dpi:    opts.DPI,
		scale:  opts.DPI / 72,
		limits: limits,
	}
	f.tickFace = src.Face(f.pt(tickPt))
	f.labelFace = src.Face(f.pt(labelPt))
	f.titleFace = src.Face(f.pt(titlePt))
	f.legendFace = src.Face(f.pt(legendPt))
	f.noteFace = src.Face(f.pt(notePt))
	f.dc.ClearWithColor(gg.White)

	f.layout()
	if f.plot.w() <= 0 || f.plot.h() <= 0 {
		_ = f.Close()
		return nil, fmt.Errorf("%w: %dx%d px", ErrSize, width, height)
	}
	return f, nil
}

func loadFont(path string) (*text.FontSource, error) {
	if path == "" {
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("render: load default font: %w", err)
		}
		return src, nil
	}
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load font %s: %w", path, err)
	}
	return src, nil
}

// pt converts points to pixels.
func (f *Figure) pt(v float64) float64 {
	return v * f.scale
}

func lineHeight(face text.Face) float64 {
	m := face.Metrics()
	return m.Ascent + m.Descent
}

// layout sizes the plot area so the decorations just fit inside the canvas.
func (f *Figure) layout() {
	w, h := float64(f.dc.Width()), float64(f.dc.Height())
	pad := bboxPadIn * f.dpi

	f.xTicks, f.xStep = niceTicks(f.limits.MinX, f.limits.MaxX, targetTicks)
	f.yTicks, f.yStep = niceTicks(f.limits.MinY, f.limits.MaxY, targetTicks)
	f.yTickWidth = 0
	for _, v := range f.yTicks {
		f.yTickWidth = math.Max(f.yTickWidth, f.tickFace.Advance(tickLabel(v, f.yStep)))
	}
	lastX := f.tickFace.Advance(tickLabel(f.xTicks[len(f.xTicks)-1], f.xStep))

	f.plot = rect{
		x0: pad + lineHeight(f.labelFace) + f.pt(labelPad) + f.yTickWidth + f.pt(tickPad+tickLen),
		y0: pad + float64(len(f.labels.Title))*lineHeight(f.titleFace) + f.pt(titlePad),
		x1: w - pad - lastX/2,
		y1: h - pad - lineHeight(f.labelFace) - f.pt(labelPad) - lineHeight(f.tickFace) - f.pt(tickPad+tickLen),
	}
}

func (f *Figure) px(x float64) float64 {
	return f.plot.x0 + (x-f.limits.MinX)/(f.limits.MaxX-f.limits.MinX)*f.plot.w()
}

func (f *Figure) py(y float64) float64 {
	return f.plot.y1 - (y-f.limits.MinY)/(f.limits.MaxY-f.limits.MinY)*f.plot.h()
}

// Image returns the current canvas.
func (f *Figure) Image() image.Image {
	return f.dc.Image()
}

// Size returns the canvas size in pixels.
func (f *Figure) Size() (width, height int) {
	return f.dc.Width(), f.dc.Height()
}

// MissingGlyphs lists the label runes the loaded font cannot draw.
func (f *Figure) MissingGlyphs() []rune {
	seen := map[rune]bool{}
	var missing []rune
	for _, s := range f.labels.Strings() {
		for _, r := range s {
			if unicode.IsSpace(r) || seen[r] {
				continue
			}
			seen[r] = true
			if !f.labelFace.HasGlyph(r) {
				missing = append(missing, r)
			}
		}
	}
	return missing
}

// Encode writes the canvas as a PNG tagged with the figure DPI.
func (f *Figure) Encode(w io.Writer) error {
	var buf bytes.Buffer
	if err := f.dc.EncodePNG(&buf); err != nil {
		return fmt.Errorf("render: encode png: %w", err)
	}
	out, err := withDPI(buf.Bytes(), f.dpi)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("render: write png: %w", err)
	}
	return nil
}

// Save encodes the canvas to path. The parent directory must exist.
func (f *Figure) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	if err := f.Encode(file); err != nil {
		_ = file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	return nil
}

// Close releases the canvas and font.
func (f *Figure) Close() error {
	return errors.Join(f.dc.Close(), f.font.Close())
}
