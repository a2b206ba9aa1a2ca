// Package filmstrip records the sampled output of animations frame by frame
// and renders it as an image: one row per animation, one column per frame.
//
// A cell takes the first colour-valued property of the animation's output.
// Without one, an "opacity" property is drawn as a grey level. Frames where
// the effect is not in effect stay blank.
package filmstrip

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/go-drift/webanim/pkg/animations"
)

// Recorder accumulates frames. The zero value is ready to use.
type Recorder struct {
	rows   []string
	index  map[string]int
	frames []frame
}

type frame struct {
	time  float64
	cells map[int]color.Color
}

// sampler is implemented by effects that report computed output.
type sampler interface {
	Sample() map[string]string
}

// Capture records one frame taken at now. Its signature matches
// scenario.WithFrameHook.
func (r *Recorder) Capture(now float64, anims []*animations.Animation) {
	if r.index == nil {
		r.index = make(map[string]int)
	}
	f := frame{time: now, cells: make(map[int]color.Color)}
	for i, a := range anims {
		id := a.ID()
		if id == "" {
			id = "#" + strconv.Itoa(i)
		}
		row, ok := r.index[id]
		if !ok {
			row = len(r.rows)
			r.rows = append(r.rows, id)
			r.index[id] = row
		}
		s, ok := a.Effect().(sampler)
		if !ok {
			continue
		}
		if c, ok := CellColor(s.Sample()); ok {
			f.cells[row] = c
		}
	}
	r.frames = append(r.frames, f)
}

// Rows returns the animation ids in row order.
func (r *Recorder) Rows() []string { return slices.Clone(r.rows) }

// Frames returns the number of captured frames.
func (r *Recorder) Frames() int { return len(r.frames) }

// Times returns the capture time of every frame.
func (r *Recorder) Times() []float64 {
	out := make([]float64, len(r.frames))
	for i, f := range r.frames {
		out[i] = f.time
	}
	return out
}

// At returns the cell colour for row and frame, if one was recorded.
func (r *Recorder) At(row, frame int) (color.Color, bool) {
	if frame < 0 || frame >= len(r.frames) {
		return nil, false
	}
	c, ok := r.frames[frame].cells[row]
	return c, ok
}

// CellColor picks the colour drawn for a sampled output.
func CellColor(out map[string]string) (color.Color, bool) {
	keys := slices.Sorted(maps.Keys(out))
	for _, k := range keys {
		v := out[k]
		if !strings.HasPrefix(v, "#") {
			continue
		}
		if c, err := colorful.Hex(v); err == nil {
			return c.Clamped(), true
		}
	}
	if v, ok := out["opacity"]; ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, false
		}
		f = min(max(f, 0), 1)
		return colorful.Color{R: f, G: f, B: f}, true
	}
	return nil, false
}

// Options controls Render. Zero fields take defaults.
type Options struct {
	// Cell is the edge length of one frame cell in pixels. Default 8.
	Cell int
	// Background fills blank cells and the label column. Default white.
	Background color.Color
}

const (
	labelPadding = 4
	minRowHeight = 16
)

// Render draws the recorded frames. Returns an error when nothing was
// recorded.
func (r *Recorder) Render(opts Options) (*image.RGBA, error) {
	if len(r.frames) == 0 || len(r.rows) == 0 {
		return nil, fmt.Errorf("filmstrip: nothing recorded")
	}
	cell := opts.Cell
	if cell <= 0 {
		cell = 8
	}
	bg := opts.Background
	if bg == nil {
		bg = color.White
	}

	face := basicfont.Face7x13
	labelWidth := 0
	for _, id := range r.rows {
		labelWidth = max(labelWidth, font.MeasureString(face, id).Ceil())
	}
	labelWidth += 2 * labelPadding
	rowHeight := max(cell, minRowHeight)

	// One pixel per cell, scaled up afterwards.
	cells := image.NewRGBA(image.Rect(0, 0, len(r.frames), len(r.rows)))
	for x, f := range r.frames {
		for y, c := range f.cells {
			cells.Set(x, y, c)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, labelWidth+len(r.frames)*cell, len(r.rows)*rowHeight))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	strip := image.Rect(labelWidth, 0, dst.Bounds().Dx(), dst.Bounds().Dy())
	draw.NearestNeighbor.Scale(dst, strip, cells, cells.Bounds(), draw.Over, nil)

	d := &font.Drawer{Dst: dst, Src: image.Black, Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, id := range r.rows {
		baseline := i*rowHeight + (rowHeight+ascent)/2
		d.Dot = fixed.P(labelPadding, baseline)
		d.DrawString(id)
	}
	return dst, nil
}

// WritePNG renders the recorded frames and encodes them as PNG.
func (r *Recorder) WritePNG(w io.Writer, opts Options) error {
	img, err := r.Render(opts)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}
