package export

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"io"

	colorful "github.com/lucasb-eyer/go-colorful"
)

var ErrNoFrames = errors.New("export: no frames recorded")

func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// Palette blends from bg to fg in n steps in Lab space, so a GIF of the
// monochrome field keeps smooth link falloff.
func Palette(bg, fg color.NRGBA, n int) color.Palette {
	if n < 2 {
		n = 2
	}
	from := colorful.Color{R: float64(bg.R) / 255, G: float64(bg.G) / 255, B: float64(bg.B) / 255}
	to := colorful.Color{R: float64(fg.R) / 255, G: float64(fg.G) / 255, B: float64(fg.B) / 255}

	pal := make(color.Palette, n)
	for i := range pal {
		c := from.BlendLab(to, float64(i)/float64(n-1)).Clamped()
		r, g, b := c.RGB255()
		pal[i] = color.NRGBA{R: r, G: g, B: b, A: 255}
	}
	return pal
}

// GIFRecorder collects frames and encodes them as a looping animation.
type GIFRecorder struct {
	Palette color.Palette
	Delay   int // hundredths of a second per frame
	Max     int // oldest frames are dropped past this; 0 keeps all

	frames []*image.Paletted
}

func NewGIFRecorder(pal color.Palette, delay, max int) *GIFRecorder {
	return &GIFRecorder{Palette: pal, Delay: delay, Max: max}
}

// Add quantizes img to the recorder palette and stores it.
func (r *GIFRecorder) Add(img image.Image) {
	frame := image.NewPaletted(img.Bounds(), r.Palette)
	draw.Draw(frame, frame.Bounds(), img, img.Bounds().Min, draw.Src)
	r.frames = append(r.frames, frame)
	if r.Max > 0 && len(r.frames) > r.Max {
		r.frames = r.frames[1:]
	}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Reset() { r.frames = nil }

func (r *GIFRecorder) Encode(w io.Writer) error {
	if len(r.frames) == 0 {
		return ErrNoFrames
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range r.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, r.Delay)
	}
	return gif.EncodeAll(w, &anim)
}
