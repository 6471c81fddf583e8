// Package window shows decoded frames in a desktop window.
package window

import (
	"context"
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/robotalks/oledvideo/pkg/display"
	"github.com/robotalks/oledvideo/pkg/rle"
)

// DefaultScale is the default window size multiplier.
const DefaultScale = 6

var (
	pixelOn  = color.RGBA{R: 0xe8, G: 0xf4, B: 0xff, A: 0xff}
	pixelOff = color.RGBA{A: 0xff}
)

// Window implements pump.Display and ebiten.Game.
type Window struct {
	Title string
	Scale int

	latest display.Latest
	ctx    context.Context
	frame  rle.Frame
	seq    uint64
	rgba   *image.RGBA
	img    *ebiten.Image
}

// New creates a Window.
func New(title string, scale int) *Window {
	if scale <= 0 {
		scale = DefaultScale
	}
	return &Window{
		Title: title,
		Scale: scale,
		rgba:  image.NewRGBA(image.Rect(0, 0, rle.Width, rle.Height)),
	}
}

// Render implements pump.Display.
func (w *Window) Render(frame *rle.Frame) error {
	return w.latest.Render(frame)
}

// RunMain opens the window and blocks until it's closed or ctx is done.
// Must be called from the main goroutine.
func (w *Window) RunMain(ctx context.Context) error {
	w.ctx = ctx
	ebiten.SetWindowSize(rle.Width*w.Scale, rle.Height*w.Scale)
	ebiten.SetWindowTitle(w.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(w)
	if err == ebiten.Termination {
		return ctx.Err()
	}
	return err
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.ctx != nil && w.ctx.Err() != nil {
		return ebiten.Termination
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(rle.Width, rle.Height)
	}
	if seq := w.latest.Snapshot(&w.frame); seq != w.seq {
		w.seq = seq
		w.frame.DrawTo(w.rgba, pixelOn, pixelOff)
		w.img.WritePixels(w.rgba.Pix)
	}
	screen.DrawImage(w.img, nil)
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return rle.Width, rle.Height
}
