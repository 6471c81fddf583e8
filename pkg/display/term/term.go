// Package term renders frames on an ANSI terminal using half block
// characters, two pixel rows per text line.
package term

import (
	"bytes"
	"io"
	"strings"

	"github.com/logrusorgru/aurora"

	"github.com/robotalks/oledvideo/pkg/rle"
)

const (
	cursorHome  = "\x1b[H"
	clearScreen = "\x1b[2J"
)

// Display implements pump.Display on a terminal.
type Display struct {
	Out io.Writer

	au      aurora.Aurora
	buf     bytes.Buffer
	line    strings.Builder
	started bool
}

// New creates a Display writing to out, colors enables ANSI colors.
func New(out io.Writer, colors bool) *Display {
	return &Display{Out: out, au: aurora.NewAurora(colors)}
}

// Render implements pump.Display.
func (d *Display) Render(frame *rle.Frame) error {
	d.buf.Reset()
	if !d.started {
		d.buf.WriteString(clearScreen)
		d.started = true
	}
	d.buf.WriteString(cursorHome)
	for y := 0; y < rle.Height; y += 2 {
		d.line.Reset()
		writeRow(&d.line, frame, y)
		d.buf.WriteString(d.au.White(d.line.String()).String())
		d.buf.WriteByte('\n')
	}
	_, err := d.Out.Write(d.buf.Bytes())
	return err
}

// Text returns the frame drawn with half blocks without any escape codes.
func Text(frame *rle.Frame) string {
	var sb strings.Builder
	for y := 0; y < rle.Height; y += 2 {
		writeRow(&sb, frame, y)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func writeRow(sb *strings.Builder, frame *rle.Frame, y int) {
	for x := 0; x < rle.Width; x++ {
		top, bottom := frame.Pixel(x, y), frame.Pixel(x, y+1)
		switch {
		case top && bottom:
			sb.WriteRune('█')
		case top:
			sb.WriteRune('▀')
		case bottom:
			sb.WriteRune('▄')
		default:
			sb.WriteByte(' ')
		}
	}
}
