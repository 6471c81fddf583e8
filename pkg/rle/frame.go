package rle

import (
	"image"
	"image/color"
)

// Frame geometry.
const (
	Width  = 128
	Height = 64
	// Stride is the number of bytes per row.
	Stride = Width / 8
	// FrameSize is the number of bytes in a frame.
	FrameSize = Stride * Height
)

// Frame is a 1bpp bitmap, row-major, the most significant bit of
// each byte is the leftmost pixel.
type Frame [FrameSize]byte

// Pixel reports whether the pixel at (x, y) is on.
// Coordinates out of range are reported as off.
func (f *Frame) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Stride+x/8]&(0x80>>uint(x%8)) != 0
}

// Bounds returns the frame rectangle.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

// Image converts the frame to a grayscale image.
func (f *Frame) Image() *image.Gray {
	img := image.NewGray(f.Bounds())
	f.DrawTo(img, color.Gray{Y: 0xff}, color.Gray{})
	return img
}

// DrawTo paints every pixel of the frame into img with on/off colors.
func (f *Frame) DrawTo(img interface{ Set(x, y int, c color.Color) }, on, off color.Color) {
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f.Pixel(x, y) {
				img.Set(x, y, on)
			} else {
				img.Set(x, y, off)
			}
		}
	}
}
