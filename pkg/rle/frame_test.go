package rle

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFramePixel(t *testing.T) {
	var f Frame
	f[0] = 0x80
	f[Stride+1] = 0x01
	f[FrameSize-1] = 0x01

	require.True(t, f.Pixel(0, 0))
	require.False(t, f.Pixel(1, 0))
	require.True(t, f.Pixel(15, 1))
	require.False(t, f.Pixel(14, 1))
	require.True(t, f.Pixel(Width-1, Height-1))
	require.False(t, f.Pixel(-1, 0))
	require.False(t, f.Pixel(Width, 0))
	require.False(t, f.Pixel(0, Height))
}

func TestFrameImage(t *testing.T) {
	var f Frame
	f[0] = 0xc0
	img := f.Image()
	require.Equal(t, f.Bounds(), img.Bounds())
	require.Equal(t, color.Gray{Y: 0xff}, img.GrayAt(0, 0))
	require.Equal(t, color.Gray{Y: 0xff}, img.GrayAt(1, 0))
	require.Equal(t, color.Gray{}, img.GrayAt(2, 0))
	require.Equal(t, color.Gray{}, img.GrayAt(0, 1))
}
