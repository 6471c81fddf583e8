// Package rle decodes the run-length encoded 1bpp video stream.
package rle

// The stream is a flat sequence of bytes produced for a 128x64 monochrome
// panel. Frame boundaries are not marked: a frame is complete whenever
// FrameSize output bytes have been produced.
//
// Two byte values are reserved as escape markers:
//
//	0x55 NN           run of NN (1..127) bytes of 0x00
//	0xAA NN           run of NN (1..127) bytes of 0xFF
//	0x55 LL HH        run of (LL & 0x7f) | HH << 7 bytes of 0x00, LL >= 0x80
//	0xAA LL HH        run of (LL & 0x7f) | HH << 7 bytes of 0xFF, LL >= 0x80
//	0x55 0x00         literal 0x55
//	0xAA 0x00         literal 0xAA
//
// Any other byte is copied to the output as is.
// Runs never cross a frame boundary: the part of a run which doesn't fit
// into the current frame is dropped.
//
// Producer: offline encoder
// Consumer: frame pump
