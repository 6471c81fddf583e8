// Package asset provides the encoded video streams.
package asset

import (
	_ "embed" // demo stream
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/klauspost/compress/zstd"
)

// DemoName is the name to select the embedded demo stream.
const DemoName = "demo"

//go:embed demo.rle
var demo []byte

// Demo returns the embedded demo stream.
// The returned slice must not be modified.
func Demo() []byte {
	return demo
}

// Load reads a stream from path. Files ending with .zst are
// decompressed. DemoName or an empty path selects the embedded demo.
func Load(path string) ([]byte, error) {
	if path == "" || path == DemoName {
		return Demo(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".zst") {
		if data, err = Decompress(data); err != nil {
			return nil, fmt.Errorf("%s: %v", path, err)
		}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %v", path, ErrEmpty)
	}
	glog.V(1).Infof("loaded %s: %d bytes", path, len(data))
	return data, nil
}

// Decompress expands a zstd compressed stream.
func Decompress(data []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderLowmem(true))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	out, err := dec.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("zstd decode: %v", err)
	}
	return out, nil
}

// Compress packs a stream with zstd, the inverse of Decompress.
func Compress(data []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(data, nil), nil
}
