package sh

import (
	"errors"

	"github.com/robotalks/oledvideo/pkg/asset"
	"github.com/robotalks/oledvideo/pkg/rle"
)

// ErrNoStream indicates no stream is loaded.
var ErrNoStream = errors.New("no stream loaded")

// Inspector steps through a stream frame by frame.
type Inspector struct {
	Path    string
	Stream  []byte
	Decoder rle.Decoder
	Frame   rle.Frame
	// FrameIndex is the index of the frame in Frame, -1 if none.
	FrameIndex int
}

// State is a snapshot of the inspector.
type State struct {
	Path         string `json:"path"`
	Size         int    `json:"size"`
	Frames       int    `json:"frames"`
	Trailing     int    `json:"trailing_bytes"`
	FrameIndex   int    `json:"frame_index"`
	Position     int    `json:"position"`
	DecodeState  string `json:"decode_state"`
	BytesWritten int    `json:"bytes_written"`
}

// NewInspector creates an Inspector without a stream.
func NewInspector() *Inspector {
	return &Inspector{FrameIndex: -1}
}

// Load loads the stream at path, see asset.Load.
func (i *Inspector) Load(path string) error {
	stream, err := asset.Load(path)
	if err != nil {
		return err
	}
	if path == "" {
		path = asset.DemoName
	}
	i.Path, i.Stream = path, stream
	i.Reset()
	return nil
}

// Reset rewinds to the beginning of the stream.
func (i *Inspector) Reset() {
	i.Decoder.Reset()
	i.Frame = rle.Frame{}
	i.FrameIndex = -1
}

// Next decodes up to n frames and returns the number of complete frames.
// Playback loops at the end of the stream like the pump does.
func (i *Inspector) Next(n int) (int, error) {
	if len(i.Stream) == 0 {
		return 0, ErrNoStream
	}
	var decoded, misses int
	for decoded < n && misses < 2 {
		if i.Decoder.Position() >= len(i.Stream) {
			i.FrameIndex = -1
		}
		if i.Decoder.DecodeFrame(&i.Frame, i.Stream) {
			decoded++
			misses = 0
			i.FrameIndex++
		} else {
			misses++
		}
	}
	return decoded, nil
}

// State returns the current state.
func (i *Inspector) State() State {
	frames, trailing := CountFrames(i.Stream)
	return State{
		Path:         i.Path,
		Size:         len(i.Stream),
		Frames:       frames,
		Trailing:     trailing,
		FrameIndex:   i.FrameIndex,
		Position:     i.Decoder.Position(),
		DecodeState:  i.Decoder.State().String(),
		BytesWritten: i.Decoder.BytesWritten(),
	}
}

// CountFrames decodes a whole pass of the stream and returns the number of
// complete frames and the number of bytes produced after the last one.
func CountFrames(stream []byte) (frames, trailing int) {
	var d rle.Decoder
	var frame rle.Frame
	for d.Position() < len(stream) {
		if d.DecodeFrame(&frame, stream) {
			frames++
		}
	}
	return frames, d.BytesWritten()
}
