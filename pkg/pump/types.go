package pump

import "github.com/robotalks/oledvideo/pkg/rle"

// Display renders a complete frame.
// The frame is only valid until Render returns.
type Display interface {
	Render(*rle.Frame) error
}

// RenderFunc is the func form of Display.
type RenderFunc func(*rle.Frame) error

// Render implements Display.
func (f RenderFunc) Render(frame *rle.Frame) error {
	return f(frame)
}

// Timer provides the monotonic counter and the blocking delay.
type Timer interface {
	// Micros returns the monotonic counter in microseconds.
	Micros() uint64
	// DelayMicros blocks for the specified microseconds.
	DelayMicros(us uint64)
}

// Stats counts what happened during playback.
type Stats struct {
	// Frames is the number of frames rendered, including failed renders.
	Frames uint64
	// Incomplete is the number of cycles ending without a complete frame.
	Incomplete uint64
	// RenderErrors is the number of failed renders.
	RenderErrors uint64
	// Overruns is the number of frames which didn't fit in the interval.
	Overruns uint64
	// Loops is the number of times playback restarted from the beginning.
	Loops uint64
}

// CycleResult describes a single cycle.
type CycleResult struct {
	// Rendered indicates a complete frame was handed to the display.
	Rendered bool
	// RenderErr is the error from the display, ignored by the pump.
	RenderErr error
	// Elapsed is the time spent on decoding and rendering in microseconds.
	Elapsed uint64
	// Slept is the delay applied after rendering in microseconds.
	Slept uint64
}
