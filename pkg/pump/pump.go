package pump

import (
	"context"
	"time"

	"github.com/golang/glog"
	"golang.org/x/time/rate"

	"github.com/robotalks/oledvideo/pkg/rle"
)

// DefaultFPS is the default target frame rate.
const DefaultFPS = 20

// IntervalFor calculates the frame interval in microseconds.
func IntervalFor(fps int) uint64 {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return 1000000 / uint64(fps)
}

// Pump decodes frames from Stream and renders them on Display.
type Pump struct {
	Stream  []byte
	Display Display
	Timer   Timer
	// Interval is the target frame interval in microseconds.
	Interval uint64
	// StatsEvery logs stats at verbose level 1 after the number of frames,
	// 0 disables it.
	StatsEvery uint64

	decoder rle.Decoder
	frame   rle.Frame
	stats   Stats

	errLimiter *rate.Limiter
}

// New creates a Pump running at fps.
func New(stream []byte, display Display, timer Timer, fps int) *Pump {
	if timer == nil {
		timer = NewSystemTimer()
	}
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Pump{
		Stream:     stream,
		Display:    display,
		Timer:      timer,
		Interval:   IntervalFor(fps),
		StatsEvery: uint64(fps) * 10,
		errLimiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

// Name implements framework.Named.
func (p *Pump) Name() string {
	return "pump"
}

// FPS returns the frame rate derived from Interval.
func (p *Pump) FPS() int {
	if p.Interval == 0 {
		return DefaultFPS
	}
	return int(1000000 / p.Interval)
}

// Decoder exposes the decoder state.
func (p *Pump) Decoder() *rle.Decoder {
	return &p.decoder
}

// Stats returns the playback counters.
// It must not be called concurrently with Cycle.
func (p *Pump) Stats() Stats {
	return p.stats
}

// Cycle decodes and renders at most one frame and sleeps for the rest of
// the frame interval if a frame was rendered.
func (p *Pump) Cycle() (r CycleResult) {
	start := p.Timer.Micros()
	if len(p.Stream) > 0 && p.decoder.Position() >= len(p.Stream) {
		p.stats.Loops++
	}
	if !p.decoder.DecodeFrame(&p.frame, p.Stream) {
		p.stats.Incomplete++
		return
	}

	r.Rendered = true
	p.stats.Frames++
	if p.Display == nil {
		r.RenderErr = ErrNoDisplay
	} else {
		r.RenderErr = p.Display.Render(&p.frame)
	}
	if r.RenderErr != nil {
		p.stats.RenderErrors++
		if p.errLimiter == nil || p.errLimiter.Allow() {
			glog.Warningf("render error: %v (%d failures)", r.RenderErr, p.stats.RenderErrors)
		}
	}

	if now := p.Timer.Micros(); now > start {
		r.Elapsed = now - start
	}
	interval := p.Interval
	if interval == 0 {
		interval = IntervalFor(DefaultFPS)
	}
	if r.Elapsed < interval {
		r.Slept = interval - r.Elapsed
		p.Timer.DelayMicros(r.Slept)
	} else {
		p.stats.Overruns++
		glog.V(2).Infof("frame %d overrun: %dus", p.stats.Frames, r.Elapsed)
	}
	return
}

// Run implements Runnable.
// It plays the stream in a loop until ctx is done, which is only checked
// between cycles.
func (p *Pump) Run(ctx context.Context) error {
	if len(p.Stream) == 0 {
		return ErrEmptyStream
	}
	if p.Display == nil {
		return ErrNoDisplay
	}
	if p.Timer == nil {
		p.Timer = NewSystemTimer()
	}
	glog.Infof("Starting video playback at %d FPS", p.FPS())
	for {
		select {
		case <-ctx.Done():
			glog.Infof("playback stopped: %+v", p.stats)
			return ctx.Err()
		default:
		}
		if r := p.Cycle(); r.Rendered && p.StatsEvery > 0 && p.stats.Frames%p.StatsEvery == 0 {
			glog.V(1).Infof("playback: %+v", p.stats)
		}
	}
}
