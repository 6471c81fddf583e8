package pump

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/oledvideo/pkg/rle"
)

type fakeTimer struct {
	now    uint64
	sleeps []uint64
}

func (t *fakeTimer) Micros() uint64 {
	return t.now
}

func (t *fakeTimer) DelayMicros(us uint64) {
	t.sleeps = append(t.sleeps, us)
	t.now += us
}

type fakeDisplay struct {
	timer    *fakeTimer
	cost     uint64
	errs     []error
	frames   [][]byte
	onRender func(*fakeDisplay)
}

func (d *fakeDisplay) Render(frame *rle.Frame) (err error) {
	d.frames = append(d.frames, append([]byte(nil), frame[:]...))
	d.timer.now += d.cost
	if len(d.errs) > 0 {
		err, d.errs = d.errs[0], d.errs[1:]
	}
	if d.onRender != nil {
		d.onRender(d)
	}
	return
}

// two complete frames: all ones, then all zeros.
var twoFrames = []byte{0xaa, 0x80, 0x08, 0x55, 0x80, 0x08}

func newTestPump(stream []byte, cost uint64, errs ...error) (*Pump, *fakeTimer, *fakeDisplay) {
	timer := &fakeTimer{now: 1000}
	display := &fakeDisplay{timer: timer, cost: cost, errs: errs}
	return New(stream, display, timer, 20), timer, display
}

func TestIntervalFor(t *testing.T) {
	require.Equal(t, uint64(50000), IntervalFor(20))
	require.Equal(t, uint64(33333), IntervalFor(30))
	require.Equal(t, uint64(1000000), IntervalFor(1))
	require.Equal(t, uint64(50000), IntervalFor(0))
	require.Equal(t, uint64(50000), IntervalFor(-5))
}

func TestCyclePacing(t *testing.T) {
	testCases := []struct {
		name     string
		cost     uint64
		slept    uint64
		overruns uint64
	}{
		{name: "sleep remaining", cost: 10000, slept: 40000},
		{name: "no cost", cost: 0, slept: 50000},
		{name: "exact interval", cost: 50000, overruns: 1},
		{name: "overrun", cost: 60000, overruns: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, timer, display := newTestPump(twoFrames, tc.cost)
			r := p.Cycle()
			require.True(t, r.Rendered)
			require.NoError(t, r.RenderErr)
			require.Equal(t, tc.cost, r.Elapsed)
			require.Equal(t, tc.slept, r.Slept)
			if tc.slept > 0 {
				require.Equal(t, []uint64{tc.slept}, timer.sleeps)
			} else {
				require.Empty(t, timer.sleeps)
			}
			require.Len(t, display.frames, 1)
			require.Equal(t, tc.overruns, p.Stats().Overruns)
		})
	}
}

func TestCycleOrderAndLoop(t *testing.T) {
	p, timer, display := newTestPump(twoFrames, 0)
	for i := 0; i < 5; i++ {
		require.True(t, p.Cycle().Rendered)
	}
	require.Len(t, display.frames, 5)
	for n, frame := range display.frames {
		expect := byte(0xff)
		if n%2 == 1 {
			expect = 0
		}
		for i, b := range frame {
			require.Equalf(t, expect, b, "frame %d byte %d", n, i)
		}
	}
	require.Len(t, timer.sleeps, 5)
	stats := p.Stats()
	require.Equal(t, uint64(5), stats.Frames)
	require.Equal(t, uint64(2), stats.Loops)
	require.Zero(t, stats.Incomplete)
}

func TestCycleIncompleteFrame(t *testing.T) {
	p, timer, display := newTestPump([]byte{0x12, 0x34}, 0)
	r := p.Cycle()
	require.False(t, r.Rendered)
	require.Zero(t, r.Slept)
	require.Empty(t, timer.sleeps)
	require.Empty(t, display.frames)
	require.Equal(t, 2, p.Decoder().BytesWritten())

	r = p.Cycle()
	require.False(t, r.Rendered)
	require.Empty(t, timer.sleeps)
	stats := p.Stats()
	require.Equal(t, uint64(2), stats.Incomplete)
	require.Equal(t, uint64(1), stats.Loops)
	require.Equal(t, 2, p.Decoder().BytesWritten())
}

func TestCycleRenderFailureIgnored(t *testing.T) {
	failure := errors.New("i2c nack")
	p, timer, display := newTestPump(twoFrames, 1000, failure, failure)

	r := p.Cycle()
	require.True(t, r.Rendered)
	require.Equal(t, failure, r.RenderErr)
	require.Equal(t, uint64(49000), r.Slept)

	r = p.Cycle()
	require.Equal(t, failure, r.RenderErr)
	r = p.Cycle()
	require.NoError(t, r.RenderErr)

	require.Len(t, display.frames, 3)
	require.Len(t, timer.sleeps, 3)
	require.Equal(t, uint64(2), p.Stats().RenderErrors)
	require.Equal(t, uint64(3), p.Stats().Frames)
}

func TestCycleWithoutDisplay(t *testing.T) {
	timer := &fakeTimer{now: 1000}
	p := New(twoFrames, nil, timer, 20)

	r := p.Cycle()
	require.True(t, r.Rendered)
	require.Equal(t, ErrNoDisplay, r.RenderErr)
	require.Equal(t, []uint64{50000}, timer.sleeps)
	require.Equal(t, uint64(1), p.Stats().RenderErrors)
}

func TestRun(t *testing.T) {
	p, _, display := newTestPump(twoFrames, 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	display.onRender = func(d *fakeDisplay) {
		if len(d.frames) == 7 {
			cancel()
		}
	}
	require.Equal(t, context.Canceled, p.Run(ctx))
	require.Len(t, display.frames, 7)
	require.Equal(t, uint64(7), p.Stats().Frames)
}

func TestRunErrors(t *testing.T) {
	p, _, _ := newTestPump(nil, 0)
	require.Equal(t, ErrEmptyStream, p.Run(context.Background()))

	p = New(twoFrames, nil, &fakeTimer{}, 20)
	require.Equal(t, ErrNoDisplay, p.Run(context.Background()))
}

func TestNewDefaults(t *testing.T) {
	p := New(twoFrames, RenderFunc(func(*rle.Frame) error { return nil }), nil, 0)
	require.Equal(t, uint64(50000), p.Interval)
	require.Equal(t, DefaultFPS, p.FPS())
	require.IsType(t, &SystemTimer{}, p.Timer)
	require.Equal(t, "pump", p.Name())
}

func TestSystemTimer(t *testing.T) {
	timer := NewSystemTimer()
	start := timer.Micros()
	timer.DelayMicros(2000)
	require.True(t, timer.Micros()-start >= 2000)
}
