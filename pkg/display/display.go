// Package display provides the sinks for decoded frames.
package display

import (
	"sync"

	"github.com/robotalks/oledvideo/pkg/framework"
	"github.com/robotalks/oledvideo/pkg/pump"
	"github.com/robotalks/oledvideo/pkg/rle"
)

type discard struct{}

func (discard) Render(*rle.Frame) error { return nil }

// Discard accepts and drops every frame.
var Discard pump.Display = discard{}

// Multi renders a frame on all displays.
// Every display gets the frame even if some of them fail.
type Multi []pump.Display

// Render implements pump.Display.
func (m Multi) Render(frame *rle.Frame) error {
	var errs framework.AggregatedError
	for _, d := range m {
		errs.Add(d.Render(frame))
	}
	return errs.Aggregate()
}

// Latest keeps a copy of the most recent frame for sinks which
// consume frames outside of the pump.
type Latest struct {
	lock  sync.RWMutex
	frame rle.Frame
	seq   uint64
}

// Render implements pump.Display.
func (l *Latest) Render(frame *rle.Frame) error {
	l.lock.Lock()
	l.frame = *frame
	l.seq++
	l.lock.Unlock()
	return nil
}

// Snapshot copies the latest frame into dst and returns its sequence
// number, 0 means nothing has been rendered yet.
func (l *Latest) Snapshot(dst *rle.Frame) uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	*dst = l.frame
	return l.seq
}

// Seq returns the sequence number of the latest frame.
func (l *Latest) Seq() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.seq
}
