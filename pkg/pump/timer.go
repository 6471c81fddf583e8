package pump

import "time"

// SystemTimer implements Timer using the monotonic clock of the runtime.
type SystemTimer struct {
	start time.Time
}

// NewSystemTimer creates a SystemTimer counting from now.
func NewSystemTimer() *SystemTimer {
	return &SystemTimer{start: time.Now()}
}

// Micros implements Timer.
func (t *SystemTimer) Micros() uint64 {
	return uint64(time.Since(t.start) / time.Microsecond)
}

// DelayMicros implements Timer.
func (t *SystemTimer) DelayMicros(us uint64) {
	time.Sleep(time.Duration(us) * time.Microsecond)
}
