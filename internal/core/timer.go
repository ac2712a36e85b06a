package core

import "time"

// FixedStep paces a poll loop at a steady ticks-per-second rate for callers
// that do not have a frame loop of their own.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of one tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// ShouldStep reports whether the loop should run one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Wait sleeps until the next tick is due and consumes it.
func (f *FixedStep) Wait() {
	for !f.ShouldStep() {
		remaining := f.step - f.accumulator
		if remaining <= 0 {
			continue
		}
		time.Sleep(remaining)
	}
}
