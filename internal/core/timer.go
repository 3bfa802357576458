package core

import "time"

// FixedStep paces simulation updates at a steady ticks-per-second rate,
// independent of how often the caller polls. The accumulator starts
// primed with one full step, so the first poll always ticks.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	if tps <= 0 {
		tps = 60
	}
	step := time.Second / time.Duration(tps)
	return &FixedStep{step: step, accumulator: step}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := time.Now()
	if !f.last.IsZero() {
		f.accumulator += now.Sub(f.last)
	}
	f.last = now
	if f.accumulator < f.step {
		return false
	}
	f.accumulator -= f.step
	return true
}
