package pacing

import (
	"context"
	"time"

	"CowsayNews/internal/ports"
)

type fixed struct {
	delay time.Duration
}

var _ ports.Pacer = fixed{}

// Fixed returns a pacer that sleeps for the given duration on every call.
func Fixed(delay time.Duration) ports.Pacer {
	return fixed{delay: delay}
}

// None returns a pacer that never sleeps, for tests.
func None() ports.Pacer {
	return fixed{}
}

func (f fixed) Pace(ctx context.Context) {
	if f.delay <= 0 {
		return
	}

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}
