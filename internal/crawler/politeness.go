package crawler

import (
	"context"
	"time"
)

// timerPauseController waits on a timer, honoring context cancellation.
type timerPauseController struct{}

// NewTimerPause returns the default PauseController.
func NewTimerPause() PauseController {
	return &timerPauseController{}
}

func (p *timerPauseController) Pause(ctx context.Context, delay time.Duration) {
	if delay <= 0 {
		return
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// noopPause skips waiting entirely; used in tests.
type noopPause struct{}

func (noopPause) Pause(context.Context, time.Duration) {}

// utcClock is the default Clock when none is injected.
type utcClock struct{}

func (utcClock) Now() time.Time { return time.Now().UTC() }
