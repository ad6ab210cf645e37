package event

import (
	"context"
	"sync"
	"time"
)

// Remaining is the time left until the event, split into display units.
type Remaining struct {
	Days    int64 `json:"days"`
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
	Seconds int64 `json:"seconds"`
	Started bool  `json:"started"`
}

// Until computes the countdown from now to target. Once target has passed all
// units are zero and Started is set.
func Until(target, now time.Time) Remaining {
	d := target.Sub(now)
	if d <= 0 {
		return Remaining{Started: true}
	}
	secs := int64(d / time.Second)
	return Remaining{
		Days:    secs / 86400,
		Hours:   secs % 86400 / 3600,
		Minutes: secs % 3600 / 60,
		Seconds: secs % 60,
	}
}

// Countdown recomputes Remaining on a fixed interval until stopped.
type Countdown struct {
	target   time.Time
	interval time.Duration
	now      func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewCountdown(target time.Time, interval time.Duration) *Countdown {
	if interval <= 0 {
		interval = time.Second
	}
	return &Countdown{target: target, interval: interval, now: time.Now}
}

// Start emits the current value immediately and then once per interval. The
// channel is closed when ctx is cancelled, Stop is called, or the event starts.
// Calling Start on a running countdown restarts it.
func (c *Countdown) Start(ctx context.Context) <-chan Remaining {
	ctx, cancel := context.WithCancel(ctx)
	out := make(chan Remaining, 1)
	done := make(chan struct{})

	c.mu.Lock()
	prevCancel, prevDone := c.cancel, c.done
	c.cancel, c.done = cancel, done
	if prevCancel != nil {
		prevCancel()
	}
	c.mu.Unlock()

	if prevDone != nil {
		<-prevDone
	}

	go func() {
		defer close(done)
		defer close(out)
		defer cancel()

		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			r := Until(c.target, c.now())
			select {
			case out <- r:
			case <-ctx.Done():
				return
			}
			if r.Started {
				return
			}
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Stop cancels the running ticker and waits for it to exit. Safe to call
// more than once.
func (c *Countdown) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
}
