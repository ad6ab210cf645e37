package event

import (
	"context"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/lovefest/lovefest_backend/config"
)

func TestUntil(t *testing.T) {
	target := time.Date(2025, 11, 3, 11, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		now  time.Time
		want Remaining
	}{
		{"mixed units", target.Add(-(2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second + 900*time.Millisecond)),
			Remaining{Days: 2, Hours: 3, Minutes: 4, Seconds: 5}},
		{"under a second", target.Add(-500 * time.Millisecond), Remaining{}},
		{"exactly at start", target, Remaining{Started: true}},
		{"after start", target.Add(time.Hour), Remaining{Started: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Until(target, tt.now); got != tt.want {
				t.Errorf("Until() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFromConfigAndCalendarURL(t *testing.T) {
	d, err := FromConfig(config.EventConfig{
		Title:       "R & D Engagement",
		Description: "Join us",
		Venue:       "Gymkhana Club, Karnal",
		Start:       "2025-11-03T11:00:00",
		End:         "2025-11-03T23:59:00",
		Location:    "Asia/Kolkata",
	})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}

	u, err := url.Parse(CalendarURL(d))
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	q := u.Query()
	if u.Host != "calendar.google.com" || q.Get("action") != "TEMPLATE" {
		t.Fatalf("url = %s", u)
	}
	if got := q.Get("dates"); got != "20251103T110000/20251103T235900" {
		t.Errorf("dates = %q", got)
	}
	if q.Get("text") != "R & D Engagement" || q.Get("location") != "Gymkhana Club, Karnal" {
		t.Errorf("query = %v", q)
	}
	if q.Get("ctz") != "Asia/Kolkata" {
		t.Errorf("ctz = %q", q.Get("ctz"))
	}
}

func TestFromConfig_DefaultEnd(t *testing.T) {
	d, err := FromConfig(config.EventConfig{Start: "2025-11-03T11:00:00"})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if d.End.Sub(d.Start) != DefaultDuration {
		t.Fatalf("duration = %v", d.End.Sub(d.Start))
	}
	if _, err := FromConfig(config.EventConfig{Start: "tomorrow"}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestCountdown_EmitsUntilCancelled(t *testing.T) {
	target := time.Now().Add(time.Hour)
	c := NewCountdown(target, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	ch := c.Start(ctx)

	for i := 0; i < 3; i++ {
		select {
		case r, ok := <-ch:
			if !ok {
				t.Fatal("channel closed early")
			}
			if r.Started || r.Minutes < 58 {
				t.Fatalf("unexpected remaining %+v", r)
			}
		case <-time.After(time.Second):
			t.Fatal("no tick")
		}
	}

	cancel()
	for range ch {
	}
	c.Stop()
	c.Stop()
}

func TestCountdown_StopClosesChannel(t *testing.T) {
	c := NewCountdown(time.Now().Add(time.Hour), time.Hour)
	ch := c.Start(context.Background())
	<-ch
	c.Stop()
	if _, ok := <-ch; ok {
		t.Fatal("channel still open after Stop")
	}
}

func TestCountdown_FinishesWhenStarted(t *testing.T) {
	c := NewCountdown(time.Now().Add(-time.Minute), time.Millisecond)
	ch := c.Start(context.Background())
	r := <-ch
	if !r.Started {
		t.Fatalf("remaining = %+v, want started", r)
	}
	if _, ok := <-ch; ok {
		t.Fatal("channel should close once the event starts")
	}
	c.Stop()
}

func TestCountdown_ConcurrentStartsAllClose(t *testing.T) {
	c := NewCountdown(time.Now().Add(time.Hour), time.Hour)

	const n = 16
	chans := make([]<-chan Remaining, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			chans[i] = c.Start(context.Background())
		}(i)
	}
	wg.Wait()
	c.Stop()

	for i, ch := range chans {
		closed := make(chan struct{})
		go func() {
			for range ch {
			}
			close(closed)
		}()
		select {
		case <-closed:
		case <-time.After(time.Second):
			t.Fatalf("countdown %d still running after Stop", i)
		}
	}
}
