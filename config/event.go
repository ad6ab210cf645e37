package config

import (
	"fmt"
	"time"
)

const EventTimeLayout = "2006-01-02T15:04:05"

// Loc resolves the configured IANA zone, falling back to UTC.
func (e EventConfig) Loc() (*time.Location, error) {
	if e.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(e.Location)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", e.Location, err)
	}
	return loc, nil
}

func (e EventConfig) StartTime() (time.Time, error) {
	return e.parse(e.Start)
}

func (e EventConfig) EndTime() (time.Time, error) {
	return e.parse(e.End)
}

func (e EventConfig) parse(v string) (time.Time, error) {
	loc, err := e.Loc()
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.ParseInLocation(EventTimeLayout, v, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse %q: %w", v, err)
	}
	return t, nil
}
