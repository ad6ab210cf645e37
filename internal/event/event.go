// Package event describes the celebration: its details, the add-to-calendar
// link and the countdown shown until it starts.
package event

import (
	"fmt"
	"net/url"
	"time"

	"github.com/lovefest/lovefest_backend/config"
)

// DefaultDuration is used when no end time is configured.
const DefaultDuration = 4 * time.Hour

type Details struct {
	Title       string    `json:"title"`
	Couple      string    `json:"couple"`
	Description string    `json:"description"`
	Venue       string    `json:"venue"`
	MapURL      string    `json:"map_url,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	DressCode   string    `json:"dress_code,omitempty"`
	Location    string    `json:"time_zone"`
}

func FromConfig(c config.EventConfig) (Details, error) {
	d := Details{
		Title:       c.Title,
		Couple:      c.Couple,
		Description: c.Description,
		Venue:       c.Venue,
		MapURL:      c.MapURL,
		DressCode:   c.DressCode,
		Location:    c.Location,
	}
	if d.Location == "" {
		d.Location = "UTC"
	}
	if c.Start == "" {
		return d, nil
	}
	start, err := c.StartTime()
	if err != nil {
		return Details{}, fmt.Errorf("event start: %w", err)
	}
	d.Start = start
	d.End = start.Add(DefaultDuration)
	if c.End != "" {
		end, err := c.EndTime()
		if err != nil {
			return Details{}, fmt.Errorf("event end: %w", err)
		}
		d.End = end
	}
	return d, nil
}

// Scheduled reports whether a start time is known.
func (d Details) Scheduled() bool {
	return !d.Start.IsZero()
}

const calendarDateLayout = "20060102T150405"

// CalendarURL builds a Google Calendar "add event" link. Times are written as
// wall-clock values in the event's zone, passed along as ctz.
func CalendarURL(d Details) string {
	q := url.Values{}
	q.Set("action", "TEMPLATE")
	q.Set("text", d.Title)
	if d.Scheduled() {
		q.Set("dates", d.Start.Format(calendarDateLayout)+"/"+d.End.Format(calendarDateLayout))
	}
	q.Set("details", d.Description)
	q.Set("location", d.Venue)
	if d.Location != "" && d.Location != "UTC" {
		q.Set("ctz", d.Location)
	}
	return "https://calendar.google.com/calendar/render?" + q.Encode()
}
