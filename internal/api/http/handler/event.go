package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/event"
)

type EventHandler struct {
	details event.Details
	now     func() time.Time
}

func NewEventHandler(d event.Details) *EventHandler {
	return &EventHandler{details: d, now: time.Now}
}

type eventResponse struct {
	event.Details
	CalendarURL string           `json:"calendar_url"`
	Countdown   *event.Remaining `json:"countdown,omitempty"`
}

func (h *EventHandler) Get(c fiber.Ctx) error {
	resp := eventResponse{
		Details:     h.details,
		CalendarURL: event.CalendarURL(h.details),
	}
	if h.details.Scheduled() {
		r := event.Until(h.details.Start, h.now())
		resp.Countdown = &r
	}
	return ok(c, resp)
}
