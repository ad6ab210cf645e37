package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/api/http/handler"
)

func (r *Router) registerRSVPRoutes(api fiber.Router, ingestH *handler.IngestHandler, h *handler.RSVPHandler, adminOnly fiber.Handler) {
	api.Post("/rsvp", ingestH.Submit)

	rsvps := api.Group("/rsvps", adminOnly)
	rsvps.Get("/", h.List)
	rsvps.Get("/summary", h.Summary)
}
