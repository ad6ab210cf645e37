package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/api/http/handler"
)

func (r *Router) registerEventRoutes(api fiber.Router, h *handler.EventHandler) {
	api.Get("/event", h.Get)
}
