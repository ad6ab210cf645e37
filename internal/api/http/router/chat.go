package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/api/http/handler"
)

func (r *Router) registerChatRoutes(api fiber.Router, h *handler.ChatHandler) {
	sessions := api.Group("/chat/sessions")
	sessions.Post("/", h.CreateSession)
	sessions.Get("/:id", h.GetSession)
	sessions.Post("/:id/messages", h.SendMessage)
}
