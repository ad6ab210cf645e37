package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/service/chat"
)

type ChatHandler struct {
	svc chat.Service
}

func NewChatHandler(svc chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *ChatHandler) CreateSession(c fiber.Ctx) error {
	return created(c, h.svc.Create(c.Context()))
}

func (h *ChatHandler) GetSession(c fiber.Ctx) error {
	sess, err := h.svc.Get(c.Context(), c.Params("id"))
	if err != nil {
		return h.mapErr(c, err)
	}
	return ok(c, sess)
}

func (h *ChatHandler) SendMessage(c fiber.Ctx) error {
	var req sendMessageRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	sess, err := h.svc.Send(c.Context(), c.Params("id"), req.Text)
	if err != nil {
		return h.mapErr(c, err)
	}
	return ok(c, sess)
}

func (h *ChatHandler) mapErr(c fiber.Ctx, err error) error {
	if errors.Is(err, chat.ErrSessionNotFound) {
		return notFound(c, "chat session not found")
	}
	return internalError(c)
}
