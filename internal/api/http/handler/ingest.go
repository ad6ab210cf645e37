package handler

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/lovefest/lovefest_backend/internal/ingest"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	svcrsvp "github.com/lovefest/lovefest_backend/internal/service/rsvp"
)

// LivenessText is returned on GET of the ingest endpoint.
const LivenessText = "RSVP endpoint is running! Use POST requests to submit RSVP data. Visit the website to test the form."

type IngestHandler struct {
	svc svcrsvp.Service
}

func NewIngestHandler(svc svcrsvp.Service) *IngestHandler {
	return &IngestHandler{svc: svc}
}

// Submit always answers 200; failures are reported in the ack body only.
func (h *IngestHandler) Submit(c fiber.Ctx) error {
	ack := h.svc.Submit(c.Context(), requestFromFiber(c))
	return c.Status(fiber.StatusOK).JSON(ack)
}

func (h *IngestHandler) Liveness(c fiber.Ctx) error {
	return c.SendString(LivenessText)
}

// requestFromFiber maps the HTTP request onto the parser input. Multipart
// bodies are decoded by fiber and handed over as parameters with no raw body,
// the same way a hosting runtime pre-parses form posts.
func requestFromFiber(c fiber.Ctx) ingest.Request {
	req := ingest.Request{
		ContentType: c.Get(fiber.HeaderContentType),
		Params:      url.Values{},
	}

	if strings.HasPrefix(strings.ToLower(req.ContentType), fiber.MIMEMultipartForm) {
		if form, err := c.MultipartForm(); err == nil {
			for k, vs := range form.Value {
				req.Params[k] = append(req.Params[k], vs...)
			}
		}
	} else {
		req.Body = append([]byte(nil), c.Body()...)
	}

	for k, v := range c.Queries() {
		req.Params.Add(k, v)
	}
	return req
}

type RSVPHandler struct {
	svc svcrsvp.Service
}

func NewRSVPHandler(svc svcrsvp.Service) *RSVPHandler {
	return &RSVPHandler{svc: svc}
}

func (h *RSVPHandler) List(c fiber.Ctx) error {
	subs, err := h.svc.List(c.Context())
	if err != nil {
		return internalError(c)
	}
	if subs == nil {
		subs = []rsvp.Submission{}
	}
	return ok(c, subs)
}

func (h *RSVPHandler) Summary(c fiber.Ctx) error {
	sum, err := h.svc.Summary(c.Context())
	if err != nil {
		return internalError(c)
	}
	return ok(c, sum)
}
