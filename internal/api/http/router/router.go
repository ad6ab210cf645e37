package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/api/http/handler"
	"github.com/lovefest/lovefest_backend/internal/api/http/middleware"
	"github.com/lovefest/lovefest_backend/internal/event"
	"github.com/lovefest/lovefest_backend/internal/service/chat"
	"github.com/lovefest/lovefest_backend/internal/service/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg     *config.Config
	Sheet   sheet.Sheet
	RSVPSvc rsvp.Service
	ChatSvc chat.Service
	Details event.Details
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	adminOnly := middleware.APIKeyRequired(r.p.Cfg.Server.AdminAPIKeys)

	ingestH := handler.NewIngestHandler(r.p.RSVPSvc)
	rsvpH := handler.NewRSVPHandler(r.p.RSVPSvc)
	chatH := handler.NewChatHandler(r.p.ChatSvc)
	eventH := handler.NewEventHandler(r.p.Details)

	// The form posts to the bare script-style path.
	app.Get("/exec", ingestH.Liveness)
	app.Post("/exec", ingestH.Submit)

	api := app.Group("/api/v1")

	r.registerRSVPRoutes(api, ingestH, rsvpH, adminOnly)
	r.registerChatRoutes(api, chatH)
	r.registerEventRoutes(api, eventH)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New(healthcheck.Config{
		Probe: func(c fiber.Ctx) bool {
			_, err := r.p.Sheet.RowCount(c.Context())
			return err == nil
		},
	}))
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
