package app

import (
	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/event"
	"github.com/lovefest/lovefest_backend/internal/service/chat"
	"github.com/lovefest/lovefest_backend/internal/service/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideRSVPService,
		ProvideChatService,
	),
)

func ProvideRSVPService(sh sheet.Sheet, nc *nats.Conn, cfg *config.Config) rsvp.Service {
	var pub rsvp.Publisher
	if nc != nil {
		pub = nc
	}
	return rsvp.New(sh, pub, rsvp.WithContactKey(cfg.Form.ContactField))
}

func ProvideChatService(gen chat.Generator, cfg *config.Config, details event.Details) chat.Service {
	return chat.New(gen, cfg.Chat.BotName, details)
}
