package app

import (
	"context"
	"log/slog"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/event"
	"github.com/lovefest/lovefest_backend/internal/service/chat"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	"github.com/lovefest/lovefest_backend/pkg/email"
	"github.com/lovefest/lovefest_backend/pkg/gemini"
	"github.com/lovefest/lovefest_backend/pkg/observability"
	redispkg "github.com/lovefest/lovefest_backend/pkg/redis"
	"github.com/lovefest/lovefest_backend/pkg/sms"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideSheet),
	fx.Provide(ProvideNatsClient),
	fx.Provide(ProvideEmailClient),
	fx.Provide(ProvideSMSClient),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideGenerator),
	fx.Provide(ProvideEventDetails),
)

// ProvideRedis returns nil when redis is disabled; consumers treat a nil
// client as "no shared storage".
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rdb, err := redispkg.NewRedis(cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideSheet(lc fx.Lifecycle, cfg *config.Config, rdb *redis.Client) (sheet.Sheet, error) {
	var client redis.UniversalClient
	if rdb != nil {
		client = rdb
	}
	sh, err := sheet.Open(context.Background(), cfg.Sheet, client)
	if err != nil {
		return nil, err
	}
	slog.Info("sheet opened", "driver", cfg.Sheet.Driver, "name", cfg.Sheet.Name)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing sheet")
			return sh.Close()
		},
	})
	return sh, nil
}

// ProvideNatsClient returns nil when no URL is configured; the rsvp service
// then skips publishing and no workers are started.
func ProvideNatsClient(lc fx.Lifecycle, cfg *config.Config) (*nats.Conn, error) {
	if cfg.Nats.URL == "" {
		return nil, nil
	}
	nc, err := nats.Connect(cfg.Nats.URL, nats.Name(cfg.Observability.ServiceName))
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("draining NATS connection")
			return nc.Drain()
		},
	})
	return nc, nil
}

func ProvideEmailClient(cfg *config.Config) *email.Client {
	return email.NewFromCentral(cfg.Email)
}

func ProvideSMSClient(cfg *config.Config) (*sms.Client, error) {
	return sms.NewFromConfig(cfg.SMS)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideGenerator falls back to the canned reply when no API key is set.
func ProvideGenerator(cfg *config.Config) (chat.Generator, error) {
	if cfg.Chat.APIKey == "" {
		slog.Warn("chat API key not configured; chat replies are disabled")
		return chat.Unconfigured{}, nil
	}
	return gemini.New(context.Background(), gemini.FromCentralConfig(cfg.Chat))
}

func ProvideEventDetails(cfg *config.Config) (event.Details, error) {
	return event.FromConfig(cfg.Event)
}
