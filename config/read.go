package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/lovefest/lovefest_backend/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	// Allow env vars to override config values.
	// e.g. LOVEFEST_SHEET_DRIVER overrides sheet.driver
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees env overrides for keys viper already knows about.
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %v", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	// The chat key is commonly provisioned under the provider's own name.
	if config.Chat.APIKey == "" {
		config.Chat.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.timeout_seconds", 30)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.body_limit_bytes", 1<<20)
	v.SetDefault("server.admin_api_keys", []string{})
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"*"})
	v.SetDefault("server.rate_limit.enabled", false)
	v.SetDefault("server.rate_limit.max", 20)
	v.SetDefault("server.rate_limit.expiration_seconds", 30)

	v.SetDefault("event.title", "Engagement Celebration")
	v.SetDefault("event.couple", "")
	v.SetDefault("event.description", "")
	v.SetDefault("event.venue", "")
	v.SetDefault("event.map_url", "")
	v.SetDefault("event.start", "")
	v.SetDefault("event.end", "")
	v.SetDefault("event.location", "UTC")
	v.SetDefault("event.dress_code", "")

	v.SetDefault("sheet.driver", "sqlite")
	v.SetDefault("sheet.name", "rsvp")
	v.SetDefault("sheet.sqlite_path", "data/rsvp.db")
	v.SetDefault("sheet.redis_key", "lovefest:sheet")
	v.SetDefault("sheet.postgres.host", "localhost")
	v.SetDefault("sheet.postgres.port", 5432)
	v.SetDefault("sheet.postgres.user", "postgres")
	v.SetDefault("sheet.postgres.password", "")
	v.SetDefault("sheet.postgres.dbname", "lovefest")
	v.SetDefault("sheet.postgres.sslmode", "disable")

	v.SetDefault("form.endpoint_url", "http://localhost:8080/exec")
	v.SetDefault("form.contact_field", "whatsapp")
	v.SetDefault("form.confetti_seconds", 3)

	v.SetDefault("chat.api_key", "")
	v.SetDefault("chat.model", "gemini-2.5-flash")
	v.SetDefault("chat.endpoint", "")
	v.SetDefault("chat.api_version", "v1beta")
	v.SetDefault("chat.bot_name", "LoveBot")
	v.SetDefault("chat.timeout_seconds", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("nats.url", "")

	v.SetDefault("email.enabled", false)
	v.SetDefault("email.from", "")
	v.SetDefault("email.organizers", []string{})
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", true)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("sms.enabled", false)
	v.SetDefault("sms.default_region", "IN")
	v.SetDefault("sms.smsir.api_key", "")
	v.SetDefault("sms.smsir.secret_key", "")
	v.SetDefault("sms.smsir.template_id", "")

	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.prefix", "exports")
	v.SetDefault("s3.presign_ttl_seconds", 900)

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", constants.ServiceName)
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.otlp_endpoint", "")
	v.SetDefault("observability.tracing.sampling_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
	v.SetDefault("logging.output.file.enabled", false)
	v.SetDefault("logging.output.loki.enabled", false)
}
