package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v3"
)

const HeaderAPIKey = "X-API-Key"

// APIKeyRequired accepts a key from X-API-Key or an "Authorization: Bearer"
// header. With no keys configured every request is rejected.
func APIKeyRequired(keys []string) fiber.Handler {
	allowed := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			allowed = append(allowed, []byte(k))
		}
	}

	return func(c fiber.Ctx) error {
		key := c.Get(HeaderAPIKey)
		if key == "" {
			parts := strings.SplitN(c.Get(fiber.HeaderAuthorization), " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				key = strings.TrimSpace(parts[1])
			}
		}
		if key == "" {
			return fiber.ErrUnauthorized
		}

		for _, k := range allowed {
			if subtle.ConstantTimeCompare(k, []byte(key)) == 1 {
				return c.Next()
			}
		}
		return fiber.ErrUnauthorized
	}
}
