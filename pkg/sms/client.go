package sms

import (
	"context"
	"fmt"

	"github.com/arsmn/go-smsir/smsir"

	"github.com/lovefest/lovefest_backend/config"
)

type sendFunc func(ctx context.Context, req *smsir.UltraFastSendRequest) error

// Client sends templated guest confirmations via sms.ir.
type Client struct {
	send       sendFunc
	templateID string
	enabled    bool
}

// NewFromConfig returns a no-op client when SMS is disabled.
func NewFromConfig(cfg config.SMSConfig) (*Client, error) {
	if !cfg.Enabled {
		return &Client{enabled: false}, nil
	}

	if cfg.SMSIR.APIKey == "" {
		return nil, fmt.Errorf("sms.ir API key required when SMS enabled")
	}
	if cfg.SMSIR.TemplateID == "" {
		return nil, fmt.Errorf("sms.ir template id required when SMS enabled")
	}

	client := smsir.NewClient().WithAuthentication(cfg.SMSIR.APIKey, cfg.SMSIR.SecretKey)

	return &Client{
		send: func(ctx context.Context, req *smsir.UltraFastSendRequest) error {
			_, err := client.Verification.UltraFastSend(ctx, req)
			return err
		},
		templateID: cfg.SMSIR.TemplateID,
		enabled:    true,
	}, nil
}

// SendConfirmation thanks a guest for their RSVP. The template must declare
// NAME and ATTENDANCE parameters.
func (c *Client) SendConfirmation(ctx context.Context, phoneNumber, name, attendance string) error {
	if !c.enabled {
		return nil
	}

	if phoneNumber == "" {
		return fmt.Errorf("phone number is required")
	}
	if name == "" {
		name = "Guest"
	}

	req := &smsir.UltraFastSendRequest{
		Mobile:     phoneNumber,
		TemplateID: c.templateID,
		Parameters: []smsir.UltraFastParameter{
			{Key: "NAME", Value: name},
			{Key: "ATTENDANCE", Value: attendance},
		},
	}

	if err := c.send(ctx, req); err != nil {
		return fmt.Errorf("sms.ir send failed: %w", err)
	}
	return nil
}

func (c *Client) IsEnabled() bool {
	return c.enabled
}
