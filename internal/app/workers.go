package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/fx"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/event"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/pkg/constants"
	"github.com/lovefest/lovefest_backend/pkg/email"
	"github.com/lovefest/lovefest_backend/pkg/phone"
	"github.com/lovefest/lovefest_backend/pkg/sms"
)

// WorkerModule registers all NATS event workers.
var WorkerModule = fx.Module("workers",
	fx.Invoke(RegisterWorkers),
)

type WorkerParams struct {
	fx.In

	Lc      fx.Lifecycle
	Cfg     *config.Config
	NC      *nats.Conn `optional:"true"`
	Email   *email.Client
	SMS     *sms.Client
	Details event.Details
}

func RegisterWorkers(p WorkerParams) {
	if p.NC == nil {
		slog.Info("notification_worker: no event bus configured, skipping")
		return
	}
	w := &notificationWorker{
		mail:       p.Email,
		text:       p.SMS,
		region:     p.Cfg.SMS.DefaultRegion,
		eventTitle: p.Details.Title,
	}

	var sub *nats.Subscription
	p.Lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			var err error
			sub, err = p.NC.Subscribe(constants.SubjectRSVPReceived, func(msg *nats.Msg) {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				if err := w.handle(ctx, msg.Data); err != nil {
					slog.Warn("notification_worker: handle rsvp failed", "err", err)
				}
			})
			if err != nil {
				return fmt.Errorf("notification_worker: subscribe %s: %w", constants.SubjectRSVPReceived, err)
			}
			slog.Info("notification_worker: started")
			return nil
		},
		OnStop: func(ctx context.Context) error {
			// Drain of the connection itself is handled by ProvideNatsClient.
			if sub != nil {
				return sub.Unsubscribe()
			}
			return nil
		},
	})
}

// ---------------------------------------------------------------------------
// notification_worker
// ---------------------------------------------------------------------------

type mailer interface {
	Enabled() bool
	Organizers() []string
	Send(ctx context.Context, m email.Message) error
}

type texter interface {
	IsEnabled() bool
	SendConfirmation(ctx context.Context, phoneNumber, name, attendance string) error
}

type notificationWorker struct {
	mail       mailer
	text       texter
	region     string
	eventTitle string
}

// handle tells the organizers about a new response and, when the guest left
// a phone number, texts them a confirmation. Each channel fails on its own.
func (w *notificationWorker) handle(ctx context.Context, data []byte) error {
	var sub rsvp.Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return fmt.Errorf("decode submission: %w", err)
	}

	var errs []error
	if err := w.emailOrganizers(ctx, sub); err != nil {
		errs = append(errs, err)
	}
	if err := w.textGuest(ctx, sub); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("notify %q: %v", sub.Name, errs)
	}
	return nil
}

func (w *notificationWorker) emailOrganizers(ctx context.Context, sub rsvp.Submission) error {
	if w.mail == nil || !w.mail.Enabled() {
		return nil
	}
	to := w.mail.Organizers()
	if len(to) == 0 {
		return nil
	}
	msg := email.BuildRSVPNotification(to, email.RSVPData{
		EventTitle: w.eventTitle,
		Name:       sub.Name,
		Contact:    sub.Contact,
		Attendance: string(sub.Attendance),
		Guests:     sub.Guests,
		Message:    sub.Message,
		ReceivedAt: sub.ServerTimestamp,
	})
	if err := w.mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("email organizers: %w", err)
	}
	return nil
}

func (w *notificationWorker) textGuest(ctx context.Context, sub rsvp.Submission) error {
	if w.text == nil || !w.text.IsEnabled() || !phone.LooksLikePhone(sub.Contact) {
		return nil
	}
	number, err := phone.E164(sub.Contact, w.region)
	if err != nil {
		slog.Debug("notification_worker: contact is not a usable phone number", "err", err)
		return nil
	}
	if err := w.text.SendConfirmation(ctx, number, sub.Name, string(sub.Attendance)); err != nil {
		return fmt.Errorf("text guest: %w", err)
	}
	return nil
}
