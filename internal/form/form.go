// Package form is the client side of the RSVP pipeline: it owns the field
// values a guest types, turns them into a multipart submission and maps the
// outcome onto success or error feedback.
package form

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tidwall/gjson"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
)

type Field string

const (
	FieldName       Field = rsvp.KeyName
	FieldWhatsApp   Field = rsvp.KeyWhatsApp
	FieldEmail      Field = rsvp.KeyEmail
	FieldAttendance Field = rsvp.KeyAttendance
	FieldGuests     Field = rsvp.KeyGuests
	FieldMessage    Field = rsvp.KeyMessage
)

// Fields is the in-memory form state.
type Fields struct {
	Name       string
	WhatsApp   string
	Email      string
	Attendance string
	Guests     string
	Message    string
}

// Pair is one multipart field, kept ordered.
type Pair struct {
	Key   string
	Value string
}

type Controller struct {
	endpoint     string
	contactField string
	confetti     time.Duration
	client       *http.Client
	notifier     Notifier
	now          func() time.Time
	afterFunc    func(time.Duration, func())

	mu           sync.Mutex
	fields       Fields
	showConfetti bool

	inFlight atomic.Bool
}

type Option func(*Controller)

func WithHTTPClient(c *http.Client) Option {
	return func(ctl *Controller) { ctl.client = c }
}

func WithClock(now func() time.Time) Option {
	return func(ctl *Controller) { ctl.now = now }
}

// WithAfterFunc replaces time.AfterFunc for hiding the confetti.
func WithAfterFunc(f func(time.Duration, func())) Option {
	return func(ctl *Controller) { ctl.afterFunc = f }
}

func New(cfg config.FormConfig, n Notifier, opts ...Option) *Controller {
	contact := cfg.ContactField
	if contact != rsvp.KeyEmail {
		contact = rsvp.KeyWhatsApp
	}
	confetti := time.Duration(cfg.ConfettiSeconds) * time.Second
	if confetti <= 0 {
		confetti = 3 * time.Second
	}
	c := &Controller{
		endpoint:     cfg.EndpointURL,
		contactField: contact,
		confetti:     confetti,
		client:       http.DefaultClient,
		notifier:     n,
		now:          time.Now,
		afterFunc:    func(d time.Duration, f func()) { time.AfterFunc(d, f) },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Set updates a single field, as on each keystroke.
func (c *Controller) Set(f Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch f {
	case FieldName:
		c.fields.Name = value
	case FieldWhatsApp:
		c.fields.WhatsApp = value
	case FieldEmail:
		c.fields.Email = value
	case FieldAttendance:
		c.fields.Attendance = value
	case FieldGuests:
		c.fields.Guests = value
	case FieldMessage:
		c.fields.Message = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, f)
	}
	return nil
}

func (c *Controller) Fields() Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// ContactField is the wire key used for the guest's contact.
func (c *Controller) ContactField() Field {
	return Field(c.contactField)
}

// ShowingConfetti reports whether the success animation is running.
func (c *Controller) ShowingConfetti() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.showConfetti
}

// InFlight reports whether a submission is pending.
func (c *Controller) InFlight() bool {
	return c.inFlight.Load()
}

// Payload builds the submission from the current fields. Required fields are
// not checked here; the input layer enforces them.
func (c *Controller) Payload(at time.Time) []Pair {
	f := c.Fields()
	contact := f.WhatsApp
	if c.contactField == rsvp.KeyEmail {
		contact = f.Email
	}
	guests := f.Guests
	if guests == "" {
		guests = rsvp.DefaultGuests
	}
	return []Pair{
		{rsvp.KeyName, f.Name},
		{c.contactField, contact},
		{rsvp.KeyAttendance, f.Attendance},
		{rsvp.KeyGuests, guests},
		{rsvp.KeyMessage, f.Message},
		{rsvp.KeyTimestamp, at.UTC().Format(rsvp.ClientTimestampLayout)},
	}
}

// Submit posts the form once. Any HTTP response counts as success: the
// status and body are not inspected. A transport failure leaves the fields
// untouched.
func (c *Controller) Submit(ctx context.Context) error {
	if !c.inFlight.CompareAndSwap(false, true) {
		return ErrInFlight
	}
	defer c.inFlight.Store(false)

	if c.endpoint == "" {
		c.notifier.Error(ErrorTitle, ErrorDescription)
		return ErrNoEndpoint
	}

	body, contentType, err := encode(c.Payload(c.now()))
	if err != nil {
		c.notifier.Error(ErrorTitle, ErrorDescription)
		return fmt.Errorf("encode form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		c.notifier.Error(ErrorTitle, ErrorDescription)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.client.Do(req)
	if err != nil {
		slog.Warn("rsvp submit failed", "endpoint", c.endpoint, "err", err)
		c.notifier.Error(ErrorTitle, ErrorDescription)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = resp.Body.Close()
	// Logged for diagnosis only; the outcome never depends on the reply.
	slog.Debug("rsvp submit response",
		"status", resp.StatusCode,
		"result", gjson.GetBytes(raw, "result").String(),
	)

	c.succeed()
	return nil
}

func (c *Controller) succeed() {
	c.mu.Lock()
	c.showConfetti = true
	c.mu.Unlock()

	c.notifier.Success(SuccessTitle, SuccessDescription)
	c.notifier.Confetti(c.confetti)

	c.mu.Lock()
	c.fields = Fields{}
	c.mu.Unlock()

	c.afterFunc(c.confetti, func() {
		c.mu.Lock()
		c.showConfetti = false
		c.mu.Unlock()
	})
}

func encode(pairs []Pair) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for _, p := range pairs {
		if err := w.WriteField(p.Key, p.Value); err != nil {
			return nil, "", err
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
