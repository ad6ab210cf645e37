package rsvp

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/lovefest/lovefest_backend/internal/ingest"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	"github.com/lovefest/lovefest_backend/pkg/constants"
	"github.com/lovefest/lovefest_backend/pkg/reqctx"
)

const meterName = "github.com/lovefest/lovefest_backend/internal/service/rsvp"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// ---------------------------------------------------------------------------
// Interface
// ---------------------------------------------------------------------------

type Service interface {
	// Submit never returns an error: every failure is logged and mapped to
	// the generic error ack.
	Submit(ctx context.Context, req ingest.Request) rsvp.Ack
	List(ctx context.Context) ([]rsvp.Submission, error)
	Summary(ctx context.Context) (rsvp.Summary, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type rsvpService struct {
	sheet  sheet.Sheet
	chain  *ingest.Chain
	pub    Publisher
	header []string
	now    func() time.Time
	counts metric.Int64Counter
}

type Option func(*rsvpService)

func WithClock(now func() time.Time) Option {
	return func(s *rsvpService) { s.now = now }
}

// WithContactKey labels the contact header cell for the key the form sends.
func WithContactKey(key string) Option {
	return func(s *rsvpService) { s.header = rsvp.HeaderFor(key) }
}

func WithChain(c *ingest.Chain) Option {
	return func(s *rsvpService) { s.chain = c }
}

// New builds the service. pub may be nil when no event bus is configured.
func New(sh sheet.Sheet, pub Publisher, opts ...Option) Service {
	counts, _ := otel.Meter(meterName).Int64Counter(
		"rsvp_submissions_total",
		metric.WithDescription("RSVP submissions by result"),
	)
	s := &rsvpService{
		sheet:  sh,
		chain:  ingest.DefaultChain(),
		pub:    pub,
		header: rsvp.Header,
		now:    time.Now,
		counts: counts,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *rsvpService) Submit(ctx context.Context, req ingest.Request) rsvp.Ack {
	log := reqctx.Logger(ctx)

	sub, parser, err := s.store(ctx, req)
	if err != nil {
		log.Error("rsvp submit failed", "err", err)
		s.count(ctx, rsvp.ResultError, parser)
		return rsvp.ErrorAck()
	}
	s.count(ctx, rsvp.ResultSuccess, parser)
	log.Info("rsvp stored", "parser", parser, "attendance", sub.Attendance, "guests", sub.Guests)

	s.publish(ctx, sub)
	return rsvp.SuccessAck()
}

func (s *rsvpService) store(ctx context.Context, req ingest.Request) (rsvp.Submission, string, error) {
	rec, parser, err := s.chain.Parse(req)
	if err != nil {
		return rsvp.Submission{}, "", fmt.Errorf("%w: %w", ErrInternal, err)
	}

	sub := rsvp.FromRecord(rec, s.now())
	row := sub.Row()

	// Check-then-act: two first submissions racing here may both write the
	// header. WriteHeader replaces row 1, so the data rows are unaffected.
	n, err := s.sheet.RowCount(ctx)
	if err != nil {
		return sub, parser, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	if n == 0 {
		h := sheet.Header{
			Cells:  s.header,
			Bold:   true,
			Widths: sheet.AutoSize(s.header, row),
		}
		if err := s.sheet.WriteHeader(ctx, h); err != nil {
			return sub, parser, fmt.Errorf("%w: %w", ErrInternal, err)
		}
	}

	if err := s.sheet.Append(ctx, row); err != nil {
		return sub, parser, fmt.Errorf("%w: %w", ErrInternal, err)
	}
	return sub, parser, nil
}

func (s *rsvpService) publish(ctx context.Context, sub rsvp.Submission) {
	if s.pub == nil {
		return
	}
	data, err := json.Marshal(sub)
	if err != nil {
		reqctx.Logger(ctx).Warn("rsvp event marshal failed", "err", err)
		return
	}
	if err := s.pub.Publish(constants.SubjectRSVPReceived, data); err != nil {
		reqctx.Logger(ctx).Warn("rsvp event publish failed", "subject", constants.SubjectRSVPReceived, "err", err)
	}
}

func (s *rsvpService) count(ctx context.Context, result, parser string) {
	if s.counts == nil {
		return
	}
	s.counts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("result", result),
		attribute.String("parser", parser),
	))
}

func (s *rsvpService) List(ctx context.Context) ([]rsvp.Submission, error) {
	rows, err := s.sheet.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rsvps: %w", err)
	}
	out := make([]rsvp.Submission, 0, len(rows))
	for _, r := range rows {
		out = append(out, rsvp.FromRow(r))
	}
	return out, nil
}

func (s *rsvpService) Summary(ctx context.Context) (rsvp.Summary, error) {
	subs, err := s.List(ctx)
	if err != nil {
		return rsvp.Summary{}, err
	}
	return Summarize(subs), nil
}

// Summarize counts responses. Guest counts that are blank, non-numeric or
// below one count as a single guest.
func Summarize(subs []rsvp.Submission) rsvp.Summary {
	var sum rsvp.Summary
	for _, sub := range subs {
		sum.Total++
		switch rsvp.Attendance(strings.ToLower(string(sub.Attendance))) {
		case rsvp.AttendanceYes:
			sum.Attending++
			sum.ExpectedGuests += guestCount(sub.Guests)
		case rsvp.AttendanceNo:
			sum.NotAttending++
		default:
			sum.Unknown++
		}
	}
	return sum
}

func guestCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
