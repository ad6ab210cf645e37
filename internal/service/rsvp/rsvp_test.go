package rsvp

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/lovefest/lovefest_backend/internal/ingest"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
	"github.com/lovefest/lovefest_backend/pkg/constants"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockPublisher struct {
	mu       sync.Mutex
	subjects []string
	payloads [][]byte
	err      error
}

func (m *mockPublisher) Publish(subject string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, subject)
	m.payloads = append(m.payloads, data)
	return m.err
}

// failingSheet wraps a Memory sheet and fails the selected operation.
type failingSheet struct {
	*sheet.Memory
	countErr  error
	headerErr error
	appendErr error
	headers   int
}

func (f *failingSheet) RowCount(ctx context.Context) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.Memory.RowCount(ctx)
}

func (f *failingSheet) WriteHeader(ctx context.Context, h sheet.Header) error {
	f.headers++
	if f.headerErr != nil {
		return f.headerErr
	}
	return f.Memory.WriteHeader(ctx, h)
}

func (f *failingSheet) Append(ctx context.Context, row []string) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	return f.Memory.Append(ctx, row)
}

var fixedNow = time.Date(2025, 2, 14, 18, 30, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func jsonRequest(body string) ingest.Request {
	return ingest.Request{Body: []byte(body), ContentType: "application/json"}
}

// ---------------------------------------------------------------------------
// Submit
// ---------------------------------------------------------------------------

func TestSubmit_FirstSubmissionWritesHeaderThenRow(t *testing.T) {
	ctx := context.Background()
	sh := &failingSheet{Memory: sheet.NewMemory()}
	svc := New(sh, nil, WithClock(clock))

	ack := svc.Submit(ctx, jsonRequest(`{"name":"Jane Doe","whatsapp":"+15551234567","attendance":"yes","guests":"2","message":"Congrats!","timestamp":"2025-02-14T18:29:59.123Z"}`))
	if ack != rsvp.SuccessAck() {
		t.Fatalf("ack = %+v, want success", ack)
	}

	h, err := sh.Header(ctx)
	if err != nil || h == nil {
		t.Fatalf("Header() = %v, %v", h, err)
	}
	if !h.Bold || !reflect.DeepEqual(h.Cells, rsvp.Header) {
		t.Fatalf("header = %+v", h)
	}
	if len(h.Widths) != len(rsvp.Header) {
		t.Fatalf("widths = %v, want %d columns", h.Widths, len(rsvp.Header))
	}

	rows, _ := sh.Rows(ctx)
	want := [][]string{{
		"2025-02-14T18:30:00Z", "Jane Doe", "+15551234567", "yes", "2", "Congrats!", "2025-02-14T18:29:59.123Z",
	}}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v, want %v", rows, want)
	}

	// The header is written once; later submissions only append.
	svc.Submit(ctx, jsonRequest(`{"name":"B","attendance":"no"}`))
	if sh.headers != 1 {
		t.Fatalf("WriteHeader called %d times, want 1", sh.headers)
	}
	if n, _ := sh.RowCount(ctx); n != 3 {
		t.Fatalf("RowCount = %d, want 3", n)
	}
}

func TestSubmit_HeaderFollowsContactKey(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want string
	}{
		{"default", nil, "WhatsApp Number"},
		{"whatsapp", []Option{WithContactKey(rsvp.KeyWhatsApp)}, "WhatsApp Number"},
		{"email", []Option{WithContactKey(rsvp.KeyEmail)}, "Email Address"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			sh := sheet.NewMemory()
			svc := New(sh, nil, append(tt.opts, WithClock(clock))...)

			if ack := svc.Submit(ctx, jsonRequest(`{"name":"A","email":"a@example.com","attendance":"yes"}`)); ack.Result != rsvp.ResultSuccess {
				t.Fatalf("ack = %+v", ack)
			}
			h, _ := sh.Header(ctx)
			if h == nil || h.Cells[2] != tt.want {
				t.Fatalf("header = %+v, want contact column %q", h, tt.want)
			}
		})
	}
}

func TestSubmit_IdenticalSubmissionsProduceTwoRows(t *testing.T) {
	ctx := context.Background()
	sh := sheet.NewMemory()
	svc := New(sh, nil, WithClock(clock))

	body := `{"name":"A","attendance":"yes"}`
	for i := 0; i < 2; i++ {
		if ack := svc.Submit(ctx, jsonRequest(body)); ack.Result != rsvp.ResultSuccess {
			t.Fatalf("submit %d: %+v", i, ack)
		}
	}

	rows, _ := sh.Rows(ctx)
	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], rows[1]) {
		t.Fatalf("rows differ: %v vs %v", rows[0], rows[1])
	}
}

func TestSubmit_JSONAndFormBodyAreEquivalent(t *testing.T) {
	ctx := context.Background()

	jsonSheet := sheet.NewMemory()
	New(jsonSheet, nil, WithClock(clock)).Submit(ctx, jsonRequest(`{"name":"A","attendance":"yes"}`))

	formSheet := sheet.NewMemory()
	New(formSheet, nil, WithClock(clock)).Submit(ctx, ingest.Request{
		Body:        []byte("name=A&attendance=yes"),
		ContentType: "application/x-www-form-urlencoded",
	})

	a, _ := jsonSheet.Rows(ctx)
	b, _ := formSheet.Rows(ctx)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("json rows %v != form rows %v", a, b)
	}
	if a[0][4] != rsvp.DefaultGuests {
		t.Fatalf("guests = %q, want default %q", a[0][4], rsvp.DefaultGuests)
	}
}

func TestSubmit_ParamsWhenBodyAbsent(t *testing.T) {
	ctx := context.Background()
	sh := sheet.NewMemory()
	svc := New(sh, nil, WithClock(clock))

	ack := svc.Submit(ctx, ingest.Request{Params: url.Values{
		"name":       {"Multi Part"},
		"email":      {"mp@example.com"},
		"attendance": {"no"},
	}})
	if ack.Result != rsvp.ResultSuccess {
		t.Fatalf("ack = %+v", ack)
	}
	rows, _ := sh.Rows(ctx)
	if rows[0][1] != "Multi Part" || rows[0][2] != "mp@example.com" {
		t.Fatalf("row = %v", rows[0])
	}
}

func TestSubmit_FailuresMapToGenericError(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name  string
		sheet *failingSheet
		req   ingest.Request
	}{
		{"row count", &failingSheet{Memory: sheet.NewMemory(), countErr: boom}, jsonRequest(`{"name":"A"}`)},
		{"header", &failingSheet{Memory: sheet.NewMemory(), headerErr: boom}, jsonRequest(`{"name":"A"}`)},
		{"append", &failingSheet{Memory: sheet.NewMemory(), appendErr: boom}, jsonRequest(`{"name":"A"}`)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &mockPublisher{}
			ack := New(tt.sheet, pub).Submit(context.Background(), tt.req)
			if ack != rsvp.ErrorAck() {
				t.Fatalf("ack = %+v, want %+v", ack, rsvp.ErrorAck())
			}
			if len(pub.subjects) != 0 {
				t.Fatalf("published on failure: %v", pub.subjects)
			}
		})
	}
}

func TestSubmit_NoParserMatches(t *testing.T) {
	sh := sheet.NewMemory()
	svc := New(sh, nil, WithChain(ingest.NewChain(ingest.JSONParser{})))

	if ack := svc.Submit(context.Background(), ingest.Request{Body: []byte("name=A")}); ack != rsvp.ErrorAck() {
		t.Fatalf("ack = %+v, want error", ack)
	}
	if n, _ := sh.RowCount(context.Background()); n != 0 {
		t.Fatalf("RowCount = %d, want 0", n)
	}
}

func TestSubmit_PublishesEvent(t *testing.T) {
	pub := &mockPublisher{}
	svc := New(sheet.NewMemory(), pub, WithClock(clock))

	svc.Submit(context.Background(), jsonRequest(`{"name":"A","attendance":"yes","guests":"3"}`))

	if len(pub.subjects) != 1 || pub.subjects[0] != constants.SubjectRSVPReceived {
		t.Fatalf("subjects = %v", pub.subjects)
	}
	var sub rsvp.Submission
	if err := json.Unmarshal(pub.payloads[0], &sub); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if sub.Name != "A" || sub.Guests != "3" || !sub.ServerTimestamp.Equal(fixedNow) {
		t.Fatalf("payload = %+v", sub)
	}
}

func TestSubmit_PublishFailureStillSucceeds(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nats down")}
	ack := New(sheet.NewMemory(), pub).Submit(context.Background(), jsonRequest(`{"name":"A"}`))
	if ack.Result != rsvp.ResultSuccess {
		t.Fatalf("ack = %+v, want success", ack)
	}
}

// ---------------------------------------------------------------------------
// List / Summary
// ---------------------------------------------------------------------------

func TestSummary(t *testing.T) {
	ctx := context.Background()
	svc := New(sheet.NewMemory(), nil, WithClock(clock))

	for _, body := range []string{
		`{"name":"A","attendance":"yes","guests":"2"}`,
		`{"name":"B","attendance":"YES"}`,
		`{"name":"C","attendance":"no","guests":"4"}`,
		`{"name":"D","attendance":"yes","guests":"lots"}`,
		`{"name":"E"}`,
	} {
		svc.Submit(ctx, jsonRequest(body))
	}

	got, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	want := rsvp.Summary{Total: 5, Attending: 3, NotAttending: 1, Unknown: 1, ExpectedGuests: 4}
	if got != want {
		t.Fatalf("Summary = %+v, want %+v", got, want)
	}

	list, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 5 || list[0].Name != "A" || list[4].Name != "E" {
		t.Fatalf("List = %+v", list)
	}
}
