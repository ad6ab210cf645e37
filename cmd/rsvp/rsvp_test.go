package rsvp

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lovefest/lovefest_backend/config"
	"github.com/lovefest/lovefest_backend/internal/form"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
	"github.com/lovefest/lovefest_backend/internal/sheet"
)

func TestExportCSV(t *testing.T) {
	ctx := context.Background()
	sh := sheet.NewMemory()
	if err := sh.WriteHeader(ctx, sheet.Header{Cells: rsvp.Header, Bold: true}); err != nil {
		t.Fatal(err)
	}
	if err := sh.Append(ctx, []string{"2025-11-03T05:30:01Z", "Jane Doe", "+15551234567", "yes", "2", "Can't wait, \"really\"", "2025-11-03T05:30:00.123Z"}); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := exportCSV(ctx, sh, rsvp.Header, &buf); err != nil {
		t.Fatalf("exportCSV: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2:\n%s", len(lines), buf.String())
	}
	if lines[0] != strings.Join(rsvp.Header, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"Can't wait, ""really"""`) {
		t.Errorf("row not quoted: %q", lines[1])
	}
}

func TestExportCSV_EmptySheetHasHeader(t *testing.T) {
	var buf bytes.Buffer
	header := rsvp.HeaderFor(rsvp.KeyEmail)
	if err := exportCSV(context.Background(), sheet.NewMemory(), header, &buf); err != nil {
		t.Fatalf("exportCSV: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != strings.Join(header, ",") {
		t.Errorf("csv = %q", got)
	}
}

func TestExportName(t *testing.T) {
	at := time.Date(2025, 11, 3, 5, 30, 0, 0, time.UTC)
	if got := exportName("rsvp", at); got != "rsvp-20251103-053000.csv" {
		t.Errorf("exportName = %q", got)
	}
}

func TestFill_PromptsForMissingValues(t *testing.T) {
	var posted map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse: %v", err)
		}
		posted = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			posted[k] = v[0]
		}
		_, _ = io.WriteString(w, `{"result":"success"}`)
	}))
	defer srv.Close()

	var out bytes.Buffer
	ctl := form.New(config.FormConfig{EndpointURL: srv.URL, ContactField: "whatsapp"}, form.ConsoleNotifier{W: &out},
		form.WithAfterFunc(func(time.Duration, func()) {}))

	// Blank name is re-asked; "maybe" is rejected for attendance.
	in := strings.NewReader("\nJane Doe\n+15551234567\nmaybe\nYES\n\nSee you!\n")
	if err := fill(ctl, newPrompter(in, &out), submitFlags{}); err != nil {
		t.Fatalf("fill: %v", err)
	}
	if err := ctl.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}

	want := map[string]string{
		"name":       "Jane Doe",
		"whatsapp":   "+15551234567",
		"attendance": "yes",
		"guests":     "1",
		"message":    "See you!",
	}
	for k, v := range want {
		if posted[k] != v {
			t.Errorf("%s = %q, want %q", k, posted[k], v)
		}
	}
	if !strings.Contains(out.String(), "this field is required") {
		t.Errorf("missing required prompt in output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), form.SuccessTitle) {
		t.Errorf("missing success toast in output:\n%s", out.String())
	}
}

func TestFill_FlagsSkipPrompts(t *testing.T) {
	ctl := form.New(config.FormConfig{ContactField: "email"}, form.ConsoleNotifier{W: io.Discard})
	f := submitFlags{name: "A", contact: "a@example.com", attendance: "no", guests: "3", message: "sorry"}
	if err := fill(ctl, newPrompter(strings.NewReader(""), io.Discard), f); err != nil {
		t.Fatalf("fill: %v", err)
	}
	got := ctl.Fields()
	if got.Name != "A" || got.Email != "a@example.com" || got.Attendance != "no" || got.Guests != "3" {
		t.Errorf("fields = %+v", got)
	}
}

func TestPrompter_EOF(t *testing.T) {
	p := newPrompter(strings.NewReader(""), io.Discard)
	if _, err := p.ask("Name", true, nil); err != io.ErrUnexpectedEOF {
		t.Errorf("err = %v, want io.ErrUnexpectedEOF", err)
	}
}
