package rsvp

import (
	"bufio"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lovefest/lovefest_backend/cmd/cliconfig"
	"github.com/lovefest/lovefest_backend/internal/form"
	"github.com/lovefest/lovefest_backend/internal/rsvp"
)

type submitFlags struct {
	name       string
	contact    string
	attendance string
	guests     string
	message    string
	endpoint   string
}

func NewSubmitCommand() *cobra.Command {
	var f submitFlags

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Fill in the RSVP form and post it to the ingest endpoint",
		Long: `Fill in the RSVP form and post it to the ingest endpoint.

Values not given as flags are prompted for. Name, contact and attendance are
required; guests defaults to 1.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliconfig.Load(cmd)
			if err != nil {
				return err
			}
			if f.endpoint != "" {
				cfg.Form.EndpointURL = f.endpoint
			}

			out := cmd.OutOrStdout()
			ctl := form.New(cfg.Form, form.ConsoleNotifier{W: out},
				form.WithHTTPClient(&http.Client{Timeout: 30 * time.Second}))
			p := newPrompter(cmd.InOrStdin(), out)

			if err := fill(ctl, p, f); err != nil {
				return err
			}
			// The error toast has already been shown; exit non-zero as well.
			return ctl.Submit(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "guest full name")
	cmd.Flags().StringVar(&f.contact, "contact", "", "WhatsApp number or email, per form.contact_field")
	cmd.Flags().StringVar(&f.attendance, "attendance", "", "yes or no")
	cmd.Flags().StringVar(&f.guests, "guests", "", "number of guests")
	cmd.Flags().StringVar(&f.message, "message", "", "message for the couple")
	cmd.Flags().StringVar(&f.endpoint, "endpoint", "", "override form.endpoint_url")

	return cmd
}

// fill sets every field on the controller, prompting for whatever the flags
// left empty.
func fill(ctl *form.Controller, p *prompter, f submitFlags) error {
	contactLabel := "WhatsApp number"
	if ctl.ContactField() == form.FieldEmail {
		contactLabel = "Email"
	}

	steps := []struct {
		field    form.Field
		label    string
		value    string
		required bool
		valid    func(string) bool
	}{
		{form.FieldName, "Full name", f.name, true, nil},
		{ctl.ContactField(), contactLabel, f.contact, true, nil},
		{form.FieldAttendance, "Attending? (yes/no)", f.attendance, true, func(v string) bool {
			return rsvp.Attendance(strings.ToLower(v)).Valid()
		}},
		{form.FieldGuests, "Number of guests [1]", f.guests, false, nil},
		{form.FieldMessage, "Message for the couple", f.message, false, nil},
	}

	for _, s := range steps {
		v := s.value
		if v == "" {
			var err error
			v, err = p.ask(s.label, s.required, s.valid)
			if err != nil {
				return err
			}
		}
		if s.field == form.FieldAttendance {
			v = strings.ToLower(v)
		}
		if err := ctl.Set(s.field, v); err != nil {
			return err
		}
	}
	return nil
}

type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(r io.Reader, w io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(r), out: w}
}

// ask repeats the question until a required answer is given.
func (p *prompter) ask(label string, required bool, valid func(string) bool) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return "", err
			}
			return "", io.ErrUnexpectedEOF
		}
		v := strings.TrimSpace(p.in.Text())
		if v == "" && required {
			fmt.Fprintln(p.out, "  this field is required")
			continue
		}
		if v != "" && valid != nil && !valid(v) {
			fmt.Fprintln(p.out, "  please enter a valid value")
			continue
		}
		return v, nil
	}
}
