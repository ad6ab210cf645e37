// Package rsvp holds the RSVP submission record shared by the form controller
// and the ingest endpoint: wire keys, the row layout written to the sheet and
// the acknowledgement returned to the client.
package rsvp

import (
	"strings"
	"time"
)

// Wire keys recognised in a submission payload.
const (
	KeyName       = "name"
	KeyWhatsApp   = "whatsapp"
	KeyEmail      = "email"
	KeyAttendance = "attendance"
	KeyGuests     = "guests"
	KeyMessage    = "message"
	KeyTimestamp  = "timestamp"
)

// DefaultGuests is used whenever the guest count is left blank.
const DefaultGuests = "1"

// ClientTimestampLayout matches JavaScript's Date.prototype.toISOString.
const ClientTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Attendance string

const (
	AttendanceYes Attendance = "yes"
	AttendanceNo  Attendance = "no"
)

func (a Attendance) Valid() bool {
	return a == AttendanceYes || a == AttendanceNo
}

// Submission is one guest's attendance response.
type Submission struct {
	Name            string     `json:"name"`
	Contact         string     `json:"contact"`
	Attendance      Attendance `json:"attendance"`
	Guests          string     `json:"guests"`
	Message         string     `json:"message"`
	ClientTimestamp string     `json:"client_timestamp"`
	ServerTimestamp time.Time  `json:"server_timestamp"`
}

// FromRecord maps a parsed key/value record onto a Submission. Missing keys
// become empty strings; the contact prefers whatsapp over email.
func FromRecord(rec map[string]string, receivedAt time.Time) Submission {
	contact := rec[KeyWhatsApp]
	if contact == "" {
		contact = rec[KeyEmail]
	}
	guests := rec[KeyGuests]
	if guests == "" {
		guests = DefaultGuests
	}
	return Submission{
		Name:            rec[KeyName],
		Contact:         contact,
		Attendance:      Attendance(strings.ToLower(strings.TrimSpace(rec[KeyAttendance]))),
		Guests:          guests,
		Message:         rec[KeyMessage],
		ClientTimestamp: rec[KeyTimestamp],
		ServerTimestamp: receivedAt,
	}
}

// Header is the first row of an initialised sheet when guests leave a
// WhatsApp number. See HeaderFor.
var Header = []string{
	"Submission Time",
	"Full Name",
	"WhatsApp Number",
	"Attendance",
	"Number of Guests",
	"Special Message",
	"Client Timestamp",
}

// HeaderFor labels the contact column after the key the form collects.
func HeaderFor(contactKey string) []string {
	h := append([]string(nil), Header...)
	if contactKey == KeyEmail {
		h[2] = "Email Address"
	}
	return h
}

// Row renders the submission in sheet column order.
func (s Submission) Row() []string {
	guests := s.Guests
	if guests == "" {
		guests = DefaultGuests
	}
	return []string{
		s.ServerTimestamp.UTC().Format(time.RFC3339),
		s.Name,
		s.Contact,
		string(s.Attendance),
		guests,
		s.Message,
		s.ClientTimestamp,
	}
}

// FromRow is the inverse of Row. Short rows are padded with empty cells.
func FromRow(row []string) Submission {
	cell := func(i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}
	ts, _ := time.Parse(time.RFC3339, cell(0))
	return Submission{
		ServerTimestamp: ts,
		Name:            cell(1),
		Contact:         cell(2),
		Attendance:      Attendance(cell(3)),
		Guests:          cell(4),
		Message:         cell(5),
		ClientTimestamp: cell(6),
	}
}
