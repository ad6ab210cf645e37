package email

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// RSVPData is what organizers see about a new response.
type RSVPData struct {
	EventTitle string
	Name       string
	Contact    string
	Attendance string
	Guests     string
	Message    string
	ReceivedAt time.Time
}

// BuildRSVPNotification renders the organizer email for one submission.
func BuildRSVPNotification(to []string, data RSVPData) Message {
	title := data.EventTitle
	if title == "" {
		title = "our celebration"
	}

	verdict := "can't make it"
	if strings.EqualFold(data.Attendance, "yes") {
		verdict = "is coming"
	}

	subject := fmt.Sprintf("New RSVP: %s %s", data.Name, verdict)
	received := data.ReceivedAt.UTC().Format(time.RFC1123)

	textBody := fmt.Sprintf(`New RSVP for %s

Name:       %s
Contact:    %s
Attendance: %s
Guests:     %s
Message:    %s

Received %s`,
		title, data.Name, data.Contact, data.Attendance, data.Guests, data.Message, received)

	e := html.EscapeString
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px;">
    <h2 style="color: #e11d48;">New RSVP for %s</h2>
    <table style="border-collapse: collapse;">
        <tr><td style="padding: 4px 12px 4px 0;"><b>Name</b></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><b>Contact</b></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><b>Attendance</b></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><b>Guests</b></td><td>%s</td></tr>
        <tr><td style="padding: 4px 12px 4px 0;"><b>Message</b></td><td>%s</td></tr>
    </table>
    <p style="color: #888; font-size: 12px;">Received %s</p>
</body>
</html>`,
		e(title), e(data.Name), e(data.Contact), e(data.Attendance), e(data.Guests), e(data.Message), e(received))

	return Message{
		To:       to,
		Subject:  subject,
		TextBody: textBody,
		HTMLBody: htmlBody,
	}
}
