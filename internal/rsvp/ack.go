package rsvp

const (
	ResultSuccess = "success"
	ResultError   = "error"
)

const (
	MessageSuccess = "RSVP submitted successfully!"
	MessageFailure = "Failed to process RSVP. Please try again."
)

// Ack is the JSON acknowledgement returned by the ingest endpoint.
type Ack struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

func SuccessAck() Ack { return Ack{Result: ResultSuccess, Message: MessageSuccess} }

func ErrorAck() Ack { return Ack{Result: ResultError, Message: MessageFailure} }

// Summary aggregates the sheet for the organisers.
type Summary struct {
	Total          int `json:"total"`
	Attending      int `json:"attending"`
	NotAttending   int `json:"not_attending"`
	Unknown        int `json:"unknown"`
	ExpectedGuests int `json:"expected_guests"`
}
