package constants

const (
	ConfigName   = "config"
	ConfigFormat = "yaml"

	// EnvPrefix is prepended to every config key when read from the environment,
	// e.g. LOVEFEST_SHEET_DRIVER overrides sheet.driver.
	EnvPrefix = "LOVEFEST"

	ServiceName = "lovefest_backend"
)

// NATS subjects.
const (
	SubjectRSVPReceived = "lovefest.rsvp.received"
)
