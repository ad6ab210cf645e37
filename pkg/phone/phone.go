// Package phone normalises guest-entered phone numbers.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var ErrInvalid = errors.New("invalid phone number")

// E164 parses raw in the given default region (ISO 3166 code, used when raw
// has no leading +) and returns it in E.164 form.
func E164(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalid)
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", fmt.Errorf("%w: %q", ErrInvalid, raw)
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// LooksLikePhone reports whether contact is a phone number rather than an
// email address.
func LooksLikePhone(contact string) bool {
	contact = strings.TrimSpace(contact)
	return contact != "" && !strings.Contains(contact, "@")
}
