package phone

import (
	"errors"
	"testing"
)

func TestE164(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		region  string
		want    string
		wantErr bool
	}{
		{"international", "+1 650-253-0000", "IN", "+16502530000", false},
		{"national with region", "098123 45678", "IN", "+919812345678", false},
		{"lowercase region", "9812345678", "in", "+919812345678", false},
		{"empty", "  ", "IN", "", true},
		{"garbage", "call me", "IN", "", true},
		{"too short", "+1 555", "US", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := E164(tt.raw, tt.region)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("err = %v, want ErrInvalid", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("E164: %v", err)
			}
			if got != tt.want {
				t.Errorf("E164() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLooksLikePhone(t *testing.T) {
	if !LooksLikePhone("+1 5551234") {
		t.Error("phone not detected")
	}
	if LooksLikePhone("jane@example.com") || LooksLikePhone("") {
		t.Error("false positive")
	}
}
