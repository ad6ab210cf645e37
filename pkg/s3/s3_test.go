package s3

import (
	"context"
	"strings"
	"testing"

	"github.com/lovefest/lovefest_backend/config"
)

func TestObjectKey(t *testing.T) {
	tests := []struct{ prefix, name, want string }{
		{"", "a.csv", "a.csv"},
		{"exports", "a.csv", "exports/a.csv"},
		{"exports//", "a.csv", "exports/a.csv"},
	}
	for _, tt := range tests {
		if got := ObjectKey(tt.prefix, tt.name); got != tt.want {
			t.Errorf("ObjectKey(%q, %q) = %q, want %q", tt.prefix, tt.name, got, tt.want)
		}
	}
}

func TestNew_RequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), config.S3Config{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}

func TestPresignDownload_PathStyle(t *testing.T) {
	c, err := New(context.Background(), config.S3Config{
		Endpoint:        "http://localhost:9000",
		Region:          "us-east-1",
		AccessKeyID:     "minio",
		SecretAccessKey: "minio123",
		Bucket:          "rsvps",
		Prefix:          "exports",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	u, err := c.PresignDownload(context.Background(), c.Key("rsvps.csv"))
	if err != nil {
		t.Fatalf("PresignDownload: %v", err)
	}
	if !strings.HasPrefix(u, "http://localhost:9000/rsvps/exports/rsvps.csv?") {
		t.Fatalf("url = %s", u)
	}
}
