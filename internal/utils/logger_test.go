package utils

import (
	"bytes"
	"log"
	"os"
	"strings"
	"testing"
)

func captureLog(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(os.Stderr)
	fn()
	return buf.String()
}

func TestLogEventFormatsLine(t *testing.T) {
	out := captureLog(t, func() {
		LogEvent("req-1", "booking", "create", "booking_id=7")
	})
	if !strings.Contains(out, "[BOOKING] action=create request_id=req-1 msg=booking_id=7") {
		t.Fatalf("unexpected log line: %q", out)
	}
}

func TestLogEventBlankRequestID(t *testing.T) {
	out := captureLog(t, func() {
		LogEvent("  ", "notify", "send", "delivery failed")
	})
	if !strings.Contains(out, "request_id=- ") {
		t.Fatalf("blank request id not normalized: %q", out)
	}
}
