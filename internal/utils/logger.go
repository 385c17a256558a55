package utils

import (
	"log"
	"strings"
)

// LogEvent emits one structured line tagged with module, action and the
// request id that triggered it. An empty request id is rendered as "-"
// so background work stays grep-able. Keep messages short; payloads and
// credentials never belong in the log.
func LogEvent(requestID, module, action, message string) {
	rid := strings.TrimSpace(requestID)
	if rid == "" {
		rid = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, rid, message)
}
