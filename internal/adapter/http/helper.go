package http

import (
	"strings"
	"time"
)

// ---- helpers ----

// timeNowBR is the DD/MM/YYYY emission date stamped on rendered documents.
func timeNowBR() string { return time.Now().Format("02/01/2006") }

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}
