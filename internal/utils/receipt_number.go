package utils

import (
	"fmt"
	"time"
)

// GenerateReceiptNumber returns the display identifier for a new
// receipt. Millisecond timestamps keep numbers unique enough for a
// single-operator register while staying short; the number remains
// user-editable after creation.
func GenerateReceiptNumber(now time.Time) string {
	return fmt.Sprintf("RCP-%d", now.UnixMilli())
}
