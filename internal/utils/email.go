package utils

import "strings"

// MaskEmail obscures the local part of an address for log lines,
// e.g. "client@example.com" becomes "c***@example.com".
func MaskEmail(email string) string {
	at := strings.Index(email, "@")
	if at <= 1 {
		return email
	}
	return email[:1] + "***" + email[at:]
}
