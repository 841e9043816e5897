// internal/common/validation/forms.go
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// ValidateEmail validates email format
func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateInstitutionalEmail checks the format and that the domain is
// on the allow-list.
func ValidateInstitutionalEmail(email string, allowedDomains []string) error {
	if !ValidateEmail(email) {
		return fmt.Errorf("invalid email address")
	}
	at := strings.LastIndex(email, "@")
	domain := strings.ToLower(email[at+1:])
	for _, allowed := range allowedDomains {
		if domain == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("email must use an institutional domain (%s)", strings.Join(allowedDomains, ", "))
}

// ValidatePassword enforces the minimum length and confirmation match.
func ValidatePassword(password, confirm string, minLength int) error {
	if len(password) < minLength {
		return fmt.Errorf("password must be at least %d characters", minLength)
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}
	return nil
}

// MaskReceiptCode renders a receipt code the way the backend does:
// first eight characters, an ellipsis, last eight. Short codes are
// returned unchanged.
func MaskReceiptCode(code string) string {
	if len(code) <= 16 {
		return code
	}
	return code[:8] + "..." + code[len(code)-8:]
}

// SchoolYearTitle formats an election window as a school-year label,
// e.g. "SY 2025-2026".
func SchoolYearTitle(start time.Time) string {
	year := start.Year()
	if start.Month() < time.June {
		year--
	}
	return fmt.Sprintf("SY %d-%d", year, year+1)
}

// FormatTimestamp renders a server timestamp for display, empty when
// nil.
func FormatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Local().Format("January 2, 2006 3:04 PM")
}
