package ingestion

import (
	"regexp"
	"strings"

	"github.com/jonathan/skill-gap-advisor/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`\+?1?\s*\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)
	linkedInPattern = regexp.MustCompile(`(?i)linkedin\.com/in/[a-zA-Z0-9\-]+`)
)

// ExtractContactInfo returns the first email, phone number and LinkedIn
// profile found in text. Absent fields are empty.
func ExtractContactInfo(text string) types.ContactInfo {
	return types.ContactInfo{
		Email:    emailPattern.FindString(text),
		Phone:    strings.TrimSpace(phonePattern.FindString(text)),
		LinkedIn: linkedInPattern.FindString(text),
	}
}
