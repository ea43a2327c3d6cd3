package resolve

import (
	"strings"

	"github.com/mexxdev/qrdirect/internal/domain"
)

// renderVCard serializes contact details as a vCard 3.0 document. Optional
// fields are omitted entirely rather than emitted empty, and lines are joined
// with bare newlines to match what mobile contact importers accept.
func renderVCard(c domain.ContactDetails) string {
	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + c.LastName + ";" + c.FirstName,
		"FN:" + strings.TrimSpace(c.FirstName+" "+c.LastName),
	}
	if c.Company != "" {
		lines = append(lines, "ORG:"+c.Company)
	}
	if c.Title != "" {
		lines = append(lines, "TITLE:"+c.Title)
	}
	if c.Phone != "" {
		lines = append(lines, "TEL;TYPE=WORK,VOICE:"+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "EMAIL:"+c.Email)
	}
	if c.Website != "" {
		lines = append(lines, "URL:"+c.Website)
	}
	if c.Address != "" {
		lines = append(lines, "ADR;TYPE=WORK:;;"+c.Address)
	}
	lines = append(lines, "END:VCARD")

	return strings.Join(lines, "\n")
}
