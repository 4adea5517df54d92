// Package qr extracts student badge fields from decoded QR text.
package qr

import (
	"fmt"
	"strings"
)

// MinFields is the number of non-empty fields a badge must carry.
const MinFields = 3

// Fields are the badge values in payload order.
type Fields struct {
	School      string
	StudentID   string
	StudentName string
}

// MalformedContentError reports a payload with too few fields.
type MalformedContentError struct {
	Raw   string
	Found int
}

func (e *MalformedContentError) Error() string {
	return fmt.Sprintf("malformed QR content: %d of %d fields (expected school,student id,name): %q", e.Found, MinFields, e.Raw)
}

// Parse strips line breaks, splits on ',', ';' or '|', drops empty fields and
// returns the first three. Extra fields are ignored.
func Parse(raw string) (Fields, error) {
	text := strings.TrimSpace(strings.NewReplacer("\r", "", "\n", "").Replace(raw))
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ';' || r == '|'
	})

	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	if len(fields) < MinFields {
		return Fields{}, &MalformedContentError{Raw: raw, Found: len(fields)}
	}
	return Fields{School: fields[0], StudentID: fields[1], StudentName: fields[2]}, nil
}
