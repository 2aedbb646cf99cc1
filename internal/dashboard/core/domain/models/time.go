package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const (
	// WireLayout is how timestamps are sent to the backend.
	WireLayout = "2006-01-02T15:04:05.000Z"
	// DateInputLayout is the layout of date form fields.
	DateInputLayout = "2006-01-02"
	// DisplayDateLayout matches the tr-TR short date.
	DisplayDateLayout = "02.01.2006"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DateInputLayout,
}

// Timestamp decodes the date formats the backend is known to send.
type Timestamp struct {
	time.Time
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unsupported timestamp %q", s)
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*t = Timestamp{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		*t = Timestamp{}
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Wire())
}

// Wire formats the timestamp for request bodies.
func (t Timestamp) Wire() string {
	return t.UTC().Format(WireLayout)
}

// DateInput returns the YYYY-MM-DD value used to pre-fill date fields.
func (t Timestamp) DateInput() string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(DateInputLayout)
}

// Display returns the short date shown in lists, "-" when unset.
func (t Timestamp) Display() string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(DisplayDateLayout)
}

// ParseDateInput turns a YYYY-MM-DD field value into UTC midnight.
func ParseDateInput(s string) (Timestamp, error) {
	t, err := time.Parse(DateInputLayout, strings.TrimSpace(s))
	if err != nil {
		return Timestamp{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Timestamp{Time: t}, nil
}

// TimeOfDay is a backend TimeSpan in HH:MM:SS form.
type TimeOfDay string

// Input returns the HH:MM value used by time fields.
func (t TimeOfDay) Input() string {
	s := string(t)
	if len(s) >= 5 {
		return s[:5]
	}
	return s
}

// Display is the same as Input, "-" when unset.
func (t TimeOfDay) Display() string {
	if t == "" {
		return "-"
	}
	return t.Input()
}

// TimeOfDayFromInput appends seconds to an HH:MM field value.
func TimeOfDayFromInput(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	switch len(s) {
	case 5:
		if _, err := time.Parse("15:04", s); err != nil {
			return "", fmt.Errorf("invalid time %q", s)
		}
		return TimeOfDay(s + ":00"), nil
	case 8:
		if _, err := time.Parse("15:04:05", s); err != nil {
			return "", fmt.Errorf("invalid time %q", s)
		}
		return TimeOfDay(s), nil
	default:
		return "", fmt.Errorf("invalid time %q", s)
	}
}
