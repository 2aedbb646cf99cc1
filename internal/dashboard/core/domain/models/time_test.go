package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestTimestampUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339 zulu", `"2025-03-01T10:20:30Z"`, time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC), false},
		{"fractional", `"2025-03-01T10:20:30.123Z"`, time.Date(2025, 3, 1, 10, 20, 30, 123000000, time.UTC), false},
		{"no zone", `"2025-03-01T10:20:30"`, time.Date(2025, 3, 1, 10, 20, 30, 0, time.UTC), false},
		{"bare date", `"2025-03-01"`, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.input), &ts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !ts.Equal(tt.want) {
				t.Errorf("got %v, want %v", ts.Time, tt.want)
			}
		})
	}
}

func TestDateInputRoundTrip(t *testing.T) {
	ts, err := ParseDateInput("2025-06-15")
	if err != nil {
		t.Fatalf("ParseDateInput: %v", err)
	}
	if got := ts.Wire(); got != "2025-06-15T00:00:00.000Z" {
		t.Errorf("Wire = %q", got)
	}
	if got := ts.DateInput(); got != "2025-06-15" {
		t.Errorf("DateInput = %q", got)
	}
	if got := ts.Display(); got != "15.06.2025" {
		t.Errorf("Display = %q", got)
	}
	if got := (Timestamp{}).Display(); got != "-" {
		t.Errorf("zero Display = %q", got)
	}
}

func TestTimeOfDay(t *testing.T) {
	if got := TimeOfDay("08:00:00").Input(); got != "08:00" {
		t.Errorf("Input = %q", got)
	}
	got, err := TimeOfDayFromInput("08:00")
	if err != nil || got != "08:00:00" {
		t.Errorf("FromInput = %q, %v", got, err)
	}
	if got, err := TimeOfDayFromInput("17:30:15"); err != nil || got != "17:30:15" {
		t.Errorf("FromInput with seconds = %q, %v", got, err)
	}
	if _, err := TimeOfDayFromInput("25:00"); err == nil {
		t.Error("expected error for 25:00")
	}
	if got := TimeOfDay("").Display(); got != "-" {
		t.Errorf("empty Display = %q", got)
	}
}

func TestTripActiveAtIsInclusive(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC)
	trip := Trip{ValidFrom: NewTimestamp(from), ValidUntil: NewTimestamp(until)}

	cases := map[string]struct {
		now  time.Time
		want bool
	}{
		"at start":  {from, true},
		"at end":    {until, true},
		"inside":    {from.Add(48 * time.Hour), true},
		"before":    {from.Add(-time.Second), false},
		"after end": {until.Add(time.Second), false},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if got := trip.ActiveAt(c.now); got != c.want {
				t.Errorf("ActiveAt = %v, want %v", got, c.want)
			}
		})
	}
}
