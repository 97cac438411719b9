// Package slot holds the booking conflict rule for fixed one-hour room slots.
//
// A slot is identified by its start time within a single (room, date)
// partition. Two slots conflict when their start times are less than
// SlotDuration apart; exactly SlotDuration apart is allowed.
package slot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	SlotDuration = 60 * time.Minute

	minutesPerDay = 24 * 60
)

// TimeOfDay is a start time expressed in minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS". Seconds are dropped.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("invalid time of day %q: want HH:MM", s)
	}

	hour, err := parseField(parts[0], 23)
	if err != nil {
		return 0, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	minute, err := parseField(parts[1], 59)
	if err != nil {
		return 0, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if len(parts) == 3 {
		if _, err := parseField(parts[2], 59); err != nil {
			return 0, fmt.Errorf("invalid second in %q: %w", s, err)
		}
	}

	return TimeOfDay(hour*60 + minute), nil
}

func parseField(s string, maxValue int) (int, error) {
	if len(s) != 2 {
		return 0, fmt.Errorf("%q must be two digits", s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxValue {
		return 0, fmt.Errorf("%d out of range 0-%d", n, maxValue)
	}
	return n, nil
}

// MustParse is ParseTimeOfDay for constants and tests.
func MustParse(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < minutesPerDay
}

// String formats as "HH:MM".
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Distance is the absolute difference between two start times.
func Distance(a, b TimeOfDay) time.Duration {
	d := int(a) - int(b)
	if d < 0 {
		d = -d
	}
	return time.Duration(d) * time.Minute
}

// Conflicts reports whether two slots in the same partition overlap.
func Conflicts(a, b TimeOfDay) bool {
	return Distance(a, b) < SlotDuration
}

// IsSlotAvailable reports whether proposed is at least SlotDuration away
// from every start time in existing. The caller supplies only the times
// booked for the same room and date.
func IsSlotAvailable(proposed TimeOfDay, existing []TimeOfDay) bool {
	_, found := FirstConflict(proposed, existing)
	return !found
}

// FirstConflict returns the first existing start time that conflicts with
// proposed, in input order.
func FirstConflict(proposed TimeOfDay, existing []TimeOfDay) (TimeOfDay, bool) {
	for _, e := range existing {
		if Conflicts(proposed, e) {
			return e, true
		}
	}
	return 0, false
}
