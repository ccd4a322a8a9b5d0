/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package hours

import (
	"fmt"
	"strings"
	"time"
)

// SlotCount is the number of half-hour slots in a day. The enumeration
// covers the whole day, 12:00 AM and 12:30 AM included, so a time picker
// built from Slots starts at midnight rather than at 1:00 AM.
const SlotCount = 48

// TimeOfDay is one of the 48 half-hour slots of a day, counted from midnight.
type TimeOfDay int

var (
	slotLabels [SlotCount]string
	slotIndex  = make(map[string]TimeOfDay, SlotCount)
)

func init() {
	for i := 0; i < SlotCount; i++ {
		label := formatSlot(i)
		slotLabels[i] = label
		slotIndex[label] = TimeOfDay(i)
	}
}

func formatSlot(i int) string {
	hour := i / 2
	minute := (i % 2) * 30
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	display := hour % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, minute, suffix)
}

// At returns the slot for an hour (0-23) and minute (0 or 30).
func At(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*2 + minute/30)
}

// MustParse is ParseTimeOfDay for package-level constants; it panics on unknown labels.
func MustParse(label string) TimeOfDay {
	t, err := ParseTimeOfDay(label)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseTimeOfDay maps a 12-hour label such as "9:00 AM" to its slot.
func ParseTimeOfDay(label string) (TimeOfDay, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(label), " "))
	t, ok := slotIndex[normalized]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownTime, label)
	}
	return t, nil
}

// Slots lists every slot label in chronological order.
func Slots() []string {
	out := make([]string, SlotCount)
	copy(out, slotLabels[:])
	return out
}

// Valid reports whether t is inside the enumeration.
func (t TimeOfDay) Valid() bool {
	return t >= 0 && t < SlotCount
}

func (t TimeOfDay) String() string {
	if !t.Valid() {
		return fmt.Sprintf("TimeOfDay(%d)", int(t))
	}
	return slotLabels[t]
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return int(t) * 30
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t < other
}

// Sub returns the duration from other to t.
func (t TimeOfDay) Sub(other TimeOfDay) time.Duration {
	return time.Duration(t.Minutes()-other.Minutes()) * time.Minute
}

// MarshalText encodes the slot as its label.
func (t TimeOfDay) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: slot %d", ErrUnknownTime, int(t))
	}
	return []byte(slotLabels[t]), nil
}

// UnmarshalText decodes a label produced by MarshalText.
func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ValidateRange returns ErrInvalidTimeRange unless start is before end.
func ValidateRange(start, end TimeOfDay) error {
	if !start.Before(end) {
		return fmt.Errorf("%w: %s - %s", ErrInvalidTimeRange, start, end)
	}
	return nil
}
