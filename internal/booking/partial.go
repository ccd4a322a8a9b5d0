/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package booking

import (
	"fmt"
	"time"

	"github.com/friendsincode/bookingsetup/internal/hours"
)

// Choices offered for the partial availability window, in menu order.
var (
	PartialStartChoices = []hours.TimeOfDay{
		hours.At(11, 0), hours.At(12, 0), hours.At(9, 0), hours.At(10, 0),
	}
	PartialEndChoices = []hours.TimeOfDay{
		hours.At(13, 0), hours.At(14, 0), hours.At(15, 0), hours.At(17, 0),
	}
)

// PartialAvailability blocks out part of a single day. Turning it off keeps
// the window so it comes back when re-enabled.
type PartialAvailability struct {
	Enabled bool            `json:"enabled" yaml:"enabled"`
	Start   hours.TimeOfDay `json:"start" yaml:"start"`
	End     hours.TimeOfDay `json:"end" yaml:"end"`
}

// DefaultPartial is disabled with an 11:00 AM - 1:00 PM window.
func DefaultPartial() PartialAvailability {
	return PartialAvailability{Start: hours.At(11, 0), End: hours.At(13, 0)}
}

// Toggle flips Enabled.
func (p *PartialAvailability) Toggle() {
	p.Enabled = !p.Enabled
}

// SetStart changes the window start.
func (p *PartialAvailability) SetStart(t hours.TimeOfDay) error {
	if !contains(PartialStartChoices, t) {
		return fmt.Errorf("%w: %s is not a partial availability start", hours.ErrUnknownTime, t)
	}
	if err := hours.ValidateRange(t, p.End); err != nil {
		return err
	}
	p.Start = t
	return nil
}

// SetEnd changes the window end.
func (p *PartialAvailability) SetEnd(t hours.TimeOfDay) error {
	if !contains(PartialEndChoices, t) {
		return fmt.Errorf("%w: %s is not a partial availability end", hours.ErrUnknownTime, t)
	}
	if err := hours.ValidateRange(p.Start, t); err != nil {
		return err
	}
	p.End = t
	return nil
}

// Validate reports whether the window only uses offered choices and starts
// before it ends.
func (p PartialAvailability) Validate() error {
	if !contains(PartialStartChoices, p.Start) {
		return fmt.Errorf("%w: %s is not a partial availability start", hours.ErrUnknownTime, p.Start)
	}
	if !contains(PartialEndChoices, p.End) {
		return fmt.Errorf("%w: %s is not a partial availability end", hours.ErrUnknownTime, p.End)
	}
	return hours.ValidateRange(p.Start, p.End)
}

// Duration is the length of the blocked window.
func (p PartialAvailability) Duration() time.Duration {
	return p.End.Sub(p.Start)
}

// DurationLabel renders Duration as "2h" or "2h 30m".
func (p PartialAvailability) DurationLabel() string {
	d := p.Duration()
	if d <= 0 {
		return "0h"
	}
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// Window renders the range, e.g. "11:00 AM - 1:00 PM".
func (p PartialAvailability) Window() string {
	return fmt.Sprintf("%s - %s", p.Start, p.End)
}

func contains(list []hours.TimeOfDay, t hours.TimeOfDay) bool {
	for _, c := range list {
		if c == t {
			return true
		}
	}
	return false
}
