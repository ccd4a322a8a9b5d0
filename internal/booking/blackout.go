/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package booking

import (
	"errors"
	"strings"
)

// ErrEmptyBlackout is returned when a blackout entry has no label.
var ErrEmptyBlackout = errors.New("blackout label is required")

// BlackoutEntry is a date the business is closed, optionally only for part of the day.
type BlackoutEntry struct {
	Label     string `json:"label" yaml:"label"`
	TimeRange string `json:"time_range,omitempty" yaml:"time_range,omitempty"`
}

// Blackouts is an ordered list of blackout entries.
type Blackouts []BlackoutEntry

// DefaultBlackouts mirrors the entries shown on a fresh wizard.
func DefaultBlackouts() Blackouts {
	return Blackouts{
		{Label: "Nov 24, 2024"},
		{Label: "Nov 24, 2024 - 11 AM - 1 PM", TimeRange: "11 AM - 1 PM"},
	}
}

// Append adds an entry at the end of the list.
func (b *Blackouts) Append(entry BlackoutEntry) error {
	entry.Label = strings.TrimSpace(entry.Label)
	entry.TimeRange = strings.TrimSpace(entry.TimeRange)
	if entry.Label == "" {
		return ErrEmptyBlackout
	}
	*b = append(*b, entry)
	return nil
}

// RemoveAt deletes the entry at index. Out-of-range indexes are ignored and
// reported with false.
func (b *Blackouts) RemoveAt(index int) bool {
	if index < 0 || index >= len(*b) {
		return false
	}
	out := make(Blackouts, 0, len(*b)-1)
	out = append(out, (*b)[:index]...)
	out = append(out, (*b)[index+1:]...)
	*b = out
	return true
}
