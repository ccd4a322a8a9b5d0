/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package hours

import "errors"

var (
	// ErrUnknownTime is returned for labels outside the half-hour enumeration.
	ErrUnknownTime = errors.New("unknown time of day")
	// ErrUnknownWeekday is returned for names other than Sunday..Saturday.
	ErrUnknownWeekday = errors.New("unknown weekday")
	// ErrInvalidTimeRange is returned when a window does not start before it ends.
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	// ErrNotEditing is returned by draft operations while no weekday has focus.
	ErrNotEditing = errors.New("no weekday is being edited")
)
