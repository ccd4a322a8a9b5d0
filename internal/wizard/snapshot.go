/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package wizard

import (
	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/calendar"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
)

// Snapshot is a read-only copy of everything the screen renders.
type Snapshot struct {
	ServiceType      booking.ServiceType `json:"service_type"`
	ServiceTypeLabel string              `json:"service_type_label"`
	Step             int                 `json:"step"`
	TotalSteps       int                 `json:"total_steps"`

	Days    []DaySnapshot `json:"days"`
	Editing *DayEditor    `json:"editing,omitempty"`

	Calendar CalendarSnapshot `json:"calendar"`

	Blackouts []booking.BlackoutEntry `json:"blackouts"`
	Partial   PartialSnapshot         `json:"partial"`

	Nav NavSnapshot `json:"nav"`
}

// DaySnapshot is one row of the business hours list.
type DaySnapshot struct {
	Weekday  string `json:"weekday"`
	Enabled  bool   `json:"enabled"`
	Start    string `json:"start"`
	End      string `json:"end"`
	Summary  string `json:"summary"`
	Selected bool   `json:"selected"`
}

// DayEditor is the day setup panel while a weekday has focus.
type DayEditor struct {
	Weekday    string `json:"weekday"`
	DraftStart string `json:"draft_start"`
	DraftEnd   string `json:"draft_end"`
}

// CalendarSnapshot is the month grid plus its headings.
type CalendarSnapshot struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	Title         string               `json:"title"`
	SelectedDay   int                  `json:"selected_day"`
	SelectedLabel string               `json:"selected_label"`
	Headers       []string             `json:"headers"`
	Weeks         [][]calendar.DayCell `json:"weeks"`
}

// PartialSnapshot is the partial availability card.
type PartialSnapshot struct {
	Enabled       bool     `json:"enabled"`
	Start         string   `json:"start"`
	End           string   `json:"end"`
	Window        string   `json:"window"`
	DurationLabel string   `json:"duration_label"`
	StartChoices  []string `json:"start_choices"`
	EndChoices    []string `json:"end_choices"`
}

// NavSnapshot is the sidebar state.
type NavSnapshot struct {
	Selected string          `json:"selected"`
	Open     map[string]bool `json:"open"`
}

// Snapshot copies the current state. Later Apply calls do not affect it.
func (w *Wizard) Snapshot() Snapshot {
	s := Snapshot{
		ServiceType:      w.ServiceType,
		ServiceTypeLabel: w.ServiceType.Label(),
		Step:             w.Step,
		TotalSteps:       TotalSteps,
	}

	focus, editing := w.Hours.Focus()
	for _, d := range hours.Weekdays() {
		dh := w.Hours.Day(d)
		s.Days = append(s.Days, DaySnapshot{
			Weekday:  d.String(),
			Enabled:  dh.Enabled,
			Start:    dh.Start.String(),
			End:      dh.End.String(),
			Summary:  dh.Summary(),
			Selected: editing && focus == d,
		})
	}
	if editing {
		start, end := w.Hours.Draft()
		s.Editing = &DayEditor{
			Weekday:    focus.String(),
			DraftStart: start.String(),
			DraftEnd:   end.String(),
		}
	}

	s.Calendar = CalendarSnapshot{
		Year:          w.Calendar.Year,
		Month:         w.Calendar.Month,
		Title:         w.Calendar.Title(),
		SelectedDay:   w.Calendar.SelectedDay,
		SelectedLabel: w.Calendar.SelectedLabel(),
		Headers:       append([]string(nil), calendar.WeekdayHeaders[:]...),
		Weeks:         w.Calendar.Weeks(),
	}

	s.Blackouts = make([]booking.BlackoutEntry, len(w.Blackouts))
	copy(s.Blackouts, w.Blackouts)

	s.Partial = PartialSnapshot{
		Enabled:       w.Partial.Enabled,
		Start:         w.Partial.Start.String(),
		End:           w.Partial.End.String(),
		Window:        w.Partial.Window(),
		DurationLabel: w.Partial.DurationLabel(),
		StartChoices:  labels(booking.PartialStartChoices),
		EndChoices:    labels(booking.PartialEndChoices),
	}

	s.Nav = NavSnapshot{Selected: w.Nav.Selected, Open: make(map[string]bool)}
	for _, it := range navigation.Menu() {
		if it.IsGroup() {
			s.Nav.Open[it.ID] = w.Nav.IsOpen(it.ID)
		}
	}
	return s
}

func labels(ts []hours.TimeOfDay) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}
