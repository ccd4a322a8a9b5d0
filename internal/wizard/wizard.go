/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package wizard composes the bookings setup screen: service type, business
// hours, blackout dates, partial availability, the calendar and the sidebar.
// All changes go through Apply and all reads through Snapshot.
package wizard

import (
	"time"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/calendar"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
)

// TotalSteps is the length of the setup flow.
const TotalSteps = 3

// Defaults seeds a new wizard.
type Defaults struct {
	ServiceType  booking.ServiceType
	Week         hours.Week
	Blackouts    booking.Blackouts
	Partial      booking.PartialAvailability
	Calendar     calendar.View
	NavSelection string
}

// BuiltinDefaults matches the screen a business owner sees the first time.
func BuiltinDefaults() Defaults {
	return Defaults{
		ServiceType:  booking.DefaultServiceType,
		Week:         hours.DefaultWeek(),
		Blackouts:    booking.DefaultBlackouts(),
		Partial:      booking.DefaultPartial(),
		Calendar:     calendar.NewView(2024, 10, 24),
		NavSelection: navigation.DefaultSelection,
	}
}

// Wizard is the full mutable state of one setup session. It is not safe for
// concurrent use; callers serialise access per session.
type Wizard struct {
	ServiceType booking.ServiceType         `json:"service_type"`
	Hours       *hours.Editor               `json:"hours"`
	Calendar    calendar.View               `json:"calendar"`
	Blackouts   booking.Blackouts           `json:"blackouts"`
	Partial     booking.PartialAvailability `json:"partial"`
	Nav         navigation.State            `json:"nav"`
	Step        int                         `json:"step"`

	today time.Time
}

// New builds a wizard from defaults. today only marks the calendar's today
// cell when the displayed month is today's month.
func New(d Defaults, today time.Time) *Wizard {
	cal := calendar.NewView(d.Calendar.Year, d.Calendar.Month, d.Calendar.SelectedDay)
	cal.SyncToday(today)

	blackouts := make(booking.Blackouts, len(d.Blackouts))
	copy(blackouts, d.Blackouts)

	st := d.ServiceType
	if st == "" {
		st = booking.DefaultServiceType
	}
	sel := d.NavSelection
	if sel == "" {
		sel = navigation.DefaultSelection
	}

	return &Wizard{
		ServiceType: st,
		Hours:       hours.NewEditor(d.Week),
		Calendar:    cal,
		Blackouts:   blackouts,
		Partial:     d.Partial,
		Nav:         navigation.NewState(sel),
		Step:        1,
		today:       today,
	}
}

// Touch refreshes time-dependent fields after the wizard was loaded from a store.
func (w *Wizard) Touch(now time.Time) {
	w.today = now
	w.Calendar.SyncToday(now)
}

func (w *Wizard) now() time.Time {
	if w.today.IsZero() {
		return time.Now()
	}
	return w.today
}

func clampStep(step int) int {
	if step < 1 {
		return 1
	}
	if step > TotalSteps {
		return TotalSteps
	}
	return step
}
