/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/calendar"
	"github.com/friendsincode/bookingsetup/internal/hours"
)

var (
	// ErrUnknownAction is returned for an action type Apply does not handle.
	ErrUnknownAction = errors.New("unknown action")
	// ErrInvalidCalendarDay is returned when picking a day the shown month does not have.
	ErrInvalidCalendarDay = errors.New("day is not in the displayed month")
	// ErrUnknownDirection is returned for a month step other than forward or backward.
	ErrUnknownDirection = errors.New("unknown calendar direction")
)

// ActionType names one user interaction.
type ActionType string

const (
	ActionSetServiceType  ActionType = "set_service_type"
	ActionToggleDay       ActionType = "toggle_day"
	ActionFocusDay        ActionType = "focus_day"
	ActionSetDraftStart   ActionType = "set_draft_start"
	ActionSetDraftEnd     ActionType = "set_draft_end"
	ActionCommitHours     ActionType = "commit_hours"
	ActionDiscardHours    ActionType = "discard_hours"
	ActionAdvanceMonth    ActionType = "advance_month"
	ActionPickDay         ActionType = "pick_day"
	ActionAddBlackout     ActionType = "add_blackout"
	ActionRemoveBlackout  ActionType = "remove_blackout"
	ActionTogglePartial   ActionType = "toggle_partial"
	ActionSetPartialStart ActionType = "set_partial_start"
	ActionSetPartialEnd   ActionType = "set_partial_end"
	ActionToggleNavGroup  ActionType = "toggle_nav_group"
	ActionSelectNavItem   ActionType = "select_nav_item"
	ActionNextStep        ActionType = "next_step"
	ActionPreviousStep    ActionType = "previous_step"
)

// ActionTypes lists every type Apply accepts.
func ActionTypes() []ActionType {
	return []ActionType{
		ActionSetServiceType, ActionToggleDay, ActionFocusDay, ActionSetDraftStart,
		ActionSetDraftEnd, ActionCommitHours, ActionDiscardHours, ActionAdvanceMonth,
		ActionPickDay, ActionAddBlackout, ActionRemoveBlackout, ActionTogglePartial,
		ActionSetPartialStart, ActionSetPartialEnd, ActionToggleNavGroup,
		ActionSelectNavItem, ActionNextStep, ActionPreviousStep,
	}
}

// Action is an inbound interaction. Only the fields its Type needs are read.
type Action struct {
	Type ActionType `json:"type"`

	// Weekday name for toggle_day and focus_day.
	Weekday string `json:"weekday,omitempty"`
	// Time slot label for the draft and partial setters.
	Time string `json:"time,omitempty"`
	// Service type for set_service_type, menu id for the nav actions.
	Value string `json:"value,omitempty"`
	// "forward" or "backward" for advance_month.
	Direction string `json:"direction,omitempty"`
	// Day of month for pick_day. OutsideMonth marks a leading or trailing cell.
	Day          int  `json:"day,omitempty"`
	OutsideMonth bool `json:"outside_month,omitempty"`
	// Blackout fields.
	Label     string `json:"label,omitempty"`
	TimeRange string `json:"time_range,omitempty"`
	Index     int    `json:"index,omitempty"`
}

// Apply performs one action. A failed action leaves the wizard unchanged.
func (w *Wizard) Apply(a Action) error {
	switch a.Type {
	case ActionSetServiceType:
		st, err := booking.ParseServiceType(a.Value)
		if err != nil {
			return err
		}
		w.ServiceType = st

	case ActionToggleDay:
		d, err := hours.ParseWeekday(a.Weekday)
		if err != nil {
			return err
		}
		w.Hours.ToggleEnabled(d)

	case ActionFocusDay:
		d, err := hours.ParseWeekday(a.Weekday)
		if err != nil {
			return err
		}
		w.Hours.FocusDay(d)

	case ActionSetDraftStart, ActionSetDraftEnd:
		t, err := hours.ParseTimeOfDay(a.Time)
		if err != nil {
			return err
		}
		if a.Type == ActionSetDraftStart {
			return w.Hours.SetDraftStart(t)
		}
		return w.Hours.SetDraftEnd(t)

	case ActionCommitHours:
		return w.Hours.Commit()

	case ActionDiscardHours:
		return w.Hours.Discard()

	case ActionAdvanceMonth:
		dir := calendar.Direction(strings.ToLower(strings.TrimSpace(a.Direction)))
		if dir != calendar.Forward && dir != calendar.Backward {
			return fmt.Errorf("%w: %q", ErrUnknownDirection, a.Direction)
		}
		w.Calendar.Advance(dir)
		w.Calendar.SyncToday(w.now())

	case ActionPickDay:
		if a.OutsideMonth {
			w.Calendar.PickDay(calendar.DayCell{Day: a.Day})
			return nil
		}
		cell, ok := w.Calendar.Cell(a.Day)
		if !ok {
			return fmt.Errorf("%w: %d", ErrInvalidCalendarDay, a.Day)
		}
		w.Calendar.PickDay(cell)

	case ActionAddBlackout:
		return w.Blackouts.Append(booking.BlackoutEntry{Label: a.Label, TimeRange: a.TimeRange})

	case ActionRemoveBlackout:
		w.Blackouts.RemoveAt(a.Index)

	case ActionTogglePartial:
		w.Partial.Toggle()

	case ActionSetPartialStart, ActionSetPartialEnd:
		t, err := hours.ParseTimeOfDay(a.Time)
		if err != nil {
			return err
		}
		if a.Type == ActionSetPartialStart {
			return w.Partial.SetStart(t)
		}
		return w.Partial.SetEnd(t)

	case ActionToggleNavGroup:
		w.Nav.ToggleGroup(a.Value)

	case ActionSelectNavItem:
		return w.Nav.Select(a.Value)

	case ActionNextStep:
		w.Step = clampStep(w.Step + 1)

	case ActionPreviousStep:
		w.Step = clampStep(w.Step - 1)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a.Type)
	}
	return nil
}
