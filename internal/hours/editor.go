/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package hours models weekly business hours and the single-day editor used
// to change them.
package hours

import (
	"encoding/json"
	"fmt"
)

// DayHours is the stored record for one weekday.
type DayHours struct {
	Enabled bool      `json:"enabled" yaml:"enabled"`
	Start   TimeOfDay `json:"start" yaml:"start"`
	End     TimeOfDay `json:"end" yaml:"end"`
}

// Summary is the text shown in the weekday list.
func (h DayHours) Summary() string {
	if !h.Enabled {
		return "Closed"
	}
	return fmt.Sprintf("%s - %s", h.Start, h.End)
}

// Week holds one entry per weekday, indexed by Weekday.
type Week [DaysPerWeek]DayHours

var (
	defaultOpen  = At(9, 0)
	defaultClose = At(19, 0)
)

// DefaultWeek opens Monday to Friday from 9:00 AM to 7:00 PM.
func DefaultWeek() Week {
	var w Week
	for _, d := range Weekdays() {
		w[d] = DayHours{
			Enabled: d != Sunday && d != Saturday,
			Start:   defaultOpen,
			End:     defaultClose,
		}
	}
	return w
}

// Editor owns the week table and the focused-day draft. It is either idle
// (no focus) or editing exactly one enabled weekday.
type Editor struct {
	week       Week
	focus      *Weekday
	draftStart TimeOfDay
	draftEnd   TimeOfDay
}

// NewEditor starts editing Monday when it is open, otherwise idle.
func NewEditor(week Week) *Editor {
	e := &Editor{week: week}
	e.FocusDay(Monday)
	return e
}

// Week returns a copy of the stored hours.
func (e *Editor) Week() Week {
	return e.week
}

// Day returns the stored hours for d.
func (e *Editor) Day(d Weekday) DayHours {
	return e.week[d]
}

// Focus returns the weekday being edited.
func (e *Editor) Focus() (Weekday, bool) {
	if e.focus == nil {
		return 0, false
	}
	return *e.focus, true
}

// Editing reports whether a weekday has focus.
func (e *Editor) Editing() bool {
	return e.focus != nil
}

// Draft returns the uncommitted start and end times.
func (e *Editor) Draft() (TimeOfDay, TimeOfDay) {
	return e.draftStart, e.draftEnd
}

// ToggleEnabled opens or closes a weekday. Stored times are kept. Closing the
// focused weekday drops focus so a closed day cannot be edited.
func (e *Editor) ToggleEnabled(d Weekday) {
	if !d.Valid() {
		return
	}
	e.week[d].Enabled = !e.week[d].Enabled
	if !e.week[d].Enabled && e.focus != nil && *e.focus == d {
		e.focus = nil
	}
}

// FocusDay starts editing d and loads its stored times into the draft.
// Closed days are ignored.
func (e *Editor) FocusDay(d Weekday) {
	if !d.Valid() || !e.week[d].Enabled {
		return
	}
	day := d
	e.focus = &day
	e.draftStart = e.week[d].Start
	e.draftEnd = e.week[d].End
}

// SetDraftStart changes the draft opening time.
func (e *Editor) SetDraftStart(t TimeOfDay) error {
	if err := e.checkDraft(t); err != nil {
		return err
	}
	e.draftStart = t
	return nil
}

// SetDraftEnd changes the draft closing time.
func (e *Editor) SetDraftEnd(t TimeOfDay) error {
	if err := e.checkDraft(t); err != nil {
		return err
	}
	e.draftEnd = t
	return nil
}

func (e *Editor) checkDraft(t TimeOfDay) error {
	if e.focus == nil {
		return ErrNotEditing
	}
	if !t.Valid() {
		return fmt.Errorf("%w: slot %d", ErrUnknownTime, int(t))
	}
	return nil
}

// Commit stores the draft on the focused weekday. Focus is kept.
func (e *Editor) Commit() error {
	if e.focus == nil {
		return ErrNotEditing
	}
	if err := ValidateRange(e.draftStart, e.draftEnd); err != nil {
		return err
	}
	d := *e.focus
	e.week[d].Start = e.draftStart
	e.week[d].End = e.draftEnd
	return nil
}

// Discard resets the draft to the focused weekday's stored times.
func (e *Editor) Discard() error {
	if e.focus == nil {
		return ErrNotEditing
	}
	d := *e.focus
	e.draftStart = e.week[d].Start
	e.draftEnd = e.week[d].End
	return nil
}

type editorState struct {
	Week       Week      `json:"week"`
	Focus      *Weekday  `json:"focus,omitempty"`
	DraftStart TimeOfDay `json:"draft_start"`
	DraftEnd   TimeOfDay `json:"draft_end"`
}

// MarshalJSON lets session stores serialise an editor.
func (e *Editor) MarshalJSON() ([]byte, error) {
	return json.Marshal(editorState{
		Week:       e.week,
		Focus:      e.focus,
		DraftStart: e.draftStart,
		DraftEnd:   e.draftEnd,
	})
}

// UnmarshalJSON restores an editor written by MarshalJSON.
func (e *Editor) UnmarshalJSON(data []byte) error {
	var st editorState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Focus != nil && !st.Focus.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownWeekday, int(*st.Focus))
	}
	e.week = st.Week
	e.focus = st.Focus
	e.draftStart = st.DraftStart
	e.draftEnd = st.DraftEnd
	return nil
}
