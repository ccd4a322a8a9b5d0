/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package web

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/csrf"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/session"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

const setupPath = "/bookings/setup"

// errBadForm is reported when a numeric form field does not parse.
var errBadForm = errors.New("malformed form field")

var flashMessages = map[string]string{
	"invalid_time_range":   "Opening time must be before closing time.",
	"not_editing":          "Select an open day before changing its hours.",
	"unknown_time":         "Pick a time from the list.",
	"unknown_weekday":      "That day does not exist.",
	"unknown_service_type": "Pick a service type from the list.",
	"empty_blackout":       "Enter a date for the blackout.",
	"unknown_menu_item":    "That menu entry does not exist.",
	"unknown_action":       "That action is not supported.",
	"invalid_calendar_day": "That day is not in the displayed month.",
	"unknown_direction":    "The calendar can only move forward or backward.",
}

type serviceOption struct {
	Value    string
	Label    string
	Selected bool
}

// setupView is the template data for the wizard page.
type setupView struct {
	wizard.Snapshot
	ServiceTypes []serviceOption
	TimeSlots    []string
	Header       ButtonPair
	DayActions   ButtonPair
	BottomBar    ButtonPair
}

// BookingsSetup renders the wizard screen for the caller's session.
func (h *Handler) BookingsSetup(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	snap, err := h.manager.Snapshot(r.Context(), sessionID, session.MetaFromRequest(r))
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to load session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.Render(w, r, "pages/bookings_setup", PageData{
		Title:     "Bookings setup",
		Flash:     h.popFlash(w, r),
		CSRFToken: csrf.Token(r),
		Data:      newSetupView(snap),
	})
}

// BookingsSetupAction applies one form-submitted action and redirects back.
func (h *Handler) BookingsSetupAction(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.setFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, setupPath, http.StatusSeeOther)
		return
	}

	action, err := actionFromForm(r)
	if err != nil {
		h.setFlash(w, "error", "Invalid form data")
		http.Redirect(w, r, setupPath, http.StatusSeeOther)
		return
	}

	_, err = h.manager.Apply(r.Context(), sessionID, action, session.MetaFromRequest(r))
	var actionErr *session.ActionError
	switch {
	case errors.As(err, &actionErr):
		h.setFlash(w, "error", flashMessage(actionErr))
	case err != nil:
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to apply action")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, setupPath, http.StatusSeeOther)
}

// BookingsSetupReset drops the session's changes.
func (h *Handler) BookingsSetupReset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := session.IDFromContext(r.Context())
	if !ok {
		http.Error(w, "No session", http.StatusInternalServerError)
		return
	}

	if err := h.manager.Reset(r.Context(), sessionID, session.MetaFromRequest(r)); err != nil {
		h.logger.Error().Err(err).Str("session_id", sessionID).Msg("failed to reset session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.setFlash(w, "info", "Setup restored to the defaults.")
	http.Redirect(w, r, setupPath, http.StatusSeeOther)
}

func newSetupView(snap wizard.Snapshot) setupView {
	options := make([]serviceOption, 0, len(booking.ServiceTypes()))
	for _, st := range booking.ServiceTypes() {
		options = append(options, serviceOption{
			Value:    string(st),
			Label:    st.Label(),
			Selected: st == snap.ServiceType,
		})
	}

	return setupView{
		Snapshot:     snap,
		ServiceTypes: options,
		TimeSlots:    hours.Slots(),
		Header:       newButtonPair(string(wizard.ActionNextStep), string(wizard.ActionPreviousStep)),
		DayActions: ButtonPair{
			PrimaryLabel:    "Save",
			PrimaryAction:   string(wizard.ActionCommitHours),
			SecondaryAction: string(wizard.ActionDiscardHours),
			PrimaryIcon:     Icon{Src: "chevron-right", Alt: "Save"},
		}.WithDefaults(),
		BottomBar: newButtonPair(string(wizard.ActionNextStep), string(wizard.ActionPreviousStep), "Save"),
	}
}

func flashMessage(err *session.ActionError) string {
	if msg, ok := flashMessages[wizard.ErrorCode(err)]; ok {
		return msg
	}
	return "That change could not be applied."
}

// actionFromForm reads an action from a urlencoded form. Fields the action
// type does not use are ignored.
func actionFromForm(r *http.Request) (wizard.Action, error) {
	a := wizard.Action{
		Type:      wizard.ActionType(strings.TrimSpace(r.FormValue("type"))),
		Weekday:   r.FormValue("weekday"),
		Time:      r.FormValue("time"),
		Value:     r.FormValue("value"),
		Direction: r.FormValue("direction"),
		Label:     strings.TrimSpace(r.FormValue("label")),
		TimeRange: strings.TrimSpace(r.FormValue("time_range")),
	}

	var err error
	if a.Day, err = formInt(r, "day"); err != nil {
		return wizard.Action{}, err
	}
	if a.Index, err = formInt(r, "index"); err != nil {
		return wizard.Action{}, err
	}

	switch strings.ToLower(r.FormValue("outside_month")) {
	case "", "0", "false", "off":
	default:
		a.OutsideMonth = true
	}

	return a, nil
}

func formInt(r *http.Request, field string) (int, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", errBadForm, field)
	}
	return n, nil
}
