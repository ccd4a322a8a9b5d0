/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/calendar"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
)

// calendarResponse is a stateless month grid. Month is 1-based here, matching
// the URL.
type calendarResponse struct {
	Year        int                  `json:"year"`
	Month       int                  `json:"month"`
	Title       string               `json:"title"`
	SelectedDay int                  `json:"selected_day,omitempty"`
	Headers     []string             `json:"headers"`
	Weeks       [][]calendar.DayCell `json:"weeks"`
}

// handleCalendar lays out /calendar/{year}/{month}?selected=D&today=D.
func (a *API) handleCalendar(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil || year < 1 || year > 9999 {
		writeError(w, http.StatusBadRequest, "invalid_year")
		return
	}
	month, err := strconv.Atoi(chi.URLParam(r, "month"))
	if err != nil || month < 1 || month > 12 {
		writeError(w, http.StatusBadRequest, "invalid_month")
		return
	}
	month0 := month - 1
	days := calendar.DaysInMonth(year, month0)

	selected, ok := queryDay(r, "selected", days)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_day")
		return
	}
	today, ok := queryDay(r, "today", days)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid_day")
		return
	}

	writeJSON(w, http.StatusOK, calendarResponse{
		Year:        year,
		Month:       month,
		Title:       calendar.MonthName(month0) + " " + strconv.Itoa(year),
		SelectedDay: selected,
		Headers:     append([]string(nil), calendar.WeekdayHeaders[:]...),
		Weeks:       calendar.Weeks(calendar.BuildGrid(year, month0, selected, today)),
	})
}

// queryDay reads an optional day of month; absent means 0 (none).
func queryDay(r *http.Request, key string, days int) (int, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > days {
		return 0, false
	}
	return n, true
}

func (a *API) handleTimeSlots(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"slots": hours.Slots(),
	})
}

type serviceTypeResponse struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

func (a *API) handleServiceTypes(w http.ResponseWriter, r *http.Request) {
	types := booking.ServiceTypes()
	out := make([]serviceTypeResponse, len(types))
	for i, st := range types {
		out[i] = serviceTypeResponse{Value: string(st), Label: st.Label()}
	}
	writeJSON(w, http.StatusOK, map[string]any{"service_types": out})
}

func (a *API) handleNavigation(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"menu":   navigation.Menu(),
		"footer": navigation.Footer(),
	})
}
