/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package calendar

import (
	"fmt"
	"time"
)

// Direction selects which way Advance moves the displayed month.
type Direction string

const (
	Forward  Direction = "forward"
	Backward Direction = "backward"
)

// View is the calendar display state: the shown month, the picked day and
// today's day-of-month (0 when today is not in the shown month).
type View struct {
	Year        int `json:"year" yaml:"year"`
	Month       int `json:"month" yaml:"month"` // 0=January
	SelectedDay int `json:"selected_day" yaml:"selected_day"`
	TodayDay    int `json:"today_day" yaml:"-"`
}

// NewView returns a view with month folded into 0-11.
func NewView(year, month, selectedDay int) View {
	year += month / 12
	if month%12 < 0 {
		year--
	}
	return View{Year: year, Month: normalizeMonth(month), SelectedDay: selectedDay}
}

// Advance moves one month in the given direction, wrapping the year.
// The selected day is left alone.
func (v *View) Advance(dir Direction) {
	switch dir {
	case Forward:
		if v.Month == 11 {
			v.Month = 0
			v.Year++
			return
		}
		v.Month++
	case Backward:
		if v.Month == 0 {
			v.Month = 11
			v.Year--
			return
		}
		v.Month--
	}
}

// PickDay selects the cell's day. Cells outside the displayed month are ignored.
func (v *View) PickDay(cell DayCell) {
	if !cell.InCurrentMonth {
		return
	}
	v.SelectedDay = cell.Day
}

// SyncToday sets TodayDay from now when the displayed month is now's month.
func (v *View) SyncToday(now time.Time) {
	if now.Year() == v.Year && int(now.Month())-1 == v.Month {
		v.TodayDay = now.Day()
		return
	}
	v.TodayDay = 0
}

// Grid builds the 42-cell grid for the view.
func (v View) Grid() []DayCell {
	return BuildGrid(v.Year, v.Month, v.SelectedDay, v.TodayDay)
}

// Weeks returns the grid as six rows.
func (v View) Weeks() [][]DayCell {
	return Weeks(v.Grid())
}

// Cell returns the in-month cell for day, if it exists in the displayed month.
func (v View) Cell(day int) (DayCell, bool) {
	if day < 1 || day > DaysInMonth(v.Year, v.Month) {
		return DayCell{}, false
	}
	return DayCell{
		Day:            day,
		InCurrentMonth: true,
		IsSelected:     day == v.SelectedDay,
		IsToday:        day == v.TodayDay && day != v.SelectedDay,
	}, true
}

// Title is the heading shown above the grid, e.g. "November 2024".
func (v View) Title() string {
	return fmt.Sprintf("%s %d", MonthName(v.Month), v.Year)
}

// SelectedLabel names the selected day, e.g. "November 24". It is empty when
// nothing is selected or the selection does not exist in the displayed month.
func (v View) SelectedLabel() string {
	if v.SelectedDay <= 0 || v.SelectedDay > DaysInMonth(v.Year, v.Month) {
		return ""
	}
	return fmt.Sprintf("%s %d", MonthName(v.Month), v.SelectedDay)
}
