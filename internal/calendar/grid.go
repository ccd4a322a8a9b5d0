/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package calendar builds the month-view date grid used by the bookings wizard.
package calendar

import "time"

// GridSize is the number of cells in a month grid: six full weeks.
const GridSize = 42

// DayCell is one position in the month grid.
type DayCell struct {
	Day            int  `json:"day"`
	InCurrentMonth bool `json:"in_current_month"`
	IsSelected     bool `json:"is_selected"`
	IsToday        bool `json:"is_today"`
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// WeekdayHeaders are the column labels, Sunday first.
var WeekdayHeaders = [7]string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// MonthName returns the English name for a zero-based month.
func MonthName(month int) string {
	return monthNames[normalizeMonth(month)]
}

// DaysInMonth returns the number of days in a zero-based month.
func DaysInMonth(year, month int) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, time.Month(month+2), 0, 0, 0, 0, 0, time.UTC).Day()
}

// FirstWeekday returns the weekday (0=Sunday) of the first day of a zero-based month.
func FirstWeekday(year, month int) int {
	return int(time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).Weekday())
}

// BuildGrid lays out a zero-based month as 42 cells starting on a Sunday.
// Leading cells belong to the previous month and trailing cells to the next one.
// A cell that is both selected and today only reports IsSelected.
func BuildGrid(year, month, selectedDay, todayDay int) []DayCell {
	cells := make([]DayCell, 0, GridSize)

	lead := FirstWeekday(year, month)
	prevDays := DaysInMonth(year, month-1)
	for i := lead - 1; i >= 0; i-- {
		cells = append(cells, DayCell{Day: prevDays - i})
	}

	days := DaysInMonth(year, month)
	for d := 1; d <= days; d++ {
		selected := d == selectedDay
		cells = append(cells, DayCell{
			Day:            d,
			InCurrentMonth: true,
			IsSelected:     selected,
			IsToday:        d == todayDay && !selected,
		})
	}

	for d := 1; len(cells) < GridSize; d++ {
		cells = append(cells, DayCell{Day: d})
	}

	return cells
}

// Weeks splits a grid into rows of seven cells.
func Weeks(cells []DayCell) [][]DayCell {
	rows := make([][]DayCell, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		end := i + 7
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[i:end])
	}
	return rows
}

func normalizeMonth(month int) int {
	month %= 12
	if month < 0 {
		month += 12
	}
	return month
}
