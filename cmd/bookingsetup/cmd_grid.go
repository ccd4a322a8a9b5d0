/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/friendsincode/bookingsetup/internal/calendar"
)

var (
	gridSelected int
	gridToday    bool
)

var gridCmd = &cobra.Command{
	Use:   "grid [year] [month]",
	Short: "Print a month grid as the wizard lays it out",
	Long: `Print the six week calendar grid for a month. Month is 1-12.
Days outside the month are shown in parentheses, the selected day
in brackets and today with an asterisk.

Examples:
  bookingsetup grid 2024 11 --selected 15
  bookingsetup grid --today`,
	Args: cobra.MaximumNArgs(2),
	RunE: runGrid,
}

func init() {
	gridCmd.Flags().IntVar(&gridSelected, "selected", 0, "Selected day of month (0 = none)")
	gridCmd.Flags().BoolVar(&gridToday, "today", false, "Mark today when it falls in the month")
	rootCmd.AddCommand(gridCmd)
}

func runGrid(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if len(args) == 2 {
		var err error
		if year, err = strconv.Atoi(args[0]); err != nil || year < 1 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		if month, err = strconv.Atoi(args[1]); err != nil || month < 1 || month > 12 {
			return fmt.Errorf("invalid month %q: want 1-12", args[1])
		}
	} else if len(args) == 1 {
		return fmt.Errorf("give both year and month, or neither")
	}

	month0 := month - 1
	if gridSelected < 0 || gridSelected > calendar.DaysInMonth(year, month0) {
		return fmt.Errorf("selected day %d is not in %s %d", gridSelected, calendar.MonthName(month0), year)
	}

	today := 0
	if gridToday && now.Year() == year && int(now.Month()) == month {
		today = now.Day()
	}

	printGrid(cmd.OutOrStdout(), year, month0, gridSelected, today)
	return nil
}

func printGrid(w io.Writer, year, month0, selected, today int) {
	fmt.Fprintf(w, "%s %d\n", calendar.MonthName(month0), year)
	for _, h := range calendar.WeekdayHeaders {
		fmt.Fprintf(w, "%5s", h)
	}
	fmt.Fprintln(w)

	for _, week := range calendar.Weeks(calendar.BuildGrid(year, month0, selected, today)) {
		var b strings.Builder
		for _, c := range week {
			b.WriteString(fmt.Sprintf("%5s", formatCell(c)))
		}
		fmt.Fprintln(w, b.String())
	}
}

func formatCell(c calendar.DayCell) string {
	s := strconv.Itoa(c.Day)
	switch {
	case !c.InCurrentMonth:
		s = "(" + s + ")"
	case c.IsSelected:
		s = "[" + s + "]"
	}
	if c.IsToday {
		s += "*"
	}
	return s
}
