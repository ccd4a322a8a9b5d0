/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/friendsincode/bookingsetup/internal/config"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

var defaultsCmd = &cobra.Command{
	Use:   "defaults [file]",
	Short: "Validate a wizard defaults file and print the effective defaults",
	Long: `Load a YAML defaults file the same way the server does and print the
values a new setup session starts from. Without a file the built-in
defaults are printed.

Examples:
  bookingsetup defaults
  bookingsetup defaults /etc/bookingsetup/defaults.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDefaults,
}

func init() {
	rootCmd.AddCommand(defaultsCmd)
}

func runDefaults(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	d, err := config.LoadDefaults(path)
	if err != nil {
		return err
	}
	printDefaults(cmd.OutOrStdout(), d)
	return nil
}

func printDefaults(w io.Writer, d wizard.Defaults) {
	fmt.Fprintf(w, "Service type: %s\n", d.ServiceType.Label())

	fmt.Fprintln(w, "Business hours:")
	for _, day := range hours.Weekdays() {
		fmt.Fprintf(w, "  %-9s %s\n", day, d.Week[day].Summary())
	}

	fmt.Fprintln(w, "Blackout dates:")
	if len(d.Blackouts) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, b := range d.Blackouts {
		fmt.Fprintf(w, "  %s\n", b.Label)
	}

	state := "off"
	if d.Partial.Enabled {
		state = "on"
	}
	fmt.Fprintf(w, "Partial availability: %s, %s - %s\n", state, d.Partial.Start, d.Partial.End)
	fmt.Fprintf(w, "Calendar: %s\n", d.Calendar.Title())
	if d.NavSelection != "" {
		fmt.Fprintf(w, "Menu selection: %s\n", d.NavSelection)
	}
}
