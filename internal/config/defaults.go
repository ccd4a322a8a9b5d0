/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/calendar"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
	"github.com/friendsincode/bookingsetup/internal/wizard"
)

// defaultsFile is the on-disk layout of BOOKINGS_DEFAULTS_FILE. Every key is
// optional; missing keys keep the built-in value.
type defaultsFile struct {
	ServiceType   string                       `yaml:"service_type"`
	BusinessHours map[string]dayOverride       `yaml:"business_hours"`
	Blackouts     []booking.BlackoutEntry      `yaml:"blackouts"`
	Partial       *booking.PartialAvailability `yaml:"partial"`
	Calendar      *struct {
		Year        int `yaml:"year"`
		Month       int `yaml:"month"` // 1=January
		SelectedDay int `yaml:"selected_day"`
	} `yaml:"calendar"`
	NavSelection string `yaml:"nav_selection"`
}

type dayOverride struct {
	Enabled *bool            `yaml:"enabled"`
	Start   *hours.TimeOfDay `yaml:"start"`
	End     *hours.TimeOfDay `yaml:"end"`
}

// LoadDefaults reads wizard defaults from path. An empty path or a missing
// file yields the built-in defaults.
func LoadDefaults(path string) (wizard.Defaults, error) {
	d := wizard.BuiltinDefaults()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return d, fmt.Errorf("read defaults file: %w", err)
	}
	return ParseDefaults(data)
}

// ParseDefaults overlays a YAML document on the built-in defaults.
func ParseDefaults(data []byte) (wizard.Defaults, error) {
	d := wizard.BuiltinDefaults()

	partial := d.Partial
	file := defaultsFile{Partial: &partial}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return d, fmt.Errorf("parse defaults file: %w", err)
	}

	if file.ServiceType != "" {
		st, err := booking.ParseServiceType(file.ServiceType)
		if err != nil {
			return d, err
		}
		d.ServiceType = st
	}

	for name, o := range file.BusinessHours {
		day, err := hours.ParseWeekday(name)
		if err != nil {
			return d, err
		}
		dh := d.Week[day]
		if o.Enabled != nil {
			dh.Enabled = *o.Enabled
		}
		if o.Start != nil {
			dh.Start = *o.Start
		}
		if o.End != nil {
			dh.End = *o.End
		}
		if err := hours.ValidateRange(dh.Start, dh.End); err != nil {
			return d, fmt.Errorf("business_hours.%s: %w", name, err)
		}
		d.Week[day] = dh
	}

	if file.Blackouts != nil {
		var list booking.Blackouts
		for _, entry := range file.Blackouts {
			if err := list.Append(entry); err != nil {
				return d, fmt.Errorf("blackouts: %w", err)
			}
		}
		d.Blackouts = list
	}

	if file.Partial != nil {
		if err := file.Partial.Validate(); err != nil {
			return d, fmt.Errorf("partial: %w", err)
		}
		d.Partial = *file.Partial
	}

	if c := file.Calendar; c != nil {
		if c.Month < 1 || c.Month > 12 {
			return d, fmt.Errorf("calendar.month must be between 1 and 12, got %d", c.Month)
		}
		if c.SelectedDay < 0 || c.SelectedDay > calendar.DaysInMonth(c.Year, c.Month-1) {
			return d, fmt.Errorf("calendar.selected_day %d is not in %s %d", c.SelectedDay, calendar.MonthName(c.Month-1), c.Year)
		}
		d.Calendar = calendar.NewView(c.Year, c.Month-1, c.SelectedDay)
	}

	if file.NavSelection != "" {
		var nav navigation.State
		if err := nav.Select(file.NavSelection); err != nil {
			return d, err
		}
		d.NavSelection = file.NavSelection
	}

	return d, nil
}
