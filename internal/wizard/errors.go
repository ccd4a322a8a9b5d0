/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package wizard

import (
	"errors"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
)

// ErrorCodeInvalidAction is reported for rejections that match no known sentinel.
const ErrorCodeInvalidAction = "invalid_action"

var errorCodes = []struct {
	err  error
	code string
}{
	{hours.ErrInvalidTimeRange, "invalid_time_range"},
	{hours.ErrNotEditing, "not_editing"},
	{hours.ErrUnknownTime, "unknown_time"},
	{hours.ErrUnknownWeekday, "unknown_weekday"},
	{booking.ErrUnknownServiceType, "unknown_service_type"},
	{booking.ErrEmptyBlackout, "empty_blackout"},
	{navigation.ErrUnknownMenuItem, "unknown_menu_item"},
	{ErrUnknownAction, "unknown_action"},
	{ErrInvalidCalendarDay, "invalid_calendar_day"},
	{ErrUnknownDirection, "unknown_direction"},
}

// ErrorCode returns the stable code for a rejected action.
func ErrorCode(err error) string {
	for _, c := range errorCodes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ErrorCodeInvalidAction
}
