package wizard

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/friendsincode/bookingsetup/internal/booking"
	"github.com/friendsincode/bookingsetup/internal/hours"
	"github.com/friendsincode/bookingsetup/internal/navigation"
)

var nov15 = time.Date(2024, time.November, 15, 10, 0, 0, 0, time.UTC)

func newTestWizard(t *testing.T) *Wizard {
	t.Helper()
	return New(BuiltinDefaults(), nov15)
}

func apply(t *testing.T, w *Wizard, a Action) {
	t.Helper()
	if err := w.Apply(a); err != nil {
		t.Fatalf("Apply(%+v): %v", a, err)
	}
}

func TestNewMatchesInitialScreen(t *testing.T) {
	w := newTestWizard(t)
	s := w.Snapshot()

	if s.ServiceType != booking.ServiceHairSalon || s.Step != 1 || s.TotalSteps != 3 {
		t.Fatalf("header state = %+v", s)
	}
	if s.Editing == nil || s.Editing.Weekday != "Monday" {
		t.Fatalf("expected Monday in edit, got %+v", s.Editing)
	}
	if s.Editing.DraftStart != "9:00 AM" || s.Editing.DraftEnd != "7:00 PM" {
		t.Fatalf("draft = %+v", s.Editing)
	}
	if s.Calendar.Title != "November 2024" || s.Calendar.SelectedLabel != "November 24" {
		t.Fatalf("calendar = %q / %q", s.Calendar.Title, s.Calendar.SelectedLabel)
	}
	if len(s.Blackouts) != 2 {
		t.Fatalf("blackouts = %+v", s.Blackouts)
	}
	if s.Partial.Enabled || s.Partial.Window != "11:00 AM - 1:00 PM" || s.Partial.DurationLabel != "2h" {
		t.Fatalf("partial = %+v", s.Partial)
	}
	if s.Nav.Selected != navigation.DefaultSelection || !s.Nav.Open["sell"] {
		t.Fatalf("nav = %+v", s.Nav)
	}
	if s.Days[hours.Sunday].Summary != "Closed" || s.Days[hours.Monday].Summary != "9:00 AM - 7:00 PM" {
		t.Fatalf("days = %+v", s.Days)
	}
}

func TestTodayOnlyMarkedInItsMonth(t *testing.T) {
	w := newTestWizard(t)
	if w.Calendar.TodayDay != 15 {
		t.Fatalf("TodayDay = %d, want 15", w.Calendar.TodayDay)
	}
	apply(t, w, Action{Type: ActionAdvanceMonth, Direction: "forward"})
	if w.Calendar.TodayDay != 0 {
		t.Fatalf("TodayDay after advance = %d, want 0", w.Calendar.TodayDay)
	}
	apply(t, w, Action{Type: ActionAdvanceMonth, Direction: "backward"})
	if w.Calendar.TodayDay != 15 {
		t.Fatalf("TodayDay after return = %d, want 15", w.Calendar.TodayDay)
	}
}

func TestEditHoursFlow(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionFocusDay, Weekday: "Tuesday"})
	apply(t, w, Action{Type: ActionSetDraftStart, Time: "10:00 AM"})
	apply(t, w, Action{Type: ActionSetDraftEnd, Time: "6:00 PM"})
	apply(t, w, Action{Type: ActionCommitHours})

	s := w.Snapshot()
	if s.Days[hours.Tuesday].Summary != "10:00 AM - 6:00 PM" {
		t.Fatalf("tuesday = %q", s.Days[hours.Tuesday].Summary)
	}
	if !s.Days[hours.Tuesday].Selected {
		t.Fatal("tuesday should stay selected after commit")
	}
}

func TestInvalidCommitReportsError(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionSetDraftStart, Time: "8:00 PM"})
	err := w.Apply(Action{Type: ActionCommitHours})
	if !errors.Is(err, hours.ErrInvalidTimeRange) {
		t.Fatalf("error = %v, want ErrInvalidTimeRange", err)
	}
	if got := w.Hours.Day(hours.Monday).Summary(); got != "9:00 AM - 7:00 PM" {
		t.Fatalf("monday changed to %q", got)
	}
}

func TestClosingFocusedDayEndsEditing(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionToggleDay, Weekday: "Monday"})
	if w.Snapshot().Editing != nil {
		t.Fatal("editing should end when the focused day closes")
	}
	if err := w.Apply(Action{Type: ActionCommitHours}); !errors.Is(err, hours.ErrNotEditing) {
		t.Fatalf("error = %v, want ErrNotEditing", err)
	}
}

func TestPickDay(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionPickDay, Day: 5})
	if w.Calendar.SelectedDay != 5 {
		t.Fatalf("SelectedDay = %d", w.Calendar.SelectedDay)
	}

	apply(t, w, Action{Type: ActionPickDay, Day: 28, OutsideMonth: true})
	if w.Calendar.SelectedDay != 5 {
		t.Fatalf("out-of-month pick changed SelectedDay to %d", w.Calendar.SelectedDay)
	}

	if err := w.Apply(Action{Type: ActionPickDay, Day: 31}); !errors.Is(err, ErrInvalidCalendarDay) {
		t.Fatalf("November 31 error = %v", err)
	}
}

func TestBlackoutActions(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionAddBlackout, Label: "Dec 25, 2024"})
	apply(t, w, Action{Type: ActionRemoveBlackout, Index: 0})
	apply(t, w, Action{Type: ActionRemoveBlackout, Index: 10})

	s := w.Snapshot()
	if len(s.Blackouts) != 2 || s.Blackouts[1].Label != "Dec 25, 2024" {
		t.Fatalf("blackouts = %+v", s.Blackouts)
	}
}

func TestPartialActions(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionTogglePartial})
	apply(t, w, Action{Type: ActionSetPartialEnd, Time: "5:00 PM"})
	if err := w.Apply(Action{Type: ActionSetPartialStart, Time: "4:00 PM"}); !errors.Is(err, hours.ErrUnknownTime) {
		t.Fatalf("error = %v, want ErrUnknownTime", err)
	}

	s := w.Snapshot()
	if !s.Partial.Enabled || s.Partial.DurationLabel != "6h" {
		t.Fatalf("partial = %+v", s.Partial)
	}
}

func TestStepIsClamped(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionPreviousStep})
	if w.Step != 1 {
		t.Fatalf("step = %d", w.Step)
	}
	for i := 0; i < 5; i++ {
		apply(t, w, Action{Type: ActionNextStep})
	}
	if w.Step != TotalSteps {
		t.Fatalf("step = %d, want %d", w.Step, TotalSteps)
	}
}

func TestUnknownActionAndBadInput(t *testing.T) {
	w := newTestWizard(t)
	tests := []struct {
		name   string
		action Action
		want   error
	}{
		{"unknown type", Action{Type: "launch_rocket"}, ErrUnknownAction},
		{"bad service", Action{Type: ActionSetServiceType, Value: "bakery"}, booking.ErrUnknownServiceType},
		{"bad weekday", Action{Type: ActionToggleDay, Weekday: "Caturday"}, hours.ErrUnknownWeekday},
		{"bad time", Action{Type: ActionSetDraftStart, Time: "9:17 AM"}, hours.ErrUnknownTime},
		{"bad direction", Action{Type: ActionAdvanceMonth, Direction: "sideways"}, ErrUnknownDirection},
		{"bad nav", Action{Type: ActionSelectNavItem, Value: "nowhere"}, navigation.ErrUnknownMenuItem},
		{"empty blackout", Action{Type: ActionAddBlackout}, booking.ErrEmptyBlackout},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before, _ := json.Marshal(w.Snapshot())
			if err := w.Apply(tc.action); !errors.Is(err, tc.want) {
				t.Fatalf("error = %v, want %v", err, tc.want)
			}
			after, _ := json.Marshal(w.Snapshot())
			if string(before) != string(after) {
				t.Fatal("failed action changed the wizard")
			}
		})
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	w := newTestWizard(t)
	s := w.Snapshot()
	apply(t, w, Action{Type: ActionRemoveBlackout, Index: 0})
	apply(t, w, Action{Type: ActionToggleNavGroup, Value: "sell"})
	if len(s.Blackouts) != 2 || !s.Nav.Open["sell"] {
		t.Fatalf("snapshot changed after Apply: %+v", s)
	}
}

func TestWizardJSONRoundTrip(t *testing.T) {
	w := newTestWizard(t)
	apply(t, w, Action{Type: ActionFocusDay, Weekday: "Friday"})
	apply(t, w, Action{Type: ActionSetDraftEnd, Time: "9:00 PM"})
	apply(t, w, Action{Type: ActionNextStep})

	data, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Wizard
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	back.Touch(nov15)

	a, _ := json.Marshal(w.Snapshot())
	b, _ := json.Marshal(back.Snapshot())
	if string(a) != string(b) {
		t.Fatalf("snapshots differ:\n%s\n%s", a, b)
	}
}

func TestActionTypesAllHandled(t *testing.T) {
	for _, at := range ActionTypes() {
		w := newTestWizard(t)
		err := w.Apply(Action{Type: at})
		if errors.Is(err, ErrUnknownAction) {
			t.Fatalf("%s not dispatched", at)
		}
	}
}

func TestErrorCode(t *testing.T) {
	w := newTestWizard(t)
	tests := []struct {
		action Action
		want   string
	}{
		{Action{Type: "bogus"}, "unknown_action"},
		{Action{Type: ActionSetDraftStart, Time: "25:00"}, "unknown_time"},
		{Action{Type: ActionToggleDay, Weekday: "Funday"}, "unknown_weekday"},
		{Action{Type: ActionSetServiceType, Value: "spa"}, "unknown_service_type"},
		{Action{Type: ActionAddBlackout}, "empty_blackout"},
		{Action{Type: ActionSelectNavItem, Value: "nowhere"}, "unknown_menu_item"},
		{Action{Type: ActionPickDay, Day: 31}, "invalid_calendar_day"},
		{Action{Type: ActionAdvanceMonth, Direction: "sideways"}, "unknown_direction"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := ErrorCode(w.Apply(tt.action)); got != tt.want {
				t.Fatalf("ErrorCode = %q, want %q", got, tt.want)
			}
		})
	}

	if got := ErrorCode(errors.New("boom")); got != ErrorCodeInvalidAction {
		t.Fatalf("fallback code = %q", got)
	}
}
