package hours

import (
	"encoding/json"
	"errors"
	"testing"
)

func idleEditor(t *testing.T) *Editor {
	t.Helper()
	e := &Editor{week: DefaultWeek()}
	if e.Editing() {
		t.Fatal("expected idle editor")
	}
	return e
}

func TestNewEditorFocusesMondayWhenOpen(t *testing.T) {
	e := NewEditor(DefaultWeek())
	day, ok := e.Focus()
	if !ok || day != Monday {
		t.Fatalf("focus = %v,%v, want Monday", day, ok)
	}

	closed := DefaultWeek()
	closed[Monday].Enabled = false
	if NewEditor(closed).Editing() {
		t.Fatal("expected idle editor when Monday is closed")
	}
}

func TestFocusDayLoadsStoredHours(t *testing.T) {
	e := idleEditor(t)
	e.FocusDay(Monday)

	start, end := e.Draft()
	if start.String() != "9:00 AM" || end.String() != "7:00 PM" {
		t.Fatalf("draft = %s - %s, want 9:00 AM - 7:00 PM", start, end)
	}
}

func TestFocusDayIgnoresClosedDay(t *testing.T) {
	e := NewEditor(DefaultWeek())
	if err := e.SetDraftStart(MustParse("10:00 AM")); err != nil {
		t.Fatalf("SetDraftStart: %v", err)
	}
	before, _ := json.Marshal(e)

	e.FocusDay(Sunday)

	after, _ := json.Marshal(e)
	if string(before) != string(after) {
		t.Fatalf("state changed focusing a closed day:\nbefore %s\nafter  %s", before, after)
	}
}

func TestCommitUpdatesOnlyFocusedDay(t *testing.T) {
	e := idleEditor(t)
	e.FocusDay(Wednesday)
	if err := e.SetDraftStart(MustParse("10:00 AM")); err != nil {
		t.Fatalf("SetDraftStart: %v", err)
	}
	if err := e.SetDraftEnd(MustParse("6:00 PM")); err != nil {
		t.Fatalf("SetDraftEnd: %v", err)
	}
	if err := e.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	got := e.Day(Wednesday)
	if got.Start.String() != "10:00 AM" || got.End.String() != "6:00 PM" {
		t.Fatalf("Wednesday = %s", got.Summary())
	}
	defaults := DefaultWeek()
	for _, d := range Weekdays() {
		if d == Wednesday {
			continue
		}
		if e.Day(d) != defaults[d] {
			t.Fatalf("%s changed to %+v", d, e.Day(d))
		}
	}
	if day, ok := e.Focus(); !ok || day != Wednesday {
		t.Fatal("commit should keep focus")
	}
}

func TestCommitRejectsInvertedRange(t *testing.T) {
	e := NewEditor(DefaultWeek())
	if err := e.SetDraftStart(MustParse("8:00 PM")); err != nil {
		t.Fatalf("SetDraftStart: %v", err)
	}
	err := e.Commit()
	if !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("Commit() error = %v, want ErrInvalidTimeRange", err)
	}
	if e.Day(Monday) != DefaultWeek()[Monday] {
		t.Fatal("rejected commit must not change stored hours")
	}

	if err := e.SetDraftEnd(MustParse("8:00 PM")); err != nil {
		t.Fatalf("SetDraftEnd: %v", err)
	}
	if err := e.Commit(); !errors.Is(err, ErrInvalidTimeRange) {
		t.Fatalf("equal start and end should be rejected, got %v", err)
	}
}

func TestDiscardRestoresStoredNotOriginalHours(t *testing.T) {
	e := NewEditor(DefaultWeek())
	if err := e.SetDraftStart(MustParse("10:00 AM")); err != nil {
		t.Fatal(err)
	}
	if err := e.Commit(); err != nil {
		t.Fatal(err)
	}
	if err := e.SetDraftStart(MustParse("11:30 AM")); err != nil {
		t.Fatal(err)
	}
	if err := e.SetDraftEnd(MustParse("3:00 PM")); err != nil {
		t.Fatal(err)
	}

	if err := e.Discard(); err != nil {
		t.Fatalf("Discard: %v", err)
	}
	start, end := e.Draft()
	if start.String() != "10:00 AM" || end.String() != "7:00 PM" {
		t.Fatalf("draft after discard = %s - %s, want 10:00 AM - 7:00 PM", start, end)
	}
}

func TestDiscardScenarioMonday(t *testing.T) {
	e := idleEditor(t)
	e.FocusDay(Monday)
	if err := e.SetDraftStart(MustParse("10:00 AM")); err != nil {
		t.Fatal(err)
	}
	if err := e.Discard(); err != nil {
		t.Fatal(err)
	}
	start, end := e.Draft()
	if start.String() != "9:00 AM" || end.String() != "7:00 PM" {
		t.Fatalf("draft = %s - %s", start, end)
	}
	if e.Day(Monday) != DefaultWeek()[Monday] {
		t.Fatal("discard must not touch stored hours")
	}
}

func TestToggleEnabledKeepsStoredTimes(t *testing.T) {
	e := idleEditor(t)
	if e.Day(Sunday).Enabled {
		t.Fatal("Sunday should start closed")
	}
	e.ToggleEnabled(Sunday)
	if !e.Day(Sunday).Enabled {
		t.Fatal("Sunday should be open after first toggle")
	}
	e.ToggleEnabled(Sunday)
	if e.Day(Sunday).Enabled {
		t.Fatal("Sunday should be closed after second toggle")
	}
	if got := e.Day(Sunday); got.Start != defaultOpen || got.End != defaultClose {
		t.Fatalf("Sunday hours changed: %+v", got)
	}
}

func TestToggleEnabledClosingFocusedDayDropsFocus(t *testing.T) {
	e := NewEditor(DefaultWeek())
	e.ToggleEnabled(Monday)
	if e.Editing() {
		t.Fatal("closing the focused day should return the editor to idle")
	}

	e.FocusDay(Tuesday)
	e.ToggleEnabled(Friday)
	if day, ok := e.Focus(); !ok || day != Tuesday {
		t.Fatal("closing another day must keep focus")
	}
}

func TestDraftOperationsRequireFocus(t *testing.T) {
	e := idleEditor(t)
	checks := map[string]error{
		"SetDraftStart": e.SetDraftStart(At(10, 0)),
		"SetDraftEnd":   e.SetDraftEnd(At(18, 0)),
		"Commit":        e.Commit(),
		"Discard":       e.Discard(),
	}
	for name, err := range checks {
		if !errors.Is(err, ErrNotEditing) {
			t.Fatalf("%s() error = %v, want ErrNotEditing", name, err)
		}
	}
}

func TestSetDraftRejectsOutOfRangeSlot(t *testing.T) {
	e := NewEditor(DefaultWeek())
	if err := e.SetDraftStart(TimeOfDay(SlotCount)); !errors.Is(err, ErrUnknownTime) {
		t.Fatalf("error = %v, want ErrUnknownTime", err)
	}
}

func TestEditorJSONRoundTripKeepsFocusAndDraft(t *testing.T) {
	e := NewEditor(DefaultWeek())
	if err := e.SetDraftEnd(MustParse("5:30 PM")); err != nil {
		t.Fatal(err)
	}
	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var restored Editor
	if err := json.Unmarshal(data, &restored); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if day, ok := restored.Focus(); !ok || day != Monday {
		t.Fatal("focus lost")
	}
	if _, end := restored.Draft(); end.String() != "5:30 PM" {
		t.Fatalf("draft end = %s", end)
	}
	if restored.Week() != e.Week() {
		t.Fatal("week mismatch")
	}
}

func TestSummary(t *testing.T) {
	w := DefaultWeek()
	if got := w[Monday].Summary(); got != "9:00 AM - 7:00 PM" {
		t.Fatalf("Monday summary = %q", got)
	}
	if got := w[Sunday].Summary(); got != "Closed" {
		t.Fatalf("Sunday summary = %q", got)
	}
}
