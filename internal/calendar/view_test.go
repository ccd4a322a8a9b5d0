package calendar

import (
	"testing"
	"time"
)

func TestAdvanceWrapsYear(t *testing.T) {
	tests := []struct {
		name      string
		start     View
		dir       Direction
		wantYear  int
		wantMonth int
	}{
		{name: "december forward", start: View{Year: 2024, Month: 11}, dir: Forward, wantYear: 2025, wantMonth: 0},
		{name: "january backward", start: View{Year: 2025, Month: 0}, dir: Backward, wantYear: 2024, wantMonth: 11},
		{name: "mid-year forward", start: View{Year: 2024, Month: 5}, dir: Forward, wantYear: 2024, wantMonth: 6},
		{name: "mid-year backward", start: View{Year: 2024, Month: 5}, dir: Backward, wantYear: 2024, wantMonth: 4},
		{name: "unknown direction", start: View{Year: 2024, Month: 5}, dir: Direction("sideways"), wantYear: 2024, wantMonth: 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.start
			v.SelectedDay = 17
			v.Advance(tc.dir)
			if v.Year != tc.wantYear || v.Month != tc.wantMonth {
				t.Fatalf("got %d/%d, want %d/%d", v.Year, v.Month, tc.wantYear, tc.wantMonth)
			}
			if v.SelectedDay != 17 {
				t.Fatalf("selected day changed to %d", v.SelectedDay)
			}
		})
	}
}

func TestAdvanceTwelveTimesReturnsToStart(t *testing.T) {
	for month := 0; month < 12; month++ {
		v := View{Year: 2024, Month: month}
		for i := 0; i < 12; i++ {
			v.Advance(Forward)
		}
		if v.Month != month || v.Year != 2025 {
			t.Fatalf("forward x12 from %d: got %d/%d", month, v.Year, v.Month)
		}
		for i := 0; i < 12; i++ {
			v.Advance(Backward)
		}
		if v.Month != month || v.Year != 2024 {
			t.Fatalf("backward x12 from %d: got %d/%d", month, v.Year, v.Month)
		}
	}
}

func TestPickDayIgnoresOutOfMonthCells(t *testing.T) {
	v := View{Year: 2024, Month: 10, SelectedDay: 24}
	for _, cell := range v.Grid() {
		if cell.InCurrentMonth {
			continue
		}
		v.PickDay(cell)
		if v.SelectedDay != 24 {
			t.Fatalf("PickDay(%+v) changed selection to %d", cell, v.SelectedDay)
		}
	}

	cell, ok := v.Cell(3)
	if !ok {
		t.Fatal("expected November 3 to exist")
	}
	v.PickDay(cell)
	if v.SelectedDay != 3 {
		t.Fatalf("selected day = %d, want 3", v.SelectedDay)
	}
}

func TestCellRejectsDaysOutsideMonth(t *testing.T) {
	v := View{Year: 2023, Month: 1}
	if _, ok := v.Cell(29); ok {
		t.Fatal("February 2023 has no 29th")
	}
	if _, ok := v.Cell(0); ok {
		t.Fatal("day 0 should not exist")
	}
}

func TestNewViewNormalisesMonth(t *testing.T) {
	tests := []struct {
		month     int
		wantYear  int
		wantMonth int
	}{
		{month: 12, wantYear: 2025, wantMonth: 0},
		{month: -1, wantYear: 2023, wantMonth: 11},
		{month: -13, wantYear: 2022, wantMonth: 11},
		{month: 10, wantYear: 2024, wantMonth: 10},
	}
	for _, tc := range tests {
		v := NewView(2024, tc.month, 1)
		if v.Year != tc.wantYear || v.Month != tc.wantMonth {
			t.Fatalf("NewView(2024, %d) = %d/%d, want %d/%d", tc.month, v.Year, v.Month, tc.wantYear, tc.wantMonth)
		}
	}
}

func TestSyncTodayOnlyInDisplayedMonth(t *testing.T) {
	v := View{Year: 2024, Month: 10}
	v.SyncToday(time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC))
	if v.TodayDay != 15 {
		t.Fatalf("today = %d, want 15", v.TodayDay)
	}
	v.Advance(Forward)
	v.SyncToday(time.Date(2024, time.November, 15, 9, 0, 0, 0, time.UTC))
	if v.TodayDay != 0 {
		t.Fatalf("today = %d, want 0 outside the current month", v.TodayDay)
	}
}

func TestTitleAndSelectedLabel(t *testing.T) {
	v := View{Year: 2024, Month: 10, SelectedDay: 24}
	if got := v.Title(); got != "November 2024" {
		t.Fatalf("Title() = %q", got)
	}
	if got := v.SelectedLabel(); got != "November 24" {
		t.Fatalf("SelectedLabel() = %q", got)
	}
}

func TestSelectedLabelEmptyWhenDayMissingFromMonth(t *testing.T) {
	v := NewView(2025, 0, 31)
	v.Advance(Forward)

	if got := v.Title(); got != "February 2025" {
		t.Fatalf("Title() = %q", got)
	}
	if v.SelectedDay != 31 {
		t.Fatalf("SelectedDay = %d, want the selection kept", v.SelectedDay)
	}
	if got := v.SelectedLabel(); got != "" {
		t.Fatalf("SelectedLabel() = %q, want empty", got)
	}

	v.Advance(Forward)
	if got := v.SelectedLabel(); got != "March 31" {
		t.Fatalf("SelectedLabel() after March = %q", got)
	}
}
