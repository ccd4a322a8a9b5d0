package navigation

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewStateOpensParentGroup(t *testing.T) {
	s := NewState(DefaultSelection)
	if !s.IsSelected("sell-bookings") {
		t.Fatalf("selected = %q", s.Selected)
	}
	if !s.IsOpen("sell") {
		t.Fatal("sell group should start open")
	}

	top := NewState("home")
	if top.IsOpen("sell") {
		t.Fatal("top-level selection should not open sell")
	}
}

func TestToggleGroup(t *testing.T) {
	s := NewState(DefaultSelection)
	s.ToggleGroup("sell")
	if s.IsOpen("sell") {
		t.Fatal("sell should be collapsed")
	}
	if !s.IsSelected("sell-bookings") {
		t.Fatal("collapsing must not change the selection")
	}
	s.ToggleGroup("sell")
	if !s.IsOpen("sell") {
		t.Fatal("sell should be open again")
	}

	s.ToggleGroup("home")
	if s.IsOpen("home") {
		t.Fatal("home is not a group")
	}
}

func TestSelectChildReopensGroup(t *testing.T) {
	s := NewState("home")
	if err := s.Select("sell-bundles"); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if !s.IsOpen("sell") || !s.IsSelected("sell-bundles") {
		t.Fatalf("state = %+v", s)
	}
}

func TestSelectUnknown(t *testing.T) {
	s := NewState(DefaultSelection)
	if err := s.Select("inventory"); !errors.Is(err, ErrUnknownMenuItem) {
		t.Fatalf("error = %v, want ErrUnknownMenuItem", err)
	}
	if !s.IsSelected(DefaultSelection) {
		t.Fatal("failed select changed the selection")
	}
}

func TestFooterItemsSelectable(t *testing.T) {
	s := NewState(DefaultSelection)
	if err := s.Select("settings"); err != nil {
		t.Fatalf("Select(settings): %v", err)
	}
}

func TestStateJSON(t *testing.T) {
	s := NewState(DefaultSelection)
	data, err := json.Marshal(s)
	if err != nil {
		t.Fatal(err)
	}
	var back State
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !back.IsOpen("sell") || back.Selected != DefaultSelection {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestMenuShape(t *testing.T) {
	m := Menu()
	if len(m) != 5 || m[1].ID != "sell" || len(m[1].Children) != 7 {
		t.Fatalf("unexpected menu: %+v", m)
	}
	if p, ok := Parent("sell-custom-offers"); !ok || p != "sell" {
		t.Fatalf("Parent = %q, %v", p, ok)
	}
	if len(Footer()) != 2 {
		t.Fatalf("footer = %+v", Footer())
	}
}
