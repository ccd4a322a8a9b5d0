/*
Copyright (C) 2026 Friends Incode

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package navigation describes the dashboard sidebar and tracks which group
// is expanded and which item is selected.
package navigation

import (
	"errors"
	"fmt"
)

// ErrUnknownMenuItem is returned when selecting an id that is not in the menu.
var ErrUnknownMenuItem = errors.New("unknown menu item")

// DefaultSelection is the item highlighted on the bookings setup page.
const DefaultSelection = "sell-bookings"

// Item is one sidebar entry.
type Item struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Icon        string `json:"icon"`
	HasCollapse bool   `json:"has_collapse,omitempty"`
	Children    []Item `json:"children,omitempty"`
}

// IsGroup reports whether the item expands to show children.
func (i Item) IsGroup() bool {
	return len(i.Children) > 0
}

func icon(name string) string {
	return "/static/icons/" + name + ".svg"
}

var menu = []Item{
	{ID: "home", Label: "Home", Icon: icon("home")},
	{
		ID: "sell", Label: "Sell", Icon: icon("sell"), HasCollapse: true,
		Children: []Item{
			{ID: "sell-products", Label: "Products", Icon: icon("products")},
			{ID: "sell-experiences", Label: "Experiences", Icon: icon("experiences")},
			{ID: "sell-services", Label: "Services", Icon: icon("services")},
			{ID: "sell-bookings", Label: "Bookings", Icon: icon("bookings")},
			{ID: "sell-memberships", Label: "Memberships", Icon: icon("memberships")},
			{ID: "sell-bundles", Label: "Bundles", Icon: icon("bundles")},
			{ID: "sell-custom-offers", Label: "Custom offers", Icon: icon("custom-offers")},
		},
	},
	{ID: "customers", Label: "Customers", Icon: icon("customers"), HasCollapse: true},
	{ID: "payouts", Label: "Payouts", Icon: icon("payouts"), HasCollapse: true},
	{ID: "analytics", Label: "Analytics", Icon: icon("analytics")},
}

var footer = []Item{
	{ID: "settings", Label: "Settings", Icon: icon("settings")},
	{ID: "sign-out", Label: "Sign out", Icon: icon("signout")},
}

// parents maps every selectable id to its group id ("" for top level).
var parents = func() map[string]string {
	m := make(map[string]string)
	for _, it := range menu {
		m[it.ID] = ""
		for _, child := range it.Children {
			m[child.ID] = it.ID
		}
	}
	for _, it := range footer {
		m[it.ID] = ""
	}
	return m
}()

// Menu returns the main sidebar entries in display order.
func Menu() []Item {
	return menu
}

// Footer returns the entries pinned to the bottom of the sidebar.
func Footer() []Item {
	return footer
}

// Parent returns the group an item belongs to.
func Parent(id string) (string, bool) {
	p, ok := parents[id]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// State is the expanded groups plus the current selection.
type State struct {
	Open     map[string]bool `json:"open"`
	Selected string          `json:"selected"`
}

// NewState selects initial and opens its group when it has one. An unknown id
// leaves nothing selected.
func NewState(initial string) State {
	s := State{Open: make(map[string]bool)}
	_ = s.Select(initial)
	return s
}

// ToggleGroup expands or collapses a group. Ids that are not groups are ignored.
func (s *State) ToggleGroup(id string) {
	if !isGroup(id) {
		return
	}
	if s.Open == nil {
		s.Open = make(map[string]bool)
	}
	s.Open[id] = !s.Open[id]
}

// Select highlights id. Selecting a child keeps its group open.
func (s *State) Select(id string) error {
	if _, ok := parents[id]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownMenuItem, id)
	}
	s.Selected = id
	if parent, ok := Parent(id); ok {
		if s.Open == nil {
			s.Open = make(map[string]bool)
		}
		s.Open[parent] = true
	}
	return nil
}

// IsSelected reports whether id is the current selection.
func (s State) IsSelected(id string) bool {
	return s.Selected == id
}

// IsOpen reports whether group id is expanded.
func (s State) IsOpen(id string) bool {
	return s.Open[id]
}

func isGroup(id string) bool {
	for _, it := range menu {
		if it.ID == id {
			return it.IsGroup()
		}
	}
	return false
}
