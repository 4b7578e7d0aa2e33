package ui

import "github.com/nrjt/eduplatform/internal/types"

// TabItem is one selectable entry
type TabItem struct {
	Key   string
	Label string
}

// Tab is the display model of one button
type Tab struct {
	Key    string
	Label  string
	Active bool
}

// Tabs is a controlled list of mutually exclusive buttons. It keeps no state:
// the active key and the selection callback come from the owner.
type Tabs struct {
	Items    []TabItem
	Active   string
	OnSelect func(key string)
}

// StandardTabs builds the standard selector from catalog entries
func StandardTabs(standards []types.StandardDescriptor, active string, onSelect func(string)) Tabs {
	items := make([]TabItem, 0, len(standards))
	for _, std := range standards {
		items = append(items, TabItem{Key: std.ID, Label: std.Label})
	}
	return Tabs{Items: items, Active: active, OnSelect: onSelect}
}

// BoardTabs builds the board selector; boards are their own labels
func BoardTabs(boards []string, active string, onSelect func(string)) Tabs {
	items := make([]TabItem, 0, len(boards))
	for _, board := range boards {
		items = append(items, TabItem{Key: board, Label: board})
	}
	return Tabs{Items: items, Active: active, OnSelect: onSelect}
}

// Render returns the buttons in input order with the active one marked
func (t Tabs) Render() []Tab {
	out := make([]Tab, 0, len(t.Items))
	for _, item := range t.Items {
		out = append(out, Tab{Key: item.Key, Label: item.Label, Active: item.Key == t.Active})
	}
	return out
}

// Select invokes the callback with key, also when key is already active.
// It returns false without calling back when key is not one of the items.
func (t Tabs) Select(key string) bool {
	for _, item := range t.Items {
		if item.Key != key {
			continue
		}
		if t.OnSelect != nil {
			t.OnSelect(key)
		}
		return true
	}
	return false
}
