// Package tagset models a multi-select field whose options mix a predefined
// catalog with user-contributed ("custom") entries.
//
// A Set tracks three ordered lists:
//   - catalog: the current predefined options (may change when an upstream
//     field such as the employee's team changes)
//   - custom:  entries the user typed themselves, absent from the catalog
//   - selected: the values currently chosen, always a subset of catalog ∪ custom
//
// Selection limits are "soft" in the UX sense: an add past the limit is
// silently ignored rather than reported as an error. A max of zero means
// unbounded.
package tagset

import "strings"

// Set is the in-memory state of one multi-select field.
// The zero value is not usable; construct with New or FromSelection.
type Set struct {
	catalog  []string
	custom   []string
	selected []string
	max      int
}

// New returns an empty Set over the given catalog. max limits the number of
// selected values; zero means unbounded. The catalog slice is copied.
func New(catalog []string, max int) *Set {
	return &Set{
		catalog: append([]string(nil), catalog...),
		max:     max,
	}
}

// FromSelection rebuilds a Set from a persisted selection. Values in the
// selection that are not in the catalog become custom entries, so a saved
// profile renders the same options the user saw when they submitted it.
// Duplicates in the selection are dropped; if max is set, excess values
// beyond it are dropped in order.
func FromSelection(catalog, selected []string, max int) *Set {
	s := New(catalog, max)
	for _, v := range selected {
		if s.IsSelected(v) {
			continue
		}
		if max > 0 && len(s.selected) >= max {
			break
		}
		if !contains(s.catalog, v) && !contains(s.custom, v) {
			s.custom = append(s.custom, v)
		}
		s.selected = append(s.selected, v)
	}
	return s
}

// Toggle flips membership of value in the selection. Removing always
// succeeds; adding is ignored when the Set is at its max.
func (s *Set) Toggle(value string) {
	for i, v := range s.selected {
		if v == value {
			s.selected = append(s.selected[:i], s.selected[i+1:]...)
			return
		}
	}
	if s.max > 0 && len(s.selected) >= s.max {
		return
	}
	s.selected = append(s.selected, value)
}

// AddCustom registers raw as a custom entry and selects it. The value is
// trimmed; an empty result is a no-op. If the trimmed value is already in
// the catalog it is selected (if not already) instead of duplicated as a
// custom entry. Calling AddCustom twice with the same value is the same as
// calling it once.
func (s *Set) AddCustom(raw string) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return
	}
	if !contains(s.catalog, value) && !contains(s.custom, value) {
		s.custom = append(s.custom, value)
	}
	if !s.IsSelected(value) {
		s.Toggle(value)
	}
}

// RemoveCustom drops value from the custom registry and, if selected,
// deselects it. This is destructive: re-adding requires typing the value
// again. Removing a value that is not a custom entry is a no-op on the
// registry but still deselects it if selected.
func (s *Set) RemoveCustom(value string) {
	for i, v := range s.custom {
		if v == value {
			s.custom = append(s.custom[:i], s.custom[i+1:]...)
			break
		}
	}
	if s.IsSelected(value) {
		s.Toggle(value)
	}
}

// ReconcileCatalog replaces the catalog and recomputes the custom registry so
// that no previously chosen value disappears: every selected value absent
// from the new catalog is kept (or becomes) a custom entry. Previously known
// custom entries survive unless the new catalog now contains them. The
// selection itself is never changed.
func (s *Set) ReconcileCatalog(newCatalog []string) {
	s.catalog = append([]string(nil), newCatalog...)

	kept := make([]string, 0, len(s.custom)+len(s.selected))
	for _, v := range s.custom {
		if !contains(s.catalog, v) {
			kept = append(kept, v)
		}
	}
	for _, v := range s.selected {
		if !contains(s.catalog, v) && !contains(kept, v) {
			kept = append(kept, v)
		}
	}
	s.custom = kept
}

// IsSelected reports whether value is currently selected.
func (s *Set) IsSelected(value string) bool {
	return contains(s.selected, value)
}

// IsCustom reports whether value is a registered custom entry.
func (s *Set) IsCustom(value string) bool {
	return contains(s.custom, value)
}

// Selected returns a copy of the current selection in insertion order.
func (s *Set) Selected() []string {
	return append([]string(nil), s.selected...)
}

// Custom returns a copy of the custom-entry registry.
func (s *Set) Custom() []string {
	return append([]string(nil), s.custom...)
}

// Catalog returns a copy of the current catalog.
func (s *Set) Catalog() []string {
	return append([]string(nil), s.catalog...)
}

// Options returns the full option list in render order: the catalog followed
// by custom entries.
func (s *Set) Options() []string {
	out := make([]string, 0, len(s.catalog)+len(s.custom))
	out = append(out, s.catalog...)
	out = append(out, s.custom...)
	return out
}

// Len returns the number of selected values.
func (s *Set) Len() int { return len(s.selected) }

// Max returns the configured selection limit (zero means unbounded).
func (s *Set) Max() int { return s.max }

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
