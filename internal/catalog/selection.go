package catalog

import (
	"strings"
	"sync"
)

// Selection is an ordered set of categories with a selected flag each
type Selection struct {
	mu       sync.RWMutex
	names    []string
	selected map[string]bool
}

// NewSelection creates a selection with every category selected
func NewSelection(categories []string) *Selection {
	s := &Selection{selected: make(map[string]bool)}
	for _, c := range categories {
		if _, exists := s.selected[c]; exists || c == "" {
			continue
		}
		s.names = append(s.names, c)
		s.selected[c] = true
	}
	return s
}

// All returns every category in display order
func (s *Selection) All() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Selected returns the selected categories in display order
func (s *Selection) Selected() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []string{}
	for _, n := range s.names {
		if s.selected[n] {
			out = append(out, n)
		}
	}
	return out
}

// IsSelected reports whether name is selected
func (s *Selection) IsSelected(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected[name]
}

// Toggle flips the selection of an existing category
func (s *Selection) Toggle(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.selected[name]; ok {
		s.selected[name] = !v
	}
}

// SetSelected selects exactly the listed categories that exist
func (s *Selection) SetSelected(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	for _, n := range s.names {
		s.selected[n] = want[n]
	}
}

// AddCustom adds a user-defined category, trimmed and upper-cased.
// It returns the normalized name and whether it was newly added.
func (s *Selection) AddCustom(name string) (string, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(name))
	if normalized == "" {
		return "", false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.selected[normalized]; exists {
		return normalized, false
	}
	s.names = append(s.names, normalized)
	s.selected[normalized] = true
	return normalized, true
}

// Ensure appends names missing from the catalog verbatim, unselected.
// It is used when restoring a selection that contains custom categories.
func (s *Selection) Ensure(names []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, exists := s.selected[n]; !exists {
			s.names = append(s.names, n)
			s.selected[n] = false
		}
	}
}
