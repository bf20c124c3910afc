package session

import (
	"time"

	"github.com/google/uuid"

	"radial-switch/src/geometry"
	"radial-switch/src/registry"
)

// State is the selection state of a menu session.
type State int

const (
	// StateEmpty means the snapshot had no candidates; nothing can be selected.
	StateEmpty State = iota
	// StateHasSelection means exactly one candidate is selected at all times.
	StateHasSelection
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateHasSelection:
		return "has-selection"
	default:
		return "unknown"
	}
}

// Session is the state of one open-to-close cycle of the radial menu.
// The candidate snapshot is fixed at creation; only the selection changes.
type Session struct {
	ID         string
	OpenedAt   time.Time
	Layout     geometry.Layout
	candidates []registry.Candidate
	selected   int
}

// New starts a session over a snapshot. Selection starts at the first
// candidate, or none when the snapshot is empty.
func New(candidates []registry.Candidate, layout geometry.Layout) *Session {
	snapshot := make([]registry.Candidate, len(candidates))
	copy(snapshot, candidates)

	selected := -1
	if len(snapshot) > 0 {
		selected = 0
	}
	return &Session{
		ID:         uuid.NewString(),
		OpenedAt:   time.Now(),
		Layout:     layout,
		candidates: snapshot,
		selected:   selected,
	}
}

// Elapsed returns how long the session has been open.
func (s *Session) Elapsed() time.Duration { return time.Since(s.OpenedAt) }

// State reports whether the session can hold a selection.
func (s *Session) State() State {
	if len(s.candidates) == 0 {
		return StateEmpty
	}
	return StateHasSelection
}

// Len returns the number of candidates.
func (s *Session) Len() int { return len(s.candidates) }

// Candidate returns candidate i.
func (s *Session) Candidate(i int) registry.Candidate { return s.candidates[i] }

// Selected returns the selected index; ok is false for an empty session.
func (s *Session) Selected() (index int, ok bool) {
	if s.selected < 0 {
		return 0, false
	}
	return s.selected, true
}

// Selection returns the selected candidate; ok is false for an empty session.
func (s *Session) Selection() (registry.Candidate, bool) {
	i, ok := s.Selected()
	if !ok {
		return registry.Candidate{}, false
	}
	return s.candidates[i], true
}

// Select moves the selection to i and reports whether it changed. Indices
// outside the snapshot are ignored.
func (s *Session) Select(i int) bool {
	if i < 0 || i >= len(s.candidates) || i == s.selected {
		return false
	}
	s.selected = i
	return true
}
