package session

import (
	"sync"

	"github.com/alexanderramin/cashgrid/internal/domain"
	"github.com/alexanderramin/cashgrid/internal/grid"
)

// HistoryLimit caps the undo stack; the oldest snapshot is discarded when
// the cap is reached.
const HistoryLimit = 50

// EventKind classifies state-change notifications.
type EventKind string

const (
	EventEdited           EventKind = "edited"
	EventStructureChanged EventKind = "structure_changed"
	EventHistory          EventKind = "history"
	EventForecast         EventKind = "forecast"
	EventReplaced         EventKind = "replaced"
)

// Event is a plain state-change notification emitted after a committed
// command. Subscribers read the model through Session.Model.
type Event struct {
	Kind EventKind
}

// Listener receives session events. Listeners run synchronously on the
// command path and must not call back into the session.
type Listener func(Event)

// Session owns the live model, the undo/redo history and the dirty flag.
// Every mutation goes through the single-writer command queue: commands are
// processed one at a time to completion before the next is accepted, so a
// rapid double-commit cannot apply twice mid-flight.
type Session struct {
	mu sync.Mutex

	model *domain.Model
	undo  []*domain.Model
	redo  []*domain.Model
	dirty bool

	listeners []Listener
}

// New creates a session around an already-recalculated model.
func New(m *domain.Model) *Session {
	return &Session{model: m}
}

// Model returns the live model. All mutation must go through session
// commands; the model is read-only for callers.
func (s *Session) Model() *domain.Model {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model
}

// Dirty reports whether unsaved mutations exist since the last successful
// save or load.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// MarkSaved clears the dirty flag after a successful save.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	s.dirty = false
	s.mu.Unlock()
}

// Subscribe registers a listener for state-change events.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// ReplaceModel swaps in a tree loaded from the store (load, rollback). Any
// completed network operation may call this; the history and dirty flag
// reset because the new tree is the persisted truth.
func (s *Session) ReplaceModel(m *domain.Model) {
	s.do(func() error {
		grid.Recalculate(m)
		s.model = m
		s.undo = nil
		s.redo = nil
		s.dirty = false
		return nil
	})
	s.notify(EventReplaced)
}

// UndoDepth returns the current undo stack depth.
func (s *Session) UndoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.undo)
}

// RedoDepth returns the current redo stack depth.
func (s *Session) RedoDepth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.redo)
}

// do runs one command to completion under the session lock.
func (s *Session) do(cmd func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cmd()
}

// notify delivers an event to all listeners, outside the command lock.
func (s *Session) notify(kind EventKind) {
	s.mu.Lock()
	ls := append([]Listener(nil), s.listeners...)
	s.mu.Unlock()
	for _, l := range ls {
		l(Event{Kind: kind})
	}
}

// pushUndo snapshots the current tree onto the undo stack and clears the
// redo stack. Called inside a command, before the mutation applies.
func (s *Session) pushUndo() {
	if len(s.undo) >= HistoryLimit {
		s.undo = s.undo[1:]
	}
	s.undo = append(s.undo, s.model.Clone())
	s.redo = nil
}

// Undo replaces the tree with the most recent snapshot. Silent no-op when
// the stack is empty.
func (s *Session) Undo() {
	changed := false
	s.do(func() error {
		if len(s.undo) == 0 {
			return nil
		}
		s.redo = append(s.redo, s.model)
		s.model = s.undo[len(s.undo)-1]
		s.undo = s.undo[:len(s.undo)-1]
		grid.Recalculate(s.model)
		s.dirty = true
		changed = true
		return nil
	})
	if changed {
		s.notify(EventHistory)
	}
}

// Redo reapplies the most recently undone snapshot. Silent no-op when the
// stack is empty.
func (s *Session) Redo() {
	changed := false
	s.do(func() error {
		if len(s.redo) == 0 {
			return nil
		}
		s.undo = append(s.undo, s.model)
		s.model = s.redo[len(s.redo)-1]
		s.redo = s.redo[:len(s.redo)-1]
		grid.Recalculate(s.model)
		s.dirty = true
		changed = true
		return nil
	})
	if changed {
		s.notify(EventHistory)
	}
}
