package game

import (
	"slices"
	"unicode/utf8"
)

// EventKind says what changed in a State.
type EventKind string

const (
	EventReset    EventKind = "reset"
	EventAccepted EventKind = "accepted"
)

// Snapshot is a read-only copy of a State.
type Snapshot struct {
	Root  string   `json:"rootWord"`
	Used  []string `json:"usedWords"` // most recent first
	Score int      `json:"score"`
}

// Event is emitted after every change to a State.
type Event struct {
	Kind     EventKind
	Word     string // accepted word; empty for resets
	Snapshot Snapshot
}

// State holds the root word, the accepted words and the score for one
// session. It applies no rules; callers validate first. Not safe for
// concurrent use on its own; Session provides the locking.
type State struct {
	root  string
	used  []string
	score int

	listeners []listener // in subscription order
	nextID    int
}

type listener struct {
	id int
	fn func(Event)
}

// Reset starts over with a new root word.
func (s *State) Reset(root string) {
	s.root = root
	s.used = nil
	s.score = 0
	s.emit(Event{Kind: EventReset})
}

// ApplyAccepted records word as the most recent accepted word and adds its
// length to the score.
func (s *State) ApplyAccepted(word string) {
	s.used = slices.Insert(s.used, 0, word)
	s.score += utf8.RuneCountInString(word)
	s.emit(Event{Kind: EventAccepted, Word: word})
}

func (s *State) Root() string { return s.root }

func (s *State) Score() int { return s.score }

// Used returns the accepted words, most recent first.
func (s *State) Used() []string {
	out := make([]string, len(s.used))
	copy(out, s.used)
	return out
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{Root: s.root, Used: s.Used(), Score: s.score}
}

// Subscribe registers fn to receive every future Event. Listeners run
// synchronously on the mutating goroutine, in the order they subscribed.
// The returned func unregisters fn.
func (s *State) Subscribe(fn func(Event)) (cancel func()) {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listener{id: id, fn: fn})
	return func() {
		s.listeners = slices.DeleteFunc(s.listeners, func(l listener) bool { return l.id == id })
	}
}

func (s *State) emit(ev Event) {
	if len(s.listeners) == 0 {
		return
	}
	ev.Snapshot = s.Snapshot()
	for _, l := range s.listeners {
		l.fn(ev)
	}
}
