package objlist

import (
	"fmt"
	"slices"
)

// Action is a logical list action a shortcut can trigger.
type Action int

const (
	ActionNone Action = iota
	ActionToggleLockAll
	ActionToggleHiddenAll
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionToggleLockAll:
		return "toggle-lock-all"
	case ActionToggleHiddenAll:
		return "toggle-hidden-all"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Shortcut binds a key sequence to an action.
type Shortcut struct {
	Keys   []string
	Action Action
	Help   string
}

// DefaultShortcuts is the built-in shortcut table.
func DefaultShortcuts() []Shortcut {
	return []Shortcut{
		{Keys: []string{"t", "l"}, Action: ActionToggleLockAll, Help: "Lock/unlock all"},
		{Keys: []string{"t", "h"}, Action: ActionToggleHiddenAll, Help: "Hide/show all"},
	}
}

// MatchResult is the outcome of feeding one key to a Matcher.
type MatchResult int

const (
	// NoMatch means the key is not part of any shortcut and should be handled
	// normally.
	NoMatch MatchResult = iota
	// Pending means the key started or continued a sequence. It is consumed.
	Pending
	// Matched means a sequence completed. The key is consumed and the action
	// should run.
	Matched
)

// Matcher recognises key sequences from a shortcut table one key at a time.
type Matcher struct {
	shortcuts []Shortcut
	pending   []string
}

// NewMatcher builds a matcher over shortcuts. Sequences that are a strict
// prefix of another sequence would never fire and are rejected.
func NewMatcher(shortcuts []Shortcut) (*Matcher, error) {
	for i, a := range shortcuts {
		if len(a.Keys) == 0 {
			return nil, fmt.Errorf("shortcut for %s has no keys", a.Action)
		}
		for j, b := range shortcuts {
			if i != j && len(a.Keys) <= len(b.Keys) && slices.Equal(a.Keys, b.Keys[:len(a.Keys)]) {
				return nil, fmt.Errorf("shortcut %v for %s shadows %v for %s", a.Keys, a.Action, b.Keys, b.Action)
			}
		}
	}
	return &Matcher{shortcuts: slices.Clone(shortcuts)}, nil
}

// Feed consumes one key. Matched results carry the action; the pending buffer
// is cleared on Matched and NoMatch.
func (m *Matcher) Feed(key string) (MatchResult, Action) {
	hadPending := len(m.pending) > 0
	candidate := append(slices.Clone(m.pending), key)
	if result, action := m.match(candidate); result != NoMatch || !hadPending {
		return result, action
	}
	// A broken sequence may still start a new one.
	return m.match([]string{key})
}

// Pending returns the keys typed so far in an unfinished sequence.
func (m *Matcher) Pending() []string {
	return slices.Clone(m.pending)
}

// Reset drops any partially typed sequence.
func (m *Matcher) Reset() {
	m.pending = nil
}

// Shortcuts returns the table the matcher was built from.
func (m *Matcher) Shortcuts() []Shortcut {
	return slices.Clone(m.shortcuts)
}

func (m *Matcher) match(keys []string) (MatchResult, Action) {
	prefix := false
	for _, sc := range m.shortcuts {
		if len(keys) > len(sc.Keys) || !slices.Equal(keys, sc.Keys[:len(keys)]) {
			continue
		}
		if len(keys) == len(sc.Keys) {
			m.pending = nil
			return Matched, sc.Action
		}
		prefix = true
	}
	if prefix {
		m.pending = keys
		return Pending, ActionNone
	}
	m.pending = nil
	return NoMatch, ActionNone
}
