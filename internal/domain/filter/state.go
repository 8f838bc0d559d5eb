// Package filter holds per-session filter selections and the engine that
// narrows a table through the fixed predicate pipeline.
package filter

import (
	"fmt"
	"strings"
)

// State is one session's selections. It is owned by a single session and is
// not safe for concurrent use.
type State struct {
	selections map[Key][]string
	queries    map[Key]string
}

// Update is a batch of changes. Keys absent from both maps are left alone;
// an empty slice clears a selection.
type Update struct {
	Selections map[Key][]string `json:"selections,omitempty"`
	Queries    map[Key]string   `json:"queries,omitempty"`
}

// NewState returns a state with every key at its default.
func NewState() *State {
	s := &State{}
	s.Reset()
	return s
}

// Reset restores every key to its default: empty set or empty string.
func (s *State) Reset() {
	s.selections = make(map[Key][]string)
	s.queries = make(map[Key]string)
}

// Select replaces the selection of a multi-select key. Values are trimmed
// and de-duplicated, keeping first occurrence.
func (s *State) Select(key Key, values ...string) error {
	if err := checkKind(key, false); err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) == 0 {
		delete(s.selections, key)
		return nil
	}
	s.selections[key] = out
	return nil
}

// SetQuery replaces a free-text query.
func (s *State) SetQuery(key Key, q string) error {
	if err := checkKind(key, true); err != nil {
		return err
	}
	if q == "" {
		delete(s.queries, key)
		return nil
	}
	s.queries[key] = q
	return nil
}

// Apply validates every key in u before changing anything.
func (s *State) Apply(u Update) error {
	for k := range u.Selections {
		if err := checkKind(k, false); err != nil {
			return err
		}
	}
	for k := range u.Queries {
		if err := checkKind(k, true); err != nil {
			return err
		}
	}
	for k, v := range u.Selections {
		_ = s.Select(k, v...)
	}
	for k, q := range u.Queries {
		_ = s.SetQuery(k, q)
	}
	return nil
}

// Selection returns a copy of the selected values for key.
func (s *State) Selection(key Key) []string {
	v := s.selections[key]
	if len(v) == 0 {
		return []string{}
	}
	out := make([]string, len(v))
	copy(out, v)
	return out
}

// Query returns the free-text query for key.
func (s *State) Query(key Key) string { return s.queries[key] }

// IsDefault reports whether no key carries a selection or query.
func (s *State) IsDefault() bool {
	return len(s.selections) == 0 && len(s.queries) == 0
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := NewState()
	for k, v := range s.selections {
		c.selections[k] = append([]string(nil), v...)
	}
	for k, q := range s.queries {
		c.queries[k] = q
	}
	return c
}

// reconcile drops selected values outside domain and returns them.
func (s *State) reconcile(key Key, domain map[string]struct{}) []string {
	sel := s.selections[key]
	if len(sel) == 0 {
		return nil
	}
	kept := sel[:0:0]
	var dropped []string
	for _, v := range sel {
		if _, ok := domain[v]; ok {
			kept = append(kept, v)
		} else {
			dropped = append(dropped, v)
		}
	}
	if len(kept) == 0 {
		delete(s.selections, key)
	} else {
		s.selections[key] = kept
	}
	return dropped
}

func checkKind(key Key, query bool) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if key.IsQuery() != query {
		return fmt.Errorf("%w: %q", ErrWrongKind, key)
	}
	return nil
}
