// Package ahocorasick provides multi-pattern prefix matching using an Aho-Corasick automaton.
// It wraps the petar-dambovaliev/aho-corasick library so that a whole denylist is
// checked in one pass over the name.
package ahocorasick

import (
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Matcher implements ports.PrefixMatcher. Build once, then share freely:
// the compiled automaton is read-only.
type Matcher struct {
	automaton aho.AhoCorasick
	prefixes  []string
	built     bool
}

// NewMatcher compiles prefixes into a matcher. Empty entries are ignored.
func NewMatcher(prefixes []string) *Matcher {
	m := &Matcher{}
	m.Build(prefixes)
	return m
}

// Build compiles the Aho-Corasick automaton from the given prefixes.
func (m *Matcher) Build(prefixes []string) {
	var kept []string
	for _, p := range prefixes {
		if p != "" {
			kept = append(kept, p)
		}
	}
	m.prefixes = kept
	m.built = false
	if len(kept) == 0 {
		return
	}

	builder := aho.NewAhoCorasickBuilder(aho.Opts{
		DFA: true,
	})
	m.automaton = builder.Build(m.prefixes)
	m.built = true
}

// MatchPrefix returns the first configured prefix that name starts with.
// Only matches anchored at offset 0 count; overlapping iteration is used so a
// short entry matching at 0 is not hidden by a longer one starting later.
func (m *Matcher) MatchPrefix(name string) (string, bool) {
	if !m.built || len(m.prefixes) == 0 {
		return "", false
	}

	iter := m.automaton.IterOverlappingByte([]byte(name))
	for next := iter.Next(); next != nil; next = iter.Next() {
		if next.Start() == 0 {
			return m.prefixes[next.Pattern()], true
		}
	}
	return "", false
}

// Prefixes returns the compiled prefixes.
func (m *Matcher) Prefixes() []string {
	return m.prefixes
}
