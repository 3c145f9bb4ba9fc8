package ports

// PrefixMatcher decides whether a qualified name starts with any entry of a
// fixed denylist. The production matcher compiles the denylist into an
// Aho-Corasick automaton once and is safe for concurrent use afterwards.
type PrefixMatcher interface {
	// MatchPrefix returns the denylist entry that prefixes name, and true,
	// or "", false when no entry does.
	MatchPrefix(name string) (string, bool)
}
