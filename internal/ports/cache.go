package ports

// CacheEntry records what one source file produced the last time it was
// stubbed. Sums are hex SHA-256 digests.
type CacheEntry struct {
	SourceSum string `json:"source_sum"`
	StubSum   string `json:"stub_sum,omitempty"` // empty when no stub was emitted
	Bytes     int    `json:"bytes,omitempty"`
}

// StubCache persists per-file results between runs so unchanged sources
// are not parsed again. Keys are source-relative paths with forward
// slashes. Implementations must be safe for concurrent use.
type StubCache interface {
	// Get returns the entry for rel. A missing entry is (zero, false, nil).
	Get(rel string) (CacheEntry, bool, error)
	// Put stores e for rel, replacing any prior entry.
	Put(rel string, e CacheEntry) error
}
