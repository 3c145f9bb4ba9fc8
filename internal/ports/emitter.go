// Package ports defines the interfaces (contracts) that adapters must implement.
// These are the boundaries of the hexagonal architecture. Domain logic depends
// only on these interfaces, never on concrete implementations.
package ports

// Emitter persists the serialized stub of one source file.
//
// rel is the file's path relative to the source root, using the host's
// separator; the emitter mirrors it under its own destination root and
// creates missing parent directories. Emit is never called for a unit whose
// type list came out empty.
type Emitter interface {
	Emit(rel string, content []byte) error
}

// StubReader reads a previously emitted stub back, for drift checks.
// A missing file is reported as (nil, false, nil).
type StubReader interface {
	ReadStub(rel string) ([]byte, bool, error)
}
