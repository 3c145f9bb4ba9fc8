// Package stub turns a parsed Java compilation unit into its compile-only
// public surface: non-visible types and members are removed, every kept
// method and constructor body is replaced by a statement that throws, and
// implementation-only imports are pruned.
//
// The transform is a pure function of one tree. It never resolves symbols;
// constructor delegation arguments are rewritten from declarations found
// in the same file.
package stub

import (
	"github.com/corey/apistub/internal/domain/javasrc"
	"github.com/corey/apistub/internal/ports"
)

// FailureMessage is the message carried by every stub body.
const FailureMessage = "This is API for compile only purposes."

// Result summarizes what Stub changed in one unit.
type Result struct {
	ImportsRemoved       int
	TypesRemoved         int
	MembersRemoved       int
	BodiesErased         int
	InvocationsPreserved int
}

// Stubber applies the stubbing pass. It holds only read-only configuration
// and may be shared between goroutines.
type Stubber struct {
	deny ports.PrefixMatcher
}

// New returns a Stubber that prunes imports matched by deny. A nil matcher
// keeps every import.
func New(deny ports.PrefixMatcher) *Stubber {
	return &Stubber{deny: deny}
}

// Stub rewrites u in place. Callers emit u only when at least one type
// declaration survives, see Empty.
func (s *Stubber) Stub(u *javasrc.SourceUnit) Result {
	var res Result
	res.ImportsRemoved = PruneImports(u, s.deny)
	u.Types = filterTypes(u.Types, nil, &res)
	return res
}

// Empty reports whether filtering left nothing to emit.
func Empty(u *javasrc.SourceUnit) bool {
	return len(u.Types) == 0
}
