package stub

import (
	"github.com/corey/apistub/internal/domain/javasrc"
	"github.com/corey/apistub/internal/ports"
)

// DefaultDenyImports lists the import prefixes that never belong in a
// public-only surface: platform internals and the helper classes that sit
// next to the javax.faces API types without being part of it.
var DefaultDenyImports = []string{
	"com.sun.",
	"javax.faces.validator.MultiFieldValidationUtils",
	"javax.faces.ServletContextFacesContextFactory",
	"javax.faces.validator.MessageFactory",
	"javax.faces.application.SharedUtils",
}

// PruneImports removes every import whose qualified name starts with a
// denylisted prefix, preserving the order of the rest. It returns the
// number of imports removed.
func PruneImports(u *javasrc.SourceUnit, deny ports.PrefixMatcher) int {
	if deny == nil || len(u.Imports) == 0 {
		return 0
	}

	kept := u.Imports[:0]
	removed := 0
	for _, imp := range u.Imports {
		if _, ok := deny.MatchPrefix(imp.Name); ok {
			removed++
			continue
		}
		kept = append(kept, imp)
	}

	// Clear the tail so dropped declarations can be collected.
	for i := len(kept); i < len(u.Imports); i++ {
		u.Imports[i] = nil
	}
	u.Imports = kept
	return removed
}
