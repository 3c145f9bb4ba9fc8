package stub

import "github.com/corey/apistub/internal/domain/javasrc"

// fieldScope maps field names to their declared types for one enclosing
// type. It is captured before members are removed so that delegation
// arguments referring to dropped fields still find a type.
type fieldScope map[string]string

func newFieldScope(t *javasrc.TypeDeclaration) fieldScope {
	fs := make(fieldScope)
	for _, m := range t.Members {
		if m.Kind != javasrc.MemberField {
			continue
		}
		for _, v := range m.Variables {
			fs[v.Name] = v.Type
		}
	}
	return fs
}

// filterTypes applies the type-level visibility gate to types and returns
// the survivors in their original order. scope lists the enclosing types'
// fields, innermost first.
func filterTypes(types []*javasrc.TypeDeclaration, scope []fieldScope, res *Result) []*javasrc.TypeDeclaration {
	kept := types[:0]
	for _, t := range types {
		if !filterType(t, scope, res) {
			res.TypesRemoved++
			continue
		}
		kept = append(kept, t)
	}
	return kept
}

// filterType rewrites t and reports whether it stays in the tree.
//
// Classes and interfaces without public or protected are dropped with
// everything nested inside them. Interfaces are otherwise left alone apart
// from their nested types. Classes get their members filtered and their
// bodies erased. Enums, records and annotation types are not gated; only
// the class and interface declarations nested in them are visited.
func filterType(t *javasrc.TypeDeclaration, scope []fieldScope, res *Result) bool {
	if t.IsClassOrInterface() && !t.Modifiers.Visible() {
		return false
	}

	inner := append([]fieldScope{newFieldScope(t)}, scope...)
	if t.Kind == javasrc.KindClass {
		stubMembers(t, inner, res)
	}

	kept := t.Members[:0]
	for _, m := range t.Members {
		if m.Kind == javasrc.MemberType && !filterType(m.Type, inner, res) {
			res.TypesRemoved++
			continue
		}
		kept = append(kept, m)
	}
	t.Members = kept
	return true
}

// stubMembers runs the member policy over a class body: members are first
// marked, survivors get their bodies erased, then marked members are
// removed. The default constructor is looked up before anything is
// removed, so a package-private no-argument constructor still counts.
func stubMembers(t *javasrc.TypeDeclaration, scope []fieldScope, res *Result) {
	def := t.DefaultConstructor()

	remove := make([]bool, len(t.Members))
	for i, m := range t.Members {
		if ShouldRemove(m) {
			remove[i] = true
			continue
		}

		switch m.Kind {
		case javasrc.MemberMethod:
			if eraseMethod(m) {
				res.BodiesErased++
			}
		case javasrc.MemberConstructor:
			if m.Body == nil {
				continue
			}
			var preserved bool
			m.Body, preserved = sanitizeConstructor(m, def, scope)
			res.BodiesErased++
			if preserved {
				res.InvocationsPreserved++
			}
		}
	}

	kept := t.Members[:0]
	for i, m := range t.Members {
		if remove[i] {
			res.MembersRemoved++
			continue
		}
		kept = append(kept, m)
	}
	t.Members = kept
}
