package stub

import "github.com/corey/apistub/internal/domain/javasrc"

// ShouldRemove is the member-level visibility policy for class bodies.
//
//   - fields are dropped unless public, protected or static; private static
//     state may still be read by retained constant expressions
//   - methods are dropped unless public or protected
//   - constructors are dropped only when package-private; private ones stay
//     because retained static factories may call them
//
// Nested types, initializer blocks and comments are never removed here;
// nested types go through the type-level gate instead.
func ShouldRemove(m *javasrc.Member) bool {
	mods := m.Modifiers
	switch m.Kind {
	case javasrc.MemberField:
		return !mods.Visible() && !mods.Has(javasrc.ModStatic)
	case javasrc.MemberMethod:
		return !mods.Visible()
	case javasrc.MemberConstructor:
		return !mods.Visible() && !mods.Has(javasrc.ModPrivate)
	default:
		return false
	}
}
