package stub

import (
	"strings"
	"unicode"

	"github.com/corey/apistub/internal/domain/javasrc"
)

// FailureStatement returns the statement every stub body ends with.
func FailureStatement() javasrc.Statement {
	return &javasrc.ThrowUnsupported{Message: FailureMessage}
}

// FailureBlock returns a body holding only the failure statement.
func FailureBlock() *javasrc.Block {
	return &javasrc.Block{Statements: []javasrc.Statement{FailureStatement()}}
}

// eraseMethod replaces the body of a concrete method and reports whether it
// did. Abstract and native declarations have no body to replace.
func eraseMethod(m *javasrc.Member) bool {
	if m.Abstract() || m.Body == nil {
		return false
	}
	m.Body = FailureBlock()
	return true
}

// sanitizeConstructor builds the stub body of a retained constructor.
//
// The body is the failure statement alone, unless the original body opens
// with this(...) or super(...) and the class either declares no
// no-argument constructor or ctor is that constructor. Then the invocation
// is kept with placeholder arguments so the delegation chain still
// compiles, and the failure statement follows it. Other overloads lose
// their delegation.
func sanitizeConstructor(ctor, def *javasrc.Member, scope []fieldScope) (*javasrc.Block, bool) {
	inv := leadingInvocation(ctor.Body)
	if inv == nil || (def != nil && def != ctor) {
		return FailureBlock(), false
	}

	args := make([]javasrc.Expression, len(inv.Arguments))
	for i, arg := range inv.Arguments {
		args[i] = placeholderFor(arg, ctor, scope)
	}

	call := &javasrc.ExplicitConstructorInvocation{
		Keyword:       inv.Keyword,
		Qualifier:     inv.Qualifier,
		TypeArguments: inv.TypeArguments,
		Arguments:     args,
	}
	return &javasrc.Block{Statements: []javasrc.Statement{call, FailureStatement()}}, true
}

// leadingInvocation returns the this(...) or super(...) call a body opens
// with, whether parsed from source or kept by an earlier pass.
func leadingInvocation(b *javasrc.Block) *javasrc.ExplicitConstructorInvocation {
	if b.Invocation != nil {
		return b.Invocation
	}
	if len(b.Statements) > 0 {
		if inv, ok := b.Statements[0].(*javasrc.ExplicitConstructorInvocation); ok {
			return inv
		}
	}
	return nil
}

// placeholderFor rewrites one delegation argument. Simple identifiers
// become a null cast to their declared type so overload resolution still
// picks the same constructor; anything else becomes an untyped null.
// Placeholders left by an earlier pass are kept as they are.
func placeholderFor(arg javasrc.Expression, ctor *javasrc.Member, scope []fieldScope) javasrc.Expression {
	switch x := arg.(type) {
	case *javasrc.Identifier:
		return &javasrc.NullLiteral{Type: lookupUnqualifiedName(x.Name, ctor, scope)}
	case *javasrc.NullLiteral:
		return x
	case *javasrc.Opaque:
		if x.Placeholder {
			return x
		}
	}
	return &javasrc.NullLiteral{}
}

// lookupUnqualifiedName finds the type an identifier was declared with,
// looking at the constructor's parameters and then at the fields of the
// enclosing types from the innermost outwards. When nothing declares the
// name, the name itself is returned.
func lookupUnqualifiedName(name string, ctor *javasrc.Member, scope []fieldScope) string {
	if p, ok := ctor.Param(name); ok && p.Type != "" {
		return Unqualify(p.Type)
	}
	for _, fields := range scope {
		if typ, ok := fields[name]; ok && typ != "" {
			return Unqualify(typ)
		}
	}
	return name
}

// Unqualify strips the package prefix from a type name: leading segments
// that start with a lower-case letter are dropped, nested type qualifiers
// and type arguments are kept.
//
//	java.util.List<String> -> List<String>
//	Map.Entry<K, V>        -> Map.Entry<K, V>
func Unqualify(typ string) string {
	typ = strings.TrimSpace(typ)
	base, suffix := typ, ""
	if i := strings.IndexAny(typ, "<["); i >= 0 {
		base, suffix = typ[:i], typ[i:]
	}

	segs := strings.Split(strings.TrimSpace(base), ".")
	for len(segs) > 1 && startsLower(segs[0]) {
		segs = segs[1:]
	}
	return strings.Join(segs, ".") + suffix
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
