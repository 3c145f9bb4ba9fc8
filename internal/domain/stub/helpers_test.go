package stub

import (
	"strings"

	"github.com/corey/apistub/internal/domain/javasrc"
)

func mods(s string) javasrc.Modifiers {
	return javasrc.NewModifiers(strings.Fields(s)...)
}

func class(name, modifiers string, members ...*javasrc.Member) *javasrc.TypeDeclaration {
	return &javasrc.TypeDeclaration{
		Kind:      javasrc.KindClass,
		Name:      name,
		Modifiers: mods(modifiers),
		Head:      strings.TrimSpace(modifiers+" class "+name) + " {",
		Members:   members,
	}
}

func iface(name, modifiers string, members ...*javasrc.Member) *javasrc.TypeDeclaration {
	td := class(name, modifiers, members...)
	td.Kind = javasrc.KindInterface
	td.Head = strings.TrimSpace(modifiers+" interface "+name) + " {"
	return td
}

func nested(td *javasrc.TypeDeclaration) *javasrc.Member {
	return &javasrc.Member{Kind: javasrc.MemberType, Name: td.Name, Modifiers: td.Modifiers, Type: td}
}

func field(modifiers, typ, name string) *javasrc.Member {
	return &javasrc.Member{
		Kind:      javasrc.MemberField,
		Name:      name,
		Modifiers: mods(modifiers),
		Text:      "    " + strings.TrimSpace(modifiers+" "+typ+" "+name) + ";",
		Variables: []javasrc.Variable{{Name: name, Type: typ}},
	}
}

func method(modifiers, name string) *javasrc.Member {
	sig := "    " + strings.TrimSpace(modifiers+" int "+name+"()") + " "
	return &javasrc.Member{
		Kind:      javasrc.MemberMethod,
		Name:      name,
		Modifiers: mods(modifiers),
		Signature: sig,
		Text:      sig + "{ return 42; }",
		Indent:    "    ",
		Body:      &javasrc.Block{Raw: "{ return 42; }"},
	}
}

func abstractMethod(modifiers, name string) *javasrc.Member {
	return &javasrc.Member{
		Kind:      javasrc.MemberMethod,
		Name:      name,
		Modifiers: mods(modifiers),
		Text:      "    " + strings.TrimSpace(modifiers+" int "+name+"()") + ";",
		Indent:    "    ",
	}
}

func ctor(modifiers, name string, params []javasrc.Variable, inv *javasrc.ExplicitConstructorInvocation) *javasrc.Member {
	var ps []string
	for _, p := range params {
		ps = append(ps, p.Type+" "+p.Name)
	}
	sig := "    " + strings.TrimSpace(modifiers+" "+name+"("+strings.Join(ps, ", ")+")") + " "
	return &javasrc.Member{
		Kind:      javasrc.MemberConstructor,
		Name:      name,
		Modifiers: mods(modifiers),
		Signature: sig,
		Text:      sig + "{ init(); }",
		Indent:    "    ",
		Params:    params,
		Body:      &javasrc.Block{Raw: "{ init(); }", Invocation: inv},
	}
}

func superCall(args ...javasrc.Expression) *javasrc.ExplicitConstructorInvocation {
	return &javasrc.ExplicitConstructorInvocation{Keyword: "super", Arguments: args}
}

func thisCall(args ...javasrc.Expression) *javasrc.ExplicitConstructorInvocation {
	return &javasrc.ExplicitConstructorInvocation{Keyword: "this", Arguments: args}
}

func ident(name string) *javasrc.Identifier {
	return &javasrc.Identifier{Name: name}
}

func unit(types ...*javasrc.TypeDeclaration) *javasrc.SourceUnit {
	return &javasrc.SourceUnit{Prelude: "package p;", Types: types}
}

func memberNames(td *javasrc.TypeDeclaration) []string {
	var names []string
	for _, m := range td.Members {
		names = append(names, m.Name)
	}
	return names
}

func bodyText(m *javasrc.Member) []string {
	var out []string
	for _, st := range m.Body.Statements {
		out = append(out, javasrc.StatementString(st))
	}
	return out
}

const throwLine = `throw new java.lang.UnsupportedOperationException("This is API for compile only purposes.");`

// prefixList is a linear ports.PrefixMatcher.
type prefixList []string

func (p prefixList) MatchPrefix(name string) (string, bool) {
	for _, prefix := range p {
		if strings.HasPrefix(name, prefix) {
			return prefix, true
		}
	}
	return "", false
}
