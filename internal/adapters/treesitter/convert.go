package treesitter

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/corey/apistub/internal/domain/javasrc"
)

// typeKinds maps declaration node kinds to the model's type kinds.
var typeKinds = map[string]javasrc.TypeKind{
	"class_declaration":           javasrc.KindClass,
	"interface_declaration":       javasrc.KindInterface,
	"enum_declaration":            javasrc.KindEnum,
	"record_declaration":          javasrc.KindRecord,
	"annotation_type_declaration": javasrc.KindAnnotation,
}

// converter turns a tree-sitter Java tree into the javasrc model.
type converter struct {
	src []byte
}

// span is one declaration (or a standalone comment when node is nil)
// together with the comments attached in front of it.
type span struct {
	node   *tree_sitter.Node
	start  uint
	end    uint
	endRow uint
	blank  bool
}

func (c *converter) unit(root *tree_sitter.Node) *javasrc.SourceUnit {
	u := &javasrc.SourceUnit{}

	var rest []*tree_sitter.Node
	var from uint
	for _, n := range children(root) {
		if n.Kind() == "package_declaration" {
			u.Prelude = c.slice(0, n.EndByte())
			from = n.EndByte()
			rest = rest[:0]
			continue
		}
		rest = append(rest, n)
	}

	spans := c.scan(rest, from, u.Prelude != "")
	if u.Prelude == "" {
		spans = c.takePrelude(u, spans)
	}

	var pending []span
	for _, sp := range spans {
		if sp.node == nil {
			pending = append(pending, sp)
			continue
		}
		start, blank := sp.start, sp.blank
		if len(pending) > 0 {
			start, blank = pending[0].start, pending[0].blank
			pending = pending[:0]
		}
		text := c.slice(start, sp.end)

		switch kind := sp.node.Kind(); {
		case kind == "import_declaration":
			u.Imports = append(u.Imports, c.importDecl(sp.node, text, blank))
		case isTypeKind(kind):
			u.Types = append(u.Types, c.typeDecl(sp.node, start))
		}
	}
	if len(pending) > 0 {
		u.Trailer = c.slice(pending[0].start, pending[len(pending)-1].end)
	}
	return u
}

// takePrelude moves the comments heading a file without a package
// declaration into the prelude, as long as a blank line separates them
// from the first declaration.
func (c *converter) takePrelude(u *javasrc.SourceUnit, spans []span) []span {
	i := 0
	for i < len(spans) && spans[i].node == nil {
		i++
	}
	if i == 0 || i == len(spans) || !spans[i].blank {
		return spans
	}
	u.Prelude = c.slice(spans[0].start, spans[i-1].end)
	return spans[i:]
}

func (c *converter) importDecl(n *tree_sitter.Node, text string, blank bool) *javasrc.ImportDeclaration {
	imp := &javasrc.ImportDeclaration{Text: text, BlankBefore: blank}
	for _, ch := range children(n) {
		switch ch.Kind() {
		case "static":
			imp.Static = true
		case "asterisk":
			imp.Wildcard = true
		case "identifier", "scoped_identifier":
			imp.Name = c.text(ch)
		}
	}
	return imp
}

func (c *converter) typeDecl(n *tree_sitter.Node, start uint) *javasrc.TypeDeclaration {
	t := &javasrc.TypeDeclaration{
		Kind:      typeKinds[n.Kind()],
		Modifiers: c.modifiers(n),
		Indent:    c.indentAt(n.StartByte()),
	}
	if name := n.ChildByFieldName("name"); name != nil {
		t.Name = c.text(name)
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		t.Head = c.slice(start, n.EndByte())
		return t
	}

	inner := children(body)
	lbrace := body.StartByte() + 1
	if len(inner) > 0 && inner[0].Kind() == "{" {
		lbrace = inner[0].EndByte()
		inner = inner[1:]
	}
	if len(inner) > 0 && inner[len(inner)-1].Kind() == "}" {
		inner = inner[:len(inner)-1]
	}
	t.Head = c.slice(start, lbrace)

	if body.Kind() == "enum_body" {
		inner, lbrace = c.enumConstants(t, inner, lbrace)
	}

	for _, sp := range c.scan(inner, lbrace, false) {
		t.Members = append(t.Members, c.member(sp))
	}
	return t
}

// enumConstants captures the constant section of an enum body as raw text
// and returns the body declarations that follow it.
func (c *converter) enumConstants(t *javasrc.TypeDeclaration, inner []*tree_sitter.Node, from uint) ([]*tree_sitter.Node, uint) {
	var decls *tree_sitter.Node
	var section []*tree_sitter.Node
	for _, n := range inner {
		if n.Kind() == "enum_body_declarations" {
			decls = n
			break
		}
		section = append(section, n)
	}

	end := from
	if len(section) > 0 {
		end = section[len(section)-1].EndByte()
	}

	var rest []*tree_sitter.Node
	if decls != nil {
		declChildren := children(decls)
		if len(declChildren) > 0 && declChildren[0].Kind() == ";" {
			end = declChildren[0].EndByte()
			declChildren = declChildren[1:]
		}
		rest = declChildren
		if len(section) == 0 {
			section = append(section, decls)
		}
	}

	if len(section) > 0 {
		t.Constants = c.slice(c.lineStart(section[0].StartByte()), end)
	}
	return rest, end
}

func (c *converter) member(sp span) *javasrc.Member {
	m := &javasrc.Member{
		Text:        c.slice(sp.start, sp.end),
		BlankBefore: sp.blank,
	}
	n := sp.node
	if n == nil {
		m.Kind = javasrc.MemberComment
		return m
	}
	m.Indent = c.indentAt(n.StartByte())
	m.Modifiers = c.modifiers(n)

	switch kind := n.Kind(); {
	case kind == "field_declaration" || kind == "constant_declaration":
		m.Kind = javasrc.MemberField
		m.Variables = c.fieldVariables(n)
		if len(m.Variables) > 0 {
			m.Name = m.Variables[0].Name
		}
	case kind == "method_declaration":
		m.Kind = javasrc.MemberMethod
		m.Name = c.fieldText(n, "name")
		m.Params = c.params(n.ChildByFieldName("parameters"))
		if body := n.ChildByFieldName("body"); body != nil && body.Kind() == "block" {
			m.Signature = c.slice(sp.start, body.StartByte())
			m.Body = &javasrc.Block{Raw: c.text(body)}
		}
	case kind == "constructor_declaration" || kind == "compact_constructor_declaration":
		m.Kind = javasrc.MemberConstructor
		m.Name = c.fieldText(n, "name")
		m.Params = c.params(n.ChildByFieldName("parameters"))
		if body := n.ChildByFieldName("body"); body != nil {
			m.Signature = c.slice(sp.start, body.StartByte())
			m.Body = &javasrc.Block{Raw: c.text(body), Invocation: c.leadingInvocation(body)}
		}
	case isTypeKind(kind):
		m.Kind = javasrc.MemberType
		m.Type = c.typeDecl(n, sp.start)
		m.Name = m.Type.Name
	case kind == "block" || kind == "static_initializer":
		m.Kind = javasrc.MemberInitializer
	default:
		m.Kind = javasrc.MemberOther
	}
	return m
}

// modifiers reads the modifier keywords of a declaration. Annotations stay
// in the raw text only.
func (c *converter) modifiers(n *tree_sitter.Node) javasrc.Modifiers {
	var mods javasrc.Modifiers
	for _, ch := range children(n) {
		if ch.Kind() != "modifiers" {
			continue
		}
		for _, kw := range children(ch) {
			mods = mods.With(javasrc.ParseModifier(kw.Kind()))
		}
	}
	return mods
}

func (c *converter) fieldVariables(n *tree_sitter.Node) []javasrc.Variable {
	typ := c.typeText(n.ChildByFieldName("type"))
	var vars []javasrc.Variable
	for _, ch := range children(n) {
		if ch.Kind() != "variable_declarator" {
			continue
		}
		vars = append(vars, javasrc.Variable{
			Name: c.fieldText(ch, "name"),
			Type: typ + c.fieldText(ch, "dimensions"),
		})
	}
	return vars
}

func (c *converter) params(list *tree_sitter.Node) []javasrc.Variable {
	if list == nil {
		return nil
	}
	var params []javasrc.Variable
	for _, p := range children(list) {
		switch p.Kind() {
		case "formal_parameter":
			params = append(params, javasrc.Variable{
				Name: c.fieldText(p, "name"),
				Type: c.typeText(p.ChildByFieldName("type")) + c.fieldText(p, "dimensions"),
			})
		case "spread_parameter":
			params = append(params, c.spreadParam(p))
		}
	}
	return params
}

// spreadParam reads "T... name"; the declared type is the array type.
func (c *converter) spreadParam(p *tree_sitter.Node) javasrc.Variable {
	var v javasrc.Variable
	for _, ch := range children(p) {
		switch {
		case !ch.IsNamed() || ch.Kind() == "modifiers" || isComment(ch):
		case ch.Kind() == "variable_declarator":
			v.Name = c.fieldText(ch, "name")
		case v.Type == "":
			v.Type = c.typeText(ch) + "[]"
		}
	}
	return v
}

// typeText returns the declared type without type annotations.
func (c *converter) typeText(n *tree_sitter.Node) string {
	if n == nil {
		return ""
	}
	if n.Kind() == "annotated_type" && n.NamedChildCount() > 0 {
		return c.typeText(n.NamedChild(n.NamedChildCount() - 1))
	}
	return c.text(n)
}

// leadingInvocation parses the explicit this(...)/super(...) call opening
// a constructor body, if any.
func (c *converter) leadingInvocation(body *tree_sitter.Node) *javasrc.ExplicitConstructorInvocation {
	var first *tree_sitter.Node
	for _, ch := range children(body) {
		if ch.IsNamed() && !isComment(ch) {
			first = ch
			break
		}
	}
	if first == nil || first.Kind() != "explicit_constructor_invocation" {
		return nil
	}

	inv := &javasrc.ExplicitConstructorInvocation{
		Keyword:       c.fieldText(first, "constructor"),
		Qualifier:     c.fieldText(first, "object"),
		TypeArguments: c.fieldText(first, "type_arguments"),
	}
	if args := first.ChildByFieldName("arguments"); args != nil {
		for _, a := range children(args) {
			if a.IsNamed() && !isComment(a) {
				inv.Arguments = append(inv.Arguments, c.expression(a))
			}
		}
	}
	return inv
}

func (c *converter) expression(n *tree_sitter.Node) javasrc.Expression {
	switch n.Kind() {
	case "identifier":
		return &javasrc.Identifier{Name: c.text(n)}
	case "null_literal":
		return &javasrc.NullLiteral{}
	case "cast_expression":
		return &javasrc.Opaque{Text: c.text(n), Placeholder: c.isPlaceholderCast(n)}
	default:
		return &javasrc.Opaque{Text: c.text(n)}
	}
}

// isPlaceholderCast recognizes "(T) null" and the primitive "(int) 0" or
// "(boolean) false" forms.
func (c *converter) isPlaceholderCast(n *tree_sitter.Node) bool {
	value := n.ChildByFieldName("value")
	if value == nil {
		return false
	}
	if value.Kind() == "null_literal" {
		return true
	}
	typ := c.fieldText(n, "type")
	v := c.text(value)
	return javasrc.IsPrimitive(typ) && (v == "0" || v == "false")
}

// scan groups the nodes of a body into declarations with their leading
// comments. A run of comments attaches to the next declaration when no
// blank line separates them; other comments become standalone spans
// unless attachAll is set. A comment starting on the row where the
// previous span ends is folded into that span.
func (c *converter) scan(nodes []*tree_sitter.Node, from uint, attachAll bool) []span {
	var out []span
	var pending []*tree_sitter.Node
	prevEnd := from

	standalone := func(ns []*tree_sitter.Node) {
		for _, n := range ns {
			start := c.lineStart(n.StartByte())
			out = append(out, span{
				start:  start,
				end:    n.EndByte(),
				endRow: n.EndPosition().Row,
				blank:  c.blankBetween(prevEnd, start),
			})
			prevEnd = n.EndByte()
		}
	}

	for _, n := range nodes {
		if isComment(n) {
			if len(pending) == 0 && len(out) > 0 && out[len(out)-1].endRow == n.StartPosition().Row {
				out[len(out)-1].end = n.EndByte()
				out[len(out)-1].endRow = n.EndPosition().Row
				prevEnd = n.EndByte()
				continue
			}
			pending = append(pending, n)
			continue
		}
		if n.Kind() == ";" {
			continue
		}

		attach := len(pending)
		next := n.StartByte()
		if !attachAll {
			for attach > 0 && !c.blankBetween(pending[attach-1].EndByte(), next) {
				next = pending[attach-1].StartByte()
				attach--
			}
			attach = len(pending) - attach
		}
		standalone(pending[:len(pending)-attach])
		leading := pending[len(pending)-attach:]

		first := n.StartByte()
		if len(leading) > 0 {
			first = leading[0].StartByte()
		}
		start := c.lineStart(first)
		out = append(out, span{
			node:   n,
			start:  start,
			end:    n.EndByte(),
			endRow: n.EndPosition().Row,
			blank:  c.blankBetween(prevEnd, start),
		})
		prevEnd = n.EndByte()
		pending = pending[:0]
	}
	standalone(pending)
	return out
}

// lineStart widens off to the start of its line when only blanks precede it.
func (c *converter) lineStart(off uint) uint {
	i := off
	for i > 0 {
		ch := c.src[i-1]
		if ch == '\n' {
			return i
		}
		if ch != ' ' && ch != '\t' {
			return off
		}
		i--
	}
	return 0
}

// indentAt returns the blanks in front of off when they open its line.
func (c *converter) indentAt(off uint) string {
	return c.slice(c.lineStart(off), off)
}

// blankBetween reports whether an empty line separates the two offsets.
func (c *converter) blankBetween(from, to uint) bool {
	if from >= to {
		return false
	}
	newlines := 0
	for _, ch := range c.src[from:to] {
		if ch == '\n' {
			newlines++
		}
	}
	return newlines >= 2
}

func (c *converter) text(n *tree_sitter.Node) string {
	return c.slice(n.StartByte(), n.EndByte())
}

func (c *converter) fieldText(n *tree_sitter.Node, field string) string {
	if ch := n.ChildByFieldName(field); ch != nil {
		return c.text(ch)
	}
	return ""
}

func (c *converter) slice(start, end uint) string {
	if end > uint(len(c.src)) {
		end = uint(len(c.src))
	}
	if start >= end {
		return ""
	}
	return string(c.src[start:end])
}

// children returns all children of n, named and anonymous.
func children(n *tree_sitter.Node) []*tree_sitter.Node {
	out := make([]*tree_sitter.Node, 0, n.ChildCount())
	for i := uint(0); i < n.ChildCount(); i++ {
		out = append(out, n.Child(i))
	}
	return out
}

func isComment(n *tree_sitter.Node) bool {
	switch n.Kind() {
	case "line_comment", "block_comment", "comment":
		return true
	}
	return false
}

func isTypeKind(kind string) bool {
	_, ok := typeKinds[kind]
	return ok
}
