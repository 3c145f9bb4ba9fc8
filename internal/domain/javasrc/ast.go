// Package javasrc is the mutable syntax model of one Java compilation unit.
//
// The model keeps the raw source text of every span it does not need to
// understand (annotations, signatures, field initializers, comments) and
// only structures what the stubbing pass rewrites: imports, type
// declarations, their members, and constructor/method bodies. The printer
// rebuilds source text from the retained spans plus any synthesized blocks.
package javasrc

// SourceUnit is the root of one file's tree.
type SourceUnit struct {
	Path string

	// Prelude is the raw text up to and including the package declaration.
	Prelude string
	Imports []*ImportDeclaration
	Types   []*TypeDeclaration
	// Trailer holds comments after the last type declaration.
	Trailer string
}

// ImportDeclaration is a single import line.
type ImportDeclaration struct {
	Name     string // dotted name without "import", "static" or ".*"
	Static   bool
	Wildcard bool

	Text        string // raw text including attached leading comments
	BlankBefore bool
}

// TypeKind distinguishes the declaration keywords.
type TypeKind int

const (
	KindClass TypeKind = iota
	KindInterface
	KindEnum
	KindRecord
	KindAnnotation
)

func (k TypeKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindInterface:
		return "interface"
	case KindEnum:
		return "enum"
	case KindRecord:
		return "record"
	case KindAnnotation:
		return "@interface"
	default:
		return "unknown"
	}
}

// TypeDeclaration is a class, interface, enum, record or annotation type.
type TypeDeclaration struct {
	Kind      TypeKind
	Name      string
	Modifiers Modifiers

	// Head is the raw text from the first leading comment through the
	// opening brace of the body.
	Head string
	// Constants is the raw enum constant section, including the closing
	// semicolon when present. Empty for every other kind.
	Constants string
	Members   []*Member
	Indent    string
}

// IsClassOrInterface reports whether the declaration is a plain class or an
// interface, the only two kinds the visibility pass rewrites.
func (t *TypeDeclaration) IsClassOrInterface() bool {
	return t.Kind == KindClass || t.Kind == KindInterface
}

// DefaultConstructor returns the first declared constructor that takes no
// parameters, or nil.
func (t *TypeDeclaration) DefaultConstructor() *Member {
	for _, m := range t.Members {
		if m.Kind == MemberConstructor && len(m.Params) == 0 {
			return m
		}
	}
	return nil
}


// MemberKind tags the Member union.
type MemberKind int

const (
	MemberField MemberKind = iota
	MemberMethod
	MemberConstructor
	MemberType
	MemberInitializer
	MemberComment
	MemberOther
)

func (k MemberKind) String() string {
	switch k {
	case MemberField:
		return "field"
	case MemberMethod:
		return "method"
	case MemberConstructor:
		return "constructor"
	case MemberType:
		return "type"
	case MemberInitializer:
		return "initializer"
	case MemberComment:
		return "comment"
	default:
		return "other"
	}
}

// Variable is a declared name together with its declared type text.
type Variable struct {
	Name string
	Type string
}

// Member is one body declaration of a type.
type Member struct {
	Kind      MemberKind
	Name      string
	Modifiers Modifiers

	// Text is the raw declaration including attached comments. It is
	// printed verbatim unless Body has been erased.
	Text string
	// Signature is the raw text before the body's opening brace.
	Signature   string
	Indent      string
	BlankBefore bool

	// Field.
	Variables []Variable
	// Method and constructor.
	Params []Variable
	Body   *Block
	// Nested type.
	Type *TypeDeclaration
}

// Abstract reports whether the member carries the abstract modifier.
func (m *Member) Abstract() bool {
	return m.Modifiers.Has(ModAbstract)
}

// Param returns the parameter called name.
func (m *Member) Param(name string) (Variable, bool) {
	for _, p := range m.Params {
		if p.Name == name {
			return p, true
		}
	}
	return Variable{}, false
}

// Block is a method or constructor body. A block loaded from source keeps
// its Raw text and its parsed leading invocation, if any; a block built by
// the stubbing pass carries Statements instead.
type Block struct {
	Raw        string
	Invocation *ExplicitConstructorInvocation
	Statements []Statement
}

// Synthesized reports whether the block was replaced by the stubbing pass.
func (b *Block) Synthesized() bool {
	return b != nil && b.Statements != nil
}

// Statement is a synthesized statement.
type Statement interface {
	statement()
}

// ThrowUnsupported raises java.lang.UnsupportedOperationException.
type ThrowUnsupported struct {
	Message string
}

// ExplicitConstructorInvocation is a leading this(...) or super(...) call.
type ExplicitConstructorInvocation struct {
	Keyword       string // "this" or "super"
	Qualifier     string // raw "outer" in outer.super(...)
	TypeArguments string // raw "<T>"
	Arguments     []Expression
}

func (*ThrowUnsupported) statement()              {}
func (*ExplicitConstructorInvocation) statement() {}

// Expression is an invocation argument.
type Expression interface {
	expression()
}

// Identifier is a simple name reference.
type Identifier struct {
	Name string
}

// NullLiteral is an untyped null, or a placeholder cast to Type.
type NullLiteral struct {
	Type string
}

// Opaque is any other expression, kept as raw text.
type Opaque struct {
	Text string
	// Placeholder marks a cast of null (or of a zero literal) that an
	// earlier stubbing pass already produced.
	Placeholder bool
}

func (*Identifier) expression()  {}
func (*NullLiteral) expression() {}
func (*Opaque) expression()      {}
