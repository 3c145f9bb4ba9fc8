package javasrc

import (
	"strconv"
	"strings"
)

// UnsupportedException is the fully qualified type thrown by stub bodies.
const UnsupportedException = "java.lang.UnsupportedOperationException"

// DefaultIndent is the unit added for each statement level in synthesized blocks.
const DefaultIndent = "    "

// Printer serializes a SourceUnit back to Java source text.
type Printer struct {
	// Indent is the unit used to indent synthesized statements.
	Indent string
}

// Print serializes u with the default indent.
func Print(u *SourceUnit) []byte {
	return Printer{Indent: DefaultIndent}.Print(u)
}

// Print serializes u.
func (p Printer) Print(u *SourceUnit) []byte {
	var sb strings.Builder
	wrote := false

	if u.Prelude != "" {
		sb.WriteString(u.Prelude)
		sb.WriteString("\n")
		wrote = true
	}

	if len(u.Imports) > 0 {
		if wrote {
			sb.WriteString("\n")
		}
		for i, imp := range u.Imports {
			if i > 0 && imp.BlankBefore {
				sb.WriteString("\n")
			}
			sb.WriteString(imp.Text)
			sb.WriteString("\n")
		}
		wrote = true
	}

	for _, t := range u.Types {
		if wrote {
			sb.WriteString("\n")
		}
		p.writeType(&sb, t)
		sb.WriteString("\n")
		wrote = true
	}

	if u.Trailer != "" {
		if wrote {
			sb.WriteString("\n")
		}
		sb.WriteString(u.Trailer)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}

func (p Printer) writeType(sb *strings.Builder, t *TypeDeclaration) {
	sb.WriteString(t.Head)
	sb.WriteString("\n")

	if t.Constants != "" {
		sb.WriteString(t.Constants)
		sb.WriteString("\n")
	}

	for _, m := range t.Members {
		if m.BlankBefore {
			sb.WriteString("\n")
		}
		p.writeMember(sb, t, m)
		sb.WriteString("\n")
	}

	sb.WriteString(t.Indent)
	sb.WriteString("}")
}

func (p Printer) writeMember(sb *strings.Builder, t *TypeDeclaration, m *Member) {
	switch {
	case m.Kind == MemberType && m.Type != nil:
		p.writeType(sb, m.Type)
	case m.Body.Synthesized():
		// A member opening on its type's brace line gets its own line.
		indent := m.Indent
		if indent == "" {
			indent = t.Indent + p.Indent
			sb.WriteString(indent)
		}
		sig := strings.TrimRight(m.Signature, " \t\r\n")
		sb.WriteString(sig)
		// The brace stays on its own line when it was, so a trailing line
		// comment in the signature cannot swallow it.
		if strings.Contains(m.Signature[len(sig):], "\n") {
			sb.WriteString("\n")
			sb.WriteString(indent)
		} else {
			sb.WriteString(" ")
		}
		p.writeBlock(sb, m.Body, indent)
	default:
		sb.WriteString(m.Text)
	}
}

func (p Printer) writeBlock(sb *strings.Builder, b *Block, indent string) {
	sb.WriteString("{\n")
	for _, st := range b.Statements {
		sb.WriteString(indent)
		sb.WriteString(p.Indent)
		sb.WriteString(StatementString(st))
		sb.WriteString("\n")
	}
	sb.WriteString(indent)
	sb.WriteString("}")
}

// StatementString renders a synthesized statement on one line.
func StatementString(st Statement) string {
	switch s := st.(type) {
	case *ThrowUnsupported:
		return "throw new " + UnsupportedException + "(" + strconv.Quote(s.Message) + ");"
	case *ExplicitConstructorInvocation:
		var sb strings.Builder
		if s.Qualifier != "" {
			sb.WriteString(s.Qualifier)
			sb.WriteString(".")
		}
		sb.WriteString(s.TypeArguments)
		sb.WriteString(s.Keyword)
		sb.WriteString("(")
		for i, arg := range s.Arguments {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(ExpressionString(arg))
		}
		sb.WriteString(");")
		return sb.String()
	default:
		return ""
	}
}

// ExpressionString renders an argument expression.
func ExpressionString(e Expression) string {
	switch x := e.(type) {
	case *Identifier:
		return x.Name
	case *NullLiteral:
		if x.Type == "" {
			return "null"
		}
		if zero, ok := primitiveZero[x.Type]; ok {
			return "(" + x.Type + ") " + zero
		}
		return "(" + x.Type + ") null"
	case *Opaque:
		return x.Text
	default:
		return ""
	}
}

// primitiveZero holds the literal cast to each primitive type in place of null.
var primitiveZero = map[string]string{
	"boolean": "false",
	"byte":    "0",
	"short":   "0",
	"char":    "0",
	"int":     "0",
	"long":    "0",
	"float":   "0",
	"double":  "0",
}

// IsPrimitive reports whether typ names a Java primitive type.
func IsPrimitive(typ string) bool {
	_, ok := primitiveZero[typ]
	return ok
}
