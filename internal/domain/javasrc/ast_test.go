package javasrc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModifiers_Visible(t *testing.T) {
	assert.True(t, NewModifiers("public").Visible())
	assert.True(t, NewModifiers("protected", "static").Visible())
	assert.False(t, NewModifiers("private", "static").Visible())
	assert.False(t, NewModifiers().Visible())
}

func TestModifiers_String(t *testing.T) {
	m := NewModifiers("final", "static", "public")
	assert.Equal(t, "public static final", m.String())
	assert.Equal(t, Modifier(0), ParseModifier("record"))
	assert.True(t, NewModifiers("non-sealed").Has(ModNonSealed))
}

func TestDefaultConstructor_FirstNoArg(t *testing.T) {
	withArgs := &Member{Kind: MemberConstructor, Params: []Variable{{Name: "y", Type: "int"}}}
	first := &Member{Kind: MemberConstructor}
	second := &Member{Kind: MemberConstructor}
	td := &TypeDeclaration{Members: []*Member{withArgs, first, second}}

	assert.Same(t, first, td.DefaultConstructor())
	assert.Nil(t, (&TypeDeclaration{Members: []*Member{withArgs}}).DefaultConstructor())
}

func TestBlock_Synthesized(t *testing.T) {
	var nilBlock *Block
	assert.False(t, nilBlock.Synthesized())
	assert.False(t, (&Block{Raw: "{}"}).Synthesized())
	assert.True(t, (&Block{Statements: []Statement{&ThrowUnsupported{}}}).Synthesized())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "@interface", KindAnnotation.String())
	assert.Equal(t, "constructor", MemberConstructor.String())
}
