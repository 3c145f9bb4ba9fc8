package javasrc

import "strings"

// Modifier is one Java declaration modifier keyword.
type Modifier uint16

const (
	ModPublic Modifier = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
	ModDefault
	ModNative
	ModSynchronized
	ModTransient
	ModVolatile
	ModStrictfp
	ModSealed
	ModNonSealed
)

var modifierNames = []struct {
	mod  Modifier
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
	{ModDefault, "default"},
	{ModNative, "native"},
	{ModSynchronized, "synchronized"},
	{ModTransient, "transient"},
	{ModVolatile, "volatile"},
	{ModStrictfp, "strictfp"},
	{ModSealed, "sealed"},
	{ModNonSealed, "non-sealed"},
}

// ParseModifier maps a keyword to its Modifier. Unknown keywords map to 0.
func ParseModifier(keyword string) Modifier {
	for _, mn := range modifierNames {
		if mn.name == keyword {
			return mn.mod
		}
	}
	return 0
}

// Modifiers is a set of Modifier values.
type Modifiers uint16

// NewModifiers builds a set from keywords.
func NewModifiers(keywords ...string) Modifiers {
	var m Modifiers
	for _, kw := range keywords {
		m = m.With(ParseModifier(kw))
	}
	return m
}

// Has reports whether mod is in the set.
func (m Modifiers) Has(mod Modifier) bool {
	return m&Modifiers(mod) != 0
}

// With returns the set plus mod.
func (m Modifiers) With(mod Modifier) Modifiers {
	return m | Modifiers(mod)
}

// Visible reports whether the set contains public or protected.
func (m Modifiers) Visible() bool {
	return m.Has(ModPublic) || m.Has(ModProtected)
}

// String lists the keywords in declaration order.
func (m Modifiers) String() string {
	var parts []string
	for _, mn := range modifierNames {
		if m.Has(mn.mod) {
			parts = append(parts, mn.name)
		}
	}
	return strings.Join(parts, " ")
}
