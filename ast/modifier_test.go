package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestModifierSetMembersOrderAndDedup checks spec.md §8's structural
// property: Members yields each present modifier at most once, in
// declared enum order, regardless of insertion order or duplicates.
func TestModifierSetMembersOrderAndDedup(t *testing.T) {
	s := FromIter(
		ClassModifierSealed,
		ClassModifierClass,
		ClassModifierClass,
		ClassModifierAbstract,
	)
	assert.Equal(t, []ClassModifier{
		ClassModifierClass,
		ClassModifierAbstract,
		ClassModifierSealed,
	}, s.Members(AllClassModifiers))
}

func TestModifierSetContainsEmpty(t *testing.T) {
	var s ModifierSet[VariableModifier]
	assert.True(t, s.Empty())
	s = s.With(VariableModifierLate)
	assert.False(t, s.Empty())
	assert.True(t, s.Contains(VariableModifierLate))
	assert.False(t, s.Contains(VariableModifierConst))
}
