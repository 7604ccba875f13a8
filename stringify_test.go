package sfdd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescriptionRendersMemberSets(t *testing.T) {
	f := NewFactory[int]()
	family := f.Make([]int{1, 2}, []int{1})

	desc := family.Description()
	assert.True(t, strings.HasPrefix(desc, "{"))
	assert.True(t, strings.HasSuffix(desc, "}"))
	assert.Contains(t, desc, "{1,2}")
	assert.Contains(t, desc, "{1}")
}

func TestDescriptionOfTerminals(t *testing.T) {
	f := NewFactory[int]()
	assert.Equal(t, "{}", f.Zero().Description())
	assert.Equal(t, "{{}}", f.One().Description())
}

func TestStringIsAnAliasForDescription(t *testing.T) {
	f := NewFactory[int]()
	family := f.Make([]int{1})
	assert.Equal(t, family.Description(), family.String())
}
