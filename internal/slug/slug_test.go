package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	assert.Equal(t, "jane-doe", Make("Jane", "Doe"))
	assert.Equal(t, "maria-jose-garcia", Make("Maria Jose", "Garcia"))
	assert.Equal(t, "oconnor-smith", Make("O'Connor", "Smith"))
	assert.Equal(t, "jane-doe", Make("  Jane ", " Doe "))
	assert.Equal(t, "jane", Make("Jane", ""))
}

func TestSplitName(t *testing.T) {
	first, last, ok := SplitName("jane-doe")
	require.True(t, ok)
	assert.Equal(t, "jane", first)
	assert.Equal(t, "doe", last)

	// Lossy for multi-word first names: everything after the first hyphen
	// becomes the last name.
	first, last, ok = SplitName("maria-jose-garcia")
	require.True(t, ok)
	assert.Equal(t, "maria", first)
	assert.Equal(t, "jose-garcia", last)

	_, _, ok = SplitName("janedoe")
	assert.False(t, ok)

	_, _, ok = SplitName("-doe")
	assert.False(t, ok)

	_, _, ok = SplitName("jane-")
	assert.False(t, ok)

	_, _, ok = SplitName("")
	assert.False(t, ok)
}
