package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrim(t *testing.T) {
	assert.Equal(t, "a/b", Trim("a/b/"))
	assert.Equal(t, "a/b", Trim("a/b"))
	assert.Equal(t, "", Trim("/"))
}

func TestTokenize(t *testing.T) {
	levels := Tokenize("a/b/c", nil)
	assert.Equal(t, Levels{"a", "b", "c"}, levels)

	assert.Equal(t, Levels(nil), Tokenize("", nil))
}

func TestTokenizeReusesScratch(t *testing.T) {
	scratch := make(Levels, 0, 8)
	levels := Tokenize("a/b", scratch)
	assert.Equal(t, 2, len(levels))
	assert.Equal(t, cap(scratch), cap(levels))
}

func TestLevelsAt(t *testing.T) {
	levels := Levels{"a", "b"}
	assert.Equal(t, "a", levels.At(0))
	assert.Equal(t, "", levels.At(5))
	assert.Equal(t, "", levels.At(-1))
}

func TestIsSystem(t *testing.T) {
	assert.True(t, IsSystem(Levels{"$SYS", "uptime"}))
	assert.False(t, IsSystem(Levels{"home", "kitchen"}))
	assert.False(t, IsSystem(Levels{}))
}

func TestValidateFilter(t *testing.T) {
	require.NoError(t, ValidateFilter("home/+/temp"))
	require.NoError(t, ValidateFilter("home/#"))
	require.NoError(t, ValidateFilter("home/kitchen/temp"))

	assert.ErrorIs(t, ValidateFilter(""), errEmptyFilter)
	assert.ErrorIs(t, ValidateFilter("home/#/temp"), errHashNotAtTail)
	assert.ErrorIs(t, ValidateFilter("home/a+/temp"), errMixedWildcard)
	assert.ErrorIs(t, ValidateFilter("home//temp"), errEmptyLevel)
}
