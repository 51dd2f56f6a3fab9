package jsonptr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitPointerBasic(t *testing.T) {
	tokens, err := SplitPointer("/a/b/0")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "0"}, tokens)
}

func TestSplitPointerEmpty(t *testing.T) {
	tokens, err := SplitPointer("")
	require.NoError(t, err)
	assert.Nil(t, tokens)
}

func TestSplitPointerEscapes(t *testing.T) {
	tokens, err := SplitPointer("/a~1b/c~0d")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/b", "c~d"}, tokens)
}

func TestSplitPointerMustStartWithSlash(t *testing.T) {
	_, err := SplitPointer("a/b")
	assert.Error(t, err)
}
