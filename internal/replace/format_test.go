package replace

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

func TestCompileAndApplyBasic(t *testing.T) {
	f := Compile(`\2_\1`, nil)
	levels := topic.Levels{"room", "kitchen", "north"}
	assert.Equal(t, "kitchen_room", f.String(levels))
}

func TestCompileLiteralPrefixAndTail(t *testing.T) {
	f := Compile(`prefix-\1-suffix`, nil)
	assert.Equal(t, "prefix-room-suffix", f.String(topic.Levels{"room", "kitchen"}))
}

func TestCompileOutOfRangeIndexYieldsEmpty(t *testing.T) {
	f := Compile(`\9`, nil)
	assert.Equal(t, "", f.String(topic.Levels{"a"}))
}

func TestCompileEscapes(t *testing.T) {
	f := Compile(`a\nb\tc`, nil)
	assert.Equal(t, "a\nb\tc", f.String(nil))
}

func TestCompileUnknownEscapeIsLiteral(t *testing.T) {
	f := Compile(`a\zb`, nil)
	assert.Equal(t, "azb", f.String(nil))
}

func TestCompileInvalidIndexWarnsAndDrops(t *testing.T) {
	var warned []string
	f := Compile(`x\0y`, func(msg string) { warned = append(warned, msg) })
	assert.NotEmpty(t, warned)
	assert.Equal(t, "xy", f.String(nil))
}

func TestCompileTrailingBackslash(t *testing.T) {
	f := Compile(`abc\`, nil)
	assert.Equal(t, `abc\`, f.String(nil))
}

func TestApplyAppendsToExistingBuffer(t *testing.T) {
	f := Compile(`\1`, nil)
	buf := []byte("prefix:")
	out := f.Apply(topic.Levels{"value"}, buf)
	assert.Equal(t, "prefix:value", string(out))
}
