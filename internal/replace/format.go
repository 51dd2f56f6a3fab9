// Package replace compiles the small replacement-format mini-language used
// by the replace-path label action: a literal prefix interleaved with
// 1-based topic-level placeholders ("\1", "\2", ...) and a handful of
// backslash escapes.
package replace

import (
	"strconv"
	"strings"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/topic"
)

const noIndex = -1

// element is one {prefix, level-index} pair; a trailing element with no
// index is a pure literal tail.
type element struct {
	prefix string
	index  int
}

// Format is a compiled replacement format, ready to be applied against a
// concrete topic's levels.
type Format struct {
	elements []element
}

var escapeTable = map[byte]byte{
	'n': '\n',
	't': '\t',
}

// Compile parses a format string of the grammar
//
//	prefix ( '\' (index | escape) prefix )*
//
// where index is one or two digits (1-based in the surface syntax, stored
// 0-based) and escape maps via escapeTable, defaulting to the escaped
// character itself for any other '\' + 'c'. At most two digits are read
// after a '\', so a third digit is kept as literal text. A zero index (\0
// or \00) drops that placeholder and logs a warning via warn, but the
// remainder of the format is still compiled.
func Compile(format string, warn func(msg string)) *Format {
	var elements []element
	var prefix strings.Builder

	i := 0
	for i < len(format) {
		c := format[i]
		if c != '\\' {
			prefix.WriteByte(c)
			i++
			continue
		}

		// trailing backslash with nothing after it: keep it literally.
		if i+1 >= len(format) {
			prefix.WriteByte('\\')
			i++
			continue
		}

		next := format[i+1]
		if next >= '0' && next <= '9' {
			digits := string(next)
			j := i + 2
			if j < len(format) && format[j] >= '0' && format[j] <= '9' {
				digits += string(format[j])
				j++
			}
			n, err := strconv.Atoi(digits)
			if err != nil || n == 0 {
				if warn != nil {
					warn("replace: invalid placeholder index \\" + digits + ", dropping")
				}
				i = j
				continue
			}
			elements = append(elements, element{prefix: prefix.String(), index: n - 1})
			prefix.Reset()
			i = j
			continue
		}

		if mapped, ok := escapeTable[next]; ok {
			prefix.WriteByte(mapped)
		} else {
			prefix.WriteByte(next)
		}
		i += 2
	}

	if prefix.Len() > 0 || len(elements) == 0 {
		elements = append(elements, element{prefix: prefix.String(), index: noIndex})
	}

	return fuse(elements)
}

// fuse merges consecutive prefix-only elements, which Compile never
// actually produces (every element it appends carries an index except
// possibly the last), but keeps the invariant explicit for callers that
// build a Format by hand (e.g. tests).
func fuse(elements []element) *Format {
	fused := make([]element, 0, len(elements))
	for _, e := range elements {
		if n := len(fused); n > 0 && fused[n-1].index == noIndex && e.index == noIndex {
			fused[n-1].prefix += e.prefix
			continue
		}
		fused = append(fused, e)
	}
	return &Format{elements: fused}
}

// Apply appends the formatted expansion of f against levels to out and
// returns the grown buffer, following buffer-reuse discipline.
func (f *Format) Apply(levels topic.Levels, out []byte) []byte {
	for _, e := range f.elements {
		out = append(out, e.prefix...)
		if e.index != noIndex {
			out = append(out, levels.At(e.index)...)
		}
	}
	return out
}

// String renders the expansion as a fresh string.
func (f *Format) String(levels topic.Levels) string {
	return string(f.Apply(levels, nil))
}
