// Package topic implements MQTT topic and topic-filter handling: trimming,
// tokenizing into levels, filter validation, and the trie-based automaton
// that maps concrete topics to the handler payloads registered against
// matching filters.
package topic

import "strings"

const (
	levelSeparator  = "/"
	singleWildcard  = "+"
	multiWildcard   = "#"
	systemTopicChar = '$'
)

// Trim removes a single trailing level separator from a concrete topic, the
// way every MQTT message topic is normalized before lookup and tokenizing.
func Trim(t string) string {
	if strings.HasSuffix(t, levelSeparator) {
		return t[:len(t)-1]
	}
	return t
}

// Levels is an ordered, read-only view of a topic's '/'-separated levels.
// It borrows its strings from the buffer it was tokenized from; callers
// must not retain a Levels past the lifetime of that buffer.
type Levels []string

// Tokenize splits a trimmed concrete topic into its levels. The returned
// slice may reuse the supplied scratch buffer's backing array when capacity
// allows, matching the hot-path buffer-reuse discipline of the dispatch
// loop.
func Tokenize(t string, scratch Levels) Levels {
	scratch = scratch[:0]
	if t == "" {
		return scratch
	}
	start := 0
	for i := 0; i < len(t); i++ {
		if t[i] == '/' {
			scratch = append(scratch, t[start:i])
			start = i + 1
		}
	}
	scratch = append(scratch, t[start:])
	return scratch
}

// At returns levels[idx], or the empty string if idx is out of range. Used
// throughout label/value transformation where a configured index may
// legitimately exceed the levels present in a given topic.
func (l Levels) At(idx int) string {
	if idx < 0 || idx >= len(l) {
		return ""
	}
	return l[idx]
}

// IsSystem reports whether a topic's first level begins with '$', marking
// it a system topic that leading wildcards must never match.
func IsSystem(levels Levels) bool {
	return len(levels) > 0 && len(levels[0]) > 0 && levels[0][0] == systemTopicChar
}

// ValidateFilter checks an MQTT topic filter for the structural rules in
// spec §3: non-empty, '#' only at the tail, and no level mixing a wildcard
// character with literal text.
func ValidateFilter(filter string) error {
	if filter == "" {
		return errEmptyFilter
	}
	levels := strings.Split(filter, levelSeparator)
	for i, lvl := range levels {
		switch {
		case lvl == singleWildcard, lvl == multiWildcard:
			if lvl == multiWildcard && i != len(levels)-1 {
				return errHashNotAtTail
			}
		case strings.ContainsAny(lvl, singleWildcard+multiWildcard):
			return errMixedWildcard
		case lvl == "":
			return errEmptyLevel
		}
	}
	return nil
}
