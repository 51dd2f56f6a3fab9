package topic

import "errors"

var (
	errEmptyFilter   = errors.New("topic: filter must not be empty")
	errHashNotAtTail = errors.New("topic: '#' wildcard must be the last level")
	errMixedWildcard = errors.New("topic: a level cannot mix a wildcard with literal text")
	errEmptyLevel    = errors.New("topic: filter must not contain an empty level")
)
