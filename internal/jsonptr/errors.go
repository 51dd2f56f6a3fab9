package jsonptr

import "errors"

var errPointerMustStartWithSlash = errors.New("jsonptr: pointer must start with '/'")
