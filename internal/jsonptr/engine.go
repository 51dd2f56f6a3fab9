package jsonptr

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/yafiyogi/yy-mqtt-bridge/internal/metric"
)

// Visit is called once per scalar value found at a configured pointer.
// raw is the value's original textual form (a number keeps its exact
// source digits; strings are the decoded text; booleans are "true"/
// "false"). payload is whatever was registered at that pointer via
// Trie.Add.
type Visit[P any] func(payload P, raw string, vtype metric.ValueType)

// frame tracks one nesting level of the document relative to the trie.
type frame struct {
	node      int32
	isArray   bool
	index     int
	pending   int32 // child node computed from the most recently read object key
	expectKey bool  // only meaningful when !isArray
}

// Engine drives a token-level parse of a JSON document against a frozen
// pointer trie, restartable from a clean slate for every call to Run —
// nothing about an Engine's state survives between messages, so one Engine
// may be shared by a Handler across every message it processes as long as
// calls do not overlap (the dispatch loop's single-writer discipline
// guarantees they never do).
type Engine[P any] struct {
	trie  *Frozen[P]
	stack []frame
}

// NewEngine binds an Engine to a frozen pointer trie.
func NewEngine[P any](trie *Frozen[P]) *Engine[P] {
	return &Engine[P]{trie: trie}
}

// Run parses data and calls visit for every scalar at a configured
// pointer. Malformed JSON aborts the current document with an error and
// emits nothing further for it; the Engine is left ready for the next Run
// regardless of outcome.
func (e *Engine[P]) Run(data []byte, visit Visit[P]) error {
	e.stack = e.stack[:0]
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	pendingRootNode := Root

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			// Token reports a plain EOF even when the input stops inside
			// an object or array; an open container means truncation.
			if len(e.stack) > 0 {
				return io.ErrUnexpectedEOF
			}
			return nil
		}
		if err != nil {
			return err
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '{', '[':
				childNode := e.nextValueNode(pendingRootNode)
				e.stack = append(e.stack, frame{node: childNode, isArray: v == '[', expectKey: true})
			case '}', ']':
				if len(e.stack) > 0 {
					e.stack = e.stack[:len(e.stack)-1]
				}
				e.afterValue()
			}
		case string:
			if top, ok := e.topObjectAwaitingKey(); ok {
				top.pending = e.trie.Child(top.node, v)
				top.expectKey = false
				continue
			}
			childNode := e.nextValueNode(pendingRootNode)
			e.emit(childNode, v, metric.ValueString, visit)
			e.afterValue()
		case json.Number:
			childNode := e.nextValueNode(pendingRootNode)
			raw := v.String()
			e.emit(childNode, raw, classifyNumber(raw), visit)
			e.afterValue()
		case bool:
			childNode := e.nextValueNode(pendingRootNode)
			raw := "false"
			if v {
				raw = "true"
			}
			e.emit(childNode, raw, metric.ValueBool, visit)
			e.afterValue()
		case nil:
			// JSON null: consume the position, emit nothing.
			e.nextValueNode(pendingRootNode)
			e.afterValue()
		}
	}
}

// nextValueNode computes the trie node for the value about to be read,
// given the current top-of-stack container (or the document root when the
// stack is empty).
func (e *Engine[P]) nextValueNode(rootNode int32) int32 {
	if len(e.stack) == 0 {
		return rootNode
	}
	top := &e.stack[len(e.stack)-1]
	if top.isArray {
		return e.trie.Child(top.node, strconv.Itoa(top.index))
	}
	return top.pending
}

// afterValue advances array indices / re-arms key-expectation for the
// current top-of-stack container after a value (scalar or a just-closed
// nested container) has been fully consumed.
func (e *Engine[P]) afterValue() {
	if len(e.stack) == 0 {
		return
	}
	top := &e.stack[len(e.stack)-1]
	if top.isArray {
		top.index++
		return
	}
	top.expectKey = true
}

// topObjectAwaitingKey returns the top frame when it is an object frame
// currently expecting a key token (as opposed to awaiting a value, or
// being an array frame where string values have no special meaning).
func (e *Engine[P]) topObjectAwaitingKey() (*frame, bool) {
	if len(e.stack) == 0 {
		return nil, false
	}
	top := &e.stack[len(e.stack)-1]
	if !top.isArray && top.expectKey {
		return top, true
	}
	return nil, false
}

func (e *Engine[P]) emit(node int32, raw string, vtype metric.ValueType, visit Visit[P]) {
	if visit == nil {
		return
	}
	if payload, ok := e.trie.Payload(node); ok {
		visit(payload, raw, vtype)
	}
}

// classifyNumber tags a JSON number's original text as Int, UInt, or Float
// without any reformatting or rounding, per spec §4.5's numeric policy.
func classifyNumber(raw string) metric.ValueType {
	if strings.ContainsAny(raw, ".eE") {
		return metric.ValueFloat
	}
	if strings.HasPrefix(raw, "-") {
		return metric.ValueInt
	}
	return metric.ValueUInt
}
