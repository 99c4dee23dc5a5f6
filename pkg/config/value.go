// Package config converts Wazuh configuration documents (ossec.conf,
// agent.conf) into their JSON-equivalent structured form and retrieves
// the live configuration of running components over the local daemon
// sockets.
//
// Conversion is synchronous and call scoped: every call builds a fresh
// document, and nothing is shared or retained afterwards. The section
// policy registry is the only process wide state and is read only.
package config

import (
	"encoding/json"
	"fmt"
)

// Value is the structured form of a single option. Every value is one
// of Scalar, Sequence or Map; nesting is arbitrary and mirrors the
// source tree. The closed union keeps the reader and the assembler free
// of raw interface{} plumbing.
type Value interface {
	isValue()
}

// Scalar is a plain string option value.
type Scalar string

// Sequence is an ordered list of values.
type Sequence []Value

// Map is a string keyed collection of values. Section documents and the
// whole converted configuration are Maps as well.
type Map map[string]Value

func (Scalar) isValue()   {}
func (Sequence) isValue() {}
func (Map) isValue()      {}

// IsEmpty reports whether v carries no data. Empty values are skipped
// by the assembler rather than inserted.
func IsEmpty(v Value) bool {
	switch t := v.(type) {
	case nil:
		return true
	case Scalar:
		return t == ""
	case Sequence:
		return len(t) == 0
	case Map:
		return len(t) == 0
	default:
		return false
	}
}

// FromAny converts a decoded JSON payload (as produced by
// encoding/json into any) to the Value union. Numbers and booleans are
// carried as their textual form: the daemons exchange every option as a
// string.
func FromAny(v any) Value {
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		return Scalar(t)
	case json.Number:
		return Scalar(t.String())
	case []any:
		seq := make(Sequence, 0, len(t))
		for _, e := range t {
			seq = append(seq, FromAny(e))
		}
		return seq
	case map[string]any:
		m := make(Map, len(t))
		for k, e := range t {
			m[k] = FromAny(e)
		}
		return m
	default:
		return Scalar(fmt.Sprint(t))
	}
}

// ToAny is the inverse of FromAny, for callers that hand the document
// to generic JSON tooling.
func ToAny(v Value) any {
	switch t := v.(type) {
	case nil:
		return nil
	case Scalar:
		return string(t)
	case Sequence:
		out := make([]any, 0, len(t))
		for _, e := range t {
			out = append(out, ToAny(e))
		}
		return out
	case Map:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = ToAny(e)
		}
		return out
	default:
		return nil
	}
}
