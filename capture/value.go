// Package capture defines match result values and assembles sequence results from child captures.
package capture

import (
	"bytes"
	"strconv"
	"strings"
)

type Kind uint8

const (
	Unit     Kind = iota // no semantic value
	Scalar               // matched or constant bytes
	Sequence             // ordered values
	Mapping              // named values, insertion order kept
)

func (k Kind) String() string {
	switch k {
	case Unit:
		return "unit"
	case Scalar:
		return "scalar"
	case Sequence:
		return "sequence"
	case Mapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is an immutable match result. The zero Value is Unit at offset 0.
// Pos holds input offset where the value starts and is ignored by Equal.
type Value struct {
	kind  Kind
	pos   int
	bytes []byte
	items []Value
	keys  []string
}

func NewUnit(pos int) Value {
	return Value{kind: Unit, pos: pos}
}

func NewScalar(pos int, b []byte) Value {
	return Value{kind: Scalar, pos: pos, bytes: b}
}

func NewSequence(pos int, items []Value) Value {
	return Value{kind: Sequence, pos: pos, items: items}
}

// MappingBuilder collects key/value pairs, a repeated key replaces the value keeping its position.
type MappingBuilder struct {
	pos   int
	keys  []string
	items []Value
}

func NewMappingBuilder(pos int) *MappingBuilder {
	return &MappingBuilder{pos: pos}
}

func (b *MappingBuilder) Set(key string, v Value) *MappingBuilder {
	for i, k := range b.keys {
		if k == key {
			b.items[i] = v
			return b
		}
	}
	b.keys = append(b.keys, key)
	b.items = append(b.items, v)
	return b
}

func (b *MappingBuilder) Value() Value {
	return Value{kind: Mapping, pos: b.pos, keys: b.keys, items: b.items}
}

func (v Value) Kind() Kind {
	return v.kind
}

func (v Value) Pos() int {
	return v.pos
}

func (v Value) IsUnit() bool {
	return v.kind == Unit
}

// Bytes returns scalar content or nil.
func (v Value) Bytes() []byte {
	return v.bytes
}

// Text returns scalar content as string.
func (v Value) Text() string {
	return string(v.bytes)
}

// Len returns number of sequence items or mapping entries.
func (v Value) Len() int {
	return len(v.items)
}

// Index returns i-th sequence item or mapping value.
func (v Value) Index(i int) Value {
	return v.items[i]
}

func (v Value) Items() []Value {
	return v.items
}

// Keys returns mapping keys in insertion order.
func (v Value) Keys() []string {
	return v.keys
}

// Get returns mapping value by key.
func (v Value) Get(key string) (Value, bool) {
	for i, k := range v.keys {
		if k == key {
			return v.items[i], true
		}
	}
	return Value{}, false
}

// Has reports whether mapping contains key.
func (v Value) Has(key string) bool {
	_, found := v.Get(key)
	return found
}

// Equal compares values structurally; mapping key order is ignored.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind || len(v.items) != len(other.items) {
		return false
	}

	switch v.kind {
	case Scalar:
		return bytes.Equal(v.bytes, other.bytes)

	case Sequence:
		for i, item := range v.items {
			if !item.Equal(other.items[i]) {
				return false
			}
		}

	case Mapping:
		for i, k := range v.keys {
			o, found := other.Get(k)
			if !found || !v.items[i].Equal(o) {
				return false
			}
		}
	}
	return true
}

// String returns compact debug representation.
func (v Value) String() string {
	var sb strings.Builder
	v.write(&sb)
	return sb.String()
}

func (v Value) write(sb *strings.Builder) {
	switch v.kind {
	case Unit:
		sb.WriteString("()")

	case Scalar:
		sb.WriteString(strconv.Quote(string(v.bytes)))

	case Sequence:
		sb.WriteByte('[')
		for i, item := range v.items {
			if i > 0 {
				sb.WriteString(", ")
			}
			item.write(sb)
		}
		sb.WriteByte(']')

	case Mapping:
		sb.WriteByte('{')
		for i, k := range v.keys {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(k)
			sb.WriteString(": ")
			v.items[i].write(sb)
		}
		sb.WriteByte('}')
	}
}
