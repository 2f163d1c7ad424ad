// Package serializer encodes a value.Value tree as compact JSON text.
//
// Serialization is total: every constructible Value has an encoding, so
// there is no error channel. The output contains no whitespace; there is
// no pretty-printing mode.
package serializer

import (
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsonv/internal/value"
)

// Serialize encodes v as compact JSON. Object members are emitted in map
// iteration order, which is not stable across calls; use an Encoder with
// SortKeys for deterministic output.
func Serialize(v value.Value) string {
	return Encoder{}.Encode(v)
}

// Encoder encodes Values with optional behavior tweaks. The zero Encoder
// is equivalent to Serialize.
type Encoder struct {
	// SortKeys emits object members in sorted key order. This is a
	// deliberate deviation from the map-order default, intended for
	// diffable or snapshot-tested output.
	SortKeys bool
}

// Encode returns the compact JSON encoding of v.
func (e Encoder) Encode(v value.Value) string {
	var b strings.Builder
	e.writeValue(&b, v)
	return b.String()
}

func (e Encoder) writeValue(b *strings.Builder, v value.Value) {
	switch v.Kind() {
	case value.KindNull:
		b.WriteString("null")
	case value.KindBool:
		bv, _ := v.AsBool()
		b.WriteString(strconv.FormatBool(bv))
	case value.KindNumber:
		n, _ := v.AsNumber()
		// JSON has no literals for NaN or the infinities.
		if math.IsNaN(n) || math.IsInf(n, 0) {
			b.WriteString("null")
			return
		}
		b.WriteString(strconv.FormatFloat(n, 'f', -1, 64))
	case value.KindString:
		s, _ := v.AsString()
		writeString(b, s)
	case value.KindArray:
		elems, _ := v.AsArray()
		b.WriteByte('[')
		for i, el := range elems {
			if i > 0 {
				b.WriteByte(',')
			}
			e.writeValue(b, el)
		}
		b.WriteByte(']')
	case value.KindObject:
		members, _ := v.AsObject()
		b.WriteByte('{')
		if e.SortKeys {
			for i, k := range v.Keys() {
				if i > 0 {
					b.WriteByte(',')
				}
				writeString(b, k)
				b.WriteByte(':')
				e.writeValue(b, members[k])
			}
		} else {
			first := true
			for k, member := range members {
				if !first {
					b.WriteByte(',')
				}
				writeString(b, k)
				b.WriteByte(':')
				e.writeValue(b, member)
				first = false
			}
		}
		b.WriteByte('}')
	}
}

const hexDigits = "0123456789abcdef"

// writeString emits s wrapped in quotes, re-escaping exactly the escape
// set the parser recognizes. Control characters outside the named escapes
// become \u00xx with lowercase hex; everything else, including non-ASCII,
// passes through unescaped.
func writeString(b *strings.Builder, s string) {
	b.WriteByte('"')
	for _, c := range s {
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '/':
			b.WriteString(`\/`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c <= 0x1F {
				b.WriteString(`\u00`)
				b.WriteByte(hexDigits[c>>4])
				b.WriteByte(hexDigits[c&0xF])
			} else {
				b.WriteRune(c)
			}
		}
	}
	b.WriteByte('"')
}
