// Package value defines the in-memory model for JSON documents.
//
// A Value is a closed tagged union with exactly six kinds: null, boolean,
// number, string, array and object. Every consumer switches exhaustively on
// Kind, which keeps the model closed even though JSON itself is dynamically
// typed. All numbers are stored as float64.
package value

import "sort"

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "invalid"
}

// Value represents any JSON value. The zero Value is JSON null.
//
// A Value tree is a strict hierarchy: each array or object exclusively owns
// its children. Values are safe for concurrent reads; mutation of a shared
// tree requires external synchronization.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// Null returns the JSON null value.
func Null() Value {
	return Value{}
}

// Bool returns a JSON boolean.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Number returns a JSON number. NaN and infinities are representable in
// memory but serialize as null, since JSON has no literals for them.
func Number(n float64) Value {
	return Value{kind: KindNumber, num: n}
}

// String returns a JSON string. The string may contain any Unicode code
// points, including control characters.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Array returns a JSON array of the given elements, preserving order.
// Together with Object it doubles as the literal-construction facility:
//
//	value.Array(value.Of(1), value.String("x"), value.Null())
func Array(elems ...Value) Value {
	arr := make([]Value, len(elems))
	copy(arr, elems)
	return Value{kind: KindArray, arr: arr}
}

// Object returns a JSON object with the given members. The map is copied,
// so the caller may keep mutating its own map afterwards.
func Object(members map[string]Value) Value {
	obj := make(map[string]Value, len(members))
	for k, v := range members {
		obj[k] = v
	}
	return Value{kind: KindObject, obj: obj}
}

// Primitive is the set of host types with a direct JSON counterpart.
type Primitive interface {
	bool | string |
		int | int8 | int16 | int32 | int64 |
		uint | uint8 | uint16 | uint32 | uint64 | uintptr |
		float32 | float64
}

// Of converts a host primitive into a Value. The conversion is total: every
// numeric type becomes a Number, bool becomes Bool and string becomes String.
func Of[T Primitive](v T) Value {
	switch x := any(v).(type) {
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case int:
		return Number(float64(x))
	case int8:
		return Number(float64(x))
	case int16:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case uint:
		return Number(float64(x))
	case uint8:
		return Number(float64(x))
	case uint16:
		return Number(float64(x))
	case uint32:
		return Number(float64(x))
	case uint64:
		return Number(float64(x))
	case uintptr:
		return Number(float64(x))
	case float32:
		return Number(float64(x))
	case float64:
		return Number(x)
	}
	// Unreachable: Primitive is a closed constraint.
	return Null()
}

// ArrayOf converts a homogeneous slice into a JSON array, wrapping each
// element and preserving order.
func ArrayOf[T Primitive](elems []T) Value {
	arr := make([]Value, len(elems))
	for i, e := range elems {
		arr[i] = Of(e)
	}
	return Value{kind: KindArray, arr: arr}
}

// ObjectOf converts a string-keyed map into a JSON object, wrapping each
// value. Key uniqueness is inherited from the source map.
func ObjectOf[K ~string, V Primitive](m map[K]V) Value {
	obj := make(map[string]Value, len(m))
	for k, v := range m {
		obj[string(k)] = Of(v)
	}
	return Value{kind: KindObject, obj: obj}
}

// Kind reports which variant this Value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is JSON null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsBool returns the boolean payload, and whether the value is a boolean.
func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

// AsNumber returns the numeric payload, and whether the value is a number.
func (v Value) AsNumber() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// AsString returns the string payload, and whether the value is a string.
func (v Value) AsString() (string, bool) {
	return v.str, v.kind == KindString
}

// AsArray returns the element slice, and whether the value is an array.
// The slice is a read view into the tree and must not be mutated.
func (v Value) AsArray() ([]Value, bool) {
	return v.arr, v.kind == KindArray
}

// AsObject returns the member map, and whether the value is an object.
// The map is a read view into the tree and must not be mutated.
func (v Value) AsObject() (map[string]Value, bool) {
	return v.obj, v.kind == KindObject
}

// Keys returns the object's keys in sorted order, or nil for non-objects.
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports structural equality. Arrays compare element-wise in order;
// objects compare by key set and per-key values regardless of iteration
// order. Numbers compare with ordinary float equality, so a NaN Number is
// not equal to itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.num == o.num
	case KindString:
		return v.str == o.str
	case KindArray:
		if len(v.arr) != len(o.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(o.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, vv := range v.obj {
			ov, ok := o.obj[k]
			if !ok || !vv.Equal(ov) {
				return false
			}
		}
		return true
	}
	return false
}
