// Package transform provides whole-tree rewrites of parsed JSON values.
package transform

import (
	"fmt"

	"github.com/iancoleman/strcase"

	"github.com/mcncl/jsonv/internal/errors"
	"github.com/mcncl/jsonv/internal/value"
)

// Style is a key naming convention.
type Style int

const (
	Snake Style = iota
	Camel
	LowerCamel
	Kebab
	ScreamingSnake
)

// Styles lists the accepted style names, in the spelling ParseStyle expects.
var Styles = []string{"snake", "camel", "lower-camel", "kebab", "screaming-snake"}

// ParseStyle resolves a style name from config or the command line.
func ParseStyle(s string) (Style, error) {
	switch s {
	case "snake":
		return Snake, nil
	case "camel":
		return Camel, nil
	case "lower-camel":
		return LowerCamel, nil
	case "kebab":
		return Kebab, nil
	case "screaming-snake":
		return ScreamingSnake, nil
	}
	return 0, fmt.Errorf("%w: %q", errors.ErrUnknownStyle, s)
}

// String returns the canonical name of the style.
func (s Style) String() string {
	switch s {
	case Snake:
		return "snake"
	case Camel:
		return "camel"
	case LowerCamel:
		return "lower-camel"
	case Kebab:
		return "kebab"
	case ScreamingSnake:
		return "screaming-snake"
	}
	return "unknown"
}

func (s Style) apply(key string) string {
	switch s {
	case Snake:
		return strcase.ToSnake(key)
	case Camel:
		return strcase.ToCamel(key)
	case LowerCamel:
		return strcase.ToLowerCamel(key)
	case Kebab:
		return strcase.ToKebab(key)
	case ScreamingSnake:
		return strcase.ToScreamingSnake(key)
	}
	return key
}

// RenameKeys returns a copy of v in which every object key, at every
// depth, is converted to the given style. Values are left untouched and
// array order is preserved. If two keys collide after renaming, one of
// them wins, same policy as duplicate keys during parsing.
func RenameKeys(v value.Value, style Style) value.Value {
	switch v.Kind() {
	case value.KindObject:
		members, _ := v.AsObject()
		renamed := make(map[string]value.Value, len(members))
		for k, child := range members {
			renamed[style.apply(k)] = RenameKeys(child, style)
		}
		return value.Object(renamed)
	case value.KindArray:
		elems, _ := v.AsArray()
		mapped := make([]value.Value, len(elems))
		for i, el := range elems {
			mapped[i] = RenameKeys(el, style)
		}
		return value.Array(mapped...)
	default:
		return v
	}
}
