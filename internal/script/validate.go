package script

import (
	"fmt"
	"reflect"
	"strconv"

	"mdrun/internal/document"
)

// InvalidValueError reports a fragment result whose shape is disallowed for
// the fragment's level. It carries the offending raw value for diagnostics.
type InvalidValueError struct {
	Level Level
	Value any
}

func (e *InvalidValueError) Error() string {
	if e.Level == LevelInline {
		return fmt.Sprintf("inline fragments must return an inline node, a list of inline nodes, a number or a string; got %T", e.Value)
	}
	return fmt.Sprintf("block fragments must return a block node, a list of block nodes or nothing; got %T", e.Value)
}

// NormalizeBlocks validates a raw execution result at block level. A nil
// result normalizes to an empty list: at block level "nothing returned" means
// the fragment is to be deleted.
func NormalizeBlocks(rv reflect.Value) ([]document.Block, *InvalidValueError) {
	rv = unwrap(rv)
	if isNil(rv) {
		return []document.Block{}, nil
	}
	if b, ok := rv.Interface().(document.Block); ok {
		return []document.Block{b}, nil
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]document.Block, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev := unwrap(rv.Index(i))
			if isNil(ev) {
				return nil, &InvalidValueError{Level: LevelBlock, Value: rv.Interface()}
			}
			b, ok := ev.Interface().(document.Block)
			if !ok {
				return nil, &InvalidValueError{Level: LevelBlock, Value: rv.Interface()}
			}
			out = append(out, b)
		}
		return out, nil
	}
	return nil, &InvalidValueError{Level: LevelBlock, Value: rv.Interface()}
}

// NormalizeInlines validates a raw execution result at inline level. Numbers
// and strings are wrapped as a single text node; a nil result is invalid, an
// inline fragment with no value usually indicates a bug and must warn rather
// than silently vanish.
func NormalizeInlines(rv reflect.Value) ([]document.Inline, *InvalidValueError) {
	rv = unwrap(rv)
	if isNil(rv) {
		return nil, &InvalidValueError{Level: LevelInline, Value: nil}
	}
	if s, ok := scalarString(rv); ok {
		return []document.Inline{document.Str(s)}, nil
	}
	if in, ok := rv.Interface().(document.Inline); ok {
		return []document.Inline{in}, nil
	}
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		out := make([]document.Inline, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev := unwrap(rv.Index(i))
			if isNil(ev) {
				return nil, &InvalidValueError{Level: LevelInline, Value: rv.Interface()}
			}
			in, ok := ev.Interface().(document.Inline)
			if !ok {
				return nil, &InvalidValueError{Level: LevelInline, Value: rv.Interface()}
			}
			out = append(out, in)
		}
		return out, nil
	}
	return nil, &InvalidValueError{Level: LevelInline, Value: rv.Interface()}
}

// unwrap strips interface wrapping so the dynamic value is classified.
func unwrap(rv reflect.Value) reflect.Value {
	for rv.IsValid() && rv.Kind() == reflect.Interface && !rv.IsNil() {
		rv = rv.Elem()
	}
	return rv
}

func isNil(rv reflect.Value) bool {
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Interface, reflect.Ptr, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// scalarString renders a numeric or string value the way it is substituted
// into the document.
func scalarString(rv reflect.Value) (string, bool) {
	switch rv.Kind() {
	case reflect.String:
		return rv.String(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10), true
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32), true
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64), true
	}
	return "", false
}
