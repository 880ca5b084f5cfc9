// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import (
	"strconv"

	reflect "github.com/goccy/go-reflect"

	"go4.org/mem"
)

// A Type is the type tag of a parsed value.
type Type byte

// Constants defining the valid Type values.
const (
	Null    Type = iota // the null constant
	String              // a quoted string
	Number              // a number
	Boolean             // the constants true and false
	Object              // a nested object; the handler must recurse
	Array               // a nested array; the handler must recurse
)

var typeStr = [...]string{
	Null:    "null",
	String:  "string",
	Number:  "number",
	Boolean: "boolean",
	Object:  "object",
	Array:   "array",
}

func (t Type) String() string {
	if int(t) >= len(typeStr) {
		return "invalid"
	}
	return typeStr[t]
}

// A Value describes one field or element value delivered to a handler. It is
// a small copyable descriptor; for scalar types it carries a borrowed view of
// the decoded text, whose lifetime is tied to the context that produced it
// (or, for BufferContext, to the underlying input buffer).
//
// A Value of type Object or Array carries no payload: the handler that
// receives it must consume the nested structure before returning, either by
// calling ParseObject or ParseArray recursively on the same context, or by
// calling Ignore to discard it.
type Value struct {
	typ Type
	raw mem.RO
}

// NewValue constructs a Value with the given type tag and raw text. It is
// intended for testing custom Unmarshaler implementations; the parser
// constructs values internally.
func NewValue(typ Type, raw string) Value { return Value{typ: typ, raw: mem.S(raw)} }

// Type returns the type tag of v.
func (v Value) Type() Type { return v.typ }

// Raw returns a borrowed view of the raw decoded text of v: the decoded
// UTF-8 bytes for strings, the exact original digits for numbers, and the
// literal text for true, false, and null. It is empty for Object and Array.
func (v Value) Raw() mem.RO { return v.raw }

// Text returns a copy of the raw decoded text of v.
func (v Value) Text() string { return v.raw.StringCopy() }

// An Unmarshaler can convert a Value into itself. A target type passed to As
// that implements Unmarshaler on its pointer bypasses the built-in
// conversions, letting callers decode enumerations and other custom types
// directly from raw values.
type Unmarshaler interface {
	UnmarshalValue(v Value) error
}

// As converts v to the requested target type T.
//
// If *T implements Unmarshaler, the conversion is delegated to it. Otherwise
// the built-in conversions apply: String values convert to string-kinded
// types, Boolean values to bool-kinded types, and Number values to any
// arithmetic kind via an exact, locale-independent parse of the raw digits.
//
// A mismatch between the value type and T is reported as a *BadValueError;
// in particular any conversion of an Object or Array value fails, since the
// caller must recurse into those instead. A Number whose digits do not fit
// in T is reported as a *RangeError, distinct from a type mismatch.
func As[T any](v Value) (T, error) {
	var out T
	if u, ok := any(&out).(Unmarshaler); ok {
		if err := u.UnmarshalValue(v); err != nil {
			var zero T
			return zero, err
		}
		return out, nil
	}
	if err := convertValue(v, reflect.ValueOf(&out).Elem()); err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}

// AsOptional converts v to the target type T, treating Null as an absent
// value: it reports ok == false with a nil error if v is Null, and otherwise
// behaves exactly as As, with ok == true on success.
func AsOptional[T any](v Value) (out T, ok bool, err error) {
	if v.typ == Null {
		return out, false, nil
	}
	out, err = As[T](v)
	return out, err == nil, err
}

// convertValue applies the built-in conversions to store v into rv.
// Conversion dispatches on reflect kind rather than concrete type so that
// named types with arithmetic, string, or bool underlying types convert
// without needing an Unmarshaler.
func convertValue(v Value, rv reflect.Value) error {
	target := rv.Type().String()
	switch rv.Kind() {
	case reflect.String:
		if v.typ != String {
			return &BadValueError{Type: v.typ, Target: target}
		}
		rv.SetString(v.raw.StringCopy())

	case reflect.Bool:
		if v.typ != Boolean {
			return &BadValueError{Type: v.typ, Target: target}
		}
		rv.SetBool(v.raw.Len() > 0 && v.raw.At(0) == 't')

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.typ != Number {
			return &BadValueError{Type: v.typ, Target: target}
		}
		raw := v.raw.StringCopy()
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || rv.OverflowInt(n) {
			return &RangeError{Raw: raw, Target: target}
		}
		rv.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if v.typ != Number {
			return &BadValueError{Type: v.typ, Target: target}
		}
		raw := v.raw.StringCopy()
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || rv.OverflowUint(n) {
			return &RangeError{Raw: raw, Target: target}
		}
		rv.SetUint(n)

	case reflect.Float32, reflect.Float64:
		if v.typ != Number {
			return &BadValueError{Type: v.typ, Target: target}
		}
		bits := 64
		if rv.Kind() == reflect.Float32 {
			bits = 32
		}
		raw := v.raw.StringCopy()
		f, err := strconv.ParseFloat(raw, bits)
		if err != nil {
			return &RangeError{Raw: raw, Target: target}
		}
		rv.SetFloat(f)

	default:
		return &BadValueError{Type: v.typ, Target: target}
	}
	return nil
}
