// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package minjson implements a streaming, allocation-minimizing JSON parser.
//
// The parser converts a sequence of bytes into a series of callback
// invocations describing object fields and array elements, without building
// an in-memory document tree.
//
// # Contexts
//
// A parse is driven through a Context, which owns the raw input and the
// storage where decoded literals are staged. Three implementations are
// provided, differing only in storage strategy:
//
//	Context            | Input          | Allocation
//	------------------ | -------------- | ------------------------------
//	BufferContext      | mutable []byte | none (decodes in place)
//	ConstBufferContext | mem.RO         | one scratch buffer, at creation
//	ReaderContext      | io.Reader      | one buffer per literal
//
// A Context supports exactly one parse at a time, and must not be reused
// after a parse error.
//
// # Parsing
//
// Call ParseObject or ParseArray with a context and a handler. The handler
// is invoked once per field or element with a Value describing it:
//
//	c := minjson.NewBufferContext(data)
//	_, err := minjson.ParseObject(c, func(name mem.RO, v minjson.Value) error {
//	   log.Printf("field %q has type %v", name.StringCopy(), v.Type())
//	   return minjson.Ignore(c) // drain nested values, if any
//	})
//
// When a value has type Object or Array, its contents have not been parsed
// yet: the handler must call ParseObject or ParseArray recursively on the
// same context, or Ignore to discard the nested structure, before returning.
// A handler that skips this obligation causes the parse to fail with
// NestedValueNotParsed.
//
// Both entry points report the number of bytes consumed, so successive
// documents can be parsed off a single ReaderContext.
//
// # Values
//
// A Value carries a type tag and a borrowed view of the raw decoded text.
// Convert it on demand with the generic accessor:
//
//	n, err := minjson.As[int64](v)         // fails on non-Number values
//	s, err := minjson.As[string](v)        // fails on non-String values
//	f, ok, err := minjson.AsOptional[float64](v) // ok == false for null
//
// Conversions of custom types can be hooked by implementing Unmarshaler.
//
// # Errors
//
// Malformed input is reported as a *ParseError carrying a Reason and an
// approximate byte offset. Misuse of the typed accessor is reported as a
// *BadValueError, and numeric overflow as a *RangeError; neither indicates
// malformed input.
package minjson
