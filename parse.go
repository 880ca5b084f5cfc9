// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import "go4.org/mem"

// A FieldHandler receives one object field per invocation, in document order.
// Duplicate names are delivered as separate invocations, not merged. The name
// view and any view borrowed from the value are only valid for the lifetime
// of the context (or of the input buffer, for BufferContext).
//
// If the value is of type Object or Array, the handler must consume the
// nested structure before returning, by calling ParseObject or ParseArray
// recursively on the same context, or Ignore to discard it. A handler that
// returns without doing so causes the next parse step to fail with
// NestedValueNotParsed.
//
// If the handler returns an error, the parse stops immediately and that
// error is returned to the caller.
type FieldHandler func(name mem.RO, v Value) error

// An ElementHandler receives one array element per invocation, in document
// order. The rules for nested values and errors are the same as for
// FieldHandler.
type ElementHandler func(v Value) error

// ParseObject parses one object from c and invokes h once per field. It
// reports the number of input bytes consumed, which is valid even on error
// and can be used to chain multiple documents from the same context.
//
// A syntax fault is returned as a *ParseError. An error returned by h is
// returned unchanged.
func ParseObject(c Context, h FieldHandler) (n int, err error) {
	start := c.ReadOffset()
	defer func() { n = c.ReadOffset() - start }()
	defer recoverParseError(&err)
	parseObject(c, h)
	return 0, nil
}

// ParseArray parses one array from c and invokes h once per element. Its
// contract is otherwise identical to ParseObject.
func ParseArray(c Context, h ElementHandler) (n int, err error) {
	start := c.ReadOffset()
	defer func() { n = c.ReadOffset() - start }()
	defer recoverParseError(&err)
	parseArray(c, h)
	return 0, nil
}

// handlerError wraps an error returned by a caller-supplied handler so the
// recovery path can distinguish it from a parse fault.
type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// recoverParseError converts a panicking parse fault or handler error into
// the return value of a public entry point. Any other panic is a library
// defect and is re-raised.
func recoverParseError(errp *error) {
	if p := recover(); p != nil {
		switch e := p.(type) {
		case *ParseError:
			*errp = e
		case handlerError:
			*errp = e.error
		default:
			panic(p)
		}
	}
}

// checkHandler re-raises a handler-reported error as a panic, unwinding the
// parse in progress.
func checkHandler(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

// parseInit determines the first byte to process for a structural parse.
// If the context reports that the opening bracket of this structure was
// already consumed by the enclosing value reader, that bracket is replayed;
// otherwise the parser must read it from the input.
func parseInit(c Context) (b byte, mustRead bool) {
	switch c.NestedStatus() {
	case NestedObject:
		return '{', false
	case NestedArray:
		return '[', false
	}
	return 0, true
}

// checkNestingLimit faults if the parse is already nested too deeply to
// begin another structure.
func checkNestingLimit(c Context, level int) {
	if level > c.NestingLimit() {
		fail(c, ExceededNestingLimit)
	}
}

// Object grammar states.
const (
	objOpeningBracket = iota
	objNameOrClosingBracket // in case the object is empty
	objName
	objColon
	objValue
	objCommaOrClosingBracket
	objEnd
)

func parseObject(c Context, h FieldHandler) {
	level := c.NestingLevel()
	checkNestingLimit(c, level)

	b, mustRead := parseInit(c)
	c.ResetNestedStatus()

	state := objOpeningBracket
	var name mem.RO

	for state != objEnd {
		// The depth must match the depth captured at entry: a mismatch means
		// the handler returned without parsing a nested value, or recursed
		// past it.
		if c.NestingLevel() != level {
			fail(c, NestedValueNotParsed)
		}

		if mustRead {
			b = c.Read()
		}
		mustRead = true

		if isSpace(b) {
			continue
		}

		switch state {
		case objOpeningBracket:
			if b != '{' {
				fail(c, ExpectedOpeningBracket)
			}
			state = objNameOrClosingBracket

		case objNameOrClosingBracket:
			if b == '}' {
				state = objEnd
				break
			}
			fallthrough

		case objName:
			if b != '"' {
				fail(c, ExpectedOpeningQuote)
			}
			c.BeginLiteral()
			name = readString(c)
			state = objColon

		case objColon:
			if b != ':' {
				fail(c, ExpectedColon)
			}
			state = objValue

		case objValue:
			var v Value
			v, b, mustRead = readValue(c, b)
			checkHandler(h(name, v))
			state = objCommaOrClosingBracket

		case objCommaOrClosingBracket:
			switch b {
			case ',':
				state = objName
			case '}':
				state = objEnd
			default:
				fail(c, ExpectedCommaOrClosingBracket)
			}

		default:
			panic("minjson: invalid object parser state; please file a bug report")
		}
	}

	c.EndNested()
}

// Array grammar states.
const (
	aryOpeningBracket = iota
	aryValueOrClosingBracket // in case the array is empty
	aryValue
	aryCommaOrClosingBracket
	aryEnd
)

func parseArray(c Context, h ElementHandler) {
	level := c.NestingLevel()
	checkNestingLimit(c, level)

	b, mustRead := parseInit(c)
	c.ResetNestedStatus()

	state := aryOpeningBracket

	for state != aryEnd {
		if c.NestingLevel() != level {
			fail(c, NestedValueNotParsed)
		}

		if mustRead {
			b = c.Read()
		}
		mustRead = true

		if isSpace(b) {
			continue
		}

		switch state {
		case aryOpeningBracket:
			if b != '[' {
				fail(c, ExpectedOpeningBracket)
			}
			state = aryValueOrClosingBracket

		case aryValueOrClosingBracket:
			if b == ']' {
				state = aryEnd
				break
			}
			fallthrough

		case aryValue:
			var v Value
			v, b, mustRead = readValue(c, b)
			checkHandler(h(v))
			state = aryCommaOrClosingBracket

		case aryCommaOrClosingBracket:
			switch b {
			case ',':
				state = aryValue
			case ']':
				state = aryEnd
			default:
				fail(c, ExpectedCommaOrClosingBracket)
			}

		default:
			panic("minjson: invalid array parser state; please file a bug report")
		}
	}

	c.EndNested()
}

// readValue dispatches on the lookahead byte b at a value position.
//
// For a nested object or array, the nesting counter is incremented and an
// empty Object or Array value returned; the parse of the nested structure is
// deferred to the handler. For scalar values the appropriate decoder runs to
// completion. The returned next byte and mustRead flag carry forward a
// terminator already consumed by the unquoted decoder so the structural
// parser does not re-read it.
func readValue(c Context, b byte) (v Value, next byte, mustRead bool) {
	switch b {
	case '{':
		c.BeginNested(NestedObject)
		return Value{typ: Object}, 0, true
	case '[':
		c.BeginNested(NestedArray)
		return Value{typ: Array}, 0, true
	case '"':
		c.BeginLiteral()
		return Value{typ: String, raw: readString(c)}, 0, true
	case ',', '}', ']':
		fail(c, ExpectedValue)
	case 0:
		fail(c, UnterminatedValue)
	}
	v, term := readUnquoted(c, b)
	return v, term, false
}
