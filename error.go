// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import "fmt"

// A Reason classifies a parse fault.
type Reason byte

// Constants defining the valid Reason values.
const (
	UnknownError                  Reason = iota // unknown parse error
	ExpectedOpeningQuote                        // missing opening quote of a string or field name
	ExpectedLowSurrogate                        // high surrogate escape without a low surrogate
	InvalidEscapeSequence                       // malformed \-escape in a string
	InvalidUTF16                                // malformed UTF-16 escape sequence
	NullUTF16                                   // \u0000 escape
	InvalidValue                                // malformed keyword or number
	ExpectedValue                               // value position with no value
	UnterminatedValue                           // end of input inside a value
	ExpectedOpeningBracket                      // missing "{" or "["
	ExpectedColon                               // missing ":" after a field name
	ExpectedCommaOrClosingBracket               // missing "," or closing bracket
	NestedValueNotParsed                        // handler did not recurse into a nested value
	ExceededNestingLimit                        // structure nested too deeply
)

var reasonStr = [...]string{
	UnknownError:                  "unknown parse error",
	ExpectedOpeningQuote:          "expected opening quote",
	ExpectedLowSurrogate:          "expected UTF-16 low surrogate",
	InvalidEscapeSequence:         "invalid escape sequence",
	InvalidUTF16:                  "invalid UTF-16 character",
	NullUTF16:                     "null UTF-16 character",
	InvalidValue:                  "invalid value",
	ExpectedValue:                 "expected a value",
	UnterminatedValue:             "unterminated value",
	ExpectedOpeningBracket:        "expected opening bracket",
	ExpectedColon:                 "expected colon",
	ExpectedCommaOrClosingBracket: "expected comma or closing bracket",
	NestedValueNotParsed:          "nested object or array not parsed",
	ExceededNestingLimit:          "exceeded nesting limit",
}

func (r Reason) String() string {
	if int(r) >= len(reasonStr) {
		return reasonStr[UnknownError]
	}
	return reasonStr[r]
}

// A ParseError is the concrete type of all errors reported for malformed
// input. Any fault aborts the whole parse; the parser does not recover or
// substitute default values.
type ParseError struct {
	Reason Reason // why the parse failed
	Offset int    // approximate byte offset of the fault (best-effort)
}

// Error satisfies the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%v (near offset %d)", e.Reason, e.Offset)
}

// parseFault constructs a ParseError attributed to the current read position
// of c. The offset points at the most recently consumed byte when one exists;
// it is best-effort only and may be out of bounds for truncated input.
func parseFault(c Context, reason Reason) *ParseError {
	off := c.ReadOffset()
	if off > 0 {
		off--
	}
	return &ParseError{Reason: reason, Offset: off}
}

// fail aborts the parse with a fault at the current position of c.
// The panic is recovered by the public entry points.
func fail(c Context, reason Reason) {
	panic(parseFault(c, reason))
}

// A BadValueError reports misuse of the typed value accessor, such as
// requesting a bool from a String value. It reflects a caller error, not
// malformed input, and is therefore distinct from ParseError.
type BadValueError struct {
	Type   Type   // the actual type of the value
	Target string // the requested target type
}

// Error satisfies the error interface.
func (e *BadValueError) Error() string {
	if e.Type == Object || e.Type == Array {
		return fmt.Sprintf("cannot access %v value as %s; recurse with ParseObject, ParseArray, or Ignore", e.Type, e.Target)
	}
	return fmt.Sprintf("cannot access %v value as %s", e.Type, e.Target)
}

// A RangeError reports that a numeric value is syntactically valid but out of
// the representable range of the requested target type.
type RangeError struct {
	Raw    string // the raw text of the number
	Target string // the requested target type
}

// Error satisfies the error interface.
func (e *RangeError) Error() string {
	return fmt.Sprintf("number %q out of range for %s", e.Raw, e.Target)
}
