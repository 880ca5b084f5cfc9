// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

// readUnquoted consumes an unquoted literal (true, false, null, or a number)
// from c, whose first byte has already been read by the caller. It stages the
// raw bytes into a new literal and returns the tagged value along with the
// byte that terminated the literal, which the structural parser must process
// instead of reading a fresh one.
//
// Numbers are validated for shape only; conversion is deferred to As, so the
// same raw digits can serve multiple target types without re-parsing.
func readUnquoted(c Context, first byte) (Value, byte) {
	c.BeginLiteral()
	switch first {
	case 't':
		return readKeyword(c, first, "true", Boolean)
	case 'f':
		return readKeyword(c, first, "false", Boolean)
	case 'n':
		return readKeyword(c, first, "null", Null)
	default:
		return readNumber(c, first)
	}
}

// readKeyword greedily matches the remainder of word byte for byte, then
// requires a value terminator.
func readKeyword(c Context, first byte, word string, typ Type) (Value, byte) {
	c.Write(first)
	for i := 1; i < len(word); i++ {
		b := c.Read()
		if b == 0 {
			fail(c, UnterminatedValue)
		} else if b != word[i] {
			fail(c, InvalidValue)
		}
		c.Write(b)
	}
	b := c.Read()
	if b == 0 {
		fail(c, UnterminatedValue)
	} else if !isTerminator(b) {
		fail(c, InvalidValue)
	}
	return Value{typ: typ, raw: c.Literal()}, b
}

// Number grammar states. The grammar is: an optional leading minus; either a
// bare zero or a nonzero digit followed by any digits; an optional fraction
// with at least one digit; an optional exponent with an optional sign and at
// least one digit.
const (
	numBegin = iota
	numSign
	numZero
	numInt
	numDot
	numFrac
	numExp
	numExpSign
	numExpDigit
)

// readNumber validates a number via an explicit state machine over its
// bytes, staging the raw digits without converting them.
func readNumber(c Context, first byte) (Value, byte) {
	state := numBegin
	b := first
	for {
		if isTerminator(b) {
			switch state {
			case numZero, numInt, numFrac, numExpDigit:
				return Value{typ: Number, raw: c.Literal()}, b
			default:
				// The terminator arrived mid-number, e.g. "8." or "1e".
				fail(c, InvalidValue)
			}
		}

		switch state {
		case numBegin:
			switch {
			case b == '-':
				state = numSign
			case b == '0':
				state = numZero
			case b >= '1' && b <= '9':
				state = numInt
			default:
				fail(c, InvalidValue)
			}
		case numSign:
			switch {
			case b == '0':
				state = numZero
			case b >= '1' && b <= '9':
				state = numInt
			default:
				fail(c, InvalidValue)
			}
		case numZero:
			// A leading zero admits no further digits.
			switch b {
			case '.':
				state = numDot
			case 'e', 'E':
				state = numExp
			default:
				fail(c, InvalidValue)
			}
		case numInt:
			switch {
			case isDigit(b):
			case b == '.':
				state = numDot
			case b == 'e' || b == 'E':
				state = numExp
			default:
				fail(c, InvalidValue)
			}
		case numDot:
			if !isDigit(b) {
				fail(c, InvalidValue)
			}
			state = numFrac
		case numFrac:
			switch {
			case isDigit(b):
			case b == 'e' || b == 'E':
				state = numExp
			default:
				fail(c, InvalidValue)
			}
		case numExp:
			switch {
			case b == '+' || b == '-':
				state = numExpSign
			case isDigit(b):
				state = numExpDigit
			default:
				fail(c, InvalidValue)
			}
		case numExpSign:
			if !isDigit(b) {
				fail(c, InvalidValue)
			}
			state = numExpDigit
		case numExpDigit:
			if !isDigit(b) {
				fail(c, InvalidValue)
			}
		}

		c.Write(b)
		b = c.Read()
		if b == 0 {
			fail(c, UnterminatedValue)
		}
	}
}
