// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import (
	"go4.org/mem"

	"github.com/creachadair/minjson/internal/encoding"
)

// readString consumes a quoted string from c, whose opening quote has already
// been consumed by the caller, and stages the decoded bytes into the current
// literal. Escape sequences are expanded, and \u escapes (including surrogate
// pairs) are converted to UTF-8. The returned view excludes the closing
// quote.
//
// The caller is responsible for calling c.BeginLiteral first.
func readString(c Context) mem.RO {
	const (
		strCharacter = iota
		strEscape
		strUTF16
		strClosed
	)

	state := strCharacter
	var utf16Seq [4]byte
	var utf16Len int
	var highSurrogate uint16

	for state != strClosed {
		b := c.Read()
		if b == 0 {
			fail(c, UnterminatedValue)
		}

		switch state {
		case strCharacter:
			switch {
			case b == '\\':
				state = strEscape
			case highSurrogate != 0:
				// Only a further \u escape may follow a high surrogate.
				fail(c, ExpectedLowSurrogate)
			case b == '"':
				state = strClosed
			default:
				c.Write(b)
			}

		case strEscape:
			state = strCharacter
			switch b {
			case '"':
				c.Write('"')
			case '\\':
				c.Write('\\')
			case '/':
				c.Write('/')
			case 'b':
				c.Write('\b')
			case 'f':
				c.Write('\f')
			case 'n':
				c.Write('\n')
			case 'r':
				c.Write('\r')
			case 't':
				c.Write('\t')
			case 'u':
				state = strUTF16
			default:
				fail(c, InvalidEscapeSequence)
			}

		case strUTF16:
			if !isHexDigit(b) {
				fail(c, InvalidEscapeSequence)
			}
			utf16Seq[utf16Len] = b
			utf16Len++
			if utf16Len == len(utf16Seq) {
				unit := decodeHex4(utf16Seq)
				switch {
				case unit == 0 && highSurrogate == 0:
					fail(c, NullUTF16)
				case highSurrogate != 0:
					// We were waiting for the low surrogate, which is unit.
					writeUTF16(c, highSurrogate, unit)
					highSurrogate = 0
				case unit >= 0xD800 && unit <= 0xDBFF:
					highSurrogate = unit
				default:
					writeUTF16(c, unit, 0)
				}
				utf16Len = 0
				state = strCharacter
			}

		default:
			panic("minjson: invalid string decoder state; please file a bug report")
		}
	}

	return c.Literal()
}

// writeUTF16 combines a UTF-16 code unit pair, re-encodes it as UTF-8, and
// appends the bytes to the current literal of c. Codec errors surface as
// InvalidUTF16 parse faults; the internal encoding error never escapes.
func writeUTF16(c Context, high, low uint16) {
	buf, n, err := encoding.UTF16ToUTF8(high, low)
	if err != nil {
		fail(c, InvalidUTF16)
	}
	for i := 0; i < n; i++ {
		c.Write(buf[i])
	}
}

// decodeHex4 converts four hex digits to a UTF-16 code unit.
// The digits have already been validated.
func decodeHex4(seq [4]byte) uint16 {
	var v uint16
	for _, b := range seq {
		v <<= 4
		switch {
		case b >= '0' && b <= '9':
			v += uint16(b - '0')
		case b >= 'a' && b <= 'f':
			v += uint16(b-'a') + 10
		default:
			v += uint16(b-'A') + 10
		}
	}
	return v
}
