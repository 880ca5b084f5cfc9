// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

// Package encoding converts UTF-16 escape code units to UTF-8.
//
// The conversions here implement the transformation needed for JSON \uXXXX
// escape sequences: a pair of UTF-16 code units (possibly a surrogate pair)
// becomes a single UTF-32 code point, which is then encoded as UTF-8 bytes.
//
// Errors reported by this package must not escape the parser's public
// boundary; the string decoder translates them into parse faults.
package encoding

import "errors"

// ErrEncoding is reported for any malformed UTF-16 or UTF-32 input.
var ErrEncoding = errors.New("invalid character encoding")

// UTF16ToUTF32 combines two UTF-16 code units into a UTF-32 code point.
//
// If high is not a high surrogate, low must be zero and the result is high
// itself. If high is a high surrogate, low must be a low surrogate and the
// result is the code point the pair denotes.
func UTF16ToUTF32(high, low uint16) (uint32, error) {
	if high <= 0xD7FF || high >= 0xE000 {
		if low != 0 {
			// The high code unit is not a surrogate, so the low code unit
			// must be zero.
			return 0, ErrEncoding
		}
		return uint32(high), nil
	}
	if high > 0xDBFF {
		// We already know high >= 0xD800, so this is an unpaired low
		// surrogate in the high position.
		return 0, ErrEncoding
	}
	if low < 0xDC00 || low > 0xDFFF {
		return 0, ErrEncoding
	}
	return 0x10000 + (uint32(high-0xD800)<<10 | uint32(low-0xDC00)), nil
}

// EncodeUTF32 encodes a UTF-32 code point as UTF-8, returning the encoded
// bytes and their count (1 to 4).
//
// Code points above 0x1FFFFF are rejected. This is the ceiling of the 4-byte
// UTF-8 range, not the Unicode ceiling 0x10FFFF, so some code points with no
// assigned character still encode.
func EncodeUTF32(cp uint32) (buf [4]byte, n int, err error) {
	switch {
	case cp <= 0x00007F:
		buf[0] = byte(cp)
		n = 1
	case cp <= 0x0007FF:
		buf[0] = 0xC0 | byte(cp>>6)
		buf[1] = 0x80 | byte(cp&0x3F)
		n = 2
	case cp <= 0x00FFFF:
		buf[0] = 0xE0 | byte(cp>>12)
		buf[1] = 0x80 | byte((cp>>6)&0x3F)
		buf[2] = 0x80 | byte(cp&0x3F)
		n = 3
	case cp <= 0x1FFFFF:
		buf[0] = 0xF0 | byte(cp>>18)
		buf[1] = 0x80 | byte((cp>>12)&0x3F)
		buf[2] = 0x80 | byte((cp>>6)&0x3F)
		buf[3] = 0x80 | byte(cp&0x3F)
		n = 4
	default:
		err = ErrEncoding
	}
	return
}

// UTF16ToUTF8 combines two UTF-16 code units and encodes the result as UTF-8.
func UTF16ToUTF8(high, low uint16) ([4]byte, int, error) {
	cp, err := UTF16ToUTF32(high, low)
	if err != nil {
		return [4]byte{}, 0, err
	}
	return EncodeUTF32(cp)
}
