// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

// Character classification for the JSON grammar.

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

func isHexDigit(b byte) bool {
	return isDigit(b) || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}

// isTerminator reports whether b ends an unquoted value. The terminator is
// not part of the value and is handed back to the structural parser.
func isTerminator(b byte) bool {
	return b == ',' || b == '}' || b == ']' || isSpace(b)
}
