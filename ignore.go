// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import "go4.org/mem"

// Ignore drains the nested object or array the context is positioned at,
// discarding its contents without producing callbacks. It is the correct way
// for a handler to consume a nested value it does not care about. Arbitrarily
// deep subtrees are drained recursively, subject to the same nesting limit as
// ordinary parsing.
//
// If the context is not positioned at a nested structure, Ignore does
// nothing.
func Ignore(c Context) (err error) {
	defer recoverParseError(&err)
	ignoreNested(c)
	return nil
}

// ignoreNested recursively consumes a pending nested structure with handlers
// that do nothing but drain further nested structures of their own.
func ignoreNested(c Context) {
	switch c.NestedStatus() {
	case NestedObject:
		parseObject(c, func(mem.RO, Value) error {
			ignoreNested(c)
			return nil
		})
	case NestedArray:
		parseArray(c, func(Value) error {
			ignoreNested(c)
			return nil
		})
	}
}
