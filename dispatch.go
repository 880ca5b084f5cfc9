// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import "go4.org/mem"

// A Rule pairs a field name with an action, for use with Dispatch.
type Rule struct {
	name mem.RO
	any  bool
	do   func() error
}

// On returns a Rule whose action runs when the dispatched field name equals
// name.
func On(name string, do func() error) Rule { return Rule{name: mem.S(name), do: do} }

// Otherwise returns a Rule whose action runs for any field name. Place it
// last to handle (or ignore) fields not matched by any earlier rule.
func Otherwise(do func() error) Rule { return Rule{any: true, do: do} }

// Dispatch runs the action of the first rule matching name, returning
// whatever the action returns. If no rule matches, Dispatch does nothing and
// returns nil. It is convenience sugar for the body of a FieldHandler:
//
//	minjson.ParseObject(c, func(name mem.RO, v minjson.Value) error {
//	   return minjson.Dispatch(name,
//	      minjson.On("id", func() error { ... }),
//	      minjson.On("name", func() error { ... }),
//	      minjson.Otherwise(func() error { return minjson.Ignore(c) }),
//	   )
//	})
func Dispatch(name mem.RO, rules ...Rule) error {
	for _, r := range rules {
		if r.any || name.Equal(r.name) {
			return r.do()
		}
	}
	return nil
}
