// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/minjson"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

// A testHandler records a transcript of the fields and elements delivered to
// it, recursing into nested structures as the parser requires.
type testHandler struct {
	c   minjson.Context
	buf bytes.Buffer
}

func newTestHandler(c minjson.Context) *testHandler { return &testHandler{c: c} }

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) Field(name mem.RO, v minjson.Value) error {
	t.pr("Field <%s> %v <%s>", name.StringCopy(), v.Type(), v.Text())
	return t.recurse(v)
}

func (t *testHandler) Element(v minjson.Value) error {
	t.pr("Element %v <%s>", v.Type(), v.Text())
	return t.recurse(v)
}

func (t *testHandler) recurse(v minjson.Value) error {
	switch v.Type() {
	case minjson.Object:
		if _, err := minjson.ParseObject(t.c, t.Field); err != nil {
			return err
		}
		t.pr("End object")
	case minjson.Array:
		if _, err := minjson.ParseArray(t.c, t.Element); err != nil {
			return err
		}
		t.pr("End array")
	}
	return nil
}

// parseInput parses input with a testHandler over a ConstBufferContext,
// choosing ParseObject or ParseArray from the first non-space byte.
func parseInput(input string) (string, error) {
	c := minjson.NewConstBufferContext(mem.S(input))
	th := newTestHandler(c)
	var err error
	if b := firstByte(input); b == '[' {
		_, err = minjson.ParseArray(c, th.Element)
	} else {
		_, err = minjson.ParseObject(c, th.Field)
	}
	return th.output(), err
}

func firstByte(s string) byte {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' && s[i] != '\r' && s[i] != '\n' {
			return s[i]
		}
	}
	return 0
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`{}`, ""},
		{` { } `, ""},
		{`[]`, ""},
		{"\t[\r\n]\n", ""},

		{`{"a":15}`, `Field <a> number <15>`},
		{`{ "a" : 15 }`, `Field <a> number <15>`},

		{`{"s":"hello","t":true,"f":false,"n":null,"x":-0.5e2}`, `
Field <s> string <hello>
Field <t> boolean <true>
Field <f> boolean <false>
Field <n> null <null>
Field <x> number <-0.5e2>`},

		{`[1, "two", null, false]`, `
Element number <1>
Element string <two>
Element null <null>
Element boolean <false>`},

		// The end-to-end example: the string value decodes to a literal tab.
		{`{"a":1,"b":[true,null],"c":"x\ty"}`, `
Field <a> number <1>
Field <b> array <>
Element boolean <true>
Element null <null>
End array
Field <c> string <x` + "\t" + `y>`},

		// Duplicate names are delivered as separate invocations.
		{`{"a":1,"a":2}`, `
Field <a> number <1>
Field <a> number <2>`},

		// Nested structures of mixed kinds.
		{`{"o":{"i":{"x":[{}]}}}`, `
Field <o> object <>
Field <i> object <>
Field <x> array <>
Element object <>
End object
End array
End object
End object`},

		// Empty strings and keys.
		{`{"":""}`, `Field <> string <>`},

		// Escape sequences decode to their single-byte expansions.
		{`["\"\\\/\b\f\n\r\t"]`, "Element string <\"\\/\b\f\n\r\t>"},

		// Unicode escapes, including surrogate pairs.
		{`["\u0041\u00e9\u4e16"]`, "Element string <Aé世>"},
		{`["\ud800\udc00"]`, "Element string <\U00010000>"},
		{`["\udbff\udfff"]`, "Element string <\U0010FFFF>"},
	}

	for _, test := range tests {
		got, err := parseInput(test.input)
		if err != nil {
			t.Errorf("Input: %#q\nParse failed: %v", test.input, err)
			continue
		}
		if diff := diffStrings(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input string
		want  minjson.Reason
	}{
		// Structural violations.
		{``, minjson.ExpectedOpeningBracket},
		{`x`, minjson.ExpectedOpeningBracket},
		{`}`, minjson.ExpectedOpeningBracket},
		{`{x:1}`, minjson.ExpectedOpeningQuote},
		{`{"a" 1}`, minjson.ExpectedColon},
		{`{"a":1 "b":2}`, minjson.ExpectedCommaOrClosingBracket},
		{`{"a":1]`, minjson.ExpectedCommaOrClosingBracket},
		{`["a" "b"]`, minjson.ExpectedCommaOrClosingBracket},
		{`{"a":1`, minjson.UnterminatedValue},
		{`{"a":"b"`, minjson.ExpectedCommaOrClosingBracket},
		{`{`, minjson.ExpectedOpeningQuote},
		{`[`, minjson.UnterminatedValue},

		// Missing values.
		{`{"a":}`, minjson.ExpectedValue},
		{`{"a":,}`, minjson.ExpectedValue},
		{`[1,]`, minjson.ExpectedValue},
		{`[,1]`, minjson.ExpectedValue},

		// Malformed keywords.
		{`[tru]`, minjson.InvalidValue},
		{`[truthy]`, minjson.InvalidValue},
		{`[nullx]`, minjson.InvalidValue},
		{`[fals`, minjson.UnterminatedValue},
		{`[true`, minjson.UnterminatedValue},

		// Malformed numbers.
		{`[8.]`, minjson.InvalidValue},
		{`[8..2]`, minjson.InvalidValue},
		{`[8.2e]`, minjson.InvalidValue},
		{`[.2]`, minjson.InvalidValue},
		{`[01]`, minjson.InvalidValue},
		{`[+1]`, minjson.InvalidValue},
		{`[- 1]`, minjson.InvalidValue},
		{`[NaN]`, minjson.InvalidValue},
		{`[1e+]`, minjson.InvalidValue},
		{`[-]`, minjson.InvalidValue},
		{`[12`, minjson.UnterminatedValue},

		// Malformed strings.
		{`["abc`, minjson.UnterminatedValue},
		{`["a\`, minjson.UnterminatedValue},
		{`["\q"]`, minjson.InvalidEscapeSequence},
		{`["\u12g4"]`, minjson.InvalidEscapeSequence},
		{`["\u0000"]`, minjson.NullUTF16},
		{`["\ud800"]`, minjson.ExpectedLowSurrogate},
		{`["\ud800x"]`, minjson.ExpectedLowSurrogate},
		{`["\ud800\ud800"]`, minjson.InvalidUTF16},
		{`["\udc00"]`, minjson.InvalidUTF16},
	}

	for _, test := range tests {
		_, err := parseInput(test.input)
		if err == nil {
			t.Errorf("Input: %#q: parse did not report an error", test.input)
			continue
		}
		var pe *minjson.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Input: %#q: got error %v, want *ParseError", test.input, err)
		} else if pe.Reason != test.want {
			t.Errorf("Input: %#q: got reason %v, want %v", test.input, pe.Reason, test.want)
		}
	}
}

func TestParseErrorOffset(t *testing.T) {
	_, err := parseInput(`{"a":1,"b":!}`)
	var pe *minjson.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Got error %v, want *ParseError", err)
	}
	// The offset is best-effort; it should land at or near the bad byte.
	if pe.Offset < 10 || pe.Offset > 12 {
		t.Errorf("Fault offset: got %d, want near 11", pe.Offset)
	}
}

func TestNestingLimit(t *testing.T) {
	// A context at limit L admits documents with L+1 nested brackets: the
	// outermost bracket is consumed at depth zero.
	atLimit := strings.Repeat("[", minjson.DefaultNestingLimit+1) +
		strings.Repeat("]", minjson.DefaultNestingLimit+1)
	if got, err := parseInput(atLimit); err != nil {
		t.Errorf("Parse at the nesting limit failed: %v\nOutput:\n%s", err, got)
	}

	tooDeep := strings.Repeat("[", minjson.DefaultNestingLimit+2) +
		strings.Repeat("]", minjson.DefaultNestingLimit+2)
	_, err := parseInput(tooDeep)
	var pe *minjson.ParseError
	if !errors.As(err, &pe) || pe.Reason != minjson.ExceededNestingLimit {
		t.Errorf("Parse past the nesting limit: got %v, want %v", err, minjson.ExceededNestingLimit)
	}
}

func TestSetNestingLimit(t *testing.T) {
	parseDepth := func(limit, brackets int) error {
		input := strings.Repeat("[", brackets) + strings.Repeat("]", brackets)
		c := minjson.NewBufferContext([]byte(input))
		c.SetNestingLimit(limit)
		th := newTestHandler(c)
		_, err := minjson.ParseArray(c, th.Element)
		return err
	}

	if err := parseDepth(2, 3); err != nil {
		t.Errorf("Parse with limit 2, depth 3: unexpected error: %v", err)
	}
	var pe *minjson.ParseError
	if err := parseDepth(2, 4); !errors.As(err, &pe) || pe.Reason != minjson.ExceededNestingLimit {
		t.Errorf("Parse with limit 2, depth 4: got %v, want %v", err, minjson.ExceededNestingLimit)
	}
}

func TestUnparsedNestedValue(t *testing.T) {
	// The handler sees the object value for "a" but does not recurse into
	// it, so the parse of the next sibling step must fail.
	c := minjson.NewConstBufferContext(mem.S(`{"a":{"x":1},"b":2}`))
	var fields []string
	_, err := minjson.ParseObject(c, func(name mem.RO, v minjson.Value) error {
		fields = append(fields, name.StringCopy())
		return nil
	})

	var pe *minjson.ParseError
	if !errors.As(err, &pe) || pe.Reason != minjson.NestedValueNotParsed {
		t.Fatalf("Got %v, want %v", err, minjson.NestedValueNotParsed)
	}
	if diff := cmp.Diff([]string{"a"}, fields); diff != "" {
		t.Errorf("Fields delivered: (-want, +got)\n%s", diff)
	}
}

func TestHandlerError(t *testing.T) {
	errStop := errors.New("stop the parse")

	c := minjson.NewConstBufferContext(mem.S(`[1,2,3,4]`))
	var seen int
	_, err := minjson.ParseArray(c, func(v minjson.Value) error {
		seen++
		if seen == 2 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Errorf("Parse error: got %v, want %v", err, errStop)
	}
	if seen != 2 {
		t.Errorf("Elements delivered: got %d, want 2", seen)
	}
}

func TestChainedDocuments(t *testing.T) {
	const input = `{"a":1} [2,3] {"b":4}`
	c := minjson.NewReaderContext(strings.NewReader(input))
	th := newTestHandler(c)

	n1, err := minjson.ParseObject(c, th.Field)
	if err != nil {
		t.Fatalf("ParseObject failed: %v", err)
	}
	n2, err := minjson.ParseArray(c, th.Element)
	if err != nil {
		t.Fatalf("ParseArray failed: %v", err)
	}
	n3, err := minjson.ParseObject(c, th.Field)
	if err != nil {
		t.Fatalf("ParseObject failed: %v", err)
	}

	const want = `
Field <a> number <1>
Element number <2>
Element number <3>
Field <b> number <4>`
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}

	if total := n1 + n2 + n3; total != len(input) {
		t.Errorf("Bytes consumed: got %d+%d+%d = %d, want %d", n1, n2, n3, n1+n2+n3, len(input))
	}
}

func TestContextParity(t *testing.T) {
	// All three context variants must produce identical parse results.
	const input = `{"name":"pangram é😀","count":[1,2.5,-3e2],"ok":true,"gone":null}`

	run := func(t *testing.T, c minjson.Context) string {
		t.Helper()
		th := newTestHandler(c)
		if _, err := minjson.ParseObject(c, th.Field); err != nil {
			t.Fatalf("Parse failed: %v", err)
		}
		return th.output()
	}

	want := run(t, minjson.NewConstBufferContext(mem.S(input)))
	t.Run("BufferContext", func(t *testing.T) {
		got := run(t, minjson.NewBufferContext([]byte(input)))
		if diff := diffStrings(want, got); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})
	t.Run("ReaderContext", func(t *testing.T) {
		got := run(t, minjson.NewReaderContext(strings.NewReader(input)))
		if diff := diffStrings(want, got); diff != "" {
			t.Errorf("Output: (-want, +got)\n%s", diff)
		}
	})
}
