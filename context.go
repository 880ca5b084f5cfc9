// Copyright (C) 2024 Michael J. Fromberger. All Rights Reserved.

package minjson

import (
	"bufio"
	"io"

	"go4.org/mem"
)

// DefaultNestingLimit is the nesting depth limit applied to newly-constructed
// contexts. A structure nested more deeply than the limit aborts the parse
// with ExceededNestingLimit, bounding recursion on hostile input.
const DefaultNestingLimit = 32

// A NestedStatus records whether a context sits just inside the opening
// bracket of a nested object or array whose bracket was already consumed by
// the value reader.
type NestedStatus byte

// Constants defining the valid NestedStatus values.
const (
	NestedNone   NestedStatus = iota // not inside a freshly-opened structure
	NestedObject                     // just inside "{"
	NestedArray                      // just inside "["
)

// A Context supplies input to the parser and stages the decoded bytes of the
// literal currently being read. Exactly one parse may be active against a
// Context at a time, and a Context must not be reused after a parse error.
//
// The three provided implementations (BufferContext, ConstBufferContext,
// ReaderContext) differ only in storage strategy, never in parsing semantics.
type Context interface {
	// Read returns the next input byte, or 0 at end of input. It is safe to
	// call Read past the end of input repeatedly.
	Read() byte

	// ReadOffset reports the number of input bytes consumed so far.
	ReadOffset() int

	// BeginLiteral marks the start of a new decoded-literal region.
	BeginLiteral()

	// Write appends one decoded byte to the current literal.
	Write(b byte)

	// Literal returns a read-only view of the current literal. It must be
	// called only after all writes for the literal are complete.
	Literal() mem.RO

	// Nesting bookkeeping, mutated only by the structural parsers.
	NestingLevel() int
	NestingLimit() int
	NestedStatus() NestedStatus
	BeginNested(s NestedStatus)
	EndNested()
	ResetNestedStatus()
}

// nesting tracks bracket depth and resume status for a context.
// It is embedded by all the context implementations.
type nesting struct {
	status NestedStatus
	level  int
	limit  int
}

// NestingLevel reports the current nesting depth.
func (n *nesting) NestingLevel() int { return n.level }

// NestingLimit reports the configured nesting depth limit.
func (n *nesting) NestingLimit() int { return n.limit }

// SetNestingLimit replaces the nesting depth limit. It must be called before
// parsing begins.
func (n *nesting) SetNestingLimit(limit int) { n.limit = limit }

// NestedStatus reports whether the context sits just inside a freshly-opened
// object or array.
func (n *nesting) NestedStatus() NestedStatus { return n.status }

// BeginNested records entry into a nested structure of the given kind.
func (n *nesting) BeginNested(s NestedStatus) { n.status = s; n.level++ }

// ResetNestedStatus clears the resume status without changing the depth.
func (n *nesting) ResetNestedStatus() { n.status = NestedNone }

// EndNested records completion of the innermost nested structure.
func (n *nesting) EndNested() {
	if n.level > 0 {
		n.level--
	}
}

// A BufferContext reads input from a caller-provided buffer and decodes
// literals in place over the bytes already consumed. It performs no dynamic
// allocation. Literal views remain valid as long as the underlying buffer.
//
// The contents of the buffer are destroyed by parsing.
type BufferContext struct {
	nesting

	buf      []byte
	readOff  int
	writeOff int
	litStart int
}

// NewBufferContext constructs a BufferContext that parses buf in place.
func NewBufferContext(buf []byte) *BufferContext {
	return &BufferContext{nesting: nesting{limit: DefaultNestingLimit}, buf: buf}
}

// Read returns the next input byte, or 0 at end of input.
func (c *BufferContext) Read() byte {
	if c.readOff >= len(c.buf) {
		return 0
	}
	b := c.buf[c.readOff]
	c.readOff++
	return b
}

// ReadOffset reports the number of input bytes consumed so far.
func (c *BufferContext) ReadOffset() int { return c.readOff }

// BeginLiteral marks the start of a new decoded-literal region.
func (c *BufferContext) BeginLiteral() { c.litStart = c.writeOff }

// Write appends one decoded byte to the current literal.
func (c *BufferContext) Write(b byte) {
	if c.writeOff >= c.readOff {
		// A decoded literal is never longer than its encoded form, so the
		// write cursor can never legitimately catch up to the read cursor.
		panic("minjson: literal write cursor passed the read cursor; please file a bug report")
	}
	c.buf[c.writeOff] = b
	c.writeOff++
}

// Literal returns a read-only view of the current literal.
func (c *BufferContext) Literal() mem.RO { return mem.B(c.buf[c.litStart:c.writeOff]) }

// A ConstBufferContext reads input from a read-only view and decodes literals
// into a scratch buffer allocated once at construction. Literal views remain
// valid as long as the context.
type ConstBufferContext struct {
	nesting

	src      mem.RO
	scratch  []byte
	readOff  int
	writeOff int
	litStart int
}

// NewConstBufferContext constructs a ConstBufferContext that parses src,
// leaving it unmodified. This is the only allocation the context performs.
func NewConstBufferContext(src mem.RO) *ConstBufferContext {
	return &ConstBufferContext{
		nesting: nesting{limit: DefaultNestingLimit},
		src:     src,
		scratch: make([]byte, src.Len()),
	}
}

// Read returns the next input byte, or 0 at end of input.
func (c *ConstBufferContext) Read() byte {
	if c.readOff >= c.src.Len() {
		return 0
	}
	b := c.src.At(c.readOff)
	c.readOff++
	return b
}

// ReadOffset reports the number of input bytes consumed so far.
func (c *ConstBufferContext) ReadOffset() int { return c.readOff }

// BeginLiteral marks the start of a new decoded-literal region.
func (c *ConstBufferContext) BeginLiteral() { c.litStart = c.writeOff }

// Write appends one decoded byte to the current literal.
func (c *ConstBufferContext) Write(b byte) {
	if c.writeOff >= c.readOff {
		// See the corresponding check in BufferContext.Write.
		panic("minjson: literal write cursor passed the read cursor; please file a bug report")
	}
	c.scratch[c.writeOff] = b
	c.writeOff++
}

// Literal returns a read-only view of the current literal.
func (c *ConstBufferContext) Literal() mem.RO { return mem.B(c.scratch[c.litStart:c.writeOff]) }

// A ReaderContext reads input from an io.Reader and allocates a fresh buffer
// for each literal. Literal views remain valid as long as the caller retains
// them.
//
// A read error from the underlying reader is indistinguishable from end of
// input; an unbounded input (for example a live stream) blocks in the
// underlying Read, which is the caller's responsibility to bound.
type ReaderContext struct {
	nesting

	r       *bufio.Reader
	readOff int
	cur     []byte
}

// NewReaderContext constructs a ReaderContext that consumes input from r.
func NewReaderContext(r io.Reader) *ReaderContext {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &ReaderContext{nesting: nesting{limit: DefaultNestingLimit}, r: br}
}

// Read returns the next input byte, or 0 at end of input or on a read error.
func (c *ReaderContext) Read() byte {
	b, err := c.r.ReadByte()
	if err != nil {
		return 0
	}
	c.readOff++
	return b
}

// ReadOffset reports the number of input bytes consumed so far.
func (c *ReaderContext) ReadOffset() int { return c.readOff }

// BeginLiteral marks the start of a new decoded-literal region.
// Any previously-returned literal views are unaffected.
func (c *ReaderContext) BeginLiteral() { c.cur = nil }

// Write appends one decoded byte to the current literal.
func (c *ReaderContext) Write(b byte) { c.cur = append(c.cur, b) }

// Literal returns a read-only view of the current literal.
func (c *ReaderContext) Literal() mem.RO { return mem.B(c.cur) }
