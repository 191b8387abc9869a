/*
Copyright 2026 Uritk Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package cursor provides the shared scanner state used by the URI and
// URI-template parsers. A Cursor is a window {Input, Offset, Limit} over an
// input string, plus the IRI mode flag that widens the character classes.
//
// The Limit can be temporarily narrowed so that a sub-parser (the IPv6
// literal between "[" and "]", the body of a template expression between
// "{" and "}") can reuse the same scanning machinery on a sub-range without
// allocating a substring.
package cursor

import "unicode/utf8"

// Cursor is a mutable scan position over an input string.
type Cursor struct {
	Input  string
	Offset int
	Limit  int
	IRI    bool
}

// New returns a cursor covering all of input.
func New(input string, iri bool) *Cursor {
	return &Cursor{Input: input, Limit: len(input), IRI: iri}
}

// More reports whether any input remains before the limit.
func (c *Cursor) More() bool {
	return c.Offset < c.Limit
}

// PeekByte returns the byte at the current offset without advancing.
func (c *Cursor) PeekByte() (byte, bool) {
	if c.Offset >= c.Limit {
		return 0, false
	}
	return c.Input[c.Offset], true
}

// Peek decodes the rune at the current offset without advancing.
func (c *Cursor) Peek() (rune, bool) {
	if c.Offset >= c.Limit {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(c.Input[c.Offset:c.Limit])
	return r, true
}

// Next decodes the rune at the current offset and advances past it.
func (c *Cursor) Next() (rune, bool) {
	if c.Offset >= c.Limit {
		return 0, false
	}
	r, size := utf8.DecodeRuneInString(c.Input[c.Offset:c.Limit])
	c.Offset += size
	return r, true
}

// Skip advances the offset by n bytes.
func (c *Cursor) Skip(n int) {
	c.Offset += n
}

// StartsWith reports whether the byte at the current offset equals b.
func (c *Cursor) StartsWith(b byte) bool {
	pb, ok := c.PeekByte()
	return ok && pb == b
}

// Consume advances past the byte b if it is next, reporting whether it did.
func (c *Cursor) Consume(b byte) bool {
	if c.StartsWith(b) {
		c.Offset++
		return true
	}
	return false
}

// IndexByte returns the absolute index of the first occurrence of b in the
// unread window, or -1.
func (c *Cursor) IndexByte(b byte) int {
	for i := c.Offset; i < c.Limit; i++ {
		if c.Input[i] == b {
			return i
		}
	}
	return -1
}

// Narrow moves the limit to limit and returns the previous one, to be
// handed back to Widen once the sub-range has been scanned.
func (c *Cursor) Narrow(limit int) int {
	prev := c.Limit
	c.Limit = limit
	return prev
}

// Widen restores a limit previously returned by Narrow.
func (c *Cursor) Widen(limit int) {
	c.Limit = limit
}

// Rest returns the unread window.
func (c *Cursor) Rest() string {
	return c.Input[c.Offset:c.Limit]
}

// Slice returns the input between the absolute position from and the
// current offset.
func (c *Cursor) Slice(from int) string {
	return c.Input[from:c.Offset]
}
