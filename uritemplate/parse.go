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

package uritemplate

import (
	"strings"

	"github.com/averlon/uritk/internal/cursor"
	"github.com/averlon/uritk/uri"
)

// Parse parses a template into its literal and expression parts.
//
// The top-level scan accepts URI characters and valid percent-triplets
// verbatim. Characters that the RFC 6570 literals rule allows beyond the
// URI grammar (ucschar and iprivate) are percent-encoded into the literal
// at parse time, so that every stored Literal is URI-safe. "{" opens an
// expression whose body is scanned up to the matching "}" under a narrowed
// cursor limit.
func Parse(s string) (*Template, error) {
	c := cursor.New(s, true)
	var parts []Part
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, Literal(lit.String()))
			lit.Reset()
		}
	}

	for c.More() {
		b, _ := c.PeekByte()
		if b == '{' {
			open := c.Offset
			end := c.IndexByte('}')
			if end < 0 {
				return nil, newError(ErrUnclosedExpression, "unclosed expression", s, open)
			}
			c.Skip(1)
			prev := c.Narrow(end)
			expr, err := parseExpressionBody(c)
			if err != nil {
				return nil, err
			}
			c.Widen(prev)
			c.Skip(1) // '}'
			flush()
			parts = append(parts, expr)
			continue
		}
		if b == '%' {
			if c.Offset+2 >= c.Limit || !uri.IsPctEncoded(c.Input, c.Offset) {
				return nil, newError(ErrInvalidPctEncoding, "invalid percent-encoding", s, c.Offset)
			}
			lit.WriteString(c.Input[c.Offset : c.Offset+3])
			c.Skip(3)
			continue
		}
		r, _ := c.Peek()
		switch {
		case uri.IsURIChar(r, uri.CharsetReserved, false):
			lit.WriteRune(r)
			c.Next()
		case isTemplateLiteralChar(r):
			lit.WriteString(uri.PctEncodeRune(r))
			c.Next()
		default:
			return nil, newError(ErrInvalidLiteral, "invalid literal character", s, c.Offset)
		}
	}
	flush()
	return &Template{parts: parts}, nil
}

// ParseExpression parses a single "{...}" expression.
func ParseExpression(s string) (*Expression, error) {
	c := cursor.New(s, true)
	if !c.Consume('{') {
		return nil, newError(ErrInvalidVariable, "expected '{'", s, 0)
	}
	end := c.IndexByte('}')
	if end < 0 {
		return nil, newError(ErrUnclosedExpression, "unclosed expression", s, 0)
	}
	if end != len(s)-1 {
		return nil, newError(ErrInvalidVariable, "invalid variable", s, end+1)
	}
	c.Narrow(end)
	return parseExpressionBody(c)
}

// ParseVariable parses a single variable specifier such as "var", "list*"
// or "name:3", with the simple-operator expansion defaults.
func ParseVariable(s string) (*Variable, error) {
	c := cursor.New(s, true)
	v, err := parseVarspec(c)
	if err != nil {
		return nil, err
	}
	if c.More() {
		return nil, newError(ErrInvalidVariable, "invalid variable", s, c.Offset)
	}
	return v, nil
}

// isValidVarname reports whether name matches varname = varchar *( ["."]
// varchar ).
func isValidVarname(name string) bool {
	c := cursor.New(name, true)
	if err := scanVarname(c); err != nil {
		return false
	}
	return c.Offset == len(name) && name != ""
}

// isTemplateLiteralChar reports whether r matches the RFC 6570 literals
// rule.
func isTemplateLiteralChar(r rune) bool {
	switch {
	case r == 0x21,
		r >= 0x23 && r <= 0x24,
		r == 0x26,
		r >= 0x28 && r <= 0x3B,
		r == 0x3D,
		r >= 0x3F && r <= 0x5B,
		r == 0x5D,
		r == 0x5F,
		r >= 0x61 && r <= 0x7A,
		r == 0x7E:
		return true
	}
	return uri.IsUCSChar(r) || uri.IsIPrivateChar(r)
}

// parseExpressionBody parses "operator variable-list" between a narrowed
// cursor's offset and limit.
func parseExpressionBody(c *cursor.Cursor) (*Expression, error) {
	if !c.More() {
		return nil, newError(ErrEmptyExpression, "empty expression", c.Input, c.Offset)
	}

	op := OpSimple
	switch b, _ := c.PeekByte(); b {
	case '+', '#', '.', '/', ';', '?', '&':
		op = Operator(b)
		c.Skip(1)
	case '=', ',', '!', '@', '|':
		return nil, newError(ErrReservedOperator, "reserved operator", c.Input, c.Offset)
	}
	d, _ := op.defaults()

	e := &Expression{op: op, first: d.first, separator: d.separator}
	for {
		v, err := parseVarspec(c)
		if err != nil {
			return nil, err
		}
		v.applyDefaults(d)
		e.variables = append(e.variables, v)
		if !c.Consume(',') {
			break
		}
	}
	if c.More() {
		return nil, newError(ErrInvalidVariable, "invalid variable", c.Input, c.Offset)
	}
	return e, nil
}

// parseVarspec parses "varname [ '*' / ':' max-length ]".
func parseVarspec(c *cursor.Cursor) (*Variable, error) {
	start := c.Offset
	if err := scanVarname(c); err != nil {
		return nil, err
	}
	name := c.Slice(start)
	if name == "" {
		return nil, newError(ErrInvalidVariable, "invalid variable", c.Input, c.Offset)
	}

	v := newVariable(name)
	if c.Consume('*') {
		v.explode = true
		return v, nil
	}
	if c.Consume(':') {
		n, err := scanMaxLength(c)
		if err != nil {
			return nil, err
		}
		v.maxLength = n
	}
	return v, nil
}

// scanVarname consumes varchar *( ["."] varchar ) where varchar is ALPHA,
// DIGIT, "_" or a percent-triplet.
func scanVarname(c *cursor.Cursor) error {
	last := byte(0)
	for c.More() {
		b, _ := c.PeekByte()
		switch {
		case b == '%':
			if c.Offset+2 >= c.Limit || !uri.IsPctEncoded(c.Input, c.Offset) {
				return newError(ErrInvalidPctEncoding, "invalid percent-encoding", c.Input, c.Offset)
			}
			c.Skip(3)
			last = b
		case b == '_' || uri.IsAlpha(rune(b)) || uri.IsDigit(rune(b)):
			c.Skip(1)
			last = b
		case b == '.':
			if last == 0 || last == '.' {
				return newError(ErrInvalidVariable, "invalid variable", c.Input, c.Offset)
			}
			c.Skip(1)
			last = b
		default:
			if last == '.' {
				return newError(ErrInvalidVariable, "invalid variable", c.Input, c.Offset)
			}
			return nil
		}
	}
	if last == '.' {
		return newError(ErrInvalidVariable, "invalid variable", c.Input, c.Offset)
	}
	return nil
}

// scanMaxLength consumes the prefix length: 1*4 DIGIT beginning 1-9,
// bounding the value below 10000.
func scanMaxLength(c *cursor.Cursor) (int, error) {
	b, ok := c.PeekByte()
	if !ok || b < '1' || b > '9' {
		return 0, newError(ErrInvalidMaxLength, "invalid maxLength", c.Input, c.Offset)
	}
	value := 0
	digits := 0
	for {
		b, ok := c.PeekByte()
		if !ok || b < '0' || b > '9' {
			break
		}
		if digits == 4 {
			return 0, newError(ErrInvalidMaxLength, "invalid maxLength", c.Input, c.Offset)
		}
		value = value*10 + int(b-'0')
		digits++
		c.Skip(1)
	}
	return value, nil
}
