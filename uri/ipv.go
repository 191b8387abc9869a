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

package uri

import (
	"github.com/averlon/uritk/internal/cursor"
)

// ParseIPv4 validates s as a dotted-quad IPv4 address and returns it
// unchanged. Octets are 1-3 digits, at most 255, without leading zeros.
func ParseIPv4(s string) (string, error) {
	c := cursor.New(s, false)
	if _, err := scanIPv4(c); err != nil {
		return "", err
	}
	if c.More() {
		return "", newError(ErrInvalidIPv4, "invalid IPv4 address", s, c.Offset)
	}
	return s, nil
}

// ParseIPv6 validates s as an IPv6 address (without brackets) and returns
// it unchanged. The grammar admits at most one "::" compression and an
// optional trailing IPv4 tail.
func ParseIPv6(s string) (string, error) {
	c := cursor.New(s, false)
	if err := scanIPv6(c); err != nil {
		return "", err
	}
	return s, nil
}

// scanIPv4 consumes four octets separated by '.' and returns the consumed
// substring.
func scanIPv4(c *cursor.Cursor) (string, error) {
	start := c.Offset
	for i := 0; i < 4; i++ {
		if i > 0 && !c.Consume('.') {
			return "", newError(ErrInvalidIPv4, "expected '.'", c.Input, c.Offset)
		}
		if err := scanIPv4Octet(c); err != nil {
			return "", err
		}
	}
	return c.Slice(start), nil
}

func scanIPv4Octet(c *cursor.Cursor) error {
	start := c.Offset
	value := 0
	digits := 0
	for digits < 3 {
		b, ok := c.PeekByte()
		if !ok || b < '0' || b > '9' {
			break
		}
		value = value*10 + int(b-'0')
		digits++
		c.Skip(1)
	}
	switch {
	case digits == 0, value > 255:
		return newError(ErrInvalidIPv4, "invalid IPv4 octet", c.Input, start)
	case digits > 1 && c.Input[start] == '0':
		return newError(ErrInvalidIPv4, "invalid IPv4 octet", c.Input, start)
	}
	return nil
}

// scanHexDigits consumes up to max hexadecimal digits and returns how many
// it consumed.
func scanHexDigits(c *cursor.Cursor, max int) int {
	n := 0
	for n < max {
		r, ok := c.Peek()
		if !ok || !IsHexChar(r) {
			break
		}
		c.Skip(1)
		n++
	}
	return n
}

// scanIPv6 consumes an IPv6 address up to the cursor's limit. The address
// is a sequence of 1-4 digit hextets with at most one "::" compression and
// an optional IPv4 tail standing in for the last two hextets.
//
// The only backtracking needed is a single remembered offset: the position
// where a hextet might instead be the first octet of an IPv4 tail. When the
// character after that hextet turns out to be '.', the scan rewinds there
// and hands over to the IPv4 parser.
func scanIPv6(c *cursor.Cursor) error {
	hextets := 0
	compressed := false
	ipv4Start := -1
	parseTail := false

	// Leading hextets, up to a compression or the IPv4 tail.
	for hextets < 8 {
		if b, ok := c.PeekByte(); ok && b == ':' {
			c.Skip(1)
			if c.Consume(':') {
				compressed = true
				break
			}
			if hextets == 0 {
				return newError(ErrInvalidIPv6, "expected colon", c.Input, c.Offset)
			}
		} else if ipv4Start >= 0 {
			c.Offset = ipv4Start
			parseTail = true
			break
		} else if hextets > 0 {
			return newError(ErrInvalidIPv6, "invalid IPv6 address", c.Input, c.Offset)
		}
		if hextets == 6 {
			ipv4Start = c.Offset
		}
		if scanHexDigits(c, 4) == 0 {
			if ipv4Start >= 0 {
				c.Offset = ipv4Start
				parseTail = true
				break
			}
			return newError(ErrInvalidIPv6, "expected hex digit", c.Input, c.Offset)
		}
		hextets++
	}

	// Hextets after the compression, with the same IPv4 hand-over.
	if compressed && !parseTail {
		for c.More() && hextets < 7 {
			start := c.Offset
			if scanHexDigits(c, 4) == 0 {
				return newError(ErrInvalidIPv6, "expected hex digit", c.Input, c.Offset)
			}
			hextets++
			if c.Consume(':') {
				if !c.More() {
					return newError(ErrInvalidIPv6, "expected hex digit", c.Input, c.Offset)
				}
				continue
			}
			if c.StartsWith('.') {
				c.Offset = start
				parseTail = true
			}
			break
		}
	}

	if parseTail {
		if _, err := scanIPv4(c); err != nil {
			return err
		}
	}

	if c.More() {
		return newError(ErrInvalidIPv6, "invalid IPv6 address", c.Input, c.Offset)
	}
	return nil
}
