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

// Parse parses s as an absolute URI (RFC 3986, Section 3). The scheme is
// required and must begin with a letter.
func Parse(s string) (*URI, error) {
	return parse(s, false, true)
}

// ParseReference parses s as a URI reference: either a URI or a relative
// reference (RFC 3986, Section 4.1).
func ParseReference(s string) (*URI, error) {
	return parse(s, false, false)
}

// ParseIRI parses s as an absolute IRI (RFC 3987): the URI grammar with
// ucschar admitted in userinfo, host, path, query and fragment, and
// iprivate additionally admitted in the query.
func ParseIRI(s string) (*URI, error) {
	return parse(s, true, true)
}

// ParseIRIReference parses s as an IRI reference.
func ParseIRIReference(s string) (*URI, error) {
	return parse(s, true, false)
}

// IsURI reports whether s is a valid absolute URI.
func IsURI(s string) bool {
	_, err := Parse(s)
	return err == nil
}

// IsURIReference reports whether s is a valid URI reference.
func IsURIReference(s string) bool {
	_, err := ParseReference(s)
	return err == nil
}

// IsIRI reports whether s is a valid absolute IRI.
func IsIRI(s string) bool {
	_, err := ParseIRI(s)
	return err == nil
}

// IsIRIReference reports whether s is a valid IRI reference.
func IsIRIReference(s string) bool {
	_, err := ParseIRIReference(s)
	return err == nil
}

// parser holds the state of one parse: the cursor and the record being
// filled in.
type parser struct {
	c *cursor.Cursor
	u *URI
}

func parse(s string, iri, schemeRequired bool) (*URI, error) {
	p := &parser{
		c: cursor.New(s, iri),
		u: &URI{href: s, iri: iri},
	}

	var err error
	if schemeRequired {
		err = p.parseScheme()
	} else {
		p.speculateScheme()
	}
	if err != nil {
		return nil, err
	}

	if err := p.parseRelativePart(); err != nil {
		return nil, err
	}
	if err := p.parseQueryAndFragment(); err != nil {
		return nil, err
	}
	return p.u, nil
}

// parseScheme consumes "scheme ':'" or fails.
func (p *parser) parseScheme() error {
	r, ok := p.c.Peek()
	if !ok || !IsAlpha(r) {
		return p.errAt(ErrInvalidScheme, "scheme must start with a letter", p.c.Offset)
	}
	start := p.c.Offset
	for {
		r, ok := p.c.Peek()
		if !ok {
			return p.errAt(ErrInvalidScheme, "expected colon", p.c.Offset)
		}
		if r == ':' {
			p.u.scheme = p.c.Slice(start)
			p.u.hasScheme = true
			p.c.Skip(1)
			return nil
		}
		if !IsSchemeChar(r) {
			return p.errAt(ErrInvalidScheme, "invalid scheme character", p.c.Offset)
		}
		p.c.Next()
	}
}

// speculateScheme looks for "scheme ':'" at the start of a reference. When
// the prefix is not a well-formed scheme the cursor is left untouched and
// the whole input parses as a relative reference.
func (p *parser) speculateScheme() {
	in := p.c.Input
	if len(in) == 0 || !IsAlpha(rune(in[0])) {
		return
	}
	i := 1
	for i < len(in) && IsSchemeChar(rune(in[i])) {
		i++
	}
	if i < len(in) && in[i] == ':' {
		p.u.scheme = in[:i]
		p.u.hasScheme = true
		p.c.Skip(i + 1)
	}
}

// parseRelativePart consumes "//" authority path-abempty, or one of the
// path alternatives, recording the relative substring.
func (p *parser) parseRelativePart() error {
	relStart := p.c.Offset

	if b, ok := p.c.PeekByte(); ok && b == '/' && p.c.Offset+1 < p.c.Limit && p.c.Input[p.c.Offset+1] == '/' {
		p.c.Skip(2)
		if err := p.parseAuthority(); err != nil {
			return err
		}
		if err := p.scanPath(false); err != nil {
			return err
		}
	} else {
		// Without a scheme, a colon in the first path segment would be
		// indistinguishable from a scheme delimiter and is rejected.
		if err := p.scanPath(!p.u.hasScheme); err != nil {
			return err
		}
	}

	p.u.relative = p.c.Input[relStart:p.c.Offset]
	return nil
}

// parseAuthority decomposes "[ userinfo '@' ] host [ ':' port ]".
func (p *parser) parseAuthority() error {
	authStart := p.c.Offset

	if at := p.userinfoEnd(); at >= 0 {
		uiStart := p.c.Offset
		for p.c.Offset < at {
			if err := p.consumeClassRune(CharsetUserinfo, ErrInvalidAuthority, "invalid userinfo character"); err != nil {
				return err
			}
		}
		p.u.userinfo = p.c.Slice(uiStart)
		p.u.hasUserinfo = true
		p.c.Skip(1) // '@'
	}

	hostStart := p.c.Offset
	if p.c.StartsWith('[') {
		if err := p.parseIPLiteral(); err != nil {
			return err
		}
	} else if err := p.parseHostname(); err != nil {
		return err
	}
	p.u.hostname = p.c.Slice(hostStart)

	if p.c.Consume(':') {
		p.u.hasPort = true
		if err := p.parsePort(); err != nil {
			return err
		}
	}
	p.u.host = p.c.Slice(hostStart)
	p.u.authority = p.c.Slice(authStart)
	p.u.hasAuthority = true

	if b, ok := p.c.PeekByte(); ok && b != '/' && b != '?' && b != '#' {
		return p.errAt(ErrInvalidPath, "path after authority must be empty or start with '/'", p.c.Offset)
	}
	return nil
}

// userinfoEnd returns the absolute index of the '@' terminating a userinfo
// component, or -1 when the authority has none. The lookahead stops at the
// first character that ends the authority.
func (p *parser) userinfoEnd() int {
	for i := p.c.Offset; i < p.c.Limit; i++ {
		switch p.c.Input[i] {
		case '@':
			return i
		case '/', '?', '#':
			return -1
		}
	}
	return -1
}

// parseHostname consumes an IPv4 literal or a registered name. An IPv4
// parse is attempted first; it only counts when the dotted quad runs up to
// the end of the host, otherwise the cursor rewinds and the host parses as
// a reg-name.
func (p *parser) parseHostname() error {
	save := p.c.Offset
	if ip, err := scanIPv4(p.c); err == nil && p.atHostEnd() {
		p.u.ipLit = ip
		p.u.hostKind = hostIPv4
		return nil
	}
	p.c.Offset = save

	p.u.hostKind = hostRegName
	for p.c.More() {
		b, _ := p.c.PeekByte()
		if b == ':' || b == '/' || b == '?' || b == '#' {
			break
		}
		if err := p.consumeClassRune(CharsetHost, ErrInvalidHost, "invalid host character"); err != nil {
			return err
		}
	}
	return nil
}

// atHostEnd reports whether the cursor sits at a character that may legally
// follow a host.
func (p *parser) atHostEnd() bool {
	b, ok := p.c.PeekByte()
	return !ok || b == ':' || b == '/' || b == '?' || b == '#'
}

// parseIPLiteral consumes "[" (IPv6address / IPvFuture) "]", narrowing the
// scan limit to the closing bracket so the sub-parsers reuse the cursor.
func (p *parser) parseIPLiteral() error {
	open := p.c.Offset
	p.c.Skip(1)
	end := p.c.IndexByte(']')
	if end < 0 {
		return p.errAt(ErrInvalidIPLiteral, "invalid IP literal", open)
	}

	prev := p.c.Narrow(end)
	litStart := p.c.Offset
	var err error
	if b, ok := p.c.PeekByte(); ok && (b == 'v' || b == 'V') {
		err = p.parseIPvFuture()
		p.u.hostKind = hostIPvFuture
	} else {
		err = scanIPv6(p.c)
		p.u.hostKind = hostIPv6
	}
	if err != nil {
		return err
	}
	p.u.ipLit = p.c.Slice(litStart)
	p.c.Widen(prev)
	p.c.Skip(1) // ']'
	return nil
}

// parseIPvFuture consumes "v" 1*HEXDIG "." 1*(unreserved / sub-delims / ":").
func (p *parser) parseIPvFuture() error {
	p.c.Skip(1) // 'v'
	digits := 0
	for {
		r, ok := p.c.Peek()
		if !ok || !IsHexChar(r) {
			break
		}
		p.c.Skip(1)
		digits++
	}
	if digits == 0 {
		return p.errAt(ErrInvalidIPLiteral, "expected hex digit", p.c.Offset)
	}
	if !p.c.Consume('.') {
		return p.errAt(ErrInvalidIPLiteral, "expected '.'", p.c.Offset)
	}
	chars := 0
	for p.c.More() {
		r, _ := p.c.Peek()
		if !IsURIChar(r, CharsetHost, false) && r != ':' {
			return p.errAt(ErrInvalidIPLiteral, "invalid IP literal", p.c.Offset)
		}
		p.c.Next()
		chars++
	}
	if chars == 0 {
		return p.errAt(ErrInvalidIPLiteral, "invalid IP literal", p.c.Offset)
	}
	return nil
}

// parsePort consumes *DIGIT, bounding the accumulated value at 65535.
func (p *parser) parsePort() error {
	start := p.c.Offset
	value := 0
	for {
		b, ok := p.c.PeekByte()
		if !ok || b == '/' || b == '?' || b == '#' {
			break
		}
		if b < '0' || b > '9' {
			return p.errAt(ErrInvalidPort, "invalid port", p.c.Offset)
		}
		value = value*10 + int(b-'0')
		if value > 65535 {
			return p.errAt(ErrInvalidPort, "invalid port", start)
		}
		p.c.Skip(1)
	}
	p.u.port = p.c.Slice(start)
	return nil
}

// scanPath consumes the path component: path characters, percent triplets
// and '/' transitions, stopping at '?', '#' or the end of input.
func (p *parser) scanPath(noColonInFirstSegment bool) error {
	start := p.c.Offset
	inFirstSegment := true
	for p.c.More() {
		b, _ := p.c.PeekByte()
		if b == '?' || b == '#' {
			break
		}
		if b == '/' {
			p.c.Skip(1)
			inFirstSegment = false
			continue
		}
		if b == ':' && noColonInFirstSegment && inFirstSegment {
			return p.errAt(ErrInvalidPath, "invalid character in first path segment", p.c.Offset)
		}
		if err := p.consumeClassRune(CharsetPath, ErrInvalidPath, "invalid path character"); err != nil {
			return err
		}
	}
	p.u.path = p.c.Slice(start)
	return nil
}

// parseQueryAndFragment consumes [ "?" query ] [ "#" fragment ] through the
// end of input.
func (p *parser) parseQueryAndFragment() error {
	if p.c.Consume('?') {
		p.u.hasQuery = true
		start := p.c.Offset
		for p.c.More() {
			if b, _ := p.c.PeekByte(); b == '#' {
				break
			}
			if err := p.consumeClassRune(CharsetQuery, ErrInvalidQuery, "invalid query character"); err != nil {
				return err
			}
		}
		p.u.query = p.c.Slice(start)
	}
	if p.c.Consume('#') {
		p.u.hasFragment = true
		start := p.c.Offset
		for p.c.More() {
			if err := p.consumeClassRune(CharsetFragment, ErrInvalidFragment, "invalid fragment character"); err != nil {
				return err
			}
		}
		p.u.fragment = p.c.Slice(start)
	}
	return nil
}

// consumeClassRune consumes one rune of the given class or one percent
// triplet, failing with the supplied sentinel otherwise.
func (p *parser) consumeClassRune(cs Charset, sentinel error, msg string) error {
	b, _ := p.c.PeekByte()
	if b == '%' {
		if p.c.Offset+2 >= p.c.Limit || !IsPctEncoded(p.c.Input, p.c.Offset) {
			return p.errAt(ErrInvalidPctEncoding, "invalid percent-encoding", p.c.Offset)
		}
		p.c.Skip(3)
		return nil
	}
	r, _ := p.c.Peek()
	if !IsURIChar(r, cs, p.c.IRI) {
		return p.errAt(sentinel, msg, p.c.Offset)
	}
	p.c.Next()
	return nil
}

func (p *parser) errAt(sentinel error, msg string, off int) error {
	return newError(sentinel, msg, p.c.Input, off)
}
