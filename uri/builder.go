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

import "strings"

// Builder composes a URI from individual components. Components are set
// with the With* methods; URI recomposes them with the fixed delimiters
// ":", "//", "?" and "#" (omitted components omit their delimiters) and
// validates the result through the parser, so a Builder can only produce
// records satisfying the grammar.
type Builder struct {
	scheme   string
	userinfo string
	host     string
	port     string
	path     string
	query    string
	fragment string

	iri          bool
	hasScheme    bool
	hasAuthority bool
	hasUserinfo  bool
	hasPort      bool
	hasQuery     bool
	hasFragment  bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// From seeds the builder with the components of an existing record.
func (b *Builder) From(u *URI) *Builder {
	b.scheme, b.hasScheme = u.scheme, u.hasScheme
	b.userinfo, b.hasUserinfo = u.userinfo, u.hasUserinfo
	b.host = u.hostname
	b.port, b.hasPort = u.port, u.hasPort
	b.hasAuthority = u.hasAuthority
	b.path = u.path
	b.query, b.hasQuery = u.query, u.hasQuery
	b.fragment, b.hasFragment = u.fragment, u.hasFragment
	b.iri = u.iri
	return b
}

// AsIRI makes URI validate against the IRI character classes.
func (b *Builder) AsIRI() *Builder {
	b.iri = true
	return b
}

// WithScheme sets the scheme, without its trailing colon.
func (b *Builder) WithScheme(scheme string) *Builder {
	b.scheme = scheme
	b.hasScheme = scheme != ""
	return b
}

// WithUserinfo sets the userinfo component and implies an authority.
func (b *Builder) WithUserinfo(userinfo string) *Builder {
	b.userinfo = userinfo
	b.hasUserinfo = true
	b.hasAuthority = true
	return b
}

// WithHost sets the host (an IP literal keeps its brackets) and implies an
// authority.
func (b *Builder) WithHost(host string) *Builder {
	b.host = host
	b.hasAuthority = true
	return b
}

// WithPort sets the port digits and implies an authority.
func (b *Builder) WithPort(port string) *Builder {
	b.port = port
	b.hasPort = true
	b.hasAuthority = true
	return b
}

// WithPath sets the path component.
func (b *Builder) WithPath(path string) *Builder {
	b.path = path
	return b
}

// WithQuery sets the query component, without the leading "?".
func (b *Builder) WithQuery(query string) *Builder {
	b.query = query
	b.hasQuery = true
	return b
}

// WithFragment sets the fragment component, without the leading "#".
func (b *Builder) WithFragment(fragment string) *Builder {
	b.fragment = fragment
	b.hasFragment = true
	return b
}

// String recomposes the components without validating them.
func (b *Builder) String() string {
	var s strings.Builder
	if b.hasScheme {
		s.WriteString(b.scheme)
		s.WriteByte(':')
	}
	if b.hasAuthority {
		s.WriteString("//")
		if b.hasUserinfo {
			s.WriteString(b.userinfo)
			s.WriteByte('@')
		}
		s.WriteString(b.host)
		if b.hasPort {
			s.WriteByte(':')
			s.WriteString(b.port)
		}
	}
	s.WriteString(b.path)
	if b.hasQuery {
		s.WriteByte('?')
		s.WriteString(b.query)
	}
	if b.hasFragment {
		s.WriteByte('#')
		s.WriteString(b.fragment)
	}
	return s.String()
}

// URI recomposes and parses the components, returning the validated record.
func (b *Builder) URI() (*URI, error) {
	return parse(b.String(), b.iri, false)
}
