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

// Resolve transforms the reference ref against base following RFC 3986,
// Section 5.2.2, and returns the target record. A nil base returns the
// reference itself, with dot segments removed from its path. Resolution is
// total over parsed records; the inputs are not mutated.
func Resolve(base, ref *URI) *URI {
	t := &URI{iri: ref.iri || (base != nil && base.iri)}

	switch {
	case base == nil || ref.hasScheme:
		t.scheme, t.hasScheme = ref.scheme, ref.hasScheme
		t.copyAuthority(ref)
		t.path = removeDotSegments(ref.path)
		t.query, t.hasQuery = ref.query, ref.hasQuery
	case ref.hasAuthority:
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
		t.copyAuthority(ref)
		t.path = removeDotSegments(ref.path)
		t.query, t.hasQuery = ref.query, ref.hasQuery
	case ref.path == "":
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
		t.copyAuthority(base)
		t.path = base.path
		if ref.hasQuery {
			t.query, t.hasQuery = ref.query, true
		} else {
			t.query, t.hasQuery = base.query, base.hasQuery
		}
	default:
		t.scheme, t.hasScheme = base.scheme, base.hasScheme
		t.copyAuthority(base)
		if strings.HasPrefix(ref.path, "/") {
			t.path = removeDotSegments(ref.path)
		} else {
			t.path = removeDotSegments(mergePaths(base.hasAuthority, base.path, ref.path))
		}
		t.query, t.hasQuery = ref.query, ref.hasQuery
	}

	t.fragment, t.hasFragment = ref.fragment, ref.hasFragment
	t.recompose()
	return t
}

// ResolveReference parses base and ref as URI references and resolves ref
// against base.
func ResolveReference(base, ref string) (*URI, error) {
	b, err := ParseReference(base)
	if err != nil {
		return nil, err
	}
	r, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	return Resolve(b, r), nil
}

// Resolve parses ref as a reference in the record's mode (URI or IRI) and
// resolves it against u.
func (u *URI) Resolve(ref string) (*URI, error) {
	r, err := parse(ref, u.iri, false)
	if err != nil {
		return nil, err
	}
	return Resolve(u, r), nil
}

// copyAuthority copies the authority components of src into u.
func (u *URI) copyAuthority(src *URI) {
	u.authority, u.hasAuthority = src.authority, src.hasAuthority
	u.userinfo, u.hasUserinfo = src.userinfo, src.hasUserinfo
	u.host = src.host
	u.hostname = src.hostname
	u.ipLit = src.ipLit
	u.hostKind = src.hostKind
	u.port, u.hasPort = src.port, src.hasPort
}

// recompose refreshes the derived relative and href fields from the
// components.
func (u *URI) recompose() {
	var b strings.Builder
	if u.hasAuthority {
		b.WriteString("//")
		b.WriteString(u.authority)
	}
	b.WriteString(u.path)
	u.relative = b.String()
	u.href = u.String()
}
