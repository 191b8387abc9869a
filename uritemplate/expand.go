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
	"unicode/utf8"

	"github.com/averlon/uritk/uri"
)

// Expand parses template and expands it against vars. The only error is a
// template that fails to parse; expansion itself is total.
func Expand(template string, vars Variables) (string, error) {
	t, err := Parse(template)
	if err != nil {
		return "", err
	}
	return t.Expand(vars), nil
}

// Expand walks the template parts in order, emitting literals verbatim and
// expanding each expression against vars.
func (t *Template) Expand(vars Variables) string {
	var b strings.Builder
	for _, part := range t.parts {
		switch p := part.(type) {
		case Literal:
			b.WriteString(string(p))
		case *Expression:
			b.WriteString(p.Expand(vars))
		}
	}
	return b.String()
}

// Expand expands the expression against vars. Absent variables are
// skipped; when every variable is absent the result is empty, with no
// operator prefix.
func (e *Expression) Expand(vars Variables) string {
	var b strings.Builder
	emitted := false
	for _, v := range e.variables {
		value, ok := vars.Get(v.name)
		if !ok || value == nil {
			continue
		}
		s, ok := v.Expand(value)
		if !ok {
			continue
		}
		if emitted {
			b.WriteString(e.separator)
		} else {
			b.WriteString(e.first)
		}
		emitted = true
		b.WriteString(s)
	}
	return b.String()
}

// Expand expands a single variable against a binding value. The second
// result is false when the value is absent (nil, a composite with no
// present elements, or a coercion that declined it).
func (v *Variable) Expand(value any) (string, bool) {
	if value == nil {
		return "", false
	}
	if items, ok := asList(value); ok {
		if v.explode {
			return v.expandExplodedList(items)
		}
		return v.expandJoinedList(items)
	}
	if members, ok := asAssoc(value); ok {
		switch {
		case v.explode && v.deepObject:
			return v.expandDeepObject(value, members)
		case v.explode:
			return v.expandExplodedAssoc(members)
		}
		return v.expandJoinedAssoc(members)
	}
	return v.expandString(value)
}

// expandString handles scalar values.
func (v *Variable) expandString(value any) (string, bool) {
	s, ok := v.coerceValue(value)
	if !ok {
		return "", false
	}
	if v.named {
		if s == "" {
			return v.name + v.empty, true
		}
		return v.name + "=" + escape(prefix(s, v.maxLength), v.allow), true
	}
	return escape(prefix(s, v.maxLength), v.allow), true
}

// expandJoinedList joins list items with the composite separator.
func (v *Variable) expandJoinedList(items []any) (string, bool) {
	var b strings.Builder
	emitted := false
	for _, item := range items {
		s, ok := v.coerceValue(item)
		if !ok {
			continue
		}
		if emitted {
			b.WriteString(v.compositeSeparator)
		}
		emitted = true
		b.WriteString(escape(s, v.allow))
	}
	if !emitted {
		return "", false
	}
	if v.named {
		return v.name + "=" + b.String(), true
	}
	return b.String(), true
}

// expandJoinedAssoc joins key,value pairs with the composite separator.
func (v *Variable) expandJoinedAssoc(members Assoc) (string, bool) {
	var b strings.Builder
	emitted := false
	for _, m := range members {
		s, ok := v.coerceValue(m.Value)
		if !ok {
			continue
		}
		if emitted {
			b.WriteString(v.compositeSeparator)
		}
		emitted = true
		b.WriteString(escape(m.Key, v.allow))
		b.WriteString(v.compositeSeparator)
		b.WriteString(escape(s, v.allow))
	}
	if !emitted {
		return "", false
	}
	if v.named {
		return v.name + "=" + b.String(), true
	}
	return b.String(), true
}

// expandExplodedList emits one item per list element, joined by the
// operator separator. For named expansions an element that coerces to the
// empty string emits name plus the empty substitution, without "=".
func (v *Variable) expandExplodedList(items []any) (string, bool) {
	var b strings.Builder
	emitted := false
	for _, item := range items {
		s, ok := v.coerceValue(item)
		if !ok {
			continue
		}
		if emitted {
			b.WriteString(v.separator)
		}
		emitted = true
		switch {
		case v.named && s == "":
			b.WriteString(v.name)
			b.WriteString(v.empty)
		case v.named:
			b.WriteString(v.name)
			b.WriteByte('=')
			b.WriteString(escape(s, v.allow))
		default:
			b.WriteString(escape(s, v.allow))
		}
	}
	if !emitted {
		return "", false
	}
	return b.String(), true
}

// expandExplodedAssoc emits one key=value pair per member, joined by the
// operator separator.
func (v *Variable) expandExplodedAssoc(members Assoc) (string, bool) {
	var b strings.Builder
	emitted := false
	for _, m := range members {
		s, ok := v.coerceValue(m.Value)
		if !ok {
			continue
		}
		if emitted {
			b.WriteString(v.separator)
		}
		emitted = true
		b.WriteString(escape(m.Key, v.allow))
		if v.named && s == "" {
			b.WriteString(v.empty)
			continue
		}
		b.WriteByte('=')
		b.WriteString(escape(s, v.allow))
	}
	if !emitted {
		return "", false
	}
	return b.String(), true
}

// expandDeepObject flattens a nested associative value depth-first into
// name[k1][k2]=v pairs joined by the operator separator. Reference cycles
// are broken by tracking the identities of the containers on the current
// path.
func (v *Variable) expandDeepObject(value any, members Assoc) (string, bool) {
	var pairs []string
	visited := make(map[uintptr]bool)
	if id, ok := containerID(value); ok {
		visited[id] = true
	}
	v.flattenDeep(v.name, members, visited, &pairs)
	if len(pairs) == 0 {
		return "", false
	}
	return strings.Join(pairs, v.separator), true
}

func (v *Variable) flattenDeep(path string, members Assoc, visited map[uintptr]bool, pairs *[]string) {
	for _, m := range members {
		key := path + "[" + uri.PctEncode(m.Key, uri.CharsetUnreserved) + "]"
		if sub, ok := asAssoc(m.Value); ok {
			id, hasID := containerID(m.Value)
			if hasID {
				if visited[id] {
					continue
				}
				visited[id] = true
			}
			v.flattenDeep(key, sub, visited, pairs)
			if hasID {
				delete(visited, id)
			}
			continue
		}
		s, ok := v.coerceValue(m.Value)
		if !ok {
			continue
		}
		*pairs = append(*pairs, key+"="+escape(s, v.allow))
	}
}

// prefix returns the first n Unicode scalar values of s; n <= 0 means no
// truncation.
func prefix(s string, n int) string {
	if n <= 0 {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// escape percent-encodes s against the allowed character class. In
// reserved mode a valid percent-triplet in the value passes through
// unchanged; in unreserved mode its "%" is re-encoded like any other
// disallowed character.
func escape(s string, allow uri.Charset) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] == '%' && allow == uri.CharsetReserved && uri.IsPctEncoded(s, i) {
			b.WriteString(s[i : i+3])
			i += 3
			continue
		}
		r, size := utf8.DecodeRuneInString(s[i:])
		if uri.IsURIChar(r, allow, false) {
			b.WriteRune(r)
		} else {
			b.WriteString(uri.PctEncodeRune(r))
		}
		i += size
	}
	return b.String()
}
