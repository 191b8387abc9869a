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

// Relativize computes a reference that, when resolved against u, yields
// target. It is the inverse of Resolve. Both records must carry a scheme.
//
// The result is the full target when the schemes differ, a scheme-relative
// reference when only the authorities differ, and a path-, query- or
// fragment-relative reference otherwise. Relativize returns ErrRelativize
// when the target path still contains dot segments; such paths must be
// resolved first.
func (u *URI) Relativize(target *URI) (*URI, error) {
	if !u.hasScheme || !target.hasScheme {
		return nil, newError(ErrMissingBase, "relativize requires absolute URIs", u.href, 0)
	}
	for _, segment := range strings.Split(target.path, "/") {
		if segment == "." || segment == ".." {
			return nil, newError(ErrRelativize, "target path contains dot segments", target.href, 0)
		}
	}

	if u.scheme != target.scheme {
		return target.reparseRef(target.String())
	}

	if u.hasAuthority != target.hasAuthority || (u.hasAuthority && u.authority != target.authority) {
		if !target.hasAuthority {
			return target.reparseRef(target.String())
		}
		return target.reparseRef(target.afterScheme())
	}

	if target.path == "" && u.path != "" {
		if !target.hasAuthority {
			return target.reparseRef(target.String())
		}
		return target.reparseRef(target.afterScheme())
	}

	if u.path == target.path {
		return u.relativizeSamePath(target)
	}
	if !u.hasAuthority {
		return u.relativizeNoAuthority(target)
	}
	return u.relativizeWithAuthority(target)
}

// relativizeWithAuthority compares the two paths segment by segment and
// climbs out of the non-shared base directories with "../".
func (u *URI) relativizeWithAuthority(target *URI) (*URI, error) {
	basePath := u.path
	targetPath := target.path

	// An empty path is the root when an authority is present.
	if basePath == "" {
		basePath = "/"
	}
	if targetPath == "" {
		targetPath = "/"
	}

	// The directory of the base is the path up to and including its last
	// slash.
	baseDir := basePath
	if lastSlash := strings.LastIndex(baseDir, "/"); lastSlash > -1 {
		baseDir = baseDir[:lastSlash+1]
	}

	baseSegs := strings.Split(strings.Trim(baseDir, "/"), "/")
	targetSegs := strings.Split(strings.TrimPrefix(targetPath, "/"), "/")
	if baseDir == "/" {
		baseSegs = nil
	}
	if targetPath == "/" {
		targetSegs = nil
	}

	common := 0
	for common < len(baseSegs) && common < len(targetSegs) && baseSegs[common] == targetSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(baseSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))
	relPath := b.String()

	if relPath == "" {
		// The target sits in the base directory itself; "." names it.
		if lastSlash := strings.LastIndex(targetPath, "/"); lastSlash > -1 && targetPath[lastSlash+1:] == "" {
			return u.buildRelativeRef(".", target)
		}
	}

	return u.buildRelativeRef(relPath, target)
}

// relativizeNoAuthority handles two path-only URIs (e.g. "mailto:",
// "urn:" style schemes with rootless paths).
func (u *URI) relativizeNoAuthority(target *URI) (*URI, error) {
	baseSegs := strings.Split(u.path, "/")
	targetSegs := strings.Split(target.path, "/")

	var baseDirSegs []string
	if len(baseSegs) > 0 {
		baseDirSegs = baseSegs[:len(baseSegs)-1]
	}

	common := 0
	for common < len(baseDirSegs) && common < len(targetSegs) && baseDirSegs[common] == targetSegs[common] {
		common++
	}

	var b strings.Builder
	for i := common; i < len(baseDirSegs); i++ {
		b.WriteString("../")
	}
	b.WriteString(strings.Join(targetSegs[common:], "/"))

	relPath := b.String()
	if relPath == "" && u.path != target.path {
		relPath = "."
	}

	// A colon in the first segment would read as a scheme; shield it.
	if !strings.HasPrefix(relPath, ".") && !strings.HasPrefix(relPath, "/") {
		firstColon := strings.Index(relPath, ":")
		if firstColon != -1 {
			firstSlash := strings.Index(relPath, "/")
			if firstSlash == -1 || firstColon < firstSlash {
				relPath = "./" + relPath
			}
		}
	}

	return u.buildRelativeRef(relPath, target)
}

// relativizeSamePath handles identical paths, where only the query and
// fragment can differ.
func (u *URI) relativizeSamePath(target *URI) (*URI, error) {
	if u.hasQuery == target.hasQuery && u.query == target.query {
		if target.hasFragment {
			return target.reparseRef("#" + target.fragment)
		}
		return target.reparseRef("")
	}

	if !target.hasQuery && u.hasQuery {
		return u.relativizeSamePathNoTargetQuery(target)
	}

	return target.reparseRef(target.afterPath())
}

// relativizeSamePathNoTargetQuery re-states the target path, since an
// empty reference would carry the base query along.
func (u *URI) relativizeSamePathNoTargetQuery(target *URI) (*URI, error) {
	if !target.hasAuthority {
		return target.reparseRef(target.String())
	}

	if target.path != "" {
		lastSlash := strings.LastIndex(target.path, "/")
		relPath := target.path[lastSlash+1:]
		if relPath == "" {
			relPath = "."
		}
		return u.buildRelativeRef(relPath, target)
	}

	return target.reparseRef(target.afterScheme())
}

// buildRelativeRef appends the target's query and fragment to a relative
// path and parses the result.
func (u *URI) buildRelativeRef(relPath string, target *URI) (*URI, error) {
	var b strings.Builder
	b.WriteString(relPath)
	if target.hasQuery {
		b.WriteByte('?')
		b.WriteString(target.query)
	}
	if target.hasFragment {
		b.WriteByte('#')
		b.WriteString(target.fragment)
	}
	return target.reparseRef(b.String())
}

// afterScheme returns the reference string following the scheme delimiter:
// the relative part plus any query and fragment.
func (u *URI) afterScheme() string {
	return u.relative + u.afterPath()
}

// afterPath returns the query and fragment with their delimiters.
func (u *URI) afterPath() string {
	var b strings.Builder
	if u.hasQuery {
		b.WriteByte('?')
		b.WriteString(u.query)
	}
	if u.hasFragment {
		b.WriteByte('#')
		b.WriteString(u.fragment)
	}
	return b.String()
}

func (u *URI) reparseRef(s string) (*URI, error) {
	return parse(s, u.iri, false)
}
