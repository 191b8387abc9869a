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
	"strings"
	"unicode/utf8"
)

// IsPctEncoded reports whether a valid percent-encoded triplet ("%" followed
// by two hexadecimal digits) begins at byte offset off in s.
func IsPctEncoded(s string, off int) bool {
	return off >= 0 && off+2 < len(s) &&
		s[off] == '%' &&
		IsHexChar(rune(s[off+1])) &&
		IsHexChar(rune(s[off+2]))
}

// PctEncodeRune returns the canonical percent-encoding of r: one "%XX"
// triplet per byte of its UTF-8 representation, with uppercase hex digits.
func PctEncodeRune(r rune) string {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	out := make([]byte, 0, n*3)
	for i := range n {
		out = append(out, '%', HexEncode(buf[i]>>4), HexEncode(buf[i]))
	}
	return string(out)
}

// PctEncode percent-encodes s against the given character class. Runes in
// the class (evaluated in URI mode, not IRI mode) are copied verbatim;
// everything else is emitted as the percent-encoding of its UTF-8 bytes.
// The result contains only ASCII.
func PctEncode(s string, cs Charset) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsURIChar(r, cs, false) {
			b.WriteRune(r)
			continue
		}
		b.WriteString(PctEncodeRune(r))
	}
	return b.String()
}
