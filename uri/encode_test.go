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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPctEncodeRune(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		char     rune
		expected string
	}{
		{' ', "%20"},
		{'%', "%25"},
		{0x7F, "%7F"},
		{'§', "%C2%A7"},   // two UTF-8 bytes
		{'€', "%E2%82%AC"}, // three UTF-8 bytes
		{0x10348, "%F0%90%8D%88"}, // four UTF-8 bytes
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, PctEncodeRune(tc.char))
	}
}

func TestPctEncode(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello%20World%21", PctEncode("Hello World!", CharsetUnreserved))
	assert.Equal(t, "Hello%20World!", PctEncode("Hello World!", CharsetReserved))
	assert.Equal(t, "50%25", PctEncode("50%", CharsetUnreserved))
	assert.Equal(t, "caf%C3%A9", PctEncode("café", CharsetUnreserved))
	assert.Equal(t, "a%2Fb", PctEncode("a/b", CharsetUnreserved))
	assert.Equal(t, "a/b", PctEncode("a/b", CharsetQuery), "query class admits '/'")
}

func TestPctEncodeIsASCII(t *testing.T) {
	t.Parallel()

	out := PctEncode("héllo wörld €", CharsetReserved)
	for i := 0; i < len(out); i++ {
		assert.LessOrEqual(t, out[i], byte(0x7F))
	}
}

func TestIsPctEncoded(t *testing.T) {
	t.Parallel()

	assert.True(t, IsPctEncoded("%2F", 0))
	assert.True(t, IsPctEncoded("x%af", 1))
	assert.False(t, IsPctEncoded("%2", 0))
	assert.False(t, IsPctEncoded("%", 0))
	assert.False(t, IsPctEncoded("%2Z", 0))
	assert.False(t, IsPctEncoded("a2F", 0))
	assert.False(t, IsPctEncoded("%2F", 1))
}
