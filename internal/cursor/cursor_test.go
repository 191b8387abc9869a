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

package cursor

import "testing"

func TestCursorAdvance(t *testing.T) {
	c := New("aé€", false)

	r, ok := c.Peek()
	if !ok || r != 'a' {
		t.Fatalf("Peek() = (%q, %v), want 'a'", r, ok)
	}
	if c.Offset != 0 {
		t.Fatal("Peek must not advance")
	}

	for _, want := range []rune{'a', 'é', '€'} {
		r, ok := c.Next()
		if !ok || r != want {
			t.Fatalf("Next() = (%q, %v), want %q", r, ok, want)
		}
	}
	if c.More() {
		t.Error("cursor must be exhausted")
	}
	if _, ok := c.Next(); ok {
		t.Error("Next at the end must report false")
	}
}

func TestCursorNarrowing(t *testing.T) {
	c := New("ab[cd]ef", false)
	c.Skip(3) // position at 'c'

	end := c.IndexByte(']')
	if end != 5 {
		t.Fatalf("IndexByte(']') = %d, want 5", end)
	}

	prev := c.Narrow(end)
	if c.Rest() != "cd" {
		t.Errorf("Rest() = %q, want %q", c.Rest(), "cd")
	}
	if c.IndexByte('f') != -1 {
		t.Error("IndexByte must not see past the narrowed limit")
	}
	for c.More() {
		c.Next()
	}
	if c.Offset != end {
		t.Errorf("Offset = %d, want the narrowed limit %d", c.Offset, end)
	}

	c.Widen(prev)
	if !c.Consume(']') {
		t.Error("Consume(']') after widening must succeed")
	}
	if c.Slice(3) != "cd]" {
		t.Errorf("Slice(3) = %q, want %q", c.Slice(3), "cd]")
	}
}

func TestCursorConsume(t *testing.T) {
	c := New("xy", false)
	if c.Consume('y') {
		t.Error("Consume must not advance on a mismatch")
	}
	if !c.StartsWith('x') || !c.Consume('x') || !c.Consume('y') {
		t.Error("Consume must advance on matches")
	}
	if c.Consume('z') {
		t.Error("Consume at the end must report false")
	}
}
