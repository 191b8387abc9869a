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
	"encoding/json"
	"reflect"
	"sort"
)

// Variables supplies the bindings an expansion draws from. Get reports a
// value for a variable name; returning false, or a nil value, marks the
// variable absent and the expansion skips it silently.
type Variables interface {
	Get(name string) (any, bool)
}

// Values is a map-backed Variables implementation.
type Values map[string]any

// Get implements Variables.
func (v Values) Get(name string) (any, bool) {
	value, ok := v[name]
	return value, ok
}

// VariableFunc adapts a lookup function to the Variables interface. A nil
// result marks the variable absent.
type VariableFunc func(name string) any

// Get implements Variables.
func (f VariableFunc) Get(name string) (any, bool) {
	value := f(name)
	return value, value != nil
}

// Member is one key/value pair of an associative template value.
type Member struct {
	Key   string
	Value any
}

// Assoc is an associative template value with insertion-preserving order.
// RFC 6570 expansions of associative values depend on member order, so an
// Assoc should be preferred over a plain map whenever order matters.
type Assoc []Member

// asList converts a binding value to a list, if it is one. Slices and
// arrays of any element type qualify, except []byte, which coerces as a
// scalar via its JSON form.
func asList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []byte:
		return nil, false
	case Assoc:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asAssoc converts a binding value to an associative value, if it is one.
// An Assoc keeps its order; maps with string keys are iterated in sorted
// key order so that expansion stays deterministic.
func asAssoc(value any) (Assoc, bool) {
	switch v := value.(type) {
	case Assoc:
		return v, true
	case map[string]any:
		return sortedMembers(v), true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	members := make(Assoc, 0, rv.Len())
	for _, key := range rv.MapKeys() {
		members = append(members, Member{Key: key.String(), Value: rv.MapIndex(key).Interface()})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Key < members[j].Key })
	return members, true
}

func sortedMembers(m map[string]any) Assoc {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	members := make(Assoc, 0, len(keys))
	for _, k := range keys {
		members = append(members, Member{Key: k, Value: m[k]})
	}
	return members
}

// containerID returns an identity for a list or associative container,
// used to detect reference cycles during deep-object expansion.
func containerID(value any) (uintptr, bool) {
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		return rv.Pointer(), true
	}
	return 0, false
}

// defaultCoerce renders a leaf value: strings pass through unchanged and
// anything else JSON-serialisable takes its JSON form. A nil value, or one
// JSON cannot render, is absent.
func defaultCoerce(value any) (string, bool) {
	switch v := value.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	}
	b, err := json.Marshal(value)
	if err != nil {
		return "", false
	}
	return string(b), true
}

func (v *Variable) coerceValue(value any) (string, bool) {
	if v.coerce != nil {
		return v.coerce(value)
	}
	return defaultCoerce(value)
}
