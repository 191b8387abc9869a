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

// Package uritemplate implements RFC 6570 URI Templates at Level 4, with
// one extension: "deep object" expansion of nested associative values into
// name[k1][k2]=v form.
//
// A template is an ordered sequence of parts, each either a literal or an
// expression. Parsing a template percent-encodes any literal character that
// is allowed by the template grammar but not by the URI grammar, so emitted
// literals are always URI-safe. Expansion walks the parts against a set of
// variable bindings and is total: once a template is parsed, Expand returns
// a string for any bindings, silently skipping absent values.
//
// Percent-encoding and the per-operator allowed character sets are shared
// with the uri package.
package uritemplate

import (
	"strconv"
	"strings"

	"github.com/averlon/uritk/uri"
)

// Part is one element of a template: a Literal or an *Expression.
type Part interface {
	appendTo(b *strings.Builder)
}

// Literal is a run of template text outside any expression. Literals
// produced by Parse contain only URI-safe characters.
type Literal string

func (l Literal) appendTo(b *strings.Builder) {
	b.WriteString(string(l))
}

// String returns the literal text.
func (l Literal) String() string {
	return string(l)
}

// Operator identifies the expression operator of RFC 6570, Section 2.2.
// The zero value is simple string expansion ("{var}").
type Operator byte

const (
	OpSimple       Operator = 0
	OpReserved     Operator = '+'
	OpFragment     Operator = '#'
	OpLabel        Operator = '.'
	OpPathSegment  Operator = '/'
	OpPathParam    Operator = ';'
	OpQuery        Operator = '?'
	OpContinuation Operator = '&'
)

// opDefaults are the expansion parameters an operator selects for every
// variable in its expression.
type opDefaults struct {
	first     string
	separator string
	named     bool
	empty     string
	allow     uri.Charset
}

func (op Operator) defaults() (opDefaults, bool) {
	switch op {
	case OpSimple:
		return opDefaults{"", ",", false, "", uri.CharsetUnreserved}, true
	case OpReserved:
		return opDefaults{"", ",", false, "", uri.CharsetReserved}, true
	case OpFragment:
		return opDefaults{"#", ",", false, "", uri.CharsetReserved}, true
	case OpLabel:
		return opDefaults{".", ".", false, "", uri.CharsetUnreserved}, true
	case OpPathSegment:
		return opDefaults{"/", "/", false, "", uri.CharsetUnreserved}, true
	case OpPathParam:
		return opDefaults{";", ";", true, "", uri.CharsetUnreserved}, true
	case OpQuery:
		return opDefaults{"?", "&", true, "=", uri.CharsetUnreserved}, true
	case OpContinuation:
		return opDefaults{"&", "&", true, "=", uri.CharsetUnreserved}, true
	}
	return opDefaults{}, false
}

// Expression is a "{...}" template group: an operator and its variables.
type Expression struct {
	op        Operator
	variables []*Variable
	first     string
	separator string
}

// NewExpression builds an expression from an operator and at least one
// variable. The operator's expansion defaults are applied to copies of the
// given variables, leaving the arguments untouched.
func NewExpression(op Operator, vars ...*Variable) (*Expression, error) {
	d, ok := op.defaults()
	if !ok {
		return nil, &Error{Message: "reserved operator", Err: ErrReservedOperator}
	}
	if len(vars) == 0 {
		return nil, &Error{Message: "empty expression", Err: ErrEmptyExpression}
	}
	e := &Expression{op: op, first: d.first, separator: d.separator}
	for _, v := range vars {
		bound := *v
		bound.applyDefaults(d)
		e.variables = append(e.variables, &bound)
	}
	return e, nil
}

// Operator returns the expression's operator.
func (e *Expression) Operator() Operator {
	return e.op
}

// Variables returns the expression's variable specifiers in order.
func (e *Expression) Variables() []*Variable {
	return e.variables
}

func (e *Expression) appendTo(b *strings.Builder) {
	b.WriteByte('{')
	if e.op != OpSimple {
		b.WriteByte(byte(e.op))
	}
	for i, v := range e.variables {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.String())
	}
	b.WriteByte('}')
}

// String formats the expression back to its template text.
func (e *Expression) String() string {
	var b strings.Builder
	e.appendTo(&b)
	return b.String()
}

// CoerceFunc converts a leaf binding value to its string form. Returning
// false marks the value absent.
type CoerceFunc func(value any) (string, bool)

// Variable is a single variable specifier inside an expression: a name
// plus the modifiers and operator-derived expansion parameters.
type Variable struct {
	name               string
	separator          string
	compositeSeparator string
	named              bool
	empty              string
	allow              uri.Charset
	maxLength          int
	explode            bool
	deepObject         bool
	coerce             CoerceFunc
}

// VariableOption configures a Variable built by NewVariable.
type VariableOption func(*Variable)

// WithExplode applies the "*" modifier: composite values expand as
// multiple items.
func WithExplode() VariableOption {
	return func(v *Variable) { v.explode = true }
}

// WithMaxLength applies the ":n" prefix modifier, limiting string
// expansions to the first n Unicode scalar values.
func WithMaxLength(n int) VariableOption {
	return func(v *Variable) { v.maxLength = n }
}

// WithDeepObject selects deep-object expansion for associative values.
// Deep object is an exploded form, so it implies WithExplode.
func WithDeepObject() VariableOption {
	return func(v *Variable) {
		v.deepObject = true
		v.explode = true
	}
}

// WithCoercion installs a custom value-to-string coercion for the
// variable's leaf values.
func WithCoercion(fn CoerceFunc) VariableOption {
	return func(v *Variable) { v.coerce = fn }
}

// NewVariable builds a variable specifier. The name must match the varname
// grammar of RFC 6570 and the explode and prefix modifiers are mutually
// exclusive; the prefix length must lie in [1, 9999].
func NewVariable(name string, opts ...VariableOption) (*Variable, error) {
	v := newVariable(name)
	for _, opt := range opts {
		opt(v)
	}
	if !isValidVarname(name) {
		return nil, newError(ErrInvalidVariable, "invalid variable", name, 0)
	}
	if v.maxLength != -1 && (v.maxLength < 1 || v.maxLength >= 10000) {
		return nil, newError(ErrInvalidMaxLength, "invalid maxLength", name, 0)
	}
	if v.explode && v.maxLength > 0 {
		return nil, newError(ErrInvalidVariable, "explode and prefix modifiers are exclusive", name, 0)
	}
	return v, nil
}

// newVariable returns a variable carrying the simple-operator defaults.
func newVariable(name string) *Variable {
	return &Variable{
		name:               name,
		separator:          ",",
		compositeSeparator: ",",
		allow:              uri.CharsetUnreserved,
		maxLength:          -1,
	}
}

func (v *Variable) applyDefaults(d opDefaults) {
	v.separator = d.separator
	v.named = d.named
	v.empty = d.empty
	v.allow = d.allow
}

// Name returns the variable name, with any percent-triplets verbatim.
func (v *Variable) Name() string {
	return v.name
}

// Exploded reports whether the "*" modifier is set.
func (v *Variable) Exploded() bool {
	return v.explode
}

// MaxLength returns the prefix limit, or -1 when unlimited.
func (v *Variable) MaxLength() int {
	return v.maxLength
}

// DeepObject reports whether deep-object expansion is selected.
func (v *Variable) DeepObject() bool {
	return v.deepObject
}

// String formats the variable specifier ("name", "name*" or "name:3").
func (v *Variable) String() string {
	switch {
	case v.explode:
		return v.name + "*"
	case v.maxLength > 0:
		return v.name + ":" + strconv.Itoa(v.maxLength)
	}
	return v.name
}

// Template is an ordered sequence of literal and expression parts.
type Template struct {
	parts []Part
}

// New builds a template from parts. Literal parts are taken as-is; use
// Parse to have literals checked and encoded.
func New(parts ...Part) *Template {
	return &Template{parts: parts}
}

// Parts returns the template's parts in order.
func (t *Template) Parts() []Part {
	return t.parts
}

// Variables returns every variable specifier of the template, in template
// order, including duplicates.
func (t *Template) Variables() []*Variable {
	var vars []*Variable
	for _, part := range t.parts {
		if e, ok := part.(*Expression); ok {
			vars = append(vars, e.variables...)
		}
	}
	return vars
}

// String formats the template back to its text form.
func (t *Template) String() string {
	var b strings.Builder
	for _, part := range t.parts {
		part.appendTo(&b)
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler.
func (t *Template) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, parsing the template
// text.
func (t *Template) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = *parsed
	return nil
}
