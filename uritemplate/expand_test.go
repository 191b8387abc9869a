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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rfcVariables is the variable set used throughout RFC 6570, Section 3.2.
func rfcVariables() Values {
	return Values{
		"count":      []any{"one", "two", "three"},
		"dom":        []any{"example", "com"},
		"dub":        "me/too",
		"hello":      "Hello World!",
		"half":       "50%",
		"var":        "value",
		"who":        "fred",
		"base":       "http://example.com/home/",
		"path":       "/foo/bar",
		"list":       []any{"red", "green", "blue"},
		"keys":       Assoc{{Key: "semi", Value: ";"}, {Key: "dot", Value: "."}, {Key: "comma", Value: ","}},
		"v":          "6",
		"x":          "1024",
		"y":          "768",
		"empty":      "",
		"empty_keys": Assoc{},
		// undef is deliberately unbound
	}
}

func TestExpandRFCExamples(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		template string
		expected string
	}{
		// Level 1: simple string expansion
		{"{var}", "value"},
		{"{hello}", "Hello%20World%21"},
		{"{half}", "50%25"},
		// Level 2: reserved and fragment expansion
		{"O{empty}X", "OX"},
		{"O{undef}X", "OX"},
		{"{+var}", "value"},
		{"{+hello}", "Hello%20World!"},
		{"{+half}", "50%25"},
		{"{base}index", "http%3A%2F%2Fexample.com%2Fhome%2Findex"},
		{"{+base}index", "http://example.com/home/index"},
		{"{#var}", "#value"},
		{"{#hello}", "#Hello%20World!"},
		{"{#half}", "#50%25"},
		{"{+path}/here", "/foo/bar/here"},
		{"{#path}/here", "#/foo/bar/here"},
		// Level 3: multiple variables and the remaining operators
		{"{x,y}", "1024,768"},
		{"{x,hello,y}", "1024,Hello%20World%21,768"},
		{"{+x,hello,y}", "1024,Hello%20World!,768"},
		{"{+path,x}/here", "/foo/bar,1024/here"},
		{"{#x,hello,y}", "#1024,Hello%20World!,768"},
		{"{#path,x}/here", "#/foo/bar,1024/here"},
		{"X{.var}", "X.value"},
		{"X{.x,y}", "X.1024.768"},
		{"{/var}", "/value"},
		{"{/var,x}/here", "/value/1024/here"},
		{"{;x,y}", ";x=1024;y=768"},
		{"{;x,y,empty}", ";x=1024;y=768;empty"},
		{"{?x,y}", "?x=1024&y=768"},
		{"{?x,y,empty}", "?x=1024&y=768&empty="},
		{"?fixed=yes{&x}", "?fixed=yes&x=1024"},
		{"{&x,y,empty}", "&x=1024&y=768&empty="},
		// Level 4: prefix modifiers
		{"{var:3}", "val"},
		{"{var:30}", "value"},
		{"{+path:6}/here", "/foo/b/here"},
		{"{#path:6}/here", "#/foo/b/here"},
		{"X{.var:3}", "X.val"},
		{"{/var:1,var}", "/v/value"},
		{"{;hello:5}", ";hello=Hello"},
		{"{?var:3}", "?var=val"},
		{"{&var:3}", "&var=val"},
		// Level 4: composite values
		{"{list}", "red,green,blue"},
		{"{list*}", "red,green,blue"},
		{"{keys}", "semi,%3B,dot,.,comma,%2C"},
		{"{keys*}", "semi=%3B,dot=.,comma=%2C"},
		{"{+list}", "red,green,blue"},
		{"{+list*}", "red,green,blue"},
		{"{+keys}", "semi,;,dot,.,comma,,"},
		{"{+keys*}", "semi=;,dot=.,comma=,"},
		{"{#list}", "#red,green,blue"},
		{"{#list*}", "#red,green,blue"},
		{"{#keys}", "#semi,;,dot,.,comma,,"},
		{"{#keys*}", "#semi=;,dot=.,comma=,"},
		{"X{.list}", "X.red,green,blue"},
		{"X{.list*}", "X.red.green.blue"},
		{"{/list}", "/red,green,blue"},
		{"{/list*}", "/red/green/blue"},
		{"{/list*,path:4}", "/red/green/blue/%2Ffoo"},
		{"{;list}", ";list=red,green,blue"},
		{"{;list*}", ";list=red;list=green;list=blue"},
		{"{;keys}", ";keys=semi,%3B,dot,.,comma,%2C"},
		{"{;keys*}", ";semi=%3B;dot=.;comma=%2C"},
		{"{?list}", "?list=red,green,blue"},
		{"{?list*}", "?list=red&list=green&list=blue"},
		{"{?keys}", "?keys=semi,%3B,dot,.,comma,%2C"},
		{"{?keys*}", "?semi=%3B&dot=.&comma=%2C"},
		{"{&list}", "&list=red,green,blue"},
		{"{&list*}", "&list=red&list=green&list=blue"},
		{"{&keys}", "&keys=semi,%3B,dot,.,comma,%2C"},
		{"{&keys*}", "&semi=%3B&dot=.&comma=%2C"},
		// Absent and empty composites
		{"{empty_keys}", ""},
		{"{empty_keys*}", ""},
		{"{?empty_keys}", ""},
		{"{;count}", ";count=one,two,three"},
		{"{;count*}", ";count=one;count=two;count=three"},
	}

	vars := rfcVariables()
	for _, toPin := range testCases {
		test := toPin
		t.Run(test.template, func(t *testing.T) {
			t.Parallel()

			got, err := Expand(test.template, vars)
			require.NoError(t, err)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestExpandNonURILiteral(t *testing.T) {
	t.Parallel()

	got, err := Expand("§1", Values{})
	require.NoError(t, err)
	assert.Equal(t, "%C2%A71", got)
}

func TestExpandPrefixCountsScalarValues(t *testing.T) {
	t.Parallel()

	got, err := Expand("{var:2}", Values{"var": "héllo"})
	require.NoError(t, err)
	assert.Equal(t, "h%C3%A9", got, "the prefix modifier counts code points, not bytes")
}

func TestExpandCoercion(t *testing.T) {
	t.Parallel()

	t.Run("default JSON coercion", func(t *testing.T) {
		t.Parallel()

		vars := Values{
			"n":     42,
			"f":     4.5,
			"b":     true,
			"s":     "str",
			"mixed": []any{1, "two", false},
		}
		got, err := Expand("{n},{f},{b},{s}{?mixed*}", vars)
		require.NoError(t, err)
		assert.Equal(t, "42,4.5,true,str?mixed=1&mixed=two&mixed=false", got)
	})

	t.Run("custom coercion hook", func(t *testing.T) {
		t.Parallel()

		v, err := NewVariable("stamp", WithCoercion(func(value any) (string, bool) {
			n, ok := value.(int)
			if !ok {
				return "", false
			}
			return "epoch-" + string(rune('0'+n)), true
		}))
		require.NoError(t, err)
		expr, err := NewExpression(OpQuery, v)
		require.NoError(t, err)

		got := New(expr).Expand(Values{"stamp": 7})
		assert.Equal(t, "?stamp=epoch-7", got)
	})
}

func TestExpandBindings(t *testing.T) {
	t.Parallel()

	t.Run("function bindings", func(t *testing.T) {
		t.Parallel()

		vars := VariableFunc(func(name string) any {
			if name == "who" {
				return "fred"
			}
			return nil
		})
		got, err := Expand("{who}/{undef}", vars)
		require.NoError(t, err)
		assert.Equal(t, "fred/", got)
	})

	t.Run("sorted map order", func(t *testing.T) {
		t.Parallel()

		got, err := Expand("{?m*}", Values{"m": map[string]any{"b": "2", "a": "1"}})
		require.NoError(t, err)
		assert.Equal(t, "?a=1&b=2", got)
	})

	t.Run("typed slices", func(t *testing.T) {
		t.Parallel()

		got, err := Expand("{l}", Values{"l": []string{"a", "b"}})
		require.NoError(t, err)
		assert.Equal(t, "a,b", got)
	})
}

func TestExpandEmptyListSkipsPrefix(t *testing.T) {
	t.Parallel()

	// An expression whose variables all come up absent emits nothing at
	// all, including its first string.
	got, err := Expand("/find{?list*,keys*}", Values{"list": []any{}, "keys": Assoc{}})
	require.NoError(t, err)
	assert.Equal(t, "/find", got)
}

func TestExpandNamedExplodeEmptyElement(t *testing.T) {
	t.Parallel()

	// An element that coerces to the empty string emits name plus the
	// empty substitution instead of "name=".
	got, err := Expand("{;list*}", Values{"list": []any{"a", "", "b"}})
	require.NoError(t, err)
	assert.Equal(t, ";list=a;list;list=b", got)

	got, err = Expand("{?list*}", Values{"list": []any{"a", "", "b"}})
	require.NoError(t, err)
	assert.Equal(t, "?list=a&list=&list=b", got)

	got, err = Expand("{;keys*}", Values{"keys": Assoc{{Key: "a", Value: ""}}})
	require.NoError(t, err)
	assert.Equal(t, ";a", got)
}

func TestExpandDeepObject(t *testing.T) {
	t.Parallel()

	newDeepTemplate := func(t *testing.T, name string) *Template {
		t.Helper()
		v, err := NewVariable(name, WithDeepObject())
		require.NoError(t, err)
		expr, err := NewExpression(OpQuery, v)
		require.NoError(t, err)
		return New(Literal("/find"), expr)
	}

	t.Run("nested members flatten to bracket paths", func(t *testing.T) {
		t.Parallel()

		tmpl := newDeepTemplate(t, "filter")
		got := tmpl.Expand(Values{"filter": Assoc{
			{Key: "color", Value: Assoc{{Key: "eq", Value: "blue"}}},
			{Key: "size", Value: Assoc{
				{Key: "gt", Value: 10},
				{Key: "lt", Value: 20},
			}},
			{Key: "q", Value: "shoe s"},
		}})
		assert.Equal(t, "/find?filter[color][eq]=blue&filter[size][gt]=10&filter[size][lt]=20&filter[q]=shoe%20s", got)
	})

	t.Run("cycles are skipped silently", func(t *testing.T) {
		t.Parallel()

		cyclic := map[string]any{}
		cyclic["self"] = cyclic
		cyclic["leaf"] = "v"

		tmpl := newDeepTemplate(t, "f")
		got := tmpl.Expand(Values{"f": Assoc{{Key: "c", Value: cyclic}}})
		assert.Equal(t, "/find?f[c][leaf]=v", got)
	})

	t.Run("all-absent deep object emits nothing", func(t *testing.T) {
		t.Parallel()

		tmpl := newDeepTemplate(t, "f")
		got := tmpl.Expand(Values{"f": Assoc{{Key: "x", Value: nil}}})
		assert.Equal(t, "/find", got)
	})
}

func TestExpandExpressionAndVariable(t *testing.T) {
	t.Parallel()

	expr, err := ParseExpression("{?q,lang}")
	require.NoError(t, err)
	assert.Equal(t, "?q=chien&lang=fr", expr.Expand(Values{"q": "chien", "lang": "fr"}))
	assert.Equal(t, "?lang=fr", expr.Expand(Values{"lang": "fr"}))
	assert.Equal(t, "", expr.Expand(Values{}))

	v, err := ParseVariable("var:3")
	require.NoError(t, err)
	s, ok := v.Expand("value")
	require.True(t, ok)
	assert.Equal(t, "val", s)

	_, ok = v.Expand(nil)
	assert.False(t, ok)
}

func TestExpandParseFailure(t *testing.T) {
	t.Parallel()

	_, err := Expand("{", Values{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnclosedExpression)
}

func TestTemplateVariables(t *testing.T) {
	t.Parallel()

	parsed, err := Parse("{/id*}{?fields,first_name,last.name,token}")
	require.NoError(t, err)

	var names []string
	for _, v := range parsed.Variables() {
		names = append(names, v.Name())
	}
	assert.Equal(t, []string{"id", "fields", "first_name", "last.name", "token"}, names)
}
