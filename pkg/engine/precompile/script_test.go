package precompile

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The bundled compiler script is built once per test binary.
var bundled = New(Options{})

func TestBundledScriptEmitsTemplateFunction(t *testing.T) {
	js, err := bundled.Precompile(source{"hello.hbs", "Hello {{name}}!"}, nil)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(js, "function (Handlebars,depth0,helpers,partials,data) {\n"))
	assert.True(t, strings.HasSuffix(js, "  return program0([depth0], data);\n}"))
	assert.Contains(t, js, "    buffer += \"Hello \";\n")
	assert.Contains(t, js, "    buffer += escapeExpression(invoke(depths, data, \"name\", []));\n")
	assert.Contains(t, js, "    buffer += \"!\";\n")
}

func TestBundledScriptSections(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "each with else",
			text: "{{#each items}}<li>{{this}}</li>{{else}}none{{/each}}",
			want: []string{
				"block(\"each\", lookup(depths, data, \"items\"), depths, data, program1, program2)",
				"buffer += \"\\u003Cli>\";",
				"buffer += \"none\";",
			},
		},
		{
			name: "inverted",
			text: "{{^empty}}full{{/empty}}",
			want: []string{"block(\"unless\", lookup(depths, data, \"empty\"), depths, data, program1, null)"},
		},
		{
			name: "raw and partial",
			text: "{{{body}}}{{> footer}}",
			want: []string{
				"stringify(invoke(depths, data, \"body\", []))",
				"invokePartial(\"footer\", depths, data)",
			},
		},
		{
			name: "helper arguments",
			text: "{{format when \"short\" 2}}",
			want: []string{"invoke(depths, data, \"format\", [lookup(depths, data, \"when\"), \"short\", 2])"},
		},
		{
			name: "expression section closed by first word",
			text: "{{#len(items) > 1}}many{{/len(items)}}",
			want: []string{"block(\"len(items)\", lookup(depths, data, \">\"), depths, data, program1, null)"},
		},
		{
			name: "comments dropped",
			text: "a{{! note }}{{!-- {{long}} --}}b",
			want: []string{"buffer += \"a\";", "buffer += \"b\";"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js, err := bundled.Precompile(source{"t.hbs", tt.text}, nil)
			require.NoError(t, err)
			for _, w := range tt.want {
				assert.Contains(t, js, w)
			}
			assert.NotContains(t, js, "note")
		})
	}
}

func TestBundledScriptRejectsMalformedTemplates(t *testing.T) {
	tests := []struct {
		text   string
		reason string
	}{
		{"{{#a}}x", "unclosed section \"a\""},
		{"x\n{{/a}}", "line 2: unexpected {{/a}}"},
		{"{{#a}}{{/b}}", "a doesn't match b"},
		{"{{else}}", "outside of a section"},
		{"{{name", "unclosed mustache"},
		{"{{ }}", "empty mustache"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			_, err := bundled.Precompile(source{"bad.hbs", tt.text}, nil)

			var evalErr *EvaluationError
			require.True(t, errors.As(err, &evalErr))
			assert.Equal(t, "bad.hbs", evalErr.Filename)
			assert.Contains(t, err.Error(), tt.reason)
		})
	}
}
