package catalog_test

import (
	"bytes"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/byte4ever/nestedtmpl/catalog"
	"github.com/byte4ever/nestedtmpl/templating"
)

const mailYAML = `
templates:
  - name: greeting
    text: "Hello {{who}}. {{footer}}"
    bindings:
      - name: who
        value: World
      - name: footer
        template: footer
  - name: footer
    text: "Sent by {{sender}}"
    bindings:
      - name: sender
        value: ops
`

func decodeYAML(tb testing.TB, doc string) *catalog.Catalog {
	tb.Helper()

	ca, err := catalog.DecodeYAML(strings.NewReader(doc))
	require.NoError(tb, err)

	return ca
}

func TestDecodeYAML_forward_reference(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	assert.Equal(t, []string{"greeting", "footer"}, ca.Names())

	got, err := ca.Resolve("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello World. Sent by ops", got)
}

func TestDecodeYAML_shared_reference(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	footer, ok := ca.Lookup("footer")
	require.True(t, ok)

	footer.MustSet("sender", templating.Literal("dev"))

	got, err := ca.Resolve("greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello World. Sent by dev", got)
}

func TestDecodeYAML_custom_tags_and_policy(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, `
start_tag: "<%"
end_tag: "%>"
templates:
  - name: twice
    text: "<%k%>-<%k%>-{{k}}"
    policy: every
    bindings:
      - name: k
        value: v
  - name: once
    text: "<%k%>-<%k%>"
    bindings:
      - name: k
        value: v
`)

	got, err := ca.ResolveAll()
	require.NoError(t, err)
	assert.Equal(
		t,
		map[string]string{"twice": "v-v-{{k}}", "once": "v-<%k%>"},
		got,
	)
}

func TestDecodeYAML_empty_input(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, "")

	assert.Empty(t, ca.Names())
}

func TestDecodeYAML_errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
		want error
	}{
		{
			name: "duplicate template",
			doc: `
templates:
  - {name: a, text: x}
  - {name: a, text: y}
`,
			want: catalog.ErrDuplicateTemplate,
		},
		{
			name: "blank template name",
			doc: `
templates:
  - {name: " ", text: x}
`,
			want: templating.ErrInvalidKey,
		},
		{
			name: "blank text",
			doc: `
templates:
  - {name: a, text: ""}
`,
			want: templating.ErrMissingTemplate,
		},
		{
			name: "unknown reference",
			doc: `
templates:
  - name: a
    text: "{{k}}"
    bindings:
      - {name: k, template: nope}
`,
			want: catalog.ErrUnknownReference,
		},
		{
			name: "value and template",
			doc: `
templates:
  - name: a
    text: "{{k}}"
    bindings:
      - {name: k, value: v, template: a}
`,
			want: catalog.ErrAmbiguousBinding,
		},
		{
			name: "neither value nor template",
			doc: `
templates:
  - name: a
    text: "{{k}}"
    bindings:
      - {name: k}
`,
			want: catalog.ErrAmbiguousBinding,
		},
		{
			name: "blank value",
			doc: `
templates:
  - name: a
    text: "{{k}}"
    bindings:
      - {name: k, value: " "}
`,
			want: templating.ErrInvalidValue,
		},
		{
			name: "unknown policy",
			doc: `
templates:
  - {name: a, text: x, policy: sometimes}
`,
			want: catalog.ErrUnknownPolicy,
		},
		{
			name: "cycle",
			doc: `
templates:
  - name: a
    text: "a({{b}})"
    bindings:
      - {name: b, template: b}
  - name: b
    text: "b({{a}})"
    bindings:
      - {name: a, template: a}
`,
			want: templating.ErrCyclicReference,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := catalog.DecodeYAML(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.Contains(t, err.Error(), "decoding yaml catalog")
		})
	}
}

func TestDecodeYAML_malformed(t *testing.T) {
	t.Parallel()

	_, err := catalog.DecodeYAML(strings.NewReader("templates: [a: b: c"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding yaml catalog")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	ca, err := catalog.DecodeJSON([]byte(`{
  "templates": [
    {"name": "outer", "text": "[{{inner}}]",
     "bindings": [{"name": "inner", "template": "inner"}]},
    {"name": "inner", "text": "{{x}}",
     "bindings": [{"name": "x", "value": "42"}]}
  ]
}`))
	require.NoError(t, err)

	got, err := ca.Resolve("outer")
	require.NoError(t, err)
	assert.Equal(t, "[42]", got)
}

func TestDecodeJSON_malformed(t *testing.T) {
	t.Parallel()

	_, err := catalog.DecodeJSON([]byte(`{"templates": [`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding json catalog")
}

func TestResolve_unknown_template(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	_, err := ca.Resolve("missing")
	assert.ErrorIs(t, err, catalog.ErrUnknownTemplate)
}

func TestResolveAll_reports_cycle_created_after_build(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	footer, ok := ca.Lookup("footer")
	require.True(t, ok)

	greeting, ok := ca.Lookup("greeting")
	require.True(t, ok)

	footer.MustSet("sender", templating.Ref(greeting))

	_, err := ca.ResolveAll()
	assert.ErrorIs(t, err, templating.ErrCyclicReference)

	var buf bytes.Buffer
	assert.ErrorIs(t, ca.EncodeJSON(&buf), templating.ErrCyclicReference)
	assert.ErrorIs(t, ca.EncodeYAML(&buf), templating.ErrCyclicReference)
}

func TestEncodeYAML_document_order(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	var buf bytes.Buffer
	require.NoError(t, ca.EncodeYAML(&buf))

	out := buf.String()
	assert.Less(
		t,
		strings.Index(out, "greeting:"),
		strings.Index(out, "footer:"),
	)

	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(
		t,
		map[string]string{
			"greeting": "Hello World. Sent by ops",
			"footer":   "Sent by ops",
		},
		got,
	)
}

func TestEncodeJSON(t *testing.T) {
	t.Parallel()

	ca := decodeYAML(t, mailYAML)

	var buf bytes.Buffer
	require.NoError(t, ca.EncodeJSON(&buf))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(
		t,
		map[string]string{
			"greeting": "Hello World. Sent by ops",
			"footer":   "Sent by ops",
		},
		got,
	)
}
