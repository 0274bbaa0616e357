package templating

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/valyala/fasttemplate"
)

// Template holds a marker-bearing text and the Bindings substituted into
// it. Bindings keep their insertion order, which is also the order in
// which Resolve applies them.
type Template struct {
	text     string
	names    []string
	bindings map[string]*Binding
	cfg      config
}

// New returns a Template for text. It fails with a *ValidationError
// matching ErrMissingTemplate when text is blank, and with the
// ValidatePair error of the first invalid initial binding.
func New(text string, opts ...Option) (*Template, error) {
	if !IsValidText(text) {
		return nil, &ValidationError{
			Entity: entityTemplate,
			Err:    ErrMissingTemplate,
		}
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	tpl := &Template{
		text:     text,
		bindings: make(map[string]*Binding),
		cfg:      cfg,
	}

	for _, b := range cfg.initial {
		if b == nil {
			return nil, ErrInvalidValue
		}

		val, err := b.ResolvedValue()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}

		if err := ValidatePair(b.Name(), Literal(val)); err != nil {
			return nil, err
		}

		tpl.register(b)
	}

	tpl.cfg.initial = nil

	return tpl, nil
}

// Text returns the template text verbatim.
func (t *Template) Text() string {
	return t.text
}

// SetText replaces the template text. It fails like New on blank text
// and leaves the Template unchanged.
func (t *Template) SetText(text string) (*Template, error) {
	if !IsValidText(text) {
		return t, &ValidationError{
			Entity: entityTemplate,
			Err:    ErrMissingTemplate,
		}
	}

	t.text = text

	return t, nil
}

// Bindings returns a snapshot of the registered bindings keyed by name.
func (t *Template) Bindings() map[string]*Binding {
	out := make(map[string]*Binding, len(t.bindings))
	for name, b := range t.bindings {
		out[name] = b
	}

	return out
}

// Names returns the binding names in insertion order.
func (t *Template) Names() []string {
	return append([]string(nil), t.names...)
}

// Lookup returns the binding registered under name.
func (t *Template) Lookup(name string) (*Binding, bool) {
	b, ok := t.bindings[name]

	return b, ok
}

// SetBinding registers b under its own name, replacing any binding with
// that name. An existing Binding is trusted: no validation is run. A nil
// Binding is ignored.
func (t *Template) SetBinding(b *Binding) *Template {
	if b != nil {
		t.register(b)
	}

	return t
}

// Set validates name and value, then binds them, replacing any binding
// with that name. On failure it returns the ValidatePair error and leaves
// the Template unchanged.
func (t *Template) Set(name string, value Value) (*Template, error) {
	if err := ValidatePair(name, value); err != nil {
		return t, err
	}

	t.register(&Binding{name: name, value: value})

	return t, nil
}

// MustSet is like Set but panics on invalid input. It is meant for
// chained construction from known-good values.
func (t *Template) MustSet(name string, value Value) *Template {
	if _, err := t.Set(name, value); err != nil {
		panic("templating: Set(" + name + "): " + err.Error())
	}

	return t
}

// register keeps the insertion position of a replaced name.
func (t *Template) register(b *Binding) {
	if _, ok := t.bindings[b.name]; ok {
		slog.Debug("replacing binding", "name", b.name)
	} else {
		t.names = append(t.names, b.name)
	}

	t.bindings[b.name] = b
}

// Placeholders returns the distinct marker names found in the text, in
// order of first appearance.
func (t *Template) Placeholders() []string {
	var out []string

	seen := make(map[string]struct{})

	_, _ = fasttemplate.ExecuteFunc(
		t.text, t.cfg.startTag, t.cfg.endTag, io.Discard,
		func(_ io.Writer, tag string) (int, error) {
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				out = append(out, tag)
			}

			return 0, nil
		},
	)

	return out
}

// Unbound returns the placeholders that have no registered binding.
func (t *Template) Unbound() []string {
	var out []string

	for _, name := range t.Placeholders() {
		if _, ok := t.bindings[name]; !ok {
			out = append(out, name)
		}
	}

	return out
}

// String returns the resolved output, or the raw text when resolution
// fails.
func (t *Template) String() string {
	out, err := t.Resolve()
	if err != nil {
		return t.text
	}

	return out
}
