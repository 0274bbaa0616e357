package catalog

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"

	"github.com/byte4ever/nestedtmpl/templating"
)

// Sentinel errors for catalog construction and lookup.
var (
	ErrUnknownTemplate   = errors.New("unknown template")
	ErrDuplicateTemplate = errors.New("duplicate template")
	ErrUnknownReference  = errors.New("unknown template reference")
	ErrAmbiguousBinding  = errors.New(
		"binding must set exactly one of value or template",
	)
	ErrUnknownPolicy = errors.New("unknown policy")
)

type document struct {
	StartTag  string        `yaml:"start_tag" json:"start_tag"`
	EndTag    string        `yaml:"end_tag" json:"end_tag"`
	Templates []templateDoc `yaml:"templates" json:"templates"`
}

type templateDoc struct {
	Name     string       `yaml:"name" json:"name"`
	Text     string       `yaml:"text" json:"text"`
	Policy   string       `yaml:"policy" json:"policy"`
	Bindings []bindingDoc `yaml:"bindings" json:"bindings"`
}

type bindingDoc struct {
	Name     string  `yaml:"name" json:"name"`
	Value    *string `yaml:"value" json:"value"`
	Template *string `yaml:"template" json:"template"`
}

// Catalog is a set of named Templates. Templates referenced by other
// entries are shared, so mutating one through Lookup is visible in every
// template that binds it.
type Catalog struct {
	names     []string
	templates map[string]*templating.Template
}

// DecodeYAML reads a single YAML catalog document from in. Empty input
// yields an empty catalog.
func DecodeYAML(in io.Reader) (*Catalog, error) {
	const errCtx = "decoding yaml catalog"

	var doc document

	err := yaml.NewDecoder(in).Decode(&doc)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ca, err := build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ca, nil
}

// DecodeJSON parses a JSON catalog document.
func DecodeJSON(data []byte) (*Catalog, error) {
	const errCtx = "decoding json catalog"

	var doc document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	ca, err := build(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	return ca, nil
}

// build creates every template before binding any of them, so bindings
// may reference templates declared later in the document.
func build(doc document) (*Catalog, error) {
	const errCtx = "building catalog"

	ca := &Catalog{
		templates: make(map[string]*templating.Template, len(doc.Templates)),
	}

	for idx, td := range doc.Templates {
		if !templating.IsValidName(td.Name) {
			return nil, fmt.Errorf(
				"%s: template #%d: %w",
				errCtx, idx, templating.ErrInvalidKey,
			)
		}

		if _, ok := ca.templates[td.Name]; ok {
			return nil, fmt.Errorf(
				"%s: %w: %q", errCtx, ErrDuplicateTemplate, td.Name,
			)
		}

		policy, err := parsePolicy(td.Policy)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: template %q: %w", errCtx, td.Name, err,
			)
		}

		tpl, err := templating.New(
			td.Text,
			templating.WithDelimiters(doc.StartTag, doc.EndTag),
			templating.WithPolicy(policy),
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: template %q: %w", errCtx, td.Name, err,
			)
		}

		ca.names = append(ca.names, td.Name)
		ca.templates[td.Name] = tpl
	}

	for _, td := range doc.Templates {
		tpl := ca.templates[td.Name]

		for _, bd := range td.Bindings {
			value, err := ca.bindingValue(bd)
			if err != nil {
				return nil, fmt.Errorf(
					"%s: template %q: binding %q: %w",
					errCtx, td.Name, bd.Name, err,
				)
			}

			if _, err := tpl.Set(bd.Name, value); err != nil {
				return nil, fmt.Errorf(
					"%s: template %q: binding %q: %w",
					errCtx, td.Name, bd.Name, err,
				)
			}
		}
	}

	for _, name := range ca.names {
		if _, err := ca.templates[name].Resolve(); err != nil {
			return nil, fmt.Errorf(
				"%s: template %q: %w", errCtx, name, err,
			)
		}
	}

	slog.Debug("catalog built", "templates", len(ca.names))

	return ca, nil
}

func (ca *Catalog) bindingValue(
	bd bindingDoc,
) (templating.Value, error) {
	switch {
	case bd.Value != nil && bd.Template == nil:
		return templating.Literal(*bd.Value), nil
	case bd.Template != nil && bd.Value == nil:
		ref, ok := ca.templates[*bd.Template]
		if !ok {
			return nil, fmt.Errorf(
				"%w: %q", ErrUnknownReference, *bd.Template,
			)
		}

		return templating.Ref(ref), nil
	default:
		return nil, ErrAmbiguousBinding
	}
}

func parsePolicy(s string) (templating.Policy, error) {
	switch s {
	case "", templating.FirstOccurrence.String():
		return templating.FirstOccurrence, nil
	case templating.EveryOccurrence.String():
		return templating.EveryOccurrence, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Names returns the template names in document order.
func (ca *Catalog) Names() []string {
	return append([]string(nil), ca.names...)
}

// Lookup returns the template registered under name.
func (ca *Catalog) Lookup(name string) (*templating.Template, bool) {
	tpl, ok := ca.templates[name]

	return tpl, ok
}

// Resolve resolves the named template.
func (ca *Catalog) Resolve(name string) (string, error) {
	const errCtx = "resolving catalog template"

	tpl, ok := ca.templates[name]
	if !ok {
		return "", fmt.Errorf(
			"%s: %w: %q", errCtx, ErrUnknownTemplate, name,
		)
	}

	out, err := tpl.Resolve()
	if err != nil {
		return "", fmt.Errorf("%s: %q: %w", errCtx, name, err)
	}

	return out, nil
}

// ResolveAll resolves every template, keyed by name.
func (ca *Catalog) ResolveAll() (map[string]string, error) {
	out := make(map[string]string, len(ca.names))

	for _, name := range ca.names {
		val, err := ca.Resolve(name)
		if err != nil {
			return nil, err
		}

		out[name] = val
	}

	return out, nil
}
