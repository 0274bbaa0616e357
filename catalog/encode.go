package catalog

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/goccy/go-yaml"
)

// EncodeYAML writes the resolved templates to out as a YAML mapping in
// document order.
func (ca *Catalog) EncodeYAML(out io.Writer) error {
	const errCtx = "encoding yaml"

	ms := make(yaml.MapSlice, 0, len(ca.names))

	for _, name := range ca.names {
		val, err := ca.Resolve(name)
		if err != nil {
			return fmt.Errorf("%s: %w", errCtx, err)
		}

		ms = append(ms, yaml.MapItem{Key: name, Value: val})
	}

	buf, err := yaml.Marshal(ms)
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if _, err := out.Write(buf); err != nil {
		return fmt.Errorf("%s: writing output: %w", errCtx, err)
	}

	return nil
}

// EncodeJSON writes the resolved templates to out as a JSON object.
func (ca *Catalog) EncodeJSON(out io.Writer) error {
	const errCtx = "encoding json"

	resolved, err := ca.ResolveAll()
	if err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	if err := json.NewEncoder(out).Encode(resolved); err != nil {
		return fmt.Errorf("%s: %w", errCtx, err)
	}

	return nil
}
