package catalog

import (
	"fmt"
	"io"
	"strings"

	"github.com/byte4ever/nestedtmpl/templating"
)

// ParseBindings reads "NAME VALUE" lines from in, split at the first
// space, and returns one literal Binding per line in input order. Lines
// without a space are skipped. A later line for the same name replaces
// the earlier one once the bindings are registered on a Template.
func ParseBindings(in io.Reader) ([]*templating.Binding, error) {
	const errCtx = "parsing bindings"

	content, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", errCtx, err)
	}

	var out []*templating.Binding

	for num, line := range strings.Split(string(content), "\n") {
		parts := strings.SplitN(strings.TrimSuffix(line, "\r"), " ", 2)
		if len(parts) != 2 {
			continue
		}

		b, err := templating.NewBinding(
			parts[0], templating.Literal(parts[1]),
		)
		if err != nil {
			return nil, fmt.Errorf(
				"%s: line %d: %w", errCtx, num+1, err,
			)
		}

		out = append(out, b)
	}

	return out, nil
}
