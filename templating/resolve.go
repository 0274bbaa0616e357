package templating

import (
	"io"
	"log/slog"
	"strings"

	"github.com/valyala/fasttemplate"
)

// resolution tracks the Templates on the current resolution path.
type resolution struct {
	active map[*Template]struct{}
	path   []string
}

func newResolution() *resolution {
	return &resolution{active: make(map[*Template]struct{})}
}

// enter resolves b with its name pushed on the path.
func (rs *resolution) enter(b *Binding) (string, error) {
	rs.path = append(rs.path, b.name)
	defer func() { rs.path = rs.path[:len(rs.path)-1] }()

	return b.value.resolve(rs)
}

// Resolve substitutes the bindings into the text and returns the result.
// Unbound markers are kept verbatim. The only failure is a *CycleError
// when a Template is reached again through its own bindings.
func (t *Template) Resolve() (string, error) {
	return t.resolve(newResolution())
}

func (t *Template) resolve(rs *resolution) (string, error) {
	if _, ok := rs.active[t]; ok {
		err := &CycleError{Path: append([]string(nil), rs.path...)}
		slog.Debug("template cycle", "error", err)

		return "", err
	}

	rs.active[t] = struct{}{}
	defer delete(rs.active, t)

	if t.cfg.policy == EveryOccurrence {
		return t.expandEvery(rs)
	}

	return t.expandFirst(rs)
}

// expandFirst applies bindings in insertion order, each to the first
// occurrence of its marker in the output so far. Markers are matched as
// plain text. Referenced Templates are resolved only when their marker
// is present.
func (t *Template) expandFirst(rs *resolution) (string, error) {
	out := t.text

	for _, name := range t.names {
		marker := t.cfg.startTag + name + t.cfg.endTag
		if !strings.Contains(out, marker) {
			continue
		}

		val, err := rs.enter(t.bindings[name])
		if err != nil {
			return "", err
		}

		out = strings.Replace(out, marker, val, 1)
	}

	return out, nil
}

// expandEvery replaces every bound tag in one pass and writes unbound
// tags back unchanged.
func (t *Template) expandEvery(rs *resolution) (string, error) {
	return fasttemplate.ExecuteFuncStringWithErr(
		t.text, t.cfg.startTag, t.cfg.endTag,
		func(w io.Writer, tag string) (int, error) {
			b, ok := t.bindings[tag]
			if !ok {
				return io.WriteString(
					w, t.cfg.startTag+tag+t.cfg.endTag,
				)
			}

			val, err := rs.enter(b)
			if err != nil {
				return 0, err
			}

			return io.WriteString(w, val)
		},
	)
}
