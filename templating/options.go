package templating

const (
	defaultStartTag = "{{"
	defaultEndTag   = "}}"
)

// Policy selects how many occurrences of a marker are substituted.
type Policy int

const (
	// FirstOccurrence replaces only the first occurrence of each bound
	// marker. A repeated marker keeps its later occurrences verbatim:
	// "{{k}}_{{k}}" with k=v resolves to "v_{{k}}".
	FirstOccurrence Policy = iota

	// EveryOccurrence replaces every occurrence of each bound marker in a
	// single left-to-right pass. Substituted text is not rescanned.
	EveryOccurrence
)

// String returns the policy name used in catalog documents.
func (p Policy) String() string {
	switch p {
	case FirstOccurrence:
		return "first"
	case EveryOccurrence:
		return "every"
	default:
		return "unknown"
	}
}

type config struct {
	startTag string
	endTag   string
	policy   Policy
	initial  []*Binding
}

func defaultConfig() config {
	return config{
		startTag: defaultStartTag,
		endTag:   defaultEndTag,
		policy:   FirstOccurrence,
	}
}

// Option configures a Template at construction.
type Option func(*config)

// WithDelimiters sets the marker tags. An empty tag keeps its default
// ("{{" or "}}").
func WithDelimiters(start, end string) Option {
	return func(c *config) {
		if start != "" {
			c.startTag = start
		}

		if end != "" {
			c.endTag = end
		}
	}
}

// WithPolicy sets the substitution policy. Default: FirstOccurrence.
func WithPolicy(p Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithBindings registers initial bindings. Each one is validated against
// its own name and its current resolved value, as Set would do.
func WithBindings(bs ...*Binding) Option {
	return func(c *config) {
		c.initial = append(c.initial, bs...)
	}
}
