package templating

// Binding pairs a placeholder name with the Value substituted for it.
// Bindings are immutable; rebinding a name means registering a new
// Binding on the owning Template.
type Binding struct {
	name  string
	value Value
}

// NewBinding validates name and value and returns a Binding. It fails
// with a *ValidationError matching ErrMissingKeyOrValue.
func NewBinding(name string, value Value) (*Binding, error) {
	if err := ValidatePair(name, value); err != nil {
		return nil, &ValidationError{
			Entity: entityBinding,
			Err:    ErrMissingKeyOrValue,
			Cause:  err,
		}
	}

	return &Binding{name: name, value: value}, nil
}

// Name returns the placeholder name.
func (b *Binding) Name() string {
	return b.name
}

// Value returns the bound Value.
func (b *Binding) Value() Value {
	return b.value
}

// ResolvedValue returns the literal text, or the current output of the
// referenced Template. Nothing is cached.
func (b *Binding) ResolvedValue() (string, error) {
	return newResolution().enter(b)
}
