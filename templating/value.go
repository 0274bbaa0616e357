package templating

// Value is what a Binding substitutes for its marker. It is a closed
// union: Literal or Reference.
type Value interface {
	resolve(rs *resolution) (string, error)
}

// Literal is verbatim substitution text.
type Literal string

func (li Literal) resolve(*resolution) (string, error) {
	return string(li), nil
}

// Reference substitutes the current resolved output of a shared Template.
type Reference struct {
	tpl *Template
}

// Ref returns a Value that resolves tpl each time it is substituted.
func Ref(tpl *Template) Reference {
	return Reference{tpl: tpl}
}

// Template returns the referenced Template. It is nil for the zero
// Reference.
func (re Reference) Template() *Template {
	return re.tpl
}

func (re Reference) resolve(rs *resolution) (string, error) {
	if re.tpl == nil {
		return "", nil
	}

	return re.tpl.resolve(rs)
}
