package wgslpp

// Validator checks a fully expanded shader for language errors. The
// engine never invokes one; callers run it over Process output and
// surface its error as their own diagnostic.
type Validator interface {
	Validate(source string) error
}

// ValidatorFunc adapts a plain function to the Validator interface.
type ValidatorFunc func(source string) error

func (f ValidatorFunc) Validate(source string) error { return f(source) }
