package story

// Environment maps variable names to values. The story's initial environment
// is built once at load time and never mutated; every session clones it and
// owns the clone.
type Environment map[string]Value

// Clone returns an independent copy. Mutating the copy never affects the
// original.
func (e Environment) Clone() Environment {
	out := make(Environment, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Lookup resolves a variable reference.
func (e Environment) Lookup(name string) (Value, error) {
	v, ok := e[name]
	if !ok {
		return Value{}, &UndefinedVariableError{Name: name}
	}
	return v, nil
}

// Assign overwrites an existing binding. Assigning to a variable no SET
// statement declared is an error (implicit declaration is rejected), as is
// changing the kind of an existing binding.
func (e Environment) Assign(name string, v Value) error {
	current, ok := e[name]
	if !ok {
		return &UndefinedVariableError{Name: name}
	}
	if current.Kind != v.Kind {
		return &TypeMismatchError{Op: "=", Left: current.Kind, Right: v.Kind}
	}
	e[name] = v
	return nil
}
