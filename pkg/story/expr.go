package story

// Op is a comparison operator in a guard expression.
type Op string

const (
	OpEqual    Op = "="
	OpNotEqual Op = "!="
	OpGreater  Op = ">"
	OpLess     Op = "<"
)

// Operand is one side of a guard comparison or the right-hand side of an
// effect: either a variable reference or a literal value.
type Operand struct {
	Variable string // non-empty for a variable reference
	Literal  Value  // used when Variable is empty
}

// VarOperand returns an operand referencing a variable.
func VarOperand(name string) Operand { return Operand{Variable: name} }

// LitOperand returns an operand holding a literal value.
func LitOperand(v Value) Operand { return Operand{Literal: v} }

// Eval resolves the operand against an environment. A reference to an
// undefined variable is an error, never a default value.
func (o Operand) Eval(env Environment) (Value, error) {
	if o.Variable != "" {
		return env.Lookup(o.Variable)
	}
	return o.Literal, nil
}

// Expr is a guard expression: a binary comparison of two operands.
// Evaluation is side-effect-free and safe to repeat concurrently against a
// read-only view of the environment.
type Expr struct {
	Left  Operand
	Op    Op
	Right Operand
}

// Eval evaluates the comparison against env. ">" and "<" require both
// operands to be numbers; "=" and "!=" require matching kinds.
func (e Expr) Eval(env Environment) (bool, error) {
	left, err := e.Left.Eval(env)
	if err != nil {
		return false, err
	}
	right, err := e.Right.Eval(env)
	if err != nil {
		return false, err
	}
	switch e.Op {
	case OpEqual:
		return left.Equal(right)
	case OpNotEqual:
		eq, err := left.Equal(right)
		if err != nil {
			return false, err
		}
		return !eq, nil
	case OpGreater:
		c, err := left.Compare(right, OpGreater)
		if err != nil {
			return false, err
		}
		return c > 0, nil
	default:
		c, err := left.Compare(right, OpLess)
		if err != nil {
			return false, err
		}
		return c < 0, nil
	}
}

// Assignment is the single effect form the language allows:
// variable = literal-or-variable.
type Assignment struct {
	Target  string
	Operand Operand
}

// Apply evaluates the operand and writes the result into env. The write is
// the only mutation; if evaluation fails, env is untouched.
func (a Assignment) Apply(env Environment) error {
	v, err := a.Operand.Eval(env)
	if err != nil {
		return err
	}
	return env.Assign(a.Target, v)
}
