// Package visibility defines the contract section layouts use to decide
// whether a field or section applies to the current form state.
package visibility

// Context supplies rule inputs. Values holds the flattened form state keyed
// by dotted paths ("biz_type.is_minor").
type Context struct {
	Values map[string]any
}

// Evaluator decides whether a layout entry is visible for the given rule.
type Evaluator interface {
	Eval(rule string, ctx Context) (bool, error)
}

// EvaluatorFunc adapts a function into an Evaluator.
type EvaluatorFunc func(rule string, ctx Context) (bool, error)

// Eval delegates to the underlying function.
func (fn EvaluatorFunc) Eval(rule string, ctx Context) (bool, error) {
	return fn(rule, ctx)
}
