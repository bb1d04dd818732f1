// Package expr implements the small rule language used by section layouts:
// equality and inequality against string/bool/number literals, boolean
// composition with && and ||, negation, parentheses, and bare identifiers
// evaluated for truthiness. Identifiers resolve against Context.Values by
// dotted path.
package expr

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-payeeform/pkg/visibility"
)

// Evaluator parses and evaluates visibility rules. An empty rule is visible.
type Evaluator struct{}

// New constructs the evaluator.
func New() *Evaluator { return &Evaluator{} }

// Eval implements visibility.Evaluator.
func (e *Evaluator) Eval(rule string, ctx visibility.Context) (bool, error) {
	trimmed := strings.TrimSpace(rule)
	if trimmed == "" {
		return true, nil
	}
	p := &parser{input: trimmed}
	node, err := p.parseOr()
	if err != nil {
		return false, err
	}
	p.skipSpace()
	if p.pos < len(p.input) {
		return false, fmt.Errorf("expr: trailing input at %q", p.input[p.pos:])
	}
	return node.eval(ctx), nil
}

type node interface {
	eval(ctx visibility.Context) bool
}

type orNode struct{ left, right node }

func (n orNode) eval(ctx visibility.Context) bool {
	return n.left.eval(ctx) || n.right.eval(ctx)
}

type andNode struct{ left, right node }

func (n andNode) eval(ctx visibility.Context) bool {
	return n.left.eval(ctx) && n.right.eval(ctx)
}

type notNode struct{ inner node }

func (n notNode) eval(ctx visibility.Context) bool {
	return !n.inner.eval(ctx)
}

type truthyNode struct{ path string }

func (n truthyNode) eval(ctx visibility.Context) bool {
	value, ok := lookup(ctx.Values, n.path)
	return ok && truthy(value)
}

type compareNode struct {
	path    string
	negated bool
	literal any // string, bool, float64, or nil
}

func (n compareNode) eval(ctx visibility.Context) bool {
	value, _ := lookup(ctx.Values, n.path)
	equal := literalEquals(value, n.literal)
	if n.negated {
		return !equal
	}
	return equal
}

type parser struct {
	input string
	pos   int
}

func (p *parser) parseOr() (node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.consume("||") {
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = orNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (node, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.consume("&&") {
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = andNode{left: left, right: right}
	}
	return left, nil
}

func (p *parser) parseUnary() (node, error) {
	p.skipSpace()
	// Negation, but not the != operator.
	if strings.HasPrefix(p.input[p.pos:], "!") && !strings.HasPrefix(p.input[p.pos:], "!=") {
		p.pos++
		inner, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return notNode{inner: inner}, nil
	}
	return p.parsePrimary()
}

func (p *parser) parsePrimary() (node, error) {
	p.skipSpace()
	if p.consume("(") {
		inner, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if !p.consume(")") {
			return nil, errors.New("expr: missing closing parenthesis")
		}
		return inner, nil
	}

	ident := p.readIdentifier()
	if ident == "" {
		return nil, errors.New("expr: expected identifier")
	}

	negated := false
	switch {
	case p.consume("=="):
	case p.consume("!="):
		negated = true
	default:
		return truthyNode{path: ident}, nil
	}

	literal, err := p.readLiteral()
	if err != nil {
		return nil, err
	}
	return compareNode{path: ident, negated: negated, literal: literal}, nil
}

func (p *parser) readIdentifier() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		if ch == ' ' || ch == '\t' || ch == '(' || ch == ')' || ch == '!' || ch == '=' || ch == '&' || ch == '|' {
			break
		}
		p.pos++
	}
	return strings.TrimSpace(p.input[start:p.pos])
}

func (p *parser) readLiteral() (any, error) {
	p.skipSpace()
	if p.pos >= len(p.input) {
		return nil, errors.New("expr: missing literal after comparison")
	}

	if quote := p.input[p.pos]; quote == '"' || quote == '\'' {
		p.pos++
		start := p.pos
		for p.pos < len(p.input) && p.input[p.pos] != quote {
			p.pos++
		}
		if p.pos >= len(p.input) {
			return nil, errors.New("expr: unterminated string literal")
		}
		value := p.input[start:p.pos]
		p.pos++
		return value, nil
	}

	raw := p.readIdentifier()
	switch strings.ToLower(raw) {
	case "":
		return nil, errors.New("expr: missing literal after comparison")
	case "true":
		return true, nil
	case "false":
		return false, nil
	case "null", "nil":
		return nil, nil
	}
	if number, err := strconv.ParseFloat(raw, 64); err == nil {
		return number, nil
	}
	// Bare words compare as strings to keep layout rules forgiving.
	return raw, nil
}

func (p *parser) consume(token string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.input[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && (p.input[p.pos] == ' ' || p.input[p.pos] == '\t') {
		p.pos++
	}
}

func lookup(values map[string]any, path string) (any, bool) {
	if len(values) == 0 {
		return nil, false
	}
	if v, ok := values[path]; ok {
		return v, true
	}
	// Fall back to segment traversal for nested maps.
	var current any = values
	for _, part := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = m[part]
		if !ok {
			return nil, false
		}
	}
	return current, true
}

func literalEquals(value, literal any) bool {
	switch want := literal.(type) {
	case nil:
		return value == nil
	case bool:
		return coerceBool(value) == want
	case float64:
		got, ok := coerceNumber(value)
		return ok && got == want
	case string:
		return coerceString(value) == want
	default:
		return false
	}
}

func truthy(value any) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return strings.TrimSpace(v) != ""
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0
	default:
		return true
	}
}

func coerceBool(value any) bool {
	switch v := value.(type) {
	case bool:
		return v
	case string:
		parsed, err := strconv.ParseBool(strings.TrimSpace(v))
		if err == nil {
			return parsed
		}
		return strings.TrimSpace(v) != ""
	default:
		return truthy(value)
	}
}

func coerceNumber(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}

func coerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}
