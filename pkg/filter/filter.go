// Package filter parses the prefix filter expressions LakeSoul readers accept
// in the source.filter option, e.g. or(lt(a.b.c,2.0),gt(a.b.c,3.0)).
//
// Values are kept as the literal text that appears in the expression; typing
// them against the column is left to the reader.
package filter

import (
	"strings"

	"github.com/ajitpratap0/lakesoul-connector/pkg/errors"
)

// Op is a filter operator name
type Op string

const (
	OpEq  Op = "eq"
	OpNe  Op = "ne"
	OpLt  Op = "lt"
	OpLe  Op = "le"
	OpGt  Op = "gt"
	OpGe  Op = "ge"
	OpAnd Op = "and"
	OpOr  Op = "or"
	OpNot Op = "not"
)

// IsComparison reports whether op compares a column with a value
func (op Op) IsComparison() bool {
	switch op {
	case OpEq, OpNe, OpLt, OpLe, OpGt, OpGe:
		return true
	}
	return false
}

// Expr is a parsed filter expression
type Expr interface {
	// String renders the expression in canonical form, which Parse accepts
	String() string
	walk(fn func(Expr))
}

// Comparison compares a column with a literal value
type Comparison struct {
	Op     Op
	Column string
	Value  string
}

func (c *Comparison) String() string {
	return string(c.Op) + "(" + c.Column + "," + c.Value + ")"
}

func (c *Comparison) walk(fn func(Expr)) { fn(c) }

// Logical combines two expressions with and/or
type Logical struct {
	Op    Op
	Left  Expr
	Right Expr
}

func (l *Logical) String() string {
	return string(l.Op) + "(" + l.Left.String() + "," + l.Right.String() + ")"
}

func (l *Logical) walk(fn func(Expr)) {
	fn(l)
	l.Left.walk(fn)
	l.Right.walk(fn)
}

// Not negates an expression
type Not struct {
	Expr Expr
}

func (n *Not) String() string {
	return string(OpNot) + "(" + n.Expr.String() + ")"
}

func (n *Not) walk(fn func(Expr)) {
	fn(n)
	n.Expr.walk(fn)
}

// Parse parses a filter expression. Malformed input yields a validation error.
func Parse(s string) (Expr, error) {
	expr, err := parse(strings.TrimSpace(s))
	if err != nil {
		return nil, err.WithDetail("filter", s)
	}
	return expr, nil
}

func parse(s string) (Expr, *errors.Error) {
	open := strings.IndexByte(s, '(')
	if open <= 0 {
		return nil, errors.Newf(errors.ErrorTypeValidation, "expected op(...) in filter, got %q", s)
	}
	if !strings.HasSuffix(s, ")") {
		return nil, errors.Newf(errors.ErrorTypeValidation, "unterminated filter expression %q", s)
	}

	op := Op(strings.ToLower(strings.TrimSpace(s[:open])))
	args, err := splitArgs(s[open+1 : len(s)-1])
	if err != nil {
		return nil, err
	}

	switch {
	case op.IsComparison():
		if len(args) < 2 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "%s needs a column and a value", op)
		}
		column := args[0]
		value := strings.TrimSpace(strings.Join(args[1:], ","))
		if column == "" || value == "" {
			return nil, errors.Newf(errors.ErrorTypeValidation, "%s has an empty operand", op)
		}
		if strings.ContainsAny(column, "()") || strings.ContainsAny(value, "()") {
			return nil, errors.Newf(errors.ErrorTypeValidation, "%s operands must be a column and a literal", op)
		}
		return &Comparison{Op: op, Column: column, Value: value}, nil

	case op == OpAnd || op == OpOr:
		if len(args) != 2 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "%s takes two expressions, got %d", op, len(args))
		}
		left, err := parse(args[0])
		if err != nil {
			return nil, err
		}
		right, err := parse(args[1])
		if err != nil {
			return nil, err
		}
		return &Logical{Op: op, Left: left, Right: right}, nil

	case op == OpNot:
		if len(args) != 1 {
			return nil, errors.Newf(errors.ErrorTypeValidation, "not takes one expression, got %d", len(args))
		}
		inner, err := parse(args[0])
		if err != nil {
			return nil, err
		}
		return &Not{Expr: inner}, nil
	}

	return nil, errors.Newf(errors.ErrorTypeValidation, "unknown filter operator %q", op)
}

// splitArgs splits on commas outside nested parentheses and trims each part
func splitArgs(s string) ([]string, *errors.Error) {
	var (
		args  []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, errors.New(errors.ErrorTypeValidation, "unbalanced parentheses in filter")
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, errors.New(errors.ErrorTypeValidation, "unbalanced parentheses in filter")
	}
	last := strings.TrimSpace(s[start:])
	if last == "" && len(args) == 0 {
		return nil, nil
	}
	return append(args, last), nil
}

// Columns returns the columns referenced by expr in first-seen order
func Columns(expr Expr) []string {
	var cols []string
	seen := map[string]bool{}
	expr.walk(func(e Expr) {
		if c, ok := e.(*Comparison); ok && !seen[c.Column] {
			seen[c.Column] = true
			cols = append(cols, c.Column)
		}
	})
	return cols
}

// Clone returns a copy of expr that shares no nodes with it
func Clone(expr Expr) Expr {
	switch e := expr.(type) {
	case *Comparison:
		c := *e
		return &c
	case *Logical:
		return &Logical{Op: e.Op, Left: Clone(e.Left), Right: Clone(e.Right)}
	case *Not:
		return &Not{Expr: Clone(e.Expr)}
	default:
		return nil
	}
}
