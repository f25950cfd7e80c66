// Package cas is the narrow capability interface the pipelines use to
// reach the symbolic engine.
package cas

import (
	"github.com/njchilds90/mathsteps/algebra"
)

// Expression is an immutable parsed expression.
type Expression interface {
	String() string
}

// Engine is the set of symbolic operations the pipelines need.
type Engine interface {
	Parse(text string) (Expression, error)
	Expand(e Expression) Expression
	Simplify(e Expression) Expression
	Factor(e Expression) Expression
	// Degree is the polynomial degree of e in v. It fails when e is not a
	// polynomial in v.
	Degree(e Expression, v string) (int, error)
	Coefficient(e Expression, v string, power int) Expression
	Substitute(e Expression, v string, value Expression) Expression
	// FreeSymbols returns the sorted union of the free symbols of es.
	FreeSymbols(es ...Expression) []string
	Subtract(a, b Expression) Expression
	// Divide returns a/b; b must not be zero.
	Divide(a, b Expression) Expression
	Integer(n int64) Expression
	IsZero(e Expression) bool
	Equal(a, b Expression) bool
	LaTeX(e Expression) string
}

// Symbolic implements Engine with the algebra package. It holds no state.
type Symbolic struct{}

var _ Engine = Symbolic{}

func expr(e Expression) algebra.Expr {
	return e.(algebra.Expr)
}

func (Symbolic) Parse(text string) (Expression, error) {
	e, err := algebra.Parse(text)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (Symbolic) Expand(e Expression) Expression   { return algebra.Expand(expr(e)) }
func (Symbolic) Simplify(e Expression) Expression { return algebra.DeepSimplify(expr(e)) }
func (Symbolic) Factor(e Expression) Expression   { return algebra.Factor(expr(e)) }

func (Symbolic) Degree(e Expression, v string) (int, error) {
	return algebra.PolyDegree(expr(e), v)
}

func (Symbolic) Coefficient(e Expression, v string, power int) Expression {
	return algebra.Coeff(expr(e), v, power)
}

func (Symbolic) Substitute(e Expression, v string, value Expression) Expression {
	return algebra.Sub(expr(e), v, expr(value))
}

func (Symbolic) FreeSymbols(es ...Expression) []string {
	exprs := make([]algebra.Expr, len(es))
	for i, e := range es {
		exprs[i] = expr(e)
	}
	return algebra.SortedSymbols(exprs...)
}

func (Symbolic) Subtract(a, b Expression) Expression { return algebra.Minus(expr(a), expr(b)) }
func (Symbolic) Divide(a, b Expression) Expression   { return algebra.Quo(expr(a), expr(b)) }
func (Symbolic) Integer(n int64) Expression          { return algebra.N(n) }
func (Symbolic) IsZero(e Expression) bool            { return algebra.IsZero(expr(e)) }
func (Symbolic) Equal(a, b Expression) bool          { return expr(a).Equal(expr(b)) }
func (Symbolic) LaTeX(e Expression) string           { return expr(e).LaTeX() }
