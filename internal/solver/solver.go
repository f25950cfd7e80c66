// Package solver solves single-variable linear equations and narrates the
// steps.
package solver

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/mathsteps/internal/cas"
	"github.com/njchilds90/mathsteps/internal/errors"
	"github.com/njchilds90/mathsteps/internal/normalize"
)

// Result is a unique solution.
type Result struct {
	Steps    []string `json:"steps"`
	Variable string   `json:"variable"`
	Solution string   `json:"solution"`
	LaTeX    string   `json:"latex"`
}

// Pipeline solves equations with Engine. MaxInputLength, when positive,
// bounds the input in characters.
type Pipeline struct {
	Engine         cas.Engine
	MaxInputLength int
}

// Run solves equation, which must contain exactly one '='. Identity and
// contradiction outcomes are returned as *errors.MathError with the
// IDENTITY and CONTRADICTION codes, like every other failure.
func (p Pipeline) Run(equation string) (*Result, error) {
	eng := p.Engine

	trimmed := strings.TrimSpace(equation)
	if trimmed == "" {
		return nil, errors.New(errors.EmptyInput, "Empty equation.")
	}
	if p.MaxInputLength > 0 && utf8.RuneCountInString(trimmed) > p.MaxInputLength {
		return nil, errors.Newf(errors.InputTooLong, "Input too long (max %d characters).", p.MaxInputLength)
	}
	if strings.Count(equation, "=") != 1 {
		return nil, errors.New(errors.MalformedEquation, "Please provide a single '=' separating left and right sides.")
	}

	sides := strings.SplitN(equation, "=", 2)
	hint := hintLetter(equation)

	lhs, err := eng.Parse(normalize.EquationSide(sides[0]))
	if err == nil {
		var rhs cas.Expression
		rhs, err = eng.Parse(normalize.EquationSide(sides[1]))
		if err == nil {
			return p.solve(lhs, rhs, hint)
		}
	}
	return nil, errors.Wrap(errors.ParseFailure,
		fmt.Sprintf("Could not parse expression. Try simpler input. (%v)", err), err)
}

func (p Pipeline) solve(lhs, rhs cas.Expression, hint string) (*Result, error) {
	eng := p.Engine

	syms := eng.FreeSymbols(lhs, rhs)
	switch {
	case len(syms) == 0:
		return nil, errors.New(errors.NoVariable, "No variable detected. Use a single letter variable (e.g. x).")
	case len(syms) > 1:
		return nil, errors.Newf(errors.MultipleVariables,
			"Multiple variables detected (%s). This solver supports one unknown.", strings.Join(syms, ", "))
	}
	v := pickVariable(hint, syms)

	lhsExp := eng.Expand(lhs)
	rhsExp := eng.Expand(rhs)
	if err := checkLinear(eng, v, lhsExp, rhsExp); err != nil {
		return nil, err
	}

	aL := eng.Coefficient(lhsExp, v, 1)
	aR := eng.Coefficient(rhsExp, v, 1)
	zero := eng.Integer(0)
	bL := eng.Substitute(lhsExp, v, zero)
	bR := eng.Substitute(rhsExp, v, zero)
	c := eng.Simplify(eng.Subtract(aL, aR))
	d := eng.Simplify(eng.Subtract(bR, bL))

	steps := []string{
		fmt.Sprintf("Original equation: %s = %s", lhs, rhs),
		fmt.Sprintf("Rewrite clearly: %s = %s", lhsExp, rhsExp),
		fmt.Sprintf("Collect variable terms on left: subtract (%s)*%s from both sides.", aR, v),
		fmt.Sprintf("Combine like terms: (%s)*%s - (%s)*%s = (%s)*%s", aL, v, aR, v, c, v),
		fmt.Sprintf("After moving variable terms: (%s)*%s + (%s) = (%s)", c, v, bL, bR),
		fmt.Sprintf("Move constants to right: subtract (%s) from both sides.", bL),
		fmt.Sprintf("Result: (%s)*%s = (%s)", c, v, d),
	}

	if eng.IsZero(c) {
		if eng.IsZero(d) {
			return nil, errors.New(errors.Identity,
				"Infinite solutions (identity). Every value of the variable satisfies the equation.")
		}
		return nil, errors.New(errors.Contradiction, "No solution (contradiction). The equation is inconsistent.")
	}

	value := eng.Simplify(eng.Divide(d, c))
	steps = append(steps,
		fmt.Sprintf("Divide both sides by (%s): %s = (%s) / (%s)", c, v, d, c),
		fmt.Sprintf("Simplify: %s = %s", v, value),
	)
	return &Result{
		Steps:    steps,
		Variable: v,
		Solution: fmt.Sprintf("%s = %s", v, value),
		LaTeX:    v + " = " + eng.LaTeX(value),
	}, nil
}

// checkLinear rejects equations whose difference has degree above one in
// v. Both sides must also be polynomials in v, otherwise the constant
// terms are undefined at v = 0.
func checkLinear(eng cas.Engine, v string, lhs, rhs cas.Expression) error {
	notPolynomial := func(err error) error {
		return errors.Wrap(errors.NonLinear,
			fmt.Sprintf("Equation is not a polynomial in %s. This solver supports linear equations only.", v), err)
	}
	deg, err := eng.Degree(eng.Subtract(lhs, rhs), v)
	if err != nil {
		return notPolynomial(err)
	}
	if deg > 1 {
		return errors.New(errors.NonLinear,
			"Non-linear equation detected (degree > 1). This solver supports linear equations only.")
	}
	for _, side := range []cas.Expression{lhs, rhs} {
		if _, err := eng.Degree(side, v); err != nil {
			return notPolynomial(err)
		}
	}
	return nil
}

// hintLetter is the first ASCII letter of the raw equation, or "".
func hintLetter(s string) string {
	for _, r := range s {
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return string(r)
		}
	}
	return ""
}

// pickVariable prefers the hint when it names one of syms and falls back
// to the first symbol. Callers reject anything but exactly one symbol
// first, so the hint never changes the outcome.
func pickVariable(hint string, syms []string) string {
	for _, s := range syms {
		if s == hint {
			return s
		}
	}
	return syms[0]
}
