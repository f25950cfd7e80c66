// Package simplifier runs an expression through expand, simplify and
// factor, recording each stage that changes it.
package simplifier

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/njchilds90/mathsteps/internal/cas"
	"github.com/njchilds90/mathsteps/internal/errors"
	"github.com/njchilds90/mathsteps/internal/normalize"
)

// Result is a successful simplification.
type Result struct {
	Steps  []string `json:"steps"`
	Result string   `json:"result"`
	LaTeX  string   `json:"latex"`
}

// Pipeline simplifies expressions with Engine. MaxInputLength, when
// positive, bounds the input in characters.
type Pipeline struct {
	Engine         cas.Engine
	MaxInputLength int
}

type stage struct {
	name string
	fn   func(cas.Expression) cas.Expression
}

// Run simplifies input. Errors are *errors.MathError.
func (p Pipeline) Run(input string) (*Result, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return nil, errors.New(errors.EmptyInput, "Empty expression")
	}
	if p.MaxInputLength > 0 && utf8.RuneCountInString(trimmed) > p.MaxInputLength {
		return nil, errors.Newf(errors.InputTooLong, "Input too long (max %d characters).", p.MaxInputLength)
	}

	current, err := p.Engine.Parse(normalize.Expression(input))
	if err != nil {
		return nil, errors.Wrap(errors.ParseFailure, fmt.Sprintf("Invalid expression (%v)", err), err)
	}

	stages := []stage{
		{"Expand", p.Engine.Expand},
		{"Simplify", p.Engine.Simplify},
		{"Factor", p.Engine.Factor},
	}
	steps := []string{}
	for _, s := range stages {
		next := s.fn(current)
		if p.Engine.Equal(next, current) {
			continue
		}
		steps = append(steps, s.name+": "+next.String())
		current = next
	}

	return &Result{
		Steps:  steps,
		Result: current.String(),
		LaTeX:  p.Engine.LaTeX(current),
	}, nil
}
