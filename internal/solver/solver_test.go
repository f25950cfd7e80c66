package solver

import (
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/mathsteps/internal/cas"
	mathErrors "github.com/njchilds90/mathsteps/internal/errors"
)

func newPipeline() Pipeline {
	return Pipeline{Engine: cas.Symbolic{}, MaxInputLength: 500}
}

func TestRun_Steps(t *testing.T) {
	res, err := newPipeline().Run("9x+8762 = 283-8x")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []string{
		"Original equation: 9*x + 8762 = -8*x + 283",
		"Rewrite clearly: 9*x + 8762 = -8*x + 283",
		"Collect variable terms on left: subtract (-8)*x from both sides.",
		"Combine like terms: (9)*x - (-8)*x = (17)*x",
		"After moving variable terms: (17)*x + (8762) = (283)",
		"Move constants to right: subtract (8762) from both sides.",
		"Result: (17)*x = (-8479)",
		"Divide both sides by (17): x = (-8479) / (17)",
		"Simplify: x = -8479/17",
	}
	if len(res.Steps) != len(want) {
		t.Fatalf("got %d steps, want %d: %q", len(res.Steps), len(want), res.Steps)
	}
	for i := range want {
		if res.Steps[i] != want[i] {
			t.Errorf("step %d = %q, want %q", i+1, res.Steps[i], want[i])
		}
	}
	if res.Solution != "x = -8479/17" {
		t.Errorf("Solution = %q, want %q", res.Solution, "x = -8479/17")
	}
	if res.Variable != "x" {
		t.Errorf("Variable = %q, want x", res.Variable)
	}
	if res.LaTeX != `x = -\frac{8479}{17}` {
		t.Errorf("LaTeX = %q", res.LaTeX)
	}
}

func TestRun_Solutions(t *testing.T) {
	tests := []struct {
		input    string
		solution string
	}{
		{"2(x+3) = 4x", "x = 3"},
		{"x/2 = 3", "x = 6"},
		{"2x+1=5", "x = 2"},
		{"2*x+1=5", "x = 2"},
		{"0.5x = 1", "x = 2"},
		{"3(y - 1) = y", "y = 3/2"},
		{"x^2 + x = x^2 + 3", "x = 3"},
		{"(x+1)(x+2) = x^2", "x = -2/3"},
		{"2xy = 4", "xy = 2"},
		{"−x = 4", "x = -4"},
		{"(x+1)^2 = x^2", "x = -1/2"},
		{"(x-3)^2 = x^2 + 3", "x = 1"},
		{"(x+1)(x+1) = x^2", "x = -1/2"},
		{"x = 2^100", "x = 1267650600228229401496703205376"},
		{"sqrt(2)x = 2", "x = 2^(1/2)"},
		{"x*sqrt(2) = sqrt(8)", "x = 2"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res, err := newPipeline().Run(tt.input)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.input, err)
			}
			if res.Solution != tt.solution {
				t.Errorf("Solution = %q, want %q", res.Solution, tt.solution)
			}
		})
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		wantCode    mathErrors.ErrorCode
		wantMessage string
	}{
		{"empty", "  ", mathErrors.EmptyInput, "Empty equation."},
		{"no equals", "x + 2", mathErrors.MalformedEquation, "Please provide a single '=' separating left and right sides."},
		{"two equals", "x = 2 = 3", mathErrors.MalformedEquation, "Please provide a single '=' separating left and right sides."},
		{"parse failure", "2x+ = 3", mathErrors.ParseFailure, "Could not parse expression. Try simpler input. (unexpected end of input at position 4)"},
		{"empty side", "= 3", mathErrors.ParseFailure, "Could not parse expression. Try simpler input. (empty expression at position 0)"},
		{"no variable", "2 = 4", mathErrors.NoVariable, "No variable detected. Use a single letter variable (e.g. x)."},
		{"two variables", "x+y=2", mathErrors.MultipleVariables, "Multiple variables detected (x, y). This solver supports one unknown."},
		{"quadratic", "x^2 = 4", mathErrors.NonLinear, "Non-linear equation detected (degree > 1). This solver supports linear equations only."},
		{"reciprocal", "1/x = 2", mathErrors.NonLinear, "Equation is not a polynomial in x. This solver supports linear equations only."},
		{"function", "sin(x) = 0", mathErrors.NonLinear, "Equation is not a polynomial in x. This solver supports linear equations only."},
		{"identity", "2x+3=2x+3", mathErrors.Identity, "Infinite solutions (identity). Every value of the variable satisfies the equation."},
		{"contradiction", "2x+3=2x+5", mathErrors.Contradiction, "No solution (contradiction). The equation is inconsistent."},
		{"too long", strings.Repeat("x", 501) + "=1", mathErrors.InputTooLong, "Input too long (max 500 characters)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newPipeline().Run(tt.input)
			if res != nil {
				t.Errorf("expected no result, got %+v", res)
			}
			var me *mathErrors.MathError
			if !errors.As(err, &me) {
				t.Fatalf("want *MathError, got %v", err)
			}
			if me.Code != tt.wantCode {
				t.Errorf("Code = %v, want %v", me.Code, tt.wantCode)
			}
			if me.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", me.Message, tt.wantMessage)
			}
		})
	}
}

func TestRun_ImplicitMultiplicationIsIdempotent(t *testing.T) {
	explicit, err := newPipeline().Run("2*x+1 = 7")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	implicit, err := newPipeline().Run("2x+1 = 7")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if strings.Join(explicit.Steps, "|") != strings.Join(implicit.Steps, "|") {
		t.Errorf("steps differ:\n%q\n%q", explicit.Steps, implicit.Steps)
	}
}

func TestHintLetter(t *testing.T) {
	tests := map[string]string{
		"  3 = 2y": "y",
		"12=3":     "",
		"Ab = 1":   "A",
		"é + x":    "x",
	}
	for in, want := range tests {
		if got := hintLetter(in); got != want {
			t.Errorf("hintLetter(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPickVariable(t *testing.T) {
	if got := pickVariable("y", []string{"y"}); got != "y" {
		t.Errorf("pickVariable = %q, want y", got)
	}
	if got := pickVariable("x", []string{"xy"}); got != "xy" {
		t.Errorf("pickVariable = %q, want xy", got)
	}
	if got := pickVariable("", []string{"t"}); got != "t" {
		t.Errorf("pickVariable = %q, want t", got)
	}
}
