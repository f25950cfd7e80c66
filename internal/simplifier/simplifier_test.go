package simplifier

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

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantSteps  []string
		wantResult string
	}{
		{
			name:       "already canonical",
			input:      "2*x + 3*x - 4 + 2",
			wantSteps:  []string{},
			wantResult: "5*x - 2",
		},
		{
			name:       "expand then factor",
			input:      "(x+1)^2",
			wantSteps:  []string{"Expand: x^2 + 2*x + 1", "Factor: (x + 1)^2"},
			wantResult: "(x + 1)^2",
		},
		{
			name:       "pythagorean identity",
			input:      "sin(x)^2 + cos(x)^2",
			wantSteps:  []string{"Simplify: 1"},
			wantResult: "1",
		},
		{
			name:       "numeric content",
			input:      "2*x + 4",
			wantSteps:  []string{"Factor: 2*(x + 2)"},
			wantResult: "2*(x + 2)",
		},
		{
			name:       "difference of squares",
			input:      "x^2 - 1",
			wantSteps:  []string{"Factor: (x + 1)*(x - 1)"},
			wantResult: "(x + 1)*(x - 1)",
		},
		{
			name:  "cancel common factor",
			input: "(x^2 - 1)/(x - 1)",
			wantSteps: []string{
				"Expand: x^2/(x - 1) - 1/(x - 1)",
				"Simplify: x + 1",
			},
			wantResult: "x + 1",
		},
		{
			name:       "unicode input",
			input:      "x² − 1",
			wantSteps:  []string{"Factor: (x + 1)*(x - 1)"},
			wantResult: "(x + 1)*(x - 1)",
		},
		{
			name:       "constant",
			input:      "2^10",
			wantSteps:  []string{},
			wantResult: "1024",
		},
		{
			name:       "large exact power",
			input:      "2^100",
			wantSteps:  []string{},
			wantResult: "1267650600228229401496703205376",
		},
		{
			name:       "square root quotient",
			input:      "sqrt(8)/sqrt(2)",
			wantSteps:  []string{"Simplify: 2"},
			wantResult: "2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newPipeline().Run(tt.input)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.input, err)
			}
			if strings.Join(res.Steps, "|") != strings.Join(tt.wantSteps, "|") {
				t.Errorf("Steps = %q, want %q", res.Steps, tt.wantSteps)
			}
			if res.Result != tt.wantResult {
				t.Errorf("Result = %q, want %q", res.Result, tt.wantResult)
			}
		})
	}
}

func TestRun_LaTeX(t *testing.T) {
	res, err := newPipeline().Run("2*x + 3*x - 4 + 2")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if res.LaTeX != "5 x - 2" {
		t.Errorf("LaTeX = %q, want %q", res.LaTeX, "5 x - 2")
	}
}

func TestRun_FixedPoint(t *testing.T) {
	tests := []struct {
		input      string
		result     string
		rerunSteps []string
	}{
		{"2*x + 3*x - 4 + 2", "5*x - 2", []string{}},
		{"2*x + 4", "2*(x + 2)", []string{"Expand: 2*x + 4", "Factor: 2*(x + 2)"}},
		{"x^2 - 1", "(x + 1)*(x - 1)", []string{"Expand: x^2 - 1", "Factor: (x + 1)*(x - 1)"}},
		{"x^2 + 2*x + 1", "(x + 1)^2", []string{"Expand: x^2 + 2*x + 1", "Factor: (x + 1)^2"}},
		{"x/2 + 1", "(x + 2)/2", []string{"Expand: x/2 + 1", "Factor: (x + 2)/2"}},
		{"(x^2 - 1)/(x - 1)", "x + 1", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			first, err := newPipeline().Run(tt.input)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", tt.input, err)
			}
			if first.Result != tt.result {
				t.Fatalf("Result = %q, want %q", first.Result, tt.result)
			}
			second, err := newPipeline().Run(first.Result)
			if err != nil {
				t.Fatalf("Run(%q) error: %v", first.Result, err)
			}
			if second.Result != first.Result {
				t.Errorf("re-running %q gave %q", first.Result, second.Result)
			}
			if strings.Join(second.Steps, "|") != strings.Join(tt.rerunSteps, "|") {
				t.Errorf("re-run Steps = %q, want %q", second.Steps, tt.rerunSteps)
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
		{"empty", "", mathErrors.EmptyInput, "Empty expression"},
		{"blank", "   ", mathErrors.EmptyInput, "Empty expression"},
		{"dangling operator", "2*", mathErrors.ParseFailure, "Invalid expression (unexpected end of input at position 2)"},
		{"implicit multiplication", "2x", mathErrors.ParseFailure, "Invalid expression (unexpected \"x\" at position 1)"},
		{"too long", strings.Repeat("x+", 300) + "1", mathErrors.InputTooLong, "Input too long (max 500 characters)."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newPipeline().Run(tt.input)
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

// fakeEngine rewrites expressions through fixed tables so the stage
// bookkeeping can be checked without the algebra package.
type fakeExpr string

func (f fakeExpr) String() string { return string(f) }

type fakeEngine struct {
	cas.Symbolic
	expand, simplify, factor map[string]string
}

func (f fakeEngine) Parse(text string) (cas.Expression, error) { return fakeExpr(text), nil }

func rewrite(table map[string]string, e cas.Expression) cas.Expression {
	if out, ok := table[e.String()]; ok {
		return fakeExpr(out)
	}
	return e
}

func (f fakeEngine) Expand(e cas.Expression) cas.Expression   { return rewrite(f.expand, e) }
func (f fakeEngine) Simplify(e cas.Expression) cas.Expression { return rewrite(f.simplify, e) }
func (f fakeEngine) Factor(e cas.Expression) cas.Expression   { return rewrite(f.factor, e) }
func (f fakeEngine) Equal(a, b cas.Expression) bool           { return a.String() == b.String() }
func (f fakeEngine) LaTeX(e cas.Expression) string            { return "$" + e.String() + "$" }

func TestRun_FakeEngine(t *testing.T) {
	eng := fakeEngine{
		expand:   map[string]string{"a": "b"},
		simplify: map[string]string{},
		factor:   map[string]string{"b": "c"},
	}
	res, err := Pipeline{Engine: eng}.Run("a")
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	want := []string{"Expand: b", "Factor: c"}
	if strings.Join(res.Steps, "|") != strings.Join(want, "|") {
		t.Errorf("Steps = %q, want %q", res.Steps, want)
	}
	if res.Result != "c" || res.LaTeX != "$c$" {
		t.Errorf("Result = %q, LaTeX = %q", res.Result, res.LaTeX)
	}
}
