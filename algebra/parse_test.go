package algebra_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/njchilds90/mathsteps/algebra"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2*x + 3*x - 4 + 2", "5*x - 2"},
		{"x^2", "x^2"},
		{"x**2", "x^2"},
		{"2^3^2", "512"},
		{"-x^2", "-x^2"},
		{"x/2", "x/2"},
		{"1/(x+1)", "1/(x + 1)"},
		{"0.5*x", "x/2"},
		{"1.25", "5/4"},
		{"sqrt(4)", "2"},
		{"log(1)", "0"},
		{"sin(x)^2", "sin(x)^2"},
		{"2*(x+3)", "2*(x + 3)"},
		{"xy + 1", "xy + 1"},
		{"  x   +   1  ", "x + 1"},
		{"--x", "x"},
		{"x - (x - 1)", "x - (x - 1)"},
	}
	for _, tc := range tests {
		got, err := algebra.Parse(tc.in)
		if err != nil {
			t.Errorf("Parse(%q): unexpected error: %v", tc.in, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("Parse(%q): want %s, got %s", tc.in, tc.want, got.String())
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		in      string
		wantMsg string
		wantPos int
	}{
		{"", "empty expression", 0},
		{"   ", "empty expression", 0},
		{"2*", "unexpected end of input", 2},
		{"(x+1", "expected \")\", found end of input", 4},
		{"x $ 2", "unexpected character '$'", 2},
		{"1/0", "division by zero", 1},
		{"1/(1-1)", "division by zero", 1},
		{"0^-1", "division by zero", 1},
		{"f(x)", "unknown function \"f\"", 0},
		{"2x", "unexpected \"x\"", 1},
		{"1.2.3", "invalid number \"1.2.3\"", 0},
		{")", "unexpected \")\"", 0},
	}
	for _, tc := range tests {
		_, err := algebra.Parse(tc.in)
		if err == nil {
			t.Errorf("Parse(%q): expected error", tc.in)
			continue
		}
		var pe *algebra.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("Parse(%q): want *ParseError, got %T", tc.in, err)
			continue
		}
		if pe.Msg != tc.wantMsg {
			t.Errorf("Parse(%q): want message %q, got %q", tc.in, tc.wantMsg, pe.Msg)
		}
		if pe.Pos != tc.wantPos {
			t.Errorf("Parse(%q): want position %d, got %d", tc.in, tc.wantPos, pe.Pos)
		}
	}
}

func TestParseError_Error(t *testing.T) {
	err := &algebra.ParseError{Pos: 3, Msg: "division by zero"}
	if err.Error() != "division by zero at position 3" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestParse_RoundTrip(t *testing.T) {
	inputs := []string{
		"5*x - 2",
		"x/2",
		"1/(x + 1)",
		"-x/(2*y)",
		"(x + 1)^2",
		"2^(1/2)",
		"x^(-2)",
		"sin(x)^2 + cos(x)^2",
		"-(x + 1)",
		"exp(x)/x",
		"(x*y)^(1/2)",
		"3*x^2 - x/3 + 7/2",
		"abs(x - 1)",
		"x - (x - 1)",
	}
	for _, in := range inputs {
		first := algebra.MustParse(in)
		printed := first.String()
		second, err := algebra.Parse(printed)
		if err != nil {
			t.Errorf("%q printed as %q which does not parse: %v", in, printed, err)
			continue
		}
		if !first.Equal(second) {
			t.Errorf("%q printed as %q which parses to %s", in, printed, second)
		}
	}
}

func TestMustParse_Panics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if !strings.Contains(r.(string), "empty expression") {
			t.Errorf("unexpected panic value %v", r)
		}
	}()
	algebra.MustParse("")
}
