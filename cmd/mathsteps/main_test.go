package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/njchilds90/mathsteps/internal/errors"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	configPath, logLevel = "", ""
	simplifyJSON, solveJSON = false, false
	configSavePath = ""

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestSimplifyCommand(t *testing.T) {
	out, err := execute(t, "simplify", "(x+1)^2")
	if err != nil {
		t.Fatalf("simplify: %v", err)
	}
	want := "1. Expand: x^2 + 2*x + 1\n2. Factor: (x + 1)^2\nResult: (x + 1)^2\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestSimplifyCommand_JSON(t *testing.T) {
	out, err := execute(t, "simplify", "--json", "2*x", "+", "4")
	if err != nil {
		t.Fatalf("simplify --json: %v", err)
	}
	var resp map[string]interface{}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("output is not JSON: %v (%s)", err, out)
	}
	if resp["status"] != "ok" || resp["result"] != "2*(x + 2)" {
		t.Errorf("unexpected response %v", resp)
	}
}

func TestSolveCommand(t *testing.T) {
	out, err := execute(t, "solve", "2(x+3) = 4x")
	if err != nil {
		t.Fatalf("solve: %v", err)
	}
	if !strings.HasSuffix(out, "Solution: x = 3\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.HasPrefix(out, "1. Original equation: ") {
		t.Errorf("output should start with the restated equation: %q", out)
	}
}

func TestSolveCommand_Policy(t *testing.T) {
	out, err := execute(t, "solve", "x = x")
	if err != nil {
		t.Fatalf("identity should not fail the command: %v", err)
	}
	if !strings.Contains(out, "identity") {
		t.Errorf("output = %q", out)
	}

	out, err = execute(t, "solve", "--json", "x = x + 1")
	if err != nil {
		t.Fatalf("contradiction should not fail the command: %v", err)
	}
	if !strings.Contains(out, `"code": "CONTRADICTION"`) {
		t.Errorf("output = %q", out)
	}
}

func TestSolveCommand_Failure(t *testing.T) {
	_, err := execute(t, "solve", "x^2 = 4")
	if errors.CodeOf(err) != errors.NonLinear {
		t.Errorf("Code = %v, want %v", errors.CodeOf(err), errors.NonLinear)
	}

	out, err := execute(t, "solve", "--json", "x + y = 1")
	if errors.CodeOf(err) != errors.MultipleVariables {
		t.Errorf("Code = %v, want %v", errors.CodeOf(err), errors.MultipleVariables)
	}
	if !strings.Contains(out, `"status": "error"`) {
		t.Errorf("output = %q", out)
	}
}

func TestConfigCommand(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "in.yaml")
	if err := os.WriteFile(cfgPath, []byte("server:\n  port: 9191\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	savePath := filepath.Join(dir, "out.yaml")

	out, err := execute(t, "config", "--config", cfgPath, "--log-level", "debug", "--save", savePath)
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	for _, want := range []string{"port: 9191", "level: debug", "Configuration saved to"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	saved, err := os.ReadFile(savePath)
	if err != nil {
		t.Fatalf("read saved config: %v", err)
	}
	if !strings.Contains(string(saved), "port: 9191") {
		t.Errorf("saved config = %s", saved)
	}
}

func TestConfigCommand_BadLogLevel(t *testing.T) {
	if _, err := execute(t, "config", "--log-level", "loud"); err == nil {
		t.Error("expected error for unknown log level")
	}
}
