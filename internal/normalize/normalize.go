// Package normalize rewrites user-typed math into text the parser accepts.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/njchilds90/mathsteps/algebra"
)

var (
	superscriptRun = regexp.MustCompile(`[⁰¹²³⁴⁵⁶⁷⁸⁹⁻]+`)

	// Implicit multiplication. Whitespace between the two tokens is
	// dropped along with the match.
	digitLetter   = regexp.MustCompile(`([0-9])\s*([A-Za-z])`)
	beforeParen   = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*|[0-9.]+|\))\s*\(`)
	afterParen    = regexp.MustCompile(`\)\s*([A-Za-z0-9])`)
	trailingIdent = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*$`)
)

// Expression prepares a standalone expression: glyph folding, unicode
// minus, '^' to '**' and whitespace removal.
func Expression(s string) string {
	s = fold(strings.TrimSpace(s))
	s = powerOperator(unicodeMinus(s))
	return stripSpace(s)
}

// EquationSide prepares one side of an equation. On top of Expression it
// inserts the implicit '*' in 2x, 2(x+1), (x+1)(x-1) and (x+1)2.
func EquationSide(s string) string {
	s = fold(strings.TrimSpace(s))
	s = powerOperator(unicodeMinus(s))
	s = implicitMultiplication(s)
	return stripSpace(s)
}

// fold composes to NFC and maps look-alike operator glyphs to ASCII.
// Runs of superscript digits become a '^' power.
func fold(s string) string {
	t := transform.Chain(norm.NFC, runes.Map(foldRune))
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return superscriptRun.ReplaceAllStringFunc(out, func(run string) string {
		digits, _, err := transform.String(runes.Map(unsuperscript), run)
		if err != nil {
			return run
		}
		return "^" + digits
	})
}

func foldRune(r rune) rune {
	switch r {
	case '–', '‒', '﹣', '－':
		return '-'
	case '×', '·', '⋅':
		return '*'
	case '÷':
		return '/'
	}
	return r
}

func unsuperscript(r rune) rune {
	switch r {
	case '⁰':
		return '0'
	case '¹':
		return '1'
	case '²':
		return '2'
	case '³':
		return '3'
	case '⁻':
		return '-'
	}
	if r >= '⁴' && r <= '⁹' {
		return '4' + (r - '⁴')
	}
	return r
}

func unicodeMinus(s string) string {
	return strings.ReplaceAll(s, "−", "-")
}

func powerOperator(s string) string {
	return strings.ReplaceAll(s, "^", "**")
}

func implicitMultiplication(s string) string {
	s = digitLetter.ReplaceAllString(s, "${1}*${2}")
	s = beforeParen.ReplaceAllStringFunc(s, func(m string) string {
		head := strings.TrimRightFunc(strings.TrimSuffix(m, "("), unicode.IsSpace)
		if name := trailingIdent.FindString(head); name != "" && algebra.IsFunction(name) {
			return head + "("
		}
		return head + "*("
	})
	return afterParen.ReplaceAllString(s, ")*${1}")
}

func stripSpace(s string) string {
	out, _, err := transform.String(runes.Remove(runes.In(unicode.White_Space)), s)
	if err != nil {
		return strings.Join(strings.Fields(s), "")
	}
	return out
}
