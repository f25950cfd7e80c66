package algebra

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
)

// ErrNotPolynomial is returned by PolyDegree when the expression is not a
// polynomial in the requested variable.
var ErrNotPolynomial = errors.New("not a polynomial")

// ============================================================
// Expansion
// ============================================================

// Expand distributes products over sums and expands non-negative integer
// powers of sums up to maxExpandPower.
func Expand(e Expr) Expr { return expandExpr(e.Simplify()).Simplify() }

func expandExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Mul:
		result := Expr(N(1))
		for _, f := range v.factors {
			result = mulExpanded(result, expandExpr(f))
		}
		return result
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = expandExpr(t)
		}
		return AddOf(newTerms...)
	case *Pow:
		base := expandExpr(v.base)
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.val.Num().IsInt64() {
			exp := n.val.Num().Int64()
			if _, isAdd := base.(*Add); isAdd && exp >= 0 && exp <= maxExpandPower {
				result := Expr(N(1))
				for i := int64(0); i < exp; i++ {
					result = mulExpanded(result, base)
				}
				return result
			}
		}
		return PowOf(base, expandExpr(v.exp))
	case *Func:
		return funcOf(v.name, expandExpr(v.arg)).Simplify()
	}
	return e
}

// maxExpandPower is the largest integer power of a sum Expand multiplies out.
const maxExpandPower = 10

// mulExpanded multiplies two expanded expressions term by term. Sums are
// never handed to MulOf together, since equal sums would merge back into
// a power.
func mulExpanded(a, b Expr) Expr {
	as, bs := sumTerms(a), sumTerms(b)
	products := make([]Expr, 0, len(as)*len(bs))
	for _, ta := range as {
		for _, tb := range bs {
			p := MulOf(ta, tb)
			if needsExpand(p) {
				// Fractional powers of one sum can meet here and become
				// an integer power of it.
				p = expandExpr(p)
			}
			products = append(products, p)
		}
	}
	return AddOf(products...)
}

func sumTerms(e Expr) []Expr {
	if a, ok := e.(*Add); ok {
		return a.terms
	}
	return []Expr{e}
}

// needsExpand reports whether e has a sum as a factor or a sum raised to
// an expandable power at its top level.
func needsExpand(e Expr) bool {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		switch v := f.(type) {
		case *Add:
			return true
		case *Pow:
			if _, isAdd := v.base.(*Add); isAdd {
				if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.IsPositive() &&
					n.val.Cmp(big.NewRat(maxExpandPower, 1)) <= 0 {
					return true
				}
			}
		}
	}
	return false
}

// ============================================================
// Free Symbols
// ============================================================

func FreeSymbols(e Expr) map[string]struct{} {
	result := map[string]struct{}{}
	collectSymbols(e, result)
	return result
}

// SortedSymbols returns the union of the free symbols of exprs in
// lexical order.
func SortedSymbols(exprs ...Expr) []string {
	set := map[string]struct{}{}
	for _, e := range exprs {
		collectSymbols(e, set)
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectSymbols(e Expr, out map[string]struct{}) {
	switch v := e.(type) {
	case *Sym:
		out[v.name] = struct{}{}
	case *Add:
		for _, t := range v.terms {
			collectSymbols(t, out)
		}
	case *Mul:
		for _, f := range v.factors {
			collectSymbols(f, out)
		}
	case *Pow:
		collectSymbols(v.base, out)
		collectSymbols(v.exp, out)
	case *Func:
		collectSymbols(v.arg, out)
	}
}

func contains(e Expr, varName string) bool {
	_, ok := FreeSymbols(e)[varName]
	return ok
}

// ============================================================
// Polynomial utilities
// ============================================================

// Degree is the highest power of varName in expr. Non-polynomial parts
// count as degree 0; use PolyDegree to reject them.
func Degree(expr Expr, varName string) int {
	expr = expr.Simplify()
	switch v := expr.(type) {
	case *Num:
		return 0
	case *Sym:
		if v.name == varName {
			return 1
		}
		return 0
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.val.Num().IsInt64() {
			return Degree(v.base, varName) * int(n.val.Num().Int64())
		}
		return 0
	case *Add:
		maxDeg := 0
		for _, t := range v.terms {
			if d := Degree(t, varName); d > maxDeg {
				maxDeg = d
			}
		}
		return maxDeg
	case *Mul:
		totalDeg := 0
		for _, f := range v.factors {
			totalDeg += Degree(f, varName)
		}
		return totalDeg
	}
	return 0
}

// totalDegree is the degree summed over all symbols; it orders the terms
// of a sum.
func totalDegree(e Expr) int {
	switch v := e.(type) {
	case *Sym:
		return 1
	case *Pow:
		if n, ok := v.exp.(*Num); ok && n.IsInteger() && n.val.Num().IsInt64() {
			return totalDegree(v.base) * int(n.val.Num().Int64())
		}
	case *Mul:
		d := 0
		for _, f := range v.factors {
			d += totalDegree(f)
		}
		return d
	case *Add:
		d := 0
		for _, t := range v.terms {
			if td := totalDegree(t); td > d {
				d = td
			}
		}
		return d
	}
	return 0
}

// IsPolynomial reports whether e is a polynomial in varName: the variable
// only appears in sums and products and under non-negative integer powers.
func IsPolynomial(e Expr, varName string) bool {
	switch v := e.(type) {
	case *Num, *Sym:
		return true
	case *Add:
		for _, t := range v.terms {
			if !IsPolynomial(t, varName) {
				return false
			}
		}
		return true
	case *Mul:
		for _, f := range v.factors {
			if !IsPolynomial(f, varName) {
				return false
			}
		}
		return true
	case *Pow:
		if !contains(v.base, varName) && !contains(v.exp, varName) {
			return true
		}
		n, ok := v.exp.(*Num)
		return ok && n.IsInteger() && !n.IsNegative() && IsPolynomial(v.base, varName)
	case *Func:
		return !contains(v.arg, varName)
	}
	return false
}

// PolyDegree expands expr and returns its degree in varName, or an error
// wrapping ErrNotPolynomial.
func PolyDegree(expr Expr, varName string) (int, error) {
	expanded := Expand(expr)
	if !IsPolynomial(expanded, varName) {
		return 0, fmt.Errorf("%s is %w in %s", expanded, ErrNotPolynomial, varName)
	}
	return Degree(expanded, varName), nil
}

type PolyCoeffsResult map[int]Expr

// PolyCoeffs extracts polynomial coefficients by degree. expr should be
// expanded.
func PolyCoeffs(expr Expr, varName string) PolyCoeffsResult {
	result := PolyCoeffsResult{}
	extractCoeffs(expr.Simplify(), varName, result)
	return result
}

func extractCoeffs(e Expr, varName string, out PolyCoeffsResult) {
	switch v := e.(type) {
	case *Num:
		addCoeff(out, 0, v)
	case *Sym:
		if v.name == varName {
			addCoeff(out, 1, N(1))
		} else {
			addCoeff(out, 0, v)
		}
	case *Pow:
		if sym, ok := v.base.(*Sym); ok && sym.name == varName {
			if n, ok2 := v.exp.(*Num); ok2 && n.IsInteger() {
				addCoeff(out, int(n.val.Num().Int64()), N(1))
				return
			}
		}
		addCoeff(out, 0, e)
	case *Mul:
		deg := 0
		coeffFactors := []Expr{}
		for _, f := range v.factors {
			if d := Degree(f, varName); d > 0 {
				deg += d
			} else {
				coeffFactors = append(coeffFactors, f)
			}
		}
		var coeff Expr
		switch len(coeffFactors) {
		case 0:
			coeff = N(1)
		case 1:
			coeff = coeffFactors[0]
		default:
			coeff = MulOf(coeffFactors...)
		}
		addCoeff(out, deg, coeff)
	case *Add:
		for _, t := range v.terms {
			extractCoeffs(t, varName, out)
		}
	default:
		addCoeff(out, 0, e)
	}
}

func addCoeff(out PolyCoeffsResult, deg int, val Expr) {
	if existing, ok := out[deg]; ok {
		out[deg] = AddOf(existing, val)
	} else {
		out[deg] = val.Simplify()
	}
}

// Coeff returns the coefficient of varName^power in the expansion of
// expr, or 0.
func Coeff(expr Expr, varName string, power int) Expr {
	if c, ok := PolyCoeffs(Expand(expr), varName)[power]; ok {
		return c
	}
	return N(0)
}

// Collect groups terms by powers of varName, highest power first.
func Collect(expr Expr, varName string) Expr {
	coeffs := PolyCoeffs(Expand(expr), varName)
	degrees := make([]int, 0, len(coeffs))
	for d := range coeffs {
		degrees = append(degrees, d)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(degrees)))
	terms := make([]Expr, 0, len(degrees))
	for _, d := range degrees {
		c := coeffs[d]
		if isNumEqual(c, 0) {
			continue
		}
		switch d {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, MulOf(c, S(varName)))
		default:
			terms = append(terms, MulOf(c, PowOf(S(varName), N(int64(d)))))
		}
	}
	return AddOf(terms...)
}
