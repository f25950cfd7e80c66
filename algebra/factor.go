package algebra

import (
	"math/big"
)

// ============================================================
// Symbolic Factoring
// ============================================================

// FactorResult holds the result of a factoring attempt.
type FactorResult struct {
	Factors []Expr
	Success bool
}

// maxRootSearchDegree bounds the rational root search. Larger polynomials
// only get their content and powers of the variable pulled out.
const maxRootSearchDegree = 10

// maxRootCandidate bounds |a0| and |an| when enumerating divisors.
const maxRootCandidate = 1_000_000

// Factor factors e over the rationals as far as the kernel can: a
// univariate polynomial is split into its numeric content and linear
// factors from its rational roots; anything else only has its numeric
// content and common monomial pulled out. e is returned unchanged when
// nothing factors.
func Factor(e Expr) Expr {
	syms := SortedSymbols(e)
	if len(syms) == 0 {
		return e.Simplify()
	}
	if len(syms) == 1 {
		if r := FactorIn(e, syms[0]); r.Success {
			return MulOf(r.Factors...)
		}
	}
	return factorContent(e)
}

// FactorIn factors a polynomial in varName with rational coefficients.
// Factors holds the numeric content (when it is not 1) followed by the
// irreducible parts found, with repeated linear factors grouped as powers.
func FactorIn(expr Expr, varName string) FactorResult {
	expanded := Expand(expr)
	fail := FactorResult{Factors: []Expr{expanded}, Success: false}
	if !IsPolynomial(expanded, varName) {
		return fail
	}
	deg := Degree(expanded, varName)
	if deg < 1 {
		return fail
	}
	coeffs := make([]*big.Rat, deg+1)
	for i := range coeffs {
		coeffs[i] = new(big.Rat)
	}
	for d, c := range PolyCoeffs(expanded, varName) {
		n, ok := c.(*Num)
		if !ok || d < 0 || d > deg {
			return fail
		}
		coeffs[d].Set(n.val)
	}

	content, prim := primitivePart(coeffs)
	x := S(varName)
	var factors []Expr
	if content.Cmp(big.NewRat(1, 1)) != 0 {
		factors = append(factors, NRat(content))
	}

	// Roots at zero.
	zeros := 0
	for len(prim) > 1 && prim[0].Sign() == 0 {
		prim = prim[1:]
		zeros++
	}
	if zeros > 0 {
		factors = append(factors, PowOf(x, N(int64(zeros))))
	}

	type linear struct {
		factor Expr
		count  int64
	}
	var linears []*linear
	for len(prim)-1 >= 1 && len(prim)-1 <= maxRootSearchDegree {
		p, q, ok := findRationalRoot(prim)
		if !ok {
			break
		}
		prim = divideRoot(prim, p, q)
		f := AddOf(MulOf(NRat(new(big.Rat).SetInt(q)), x), NRat(new(big.Rat).SetInt(new(big.Int).Neg(p))))
		if n := len(linears); n > 0 && linears[n-1].factor.Equal(f) {
			linears[n-1].count++
			continue
		}
		linears = append(linears, &linear{factor: f, count: 1})
	}
	for _, l := range linears {
		factors = append(factors, PowOf(l.factor, N(l.count)))
	}
	if len(prim) > 1 {
		factors = append(factors, polyExpr(prim, varName))
	}

	if zeros == 0 && len(linears) == 0 && content.Cmp(big.NewRat(1, 1)) == 0 {
		return fail
	}
	return FactorResult{Factors: factors, Success: true}
}

// primitivePart splits coeffs into a rational content and integer
// coefficients with no common divisor. The content carries the sign of
// the leading coefficient, so the primitive part has a positive lead.
func primitivePart(coeffs []*big.Rat) (*big.Rat, []*big.Int) {
	lcm := big.NewInt(1)
	for _, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		g := new(big.Int).GCD(nil, nil, lcm, c.Denom())
		lcm.Mul(lcm, new(big.Int).Quo(c.Denom(), g))
	}
	ints := make([]*big.Int, len(coeffs))
	gcd := new(big.Int)
	for i, c := range coeffs {
		v := new(big.Int).Mul(c.Num(), new(big.Int).Quo(lcm, c.Denom()))
		ints[i] = v
		if v.Sign() != 0 {
			gcd.GCD(nil, nil, gcd, new(big.Int).Abs(v))
		}
	}
	if gcd.Sign() == 0 {
		gcd.SetInt64(1)
	}
	if ints[len(ints)-1].Sign() < 0 {
		gcd.Neg(gcd)
	}
	for i := range ints {
		ints[i].Quo(ints[i], gcd)
	}
	return new(big.Rat).SetFrac(gcd, lcm), ints
}

// findRationalRoot searches ±p/q with p | a0 and q | an. Divisors are
// tried in ascending order, so the smallest candidate root wins.
func findRationalRoot(coeffs []*big.Int) (p, q *big.Int, ok bool) {
	a0 := new(big.Int).Abs(coeffs[0])
	an := new(big.Int).Abs(coeffs[len(coeffs)-1])
	if a0.Sign() == 0 || !a0.IsInt64() || !an.IsInt64() ||
		a0.Int64() > maxRootCandidate || an.Int64() > maxRootCandidate {
		return nil, nil, false
	}
	ps := divisors(a0.Int64())
	qs := divisors(an.Int64())
	for _, pv := range ps {
		for _, qv := range qs {
			if gcdInt(pv, qv) != 1 {
				continue
			}
			for _, sign := range []int64{1, -1} {
				r := big.NewRat(sign*pv, qv)
				if evalPoly(coeffs, r).Sign() == 0 {
					return new(big.Int).Set(r.Num()), new(big.Int).Set(r.Denom()), true
				}
			}
		}
	}
	return nil, nil, false
}

func divisors(n int64) []int64 {
	var small, large []int64
	for d := int64(1); d*d <= n; d++ {
		if n%d == 0 {
			small = append(small, d)
			if d != n/d {
				large = append([]int64{n / d}, large...)
			}
		}
	}
	return append(small, large...)
}

func gcdInt(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	if a < 0 {
		return -a
	}
	return a
}

// evalPoly evaluates coeffs (lowest degree first) at r by Horner's rule.
func evalPoly(coeffs []*big.Int, r *big.Rat) *big.Rat {
	acc := new(big.Rat)
	for i := len(coeffs) - 1; i >= 0; i-- {
		acc.Mul(acc, r)
		acc.Add(acc, new(big.Rat).SetInt(coeffs[i]))
	}
	return acc
}

// divideRoot divides coeffs by (q*x - p), where p/q is a root. The
// quotient has integer coefficients.
func divideRoot(coeffs []*big.Int, p, q *big.Int) []*big.Int {
	r := new(big.Rat).SetFrac(p, q)
	n := len(coeffs) - 1
	quot := make([]*big.Rat, n)
	carry := new(big.Rat)
	for i := n; i >= 1; i-- {
		carry = new(big.Rat).Add(new(big.Rat).Mul(carry, r), new(big.Rat).SetInt(coeffs[i]))
		quot[i-1] = carry
	}
	out := make([]*big.Int, n)
	qr := new(big.Rat).SetInt(q)
	for i, c := range quot {
		v := new(big.Rat).Quo(c, qr)
		out[i] = new(big.Int).Set(v.Num())
	}
	return out
}

func polyExpr(coeffs []*big.Int, varName string) Expr {
	terms := make([]Expr, 0, len(coeffs))
	for i, c := range coeffs {
		if c.Sign() == 0 {
			continue
		}
		terms = append(terms, MulOf(NRat(new(big.Rat).SetInt(c)), PowOf(S(varName), N(int64(i)))))
	}
	return AddOf(terms...)
}

// factorContent pulls the rational content and the common power of each
// symbol out of a sum: 2*x*y + 4*x becomes 2*x*(y + 2).
func factorContent(e Expr) Expr {
	expanded := Expand(e)
	add, ok := expanded.(*Add)
	if !ok {
		return expanded
	}
	coeffs := make([]*big.Rat, len(add.terms))
	common := map[string]int64{}
	for i, t := range add.terms {
		coeff, body := extractCoefficient(t)
		if n, isNum := t.(*Num); isNum {
			coeff, body = n, N(1)
		}
		coeffs[i] = coeff.val
		powers := symbolPowers(body)
		if i == 0 {
			common = powers
			continue
		}
		for name, k := range common {
			if pk, ok := powers[name]; !ok {
				delete(common, name)
			} else if pk < k {
				common[name] = pk
			}
		}
	}
	// Primitive part over the terms in their canonical order; the first
	// term's sign decides the sign of the content.
	rev := make([]*big.Rat, len(coeffs))
	for i, c := range coeffs {
		rev[len(coeffs)-1-i] = c
	}
	content, _ := primitivePart(rev)
	if content.Cmp(big.NewRat(1, 1)) == 0 && len(common) == 0 {
		return expanded
	}

	outer := []Expr{NRat(content)}
	divisor := Expr(NRat(content))
	for _, name := range SortedSymbols(expanded) {
		if k, ok := common[name]; ok {
			mono := PowOf(S(name), N(k))
			outer = append(outer, mono)
			divisor = MulOf(divisor, mono)
		}
	}
	inner := make([]Expr, len(add.terms))
	for i, t := range add.terms {
		inner[i] = Quo(t, divisor)
	}
	return MulOf(append(outer, AddOf(inner...))...)
}

// symbolPowers maps each symbol appearing as a plain factor of a monomial
// to its positive integer exponent.
func symbolPowers(body Expr) map[string]int64 {
	out := map[string]int64{}
	factors := []Expr{body}
	if m, ok := body.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		switch v := f.(type) {
		case *Sym:
			out[v.name]++
		case *Pow:
			s, ok := v.base.(*Sym)
			n, ok2 := v.exp.(*Num)
			if ok && ok2 && n.IsInteger() && n.IsPositive() && n.val.Num().IsInt64() {
				out[s.name] += n.val.Num().Int64()
			}
		}
	}
	return out
}
