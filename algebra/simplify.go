package algebra

import (
	"math/big"
	"sort"
)

// ============================================================
// Deep Simplification and Trig Identities
// ============================================================

// TrigSimplify applies sin²+cos²=1 to every sum in e. The ln/exp inverses
// are already applied by Func.Simplify.
func TrigSimplify(e Expr) Expr {
	return trigSimplifyExpr(e.Simplify()).Simplify()
}

func trigSimplifyExpr(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		newTerms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			newTerms[i] = trigSimplifyExpr(t)
		}
		return trigFindPythagorean(AddOf(newTerms...))
	case *Mul:
		newFactors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			newFactors[i] = trigSimplifyExpr(f)
		}
		return MulOf(newFactors...)
	case *Pow:
		return PowOf(trigSimplifyExpr(v.base), v.exp)
	case *Func:
		return funcOf(v.name, trigSimplifyExpr(v.arg)).Simplify()
	}
	return e
}

func trigFindPythagorean(e Expr) Expr {
	add, ok := e.(*Add)
	if !ok {
		return e
	}
	type trigTerm struct {
		funcName string
		argStr   string
		coeff    *Num
		idx      int
	}
	var trigTerms []trigTerm
	for idx, t := range add.terms {
		coeff, inner := extractCoefficient(t)
		if p, ok2 := inner.(*Pow); ok2 {
			if fn, ok3 := p.base.(*Func); ok3 && isNumEqual(p.exp, 2) {
				if fn.name == "sin" || fn.name == "cos" {
					trigTerms = append(trigTerms, trigTerm{fn.name, fn.arg.String(), coeff, idx})
				}
			}
		}
	}
	for i := 0; i < len(trigTerms); i++ {
		for j := i + 1; j < len(trigTerms); j++ {
			ti, tj := trigTerms[i], trigTerms[j]
			if ti.argStr == tj.argStr && ti.funcName != tj.funcName && ti.coeff.Equal(tj.coeff) {
				newTerms := []Expr{}
				for idx, t := range add.terms {
					if idx != ti.idx && idx != tj.idx {
						newTerms = append(newTerms, t)
					}
				}
				newTerms = append(newTerms, ti.coeff)
				return trigFindPythagorean(AddOf(newTerms...))
			}
		}
	}
	return e
}

// DeepSimplify applies trig identities, radical combination and fraction
// combination until the printed form stops changing. A combined fraction
// only replaces the current form when it has fewer nodes.
func DeepSimplify(e Expr) Expr {
	curr := e.Simplify()
	for i := 0; i < 10; i++ {
		next := SimplifyRadicals(TrigSimplify(curr))
		if t := Together(next); NodeCount(t) < NodeCount(next) {
			next = t
		}
		if next.String() == curr.String() {
			break
		}
		curr = next
	}
	return curr
}

// ============================================================
// Numeric radicals
// ============================================================

// maxRadicalIndex is the largest root index SimplifyRadicals combines.
const maxRadicalIndex = 16

// maxRadicandBits bounds the integer radicand searched for perfect powers.
const maxRadicandBits = 512

// radicalTrialLimit bounds the trial divisors used to pull perfect powers
// out of a radicand.
const radicalTrialLimit = 10_000

// SimplifyRadicals combines rational powers of positive numbers within
// each product and pulls perfect powers out of the result, leaving an
// integer radicand in the numerator: 8^(1/2)/2^(1/2) becomes 2 and
// 2/2^(1/2) becomes 2^(1/2).
func SimplifyRadicals(e Expr) Expr {
	switch v := e.(type) {
	case *Add:
		terms := make([]Expr, len(v.terms))
		for i, t := range v.terms {
			terms[i] = SimplifyRadicals(t)
		}
		return AddOf(terms...)
	case *Mul:
		factors := make([]Expr, len(v.factors))
		for i, f := range v.factors {
			factors[i] = SimplifyRadicals(f)
		}
		return combineRadicals(MulOf(factors...))
	case *Pow:
		return combineRadicals(PowOf(SimplifyRadicals(v.base), SimplifyRadicals(v.exp)))
	case *Func:
		return funcOf(v.name, SimplifyRadicals(v.arg)).Simplify()
	}
	return e
}

func combineRadicals(e Expr) Expr {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	coeff := big.NewRat(1, 1)
	radicands := map[int64]*big.Rat{}
	var indices []int64
	var rest []Expr
	for _, f := range factors {
		if n, ok := f.(*Num); ok {
			coeff.Mul(coeff, n.val)
			continue
		}
		if index, value, ok := numericRadical(f); ok {
			if r, seen := radicands[index]; seen {
				r.Mul(r, value)
			} else {
				radicands[index] = value
				indices = append(indices, index)
			}
			continue
		}
		rest = append(rest, f)
	}
	if len(indices) == 0 {
		return e
	}
	sort.Slice(indices, func(i, j int) bool { return indices[i] < indices[j] })

	out := []Expr{}
	for _, index := range indices {
		outer, inner, ok := extractRoot(radicands[index], index)
		if !ok {
			return e
		}
		coeff.Mul(coeff, outer)
		if inner.Cmp(big.NewInt(1)) != 0 {
			out = append(out, PowOf(NRat(new(big.Rat).SetInt(inner)), F(1, index)))
		}
	}
	return MulOf(append(append([]Expr{NRat(coeff)}, out...), rest...)...)
}

// numericRadical reads f = b^(n/d) with b a positive number and d > 1 as
// the root index d of the radicand b^n.
func numericRadical(f Expr) (index int64, radicand *big.Rat, ok bool) {
	p, isPow := f.(*Pow)
	if !isPow {
		return 0, nil, false
	}
	b, isNum := p.base.(*Num)
	en, isNumExp := p.exp.(*Num)
	if !isNum || !isNumExp || !b.IsPositive() || en.IsInteger() {
		return 0, nil, false
	}
	num, den := en.val.Num(), en.val.Denom()
	if !num.IsInt64() || !den.IsInt64() || den.Int64() > maxRadicalIndex {
		return 0, nil, false
	}
	value, fits := numPow(b, num.Int64())
	if !fits {
		return 0, nil, false
	}
	return den.Int64(), value.val, true
}

// extractRoot writes r^(1/d) as outer * inner^(1/d) with inner a positive
// integer. The denominator of r is moved into outer first.
func extractRoot(r *big.Rat, d int64) (outer *big.Rat, inner *big.Int, ok bool) {
	den := r.Denom()
	m := new(big.Int).Mul(r.Num(), new(big.Int).Exp(den, big.NewInt(d-1), nil))
	if m.BitLen() > maxRadicandBits {
		return nil, nil, false
	}
	root := big.NewInt(1)
	rem := new(big.Int).Set(m)
	dBig := big.NewInt(d)
	q, mod := new(big.Int), new(big.Int)
	for p := int64(2); p <= radicalTrialLimit; p++ {
		pd := new(big.Int).Exp(big.NewInt(p), dBig, nil)
		if pd.Cmp(rem) > 0 {
			break
		}
		for {
			q.QuoRem(rem, pd, mod)
			if mod.Sign() != 0 {
				break
			}
			rem.Set(q)
			root.Mul(root, big.NewInt(p))
		}
	}
	if d == 2 {
		if s := new(big.Int).Sqrt(rem); new(big.Int).Mul(s, s).Cmp(rem) == 0 {
			root.Mul(root, s)
			rem.SetInt64(1)
		}
	}
	return new(big.Rat).SetFrac(root, den), rem, true
}

// ============================================================
// Fractions: Together, Cancel
// ============================================================

// Together rewrites e as a single fraction over the product of its
// distinct denominators and cancels common factors.
func Together(e Expr) Expr {
	e = e.Simplify()
	switch v := e.(type) {
	case *Add:
		type part struct{ numer, denom Expr }
		parts := make([]part, len(v.terms))
		var denoms []Expr
		seen := map[string]bool{}
		for i, t := range v.terms {
			n, d := splitFraction(t)
			parts[i] = part{n, d}
			if isNumEqual(d, 1) {
				continue
			}
			if key := d.String(); !seen[key] {
				seen[key] = true
				denoms = append(denoms, d)
			}
		}
		if len(denoms) == 0 {
			return e
		}
		common := MulOf(denoms...)
		numers := make([]Expr, len(parts))
		for i, p := range parts {
			numers[i] = MulOf(p.numer, Quo(common, p.denom))
		}
		return Cancel(Expand(AddOf(numers...)), common)
	case *Mul, *Pow:
		n, d := splitFraction(v)
		if isNumEqual(d, 1) {
			return e
		}
		return Cancel(n, d)
	}
	return e
}

// splitFraction separates a term into numerator and denominator. Powers
// with negative numeric exponents and the denominator of the numeric
// coefficient go below the line.
func splitFraction(e Expr) (numer, denom Expr) {
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	var top, bottom []Expr
	for _, f := range factors {
		switch v := f.(type) {
		case *Num:
			top = append(top, NRat(newRatInt(v.val.Num())))
			bottom = append(bottom, NRat(newRatInt(v.val.Denom())))
			continue
		case *Pow:
			if en, ok := v.exp.(*Num); ok && en.IsNegative() {
				bottom = append(bottom, PowOf(v.base, numNeg(en)))
				continue
			}
		}
		top = append(top, f)
	}
	return MulOf(top...), MulOf(bottom...)
}

// Cancel simplifies the rational expression num/denom by factoring both
// sides and removing common factors. A zero denominator is kept symbolic.
func Cancel(num, denom Expr) Expr {
	num = num.Simplify()
	denom = denom.Simplify()
	if IsZero(denom) {
		return MulOf(num, PowOf(denom, N(-1)))
	}
	if nn, ok := num.(*Num); ok {
		if dn, ok2 := denom.(*Num); ok2 {
			return numMul(nn, numRecip(dn))
		}
	}
	if dn, ok := denom.(*Num); ok {
		return MulOf(numRecip(dn), num)
	}
	if IsZero(num) {
		return N(0)
	}

	nc, nf := factorList(Factor(num))
	dc, df := factorList(Factor(denom))
	for key, d := range df.exps {
		if n, ok := nf.exps[key]; ok {
			nf.exps[key] = numAdd(n, numNeg(d))
			delete(df.exps, key)
		}
	}
	parts := []Expr{numMul(nc, numRecip(dc))}
	for _, key := range nf.order {
		if exp, ok := nf.exps[key]; ok {
			parts = append(parts, PowOf(nf.bases[key], exp))
		}
	}
	for _, key := range df.order {
		if exp, ok := df.exps[key]; ok {
			parts = append(parts, PowOf(df.bases[key], numNeg(exp)))
		}
	}
	return MulOf(parts...)
}

func newRatInt(i *big.Int) *big.Rat { return new(big.Rat).SetInt(i) }

type factorMap struct {
	order []string
	bases map[string]Expr
	exps  map[string]*Num
}

// factorList splits a factored product into its numeric coefficient and
// its bases with numeric exponents.
func factorList(e Expr) (*Num, factorMap) {
	fm := factorMap{bases: map[string]Expr{}, exps: map[string]*Num{}}
	coeff := N(1)
	factors := []Expr{e}
	if m, ok := e.(*Mul); ok {
		factors = m.factors
	}
	for _, f := range factors {
		if n, ok := f.(*Num); ok {
			coeff = numMul(coeff, n)
			continue
		}
		base, exp := f, N(1)
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 {
				base, exp = p.base, en
			}
		}
		key := base.String()
		if _, seen := fm.exps[key]; !seen {
			fm.order = append(fm.order, key)
			fm.bases[key] = base
			fm.exps[key] = N(0)
		}
		fm.exps[key] = numAdd(fm.exps[key], exp)
	}
	return coeff, fm
}
