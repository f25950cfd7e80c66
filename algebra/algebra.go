// Package algebra provides the symbolic kernel behind mathsteps.
//
// Design goals:
//   - Exact rational arithmetic (math/big.Rat)
//   - Deterministic simplification and stable output
//   - Printed forms parse back to equal trees
//   - No global state: every value is immutable once built
package algebra

import (
	"math/big"
	"sort"
	"strings"
)

// ============================================================
// Core Interface
// ============================================================

type Expr interface {
	Simplify() Expr
	String() string
	LaTeX() string
	Sub(varName string, value Expr) Expr
	Equal(other Expr) bool
}

// ============================================================
// Num: exact rational number
// ============================================================

type Num struct{ val *big.Rat }

func N(n int64) *Num { return &Num{val: new(big.Rat).SetInt64(n)} }
func F(p, q int64) *Num {
	if q == 0 {
		panic("algebra: denominator is zero")
	}
	return &Num{val: new(big.Rat).SetFrac(big.NewInt(p), big.NewInt(q))}
}

// NRat copies r into a new Num.
func NRat(r *big.Rat) *Num { return &Num{val: new(big.Rat).Set(r)} }

func (n *Num) Simplify() Expr        { return n }
func (n *Num) Sub(string, Expr) Expr { return n }
func (n *Num) Equal(other Expr) bool { o, ok := other.(*Num); return ok && n.val.Cmp(o.val) == 0 }
func (n *Num) IsZero() bool          { return n.val.Sign() == 0 }
func (n *Num) IsOne() bool           { return n.val.Cmp(big.NewRat(1, 1)) == 0 }
func (n *Num) IsNegOne() bool        { return n.val.Cmp(big.NewRat(-1, 1)) == 0 }
func (n *Num) IsInteger() bool       { return n.val.IsInt() }
func (n *Num) Rat() *big.Rat         { return new(big.Rat).Set(n.val) }
func (n *Num) IsPositive() bool      { return n.val.Sign() > 0 }
func (n *Num) IsNegative() bool      { return n.val.Sign() < 0 }

func (n *Num) String() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	return n.val.RatString()
}

func (n *Num) LaTeX() string {
	if n.val.IsInt() {
		return n.val.Num().String()
	}
	sign := ""
	v := new(big.Rat).Set(n.val)
	if v.Sign() < 0 {
		sign = "-"
		v.Neg(v)
	}
	return sign + "\\frac{" + v.Num().String() + "}{" + v.Denom().String() + "}"
}

func numAdd(a, b *Num) *Num { return &Num{val: new(big.Rat).Add(a.val, b.val)} }
func numMul(a, b *Num) *Num { return &Num{val: new(big.Rat).Mul(a.val, b.val)} }
func numNeg(a *Num) *Num    { return &Num{val: new(big.Rat).Neg(a.val)} }
func numRecip(a *Num) *Num {
	if a.IsZero() {
		panic("algebra: division by zero")
	}
	return &Num{val: new(big.Rat).Inv(a.val)}
}
func numAbs(a *Num) *Num { return &Num{val: new(big.Rat).Abs(a.val)} }

// numPow raises a to an integer power; ok is false when the result would
// need more than maxNumericBits bits or is a division by zero.
func numPow(a *Num, e int64) (*Num, bool) {
	if e < 0 && a.IsZero() {
		return nil, false
	}
	if a.IsZero() || e == 0 {
		if e == 0 {
			return N(1), true
		}
		return N(0), true
	}
	if numAbs(a).IsOne() {
		if a.IsNegative() && e%2 != 0 {
			return N(-1), true
		}
		return N(1), true
	}
	if e > maxNumericBits || e < -maxNumericBits {
		return nil, false
	}
	abs := e
	if abs < 0 {
		abs = -abs
	}
	bits := a.val.Num().BitLen()
	if d := a.val.Denom().BitLen(); d > bits {
		bits = d
	}
	if int64(bits)*abs > maxNumericBits {
		return nil, false
	}
	exp := big.NewInt(abs)
	num := new(big.Int).Exp(a.val.Num(), exp, nil)
	den := new(big.Int).Exp(a.val.Denom(), exp, nil)
	if e < 0 {
		num, den = den, num
	}
	return &Num{val: new(big.Rat).SetFrac(num, den)}, true
}

// maxNumericBits bounds the size of numerator and denominator produced by
// numeric powers.
const maxNumericBits = 4096

// ============================================================
// Sym: symbolic variable
// ============================================================

type Sym struct{ name string }

func S(name string) *Sym      { return &Sym{name: name} }
func (s *Sym) Simplify() Expr { return s }
func (s *Sym) String() string { return s.name }
func (s *Sym) LaTeX() string {
	if len(s.name) > 1 {
		return "\\mathit{" + s.name + "}"
	}
	return s.name
}
func (s *Sym) Equal(other Expr) bool { o, ok := other.(*Sym); return ok && s.name == o.name }
func (s *Sym) Name() string          { return s.name }
func (s *Sym) Sub(varName string, value Expr) Expr {
	if s.name == varName {
		return value
	}
	return s
}

// ============================================================
// Add: sum of terms
// ============================================================

type Add struct{ terms []Expr }

func AddOf(terms ...Expr) Expr { return (&Add{terms: terms}).Simplify() }

// Simplify flattens nested sums, folds numbers and collects like terms
// (2*x + 3*x becomes 5*x). Terms are ordered by descending degree with
// the numeric constant last.
func (a *Add) Simplify() Expr {
	flat := make([]Expr, 0, len(a.terms))
	for _, t := range a.terms {
		s := t.Simplify()
		if inner, ok := s.(*Add); ok {
			flat = append(flat, inner.terms...)
		} else {
			flat = append(flat, s)
		}
	}
	numAccum := N(0)
	coeffs := map[string]*Num{}
	bodies := map[string]Expr{}
	order := []string{}
	for _, t := range flat {
		if v, ok := t.(*Num); ok {
			numAccum = numAdd(numAccum, v)
			continue
		}
		coeff, body := extractCoefficient(t)
		key := body.String()
		if _, seen := coeffs[key]; !seen {
			order = append(order, key)
			coeffs[key] = N(0)
			bodies[key] = body
		}
		coeffs[key] = numAdd(coeffs[key], coeff)
	}
	result := make([]Expr, 0, len(order)+1)
	for _, key := range order {
		coeff := coeffs[key]
		if coeff.IsZero() {
			continue
		}
		result = append(result, MulOf(coeff, bodies[key]))
	}
	sortTerms(result)
	if !numAccum.IsZero() {
		result = append(result, numAccum)
	}
	if len(result) == 0 {
		return N(0)
	}
	if len(result) == 1 {
		return result[0]
	}
	return &Add{terms: result}
}

func sortTerms(terms []Expr) {
	type keyed struct {
		e   Expr
		deg int
		key string
	}
	ks := make([]keyed, len(terms))
	for i, t := range terms {
		_, body := extractCoefficient(t)
		ks[i] = keyed{e: t, deg: totalDegree(body), key: body.String()}
	}
	sort.Slice(ks, func(i, j int) bool {
		if ks[i].deg != ks[j].deg {
			return ks[i].deg > ks[j].deg
		}
		return ks[i].key < ks[j].key
	})
	for i := range ks {
		terms[i] = ks[i].e
	}
}

func (a *Add) String() string {
	if len(a.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			b.WriteString(t.String())
			continue
		}
		if isNegativeTerm(t) {
			b.WriteString(" - ")
			b.WriteString(factorString(MulOf(N(-1), t)))
		} else {
			b.WriteString(" + ")
			b.WriteString(t.String())
		}
	}
	return b.String()
}

func (a *Add) LaTeX() string {
	var b strings.Builder
	for i, t := range a.terms {
		if i == 0 {
			b.WriteString(t.LaTeX())
			continue
		}
		if isNegativeTerm(t) {
			b.WriteString(" - ")
			b.WriteString(factorLaTeX(MulOf(N(-1), t)))
		} else {
			b.WriteString(" + ")
			b.WriteString(t.LaTeX())
		}
	}
	return b.String()
}

func (a *Add) Sub(varName string, value Expr) Expr {
	newTerms := make([]Expr, len(a.terms))
	for i, t := range a.terms {
		newTerms[i] = t.Sub(varName, value)
	}
	return AddOf(newTerms...)
}

func (a *Add) Equal(other Expr) bool {
	o, ok := other.(*Add)
	if !ok || len(a.terms) != len(o.terms) {
		return false
	}
	for i := range a.terms {
		if !a.terms[i].Equal(o.terms[i]) {
			return false
		}
	}
	return true
}

func (a *Add) Terms() []Expr { return a.terms }

func isNegativeTerm(e Expr) bool {
	coeff, _ := extractCoefficient(e)
	if n, ok := e.(*Num); ok {
		return n.IsNegative()
	}
	return coeff.IsNegative()
}

// ============================================================
// Mul: product of factors
// ============================================================

type Mul struct{ factors []Expr }

func MulOf(factors ...Expr) Expr { return (&Mul{factors: factors}).Simplify() }

// Simplify flattens nested products, folds numbers into a leading
// coefficient and merges powers of equal bases (x*x becomes x^2).
func (m *Mul) Simplify() Expr {
	flat := make([]Expr, 0, len(m.factors))
	for _, f := range m.factors {
		s := f.Simplify()
		if inner, ok := s.(*Mul); ok {
			flat = append(flat, inner.factors...)
		} else {
			flat = append(flat, s)
		}
	}
	coeff := N(1)
	bases := map[string]Expr{}
	exps := map[string][]Expr{}
	order := []string{}
	for _, f := range flat {
		if v, ok := f.(*Num); ok {
			coeff = numMul(coeff, v)
			continue
		}
		base, exp := f, Expr(N(1))
		if p, ok := f.(*Pow); ok {
			base, exp = p.base, p.exp
		}
		key := base.String()
		if _, seen := bases[key]; !seen {
			order = append(order, key)
			bases[key] = base
		}
		exps[key] = append(exps[key], exp)
	}
	if coeff.IsZero() {
		return N(0)
	}
	others := make([]Expr, 0, len(order))
	regroup := false
	for _, key := range order {
		f := bases[key]
		if es := exps[key]; len(es) > 1 || !isNumEqual(es[0], 1) {
			f = PowOf(f, AddOf(es...))
		}
		switch v := f.(type) {
		case *Num:
			coeff = numMul(coeff, v)
			continue
		case *Mul:
			regroup = true
		}
		others = append(others, f)
	}
	if regroup {
		return MulOf(append([]Expr{coeff}, others...)...)
	}
	if coeff.IsZero() {
		return N(0)
	}
	if len(others) == 0 {
		return coeff
	}

	// Precompute sort keys to avoid repeated String() calls in comparator.
	type keyed struct {
		e   Expr
		key string
	}
	ks := make([]keyed, len(others))
	for i, e := range others {
		ks[i] = keyed{e: e, key: e.String()}
	}
	sort.Slice(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
	sortedOthers := make([]Expr, len(ks))
	for i := range ks {
		sortedOthers[i] = ks[i].e
	}
	others = sortedOthers

	if coeff.IsOne() {
		if len(others) == 1 {
			return others[0]
		}
		return &Mul{factors: others}
	}
	return &Mul{factors: append([]Expr{coeff}, others...)}
}

// fraction splits a product into numerator factor strings, denominator
// factor strings and the sign, rendering each factor with render.
func (m *Mul) fraction(render func(Expr) string) (sign string, numer, denom []string) {
	coeff, rest := N(1), m.factors
	if c, ok := m.factors[0].(*Num); ok {
		coeff, rest = c, m.factors[1:]
	}
	for _, f := range rest {
		if p, ok := f.(*Pow); ok {
			if en, ok2 := p.exp.(*Num); ok2 && en.IsNegative() {
				denom = append(denom, render(PowOf(p.base, numNeg(en))))
				continue
			}
		}
		numer = append(numer, render(f))
	}
	r := coeff.val
	if r.Sign() < 0 {
		sign = "-"
	}
	num := new(big.Int).Abs(r.Num())
	if num.Cmp(big.NewInt(1)) != 0 || len(numer) == 0 {
		numer = append([]string{num.String()}, numer...)
	}
	if !r.IsInt() {
		denom = append([]string{r.Denom().String()}, denom...)
	}
	return sign, numer, denom
}

func (m *Mul) String() string {
	if len(m.factors) == 0 {
		return "1"
	}
	sign, numer, denom := m.fraction(factorString)
	out := sign + strings.Join(numer, "*")
	switch len(denom) {
	case 0:
	case 1:
		out += "/" + denom[0]
	default:
		out += "/(" + strings.Join(denom, "*") + ")"
	}
	return out
}

func (m *Mul) LaTeX() string {
	sign, numer, denom := m.fraction(factorLaTeX)
	if len(denom) == 0 {
		return sign + strings.Join(numer, " ")
	}
	return sign + "\\frac{" + strings.Join(numer, " ") + "}{" + strings.Join(denom, " ") + "}"
}

func factorString(f Expr) string {
	if _, isAdd := f.(*Add); isAdd {
		return "(" + f.String() + ")"
	}
	return f.String()
}

func factorLaTeX(f Expr) string {
	if _, isAdd := f.(*Add); isAdd {
		return "\\left(" + f.LaTeX() + "\\right)"
	}
	return f.LaTeX()
}

func (m *Mul) Sub(varName string, value Expr) Expr {
	newFactors := make([]Expr, len(m.factors))
	for i, f := range m.factors {
		newFactors[i] = f.Sub(varName, value)
	}
	return MulOf(newFactors...)
}

func (m *Mul) Equal(other Expr) bool {
	o, ok := other.(*Mul)
	if !ok || len(m.factors) != len(o.factors) {
		return false
	}
	for i := range m.factors {
		if !m.factors[i].Equal(o.factors[i]) {
			return false
		}
	}
	return true
}

func (m *Mul) Factors() []Expr { return m.factors }

// ============================================================
// Pow: base^exponent
// ============================================================

type Pow struct{ base, exp Expr }

func PowOf(base, exp Expr) Expr { return (&Pow{base: base, exp: exp}).Simplify() }

func (p *Pow) Simplify() Expr {
	base := p.base.Simplify()
	exp := p.exp.Simplify()

	if en, ok := exp.(*Num); ok && en.IsZero() {
		return N(1)
	}
	if en, ok := exp.(*Num); ok && en.IsOne() {
		return base
	}

	// Handle 0^exp carefully.
	if bn, ok := base.(*Num); ok && bn.IsZero() {
		if en, ok2 := exp.(*Num); ok2 {
			// 0^0 is indeterminate; 0^negative is division by zero.
			if en.IsZero() || en.IsNegative() {
				return &Pow{base: base, exp: exp}
			}
		}
		return N(0)
	}

	if bn, ok := base.(*Num); ok && bn.IsOne() {
		return N(1)
	}
	if bn, ok := base.(*Num); ok {
		if en, ok2 := exp.(*Num); ok2 {
			if en.IsInteger() && en.val.Num().IsInt64() {
				if result, ok3 := numPow(bn, en.val.Num().Int64()); ok3 {
					return result
				}
			} else if root, ok3 := exactSqrt(bn); ok3 && en.val.Denom().Cmp(big.NewInt(2)) == 0 {
				return PowOf(root, NRat(new(big.Rat).SetInt(en.val.Num())))
			}
		}
	}
	if inner, ok := base.(*Pow); ok {
		newExp := MulOf(inner.exp, exp)
		return PowOf(inner.base, newExp)
	}
	if m, ok := base.(*Mul); ok {
		if en, ok2 := exp.(*Num); ok2 && en.IsInteger() {
			factors := make([]Expr, len(m.factors))
			for i, f := range m.factors {
				factors[i] = PowOf(f, en)
			}
			return MulOf(factors...)
		}
	}
	return &Pow{base: base, exp: exp}
}

// exactSqrt returns the square root of a non-negative rational when both
// numerator and denominator are perfect squares.
func exactSqrt(n *Num) (*Num, bool) {
	if n.IsNegative() {
		return nil, false
	}
	num := new(big.Int).Sqrt(n.val.Num())
	den := new(big.Int).Sqrt(n.val.Denom())
	if new(big.Int).Mul(num, num).Cmp(n.val.Num()) != 0 || new(big.Int).Mul(den, den).Cmp(n.val.Denom()) != 0 {
		return nil, false
	}
	return &Num{val: new(big.Rat).SetFrac(num, den)}, true
}

func (p *Pow) String() string {
	if en, ok := p.exp.(*Num); ok && en.IsNegative() {
		return "1/" + factorString(PowOf(p.base, numNeg(en)))
	}
	return powBaseString(p.base) + "^" + powExpString(p.exp)
}

func powBaseString(b Expr) string {
	switch v := b.(type) {
	case *Add, *Mul, *Pow:
		return "(" + b.String() + ")"
	case *Num:
		if v.IsNegative() || !v.IsInteger() {
			return "(" + b.String() + ")"
		}
	}
	return b.String()
}

func powExpString(e Expr) string {
	switch v := e.(type) {
	case *Sym, *Func:
		return e.String()
	case *Num:
		if v.IsInteger() && !v.IsNegative() {
			return e.String()
		}
	}
	return "(" + e.String() + ")"
}

func (p *Pow) LaTeX() string {
	if en, ok := p.exp.(*Num); ok && en.IsNegative() {
		return "\\frac{1}{" + PowOf(p.base, numNeg(en)).LaTeX() + "}"
	}
	if en, ok := p.exp.(*Num); ok && en.val.Cmp(big.NewRat(1, 2)) == 0 {
		return "\\sqrt{" + p.base.LaTeX() + "}"
	}
	baseStr := p.base.LaTeX()
	switch p.base.(type) {
	case *Add, *Mul, *Pow:
		baseStr = "\\left(" + baseStr + "\\right)"
	}
	return baseStr + "^{" + p.exp.LaTeX() + "}"
}

func (p *Pow) Sub(varName string, value Expr) Expr {
	return PowOf(p.base.Sub(varName, value), p.exp.Sub(varName, value))
}

func (p *Pow) Equal(other Expr) bool {
	o, ok := other.(*Pow)
	return ok && p.base.Equal(o.base) && p.exp.Equal(o.exp)
}

func (p *Pow) Base() Expr    { return p.base }
func (p *Pow) ExpExpr() Expr { return p.exp }

// ============================================================
// Func: named function applications
// ============================================================

type Func struct {
	name string
	arg  Expr
}

func funcOf(name string, arg Expr) *Func { return &Func{name: name, arg: arg} }

func SinOf(arg Expr) Expr  { return funcOf("sin", arg).Simplify() }
func CosOf(arg Expr) Expr  { return funcOf("cos", arg).Simplify() }
func ExpOf(arg Expr) Expr  { return funcOf("exp", arg).Simplify() }
func LnOf(arg Expr) Expr   { return funcOf("ln", arg).Simplify() }
func SqrtOf(arg Expr) Expr { return PowOf(arg, F(1, 2)) }
func AbsOf(arg Expr) Expr  { return funcOf("abs", arg).Simplify() }

// unaryFuncs lists the function names the parser accepts.
var unaryFuncs = map[string]func(Expr) Expr{
	"sin":   SinOf,
	"cos":   CosOf,
	"tan":   func(a Expr) Expr { return funcOf("tan", a).Simplify() },
	"asin":  func(a Expr) Expr { return funcOf("asin", a).Simplify() },
	"acos":  func(a Expr) Expr { return funcOf("acos", a).Simplify() },
	"atan":  func(a Expr) Expr { return funcOf("atan", a).Simplify() },
	"sinh":  func(a Expr) Expr { return funcOf("sinh", a).Simplify() },
	"cosh":  func(a Expr) Expr { return funcOf("cosh", a).Simplify() },
	"tanh":  func(a Expr) Expr { return funcOf("tanh", a).Simplify() },
	"exp":   ExpOf,
	"ln":    LnOf,
	"log":   LnOf,
	"sqrt":  SqrtOf,
	"abs":   AbsOf,
	"floor": func(a Expr) Expr { return funcOf("floor", a).Simplify() },
	"ceil":  func(a Expr) Expr { return funcOf("ceil", a).Simplify() },
	"sign":  func(a Expr) Expr { return funcOf("sign", a).Simplify() },
}

// IsFunction reports whether name is a function the parser accepts.
func IsFunction(name string) bool {
	_, ok := unaryFuncs[name]
	return ok
}

// Simplify evaluates a function only where the result is exact.
func (f *Func) Simplify() Expr {
	arg := f.arg.Simplify()
	if n, ok := arg.(*Num); ok {
		switch f.name {
		case "abs":
			return numAbs(n)
		case "sign":
			return N(int64(n.val.Sign()))
		case "floor", "ceil":
			q := new(big.Int).Div(n.val.Num(), n.val.Denom())
			if f.name == "ceil" && !n.IsInteger() {
				q.Add(q, big.NewInt(1))
			}
			return &Num{val: new(big.Rat).SetInt(q)}
		}
	}
	switch f.name {
	case "sin", "tan", "asin", "atan", "sinh", "tanh":
		if isNumEqual(arg, 0) {
			return N(0)
		}
	case "cos", "cosh":
		if isNumEqual(arg, 0) {
			return N(1)
		}
	case "ln":
		if n2, ok := arg.(*Num); ok && n2.IsOne() {
			return N(0)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "exp" {
			return inner.arg
		}
	case "exp":
		if n2, ok := arg.(*Num); ok && n2.IsZero() {
			return N(1)
		}
		if inner, ok := arg.(*Func); ok && inner.name == "ln" {
			return inner.arg
		}
	case "abs":
		if m, ok := arg.(*Mul); ok && len(m.factors) >= 1 {
			if coeff, ok2 := m.factors[0].(*Num); ok2 && coeff.IsNegative() {
				return MulOf(numAbs(coeff), AbsOf(MulOf(m.factors[1:]...)))
			}
		}
	}
	return &Func{name: f.name, arg: arg}
}

func (f *Func) String() string { return f.name + "(" + f.arg.String() + ")" }

func (f *Func) LaTeX() string {
	switch f.name {
	case "sin", "cos", "tan", "exp", "ln", "sinh", "cosh", "tanh":
		return "\\" + f.name + "\\left(" + f.arg.LaTeX() + "\\right)"
	case "asin":
		return "\\arcsin\\left(" + f.arg.LaTeX() + "\\right)"
	case "acos":
		return "\\arccos\\left(" + f.arg.LaTeX() + "\\right)"
	case "atan":
		return "\\arctan\\left(" + f.arg.LaTeX() + "\\right)"
	case "abs":
		return "\\left|" + f.arg.LaTeX() + "\\right|"
	case "floor":
		return "\\lfloor " + f.arg.LaTeX() + " \\rfloor"
	case "ceil":
		return "\\lceil " + f.arg.LaTeX() + " \\rceil"
	}
	return "\\operatorname{" + f.name + "}\\left(" + f.arg.LaTeX() + "\\right)"
}

func (f *Func) Sub(varName string, value Expr) Expr {
	return funcOf(f.name, f.arg.Sub(varName, value)).Simplify()
}

func (f *Func) Equal(other Expr) bool {
	o, ok := other.(*Func)
	return ok && f.name == o.name && f.arg.Equal(o.arg)
}

func (f *Func) FuncName() string { return f.name }
func (f *Func) Arg() Expr        { return f.arg }

func isNumEqual(e Expr, v int64) bool {
	n, ok := e.(*Num)
	return ok && n.Equal(N(v))
}

// extractCoefficient splits a term into its numeric coefficient and the
// remaining (coefficient-free) body.
func extractCoefficient(e Expr) (*Num, Expr) {
	if m, ok := e.(*Mul); ok && len(m.factors) >= 2 {
		if coeff, ok2 := m.factors[0].(*Num); ok2 {
			rest := m.factors[1:]
			if len(rest) == 1 {
				return coeff, rest[0]
			}
			return coeff, &Mul{factors: rest}
		}
	}
	return N(1), e
}

// ============================================================
// Top-level convenience functions
// ============================================================

func Simplify(e Expr) Expr { return e.Simplify() }
func String(e Expr) string { return e.String() }
func LaTeX(e Expr) string  { return e.LaTeX() }

func Sub(expr Expr, varName string, value Expr) Expr {
	return expr.Sub(varName, value).Simplify()
}

// Neg returns -e.
func Neg(e Expr) Expr { return MulOf(N(-1), e) }

// Minus returns a - b.
func Minus(a, b Expr) Expr { return AddOf(a, Neg(b)) }

// Quo returns a / b. The caller guarantees b is not zero.
func Quo(a, b Expr) Expr { return MulOf(a, PowOf(b, N(-1))) }

// IsZero reports whether e simplifies to the number zero.
func IsZero(e Expr) bool { return isNumEqual(e.Simplify(), 0) }

// NodeCount is the number of nodes in the tree, used to rank candidate
// simplifications.
func NodeCount(e Expr) int {
	switch v := e.(type) {
	case *Add:
		n := 1
		for _, t := range v.terms {
			n += NodeCount(t)
		}
		return n
	case *Mul:
		n := 1
		for _, f := range v.factors {
			n += NodeCount(f)
		}
		return n
	case *Pow:
		return 1 + NodeCount(v.base) + NodeCount(v.exp)
	case *Func:
		return 1 + NodeCount(v.arg)
	}
	return 1
}
