package oracle

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/model"
)

// Card is a cardinality constraint over DIMACS literals: Min <= true count <= Max.
// Lowering guarantees 0 <= Min <= Max <= len(Lits) and that it is not trivially true.
type Card struct {
	Lits []int
	Min  int
	Max  int
}

// Formula is a lowered model. Variables are numbered 1..NumVars; literal -x negates x.
type Formula struct {
	NumVars int
	// True is a variable fixed to true by a unit clause; -True is the constant false.
	True    int
	Clauses [][]int
	Cards   []Card

	m       *model.Model
	boolLit []int   // model bool var -> DIMACS literal
	lo      []int   // model int var -> domain low
	ge      [][]int // model int var -> ge[k-lo-1] = [v >= k] for k in lo+1..hi
}

// Lower translates m. Constant literals are simplified away; a requirement that can
// never hold becomes the clause [-True], so the formula stays well formed.
func Lower(m *model.Model) (*Formula, error) {
	vars := m.Vars()
	f := &Formula{
		m:       m,
		boolLit: make([]int, len(vars)),
		lo:      make([]int, len(vars)),
		ge:      make([][]int, len(vars)),
	}
	f.True = f.fresh()
	f.Clauses = append(f.Clauses, []int{f.True})

	for v, info := range vars {
		switch info.Kind {
		case model.BoolVar:
			f.boolLit[v] = f.fresh()
		case model.IntVar:
			if info.Hi < info.Lo {
				return nil, errors.Errorf("oracle: variable %s has empty domain [%d, %d]", info.Name, info.Lo, info.Hi)
			}
			f.lo[v] = info.Lo
			f.ge[v] = make([]int, info.Hi-info.Lo)
			for k := range f.ge[v] {
				f.ge[v][k] = f.fresh()
			}
			// [v >= k+1] => [v >= k]
			for k := 1; k < len(f.ge[v]); k++ {
				f.clause(-f.ge[v][k], f.ge[v][k-1])
			}
		}
	}

	for i, c := range m.Constraints() {
		switch c := c.(type) {
		case model.Clause:
			f.clause(f.lits(c.Lits)...)
		case model.Cardinality:
			f.card(f.lits(c.Lits), c.Min, c.Max)
		case model.Step:
			g := f.Lit(c.Guard)
			lo := f.lo[c.From]
			hi := lo + len(f.ge[c.From])
			for k := lo; k <= hi+1; k++ {
				f.clause(-g, -f.Ge(c.From, k), f.Ge(c.To, k+1))
				f.clause(-g, f.Ge(c.From, k), -f.Ge(c.To, k+1))
			}
		case model.Fix:
			f.clause(f.Ge(c.Var, c.Value))
			f.clause(-f.Ge(c.Var, c.Value+1))
		case model.Dominates:
			f.clause(-f.Lit(c.Guard), f.Ge(c.Bound, c.Value))
		default:
			return nil, errors.Errorf("oracle: constraint %d has unsupported type %T", i, c)
		}
	}

	return f, nil
}

func (f *Formula) fresh() int {
	f.NumVars++

	return f.NumVars
}

// Lit maps a model literal to its DIMACS literal.
func (f *Formula) Lit(l model.Lit) int {
	x := f.boolLit[l.Var()]
	if !l.Positive() {
		return -x
	}

	return x
}

func (f *Formula) lits(ls []model.Lit) []int {
	out := make([]int, len(ls))
	for i, l := range ls {
		out[i] = f.Lit(l)
	}

	return out
}

// Ge returns the literal [v >= k], clamped to the constants outside the domain.
func (f *Formula) Ge(v model.Var, k int) int {
	lo := f.lo[v]
	switch {
	case k <= lo:
		return f.True
	case k > lo+len(f.ge[v]):
		return -f.True
	default:
		return f.ge[v][k-lo-1]
	}
}

// AtMost returns the assumption literal for v <= t.
func (f *Formula) AtMost(v model.Var, t int) int { return -f.Ge(v, t+1) }

// Threshold returns the assumption literal for bottleneck <= t.
func (f *Formula) Threshold(t int) int { return f.AtMost(f.m.Bottleneck(), t) }

// Simplify drops false constants and reports whether the clause is already satisfied.
// The result is the contradiction [-True] when nothing is left.
func (f *Formula) Simplify(lits []int) ([]int, bool) {
	out := make([]int, 0, len(lits))
	for _, x := range lits {
		switch x {
		case f.True:
			return nil, true
		case -f.True:
			continue
		default:
			out = append(out, x)
		}
	}
	if len(out) == 0 {
		out = append(out, -f.True)
	}

	return out, false
}

func (f *Formula) clause(lits ...int) {
	if out, sat := f.Simplify(lits); !sat {
		f.Clauses = append(f.Clauses, out)
	}
}

func (f *Formula) card(lits []int, lo, hi int) {
	n := len(lits)
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	switch {
	case lo > hi:
		f.Clauses = append(f.Clauses, []int{-f.True})
	case lo == 0 && hi == n:
		// no-op
	case lo == 1 && hi == n:
		f.Clauses = append(f.Clauses, append([]int(nil), lits...))
	case hi == 0:
		for _, x := range lits {
			f.Clauses = append(f.Clauses, []int{-x})
		}
	case lo == n:
		for _, x := range lits {
			f.Clauses = append(f.Clauses, []int{x})
		}
	default:
		f.Cards = append(f.Cards, Card{Lits: lits, Min: lo, Max: hi})
	}
}

// Assignment snapshots a model from value, which reports the truth of a positive
// DIMACS variable. Integer values are read from the order encoding.
func (f *Formula) Assignment(value func(x int) bool) model.Assignment {
	vals := make([]bool, f.NumVars+1)
	for x := 1; x <= f.NumVars; x++ {
		vals[x] = value(x)
	}

	return &assignment{f: f, vals: vals}
}

// Satisfies reports whether vals (indexed by variable, vals[0] unused) satisfies every
// clause and cardinality of f under the extra unit assumptions.
func (f *Formula) Satisfies(vals []bool, assumptions ...int) bool {
	holds := func(x int) bool {
		if x < 0 {
			return !vals[-x]
		}

		return vals[x]
	}
	for _, x := range assumptions {
		if !holds(x) {
			return false
		}
	}
	for _, c := range f.Clauses {
		ok := false
		for _, x := range c {
			if holds(x) {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	for _, c := range f.Cards {
		cnt := 0
		for _, x := range c.Lits {
			if holds(x) {
				cnt++
			}
		}
		if cnt < c.Min || cnt > c.Max {
			return false
		}
	}

	return true
}

type assignment struct {
	f    *Formula
	vals []bool
}

func (a *assignment) Bool(v model.Var) bool {
	x := a.f.boolLit[v]
	if x < 0 {
		return !a.vals[-x]
	}

	return a.vals[x]
}

// Int counts the true order literals; the chain axioms make them a prefix.
func (a *assignment) Int(v model.Var) int {
	n := a.f.lo[v]
	for _, x := range a.f.ge[v] {
		if !a.vals[x] {
			break
		}
		n++
	}

	return n
}
