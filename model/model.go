package model

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/bottleneck/geometry"
)

// Model is an immutable feasibility model. It is safe to share between goroutines;
// oracles copy what they need when lowering.
type Model struct {
	inst *geometry.Instance
	opts Options

	vars []VarInfo
	cons []Constraint
	arcs []Arc

	universe []geometry.Edge
	depth    []Var
	bound    Var
}

// Instance returns the instance the model was built for.
func (m *Model) Instance() *geometry.Instance { return m.inst }

// Options returns the builder options.
func (m *Model) Options() Options { return m.opts }

// Variant is shorthand for Options().Variant.
func (m *Model) Variant() Variant { return m.opts.Variant }

// Encoding is shorthand for Options().Encoding.
func (m *Model) Encoding() Encoding { return m.opts.Encoding }

// NumNodes returns n.
func (m *Model) NumNodes() int { return m.inst.Len() }

// Vars returns the variable table. The slice is shared.
func (m *Model) Vars() []VarInfo { return m.vars }

// Constraints returns the constraint list in emission order. The slice is shared.
func (m *Model) Constraints() []Constraint { return m.cons }

// Arcs returns the selection variables. The slice is shared.
func (m *Model) Arcs() []Arc { return m.arcs }

// Universe returns the candidate edges the model may select, ascending by rank.
func (m *Model) Universe() []geometry.Edge { return m.universe }

// Bottleneck returns the objective variable, measured in ranks.
func (m *Model) Bottleneck() Var { return m.bound }

// Depth returns the depth variable of node v and false for the lazy encoding.
func (m *Model) Depth(v int) (Var, bool) {
	if m.depth == nil || v < 0 || v >= len(m.depth) {
		return 0, false
	}

	return m.depth[v], true
}

// MaxThreshold returns the highest meaningful threshold, len(Universe())-1.
func (m *Model) MaxThreshold() int { return len(m.universe) - 1 }

// CostOf maps a rank to its squared cost. The map is monotone non-decreasing.
func (m *Model) CostOf(rank int) (int64, error) { return m.inst.CostAt(rank) }

// Crossing returns the literals of every arc with exactly one endpoint inside.
// Selecting any of them connects the component to the rest of the nodes.
func (m *Model) Crossing(inside []bool) []Lit {
	var out []Lit
	for _, a := range m.arcs {
		if inside[a.From] != inside[a.To] {
			out = append(out, a.Var.Lit())
		}
	}

	return out
}

// Decode reads the selected arcs, depths and bottleneck value from a.
func (m *Model) Decode(a Assignment) *Solution {
	s := &Solution{Bound: a.Int(m.bound)}
	for _, arc := range m.arcs {
		if !a.Bool(arc.Var) {
			continue
		}
		s.Arcs = append(s.Arcs, arc)
		s.Edges = append(s.Edges, arc.Edge)
	}
	if m.depth != nil {
		s.Depths = make([]int, len(m.depth))
		for v, dv := range m.depth {
			s.Depths[v] = a.Int(dv)
		}
	}

	return s
}

// Check verifies that a satisfies every constraint and every integer domain.
// It returns ErrViolated wrapped with the offending index.
func (m *Model) Check(a Assignment) error {
	for v, info := range m.vars {
		if info.Kind != IntVar {
			continue
		}
		if x := a.Int(Var(v)); x < info.Lo || x > info.Hi {
			return errors.Wrapf(ErrViolated, "variable %s = %d outside [%d, %d]", info.Name, x, info.Lo, info.Hi)
		}
	}

	holds := func(l Lit) bool { return a.Bool(l.Var()) == l.Positive() }
	for i, c := range m.cons {
		ok := true
		switch c := c.(type) {
		case Clause:
			ok = false
			for _, l := range c.Lits {
				if holds(l) {
					ok = true
					break
				}
			}
		case Cardinality:
			cnt := 0
			for _, l := range c.Lits {
				if holds(l) {
					cnt++
				}
			}
			ok = cnt >= c.Min && cnt <= c.Max
		case Step:
			ok = !holds(c.Guard) || a.Int(c.To) == a.Int(c.From)+1
		case Fix:
			ok = a.Int(c.Var) == c.Value
		case Dominates:
			ok = !holds(c.Guard) || a.Int(c.Bound) >= c.Value
		}
		if !ok {
			return errors.Wrapf(ErrViolated, "constraint %d (%T)", i, c)
		}
	}

	return nil
}
