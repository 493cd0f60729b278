package model

import (
	"fmt"

	"github.com/katalvlaran/bottleneck/geometry"
)

// Builder assembles a Model. It owns the variable and constraint lists until Build
// hands them to the Model; a Builder is single use.
type Builder struct {
	inst *geometry.Instance
	opts Options

	vars []VarInfo
	cons []Constraint
	arcs []Arc

	universe []geometry.Edge
	depth    []Var
	bound    Var
}

// NewBuilder validates the instance and options.
//
// Error Conditions:
//   - ErrDegreeTooSmall: Degree < 2.
//   - ErrTooFewNodes   : n < 2, or n < 3 for Cycle.
//   - ErrRootOutOfRange: Root outside 0..n-1.
//   - ErrEdgeLimit     : EdgeLimit < 0 or > n(n-1)/2.
func NewBuilder(inst *geometry.Instance, opts ...Option) (*Builder, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	n := inst.Len()
	if cfg.Degree < 2 {
		return nil, ErrDegreeTooSmall
	}
	if n < 2 || (cfg.Variant == Cycle && n < 3) {
		return nil, ErrTooFewNodes
	}
	if cfg.Root < 0 || cfg.Root >= n {
		return nil, ErrRootOutOfRange
	}
	if cfg.EdgeLimit < 0 || cfg.EdgeLimit > inst.NumEdges() {
		return nil, ErrEdgeLimit
	}

	universe := inst.SortedEdges()
	if cfg.EdgeLimit > 0 {
		universe = universe[:cfg.EdgeLimit]
	}

	return &Builder{inst: inst, opts: cfg, universe: universe}, nil
}

// Build returns the model for the configured variant and encoding.
func Build(inst *geometry.Instance, opts ...Option) (*Model, error) {
	b, err := NewBuilder(inst, opts...)
	if err != nil {
		return nil, err
	}

	return b.Build(), nil
}

// Build emits every constraint group in a fixed order and freezes the result.
func (b *Builder) Build() *Model {
	b.bound = b.intVar("bottleneck", 0, len(b.universe)-1)
	if b.opts.Encoding == Depth {
		b.buildDepth()
	} else {
		b.buildLazy()
	}
	b.dominate()

	return &Model{
		inst:     b.inst,
		opts:     b.opts,
		vars:     b.vars,
		cons:     b.cons,
		arcs:     b.arcs,
		universe: b.universe,
		depth:    b.depth,
		bound:    b.bound,
	}
}

func (b *Builder) boolVar(name string) Var {
	b.vars = append(b.vars, VarInfo{Name: name, Kind: BoolVar, Lo: 0, Hi: 1})

	return Var(len(b.vars) - 1)
}

func (b *Builder) intVar(name string, lo, hi int) Var {
	b.vars = append(b.vars, VarInfo{Name: name, Kind: IntVar, Lo: lo, Hi: hi})

	return Var(len(b.vars) - 1)
}

func (b *Builder) add(c Constraint) { b.cons = append(b.cons, c) }

// buildDepth emits the directed arborescence / cycle encoding.
func (b *Builder) buildDepth() {
	n := b.inst.Len()
	root := b.opts.Root
	tree := b.opts.Variant == Tree

	in := make([][]Lit, n)
	out := make([][]Lit, n)
	all := make([]Lit, 0, 2*len(b.universe))

	addArc := func(from, to int, e geometry.Edge) Lit {
		v := b.boolVar(fmt.Sprintf("x[%d->%d]", from, to))
		b.arcs = append(b.arcs, Arc{From: from, To: to, Directed: true, Edge: e, Var: v})
		l := v.Lit()
		out[from] = append(out[from], l)
		in[to] = append(in[to], l)
		all = append(all, l)

		return l
	}

	for _, e := range b.universe {
		// The tree root has no incoming arcs at all.
		var fwd, bwd Lit
		if !tree || e.J != root {
			fwd = addArc(e.I, e.J, e)
		}
		if !tree || e.I != root {
			bwd = addArc(e.J, e.I, e)
		}
		if fwd != 0 && bwd != 0 {
			b.add(Clause{Lits: []Lit{fwd.Not(), bwd.Not()}})
		}
	}

	// Degree bounds.
	d := b.opts.Degree
	for v := 0; v < n; v++ {
		switch {
		case !tree:
			b.add(Cardinality{Lits: in[v], Min: 1, Max: 1})
			b.add(Cardinality{Lits: out[v], Min: 1, Max: 1})
		case v == root:
			b.add(Cardinality{Lits: out[v], Min: 0, Max: d})
		default:
			b.add(Cardinality{Lits: in[v], Min: 1, Max: 1})
			b.add(Cardinality{Lits: out[v], Min: 0, Max: d - 1})
		}
	}

	// Anti-cycle: depth(root) = 0, every arc into a non-root node increments depth.
	b.depth = make([]Var, n)
	for v := 0; v < n; v++ {
		b.depth[v] = b.intVar(fmt.Sprintf("depth[%d]", v), 0, n-1)
	}
	b.add(Fix{Var: b.depth[root], Value: 0})
	for _, a := range b.arcs {
		if a.To == root {
			continue
		}
		b.add(Step{Guard: a.Var.Lit(), From: b.depth[a.From], To: b.depth[a.To]})
	}

	k := b.opts.Variant.RequiredEdges(n)
	b.add(Cardinality{Lits: all, Min: k, Max: k})
}

// buildLazy emits the undirected degree and edge-count encoding.
func (b *Builder) buildLazy() {
	n := b.inst.Len()
	inc := make([][]Lit, n)
	all := make([]Lit, 0, len(b.universe))

	for _, e := range b.universe {
		v := b.boolVar(fmt.Sprintf("e[%d-%d]", e.I, e.J))
		b.arcs = append(b.arcs, Arc{From: e.I, To: e.J, Directed: false, Edge: e, Var: v})
		l := v.Lit()
		inc[e.I] = append(inc[e.I], l)
		inc[e.J] = append(inc[e.J], l)
		all = append(all, l)
	}

	lo, hi := 1, b.opts.Degree
	if b.opts.Variant == Cycle {
		lo, hi = 2, 2
	}
	for v := 0; v < n; v++ {
		b.add(Cardinality{Lits: inc[v], Min: lo, Max: hi})
	}

	k := b.opts.Variant.RequiredEdges(n)
	b.add(Cardinality{Lits: all, Min: k, Max: k})
}

// dominate ties the bottleneck variable to every selected arc's rank.
func (b *Builder) dominate() {
	for _, a := range b.arcs {
		b.add(Dominates{Guard: a.Var.Lit(), Bound: b.bound, Value: a.Edge.Rank})
	}
}
