package model

import "strings"

// Variant selects the spanning structure.
type Variant uint8

const (
	// Tree is a spanning tree with maximum degree d.
	Tree Variant = iota
	// Cycle is a Hamiltonian cycle (bottleneck TSP).
	Cycle
)

// String returns the flag form of v.
func (v Variant) String() string {
	switch v {
	case Tree:
		return "tree"
	case Cycle:
		return "cycle"
	default:
		return "unknown"
	}
}

// RequiredEdges returns the number of edges a solution of the variant has on n nodes.
func (v Variant) RequiredEdges(n int) int {
	if v == Cycle {
		return n
	}

	return n - 1
}

// ParseVariant maps "tree"/"dbst" and "cycle"/"btsp" to a Variant.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(s) {
	case "tree", "dbst":
		return Tree, nil
	case "cycle", "btsp", "tour":
		return Cycle, nil
	default:
		return 0, ErrUnknownVariant
	}
}

// Encoding selects how sub-cycles are ruled out.
type Encoding uint8

const (
	// Depth uses directed arcs and per-node depth variables.
	Depth Encoding = iota
	// Lazy uses undirected edges and relies on component-separation cuts.
	Lazy
)

// String returns the flag form of e.
func (e Encoding) String() string {
	switch e {
	case Depth:
		return "depth"
	case Lazy:
		return "lazy"
	default:
		return "unknown"
	}
}

// ParseEncoding maps "depth" and "lazy" to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	switch strings.ToLower(s) {
	case "depth":
		return Depth, nil
	case "lazy":
		return Lazy, nil
	default:
		return 0, ErrUnknownEncoding
	}
}

// Options configures a Builder.
type Options struct {
	Variant  Variant
	Encoding Encoding
	// Degree is the maximum node degree d of the tree variant; ignored by Cycle.
	Degree int
	// EdgeLimit restricts the universe to the EdgeLimit cheapest edges; 0 means all.
	EdgeLimit int
	// Root is the arborescence root of the depth encoding.
	Root int
}

// Option mutates Options.
type Option func(*Options)

// WithVariant selects Tree or Cycle.
func WithVariant(v Variant) Option {
	return func(o *Options) { o.Variant = v }
}

// WithEncoding selects Depth or Lazy.
func WithEncoding(e Encoding) Option {
	return func(o *Options) { o.Encoding = e }
}

// WithDegree sets the maximum degree d.
func WithDegree(d int) Option {
	return func(o *Options) { o.Degree = d }
}

// WithEdgeLimit keeps only the k cheapest candidate edges.
func WithEdgeLimit(k int) Option {
	return func(o *Options) { o.EdgeLimit = k }
}

// WithRoot sets the depth-encoding root.
func WithRoot(r int) Option {
	return func(o *Options) { o.Root = r }
}

// DefaultOptions is a degree-2 tree in the depth encoding rooted at node 0.
func DefaultOptions() Options {
	return Options{Variant: Tree, Encoding: Depth, Degree: 2, EdgeLimit: 0, Root: 0}
}
