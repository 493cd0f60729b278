package model

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/bottleneck/geometry"
)

// Builder input errors.
var (
	// ErrDegreeTooSmall indicates a degree bound below two.
	ErrDegreeTooSmall = errors.New("model: degree bound must be at least 2")

	// ErrTooFewNodes indicates n < 2, or n < 3 for the cycle variant.
	ErrTooFewNodes = errors.New("model: too few nodes for the variant")

	// ErrRootOutOfRange indicates a root outside 0..n-1.
	ErrRootOutOfRange = errors.New("model: root out of range")

	// ErrEdgeLimit indicates a negative edge limit or one above n(n-1)/2.
	ErrEdgeLimit = errors.New("model: edge limit out of range")

	// ErrViolated indicates an assignment that breaks a constraint.
	ErrViolated = errors.New("model: constraint violated")

	// ErrUnknownVariant indicates a variant name that cannot be parsed.
	ErrUnknownVariant = errors.New("model: unknown variant")

	// ErrUnknownEncoding indicates an encoding name that cannot be parsed.
	ErrUnknownEncoding = errors.New("model: unknown encoding")
)

// Var identifies a model variable; it indexes Model.Vars.
type Var int32

// Lit is a boolean literal: Var v is v+1, its negation -(v+1). Zero is not a literal.
type Lit int32

// Lit returns the positive literal of v.
func (v Var) Lit() Lit { return Lit(v + 1) }

// Not returns the negation of l.
func (l Lit) Not() Lit { return -l }

// Var returns the variable of l.
func (l Lit) Var() Var {
	if l < 0 {
		return Var(-l - 1)
	}

	return Var(l - 1)
}

// Positive reports whether l is the un-negated literal of its variable.
func (l Lit) Positive() bool { return l > 0 }

// String renders l as v<var> or -v<var>.
func (l Lit) String() string {
	if l < 0 {
		return fmt.Sprintf("-v%d", l.Var())
	}

	return fmt.Sprintf("v%d", l.Var())
}

// VarKind distinguishes boolean from bounded integer variables.
type VarKind uint8

const (
	// BoolVar is a 0/1 decision variable.
	BoolVar VarKind = iota
	// IntVar is an integer variable with domain [Lo, Hi].
	IntVar
)

// VarInfo describes one variable.
type VarInfo struct {
	Name string
	Kind VarKind
	Lo   int // 0 for BoolVar
	Hi   int // 1 for BoolVar
}

// Assignment is a value for every model variable, as returned by an oracle.
type Assignment interface {
	Bool(v Var) bool
	Int(v Var) int
}

// Constraint is one of Clause, Cardinality, Step, Fix, Dominates.
type Constraint interface {
	constraint()
}

// Clause requires at least one of Lits to hold. An empty clause is a contradiction.
type Clause struct {
	Lits []Lit
}

// Cardinality requires Min <= |{l in Lits : l holds}| <= Max.
type Cardinality struct {
	Lits []Lit
	Min  int
	Max  int
}

// Step requires To == From+1 whenever Guard holds.
type Step struct {
	Guard Lit
	From  Var
	To    Var
}

// Fix requires Var == Value.
type Fix struct {
	Var   Var
	Value int
}

// Dominates requires Bound >= Value whenever Guard holds.
type Dominates struct {
	Guard Lit
	Bound Var
	Value int
}

func (Clause) constraint()      {}
func (Cardinality) constraint() {}
func (Step) constraint()        {}
func (Fix) constraint()         {}
func (Dominates) constraint()   {}

// Arc is one selection variable. For the depth encoding it is directed From -> To;
// for the lazy encoding it is the undirected edge {From, To} with From < To.
type Arc struct {
	From     int
	To       int
	Directed bool
	Edge     geometry.Edge
	Var      Var
}
