package geometry

import (
	"errors"
	"fmt"
)

// Sentinel errors for instance construction and lookups.
var (
	// ErrTooFewPoints indicates an instance with n < 2.
	ErrTooFewPoints = errors.New("geometry: at least two points are required")

	// ErrDuplicatePoint indicates two coincident points while duplicates are disallowed.
	ErrDuplicatePoint = errors.New("geometry: duplicate coincident point")

	// ErrIndexOutOfRange indicates a point index or rank outside the instance.
	ErrIndexOutOfRange = errors.New("geometry: index out of range")

	// ErrBadRectangle indicates a non-positive rectangle or one too small for n distinct points.
	ErrBadRectangle = errors.New("geometry: rectangle cannot hold the requested points")

	// ErrCoordinateRange indicates a coordinate whose absolute value exceeds MaxCoordinate.
	ErrCoordinateRange = errors.New("geometry: coordinate out of range")
)

// MaxCoordinate bounds |X| and |Y| of every point. A squared cost is then below 2^51,
// so costs, and sums of up to 4096 of them, stay exact in int64.
const MaxCoordinate int64 = 1 << 24

// InRange reports whether both coordinates of p lie in [-MaxCoordinate, MaxCoordinate].
func (p Point) InRange() bool {
	return p.X >= -MaxCoordinate && p.X <= MaxCoordinate && p.Y >= -MaxCoordinate && p.Y <= MaxCoordinate
}

// Point is an immutable integer coordinate in the plane.
type Point struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// String renders the point as "(x,y)".
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// SquaredDistance returns the squared Euclidean distance between p and q.
func SquaredDistance(p, q Point) int64 {
	dx := p.X - q.X
	dy := p.Y - q.Y

	return dx*dx + dy*dy
}

// Edge is an unordered candidate pair {I, J} with I < J.
//
// Rank is the edge's position in the sorted candidate list (its threshold index) and
// Cost its squared Euclidean length.
type Edge struct {
	I    int   `json:"i"`
	J    int   `json:"j"`
	Rank int   `json:"rank"`
	Cost int64 `json:"cost"`
}

// Other returns the endpoint of e opposite to v, or -1 if v is not an endpoint.
func (e Edge) Other(v int) int {
	switch v {
	case e.I:
		return e.J
	case e.J:
		return e.I
	default:
		return -1
	}
}

// Segment is an edge expressed as its two coordinate endpoints.
type Segment [2]Point

// Options configures instance construction.
type Options struct {
	// AllowCoincident accepts several points at the same coordinate.
	AllowCoincident bool
}

// Option mutates Options.
type Option func(*Options)

// WithCoincidentPoints accepts coincident points. Their pairs get cost 0, which is a
// degenerate but valid instance.
func WithCoincidentPoints() Option {
	return func(o *Options) { o.AllowCoincident = true }
}

// DefaultOptions rejects coincident points.
func DefaultOptions() Options {
	return Options{AllowCoincident: false}
}
