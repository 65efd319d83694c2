// Package hex provides axial hex-grid positions, distances, and areas.
// See https://www.redblobgames.com/grids/hexagons/ for the coordinate system.
package hex

import (
	"fmt"
	"math"
)

// Pos is a position on a hexagonal grid in axial coordinates.
// The third cube coordinate s is derived: s = -q - r.
type Pos struct {
	R int `yaml:"r"`
	Q int `yaml:"q"`
}

// P is shorthand for Pos{R: r, Q: q}.
func P(r, q int) Pos {
	return Pos{R: r, Q: q}
}

// S returns the implicit third cube coordinate.
func (p Pos) S() int {
	return -p.Q - p.R
}

// Add returns p offset by d.
func (p Pos) Add(d Pos) Pos {
	return Pos{R: p.R + d.R, Q: p.Q + d.Q}
}

// String returns "(r,q)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.R, p.Q)
}

// directions lists the six unit offsets, clockwise from "east".
var directions = [6]Pos{
	{R: 0, Q: 1},
	{R: 1, Q: 0},
	{R: 1, Q: -1},
	{R: 0, Q: -1},
	{R: -1, Q: 0},
	{R: -1, Q: 1},
}

// Neighbors returns the six positions adjacent to p.
//
// Postcondition: Distance(p, n) == 1 for every returned n.
func (p Pos) Neighbors() [6]Pos {
	var out [6]Pos
	for i, d := range directions {
		out[i] = p.Add(d)
	}
	return out
}

// Distance returns the number of hex steps between a and b.
//
// Postcondition: symmetric, zero iff a == b, satisfies the triangle inequality.
func Distance(a, b Pos) int {
	return (absDiff(a.Q, b.Q) + absDiff(a.R, b.R) + absDiff(a.S(), b.S())) / 2
}

// Adjacent reports whether a and b are exactly one step apart.
func Adjacent(a, b Pos) bool {
	return Distance(a, b) == 1
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Unbounded is the outer radius of a disk that reaches every position.
const Unbounded = math.MaxInt

// Area selects the positions affected around a target point.
// The set of areas is closed; Disk is the only variant.
type Area interface {
	// Contains reports whether pos lies in the area centred on target.
	Contains(pos, target Pos) bool
	isArea()
}

// Disk is the annulus of positions whose distance to the target lies in [From, To).
// Disk{0, 1} is the target hex alone; Disk{1, 2} is the ring of its neighbours.
type Disk struct {
	From int
	To   int
}

func (Disk) isArea() {}

// Contains implements Area.
func (d Disk) Contains(pos, target Pos) bool {
	return d.InRange(Distance(pos, target))
}

// InRange reports whether distance lies in [From, To).
func (d Disk) InRange(distance int) bool {
	return d.From <= distance && distance < d.To
}

// String returns "[from,to)".
func (d Disk) String() string {
	if d.To == Unbounded {
		return fmt.Sprintf("[%d,inf)", d.From)
	}
	return fmt.Sprintf("[%d,%d)", d.From, d.To)
}

// DefaultArea returns the single-hex area Disk{0, 1}.
func DefaultArea() Area {
	return Disk{From: 0, To: 1}
}

// IsDefault reports whether a is nil or equal to DefaultArea.
func IsDefault(a Area) bool {
	return a == nil || a == DefaultArea()
}

// InArea reports whether pos lies in a centred on target; a nil area is DefaultArea.
func InArea(pos Pos, a Area, target Pos) bool {
	if a == nil {
		a = DefaultArea()
	}
	return a.Contains(pos, target)
}
