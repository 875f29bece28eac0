package siftsweep

import (
	"fmt"
	"strings"
)

// Axis names recognised by ParameterSet.Apply
const (
	AxisContrastThreshold = "contrast_threshold"
	AxisEdgeThreshold     = "edge_threshold"
	AxisOctaveLayers      = "octave_layers"
	AxisSigma             = "sigma"
)

// Axis is one tunable parameter dimension: a name and a finite ordered
// list of candidate values
type Axis struct {
	Name   string
	Values []float64
}

// Grid enumerates the cross-product of its axes in a fixed order: the
// first axis is outermost and the last axis varies fastest, matching
// nested-loop semantics.  Selection tie-breaks depend on this order, so
// it is a first-class, tested property.
type Grid struct {
	axes []Axis
}

// NewGrid builds a grid from one or more axes.  A grid with no axes or
// with any empty axis fails with ErrEmptyGrid.
func NewGrid(axes ...Axis) (*Grid, error) {

	if len(axes) == 0 {
		return nil, fmt.Errorf("%w: no axes", ErrEmptyGrid)
	}

	for _, ax := range axes {
		if len(ax.Values) == 0 {
			return nil, fmt.Errorf("%w: axis %q has no values", ErrEmptyGrid, ax.Name)
		}
	}

	g := &Grid{axes: make([]Axis, len(axes))}
	copy(g.axes, axes)

	return g, nil
}

// Size returns the total number of grid points
func (g *Grid) Size() int {

	total := 1

	for _, ax := range g.axes {
		total *= len(ax.Values)
	}

	return total
}

// Iter returns a fresh iterator positioned at the first grid point
func (g *Grid) Iter() *GridIter {
	return &GridIter{grid: g, cursor: make([]int, len(g.axes))}
}

// GridIter walks the grid lazily in enumeration order.  It is finite and
// restartable; Reset rewinds to the first point.
type GridIter struct {
	grid   *Grid
	cursor []int
	done   bool
}

// Next returns the next ParameterSet in enumeration order, and false once
// the grid is exhausted
func (it *GridIter) Next() (ParameterSet, bool) {

	if it.done {
		return ParameterSet{}, false
	}

	axes := it.grid.axes
	ps := ParameterSet{
		names:  make([]string, len(axes)),
		values: make([]float64, len(axes)),
	}

	for i, ax := range axes {
		ps.names[i] = ax.Name
		ps.values[i] = ax.Values[it.cursor[i]]
	}

	// advance odometer style, last axis fastest
	for i := len(axes) - 1; i >= 0; i-- {
		it.cursor[i]++

		if it.cursor[i] < len(axes[i].Values) {
			return ps, true
		}

		it.cursor[i] = 0
	}

	it.done = true
	return ps, true
}

// Reset rewinds the iterator to the first grid point
func (it *GridIter) Reset() {

	for i := range it.cursor {
		it.cursor[i] = 0
	}

	it.done = false
}

// ParameterSet is one point in the tuning grid: an ordered tuple of named
// numeric values.  It is immutable once produced by a GridIter.
type ParameterSet struct {
	names  []string
	values []float64
}

// Len returns the number of named values
func (ps ParameterSet) Len() int {
	return len(ps.names)
}

// Get returns the value for the named axis
func (ps ParameterSet) Get(name string) (float64, bool) {

	for i, n := range ps.names {
		if n == name {
			return ps.values[i], true
		}
	}

	return 0, false
}

// String formats the set as "name=value" pairs in axis order
func (ps ParameterSet) String() string {

	parts := make([]string, len(ps.names))

	for i, n := range ps.names {
		parts[i] = fmt.Sprintf("%s=%g", n, ps.values[i])
	}

	return strings.Join(parts, " ")
}

// Apply overlays the set's values onto base and returns the resolved
// detector tuning.  Unknown axis names fail with ErrInvalidParameters
// rather than being ignored.
func (ps ParameterSet) Apply(base Params) (Params, error) {

	out := base

	for i, name := range ps.names {
		v := ps.values[i]

		switch name {
		case AxisContrastThreshold:
			out.ContrastThreshold = v
		case AxisEdgeThreshold:
			out.EdgeThreshold = v
		case AxisOctaveLayers:
			out.OctaveLayers = int(v)
		case AxisSigma:
			out.Sigma = v
		default:
			return Params{}, fmt.Errorf("%w: unknown axis %q",
				ErrInvalidParameters, name)
		}
	}

	return out, nil
}
