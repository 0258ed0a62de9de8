package domain

import "fmt"

// Range is a contiguous, inclusive span of integer indices.
type Range struct {
	Start int
	End   int
}

// Len returns the number of indices in the range.
func (r Range) Len() int {
	if r.End < r.Start {
		return 0
	}
	return r.End - r.Start + 1
}

// ScaleFunc maps an inner index to the scale passed to the solver.
type ScaleFunc func(j int) int

// Pow2 returns 2^j.
func Pow2(j int) int {
	return 1 << j
}

// Cell is one point of the grid.
type Cell struct {
	I int `json:"i"`
	J int `json:"j"`
}

// Grid describes the parameter space of a sweep.
// It is a value type; Driver never mutates it.
type Grid struct {
	Outer Range
	Inner Range
	Scale ScaleFunc
	Seed  int
}

// DefaultGrid returns the fixed benchmark grid: counts 0..12 by scales 2^0..2^14, seed 42.
func DefaultGrid() Grid {
	return Grid{
		Outer: Range{Start: 0, End: OuterMax},
		Inner: Range{Start: 0, End: InnerMax},
		Scale: Pow2,
		Seed:  DefaultSeed,
	}
}

// Size returns the number of trials in the grid.
func (g Grid) Size() int {
	return g.Outer.Len() * g.Inner.Len()
}

// Validate reports whether the grid can be enumerated.
func (g Grid) Validate() error {
	if g.Outer.Len() == 0 {
		return fmt.Errorf("%w: empty outer range [%d,%d]", ErrInvalidGrid, g.Outer.Start, g.Outer.End)
	}
	if g.Inner.Len() == 0 {
		return fmt.Errorf("%w: empty inner range [%d,%d]", ErrInvalidGrid, g.Inner.Start, g.Inner.End)
	}
	if g.Outer.Start < 0 || g.Inner.Start < 0 {
		return fmt.Errorf("%w: negative index", ErrInvalidGrid)
	}
	if g.Scale == nil {
		return fmt.Errorf("%w: no scale function", ErrInvalidGrid)
	}
	return nil
}

// Params derives the trial parameters for a cell.
func (g Grid) Params(c Cell) Params {
	return Params{
		Scale: g.Scale(c.J),
		Count: c.I,
		Seed:  g.Seed,
	}
}

// Trials enumerates the grid in lexicographic (i, j) order, j varying fastest.
func (g Grid) Trials() []Trial {
	trials := make([]Trial, 0, g.Size())
	ordinal := 0
	for i := g.Outer.Start; i <= g.Outer.End; i++ {
		for j := g.Inner.Start; j <= g.Inner.End; j++ {
			ordinal++
			cell := Cell{I: i, J: j}
			trials = append(trials, Trial{
				Ordinal: ordinal,
				Cell:    cell,
				Params:  g.Params(cell),
			})
		}
	}
	return trials
}
