package game

import (
	"fmt"
	"math"

	"expendibots/utils"
)

// DecisiveMaterial is the material term reported once one side has no units left.
const DecisiveMaterial = 999

// Score is an evaluation tuple compared lexicographically: a later component
// only matters when every earlier one is equal.
type Score [4]float64

var (
	WinScore  = Score{math.Inf(1)}
	LossScore = Score{math.Inf(-1)}
)

// Compare returns -1, 0 or 1 as s is below, equal to or above other.
func (s Score) Compare(other Score) int {
	for i := range s {
		switch {
		case s[i] < other[i]:
			return -1
		case s[i] > other[i]:
			return 1
		}
	}
	return 0
}

func (s Score) Less(other Score) bool {
	return s.Compare(other) < 0
}

// Variant selects how the explosive-exchange term enters the score.
type Variant int

const (
	// ExchangeDominant folds the best trade and worst exposure into the
	// material term.
	ExchangeDominant Variant = iota
	// ExchangeTieBreak keeps raw material first and uses the net exchange
	// only to break ties.
	ExchangeTieBreak
	// MaterialOnly scores material and nothing else.
	MaterialOnly
)

var variantNames = []string{"exchange", "tiebreak", "material"}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

func ParseVariant(s string) (Variant, error) {
	i := utils.FindIndex(variantNames, s)
	if i < 0 {
		return 0, fmt.Errorf("unknown evaluator variant %q (want one of %v)", s, variantNames)
	}
	return Variant(i), nil
}

// Evaluator scores boards from one color's perspective. Neighbourhood is the
// adjacency (4 or 8) used to group stacks into blast components; zero means 8.
type Evaluator struct {
	Variant       Variant
	Neighbourhood int
}

func DefaultEvaluator() Evaluator {
	return Evaluator{Variant: ExchangeDominant, Neighbourhood: 8}
}

// Component tallies the units of each color in one connected group of stacks.
type Component struct {
	White int
	Black int
}

func (c Component) Units(color Color) int {
	if color == White {
		return c.White
	}
	return c.Black
}

// Components partitions the occupied cells into groups connected under the
// given neighbourhood (4 or 8).
func (b Board) Components(neighbourhood int) []Component {
	adjacent := Pos.Neighbours
	if neighbourhood == 4 {
		adjacent = Pos.Orthogonal
	}

	var out []Component
	var seen Cells
	for i, v := range b {
		start := PosAt(i)
		if v == 0 || seen.Has(start) {
			continue
		}
		var comp Component
		seen = seen.With(start)
		frontier := []Pos{start}
		for len(frontier) > 0 {
			p := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			if b.ColorAt(p) == White {
				comp.White += b.Height(p)
			} else {
				comp.Black += b.Height(p)
			}
			for _, n := range adjacent(p) {
				if b[n.Index()] != 0 && !seen.Has(n) {
					seen = seen.With(n)
					frontier = append(frontier, n)
				}
			}
		}
		out = append(out, comp)
	}
	return out
}

// Evaluate returns (material, exchange, mobility, cohesion) for c.
func (e Evaluator) Evaluate(b Board, c Color) Score {
	own, opp := b.Count(c), b.Count(c.Opponent())
	material := float64(own - opp)
	switch {
	case opp == 0 && own > 0:
		material = DecisiveMaterial
	case own == 0 && opp > 0:
		material = -DecisiveMaterial
	}
	if e.Variant == MaterialOnly {
		return Score{material}
	}

	neighbourhood := e.Neighbourhood
	if neighbourhood == 0 {
		neighbourhood = 8
	}
	var bestReward, worstPenalty, exchange float64
	for _, comp := range b.Components(neighbourhood) {
		mine, theirs := comp.Units(c), comp.Units(c.Opponent())
		if mine == 0 || theirs == 0 {
			continue
		}
		trade := float64(own)/float64(opp)*float64(theirs) - float64(mine)
		exchange += trade
		if trade > 0 {
			bestReward = max(bestReward, trade)
		} else {
			worstPenalty = max(worstPenalty, -trade)
		}
	}
	if e.Variant == ExchangeDominant && opp > 0 && own > 0 {
		material += bestReward - worstPenalty
	}

	return Score{material, exchange, float64(b.Mobility(c)), -b.Separation()}
}

// Mobility counts the distinct empty cells that some stack of c can move to.
func (b Board) Mobility(c Color) int {
	var area Cells
	for _, s := range b.Stacks(c) {
		for _, p := range s.Pos.Reach(s.Height) {
			if b[p.Index()] == 0 {
				area = area.With(p)
			}
		}
	}
	return area.Len()
}

// Separation is the Manhattan distance between the two colors' centroids.
func (b Board) Separation() float64 {
	wx, wy := b.Centroid(White)
	bx, by := b.Centroid(Black)
	return utils.Abs(wx-bx) + utils.Abs(wy-by)
}

// Centroid is the unit-weighted mean position of c's stacks, or the board
// centre when c has none.
func (b Board) Centroid(c Color) (x, y float64) {
	units := 0
	for _, s := range b.Stacks(c) {
		x += float64(s.Pos.X * s.Height)
		y += float64(s.Pos.Y * s.Height)
		units += s.Height
	}
	if units == 0 {
		centre := float64(Size-1) / 2
		return centre, centre
	}
	return x / float64(units), y / float64(units)
}
