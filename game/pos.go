package game

import (
	"fmt"
	"math/bits"

	"expendibots/utils"
)

// Size is the side length of the board.
const Size = 8

// NumCells is the number of cells on the board.
const NumCells = Size * Size

// Pos is a cell coordinate. Positions compare by value and can be used as map keys.
type Pos struct {
	X int
	Y int
}

// PosAt returns the position of the row-major cell index i.
func PosAt(i int) Pos {
	return Pos{X: i % Size, Y: i / Size}
}

func (p Pos) OnBoard() bool {
	return p.X >= 0 && p.X < Size && p.Y >= 0 && p.Y < Size
}

// Index returns the row-major cell index of p.
func (p Pos) Index() int {
	return p.Y*Size + p.X
}

// Distance returns the Manhattan distance between two positions.
func (p Pos) Distance(other Pos) int {
	return utils.Abs(p.X-other.X) + utils.Abs(p.Y-other.Y)
}

// Neighbours returns the on-board cells at Chebyshev distance 1.
func (p Pos) Neighbours() []Pos {
	return neighbours[p.Index()]
}

// Orthogonal returns the on-board cells sharing an edge with p.
func (p Pos) Orthogonal() []Pos {
	return orthogonal[p.Index()]
}

// Reach returns the on-board cells on the same row or column as p within the
// given distance, excluding p itself.
func (p Pos) Reach(distance int) []Pos {
	var out []Pos
	for d := -distance; d <= distance; d++ {
		if d == 0 {
			continue
		}
		if x := p.X + d; x >= 0 && x < Size {
			out = append(out, Pos{X: x, Y: p.Y})
		}
	}
	for d := -distance; d <= distance; d++ {
		if d == 0 {
			continue
		}
		if y := p.Y + d; y >= 0 && y < Size {
			out = append(out, Pos{X: p.X, Y: y})
		}
	}
	return out
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.X, p.Y)
}

var neighbours, orthogonal [NumCells][]Pos

func init() {
	for i := 0; i < NumCells; i++ {
		p := PosAt(i)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				n := Pos{X: p.X + dx, Y: p.Y + dy}
				if n == p || !n.OnBoard() {
					continue
				}
				neighbours[i] = append(neighbours[i], n)
				if dx == 0 || dy == 0 {
					orthogonal[i] = append(orthogonal[i], n)
				}
			}
		}
	}
}

// Cells is a set of positions stored as a 64-bit mask.
type Cells uint64

func NewCells(positions ...Pos) Cells {
	var c Cells
	for _, p := range positions {
		c = c.With(p)
	}
	return c
}

func (c Cells) Has(p Pos) bool {
	return c&(1<<uint(p.Index())) != 0
}

func (c Cells) With(p Pos) Cells {
	return c | 1<<uint(p.Index())
}

func (c Cells) Len() int {
	return bits.OnesCount64(uint64(c))
}

// Positions lists the members in row-major order.
func (c Cells) Positions() []Pos {
	out := make([]Pos, 0, c.Len())
	for rest := uint64(c); rest != 0; rest &= rest - 1 {
		out = append(out, PosAt(bits.TrailingZeros64(rest)))
	}
	return out
}
