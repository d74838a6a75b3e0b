package game

import (
	"sort"

	"expendibots/utils"
)

// ThreatMap counts, for every cell, the units of c's opponent standing on
// its 8-neighbours.
func (b Board) ThreatMap(c Color) [NumCells]int {
	var threats [NumCells]int
	enemy := c.Opponent()
	for _, s := range b.Stacks(enemy) {
		for _, n := range s.Pos.Neighbours() {
			threats[n.Index()] += s.Height
		}
	}
	return threats
}

type rankedMove struct {
	action   Action
	priority int
}

// Actions lists the actions worth searching for c. Booms come first, and only
// stacks touching an enemy stack are offered a boom. Moves follow, ordered by
// descending max(threat, reward), where threat is how much safer the moved
// units become and reward is the pressure they put on enemy units at the
// destination minus the units committed there.
func (b Board) Actions(c Color) []Action {
	threats := b.ThreatMap(c)
	var booms []Action
	var moves []rankedMove

	for _, s := range b.Stacks(c) {
		if threats[s.Pos.Index()] > 0 {
			booms = append(booms, Boom(s.Pos))
		}
		for _, to := range s.Pos.Reach(s.Height) {
			if b.ColorAt(to) == c.Opponent() {
				continue
			}
			from, dest := threats[s.Pos.Index()], threats[to.Index()]
			for n := 1; n <= s.Height; n++ {
				threat := utils.Clamp(from-dest, 0, from)
				reward := max(dest-n, 0)
				moves = append(moves, rankedMove{
					action:   Move(n, s.Pos, to),
					priority: max(threat, reward),
				})
			}
		}
	}

	sort.SliceStable(moves, func(i, j int) bool {
		return moves[i].priority > moves[j].priority
	})

	actions := make([]Action, 0, len(booms)+len(moves))
	actions = append(actions, booms...)
	for _, m := range moves {
		actions = append(actions, m.action)
	}
	return actions
}
