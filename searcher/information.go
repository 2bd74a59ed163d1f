package searcher

import "gridworld/game"

// UnseenAround counts in-bounds cells within the square radius of c that the
// agent has never observed. The exploration fallback uses it to rank
// candidate moves by how much new ground they put in sensor range.
func UnseenAround(gs *game.GridState, c game.Cell, radius int) int {
	count := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			n := game.Cell{X: c.X + dx, Y: c.Y + dy}
			if gs.InBounds(n) && !gs.Observed(n) {
				count++
			}
		}
	}
	return count
}
