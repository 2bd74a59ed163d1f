package game

// Action is one of the four directional moves the agent (and the adversary)
// can attempt on a tick.
type Action int

const (
	Up Action = iota
	Right
	Down
	Left
)

const NumActions = 4

// Directions enumerates the actions in the fixed order used for tie-breaking
// by the planner and the chasing adversary.
var Directions = [NumActions]Action{Up, Right, Down, Left}

var deltas = [NumActions]Cell{
	Up:    {X: 0, Y: -1},
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
}

func (a Action) String() string {
	switch a {
	case Up:
		return "UP"
	case Right:
		return "RIGHT"
	case Down:
		return "DOWN"
	case Left:
		return "LEFT"
	default:
		return "UNKNOWN"
	}
}

// Cell is a grid coordinate. Y grows downward, so Up decrements Y.
type Cell struct {
	X, Y int
}

// Step returns the cell one move away in the action's direction.
func (c Cell) Step(a Action) Cell {
	d := deltas[a]
	return Cell{X: c.X + d.X, Y: c.Y + d.Y}
}

// Manhattan returns the L1 distance between two cells.
func Manhattan(a, b Cell) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
