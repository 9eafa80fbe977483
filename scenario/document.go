package scenario

// Tile codes as emitted by the referee.
const (
	TileEmpty     = 0
	TileLowCover  = 1
	TileHighCover = 2
)

// Stock loadout of a freshly spawned agent. The captured logs only carry
// position and bomb count, the rest is fixed by the game rules.
const (
	DefaultShootCooldown = 1
	DefaultOptimalRange  = 4
	DefaultSoakingPower  = 16
	DefaultSplashBombs   = 2
)

// Agent keeps all six fields of the turn-1 agent line even though only
// ID/Player/X/Y end up in the scenario file.
type Agent struct {
	ID     int
	Player int
	X, Y   int

	Cooldown    int
	SplashBombs int
	Wetness     int
}

// PlayerFor derives the owning player from the spawn column: the left half
// of the map belongs to player 0, the middle column already to player 1.
func PlayerFor(x, width int) int {
	if x < width/2 {
		return 0
	}
	return 1
}

// Grid is a row-major map of tile codes, zero value is TileEmpty.
type Grid [][]int

func NewGrid(width, height int) Grid {
	g := make(Grid, height)
	for y := range g {
		g[y] = make([]int, width)
	}
	return g
}

// Set stores a tile code, reporting whether the cell is inside the grid.
// Out-of-range coordinates are dropped, not an error.
func (g Grid) Set(x, y, tile int) bool {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return false
	}
	g[y][x] = tile
	return true
}

func (g Grid) At(x, y int) int {
	if y < 0 || y >= len(g) || x < 0 || x >= len(g[y]) {
		return TileEmpty
	}
	return g[y][x]
}

// Document is the scenario extracted from one captured log: constructed
// once by the parser, then only read.
type Document struct {
	Width  int
	Height int
	Grid   Grid
	Agents []Agent
}

// PlayerCounts returns how many agents spawn for each player.
func (d *Document) PlayerCounts() (player0, player1 int) {
	for _, a := range d.Agents {
		if a.Player == 0 {
			player0++
		} else {
			player1++
		}
	}
	return player0, player1
}
