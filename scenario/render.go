package scenario

import "strings"

// Render draws the map as plain text, one rune per tile, with agents
// overlaid on top of the terrain: 'a' for player 0, 'b' for player 1,
// uppercase when two agents share a cell.
func Render(doc *Document) string {
	rows := make([][]rune, doc.Height)
	for y := range rows {
		rows[y] = make([]rune, doc.Width)
		for x := range rows[y] {
			rows[y][x] = tileRune(doc.Grid.At(x, y))
		}
	}

	for _, a := range doc.Agents {
		if a.Y < 0 || a.Y >= doc.Height || a.X < 0 || a.X >= doc.Width {
			continue
		}
		mark := 'a'
		if a.Player == 1 {
			mark = 'b'
		}
		if cur := rows[a.Y][a.X]; cur == 'a' || cur == 'b' {
			mark = cur - 'a' + 'A'
		}
		rows[a.Y][a.X] = mark
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func tileRune(tile int) rune {
	switch tile {
	case TileLowCover:
		return 'o'
	case TileHighCover:
		return '#'
	default:
		return '.'
	}
}
