package board

type Point struct {
	Row, Col int
}

// Neighbors returns the up to eight positions adjacent to (row, col),
// clipped to the grid, in row-major order. The position itself is excluded.
func (c Config) Neighbors(row, col int) []Point {
	points := make([]Point, 0, 8)
	for r := max(row-1, 0); r <= min(row+1, c.Height-1); r++ {
		for cc := max(col-1, 0); cc <= min(col+1, c.Width-1); cc++ {
			if r == row && cc == col {
				continue
			}
			points = append(points, Point{r, cc})
		}
	}
	return points
}

// adjacent reports whether a and b are the same tile or neighbors.
func adjacent(a, b Point) bool {
	return absDiff(a.Row, b.Row) <= 1 && absDiff(a.Col, b.Col) <= 1
}

func absDiff(a, b int) int {
	if a < b {
		return b - a
	}
	return a - b
}
