package game

// EntangledMove computes where one input step sends the linked pair: the
// first agent moves by (dx, dy), the second by the mirror (-dx, -dy), and
// each coordinate clamps to the board edge independently. Openness is not
// checked here; the session commits each agent on its own.
func EntangledMove(a, b Point, dx, dy, size int) (Point, Point) {
	na := Point{clampCoord(a.X+dx, size), clampCoord(a.Y+dy, size)}
	nb := Point{clampCoord(b.X-dx, size), clampCoord(b.Y-dy, size)}
	return na, nb
}

// clampCoord keeps a coordinate on a board of the given side length.
func clampCoord(v, size int) int {
	if v < 0 {
		return 0
	}
	if v >= size {
		return size - 1
	}
	return v
}
