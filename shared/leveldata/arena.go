package leveldata

// standY returns the origin Y of a player standing on top of tile row.
func standY(row int) float32 {
	return float32(row*TileHeight - 24)
}

// DefaultArena returns the built-in 60x34 arena used when no TMX map is
// supplied: a walled box with a floor, two high ledges, a central bridge and
// a pair of floor jump pads.
func DefaultArena() *Map {
	const width, height = 60, 34
	const floor = height - 2
	m := NewMap("arena", width, height)

	// Floor, ceiling and walls
	m.FillRow(floor, 0, width-1)
	m.FillRow(0, 0, width-1)
	m.FillColumn(0, 1, floor)
	m.FillColumn(width-1, 1, floor)

	// High ledges with hanging walls
	m.FillRow(10, 0, 9)
	m.FillColumn(9, 11, 15)
	m.FillRow(10, width-10, width-1)
	m.FillColumn(width-10, 11, 15)

	// Central bridge and mid platforms
	m.FillRow(12, 20, 39)
	m.FillRow(18, 11, 19)
	m.FillRow(18, 40, 48)
	m.FillRow(24, 25, 34)
	m.FillRow(28, 0, 7)
	m.FillRow(28, width-8, width-1)

	m.AddJumpPad(JumpPad{X: 12 * TileWidth, Y: standY(floor), Width: 2 * TileWidth, ForceY: -7})
	m.AddJumpPad(JumpPad{X: 46 * TileWidth, Y: standY(floor), Width: 2 * TileWidth, ForceY: -7})

	m.SpawnPoints = []SpawnPoint{
		{X: 160, Y: standY(10), Index: 0},
		{X: 480, Y: standY(18), Index: 1},
		{X: 640, Y: standY(floor), Index: 2},
		{X: 960, Y: standY(12), Index: 3},
		{X: 1440, Y: standY(18), Index: 4},
		{X: 1760, Y: standY(10), Index: 5},
	}
	return m
}
