// Package leveldata provides the tile map shared between client prediction and
// the server. It has no dependencies on ebitengine or donburi: a Map is pure
// data plus the occupancy query the movement step runs against.
package leveldata

// Tile dimensions in pixels. The movement step's probes assume this grid.
const (
	TileWidth  = 32
	TileHeight = 16
)

// JumpPadReach is how far above and below a pad's Y line the trigger extends.
const JumpPadReach = 20

// Map is a fixed-size grid of solid/empty tiles plus trigger geometry.
// Out-of-bounds tiles are solid so nothing can leave the arena.
type Map struct {
	Name        string
	Width       int // tiles
	Height      int // tiles
	SpawnPoints []SpawnPoint

	solid    []bool // row-major, y*Width+x
	jumpPads []JumpPad
}

// JumpPad is an axis-aligned trigger volume with an impulse.
type JumpPad struct {
	X, Y, Width    float32
	ForceX, ForceY float32
}

// Contains reports whether a player origin at (px, py) is inside the trigger.
func (jp JumpPad) Contains(px, py float32) bool {
	return px >= jp.X && px <= jp.X+jp.Width &&
		py >= jp.Y-JumpPadReach && py <= jp.Y+JumpPadReach
}

// SolidRect represents a solid collision tile in pixel space.
type SolidRect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float32
	Index int
}

// Body describes the player's extent around its origin, used when checking
// spawn points against the solid geometry.
type Body struct {
	HalfWidth float64
	Above     float64 // origin to top of head
	Below     float64 // origin to lowest body row
}

// NewMap returns an empty (all non-solid) map of the given tile dimensions.
// Negative dimensions are treated as zero.
func NewMap(name string, width, height int) *Map {
	width, height = max(width, 0), max(height, 0)
	return &Map{
		Name:   name,
		Width:  width,
		Height: height,
		solid:  make([]bool, width*height),
	}
}

// IsSolid reports whether the tile at (tileX, tileY) blocks movement.
func (m *Map) IsSolid(tileX, tileY int) bool {
	if tileX < 0 || tileY < 0 || tileX >= m.Width || tileY >= m.Height {
		return true
	}
	return m.solid[tileY*m.Width+tileX]
}

// SetSolid marks a single tile. Out-of-bounds coordinates are ignored.
func (m *Map) SetSolid(tileX, tileY int, solid bool) {
	if tileX < 0 || tileY < 0 || tileX >= m.Width || tileY >= m.Height {
		return
	}
	m.solid[tileY*m.Width+tileX] = solid
}

// FillRow marks tiles x0..x1 (inclusive) on row y as solid.
func (m *Map) FillRow(y, x0, x1 int) {
	for x := x0; x <= x1; x++ {
		m.SetSolid(x, y, true)
	}
}

// FillColumn marks tiles y0..y1 (inclusive) on column x as solid.
func (m *Map) FillColumn(x, y0, y1 int) {
	for y := y0; y <= y1; y++ {
		m.SetSolid(x, y, true)
	}
}

// AddJumpPad registers a trigger volume.
func (m *Map) AddJumpPad(jp JumpPad) {
	m.jumpPads = append(m.jumpPads, jp)
}

// JumpPads returns the map's jump pads. The slice is shared; callers must not
// modify it.
func (m *Map) JumpPads() []JumpPad {
	return m.jumpPads
}

// PixelWidth returns the map width in pixels.
func (m *Map) PixelWidth() int { return m.Width * TileWidth }

// PixelHeight returns the map height in pixels.
func (m *Map) PixelHeight() int { return m.Height * TileHeight }

// SolidRects returns one rectangle per solid tile, row by row.
func (m *Map) SolidRects() []SolidRect {
	var rects []SolidRect
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.solid[y*m.Width+x] {
				continue
			}
			rects = append(rects, SolidRect{
				X: float64(x * TileWidth),
				Y: float64(y * TileHeight),
				W: TileWidth,
				H: TileHeight,
			})
		}
	}
	return rects
}
