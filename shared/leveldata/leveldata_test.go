package leveldata

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testBody = Body{HalfWidth: 28, Above: 96, Below: 16}

const testTMX = `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="4" height="3" tilewidth="32" tileheight="16" infinite="0">
 <tileset firstgid="1" name="tiles" tilewidth="32" tileheight="16" tilecount="2" columns="2">
  <image source="tiles.png" width="64" height="16"/>
  <tile id="1">
   <properties>
    <property name="passable" type="bool" value="true"/>
   </properties>
  </tile>
 </tileset>
 <layer id="1" name="solid" width="4" height="3">
  <data encoding="csv">
0,0,0,0,
0,2,0,0,
1,1,1,1
</data>
 </layer>
 <objectgroup id="2" name="JumpPads">
  <object id="1" x="64" y="24" width="32" height="8">
   <properties>
    <property name="forceX" type="float" value="1.5"/>
    <property name="forceY" type="float" value="-7"/>
   </properties>
  </object>
 </objectgroup>
 <objectgroup id="3" name="PlayerSpawn">
  <object id="2" x="96" y="8">
   <properties>
    <property name="spawnIndex" type="int" value="1"/>
   </properties>
  </object>
  <object id="3" x="16" y="8">
   <properties>
    <property name="spawnIndex" type="int" value="0"/>
   </properties>
  </object>
 </objectgroup>
</map>
`

func TestIsSolidOutOfBounds(t *testing.T) {
	m := NewMap("empty", 3, 2)

	assert.False(t, m.IsSolid(0, 0))
	assert.False(t, m.IsSolid(2, 1))
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 2}, {100, 100}} {
		assert.True(t, m.IsSolid(p[0], p[1]), "tile %v", p)
	}

	m.SetSolid(5, 5, true) // ignored
	m.SetSolid(1, 1, true)
	assert.True(t, m.IsSolid(1, 1))
	m.SetSolid(1, 1, false)
	assert.False(t, m.IsSolid(1, 1))
}

func TestFillAndSolidRects(t *testing.T) {
	m := NewMap("fill", 4, 4)
	m.FillRow(3, 0, 3)
	m.FillColumn(0, 0, 2)

	rects := m.SolidRects()
	assert.Len(t, rects, 7)
	assert.Equal(t, SolidRect{X: 0, Y: 0, W: TileWidth, H: TileHeight}, rects[0])
	assert.Equal(t, SolidRect{X: 96, Y: 48, W: TileWidth, H: TileHeight}, rects[len(rects)-1])
	assert.Equal(t, 128, m.PixelWidth())
	assert.Equal(t, 64, m.PixelHeight())
}

func TestJumpPadContains(t *testing.T) {
	jp := JumpPad{X: 100, Y: 200, Width: 64}

	tests := []struct {
		x, y float32
		want bool
	}{
		{100, 200, true},
		{164, 200, true},
		{132, 180, true},
		{132, 220, true},
		{99, 200, false},
		{165, 200, false},
		{132, 179, false},
		{132, 221, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, jp.Contains(tt.x, tt.y), "(%v,%v)", tt.x, tt.y)
	}
}

func TestLoadMap(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/box.tmx": {Data: []byte(testTMX)},
	}

	m, err := LoadMap(fsys, "maps/box.tmx")
	require.NoError(t, err)

	assert.Equal(t, "box", m.Name)
	assert.Equal(t, 4, m.Width)
	assert.Equal(t, 3, m.Height)

	for x := 0; x < 4; x++ {
		assert.True(t, m.IsSolid(x, 2), "floor tile %d", x)
		assert.False(t, m.IsSolid(x, 0))
	}
	assert.False(t, m.IsSolid(1, 1), "passable tile must not collide")

	require.Len(t, m.JumpPads(), 1)
	assert.Equal(t, JumpPad{X: 64, Y: 24, Width: 32, ForceX: 1.5, ForceY: -7}, m.JumpPads()[0])

	require.Len(t, m.SpawnPoints, 2)
	assert.Equal(t, SpawnPoint{X: 16, Y: 8, Index: 0}, m.SpawnPoints[0])
	assert.Equal(t, SpawnPoint{X: 96, Y: 8, Index: 1}, m.SpawnPoints[1])
}

func TestLoadMapRejectsTileSize(t *testing.T) {
	fsys := fstest.MapFS{
		"big.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="1" height="1" tilewidth="16" tileheight="16" infinite="0">
 <layer id="1" name="solid" width="1" height="1">
  <data encoding="csv">
0
</data>
 </layer>
</map>
`)},
	}

	_, err := LoadMap(fsys, "big.tmx")
	assert.ErrorIs(t, err, ErrTileSize)
}

func TestNewMapNegativeSize(t *testing.T) {
	var m *Map
	require.NotPanics(t, func() { m = NewMap("bad", -3, -1) })
	assert.Zero(t, m.Width)
	assert.Zero(t, m.Height)
	assert.True(t, m.IsSolid(0, 0))
}

func TestLoadMapRejectsBadSize(t *testing.T) {
	tests := []struct {
		name, width, height string
	}{
		{"zero", "0", "1"},
		{"negative", "-2", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"bad.tmx": {Data: []byte(`<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="` + tt.width + `" height="` + tt.height + `" tilewidth="32" tileheight="16" infinite="0">
</map>
`)},
			}

			var err error
			require.NotPanics(t, func() { _, err = LoadMap(fsys, "bad.tmx") })
			assert.Error(t, err)
		})
	}
}

func TestLoadAllMaps(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/b.tmx": {Data: []byte(testTMX)},
		"levels/a.tmx": {Data: []byte(testTMX)},
	}

	maps, names, err := LoadAllMaps(fsys, "levels")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
	assert.Contains(t, maps, "a")
	assert.Contains(t, maps, "b")

	_, _, err = LoadAllMaps(fstest.MapFS{}, "levels")
	assert.Error(t, err)
}

func TestDefaultArenaIsValid(t *testing.T) {
	m := DefaultArena()
	require.NoError(t, m.Validate(testBody))
	assert.NotEmpty(t, m.SpawnPoints)
	assert.NotEmpty(t, m.JumpPads())
}

func TestValidateReportsAllProblems(t *testing.T) {
	m := NewMap("broken", 20, 20)
	m.FillRow(19, 0, 19)
	m.FillColumn(10, 0, 18)
	m.SpawnPoints = []SpawnPoint{
		{X: 160, Y: 280},              // clear
		{X: 10*TileWidth + 8, Y: 200}, // inside the wall
	}
	m.AddJumpPad(JumpPad{X: 600, Y: 280, Width: 64})
	m.AddJumpPad(JumpPad{X: 64, Y: 280})

	err := m.Validate(testBody)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSpawnInSolid)
	assert.ErrorIs(t, err, ErrJumpPadOutOfBounds)
	assert.ErrorIs(t, err, ErrJumpPadEmpty)
	assert.Contains(t, err.Error(), "spawn 1")
	assert.NotContains(t, err.Error(), "spawn 0")
}
