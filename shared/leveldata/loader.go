package leveldata

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// Layer and object group names read from TMX files.
const (
	SolidLayer     = "solid"
	JumpPadGroup   = "JumpPads"
	PlayerSpawnGrp = "PlayerSpawn"
)

// ErrTileSize is returned for maps whose grid does not match TileWidth x TileHeight.
var ErrTileSize = errors.New("unsupported tile size")

// ErrMapSize is returned for maps with a non-positive width or height, or a
// collision layer that does not cover the grid.
var ErrMapSize = errors.New("invalid map size")

// LoadMap parses a TMX file into a Map. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func LoadMap(fsys fs.FS, tmxPath string) (*Map, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}
	if levelMap.TileWidth != TileWidth || levelMap.TileHeight != TileHeight {
		return nil, fmt.Errorf("%s: %dx%d tiles, want %dx%d: %w", tmxPath,
			levelMap.TileWidth, levelMap.TileHeight, TileWidth, TileHeight, ErrTileSize)
	}

	if levelMap.Width <= 0 || levelMap.Height <= 0 {
		return nil, fmt.Errorf("%s: %dx%d tiles: %w", tmxPath, levelMap.Width, levelMap.Height, ErrMapSize)
	}

	name := strings.TrimSuffix(path.Base(tmxPath), ".tmx")
	m := NewMap(name, levelMap.Width, levelMap.Height)

	// Solid tiles. A tileset tile can opt out with passable=true (decoration
	// painted on the collision layer).
	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		if len(layer.Tiles) < levelMap.Width*levelMap.Height {
			return nil, fmt.Errorf("%s: layer %q has %d tiles for a %dx%d map: %w", tmxPath,
				layer.Name, len(layer.Tiles), levelMap.Width, levelMap.Height, ErrMapSize)
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				tile := layer.Tiles[y*levelMap.Width+x]
				if tile.IsNil() {
					continue
				}
				if tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID); err == nil {
					if tilesetTile.Properties.GetBool("passable") {
						continue
					}
				}
				m.SetSolid(x, y, true)
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case JumpPadGroup:
			for _, o := range og.Objects {
				m.AddJumpPad(JumpPad{
					X:      float32(o.X),
					Y:      float32(o.Y),
					Width:  float32(o.Width),
					ForceX: float32(o.Properties.GetFloat("forceX")),
					ForceY: float32(o.Properties.GetFloat("forceY")),
				})
			}
		case PlayerSpawnGrp:
			for _, o := range og.Objects {
				m.SpawnPoints = append(m.SpawnPoints, SpawnPoint{
					X:     float32(o.X),
					Y:     float32(o.Y),
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(m.SpawnPoints, func(i, j int) bool {
		return m.SpawnPoints[i].X < m.SpawnPoints[j].X
	})

	log.Printf("[leveldata] loaded %s: %dx%d tiles, %d jump pads, %d spawn points",
		name, m.Width, m.Height, len(m.jumpPads), len(m.SpawnPoints))

	return m, nil
}

// LoadAllMaps discovers all .tmx files in dir within fsys and returns them
// keyed by stem name plus a sorted list of names.
func LoadAllMaps(fsys fs.FS, dir string) (map[string]*Map, []string, error) {
	pattern := path.Join(dir, "*.tmx")
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", dir)
	}

	maps := make(map[string]*Map, len(matches))
	names := make([]string, 0, len(matches))

	for _, p := range matches {
		m, err := LoadMap(fsys, p)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", p, err)
		}
		maps[m.Name] = m
		names = append(names, m.Name)
	}

	sort.Strings(names)
	return maps, names, nil
}
