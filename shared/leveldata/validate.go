package leveldata

import (
	"errors"
	"fmt"

	"github.com/solarlune/resolv"
)

const (
	tagSolid = "solid"
	tagProbe = "probe"
)

var (
	ErrSpawnInSolid       = errors.New("spawn point overlaps solid tiles")
	ErrJumpPadOutOfBounds = errors.New("jump pad outside map bounds")
	ErrJumpPadEmpty       = errors.New("jump pad has no width")
)

// Validate checks spawn points and jump pads against the solid geometry. A
// spawn is rejected when a body of the given extent placed at it would
// overlap a solid tile. All problems are reported, joined.
func (m *Map) Validate(body Body) error {
	space := resolv.NewSpace(m.PixelWidth(), m.PixelHeight(), TileWidth, TileHeight)

	for _, r := range m.SolidRects() {
		obj := resolv.NewObject(r.X, r.Y, r.W, r.H, tagSolid)
		obj.SetShape(resolv.NewRectangle(0, 0, r.W, r.H))
		space.Add(obj)
	}

	var errs []error

	w := body.HalfWidth * 2
	h := body.Above + body.Below
	for i, sp := range m.SpawnPoints {
		probe := resolv.NewObject(float64(sp.X)-body.HalfWidth, float64(sp.Y)-body.Above, w, h, tagProbe)
		probe.SetShape(resolv.NewRectangle(0, 0, w, h))
		space.Add(probe)
		if check := probe.Check(0, 0, tagSolid); check != nil && len(check.ObjectsByTags(tagSolid)) > 0 {
			errs = append(errs, fmt.Errorf("%s: spawn %d at (%.0f,%.0f): %w", m.Name, i, sp.X, sp.Y, ErrSpawnInSolid))
		}
		space.Remove(probe)
	}

	pw, ph := float32(m.PixelWidth()), float32(m.PixelHeight())
	for i, jp := range m.jumpPads {
		if jp.Width <= 0 {
			errs = append(errs, fmt.Errorf("%s: jump pad %d: %w", m.Name, i, ErrJumpPadEmpty))
			continue
		}
		if jp.X < 0 || jp.X+jp.Width > pw || jp.Y < 0 || jp.Y > ph {
			errs = append(errs, fmt.Errorf("%s: jump pad %d at (%.0f,%.0f): %w", m.Name, i, jp.X, jp.Y, ErrJumpPadOutOfBounds))
		}
	}

	return errors.Join(errs...)
}
