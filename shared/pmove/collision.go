package pmove

import "github.com/automoto/arena-predict/shared/leveldata"

// Sweeps use a hitbox half a pixel narrower than the ground probe so a player
// flush against a wall is not considered to be standing on it.
const sweepHalfWidth = HitboxWidth/2 - 0.5

// minDelta is the smallest displacement worth sweeping.
const minDelta = 0.01

type collision struct {
	x, y     float32
	vx, vy   float32
	onGround bool
}

func tileCol(px float32) int { return int(px / leveldata.TileWidth) }
func tileRow(py float32) int { return int(py / leveldata.TileHeight) }

// standsAt reports whether either foot column has a solid tile under the feet
// and a clear tile at body height.
func standsAt(x, y, halfW float32, m Map) bool {
	left, right := tileCol(x-halfW), tileCol(x+halfW)
	feet, body := tileRow(y+feetOffset), tileRow(y+bodyOffset)
	return (m.IsSolid(left, feet) && !m.IsSolid(left, body)) ||
		(m.IsSolid(right, feet) && !m.IsSolid(right, body))
}

// wallAt checks head, waist and shin rows at both hitbox edges.
func wallAt(x, y, height float32, m Map) bool {
	left, right := tileCol(x-sweepHalfWidth), tileCol(x+sweepHalfWidth)
	rows := [3]int{tileRow(y - height), tileRow(y), tileRow(y + lowOffset)}
	for _, row := range rows {
		if m.IsSolid(left, row) || m.IsSolid(right, row) {
			return true
		}
	}
	return false
}

// canStepUp reports whether the obstacle ahead is a single tile high with
// room for the body above it.
func canStepUp(x, y, vx, vy, height float32, m Map) bool {
	if vy > 0.5 {
		return false
	}
	aheadX := x - sweepHalfWidth - stepProbe
	if vx > 0 {
		aheadX = x + sweepHalfWidth + stepProbe
	}
	col := tileCol(aheadX)
	return m.IsSolid(col, tileRow(y+lowOffset)) &&
		!m.IsSolid(col, tileRow(y)) &&
		!m.IsSolid(col, tileRow(y-height))
}

// moveWithCollision integrates position one axis at a time: horizontal first
// (with step-up), then vertical (floor snap or ceiling stop).
func moveWithCollision(x, y, vx, vy float32, crouch bool, dtNorm float32, m Map) collision {
	height := float32(HitboxHeight)
	if crouch {
		height = HitboxHeightCrouch
	}

	c := collision{x: x, y: y, vx: vx, vy: vy}
	dx := float32(vx * dtNorm)
	dy := float32(vy * dtNorm)

	if abs32(dx) > minDelta {
		targetX := x + dx
		switch {
		case !wallAt(targetX, y, height, m):
			c.x = targetX
		case canStepUp(x, y, vx, vy, height, m):
			c.x = targetX
			c.y = y - stepHeight
		default:
			c.vx = 0
		}
	}

	if abs32(dy) > minDelta {
		targetY := c.y + dy
		if dy > 0 {
			if standsAt(c.x, targetY, sweepHalfWidth, m) {
				// Rest on top of the row the feet probe hit.
				c.vy = 0
				c.y = float32(tileRow(targetY+feetOffset)*leveldata.TileHeight) - feetOffset
			} else {
				c.y = targetY
			}
		} else {
			left, right := tileCol(c.x-sweepHalfWidth), tileCol(c.x+sweepHalfWidth)
			head := tileRow(targetY - height)
			if m.IsSolid(left, head) || m.IsSolid(right, head) {
				c.vy = 0
				c.y = float32((head+1)*leveldata.TileHeight) + height
			} else {
				c.y = targetY
			}
		}
	}

	c.onGround = standsAt(c.x, c.y, sweepHalfWidth, m)
	return c
}
