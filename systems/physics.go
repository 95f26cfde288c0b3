package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
)

// Bounds describes the arena: walls at ±Half on X and Z, ceiling at +Half,
// floor at FloorY. Margin is the distance from a wall at which boundary
// avoidance starts to push back.
type Bounds struct {
	Half   float64
	FloorY float64
	Margin float64
}

// floorRestitution is the fraction of vertical speed kept when bouncing off
// the floor.
const floorRestitution = 0.5

// Integrate advances one agent by dt: velocity from accumulated forces,
// position from velocity, then the hard floor clamp. Velocity is limited to
// maxSpeed times the speed multiplier. Acceleration is zeroed for the next
// tick.
func Integrate(pos *components.Position, vel *components.Velocity, acc *components.Acceleration,
	maxSpeed, speedMult, dt, radius float64, b Bounds) {

	vel.Vec = r3.Add(vel.Vec, r3.Scale(dt, acc.Vec))
	vel.Vec = ClampLen(vel.Vec, maxSpeed*speedMult)
	pos.Vec = r3.Add(pos.Vec, r3.Scale(dt, vel.Vec))

	// Never end a tick below the floor, no matter how fast the agent fell.
	if floor := b.FloorY + radius; pos.Vec.Y < floor {
		pos.Vec.Y = floor
		vel.Vec.Y = math.Abs(vel.Vec.Y) * floorRestitution
	}

	acc.Vec = r3.Vec{}
}
