package systems

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/genes"
)

// Steering computes flocking and combat steering forces against a roster
// snapshot. Methods take the roster index of the agent being steered. The
// scratch buffer is reused across queries to keep the hot path
// allocation-free.
type Steering struct {
	roster  *Roster
	scratch []Neighbor
}

// NewSteering creates a steering context bound to the given roster.
func NewSteering(roster *Roster) *Steering {
	return &Steering{
		roster:  roster,
		scratch: make([]Neighbor, 0, 64),
	}
}

// Seek returns the steering force toward target: desired velocity at full
// speed minus current velocity, length-limited to maxForce. A target at the
// current position yields zero force.
func Seek(pos, vel, target r3.Vec, maxSpeed, maxForce float64) r3.Vec {
	dir := SafeUnit(r3.Sub(target, pos))
	if dir == (r3.Vec{}) {
		return r3.Vec{}
	}
	return ClampLen(r3.Sub(r3.Scale(maxSpeed, dir), vel), maxForce)
}

// steerToward converts a desired direction into a velocity-matching force
// capped at maxForce. Zero-length directions short-circuit to zero force.
func steerToward(dir, vel r3.Vec, maxSpeed, maxForce float64) r3.Vec {
	unit := SafeUnit(dir)
	if unit == (r3.Vec{}) {
		return r3.Vec{}
	}
	return ClampLen(r3.Sub(r3.Scale(maxSpeed, unit), vel), maxForce)
}

// Separate steers away from all neighbors, any team, within the separation
// radius. Each neighbor repels along the unit vector away from it, weighted
// by inverse distance. No neighbors means zero force.
func (s *Steering) Separate(idx int, g *genes.GeneSet) r3.Vec {
	self := s.roster.At(idx)
	s.scratch = s.roster.QueryRadiusInto(s.scratch[:0], self.Pos, g.Separation.Radius, idx)

	var sum r3.Vec
	count := 0
	for _, nb := range s.scratch {
		if nb.Dist <= 0 {
			continue // coincident positions have no direction
		}
		away := r3.Scale(-1/nb.Dist, nb.Delta)
		sum = r3.Add(sum, r3.Scale(1/nb.Dist, away))
		count++
	}
	if count == 0 {
		return r3.Vec{}
	}
	avg := r3.Scale(1/float64(count), sum)
	return r3.Scale(g.Separation.Weight, steerToward(avg, self.Vel, g.MaxSpeed, g.MaxForce))
}

// Align steers toward the average velocity of same-team neighbors within the
// alignment radius. An invisible teammate (the cloaked player) is not sensed.
func (s *Steering) Align(idx int, g *genes.GeneSet) r3.Vec {
	self := s.roster.At(idx)
	s.scratch = s.roster.QueryRadiusInto(s.scratch[:0], self.Pos, g.Alignment.Radius, idx)

	var sum r3.Vec
	count := 0
	for _, nb := range s.scratch {
		a := s.roster.At(nb.Idx)
		if a.Team != self.Team || a.Invisible {
			continue
		}
		sum = r3.Add(sum, a.Vel)
		count++
	}
	if count == 0 {
		return r3.Vec{}
	}
	avg := r3.Scale(1/float64(count), sum)
	return r3.Scale(g.Alignment.Weight, steerToward(avg, self.Vel, g.MaxSpeed, g.MaxForce))
}

// Cohere seeks the centroid of same-team neighbors within the cohesion
// radius, with the same invisibility exclusion as Align.
func (s *Steering) Cohere(idx int, g *genes.GeneSet) r3.Vec {
	self := s.roster.At(idx)
	s.scratch = s.roster.QueryRadiusInto(s.scratch[:0], self.Pos, g.Cohesion.Radius, idx)

	var sum r3.Vec
	count := 0
	for _, nb := range s.scratch {
		a := s.roster.At(nb.Idx)
		if a.Team != self.Team || a.Invisible {
			continue
		}
		sum = r3.Add(sum, a.Pos)
		count++
	}
	if count == 0 {
		return r3.Vec{}
	}
	centroid := r3.Scale(1/float64(count), sum)
	return r3.Scale(g.Cohesion.Weight, Seek(self.Pos, self.Vel, centroid, g.MaxSpeed, g.MaxForce))
}

// Charge seeks the nearest visible enemy within the charge radius, scaled by
// aggressiveness. Suppressed entirely while the agent is below its
// defensiveness health fraction. Enemy sensing never exceeds sight range.
func (s *Steering) Charge(idx int, g *genes.GeneSet) r3.Vec {
	self := s.roster.At(idx)
	if self.Health < self.MaxHealth*g.Defensiveness {
		return r3.Vec{}
	}

	s.scratch = s.roster.QueryRadiusInto(s.scratch[:0], self.Pos, math.Min(g.Charge.Radius, g.SightRange), idx)

	nearest := -1
	nearestDist := 0.0
	for _, nb := range s.scratch {
		a := s.roster.At(nb.Idx)
		if a.Team == self.Team || a.Invisible {
			continue
		}
		if nearest < 0 || nb.Dist < nearestDist {
			nearest = nb.Idx
			nearestDist = nb.Dist
		}
	}
	if nearest < 0 {
		return r3.Vec{}
	}
	target := s.roster.At(nearest).Pos
	return r3.Scale(g.Charge.Weight*g.Aggressiveness, Seek(self.Pos, self.Vel, target, g.MaxSpeed, g.MaxForce))
}

// Flee steers away from enemies within the flee radius (capped by sight
// range), inverse-distance weighted. Only active while health is at or below the defensiveness
// fraction. Cloaking does not hide an enemy from a fleeing agent.
func (s *Steering) Flee(idx int, g *genes.GeneSet) r3.Vec {
	self := s.roster.At(idx)
	if self.Health > self.MaxHealth*g.Defensiveness {
		return r3.Vec{}
	}

	s.scratch = s.roster.QueryRadiusInto(s.scratch[:0], self.Pos, math.Min(g.Flee.Radius, g.SightRange), idx)

	var sum r3.Vec
	count := 0
	for _, nb := range s.scratch {
		a := s.roster.At(nb.Idx)
		if a.Team == self.Team || nb.Dist <= 0 {
			continue
		}
		away := r3.Scale(-1/nb.Dist, nb.Delta)
		sum = r3.Add(sum, r3.Scale(1/nb.Dist, away))
		count++
	}
	if count == 0 {
		return r3.Vec{}
	}
	avg := r3.Scale(1/float64(count), sum)
	return r3.Scale(g.Flee.Weight, steerToward(avg, self.Vel, g.MaxSpeed, g.MaxForce))
}

// floorForceMultiplier makes the floor push back harder than the walls.
const floorForceMultiplier = 1.5

// AvoidBounds applies a per-axis restoring force once the position is within
// the margin of an arena wall. The force grows linearly with penetration
// depth and is proportional to maxForce.
func AvoidBounds(pos r3.Vec, maxForce float64, b Bounds) r3.Vec {
	return r3.Vec{
		X: axisRestore(pos.X, -b.Half, b.Half, b.Margin, maxForce, 1, 1),
		Y: axisRestore(pos.Y, b.FloorY, b.Half, b.Margin, maxForce, floorForceMultiplier, 1),
		Z: axisRestore(pos.Z, -b.Half, b.Half, b.Margin, maxForce, 1, 1),
	}
}

// axisRestore returns the restoring force along one axis. loMult and hiMult
// scale the response at the lower and upper walls.
func axisRestore(v, lo, hi, margin, maxForce, loMult, hiMult float64) float64 {
	var f float64
	if v < lo+margin {
		f += (lo + margin - v) / margin * maxForce * loMult
	}
	if v > hi-margin {
		f -= (v - (hi - margin)) / margin * maxForce * hiMult
	}
	return f
}
