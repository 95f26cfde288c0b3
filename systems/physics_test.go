package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
)

var testBounds = Bounds{Half: 400, FloorY: -395, Margin: 50}

func TestIntegrateAppliesForcesAndResetsAcceleration(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{}
	acc := components.Acceleration{Vec: r3.Vec{X: 60}}

	Integrate(&pos, &vel, &acc, 50, 10, 1.0/60, 5, testBounds)

	if math.Abs(vel.Vec.X-1) > 1e-9 {
		t.Errorf("vel.X = %v, want 1", vel.Vec.X)
	}
	if math.Abs(pos.Vec.X-1.0/60) > 1e-9 {
		t.Errorf("pos.X = %v, want %v", pos.Vec.X, 1.0/60)
	}
	if acc.Vec != (r3.Vec{}) {
		t.Errorf("acceleration not reset: %+v", acc.Vec)
	}
}

func TestIntegrateClampsSpeed(t *testing.T) {
	pos := components.Position{}
	vel := components.Velocity{}
	acc := components.Acceleration{Vec: r3.Vec{X: 1e9, Y: 1e9}}

	Integrate(&pos, &vel, &acc, 50, 10, 1.0/60, 5, testBounds)

	if got, limit := r3.Norm(vel.Vec), 50.0*10; got > limit+1e-9 {
		t.Errorf("|vel| = %v, exceeds %v", got, limit)
	}
}

func TestIntegrateFloorClampAndBounce(t *testing.T) {
	tests := []struct {
		name string
		velY float64
	}{
		{"gentle fall", -10},
		{"terminal fall", -1e6},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			pos := components.Position{Vec: r3.Vec{Y: -394}}
			vel := components.Velocity{Vec: r3.Vec{Y: tc.velY}}
			acc := components.Acceleration{}
			radius := 5.0

			Integrate(&pos, &vel, &acc, 1e9, 1, 1.0/60, radius, testBounds)

			if floor := testBounds.FloorY + radius; pos.Vec.Y != floor {
				t.Errorf("pos.Y = %v, want clamped to %v", pos.Vec.Y, floor)
			}
			if vel.Vec.Y <= 0 {
				t.Errorf("vel.Y = %v, want upward bounce", vel.Vec.Y)
			}
		})
	}
}

func TestClampLen(t *testing.T) {
	tests := []struct {
		name string
		v    r3.Vec
		max  float64
		want float64
	}{
		{"under limit", r3.Vec{X: 3}, 5, 3},
		{"over limit", r3.Vec{X: 30, Y: 40}, 5, 5},
		{"zero limit", r3.Vec{X: 3}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r3.Norm(ClampLen(tc.v, tc.max)); math.Abs(got-tc.want) > 1e-9 {
				t.Errorf("|ClampLen(%+v, %v)| = %v, want %v", tc.v, tc.max, got, tc.want)
			}
		})
	}
}

func TestSafeUnitZeroVector(t *testing.T) {
	if got := SafeUnit(r3.Vec{}); got != (r3.Vec{}) {
		t.Errorf("SafeUnit(zero) = %+v, want zero", got)
	}
	got := SafeUnit(r3.Vec{X: 0, Y: -7, Z: 0})
	if math.Abs(got.Y+1) > 1e-9 {
		t.Errorf("SafeUnit = %+v, want -Y unit", got)
	}
}
