package systems

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/skirmish/components"
	"github.com/pthm-cable/skirmish/genes"
)

func testGenes() genes.GeneSet {
	return genes.GeneSet{
		Separation:     genes.Behavior{Weight: 1, Radius: 20},
		Alignment:      genes.Behavior{Weight: 1, Radius: 50},
		Cohesion:       genes.Behavior{Weight: 1, Radius: 50},
		Charge:         genes.Behavior{Weight: 1, Radius: 200},
		Flee:           genes.Behavior{Weight: 1, Radius: 100},
		MaxSpeed:       50,
		MaxForce:       2,
		Health:         100,
		Damage:         20,
		AttackCooldown: 0.1,
		Aggressiveness: 1,
		Defensiveness:  0.3,
		SightRange:     200,
	}
}

func addAgent(r *Roster, pos, vel r3.Vec, team components.Team, health, maxHealth float64) int {
	return r.Add(AgentSnapshot{
		Pos:       pos,
		Vel:       vel,
		Team:      team,
		Health:    health,
		MaxHealth: maxHealth,
	})
}

func vecNear(t *testing.T, got, want r3.Vec, tol float64) {
	t.Helper()
	if math.Abs(got.X-want.X) > tol || math.Abs(got.Y-want.Y) > tol || math.Abs(got.Z-want.Z) > tol {
		t.Errorf("vector = %+v, want %+v", got, want)
	}
}

func TestSeparateNoNeighborsZeroForce(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)

	steer := NewSteering(roster)
	if f := steer.Separate(idx, &g); f != (r3.Vec{}) {
		t.Errorf("Separate with no neighbors = %+v, want zero", f)
	}
}

func TestSeparateSteersAwayFromNeighbor(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 10}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	f := steer.Separate(idx, &g)

	// Desired direction is -X at max speed; with zero velocity the steer
	// clamps to max force.
	vecNear(t, f, r3.Vec{X: -g.MaxForce}, 1e-9)
}

func TestSeparateIgnoresCoincidentNeighbor(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	if f := steer.Separate(idx, &g); f != (r3.Vec{}) {
		t.Errorf("Separate with coincident neighbor = %+v, want zero (no NaN direction)", f)
	}
}

func TestAlignMatchesTeammateVelocity(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 30}, r3.Vec{X: 10}, components.TeamRed, 100, 100)

	steer := NewSteering(roster)
	f := steer.Align(idx, &g)
	vecNear(t, f, r3.Vec{X: g.MaxForce}, 1e-9)
}

func TestAlignIgnoresEnemiesAndInvisible(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 30}, r3.Vec{X: 10}, components.TeamBlue, 100, 100)
	inv := addAgent(roster, r3.Vec{X: 20}, r3.Vec{X: 10}, components.TeamRed, 100, 100)
	roster.At(inv).Invisible = true

	steer := NewSteering(roster)
	if f := steer.Align(idx, &g); f != (r3.Vec{}) {
		t.Errorf("Align = %+v, want zero (enemy and invisible teammate excluded)", f)
	}
}

func TestCohereSeeksTeamCentroid(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 40}, r3.Vec{}, components.TeamRed, 100, 100)

	steer := NewSteering(roster)
	f := steer.Cohere(idx, &g)
	vecNear(t, f, r3.Vec{X: g.MaxForce}, 1e-9)
}

func TestChargePicksNearestEnemy(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 150}, r3.Vec{}, components.TeamBlue, 100, 100)
	addAgent(roster, r3.Vec{X: -50}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	f := steer.Charge(idx, &g)

	// Nearest enemy is at -50 on X.
	vecNear(t, f, r3.Vec{X: -g.MaxForce * g.Charge.Weight * g.Aggressiveness}, 1e-9)
}

func TestChargeSuppressedWhenWeak(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	// Health below max * defensiveness (100 * 0.3).
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 20, 100)
	addAgent(roster, r3.Vec{X: 50}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	if f := steer.Charge(idx, &g); f != (r3.Vec{}) {
		t.Errorf("Charge while weak = %+v, want zero", f)
	}
}

func TestFleeSuppressedWhenHealthy(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 100, 100)
	addAgent(roster, r3.Vec{X: 50}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	if f := steer.Flee(idx, &g); f != (r3.Vec{}) {
		t.Errorf("Flee while healthy = %+v, want zero", f)
	}
}

func TestFleeSteersAwayFromEnemies(t *testing.T) {
	roster := NewRoster(4)
	g := testGenes()
	idx := addAgent(roster, r3.Vec{}, r3.Vec{}, components.TeamRed, 20, 100)
	addAgent(roster, r3.Vec{X: 50}, r3.Vec{}, components.TeamBlue, 100, 100)

	steer := NewSteering(roster)
	f := steer.Flee(idx, &g)
	vecNear(t, f, r3.Vec{X: -g.MaxForce * g.Flee.Weight}, 1e-9)
}

func TestSeekAtTargetIsZero(t *testing.T) {
	pos := r3.Vec{X: 1, Y: 2, Z: 3}
	if f := Seek(pos, r3.Vec{X: 5}, pos, 50, 2); f != (r3.Vec{}) {
		t.Errorf("Seek at target = %+v, want zero", f)
	}
}

func TestSeekClampsToMaxForce(t *testing.T) {
	f := Seek(r3.Vec{}, r3.Vec{}, r3.Vec{X: 1000}, 50, 2)
	if got := r3.Norm(f); math.Abs(got-2) > 1e-9 {
		t.Errorf("|Seek| = %v, want 2", got)
	}
}

func TestAvoidBoundsInsideArenaIsZero(t *testing.T) {
	b := Bounds{Half: 400, FloorY: -395, Margin: 50}
	if f := AvoidBounds(r3.Vec{}, 2, b); f != (r3.Vec{}) {
		t.Errorf("AvoidBounds at center = %+v, want zero", f)
	}
}

func TestAvoidBoundsGrowsWithPenetration(t *testing.T) {
	b := Bounds{Half: 400, FloorY: -395, Margin: 50}
	maxForce := 2.0

	shallow := AvoidBounds(r3.Vec{X: -360}, maxForce, b)
	deep := AvoidBounds(r3.Vec{X: -390}, maxForce, b)
	if shallow.X <= 0 || deep.X <= shallow.X {
		t.Errorf("wall force not increasing: shallow=%v deep=%v", shallow.X, deep.X)
	}

	// X = -360, margin starts at -350: depth 10 of 50.
	want := 10.0 / 50.0 * maxForce
	if math.Abs(shallow.X-want) > 1e-9 {
		t.Errorf("shallow wall force = %v, want %v", shallow.X, want)
	}
}

func TestAvoidBoundsFloorPushesHarder(t *testing.T) {
	b := Bounds{Half: 400, FloorY: -400, Margin: 50}
	maxForce := 2.0

	// Same penetration depth on the floor and on a side wall.
	wall := AvoidBounds(r3.Vec{X: -380}, maxForce, b)
	floor := AvoidBounds(r3.Vec{Y: -380}, maxForce, b)

	if math.Abs(floor.Y-wall.X*floorForceMultiplier) > 1e-9 {
		t.Errorf("floor force %v, want %v (1.5x wall force %v)", floor.Y, wall.X*floorForceMultiplier, wall.X)
	}
}

func TestAvoidBoundsCeilingPushesDown(t *testing.T) {
	b := Bounds{Half: 400, FloorY: -395, Margin: 50}
	f := AvoidBounds(r3.Vec{Y: 390}, 2, b)
	if f.Y >= 0 {
		t.Errorf("ceiling force = %v, want negative", f.Y)
	}
}
