package genes

// Field enumerates the scalar components of a GeneSet. Using a typed
// enumeration with an accessor table keeps gene traversal (mutation, bounds
// checks, telemetry) free of reflection or string lookups.
type Field uint8

const (
	FieldSeparationWeight Field = iota
	FieldSeparationRadius
	FieldAlignmentWeight
	FieldAlignmentRadius
	FieldCohesionWeight
	FieldCohesionRadius
	FieldChargeWeight
	FieldChargeRadius
	FieldFleeWeight
	FieldFleeRadius
	FieldMaxSpeed
	FieldMaxForce
	FieldHealth
	FieldDamage
	FieldAttackCooldown
	FieldAggressiveness
	FieldDefensiveness
	FieldSightRange

	numFields
)

// Bound is a closed interval a gene value must lie in.
type Bound struct {
	Min, Max float64
}

// Clamp returns v limited to the bound.
func (b Bound) Clamp(v float64) float64 {
	if v < b.Min {
		return b.Min
	}
	if v > b.Max {
		return b.Max
	}
	return v
}

// bounds is the authoritative constraint table. Generation and mutation must
// never produce a value outside these intervals.
var bounds = [numFields]Bound{
	FieldSeparationWeight: {0.5, 8},
	FieldSeparationRadius: {10, 60},
	FieldAlignmentWeight:  {0.5, 8},
	FieldAlignmentRadius:  {20, 120},
	FieldCohesionWeight:   {0.5, 8},
	FieldCohesionRadius:   {20, 120},
	FieldChargeWeight:     {3.0, 20},
	FieldChargeRadius:     {100, 500},
	FieldFleeWeight:       {1.0, 15},
	FieldFleeRadius:       {20, 150},
	FieldMaxSpeed:         {20, 100},
	FieldMaxForce:         {0.5, 5.0},
	FieldHealth:           {50, 200},
	FieldDamage:           {10, 35},
	FieldAttackCooldown:   {0.05, 0.4},
	FieldAggressiveness:   {0.6, 1.0},
	FieldDefensiveness:    {0.1, 0.5},
	FieldSightRange:       {100, 400},
}

type accessor struct {
	get func(*GeneSet) float64
	set func(*GeneSet, float64)
}

var accessors = [numFields]accessor{
	FieldSeparationWeight: {
		func(g *GeneSet) float64 { return g.Separation.Weight },
		func(g *GeneSet, v float64) { g.Separation.Weight = v },
	},
	FieldSeparationRadius: {
		func(g *GeneSet) float64 { return g.Separation.Radius },
		func(g *GeneSet, v float64) { g.Separation.Radius = v },
	},
	FieldAlignmentWeight: {
		func(g *GeneSet) float64 { return g.Alignment.Weight },
		func(g *GeneSet, v float64) { g.Alignment.Weight = v },
	},
	FieldAlignmentRadius: {
		func(g *GeneSet) float64 { return g.Alignment.Radius },
		func(g *GeneSet, v float64) { g.Alignment.Radius = v },
	},
	FieldCohesionWeight: {
		func(g *GeneSet) float64 { return g.Cohesion.Weight },
		func(g *GeneSet, v float64) { g.Cohesion.Weight = v },
	},
	FieldCohesionRadius: {
		func(g *GeneSet) float64 { return g.Cohesion.Radius },
		func(g *GeneSet, v float64) { g.Cohesion.Radius = v },
	},
	FieldChargeWeight: {
		func(g *GeneSet) float64 { return g.Charge.Weight },
		func(g *GeneSet, v float64) { g.Charge.Weight = v },
	},
	FieldChargeRadius: {
		func(g *GeneSet) float64 { return g.Charge.Radius },
		func(g *GeneSet, v float64) { g.Charge.Radius = v },
	},
	FieldFleeWeight: {
		func(g *GeneSet) float64 { return g.Flee.Weight },
		func(g *GeneSet, v float64) { g.Flee.Weight = v },
	},
	FieldFleeRadius: {
		func(g *GeneSet) float64 { return g.Flee.Radius },
		func(g *GeneSet, v float64) { g.Flee.Radius = v },
	},
	FieldMaxSpeed: {
		func(g *GeneSet) float64 { return g.MaxSpeed },
		func(g *GeneSet, v float64) { g.MaxSpeed = v },
	},
	FieldMaxForce: {
		func(g *GeneSet) float64 { return g.MaxForce },
		func(g *GeneSet, v float64) { g.MaxForce = v },
	},
	FieldHealth: {
		func(g *GeneSet) float64 { return g.Health },
		func(g *GeneSet, v float64) { g.Health = v },
	},
	FieldDamage: {
		func(g *GeneSet) float64 { return g.Damage },
		func(g *GeneSet, v float64) { g.Damage = v },
	},
	FieldAttackCooldown: {
		func(g *GeneSet) float64 { return g.AttackCooldown },
		func(g *GeneSet, v float64) { g.AttackCooldown = v },
	},
	FieldAggressiveness: {
		func(g *GeneSet) float64 { return g.Aggressiveness },
		func(g *GeneSet, v float64) { g.Aggressiveness = v },
	},
	FieldDefensiveness: {
		func(g *GeneSet) float64 { return g.Defensiveness },
		func(g *GeneSet, v float64) { g.Defensiveness = v },
	},
	FieldSightRange: {
		func(g *GeneSet) float64 { return g.SightRange },
		func(g *GeneSet, v float64) { g.SightRange = v },
	},
}

var fieldNames = [numFields]string{
	FieldSeparationWeight: "separation_weight",
	FieldSeparationRadius: "separation_radius",
	FieldAlignmentWeight:  "alignment_weight",
	FieldAlignmentRadius:  "alignment_radius",
	FieldCohesionWeight:   "cohesion_weight",
	FieldCohesionRadius:   "cohesion_radius",
	FieldChargeWeight:     "charge_weight",
	FieldChargeRadius:     "charge_radius",
	FieldFleeWeight:       "flee_weight",
	FieldFleeRadius:       "flee_radius",
	FieldMaxSpeed:         "max_speed",
	FieldMaxForce:         "max_force",
	FieldHealth:           "health",
	FieldDamage:           "damage",
	FieldAttackCooldown:   "attack_cooldown",
	FieldAggressiveness:   "aggressiveness",
	FieldDefensiveness:    "defensiveness",
	FieldSightRange:       "sight_range",
}

// allFields is built once; Fields returns it for range loops.
var allFields = func() []Field {
	fs := make([]Field, numFields)
	for i := range fs {
		fs[i] = Field(i)
	}
	return fs
}()

// Fields returns every gene field in declaration order.
func Fields() []Field {
	return allFields
}

// Bound returns the constraint interval for the field.
func (f Field) Bound() Bound {
	return bounds[f]
}

// String returns the snake_case name used in telemetry output.
func (f Field) String() string {
	if int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return "unknown"
}

func (f Field) get(g *GeneSet) float64 {
	return accessors[f].get(g)
}

func (f Field) set(g *GeneSet, v float64) {
	accessors[f].set(g, v)
}

// Value returns the field's value from g.
func (g *GeneSet) Value(f Field) float64 {
	return f.get(g)
}
