package systems

import "github.com/pthm-cable/skirmish/components"

// TakeDamage applies amount to the target's health, capped at the remaining
// health, and records the tallies fitness is later scored from. The dead
// transition happens exactly once: calls on an already dead target are
// no-ops and never double-credit a kill. Returns true when this call killed
// the target.
func TakeDamage(h *components.Health, target, attacker *components.Combat, amount float64) bool {
	if !h.Alive {
		return false
	}

	dealt := amount
	if dealt > h.Current {
		dealt = h.Current
	}
	h.Current -= dealt
	target.DamageTaken += dealt
	attacker.DamageDealt += dealt

	if h.Current <= 0 {
		h.Alive = false
		attacker.Kills++
		return true
	}
	return false
}
