package systems

import "gonum.org/v1/gonum/spatial/r3"

// ClampLen limits v to the given length. A non-positive limit yields zero.
func ClampLen(v r3.Vec, max float64) r3.Vec {
	if max <= 0 {
		return r3.Vec{}
	}
	n := r3.Norm(v)
	if n > max {
		return r3.Scale(max/n, v)
	}
	return v
}

// SafeUnit returns the unit vector of v, or zero when v has (near) zero
// length. Guards normalization against producing NaN directions.
func SafeUnit(v r3.Vec) r3.Vec {
	n := r3.Norm(v)
	if n < 1e-12 {
		return r3.Vec{}
	}
	return r3.Scale(1/n, v)
}
