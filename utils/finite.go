package utils

import (
	"firearm/weapon"
)

// FiniteRay は始点と方向のすべての成分が有限かを返します。
func FiniteRay(r weapon.Ray) bool {
	return r.Origin.IsFinite() && r.Direction.IsFinite()
}

// Clamp は v を [lo, hi] に収めます。
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
