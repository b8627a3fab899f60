package astro

import (
	"math"

	"github.com/soniakeys/unit"
)

// clampUnit limits x to [-1, 1]. Rounding can push a sine or cosine that
// should be exactly ±1 (zenith, poles, exact conjunction) just outside the
// domain of asin/acos.
func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

// Asin returns the angle whose sine is x, clamping x to [-1, 1].
func Asin(x float64) unit.Angle {
	return unit.Angle(math.Asin(clampUnit(x)))
}

// Acos returns the angle whose cosine is x, clamping x to [-1, 1].
func Acos(x float64) unit.Angle {
	return unit.Angle(math.Acos(clampUnit(x)))
}

// Atan2 returns the angle of the point (x, y) in (-π, π].
func Atan2(y, x float64) unit.Angle {
	return unit.Angle(math.Atan2(y, x))
}

// hourAngle converts an hour value to a typed hour angle.
func hourAngle(hours float64) unit.HourAngle {
	return unit.HourAngleFromHour(hours)
}

// degrees converts a degree value to a typed angle.
func degrees(deg float64) unit.Angle {
	return unit.AngleFromDeg(deg)
}
