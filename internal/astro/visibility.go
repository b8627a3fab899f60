package astro

import "math"

// PolarCircleLatitude approximates the latitude of the Arctic and Antarctic
// circles (90° minus the axial tilt, about 66.56°).
const PolarCircleLatitude = 66.6

// RisesAtLocation reports whether the target can ever be above the horizon
// at the observer's latitude. A circumpolar target also returns true: this is
// not a test for a discrete rise event.
func RisesAtLocation(obs *ObserverInfo, target *Coordinates) (bool, error) {
	if err := validateObserver(obs); err != nil {
		return false, err
	}
	if err := validateCoordinates(target); err != nil {
		return false, err
	}

	d := target.DecDeg - obs.LatDeg
	return d >= -90 && d <= 90, nil
}

// CircumpolarAtLocation reports whether the target never crosses the
// horizon, either never setting or never rising.
func CircumpolarAtLocation(obs *ObserverInfo, target *Coordinates) (bool, error) {
	if err := validateObserver(obs); err != nil {
		return false, err
	}
	if err := validateCoordinates(target); err != nil {
		return false, err
	}

	s := obs.LatDeg + target.DecDeg
	return s > 90 || s < -90, nil
}

// CircumpolarAtLocationWithMinimumAltitude is CircumpolarAtLocation with the
// horizon raised by minAltDeg, which must be > 0.
func CircumpolarAtLocationWithMinimumAltitude(obs *ObserverInfo, target *Coordinates, minAltDeg float64) (bool, error) {
	if err := validateObserver(obs); err != nil {
		return false, err
	}
	if err := validateCoordinates(target); err != nil {
		return false, err
	}
	if err := validateMinimumAltitude(minAltDeg); err != nil {
		return false, err
	}

	return obs.LatDeg+(target.DecDeg-minAltDeg) > 90 ||
		obs.LatDeg+(target.DecDeg+minAltDeg) < -90, nil
}

// IsAbovePolarCircle reports whether the observer is at or beyond either
// polar circle.
func IsAbovePolarCircle(obs *ObserverInfo) (bool, error) {
	if err := validateObserver(obs); err != nil {
		return false, err
	}
	return math.Abs(obs.LatDeg) >= PolarCircleLatitude, nil
}

// AltitudeTier categorizes altitude for display.
type AltitudeTier int

const (
	AltitudeNone   AltitudeTier = iota // Below horizon
	AltitudeLow                        // 0-15 degrees
	AltitudeMedium                     // 15-45 degrees
	AltitudeHigh                       // 45+ degrees
)

// String returns the tier name.
func (t AltitudeTier) String() string {
	switch t {
	case AltitudeNone:
		return "below"
	case AltitudeLow:
		return "low"
	case AltitudeMedium:
		return "medium"
	case AltitudeHigh:
		return "high"
	default:
		return "unknown"
	}
}

// GetAltitudeTier returns the tier for an altitude in degrees.
func GetAltitudeTier(altDeg float64) AltitudeTier {
	switch {
	case altDeg <= 0:
		return AltitudeNone
	case altDeg < 15:
		return AltitudeLow
	case altDeg < 45:
		return AltitudeMedium
	default:
		return AltitudeHigh
	}
}
