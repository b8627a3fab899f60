package astro

import (
	"errors"
	"fmt"
	"math"
)

// ErrValidation matches every *ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports a violated precondition on a public entry point.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("astro: invalid %s: %s", e.Field, e.Reason)
}

// Is lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

func validateObserver(obs *ObserverInfo) error {
	if obs == nil {
		return invalid("observer", "must not be nil")
	}
	if !isFinite(obs.LatDeg) {
		return invalid("observer latitude", "must be finite")
	}
	if !isFinite(obs.LonDeg) {
		return invalid("observer longitude", "must be finite")
	}
	return nil
}

func validateCoordinates(c *Coordinates) error {
	if c == nil {
		return invalid("coordinates", "must not be nil")
	}
	if !isFinite(c.RAHours) {
		return invalid("right ascension", "must be finite")
	}
	if !isFinite(c.DecDeg) {
		return invalid("declination", "must be finite")
	}
	return nil
}

func validateMinimumAltitude(minAltDeg float64) error {
	if !isFinite(minAltDeg) || minAltDeg <= 0 {
		return invalid("minimum altitude", fmt.Sprintf("must be > 0, got %v", minAltDeg))
	}
	return nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
