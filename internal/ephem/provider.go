// Package ephem provides the ephemeris and astrometry behind the astro core:
// Julian dates, sidereal time, Sun and Moon positions, and epoch reduction.
package ephem

import (
	"errors"
	"strings"

	"github.com/litescript/ls-skyplan/internal/astro"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// Errors returned by providers.
var (
	ErrInvalidDate     = errors.New("ephem: julian date is not finite")
	ErrUnresolvedEpoch = errors.New("ephem: of-date epoch has no date")
)

// Provider is an astro.Ephemeris with a name for display and logging.
type Provider interface {
	astro.Ephemeris

	// Name returns the provider name for display/logging.
	Name() string
}

// Mode selects how much of the apparent-place reduction a provider applies.
type Mode int

const (
	ModeApparent Mode = iota // Precession, nutation and aberration (default)
	ModeMean                 // Precession only; mean sidereal time
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeApparent:
		return "apparent"
	case ModeMean:
		return "mean"
	default:
		return "unknown"
	}
}

// ParseMode parses a mode string. Unknown values select ModeApparent.
func ParseMode(s string) Mode {
	switch strings.ToLower(s) {
	case "mean":
		return ModeMean
	default:
		return ModeApparent
	}
}

// New returns the provider for a mode.
func New(mode Mode) Provider {
	return NewMeeus(mode)
}
