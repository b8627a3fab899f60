package astro

import (
	"sort"
	"strings"
)

// Star is a catalogued star usable as an observation target.
type Star struct {
	Name        string
	Coordinates Coordinates // J2000 mean place
	Mag         float64     // Apparent visual magnitude (lower = brighter)
}

// StarCatalog holds a collection of stars.
type StarCatalog struct {
	Stars []Star
}

// DefaultStarCatalog returns the bright stars (mag < 2.1) with J2000
// coordinates, brightest first.
func DefaultStarCatalog() StarCatalog {
	stars := make([]Star, len(brightStars))
	for i, s := range brightStars {
		stars[i] = Star{
			Name:        s.name,
			Coordinates: Coordinates{RAHours: s.raHours, DecDeg: s.decDeg, Epoch: J2000},
			Mag:         s.mag,
		}
	}
	return StarCatalog{Stars: stars}
}

// Find looks a star up by case-insensitive name.
func (c StarCatalog) Find(name string) (Star, bool) {
	for _, s := range c.Stars {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Star{}, false
}

// Brighter returns the stars brighter than mag, brightest first.
func (c StarCatalog) Brighter(mag float64) []Star {
	var out []Star
	for _, s := range c.Stars {
		if s.Mag < mag {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Mag < out[j].Mag })
	return out
}

// Yale Bright Star Catalogue positions, IAU names.
var brightStars = []struct {
	name    string
	raHours float64
	decDeg  float64
	mag     float64
}{
	{"Sirius", 6.7525, -16.716, -1.46},
	{"Canopus", 6.3992, -52.696, -0.74},
	{"Arcturus", 14.2610, 19.182, -0.05},
	{"Vega", 18.6157, 38.784, 0.03},
	{"Capella", 5.2781, 45.998, 0.08},
	{"Rigel", 5.2423, -8.202, 0.13},
	{"Procyon", 7.6551, 5.225, 0.34},
	{"Achernar", 1.6286, -57.237, 0.46},
	{"Betelgeuse", 5.9195, 7.407, 0.50},
	{"Hadar", 14.0637, -60.373, 0.61},
	{"Altair", 19.8464, 8.868, 0.76},
	{"Acrux", 12.4433, -63.099, 0.76},
	{"Aldebaran", 4.5987, 16.509, 0.85},
	{"Antares", 16.4901, -26.432, 0.96},
	{"Spica", 13.4199, -11.161, 0.97},
	{"Pollux", 7.7553, 28.026, 1.14},
	{"Fomalhaut", 22.9609, -29.622, 1.16},
	{"Deneb", 20.6905, 45.280, 1.25},
	{"Mimosa", 12.7953, -59.689, 1.25},
	{"Regulus", 10.1395, 11.967, 1.35},
	{"Adhara", 6.9771, -28.972, 1.50},
	{"Castor", 7.5767, 31.889, 1.58},
	{"Gacrux", 12.5194, -57.113, 1.63},
	{"Shaula", 17.5601, -37.104, 1.63},
	{"Bellatrix", 5.4189, 6.350, 1.64},
	{"Elnath", 5.4382, 28.608, 1.65},
	{"Miaplacidus", 9.2200, -69.717, 1.68},
	{"Alnilam", 5.6035, -1.202, 1.69},
	{"Alnair", 22.1372, -46.961, 1.74},
	{"Alnitak", 5.6793, -1.943, 1.77},
	{"Alioth", 12.9005, 55.960, 1.77},
	{"Dubhe", 11.0621, 61.751, 1.79},
	{"Mirfak", 3.4054, 49.861, 1.79},
	{"Wezen", 7.1399, -26.393, 1.84},
	{"Kaus Australis", 18.4029, -34.384, 1.85},
	{"Avior", 8.3753, -59.509, 1.86},
	{"Alkaid", 13.7923, 49.313, 1.86},
	{"Sargas", 17.6220, -42.998, 1.87},
	{"Menkalinan", 5.9921, 44.948, 1.90},
	{"Atria", 16.8111, -69.028, 1.92},
	{"Alhena", 6.6285, 16.399, 1.93},
	{"Peacock", 20.4275, -56.735, 1.94},
	{"Alsephina", 8.7451, -54.709, 1.96},
	{"Mirzam", 6.3783, -17.956, 1.98},
	{"Alphard", 9.4598, -8.659, 2.00},
	{"Hamal", 2.1195, 23.463, 2.00},
	{"Polaris", 2.5303, 89.264, 2.02},
	{"Diphda", 0.7265, -17.987, 2.02},
	{"Nunki", 18.9211, -26.297, 2.02},
	{"Mizar", 13.3987, 54.925, 2.04},
	{"Deneb Kaitos", 0.7265, -17.987, 2.04},
	{"Mirach", 1.1622, 35.621, 2.05},
	{"Alpheratz", 0.1398, 29.091, 2.06},
	{"Menkent", 14.1114, -36.370, 2.06},
	{"Algieba", 9.7642, 19.842, 2.08},
	{"Kochab", 14.8451, 74.156, 2.08},
	{"Rasalhague", 17.5823, 12.560, 2.08},
	{"Saiph", 5.7959, -9.670, 2.09},
}
