package plan

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// SurveyExport is the JSON-serializable representation of a survey.
type SurveyExport struct {
	Time             time.Time      `json:"time"`
	Site             SiteExport     `json:"site"`
	MinAltitude      float64        `json:"min_altitude"`
	AbovePolarCircle bool           `json:"above_polar_circle"`
	Moon             MoonExport     `json:"moon"`
	Targets          []TargetExport `json:"targets"`
}

// SiteExport is a JSON-friendly observer.
type SiteExport struct {
	Name      string  `json:"name,omitempty"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Elevation float64 `json:"elevation_m"`
}

// MoonExport is a JSON-friendly Moon phase.
type MoonExport struct {
	Name         string  `json:"name"`
	Illumination float64 `json:"illumination"`
	Elongation   float64 `json:"elongation"`
	Waxing       bool    `json:"waxing"`
}

// TargetExport is a JSON-friendly target report.
type TargetExport struct {
	Name           string  `json:"name"`
	RA             float64 `json:"ra_hours"`
	Dec            float64 `json:"dec"`
	Epoch          string  `json:"epoch"`
	Altitude       float64 `json:"altitude"`
	Azimuth        float64 `json:"azimuth"`
	Tier           string  `json:"tier"`
	MoonSeparation float64 `json:"moon_separation"`
	Rises          bool    `json:"rises"`
	Circumpolar    bool    `json:"circumpolar"`
	CircumpolarMin bool    `json:"circumpolar_above_min"`
}

// ExportSurvey converts a survey to its exportable form.
func ExportSurvey(s *Survey) *SurveyExport {
	if s == nil {
		return &SurveyExport{}
	}

	export := &SurveyExport{
		Time: s.Time.UTC(),
		Site: SiteExport{
			Name:      s.Site.Name,
			Latitude:  s.Site.LatDeg,
			Longitude: s.Site.LonDeg,
			Elevation: s.Site.ElevationM,
		},
		MinAltitude:      s.MinAltitude,
		AbovePolarCircle: s.AbovePolarCircle,
		Moon: MoonExport{
			Name:         s.Moon.Name,
			Illumination: s.Moon.Illumination,
			Elongation:   s.Moon.ElongationDeg,
			Waxing:       s.Moon.Waxing,
		},
		Targets: make([]TargetExport, 0, len(s.Reports)),
	}

	for _, r := range s.Reports {
		export.Targets = append(export.Targets, TargetExport{
			Name:           r.Name,
			RA:             r.Coordinates.RAHours,
			Dec:            r.Coordinates.DecDeg,
			Epoch:          r.Coordinates.Epoch.String(),
			Altitude:       r.Position.AltDeg,
			Azimuth:        r.Position.AzDeg,
			Tier:           r.Tier.String(),
			MoonSeparation: r.MoonSeparation,
			Rises:          r.Rises,
			Circumpolar:    r.Circumpolar,
			CircumpolarMin: r.CircumpolarMin,
		})
	}
	return export
}

// WriteJSON writes the survey as JSON to the given writer.
func (s *SurveyExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// WriteSurveyTable writes a plain text table to the given writer.
func WriteSurveyTable(w io.Writer, s *Survey) {
	if s == nil {
		fmt.Fprintln(w, "No survey")
		return
	}

	fmt.Fprintf(w, "%s (%+.4f, %+.4f) @ %s\n", siteName(s), s.Site.LatDeg, s.Site.LonDeg, s.Time.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "Moon: %s, %.0f%% illuminated\n", s.Moon.Name, s.Moon.Illumination*100)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(s.Reports) == 0 {
		fmt.Fprintln(w, "No targets")
		return
	}

	fmt.Fprintf(w, "%-14s %7s %7s %-7s %6s  %s\n", "Target", "Alt", "Az", "Tier", "Moon", "Visibility")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, r := range s.Reports {
		fmt.Fprintf(w, "%-14s %6.1f° %6.1f° %-7s %5.1f°  %s\n",
			truncateStr(r.Name, 14),
			r.Position.AltDeg,
			r.Position.AzDeg,
			r.Tier,
			r.MoonSeparation,
			visibility(r),
		)
	}

	fmt.Fprintf(w, "\nTotal: %d/%d above horizon, min altitude %.0f°\n", s.VisibleCount(), len(s.Reports), s.MinAltitude)
}

func siteName(s *Survey) string {
	if s.Site.Name == "" {
		return "Observer"
	}
	return s.Site.Name
}

func visibility(r TargetReport) string {
	switch {
	case r.CircumpolarMin:
		return "circumpolar (above min)"
	case r.Circumpolar:
		return "circumpolar"
	case r.Rises:
		return "rises"
	default:
		return "never rises"
	}
}

func truncateStr(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
