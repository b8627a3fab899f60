package plan

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/litescript/ls-skyplan/internal/astro"
)

func exportFixture() *Survey {
	return &Survey{
		Site:        astro.ObserverInfo{LatDeg: 35.4267, LonDeg: -116.89, ElevationM: 1000, Name: "Goldstone"},
		Time:        time.Date(2024, 1, 15, 10, 30, 0, 0, time.FixedZone("PST", -8*3600)),
		MinAltitude: 10,
		Moon:        astro.MoonPhase{Name: "Waxing Crescent", Illumination: 0.2, ElongationDeg: 53, Waxing: true},
		Reports: []TargetReport{
			{
				Target:   Target{Name: "Vega", Coordinates: astro.Coordinates{RAHours: 18.6156, DecDeg: 38.7837}},
				Position: astro.HorizontalCoordinate{AltDeg: 42.5, AzDeg: 301.2},
				Tier:     astro.AltitudeMedium,
				Rises:    true,
			},
			{
				Target:   Target{Name: "Acrux", Coordinates: astro.Coordinates{RAHours: 12.4433, DecDeg: -63.0991}},
				Position: astro.HorizontalCoordinate{AltDeg: -30},
				Tier:     astro.AltitudeNone,
			},
		},
	}
}

func TestExportSurvey(t *testing.T) {
	export := ExportSurvey(exportFixture())

	if export.Time.Location() != time.UTC {
		t.Errorf("Time location = %v, want UTC", export.Time.Location())
	}
	if export.Site.Name != "Goldstone" || export.Site.Elevation != 1000 {
		t.Errorf("Site = %+v", export.Site)
	}
	if len(export.Targets) != 2 {
		t.Fatalf("Targets count = %d, want 2", len(export.Targets))
	}

	vega := export.Targets[0]
	if vega.Name != "Vega" || vega.Tier != "medium" || vega.Epoch != "J2000" || !vega.Rises {
		t.Errorf("Vega export = %+v", vega)
	}
	if export.Targets[1].Tier != "below" {
		t.Errorf("Acrux tier = %q, want below", export.Targets[1].Tier)
	}
}

func TestExportSurvey_Nil(t *testing.T) {
	export := ExportSurvey(nil)
	if export == nil || len(export.Targets) != 0 {
		t.Errorf("nil survey export = %+v", export)
	}
}

func TestSurveyExport_WriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := ExportSurvey(exportFixture()).WriteJSON(&buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	for _, key := range []string{"time", "site", "moon", "targets", "min_altitude"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("missing key %q", key)
		}
	}
	if !strings.Contains(buf.String(), `"circumpolar_above_min": false`) {
		t.Error("expected indented circumpolar_above_min field")
	}
}

func TestWriteSurveyTable(t *testing.T) {
	var buf bytes.Buffer
	WriteSurveyTable(&buf, exportFixture())
	out := buf.String()

	for _, want := range []string{
		"Goldstone",
		"2024-01-15T18:30:00Z",
		"Waxing Crescent, 20% illuminated",
		"Vega",
		"42.5°",
		"never rises",
		"Total: 1/2 above horizon",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestWriteSurveyTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	WriteSurveyTable(&buf, nil)
	if !strings.Contains(buf.String(), "No survey") {
		t.Errorf("got %q", buf.String())
	}

	buf.Reset()
	WriteSurveyTable(&buf, &Survey{})
	if !strings.Contains(buf.String(), "No targets") || !strings.Contains(buf.String(), "Observer") {
		t.Errorf("got %q", buf.String())
	}
}

func TestTruncateStr(t *testing.T) {
	if got := truncateStr("Alpha Centauri A", 14); got != "Alpha Centaur…" {
		t.Errorf("truncateStr = %q", got)
	}
	if got := truncateStr("Vega", 14); got != "Vega" {
		t.Errorf("truncateStr = %q", got)
	}
}
