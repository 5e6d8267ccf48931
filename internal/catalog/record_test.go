package catalog

import (
	"errors"
	"math"
	"testing"
)

func validRow() RawRow {
	return RawRow{
		SourceID:       12345,
		RAdeg:          217.39,
		DecDeg:         -62.68,
		ParallaxMas:    768.5,
		DistancePc:     1.301,
		Magnitude:      8.98,
		ColorIndex:     3.80,
		RadialVelocity: -22.4,
		PMRA:           math.NaN(),
		PMDec:          math.NaN(),
	}
}

func TestNormalizeValidRow(t *testing.T) {
	rec, err := Normalize(validRow())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}

	if rec.ID != 12345 {
		t.Errorf("ID = %d, want 12345", rec.ID)
	}
	if rec.DistancePc != 1.301 {
		t.Errorf("DistancePc = %v, want 1.301", rec.DistancePc)
	}
	if rec.Magnitude != 8.98 || rec.ColorIndex != 3.80 {
		t.Errorf("photometry not copied: %+v", rec)
	}
}

func TestNormalizeDerivesDistanceFromParallax(t *testing.T) {
	row := validRow()
	row.DistancePc = math.NaN()
	row.ParallaxMas = 100 // 10 pc

	rec, err := Normalize(row)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if math.Abs(rec.DistancePc-10) > 1e-9 {
		t.Errorf("DistancePc = %v, want 10", rec.DistancePc)
	}
}

func TestNormalizeRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawRow)
	}{
		{"zero distance", func(r *RawRow) { r.DistancePc = 0; r.ParallaxMas = math.NaN() }},
		{"negative distance", func(r *RawRow) { r.DistancePc = -4; r.ParallaxMas = math.NaN() }},
		{"missing distance and parallax", func(r *RawRow) { r.DistancePc = math.NaN(); r.ParallaxMas = math.NaN() }},
		{"negative parallax only", func(r *RawRow) { r.DistancePc = math.NaN(); r.ParallaxMas = -5 }},
		{"missing magnitude", func(r *RawRow) { r.Magnitude = math.NaN() }},
		{"missing color index", func(r *RawRow) { r.ColorIndex = math.NaN() }},
		{"RA below range", func(r *RawRow) { r.RAdeg = -0.001 }},
		{"RA at upper bound", func(r *RawRow) { r.RAdeg = 360 }},
		{"RA NaN", func(r *RawRow) { r.RAdeg = math.NaN() }},
		{"Dec below range", func(r *RawRow) { r.DecDeg = -90.001 }},
		{"Dec above range", func(r *RawRow) { r.DecDeg = 90.001 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := validRow()
			tt.mutate(&row)
			_, err := Normalize(row)
			if !errors.Is(err, ErrInvalidRecord) {
				t.Errorf("error = %v, want ErrInvalidRecord", err)
			}
		})
	}
}

func TestNormalizeAcceptsBoundaryCoordinates(t *testing.T) {
	row := validRow()
	row.RAdeg = 0
	row.DecDeg = 90
	if _, err := Normalize(row); err != nil {
		t.Errorf("RA=0, Dec=90 should be valid: %v", err)
	}

	row.DecDeg = -90
	if _, err := Normalize(row); err != nil {
		t.Errorf("Dec=-90 should be valid: %v", err)
	}
}

func TestNormalizeAllIsolatesBadRows(t *testing.T) {
	good := validRow()
	bad := validRow()
	bad.DistancePc = -1
	bad.ParallaxMas = math.NaN()

	records, dropped := NormalizeAll([]RawRow{good, bad, good, bad, good})
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
	if dropped != 2 {
		t.Errorf("dropped = %d, want 2", dropped)
	}
	// Surviving records keep input order.
	for _, rec := range records {
		if rec.ID != good.SourceID {
			t.Errorf("unexpected record %+v", rec)
		}
	}
}
