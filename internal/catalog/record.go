// Package catalog provides fetching, parsing and validation of astronomical
// catalog rows. Raw rows are loosely shaped (missing fields are NaN); the
// normalizer rejects anything that does not fit the fixed Record shape.
package catalog

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRecord marks a raw row that failed range or presence validation.
// Invalid rows are dropped individually; one bad row never aborts a batch.
var ErrInvalidRecord = errors.New("invalid catalog record")

// RawRow is one unvalidated catalog row. Absent numeric fields are NaN.
type RawRow struct {
	SourceID   int64
	RAdeg      float64
	DecDeg     float64
	ParallaxMas float64 // milliarcseconds, NaN when absent
	DistancePc float64  // NaN when absent; derived from parallax if possible
	Magnitude  float64  // apparent magnitude, NaN when absent
	ColorIndex float64  // NaN when absent

	// Optional kinematics, NaN when absent.
	RadialVelocity float64 // km/s
	PMRA           float64 // mas/yr
	PMDec          float64 // mas/yr
}

// Record is a validated, fixed-shape catalog measurement. All required
// fields are present and range-checked; optional kinematics may stay NaN.
type Record struct {
	ID         int64
	RAdeg      float64 // [0, 360)
	DecDeg     float64 // [-90, 90]
	DistancePc float64 // > 0
	Magnitude  float64
	ColorIndex float64

	RadialVelocity float64
	PMRA           float64
	PMDec          float64
}

// Normalize validates and reshapes one raw row into a Record.
//
// It fails with ErrInvalidRecord when the distance is absent or non-positive
// (after falling back to 1000/parallax when only a parallax is present), when
// the apparent magnitude or color index is missing, or when RA/Dec fall
// outside [0,360) / [-90,90]. No side effects.
func Normalize(row RawRow) (Record, error) {
	dist := row.DistancePc
	if math.IsNaN(dist) && !math.IsNaN(row.ParallaxMas) && row.ParallaxMas > 0 {
		dist = 1000.0 / row.ParallaxMas
	}
	if math.IsNaN(dist) || dist <= 0 {
		return Record{}, fmt.Errorf("%w: source %d: distance %g pc", ErrInvalidRecord, row.SourceID, dist)
	}

	if math.IsNaN(row.Magnitude) {
		return Record{}, fmt.Errorf("%w: source %d: missing apparent magnitude", ErrInvalidRecord, row.SourceID)
	}
	if math.IsNaN(row.ColorIndex) {
		return Record{}, fmt.Errorf("%w: source %d: missing color index", ErrInvalidRecord, row.SourceID)
	}

	if math.IsNaN(row.RAdeg) || row.RAdeg < 0 || row.RAdeg >= 360 {
		return Record{}, fmt.Errorf("%w: source %d: RA %g out of [0,360)", ErrInvalidRecord, row.SourceID, row.RAdeg)
	}
	if math.IsNaN(row.DecDeg) || row.DecDeg < -90 || row.DecDeg > 90 {
		return Record{}, fmt.Errorf("%w: source %d: Dec %g out of [-90,90]", ErrInvalidRecord, row.SourceID, row.DecDeg)
	}

	return Record{
		ID:             row.SourceID,
		RAdeg:          row.RAdeg,
		DecDeg:         row.DecDeg,
		DistancePc:     dist,
		Magnitude:      row.Magnitude,
		ColorIndex:     row.ColorIndex,
		RadialVelocity: row.RadialVelocity,
		PMRA:           row.PMRA,
		PMDec:          row.PMDec,
	}, nil
}

// NormalizeAll validates a batch of raw rows, dropping invalid ones. It
// returns the surviving records in input order and the number dropped.
func NormalizeAll(rows []RawRow) ([]Record, int) {
	records := make([]Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		rec, err := Normalize(row)
		if err != nil {
			dropped++
			continue
		}
		records = append(records, rec)
	}
	return records, dropped
}
