// Package scene assembles derived star entities into a renderable point
// field and owns the interactive camera, selection and picking state.
package scene

import (
	"github.com/litescript/ls-starfield/internal/astro"
	"github.com/litescript/ls-starfield/internal/catalog"
	"github.com/litescript/ls-starfield/internal/photometry"
)

// StarEntity is one renderable star: identifier, Euclidean position and
// derived physical properties. Immutable once built; it lives for the session
// until a fresh catalog batch replaces the whole set.
type StarEntity struct {
	ID         int64
	Pos        astro.Vec3 // parsecs
	RAdeg      float64
	DecDeg     float64
	DistancePc float64
	Magnitude  float64 // apparent
	Props      photometry.Properties
}

// Build derives entities from validated catalog records: spatial transform
// plus photometric estimation. Records with degenerate photometry are dropped
// individually; the rest of the batch survives. Returns the entities in input
// order and the number of records dropped.
func Build(records []catalog.Record) ([]StarEntity, int) {
	entities := make([]StarEntity, 0, len(records))
	dropped := 0

	for _, rec := range records {
		props, err := photometry.Estimate(rec.Magnitude, rec.ColorIndex, rec.DistancePc)
		if err != nil {
			dropped++
			continue
		}

		entities = append(entities, StarEntity{
			ID: rec.ID,
			Pos: astro.EquatorialToCartesian(astro.Equatorial{
				RAdeg:      rec.RAdeg,
				DecDeg:     rec.DecDeg,
				DistancePc: rec.DistancePc,
			}),
			RAdeg:      rec.RAdeg,
			DecDeg:     rec.DecDeg,
			DistancePc: rec.DistancePc,
			Magnitude:  rec.Magnitude,
			Props:      props,
		})
	}

	return entities, dropped
}
