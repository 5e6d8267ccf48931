package scene

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// StarExport is the JSON wire representation of one entity: the contract
// between the derivation pipeline and any external consumer.
type StarExport struct {
	ID         int64            `json:"id"`
	Position   PositionExport   `json:"position"`
	Properties PropertiesExport `json:"properties"`
}

// PositionExport is a Cartesian position in parsecs.
type PositionExport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// PropertiesExport carries the measured and derived per-star values.
type PropertiesExport struct {
	RA           float64 `json:"ra"`
	Dec          float64 `json:"dec"`
	DistancePc   float64 `json:"distance_pc"`
	Magnitude    float64 `json:"magnitude"`
	AbsMagnitude float64 `json:"abs_magnitude"`
	Temperature  float64 `json:"temperature"`
	RadiusSolar  float64 `json:"radius_solar"`
	Color        string  `json:"color"`
}

// CatalogExport wraps the full entity sequence.
type CatalogExport struct {
	Stars []StarExport `json:"stars"`
}

// ExportEntities converts entities to the wire representation, preserving
// order.
func ExportEntities(entities []StarEntity) CatalogExport {
	out := CatalogExport{Stars: make([]StarExport, 0, len(entities))}
	for _, e := range entities {
		out.Stars = append(out.Stars, StarExport{
			ID: e.ID,
			Position: PositionExport{
				X: e.Pos.X,
				Y: e.Pos.Y,
				Z: e.Pos.Z,
			},
			Properties: PropertiesExport{
				RA:           e.RAdeg,
				Dec:          e.DecDeg,
				DistancePc:   e.DistancePc,
				Magnitude:    e.Magnitude,
				AbsMagnitude: e.Props.AbsoluteMag,
				Temperature:  e.Props.TemperatureK,
				RadiusSolar:  e.Props.RadiusSolar,
				Color:        e.Props.Class.Hex(),
			},
		})
	}
	return out
}

// WriteJSON writes the wire JSON for the entity set.
func WriteJSON(w io.Writer, entities []StarEntity) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(ExportEntities(entities)); err != nil {
		return fmt.Errorf("encode star export: %w", err)
	}
	return nil
}

// WriteCSV writes the entity set as CSV with a header row, one star per row.
func WriteCSV(w io.Writer, entities []StarEntity) error {
	cw := csv.NewWriter(w)
	header := []string{
		"id", "x", "y", "z",
		"ra", "dec", "distance_pc",
		"magnitude", "abs_magnitude", "temperature_k", "radius_solar", "color",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write CSV header: %w", err)
	}

	for _, e := range entities {
		row := []string{
			strconv.FormatInt(e.ID, 10),
			formatFloat(e.Pos.X),
			formatFloat(e.Pos.Y),
			formatFloat(e.Pos.Z),
			formatFloat(e.RAdeg),
			formatFloat(e.DecDeg),
			formatFloat(e.DistancePc),
			formatFloat(e.Magnitude),
			formatFloat(e.Props.AbsoluteMag),
			formatFloat(e.Props.TemperatureK),
			formatFloat(e.Props.RadiusSolar),
			e.Props.Class.Hex(),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write CSV row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
