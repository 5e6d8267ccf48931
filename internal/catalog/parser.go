package catalog

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// JSON structures matching the TAP sync response format. The service returns
// column metadata and row data as parallel arrays, not keyed objects.

type tapResponse struct {
	Metadata []tapColumn       `json:"metadata"`
	Data     [][]json.RawMessage `json:"data"`
}

type tapColumn struct {
	Name     string `json:"name"`
	Datatype string `json:"datatype"`
}

// Column names recognized in TAP JSON and CSV input.
const (
	colSourceID   = "source_id"
	colRA         = "ra"
	colDec        = "dec"
	colParallax   = "parallax"
	colDistance   = "distance_pc"
	colMagnitude  = "phot_g_mean_mag"
	colColorIndex = "bp_rp"
	colRadialVel  = "radial_velocity"
	colPMRA       = "pmra"
	colPMDec      = "pmdec"
)

// ParseTAPJSON parses a TAP sync JSON response into raw rows. Null or absent
// cells become NaN; rows shorter than the column list are skipped with the
// rest of the batch intact.
func ParseTAPJSON(data []byte) ([]RawRow, error) {
	var resp tapResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("unmarshal TAP JSON: %w", err)
	}

	index := make(map[string]int, len(resp.Metadata))
	for i, col := range resp.Metadata {
		index[strings.ToLower(col.Name)] = i
	}

	rows := make([]RawRow, 0, len(resp.Data))
	for _, cells := range resp.Data {
		row := RawRow{
			SourceID:       cellInt(cells, index, colSourceID),
			RAdeg:          cellFloat(cells, index, colRA),
			DecDeg:         cellFloat(cells, index, colDec),
			ParallaxMas:    cellFloat(cells, index, colParallax),
			DistancePc:     cellFloat(cells, index, colDistance),
			Magnitude:      cellFloat(cells, index, colMagnitude),
			ColorIndex:     cellFloat(cells, index, colColorIndex),
			RadialVelocity: cellFloat(cells, index, colRadialVel),
			PMRA:           cellFloat(cells, index, colPMRA),
			PMDec:          cellFloat(cells, index, colPMDec),
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cellFloat(cells []json.RawMessage, index map[string]int, name string) float64 {
	i, ok := index[name]
	if !ok || i >= len(cells) {
		return math.NaN()
	}
	raw := strings.TrimSpace(string(cells[i]))
	if raw == "" || raw == "null" {
		return math.NaN()
	}
	// TAP services occasionally quote numeric cells.
	raw = strings.Trim(raw, `"`)
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func cellInt(cells []json.RawMessage, index map[string]int, name string) int64 {
	i, ok := index[name]
	if !ok || i >= len(cells) {
		return 0
	}
	raw := strings.Trim(strings.TrimSpace(string(cells[i])), `"`)
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseCSV parses catalog rows from CSV with a header row naming the columns.
// Unknown columns are ignored; missing or unparseable numeric cells become
// NaN and are left to the normalizer to accept or drop.
func ParseCSV(r io.Reader) ([]RawRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var rows []RawRow
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV row: %w", err)
		}
		rows = append(rows, RawRow{
			SourceID:       fieldInt(fields, index, colSourceID),
			RAdeg:          fieldFloat(fields, index, colRA),
			DecDeg:         fieldFloat(fields, index, colDec),
			ParallaxMas:    fieldFloat(fields, index, colParallax),
			DistancePc:     fieldFloat(fields, index, colDistance),
			Magnitude:      fieldFloat(fields, index, colMagnitude),
			ColorIndex:     fieldFloat(fields, index, colColorIndex),
			RadialVelocity: fieldFloat(fields, index, colRadialVel),
			PMRA:           fieldFloat(fields, index, colPMRA),
			PMDec:          fieldFloat(fields, index, colPMDec),
		})
	}
	return rows, nil
}

func fieldFloat(fields []string, index map[string]int, name string) float64 {
	i, ok := index[name]
	if !ok || i >= len(fields) {
		return math.NaN()
	}
	s := strings.TrimSpace(fields[i])
	if s == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

func fieldInt(fields []string, index map[string]int, name string) int64 {
	i, ok := index[name]
	if !ok || i >= len(fields) {
		return 0
	}
	n, err := strconv.ParseInt(strings.TrimSpace(fields[i]), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// ParseFile loads raw rows from a local catalog file, dispatching on the
// extension: .json is treated as a TAP JSON response, .csv as headered CSV.
func ParseFile(path string) ([]RawRow, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		return ParseTAPJSON(data)
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open catalog file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	default:
		return nil, fmt.Errorf("unsupported catalog file type: %s", path)
	}
}
