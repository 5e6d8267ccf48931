package scene

import (
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/litescript/ls-starfield/internal/photometry"
)

// WriteSummary prints a plain-text batch summary for headless mode.
func WriteSummary(w io.Writer, entities []StarEntity, dropped int, fetchedAt time.Time) {
	fmt.Fprintf(w, "Star catalog batch · %s\n", fetchedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "  stars: %d  dropped: %d\n", len(entities), dropped)
	if len(entities) == 0 {
		return
	}

	var bandCounts [photometry.NumBands]int
	minDist := math.Inf(1)
	maxDist := math.Inf(-1)
	for _, e := range entities {
		bandCounts[e.Props.Class.Band()]++
		if e.DistancePc < minDist {
			minDist = e.DistancePc
		}
		if e.DistancePc > maxDist {
			maxDist = e.DistancePc
		}
	}

	fmt.Fprintf(w, "  distance: %.2f to %.2f pc\n", minDist, maxDist)
	for b := 0; b < photometry.NumBands; b++ {
		fmt.Fprintf(w, "  %-11s %d\n", photometry.Band(b).String(), bandCounts[b])
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %-22s %9s %8s %8s %7s  %s\n", "ID", "DIST(pc)", "MAG", "TEMP(K)", "R(sol)", "CLASS")
	nearest := nearestByDistance(entities, 10)
	for _, e := range nearest {
		fmt.Fprintf(w, "  %-22d %9.2f %8.2f %8.0f %7.2f  %s\n",
			e.ID, e.DistancePc, e.Magnitude, e.Props.TemperatureK, e.Props.RadiusSolar, e.Props.Class)
	}
}

// nearestByDistance returns up to n entities sorted by distance without
// mutating the input slice.
func nearestByDistance(entities []StarEntity, n int) []StarEntity {
	sorted := make([]StarEntity, len(entities))
	copy(sorted, entities)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].DistancePc < sorted[j].DistancePc
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
