package scene

import (
	"github.com/litescript/ls-starfield/internal/photometry"
)

// Render size bounds. Stellar radii span orders of magnitude; clamping keeps
// giants from swamping the field and dwarfs from vanishing.
const (
	RenderSizeScale = 0.3
	MinRenderSize   = 0.1
	MaxRenderSize   = 2.0
)

// BandSet is the set of enabled visibility bands.
type BandSet [photometry.NumBands]bool

// AllBands returns a set with every band enabled.
func AllBands() BandSet {
	return BandSet{true, true, true}
}

// Enabled reports whether a band is enabled. Out-of-range bands are never
// enabled.
func (s BandSet) Enabled(b photometry.Band) bool {
	if b < 0 || int(b) >= len(s) {
		return false
	}
	return s[b]
}

// With returns a copy of the set with one band toggled to the given state.
// An out-of-range band is a no-op, not an error.
func (s BandSet) With(b photometry.Band, on bool) BandSet {
	if b < 0 || int(b) >= len(s) {
		return s
	}
	s[b] = on
	return s
}

// VisibleStar is a buffer entry: the entity plus its clamped render size and
// its index into the full entity set.
type VisibleStar struct {
	StarEntity
	RenderSize  float64
	SourceIndex int
}

// Buffer is the ordered subsequence of entities whose band is enabled. A
// Buffer is never mutated in place: any filter or entity-set change builds a
// new one, so a render pass never observes a half-built buffer.
type Buffer struct {
	stars []VisibleStar
	bands BandSet
}

// BuildBuffer filters the full entity set by the enabled bands, preserving
// relative order. O(n) over the entity set.
func BuildBuffer(entities []StarEntity, bands BandSet) Buffer {
	stars := make([]VisibleStar, 0, len(entities))
	for i, e := range entities {
		if !bands.Enabled(e.Props.Class.Band()) {
			continue
		}
		stars = append(stars, VisibleStar{
			StarEntity:  e,
			RenderSize:  renderSize(e.Props.RadiusSolar),
			SourceIndex: i,
		})
	}
	return Buffer{stars: stars, bands: bands}
}

// Visible returns the filtered stars in order. Callers must not mutate the
// returned slice.
func (b Buffer) Visible() []VisibleStar {
	return b.stars
}

// Len returns the number of visible stars.
func (b Buffer) Len() int {
	return len(b.stars)
}

// Bands returns the filter set the buffer was built with.
func (b Buffer) Bands() BandSet {
	return b.bands
}

func renderSize(radiusSolar float64) float64 {
	size := radiusSolar * RenderSizeScale
	if size < MinRenderSize {
		return MinRenderSize
	}
	if size > MaxRenderSize {
		return MaxRenderSize
	}
	return size
}
