package photometry

// SpectralClass is a seven-bucket discrete classification by effective
// temperature, loosely following the O/B/A/F/G/K/M sequence. Each class maps
// to one fixed display color.
type SpectralClass int

const (
	ClassHottest SpectralClass = iota // O-type, blue
	ClassHot                          // B-type, blue-white
	ClassWarm                         // A-type, white
	ClassMild                         // F-type, yellow-white
	ClassSunlike                      // G-type, yellow
	ClassCool                         // K-type, orange
	ClassCoolest                      // M-type, red
)

// Band is the coarse three-way visibility grouping used for scene filtering.
type Band int

const (
	BandBlue Band = iota
	BandWhite
	BandYellowRed

	// NumBands is the number of filter bands.
	NumBands = 3
)

// ClassifyTemperature buckets an effective temperature into a spectral class.
// Comparisons are strict greater-than, evaluated hottest-first, so a
// temperature exactly on a boundary falls into the cooler bucket.
func ClassifyTemperature(tempK float64) SpectralClass {
	switch {
	case tempK > 30000:
		return ClassHottest
	case tempK > 10000:
		return ClassHot
	case tempK > 7500:
		return ClassWarm
	case tempK > 6000:
		return ClassMild
	case tempK > 5200:
		return ClassSunlike
	case tempK > 3700:
		return ClassCool
	default:
		return ClassCoolest
	}
}

// Hex returns the fixed display color for the class as "#rrggbb".
func (c SpectralClass) Hex() string {
	switch c {
	case ClassHottest:
		return "#9bb0ff"
	case ClassHot:
		return "#aabfff"
	case ClassWarm:
		return "#cad7ff"
	case ClassMild:
		return "#f8f7ff"
	case ClassSunlike:
		return "#fff4ea"
	case ClassCool:
		return "#ffd2a1"
	default:
		return "#ffcc6f"
	}
}

// Band collapses the seven classes into the three-way visibility grouping.
// The mapping is total: every class belongs to exactly one band.
func (c SpectralClass) Band() Band {
	switch c {
	case ClassHottest, ClassHot:
		return BandBlue
	case ClassWarm, ClassMild:
		return BandWhite
	default:
		return BandYellowRed
	}
}

// String implements fmt.Stringer.
func (c SpectralClass) String() string {
	switch c {
	case ClassHottest:
		return "hottest"
	case ClassHot:
		return "hot"
	case ClassWarm:
		return "warm"
	case ClassMild:
		return "mild"
	case ClassSunlike:
		return "sunlike"
	case ClassCool:
		return "cool"
	default:
		return "coolest"
	}
}

// String implements fmt.Stringer.
func (b Band) String() string {
	switch b {
	case BandBlue:
		return "blue"
	case BandWhite:
		return "white"
	default:
		return "yellow/red"
	}
}

// ParseBand maps a configuration string to a Band. The second return value is
// false for unrecognized names.
func ParseBand(s string) (Band, bool) {
	switch s {
	case "blue":
		return BandBlue, true
	case "white":
		return BandWhite, true
	case "yellow/red", "yellow-red", "yellowred":
		return BandYellowRed, true
	default:
		return 0, false
	}
}
