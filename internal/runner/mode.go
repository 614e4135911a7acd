package runner

// Mode names the dispatch strategy of a run.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModePaced Mode = "paced"
	ModeBurst Mode = "burst"
)

// PacedRateThreshold is the highest rate served by the paced sender.
const PacedRateThreshold = 100

// SelectMode returns ModePaced for rates up to and including
// PacedRateThreshold and ModeBurst above it.
func SelectMode(rate int) Mode {
	if rate <= PacedRateThreshold {
		return ModePaced
	}
	return ModeBurst
}

// Resolve turns ModeAuto into a concrete mode for the given rate.
func (m Mode) Resolve(rate int) Mode {
	switch m {
	case ModePaced, ModeBurst:
		return m
	default:
		return SelectMode(rate)
	}
}
