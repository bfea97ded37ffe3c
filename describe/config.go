// Package describe renders counts, percentages and repetition structures into
// calibrated natural-language phrases.
package describe

// Rhythm description styles.
const (
	RhythmBritish  = "british"
	RhythmAmerican = "american"
	RhythmNone     = "none"
)

// Dot positions for tempo referents.
const (
	DotBefore = "before"
	DotAfter  = "after"
)

// Config is the immutable rendering configuration threaded through every
// describing call.
type Config struct {
	RhythmDescription string
	DotPosition       string
}

func DefaultConfig() Config {
	return Config{
		RhythmDescription: RhythmBritish,
		DotPosition:       DotBefore,
	}
}
