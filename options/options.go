// Package options loads per-user description preferences from a YAML file
// and applies them to a score before analysis.
package options

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dbuik1/talkingscores/describe"
	"github.com/dbuik1/talkingscores/model"
)

type Options struct {
	// RhythmDescription picks the note length vocabulary: british, american
	// or none.
	RhythmDescription string `yaml:"rhythmDescription"`
	// DotPosition says the dot before or after the note length.
	DotPosition string `yaml:"dotPosition"`
	// Instruments restricts the analysis to the named instruments. Empty
	// selects every instrument.
	Instruments []string `yaml:"instruments"`
}

func Default() Options {
	return Options{
		RhythmDescription: "british",
		DotPosition:       "before",
	}
}

// Load reads options from a YAML file. A missing file yields the defaults.
func Load(path string) (Options, error) {
	opts := Default()
	dat, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("reading options file: %w", err)
	}
	if err := yaml.Unmarshal(dat, &opts); err != nil {
		return opts, fmt.Errorf("parsing options file: %w", err)
	}
	return opts, nil
}

// Describe maps the options onto the rendering configuration. Unrecognized
// values fall back to the defaults.
func (o Options) Describe() describe.Config {
	cfg := describe.DefaultConfig()
	switch strings.ToLower(o.RhythmDescription) {
	case "american":
		cfg.RhythmDescription = describe.RhythmAmerican
	case "none":
		cfg.RhythmDescription = describe.RhythmNone
	}
	if strings.ToLower(o.DotPosition) == "after" {
		cfg.DotPosition = describe.DotAfter
	}
	return cfg
}

// Apply marks the selected instruments on the score. Names are matched case
// insensitively; an empty selection keeps every instrument selected.
func (o Options) Apply(score *model.Score) {
	if len(o.Instruments) == 0 {
		return
	}
	wanted := make(map[string]bool)
	for _, name := range o.Instruments {
		wanted[strings.ToLower(name)] = true
	}
	for i := range score.Instruments {
		score.Instruments[i].Selected = wanted[strings.ToLower(score.Instruments[i].Name)]
	}
}
