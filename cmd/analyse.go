package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dbuik1/talkingscores/analyse"
	"github.com/dbuik1/talkingscores/midifile"
	"github.com/dbuik1/talkingscores/model"
	"github.com/dbuik1/talkingscores/musicxml"
	"github.com/dbuik1/talkingscores/options"
	"github.com/dbuik1/talkingscores/util"
)

var (
	optionsPath string
	showBars    bool
)

func init() {
	analyseCmd.Flags().StringVar(&optionsPath, "options", "", "path to a YAML options file")
	analyseCmd.Flags().BoolVar(&showBars, "bars", false, "also print the per-bar repetition context")
	rootCmd.AddCommand(analyseCmd)
}

var analyseCmd = &cobra.Command{
	Use:   "analyse <score file>",
	Short: "Describes one score",
	Long:  `Describes one score. Reads .musicxml, .xml, .mxl and .mid files.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyse(args[0])
	},
}

func runAnalyse(path string) error {
	opts, err := options.Load(optionsPath)
	if err != nil {
		return err
	}

	score, err := ReadScore(path)
	if err != nil {
		return err
	}
	opts.Apply(score)

	analyser := analyse.NewAnalyser(opts.Describe())
	analyser.SetScore(score)

	if score.Title != "" {
		fmt.Printf("%v\n", score.Title)
	}
	if score.Composer != "" {
		fmt.Printf("by %v\n", score.Composer)
	}
	fmt.Printf("%v\n", analyser.GeneralSummary)

	for i, name := range analyser.PartNames {
		fmt.Printf("\n%v:\n%v\n", name, analyser.SummaryParts[i])
		if !showBars {
			continue
		}
		ctx := analyser.Parts[i].DescribeRepetitionInContext()
		for _, bar := range util.SortedKeys(ctx) {
			fmt.Printf("  bar %v: %v\n", bar, ctx[bar])
		}
	}
	return nil
}

// ReadScore picks the reader from the file extension.
func ReadScore(path string) (*model.Score, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mid", ".midi":
		return midifile.ReadFile(path)
	default:
		return musicxml.ParseFile(path)
	}
}
