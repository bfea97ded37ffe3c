package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "talkingscores",
	Short: "Describes musical scores in words",
	Long:  `Turns MusicXML and MIDI scores into spoken-style text descriptions, focused on the repetition within each part.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
