package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gpxtone",
	Short: "Turns recorded GPS trails into multi-track MIDI scores",
	Long: `gpxtone resamples a GPX trail at regular distance intervals and maps
elevation, speed and step cadence onto melody, note durations, bass and
percussion, producing a Standard MIDI File.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
