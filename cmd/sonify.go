package cmd

import (
	"fmt"
	"strings"

	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/gpx"
	"github.com/gpxtone/gpxtone/midi"
	"github.com/gpxtone/gpxtone/sonify"
	"github.com/spf13/cobra"
)

var sonifyFlags configFlags
var sonifyOut string

func init() {
	addConfigFlags(sonifyCmd, &sonifyFlags)
	sonifyCmd.Flags().StringVarP(&sonifyOut, "out", "o", "", "output .mid path (default: input name with .mid)")
	rootCmd.AddCommand(sonifyCmd)
}

var sonifyCmd = &cobra.Command{
	Use:   "sonify <trail.gpx>",
	Short: "Converts a GPX trail into a MIDI file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSonify(args[0])
	},
}

func runSonify(path string) error {
	cfg, err := sonifyFlags.toConfig()
	if err != nil {
		return err
	}

	trail, err := gpx.ParseFile(path)
	if err != nil {
		return err
	}

	geom, err := geo.Compute(trail.Points)
	if err != nil {
		return err
	}
	fmt.Printf("Total distance: %.2f km. Sampling every %.2f meters per note.\n",
		geom.TotalDistanceMeters/1000, cfg.Step(geom))

	s, err := sonify.Sonify(trail, cfg)
	if err != nil {
		return err
	}

	out := sonifyOut
	if out == "" {
		out = strings.TrimSuffix(path, ".gpx") + ".mid"
	}
	if err := midi.WriteFile(s, out); err != nil {
		return err
	}

	fmt.Printf("Wrote %v notes to %v. Final musical length: %.2f minutes.\n",
		s.NumNotes(), out, s.End()/s.Tempo)
	return nil
}
