package cmd

import (
	"fmt"

	"github.com/gpxtone/gpxtone/geo"
	"github.com/gpxtone/gpxtone/gpx"
	"github.com/spf13/cobra"
)

var inspectFlags configFlags

func init() {
	addConfigFlags(inspectCmd, &inspectFlags)
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <trail.gpx>",
	Short: "Prints trail geometry and the sampling the current flags would produce",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func runInspect(path string) error {
	cfg, err := inspectFlags.toConfig()
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

	step := cfg.Step(geom)
	fmt.Printf("name: %v\n", trail.Name)
	fmt.Printf("points: %v\n", len(trail.Points))
	fmt.Printf("total distance: %.2f km\n", geom.TotalDistanceMeters/1000)
	fmt.Printf("elevation: %.1f m .. %.1f m (range %.1f m)\n",
		geom.MinElevation, geom.MaxElevation, geom.ElevationRange)
	fmt.Printf("step: %.2f m\n", step)
	fmt.Printf("projected events: %v\n", int(geom.TotalDistanceMeters/step))
	return nil
}
