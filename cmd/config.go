package cmd

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/gpxtone/gpxtone/mapping"
	"github.com/gpxtone/gpxtone/model"
	"github.com/gpxtone/gpxtone/scale"
	"github.com/gpxtone/gpxtone/sonify"
	"github.com/spf13/cobra"
)

// configFlags mirrors sonify.Config in CLI-friendly form. The same
// spellings are accepted as HTTP query parameters by the serve command.
type configFlags struct {
	tempo        float64
	minutes      float64
	step         float64 // 0 means "derive from minutes and tempo"
	melody       string
	duration     string
	bass         string
	scaleName    string
	durationMode string
	alpha        float64
}

func addConfigFlags(cmd *cobra.Command, f *configFlags) {
	def := sonify.Default()
	cmd.Flags().Float64Var(&f.tempo, "tempo", def.TempoBPM, "tempo in beats per minute")
	cmd.Flags().Float64Var(&f.minutes, "minutes", def.TargetDurationMinutes, "target song length in minutes")
	cmd.Flags().Float64Var(&f.step, "step", 0, "explicit sampling step in meters (overrides --minutes)")
	cmd.Flags().StringVar(&f.melody, "melody", def.MelodySource.String(), "feature driving melody pitch: elevation|speed|cadence")
	cmd.Flags().StringVar(&f.duration, "duration", def.DurationSource.String(), "feature driving note duration: elevation|speed|cadence")
	cmd.Flags().StringVar(&f.bass, "bass", def.BassSource.String(), "feature driving bass pitch: elevation|speed|cadence")
	cmd.Flags().StringVar(&f.scaleName, "scale", "pentatonic", "melody scale: pentatonic|pentatonic-minor|major|minor|chromatic")
	cmd.Flags().StringVar(&f.durationMode, "duration-mode", "continuous", "note length mode: continuous|quantized")
	cmd.Flags().Float64Var(&f.alpha, "alpha", def.SmoothingAlpha, "cadence smoothing factor in (0,1]")
}

func (f *configFlags) toConfig() (sonify.Config, error) {
	cfg := sonify.Default()
	cfg.TempoBPM = f.tempo
	cfg.TargetDurationMinutes = f.minutes
	cfg.SmoothingAlpha = f.alpha

	if f.step != 0 {
		step := f.step
		cfg.StepMeters = &step
	}

	var err error
	if cfg.MelodySource, err = model.ParseFeatureSource(f.melody); err != nil {
		return cfg, err
	}
	if cfg.DurationSource, err = model.ParseFeatureSource(f.duration); err != nil {
		return cfg, err
	}
	if cfg.BassSource, err = model.ParseFeatureSource(f.bass); err != nil {
		return cfg, err
	}
	if cfg.Scale, err = scale.Parse(f.scaleName); err != nil {
		return cfg, err
	}
	if cfg.DurationMode, err = mapping.ParseDurationMode(f.durationMode); err != nil {
		return cfg, err
	}
	// Reject bad numeric knobs here so commands that never run the
	// pipeline (inspect) still refuse them.
	return cfg, cfg.Validate()
}

// configFromQuery maps HTTP query parameters onto a config using the same
// names and defaults as the CLI flags.
func configFromQuery(q url.Values) (sonify.Config, error) {
	f := configFlags{
		tempo:        sonify.Default().TempoBPM,
		minutes:      sonify.Default().TargetDurationMinutes,
		melody:       "elevation",
		duration:     "speed",
		bass:         "cadence",
		scaleName:    "pentatonic",
		durationMode: "continuous",
		alpha:        sonify.Default().SmoothingAlpha,
	}

	for name, dst := range map[string]*float64{
		"tempo":   &f.tempo,
		"minutes": &f.minutes,
		"step":    &f.step,
		"alpha":   &f.alpha,
	} {
		if v := q.Get(name); v != "" {
			parsed, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return sonify.Config{}, fmt.Errorf("bad %s value %q", name, v)
			}
			*dst = parsed
		}
	}
	for name, dst := range map[string]*string{
		"melody":        &f.melody,
		"duration":      &f.duration,
		"bass":          &f.bass,
		"scale":         &f.scaleName,
		"duration_mode": &f.durationMode,
	} {
		if v := q.Get(name); v != "" {
			*dst = v
		}
	}
	return f.toConfig()
}
