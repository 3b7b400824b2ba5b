// Command driftdemo runs the drift portfolio views in a window: a hero intro
// that hands off to a snapping project slider, a traced experience path, and
// a velocity-driven marquee on the native page scroll.
package main

import (
	"fmt"
	"os"

	"github.com/phanxgames/drift"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	presetFile string
	startView  string
	scriptFile string
	debug      bool
	width      int
	height     int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "driftdemo",
	Short: "Scroll-driven portfolio demo for drift",
	Long: `Opens a window with one of the portfolio views.

Scroll with the wheel, touch, arrow or page keys. Tab cycles views.
Views: hero, slider, experience, marquee.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		drift.SetLogger(logger.Named("drift"))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runDemo,
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the controller presets and their parameters",
	RunE: func(cmd *cobra.Command, args []string) error {
		presets, err := loadPresets()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range drift.PresetNames(presets) {
			cfg := presets[name]
			fmt.Fprintf(out, "%-12s bounds=[%g, %g] alpha=%g", name, cfg.Bounds.Min, cfg.Bounds.Max, cfg.Alpha)
			if cfg.Snap.StepSize > 0 {
				fmt.Fprintf(out, " snap=%g/%gs", cfg.Snap.StepSize, cfg.Snap.Duration)
			}
			for _, t := range cfg.Thresholds {
				fmt.Fprintf(out, " %s@%g±%g", t.Name, t.At, t.Hysteresis)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&presetFile, "preset-file", "", "YAML presets replacing the embedded ones")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.Flags().StringVar(&startView, "view", "hero", "view to open (hero, slider, experience, marquee)")
	rootCmd.Flags().StringVar(&scriptFile, "script", "", "YAML input script to replay")
	rootCmd.Flags().IntVar(&width, "width", 960, "window width")
	rootCmd.Flags().IntVar(&height, "height", 600, "window height")

	rootCmd.AddCommand(presetsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadPresets() (map[string]drift.Config, error) {
	if presetFile == "" {
		return drift.DefaultPresets()
	}
	data, err := os.ReadFile(presetFile)
	if err != nil {
		return nil, fmt.Errorf("read presets: %w", err)
	}
	return drift.LoadPresets(data)
}

func runDemo(cmd *cobra.Command, args []string) error {
	presets, err := loadPresets()
	if err != nil {
		return err
	}
	for _, name := range []string{"hero", "slider", "experience"} {
		if _, ok := presets[name]; !ok {
			return fmt.Errorf("preset %q missing", name)
		}
	}
	if !knownView(startView) {
		return fmt.Errorf("unknown view %q", startView)
	}

	stage := drift.NewStage()
	stage.ClearColor = colorBackground
	stage.SetDebugMode(debug)

	if scriptFile != "" {
		data, err := os.ReadFile(scriptFile)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err := drift.LoadTestScript(data)
		if err != nil {
			return err
		}
		stage.SetTestRunner(runner)
	}

	a := newApp(stage, presets, float64(width), float64(height))
	if err := a.switchTo(startView); err != nil {
		return err
	}
	logger.Info("starting demo", zap.String("view", startView), zap.Int("width", width), zap.Int("height", height))

	return drift.Run(stage, drift.RunConfig{
		Title:  "drift demo",
		Width:  width,
		Height: height,
	})
}
