package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sayanthsai/ADHD-simulator/internal/bootstrap"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	configPath string
	assetsDir  string
	logPath    string
	mute       bool
	debug      bool
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "focussim",
		Short:         "ADHD focus simulator: finish the exercises while the screen fights back",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "YAML config path")
	root.PersistentFlags().StringVar(&flags.assetsDir, "assets", "", "override image asset directory")
	root.PersistentFlags().StringVar(&flags.logPath, "log", "", "override log file path")
	root.PersistentFlags().BoolVar(&flags.mute, "mute", false, "disable all audio")
	root.PersistentFlags().BoolVar(&flags.debug, "debug", false, "debug logging")

	root.AddCommand(newRunCmd(flags))
	root.AddCommand(newTasksCmd(flags))
	root.AddCommand(newAssetsCmd(flags))
	root.AddCommand(newDoctorCmd(flags))
	return root
}

func loadConfig(flags *rootFlags) (config.Config, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if flags.assetsDir != "" {
		cfg.AssetsDir = flags.assetsDir
	}
	if flags.logPath != "" {
		cfg.LogPath = flags.logPath
	}
	if flags.mute {
		cfg.Mute = true
	}
	return cfg, nil
}

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the simulator session",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg, flags.debug)
			if err != nil {
				return err
			}
			defer func() { _ = app.Log.Sync() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newTasksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Print the session exercise script",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			for i, t := range cfg.Tasks {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", i+1, t.Variant, t.Prompt)
			}
			return nil
		},
	}
}

func newAssetsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List discovered image and audio assets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg, flags.debug)
			if err != nil {
				return err
			}
			images := app.Images.List()
			if len(images) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no images in %s\n", cfg.AssetsDir)
			}
			for _, name := range images {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "image\t%s\n", name)
			}
			if len(app.Cues) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no audio cues in %s\n", cfg.CueDir)
			}
			for _, cue := range app.Cues {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "cue\t%s\n", cue)
			}
			return nil
		},
	}
}

func newDoctorCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that assets, audio, and config are usable",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			app, err := bootstrap.New(cfg, flags.debug)
			if err != nil {
				return err
			}

			failed := false
			report := func(name string, ok bool, details string) {
				marker := "OK"
				if !ok {
					marker = "FAIL"
					failed = true
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", marker, name, details)
			}

			images := app.Images.List()
			report("images", len(images) > 0, fmt.Sprintf("%d assets in %s", len(images), cfg.AssetsDir))
			report("audio backend", app.Audio.Ready() || cfg.Mute, audioDetails(app, cfg))

			_, loopErr := os.Stat(cfg.LoopTrack)
			report("loop track", loopErr == nil || cfg.Mute, cfg.LoopTrack)
			report("cues", len(app.Cues) > 0 || cfg.Mute, fmt.Sprintf("%d files in %s", len(app.Cues), cfg.CueDir))
			report("tasks", len(cfg.Tasks) > 0, fmt.Sprintf("%d exercises", len(cfg.Tasks)))

			if failed {
				return fmt.Errorf("doctor found failing checks")
			}
			return nil
		},
	}
}

func audioDetails(app *bootstrap.App, cfg config.Config) string {
	parts := []string{}
	if cfg.Mute {
		parts = append(parts, "muted")
	}
	if app.Audio.Ready() {
		parts = append(parts, "speaker initialized")
	} else {
		parts = append(parts, "speaker unavailable")
	}
	return strings.Join(parts, ", ")
}
