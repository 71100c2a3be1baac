package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TaskSpec describes one exercise in the session script.
type TaskSpec struct {
	Variant  string `yaml:"variant"` // click | type | combo | arrange
	Prompt   string `yaml:"prompt"`
	Clicks   int    `yaml:"clicks,omitempty"`
	Word     string `yaml:"word,omitempty"`
	Sequence []int  `yaml:"sequence,omitempty"`
}

type Config struct {
	AssetsDir  string  `yaml:"assets_dir"`
	LoopTrack  string  `yaml:"loop_track"`
	CueDir     string  `yaml:"cue_dir"`
	LoopVolume float64 `yaml:"loop_volume"`
	CueVolume  float64 `yaml:"cue_volume"`
	// StartDelaySeconds is how long after the session starts the
	// distraction engine kicks in.
	StartDelaySeconds int        `yaml:"start_delay_seconds"`
	MinCanvasWidth    int        `yaml:"min_canvas_width"`
	MinCanvasHeight   int        `yaml:"min_canvas_height"`
	LogPath           string     `yaml:"log"`
	Mute              bool       `yaml:"mute"`
	Tasks             []TaskSpec `yaml:"tasks,omitempty"`
}

func Default() Config {
	return Config{
		AssetsDir:         "memes",
		LoopTrack:         "na.mp3",
		CueDir:            ".",
		LoopVolume:        0.6,
		CueVolume:         0.05,
		StartDelaySeconds: 15,
		MinCanvasWidth:    20,
		MinCanvasHeight:   8,
		Tasks:             DefaultTasks(),
	}
}

// Load reads the YAML config at path, merged over defaults. An empty path or
// a missing file yields the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if len(cfg.Tasks) == 0 {
		cfg.Tasks = DefaultTasks()
	}
	base := filepath.Dir(path)
	cfg.AssetsDir = resolve(base, cfg.AssetsDir)
	cfg.LoopTrack = resolve(base, cfg.LoopTrack)
	cfg.CueDir = resolve(base, cfg.CueDir)
	if cfg.LogPath != "" {
		cfg.LogPath = resolve(base, cfg.LogPath)
	}
	if err := validateTasks(cfg.Tasks); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DefaultTasks is the built-in session script.
func DefaultTasks() []TaskSpec {
	return []TaskSpec{
		{Variant: "click", Prompt: "Click the button 5 times", Clicks: 5},
		{Variant: "type", Prompt: "Type the word 'focus'", Word: "focus"},
		{Variant: "click", Prompt: "Click the button 3 times", Clicks: 3},
		{Variant: "type", Prompt: "Type the word 'attention'", Word: "attention"},
		{Variant: "arrange", Prompt: "Arrange numbers in ascending order (pick 1, 2, 3)", Sequence: []int{1, 2, 3}},
		{Variant: "combo", Prompt: "Type 'go' and then click 'Target'", Word: "go", Clicks: 1},
		{Variant: "type", Prompt: "Form the word from letters 'c o d e'", Word: "code"},
	}
}

func validateTasks(specs []TaskSpec) error {
	for i, s := range specs {
		switch s.Variant {
		case "click":
			if s.Clicks < 1 {
				return fmt.Errorf("task %d: click variant needs clicks >= 1", i)
			}
		case "type":
			if strings.TrimSpace(s.Word) == "" {
				return fmt.Errorf("task %d: type variant needs a word", i)
			}
		case "combo":
			if strings.TrimSpace(s.Word) == "" {
				return fmt.Errorf("task %d: combo variant needs a word", i)
			}
		case "arrange":
			if len(s.Sequence) == 0 {
				return fmt.Errorf("task %d: arrange variant needs a sequence", i)
			}
		default:
			return fmt.Errorf("task %d: unknown variant %q", i, s.Variant)
		}
	}
	return nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}
