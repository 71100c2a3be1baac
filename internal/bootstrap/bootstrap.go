package bootstrap

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	distractionadapter "github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/adapter/out"
	distractionservice "github.com/sayanthsai/ADHD-simulator/internal/modules/distraction/service"
	taskservice "github.com/sayanthsai/ADHD-simulator/internal/modules/task/service"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/clock"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/config"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/id"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/logging"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/timeline"
	uiapp "github.com/sayanthsai/ADHD-simulator/internal/ui/app"
	canvasview "github.com/sayanthsai/ADHD-simulator/internal/ui/views/canvas"
)

// App holds the wired session components. Constructed once per process.
type App struct {
	Config      config.Config
	Log         *zap.Logger
	Surface     *distractionadapter.CellSurface
	Images      *distractionadapter.DirImageSource
	Audio       *distractionadapter.BeepAudio
	Timeline    *timeline.Loop
	Scheduler   *distractionservice.Scheduler
	Progression *taskservice.Progression
	Cues        []string
}

func New(cfg config.Config, debug bool) (*App, error) {
	log, err := logging.New(cfg.LogPath, debug)
	if err != nil {
		return nil, err
	}

	clk := clock.System{}
	tl := timeline.New(clk)

	surface := distractionadapter.NewCellSurface(id.UUID{}, 80, 24)
	images := distractionadapter.NewDirImageSource(cfg.AssetsDir)
	audio := distractionadapter.NewBeepAudio(log, cfg.LoopVolume, cfg.CueVolume)
	cues := listCues(cfg.CueDir, cfg.LoopTrack)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	sched := distractionservice.NewScheduler(tl, surface, images, audio, clk, cues, rng, log)

	tasks, err := taskservice.Build(cfg.Tasks)
	if err != nil {
		return nil, fmt.Errorf("build tasks: %w", err)
	}
	prog := taskservice.NewProgression(tasks, log)

	return &App{
		Config:      cfg,
		Log:         log,
		Surface:     surface,
		Images:      images,
		Audio:       audio,
		Timeline:    tl,
		Scheduler:   sched,
		Progression: prog,
		Cues:        cues,
	}, nil
}

// listCues collects one-shot audio files from the cue directory, skipping
// the background loop track when it lives in the same directory.
func listCues(dir, loopTrack string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var cues []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".mp3" && ext != ".wav" {
			continue
		}
		full := filepath.Join(dir, e.Name())
		if full == loopTrack {
			continue
		}
		cues = append(cues, full)
	}
	return cues
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Progression, app.Scheduler, app.Audio, app.Timeline, uiapp.Options{
		StartDelay:      time.Duration(app.Config.StartDelaySeconds) * time.Second,
		LoopTrack:       app.Config.LoopTrack,
		Mute:            app.Config.Mute,
		MinCanvasWidth:  app.Config.MinCanvasWidth,
		MinCanvasHeight: app.Config.MinCanvasHeight,
	})
	model.SetCanvas(canvasview.New(app.Surface))
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
