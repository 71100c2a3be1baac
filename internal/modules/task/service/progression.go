package service

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/task/domain"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/config"
)

// Build turns the configured session script into concrete tasks.
func Build(specs []config.TaskSpec) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(specs))
	for i, s := range specs {
		switch s.Variant {
		case "click":
			tasks = append(tasks, domain.NewClickTask(s.Prompt, s.Clicks))
		case "type":
			tasks = append(tasks, domain.NewTypeTask(s.Prompt, s.Word))
		case "combo":
			tasks = append(tasks, domain.NewComboTask(s.Prompt, s.Word, s.Clicks))
		case "arrange":
			tasks = append(tasks, domain.NewArrangeTask(s.Prompt, s.Sequence))
		default:
			return nil, fmt.Errorf("task %d: unknown variant %q", i, s.Variant)
		}
	}
	return tasks, nil
}

// Progression wraps the controller with lifecycle logging.
type Progression struct {
	ctrl *domain.Controller
	log  *zap.Logger
}

func NewProgression(tasks []domain.Task, log *zap.Logger) *Progression {
	if log == nil {
		log = zap.NewNop()
	}
	return &Progression{ctrl: domain.NewController(tasks), log: log}
}

func (p *Progression) Start() error {
	if err := p.ctrl.Start(); err != nil {
		p.log.Warn("progression start rejected", zap.Error(err))
		return err
	}
	p.log.Info("progression started", zap.Int("tasks", p.ctrl.Total()))
	return nil
}

func (p *Progression) HandleInput(in domain.Input) domain.Progress {
	out := p.ctrl.HandleInput(in)
	if out.Advanced {
		p.log.Info("task completed", zap.Int("next_index", p.ctrl.Index()), zap.Bool("ended", out.Ended))
	}
	return out
}

func (p *Progression) Phase() domain.Phase { return p.ctrl.Phase() }
func (p *Progression) Index() int          { return p.ctrl.Index() }
func (p *Progression) Total() int          { return p.ctrl.Total() }
func (p *Progression) Current() domain.Task { return p.ctrl.Current() }
func (p *Progression) Status() string       { return p.ctrl.Status() }
