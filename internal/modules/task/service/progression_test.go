package service

import (
	"testing"

	"github.com/sayanthsai/ADHD-simulator/internal/modules/task/domain"
	"github.com/sayanthsai/ADHD-simulator/internal/platform/config"
)

func TestBuildDefaultScript(t *testing.T) {
	t.Parallel()

	tasks, err := Build(config.DefaultTasks())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(tasks) != 7 {
		t.Fatalf("tasks = %d, want 7", len(tasks))
	}
	if _, ok := tasks[0].(*domain.ClickTask); !ok {
		t.Fatalf("task 0 is %T, want *domain.ClickTask", tasks[0])
	}
	if _, ok := tasks[4].(*domain.ArrangeTask); !ok {
		t.Fatalf("task 4 is %T, want *domain.ArrangeTask", tasks[4])
	}
	if _, ok := tasks[5].(*domain.ComboTask); !ok {
		t.Fatalf("task 5 is %T, want *domain.ComboTask", tasks[5])
	}
}

func TestBuildRejectsUnknownVariant(t *testing.T) {
	t.Parallel()

	if _, err := Build([]config.TaskSpec{{Variant: "juggle", Prompt: "x"}}); err == nil {
		t.Fatal("Build accepted unknown variant")
	}
}

func TestProgressionRunsScriptToCompletion(t *testing.T) {
	t.Parallel()

	tasks, err := Build([]config.TaskSpec{
		{Variant: "click", Prompt: "Click once", Clicks: 1},
		{Variant: "type", Prompt: "Type go", Word: "go"},
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	p := NewProgression(tasks, nil)
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if out := p.HandleInput(domain.Click()); !out.Advanced || out.Ended {
		t.Fatalf("first task: %+v", out)
	}
	if p.Index() != 1 {
		t.Fatalf("index = %d, want 1", p.Index())
	}
	if out := p.HandleInput(domain.Submit("go")); !out.Ended {
		t.Fatalf("second task: %+v", out)
	}
	if p.Phase() != domain.PhaseAllComplete {
		t.Fatalf("phase = %v, want PhaseAllComplete", p.Phase())
	}
	if err := p.Start(); err == nil {
		t.Fatal("Start accepted a finished progression")
	}
}
