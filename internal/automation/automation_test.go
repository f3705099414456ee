package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/render"
	"github.com/san-kum/framekit/internal/scenes"
	"github.com/san-kum/framekit/internal/spring"
)

type memSaver struct {
	saved []*render.Result
	fail  bool
}

func (m *memSaver) Save(res *render.Result) (string, error) {
	if m.fail {
		return "", errors.New("disk full")
	}
	m.saved = append(m.saved, res)
	return res.Composition.ID + "_run", nil
}

func TestLoadBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.yaml")
	os.WriteFile(good, []byte(`
name: previews
jobs:
  - composition: ClaudeCodeIntro
    to: 30
  - composition: CountdownTimer
    from: 30
    to: 60
    shuffle: true
    seed: 7
`), 0644)

	batch, err := LoadBatch(good)
	if err != nil {
		t.Fatal(err)
	}
	if batch.Name != "previews" || len(batch.Jobs) != 2 {
		t.Fatalf("batch = %+v", batch)
	}
	if j := batch.Jobs[1]; j.From != 30 || !j.Shuffle || j.Seed != 7 {
		t.Errorf("job = %+v", j)
	}

	empty := filepath.Join(dir, "empty.yaml")
	os.WriteFile(empty, []byte("name: nothing\n"), 0644)
	if _, err := LoadBatch(empty); err == nil {
		t.Error("expected error for batch without jobs")
	}

	noID := filepath.Join(dir, "noid.yaml")
	os.WriteFile(noID, []byte("jobs:\n  - to: 10\n"), 0644)
	if _, err := LoadBatch(noID); err == nil {
		t.Error("expected error for job without composition")
	}
}

func newRenderer(t *testing.T) *render.Renderer {
	t.Helper()
	reg := composition.NewRegistry()
	if err := scenes.Register(reg); err != nil {
		t.Fatal(err)
	}
	return render.New(reg, 2, nil)
}

func TestRunBatch(t *testing.T) {
	batch := &Batch{Jobs: []Job{
		{Composition: "ClaudeCodeIntro", To: 10},
		{Composition: "CountdownTimer", From: 25, To: 35, Shuffle: true, Seed: 3},
	}}
	saver := &memSaver{}
	results, err := RunBatch(context.Background(), batch, newRenderer(t), saver, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 || len(saver.saved) != 2 {
		t.Fatalf("results = %d, saved = %d", len(results), len(saver.saved))
	}
	if results[0].Frames != 10 || results[1].RunID != "CountdownTimer_run" {
		t.Errorf("results = %+v", results)
	}
}

func TestRunBatchStopsAtFailure(t *testing.T) {
	batch := &Batch{Jobs: []Job{
		{Composition: "ClaudeCodeIntro", To: 5},
		{Composition: "Missing"},
		{Composition: "ClaudeCodeIntro", To: 5},
	}}
	results, err := RunBatch(context.Background(), batch, newRenderer(t), &memSaver{}, nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(results) != 1 {
		t.Errorf("completed jobs = %d", len(results))
	}

	_, err = RunBatch(context.Background(), &Batch{Jobs: []Job{{Composition: "ClaudeCodeIntro", To: 5}}}, newRenderer(t), &memSaver{fail: true}, nil)
	if err == nil {
		t.Error("expected save error")
	}
}

func TestRunSweepDamping(t *testing.T) {
	results, err := RunSweep(context.Background(), &SpringSweep{
		Base:      spring.Config{Mass: 1, Stiffness: 100},
		ParamName: "damping",
		ParamMin:  5,
		ParamMax:  40,
		NumSteps:  8,
		FPS:       60,
		Frames:    300,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 8 {
		t.Fatalf("got %d results", len(results))
	}
	if results[0].Regime != "underdamped" || results[len(results)-1].Regime != "overdamped" {
		t.Errorf("regimes = %s .. %s", results[0].Regime, results[len(results)-1].Regime)
	}
	for i := 1; i < len(results); i++ {
		if results[i].Overshoot > results[i-1].Overshoot {
			t.Errorf("overshoot rose with damping at %v", results[i].ParamValue)
		}
	}
}

func TestRunSweepUnknownParam(t *testing.T) {
	_, err := RunSweep(context.Background(), &SpringSweep{Base: spring.DefaultConfig(), ParamName: "friction", NumSteps: 2, FPS: 30, Frames: 10})
	if err == nil {
		t.Error("expected error")
	}
}
