package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/san-kum/framekit/internal/analysis"
	"github.com/san-kum/framekit/internal/optim"
	"github.com/san-kum/framekit/internal/render"
	"github.com/san-kum/framekit/internal/spring"
	"gopkg.in/yaml.v3"
)

// Batch defines a scripted sequence of range renders.
type Batch struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Jobs        []Job  `yaml:"jobs"`
}

// Job is a single range render in a batch.
type Job struct {
	Composition string `yaml:"composition"`
	From        int    `yaml:"from"`
	To          int    `yaml:"to"`
	Workers     int    `yaml:"workers"`
	Shuffle     bool   `yaml:"shuffle"`
	Seed        int64  `yaml:"seed"`
}

// JobResult records where a job's frames were stored.
type JobResult struct {
	Job      Job
	RunID    string
	Frames   int
	Checksum string
}

// Ranger renders frame ranges.
type Ranger interface {
	Range(ctx context.Context, id string, opts render.Options) (*render.Result, error)
}

// Saver persists a render result and returns its run id.
type Saver interface {
	Save(res *render.Result) (string, error)
}

// LoadBatch loads a batch from a YAML file
func LoadBatch(path string) (*Batch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var batch Batch
	if err := yaml.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	if len(batch.Jobs) == 0 {
		return nil, fmt.Errorf("%s: batch has no jobs", path)
	}
	for i, j := range batch.Jobs {
		if j.Composition == "" {
			return nil, fmt.Errorf("%s: job %d: composition is required", path, i+1)
		}
	}
	return &batch, nil
}

// RunBatch executes all jobs in order, stopping at the first failure.
// Results of the jobs that completed are returned alongside the error.
func RunBatch(ctx context.Context, batch *Batch, r Ranger, s Saver, logger *log.Logger) ([]JobResult, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	results := make([]JobResult, 0, len(batch.Jobs))

	for i, job := range batch.Jobs {
		logger.Info("batch job", "step", fmt.Sprintf("%d/%d", i+1, len(batch.Jobs)), "composition", job.Composition)

		res, err := r.Range(ctx, job.Composition, render.Options{
			From:    job.From,
			To:      job.To,
			Workers: job.Workers,
			Shuffle: job.Shuffle,
			Seed:    job.Seed,
		})
		if err != nil {
			return results, fmt.Errorf("job %d: %w", i+1, err)
		}

		runID, err := s.Save(res)
		if err != nil {
			return results, fmt.Errorf("job %d save: %w", i+1, err)
		}

		results = append(results, JobResult{Job: job, RunID: runID, Frames: len(res.Frames), Checksum: res.Checksum})
	}

	return results, nil
}

// SpringSweep varies one spring parameter across a range.
type SpringSweep struct {
	Base      spring.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	FPS       int
	Frames    int
}

// SweepResult holds the measured response for one parameter value.
type SweepResult struct {
	ParamValue  float64
	Zeta        float64
	Regime      string
	SettleFrame int
	Overshoot   float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *SpringSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	set, err := setter(sweep.ParamName)
	if err != nil {
		return nil, err
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for _, v := range optim.Linspace(sweep.ParamMin, sweep.ParamMax, sweep.NumSteps) {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		cfg := sweep.Base
		set(&cfg, v)

		s, err := spring.New(sweep.FPS, cfg)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, v, err)
		}
		samples := s.Sample(0, sweep.Frames)

		results = append(results, SweepResult{
			ParamValue:  v,
			Zeta:        s.DampingRatio(),
			Regime:      spring.Regime(s.DampingRatio()),
			SettleFrame: analysis.SettleFrame(samples, 1, spring.SettleThreshold),
			Overshoot:   analysis.Overshoot(samples, 0, 1),
		})
	}

	return results, nil
}

func setter(name string) (func(*spring.Config, float64), error) {
	switch name {
	case "mass":
		return func(c *spring.Config, v float64) { c.Mass = v }, nil
	case "stiffness":
		return func(c *spring.Config, v float64) { c.Stiffness = v }, nil
	case "damping":
		return func(c *spring.Config, v float64) { c.Damping = v }, nil
	}
	return nil, fmt.Errorf("unknown spring parameter %q (mass, stiffness, damping)", name)
}
