package render

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/motion"
	"github.com/san-kum/framekit/internal/scenes"
)

func newRenderer(t *testing.T, workers int) *Renderer {
	t.Helper()
	reg := composition.NewRegistry()
	if err := scenes.Register(reg); err != nil {
		t.Fatal(err)
	}
	return New(reg, workers, nil)
}

func TestParallelMatchesSequential(t *testing.T) {
	ctx := context.Background()
	seq, err := newRenderer(t, 1).Range(ctx, "ClaudeCodeIntro", Options{})
	if err != nil {
		t.Fatal(err)
	}
	par, err := newRenderer(t, 8).Range(ctx, "ClaudeCodeIntro", Options{})
	if err != nil {
		t.Fatal(err)
	}
	shuffled, err := newRenderer(t, 8).Range(ctx, "ClaudeCodeIntro", Options{Shuffle: true, Seed: 42})
	if err != nil {
		t.Fatal(err)
	}

	if len(seq.Frames) != 210 {
		t.Fatalf("rendered %d frames", len(seq.Frames))
	}
	if seq.Checksum != par.Checksum || seq.Checksum != shuffled.Checksum {
		t.Errorf("checksums differ: %s %s %s", seq.Checksum, par.Checksum, shuffled.Checksum)
	}
	for i, f := range shuffled.Frames {
		if f.Index != i {
			t.Fatalf("slot %d holds frame %d", i, f.Index)
		}
	}
}

func TestSubRange(t *testing.T) {
	res, err := newRenderer(t, 4).Range(context.Background(), "CountdownTimer", Options{From: 100, To: 110})
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Frames) != 10 || res.Frames[0].Index != 100 || res.From != 100 {
		t.Errorf("got %d frames starting at %d", len(res.Frames), res.Frames[0].Index)
	}
	if res.Workers != 4 {
		t.Errorf("workers = %d", res.Workers)
	}
}

func TestRangeErrors(t *testing.T) {
	r := newRenderer(t, 2)
	ctx := context.Background()
	for _, opts := range []Options{{From: -1}, {From: 210}, {From: 5, To: 211}, {From: 10, To: 10}} {
		if _, err := r.Range(ctx, "ClaudeCodeIntro", opts); !errors.Is(err, motion.ErrOutOfRange) {
			t.Errorf("%+v: err = %v", opts, err)
		}
	}
	if _, err := r.Range(ctx, "Missing", Options{}); !errors.Is(err, motion.ErrNotFound) {
		t.Errorf("missing: err = %v", err)
	}
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t, 2).Range(ctx, "ClaudeCodeIntro", Options{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v", err)
	}
}

func TestProgress(t *testing.T) {
	var (
		calls atomic.Int64
		mu    sync.Mutex
		last  int
	)
	_, err := newRenderer(t, 3).Range(context.Background(), "ClaudeCodeIntro", Options{
		To: 50,
		Progress: func(done, total int) {
			calls.Add(1)
			if total != 50 {
				t.Errorf("total = %d", total)
			}
			mu.Lock()
			if done > last {
				last = done
			}
			mu.Unlock()
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls.Load() != 50 || last != 50 {
		t.Errorf("calls = %d, last = %d", calls.Load(), last)
	}
}

func TestShuffleIsPermutation(t *testing.T) {
	idx := make([]int, 100)
	for i := range idx {
		idx[i] = i
	}
	shuffle(idx, 7)
	seen := make(map[int]bool)
	moved := 0
	for i, v := range idx {
		seen[v] = true
		if v != i {
			moved++
		}
	}
	if len(seen) != 100 || moved == 0 {
		t.Errorf("seen %d values, %d moved", len(seen), moved)
	}
}

func TestDefaultWorkers(t *testing.T) {
	if DefaultWorkers() < 1 {
		t.Error("DefaultWorkers < 1")
	}
	if New(nil, 0, nil).Workers() < 1 {
		t.Error("New did not default workers")
	}
}
