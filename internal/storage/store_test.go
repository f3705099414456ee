package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/render"
	"github.com/san-kum/framekit/internal/scenes"
)

func renderIntro(t *testing.T, from, to int) *render.Result {
	t.Helper()
	reg := composition.NewRegistry()
	if err := scenes.Register(reg); err != nil {
		t.Fatal(err)
	}
	res, err := render.New(reg, 2, nil).Range(context.Background(), "ClaudeCodeIntro", render.Options{From: from, To: to})
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	res := renderIntro(t, 0, 40)
	runID, err := st.Save(res)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Composition != "ClaudeCodeIntro" || meta.From != 0 || meta.To != 40 {
		t.Errorf("meta = %+v", meta)
	}
	if meta.Checksum != res.Checksum {
		t.Errorf("checksum %s, want %s", meta.Checksum, res.Checksum)
	}
	if meta.Metrics["elements"] <= 0 {
		t.Errorf("elements = %v", meta.Metrics["elements"])
	}

	frames, values, err := st.LoadTrack(runID, "title-frame", "scale")
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if len(frames) != 40 || len(values) != 40 {
		t.Fatalf("track has %d frames", len(frames))
	}
	for i, f := range frames {
		want, _ := res.Frames[i].Value("title-frame", "scale")
		if f != i || values[i] != want {
			t.Fatalf("frame %d: got (%d, %v), want %v", i, f, values[i], want)
		}
	}
}

func TestLoadTrackSkipsHiddenFrames(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(renderIntro(t, 0, 80))
	if err != nil {
		t.Fatal(err)
	}
	frames, _, err := st.LoadTrack(runID, "particle-0", "opacity")
	if err != nil {
		t.Fatal(err)
	}
	if len(frames) != 60 || frames[59] != 59 {
		t.Errorf("particle-0 frames = %d", len(frames))
	}

	props, err := st.Properties(runID)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"opacity", "radius", "x", "y"}, props["particle-0"]); diff != "" {
		t.Errorf("particle-0 props (-want +got):\n%s", diff)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	first, err := st.Save(renderIntro(t, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	second, err := st.Save(renderIntro(t, 5, 10))
	if err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != first || runs[1].ID != second {
		t.Errorf("runs = %v", runs)
	}

	latest, err := st.Latest("ClaudeCodeIntro")
	if err != nil || latest.ID != second {
		t.Errorf("latest = %v, %v", latest, err)
	}
	if _, err := st.Latest("CountdownTimer"); err == nil {
		t.Error("expected no CountdownTimer runs")
	}

	for ref, want := range map[string]string{
		"latest":                 second,
		"latest:ClaudeCodeIntro": second,
		first:                    first,
	} {
		meta, err := st.Resolve(ref)
		if err != nil || meta.ID != want {
			t.Errorf("Resolve(%q) = %v, %v; want %s", ref, meta, err, want)
		}
	}
	if _, err := st.Resolve("latest:CountdownTimer"); err == nil {
		t.Error("expected no CountdownTimer runs")
	}
	if _, err := st.Resolve("no_such_run"); err == nil {
		t.Error("expected error for unknown run")
	}
}

func TestListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "nope")).List()
	if err != nil || len(runs) != 0 {
		t.Errorf("runs = %v, err = %v", runs, err)
	}
}

func TestExportJSON(t *testing.T) {
	res := renderIntro(t, 0, 3)
	data := ExportData{Composition: "ClaudeCodeIntro", FPS: 30, Width: 1920, Height: 1080, Checksum: res.Checksum, Frames: res.Frames}

	path := filepath.Join(t.TempDir(), "out.json")
	if err := ExportJSON(path, data); err != nil {
		t.Fatal(err)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var back ExportData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(data, back); diff != "" {
		t.Errorf("export round trip (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	if err := EncodeJSON(&buf, data); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(buf.Bytes(), raw) {
		t.Error("EncodeJSON and ExportJSON disagree")
	}
}
