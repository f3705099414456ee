// Package storage persists render runs: run metadata as JSON and every
// numeric element property as a long-format CSV.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/framekit/internal/display"
	"github.com/san-kum/framekit/internal/render"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Composition string             `json:"composition"`
	Timestamp   time.Time          `json:"timestamp"`
	From        int                `json:"from"`
	To          int                `json:"to"`
	FPS         int                `json:"fps"`
	Width       int                `json:"width"`
	Height      int                `json:"height"`
	Workers     int                `json:"workers"`
	Checksum    string             `json:"checksum"`
	Metrics     map[string]float64 `json:"metrics"`
}

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

// Save writes a render result under a new run id.
func (s *Store) Save(res *render.Result) (string, error) {
	c := res.Composition
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", c.ID, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	elements := 0
	for _, f := range res.Frames {
		elements += len(f.Elements)
	}
	meta := RunMetadata{
		ID:          runID,
		Composition: c.ID,
		Timestamp:   now,
		From:        res.From,
		To:          res.From + len(res.Frames),
		FPS:         c.FPS,
		Width:       c.Width,
		Height:      c.Height,
		Workers:     res.Workers,
		Checksum:    res.Checksum,
		Metrics: map[string]float64{
			"elapsed_ms": float64(res.Elapsed.Microseconds()) / 1000,
			"fps":        res.FramesPerSecond(),
			"elements":   float64(elements),
		},
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), res.Frames); err != nil {
		return "", err
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeFrames stores one row per (frame, element, property).
func writeFrames(path string, frames []display.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "element", "prop", "value"}); err != nil {
		return err
	}
	for _, fr := range frames {
		idx := strconv.Itoa(fr.Index)
		for _, e := range fr.Elements {
			for _, k := range e.Keys() {
				row := []string{idx, e.ID, k, strconv.FormatFloat(e.Props[k], 'g', -1, 64)}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// Latest returns the most recent run, optionally restricted to one
// composition.
func (s *Store) Latest(compositionID string) (*RunMetadata, error) {
	runs, err := s.List()
	if err != nil {
		return nil, err
	}
	for i := len(runs) - 1; i >= 0; i-- {
		if compositionID == "" || runs[i].Composition == compositionID {
			return &runs[i], nil
		}
	}
	return nil, fmt.Errorf("no runs found in %s", s.baseDir)
}

// Resolve accepts a run id, "latest" for the most recent run, or
// "latest:<composition>" for the most recent run of one composition.
func (s *Store) Resolve(ref string) (*RunMetadata, error) {
	if ref == "latest" {
		return s.Latest("")
	}
	if id, ok := strings.CutPrefix(ref, "latest:"); ok {
		return s.Latest(id)
	}
	return s.Load(ref)
}

// LoadTrack reads one element property across the run. Frames in which
// the element was not visible are absent from the result.
func (s *Store) LoadTrack(runID, element, prop string) ([]int, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4
	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	frames := make([]int, 0)
	values := make([]float64, 0)
	for i, rec := range records {
		if i == 0 || rec[1] != element || rec[2] != prop {
			continue
		}
		f, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}
		v, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: %w", framesFile, i+1, err)
		}
		frames = append(frames, f)
		values = append(values, v)
	}
	return frames, values, nil
}

// Properties lists the element/property pairs recorded in a run.
func (s *Store) Properties(runID string) (map[string][]string, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 4
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]map[string]bool)
	for i, rec := range records {
		if i == 0 {
			continue
		}
		if seen[rec[1]] == nil {
			seen[rec[1]] = make(map[string]bool)
		}
		seen[rec[1]][rec[2]] = true
	}
	out := make(map[string][]string, len(seen))
	for el, props := range seen {
		for p := range props {
			out[el] = append(out[el], p)
		}
		sort.Strings(out[el])
	}
	return out, nil
}
