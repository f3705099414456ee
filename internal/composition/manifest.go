package composition

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Entry is one manifest row: everything a renderer needs before it asks
// for frames.
type Entry struct {
	ID             string `json:"id" yaml:"id"`
	Folder         string `json:"folder,omitempty" yaml:"folder,omitempty"`
	DurationFrames int    `json:"durationFrames" yaml:"durationFrames"`
	FPS            int    `json:"fps" yaml:"fps"`
	Width          int    `json:"width" yaml:"width"`
	Height         int    `json:"height" yaml:"height"`
}

type Manifest []Entry

// Manifest lists every composition in registration order.
func (r *Registry) Manifest() Manifest {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m := make(Manifest, 0, len(r.order))
	for _, id := range r.order {
		c := r.byID[id]
		m = append(m, Entry{
			ID:             c.ID,
			Folder:         c.Folder,
			DurationFrames: c.DurationFrames,
			FPS:            c.FPS,
			Width:          c.Width,
			Height:         c.Height,
		})
	}
	return m
}

// Folders groups ids by folder, keeping registration order inside each.
func (m Manifest) Folders() map[string][]string {
	out := make(map[string][]string)
	for _, e := range m {
		out[e.Folder] = append(out[e.Folder], e.ID)
	}
	return out
}

// TotalFrames sums the durations of every entry.
func (m Manifest) TotalFrames() int {
	total := 0
	for _, e := range m {
		total += e.DurationFrames
	}
	return total
}

// Encode writes the manifest as "yaml" or "json".
func (m Manifest) Encode(w io.Writer, format string) error {
	switch format {
	case "yaml", "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(m); err != nil {
			return err
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	default:
		return fmt.Errorf("unknown manifest format: %s", format)
	}
}

// DecodeManifest reads a YAML (or JSON, which YAML accepts) manifest.
func DecodeManifest(r io.Reader) (Manifest, error) {
	var m Manifest
	if err := yaml.NewDecoder(r).Decode(&m); err != nil {
		return nil, err
	}
	return m, nil
}

// Diff reports how m differs from want, one line per difference: ids
// missing from m, ids m adds, and changed fields of shared ids.
func (m Manifest) Diff(want Manifest) []string {
	have := make(map[string]Entry, len(m))
	for _, e := range m {
		have[e.ID] = e
	}
	var out []string
	seen := make(map[string]bool, len(want))
	for _, w := range want {
		seen[w.ID] = true
		h, ok := have[w.ID]
		if !ok {
			out = append(out, fmt.Sprintf("%s: missing", w.ID))
			continue
		}
		if h.Folder != w.Folder {
			out = append(out, fmt.Sprintf("%s: folder %q, want %q", w.ID, h.Folder, w.Folder))
		}
		if h.DurationFrames != w.DurationFrames {
			out = append(out, fmt.Sprintf("%s: durationFrames %d, want %d", w.ID, h.DurationFrames, w.DurationFrames))
		}
		if h.FPS != w.FPS {
			out = append(out, fmt.Sprintf("%s: fps %d, want %d", w.ID, h.FPS, w.FPS))
		}
		if h.Width != w.Width || h.Height != w.Height {
			out = append(out, fmt.Sprintf("%s: size %dx%d, want %dx%d", w.ID, h.Width, h.Height, w.Width, w.Height))
		}
	}
	for _, e := range m {
		if !seen[e.ID] {
			out = append(out, fmt.Sprintf("%s: not in manifest", e.ID))
		}
	}
	return out
}
