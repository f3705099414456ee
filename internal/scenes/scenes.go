// Package scenes holds the built-in compositions. Each scene is a
// declarative timeline whose tracks and springs are validated when the
// scene is built, so a registered composition can render any frame
// without error.
package scenes

import (
	"fmt"

	"github.com/san-kum/framekit/internal/composition"
	"github.com/san-kum/framekit/internal/timeline"
)

const (
	FPS    = 30
	Width  = 1920
	Height = 1080

	ShowcaseFolder = "Showcase"
)

type definition struct {
	id       string
	folder   string
	duration int
	build    func(*builder) timeline.Spec
}

var definitions = []definition{
	{"ClaudeCodeIntro", "", 210, intro},
	{"DataDashboard", ShowcaseFolder, 360, dashboard},
	{"KineticTypography", ShowcaseFolder, 420, kinetic},
	{"ProductShowcase", ShowcaseFolder, 450, showcase},
	{"CountdownTimer", ShowcaseFolder, 210, countdown},
	{"CodeWalkthrough", ShowcaseFolder, 480, walkthrough},
}

// IDs lists the built-in composition ids in registration order.
func IDs() []string {
	ids := make([]string, len(definitions))
	for i, d := range definitions {
		ids[i] = d.id
	}
	return ids
}

// Build constructs one built-in composition.
func Build(id string) (composition.Composition, error) {
	for _, d := range definitions {
		if d.id == id {
			return d.compose()
		}
	}
	return composition.Composition{}, fmt.Errorf("unknown scene: %s", id)
}

func (d definition) compose() (composition.Composition, error) {
	b := &builder{fps: FPS}
	spec := d.build(b)
	if b.err != nil {
		return composition.Composition{}, fmt.Errorf("scene %s: %w", d.id, b.err)
	}
	root, err := timeline.Build(spec)
	if err != nil {
		return composition.Composition{}, fmt.Errorf("scene %s: %w", d.id, err)
	}
	return composition.Composition{
		ID:             d.id,
		Folder:         d.folder,
		DurationFrames: d.duration,
		FPS:            FPS,
		Width:          Width,
		Height:         Height,
		Root:           root,
	}, nil
}

// All constructs every built-in composition.
func All() ([]composition.Composition, error) {
	out := make([]composition.Composition, 0, len(definitions))
	for _, d := range definitions {
		c, err := d.compose()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// Register builds every scene and adds it to r.
func Register(r *composition.Registry) error {
	all, err := All()
	if err != nil {
		return err
	}
	return r.RegisterAll(all...)
}
