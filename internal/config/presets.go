package config

import (
	"sort"

	"github.com/san-kum/framekit/internal/spring"
)

// Presets are the named spring configurations available without a
// config file. Values follow the common motion-design presets.
var Presets = map[string]spring.Config{
	"default":  {Mass: 1, Stiffness: 100, Damping: 10},
	"gentle":   {Mass: 1, Stiffness: 120, Damping: 14},
	"wobbly":   {Mass: 1, Stiffness: 180, Damping: 12},
	"stiff":    {Mass: 1, Stiffness: 210, Damping: 20},
	"slow":     {Mass: 1, Stiffness: 280, Damping: 60},
	"molasses": {Mass: 1, Stiffness: 280, Damping: 120},
	"snappy":   {Mass: 1, Stiffness: 400, Damping: 30},
	"bouncy":   {Mass: 1, Stiffness: 200, Damping: 5},
}

func GetPreset(name string) (spring.Config, bool) {
	cfg, ok := Presets[name]
	return cfg, ok
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
