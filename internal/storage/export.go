package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/framekit/internal/display"
)

// ExportData is the self-contained JSON form of a rendered range.
type ExportData struct {
	Composition string          `json:"composition"`
	FPS         int             `json:"fps"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	Checksum    string          `json:"checksum,omitempty"`
	Frames      []display.Frame `json:"frames"`
}

// ExportJSON writes data to path, or to stdout when path is "-".
func ExportJSON(path string, data ExportData) error {
	if path == "-" {
		return EncodeJSON(os.Stdout, data)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return EncodeJSON(file, data)
}

func EncodeJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
