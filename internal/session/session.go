// Package session reads and writes the persisted state of a pictogram: the
// image path, the selection rectangle and the output parameters.
//
// Documents are JSON objects. Every field is optional; a field that is absent
// when loading leaves the corresponding setting at its previous value.
//
//	{
//	  "imagePath": "/home/me/patch/sunset.png",
//	  "SelBoxX": 12, "SelBoxY": 40, "SelBoxW": 50, "SelBoxH": 25,
//	  "scale": 0.5, "offset": 0
//	}
package session

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ironsheep/pictogram-mcp/internal/scan"
)

// Document is the persisted form of a pictogram. Nil fields were absent.
type Document struct {
	ImagePath *string  `json:"imagePath,omitempty"`
	SelBoxX   *float64 `json:"SelBoxX,omitempty"`
	SelBoxY   *float64 `json:"SelBoxY,omitempty"`
	SelBoxW   *float64 `json:"SelBoxW,omitempty"`
	SelBoxH   *float64 `json:"SelBoxH,omitempty"`
	Scale     *float64 `json:"scale,omitempty"`
	Offset    *float64 `json:"offset,omitempty"`
}

// New builds a fully populated document.
func New(imagePath string, sel scan.Selection, scale, offset float64) *Document {
	return &Document{
		ImagePath: &imagePath,
		SelBoxX:   &sel.X,
		SelBoxY:   &sel.Y,
		SelBoxW:   &sel.W,
		SelBoxH:   &sel.H,
		Scale:     &scale,
		Offset:    &offset,
	}
}

// Selection overlays the selection fields present in d onto base.
func (d *Document) Selection(base scan.Selection) scan.Selection {
	if d.SelBoxX != nil {
		base.X = *d.SelBoxX
	}
	if d.SelBoxY != nil {
		base.Y = *d.SelBoxY
	}
	if d.SelBoxW != nil {
		base.W = *d.SelBoxW
	}
	if d.SelBoxH != nil {
		base.H = *d.SelBoxH
	}
	return base
}

// HasSelection reports whether any selection field is present.
func (d *Document) HasSelection() bool {
	return d.SelBoxX != nil || d.SelBoxY != nil || d.SelBoxW != nil || d.SelBoxH != nil
}

// Decode reads a document from r.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &d, nil
}

// Encode writes d to w as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	return nil
}

// Load reads the document stored at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Save writes d to a temporary file next to path and renames it into place.
func Save(path string, d *Document) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".session-*.json")
	if err != nil {
		return fmt.Errorf("failed to create session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := d.Encode(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}
