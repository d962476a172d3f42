package znap

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// StopEntry is the declarative form of a Stop, as found in stop documents.
// Exactly one of Matrix or SVG gives the transform.
type StopEntry struct {
	Duration *float64  `json:"duration" yaml:"duration" toml:"duration"`
	Matrix   []float64 `json:"matrix,omitempty" yaml:"matrix,omitempty" toml:"matrix,omitempty"`
	SVG      string    `json:"svg,omitempty" yaml:"svg,omitempty" toml:"svg,omitempty"`
	Mode     string    `json:"mode,omitempty" yaml:"mode,omitempty" toml:"mode,omitempty"`
	Ease     string    `json:"ease,omitempty" yaml:"ease,omitempty" toml:"ease,omitempty"`
	Label    string    `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// Document is a stop list plus timeline options. Looping defaults to true.
//
//	looping: true
//	stops:
//	  - duration: 1
//	    matrix: [1, 0, 0, 1, 0, 0]
//	  - duration: 2
//	    svg: scale(2)
//	    ease: inOutQuad
//	  - duration: 2
//	    svg: rotate(180)
type Document struct {
	Looping *bool       `json:"looping,omitempty" yaml:"looping,omitempty" toml:"looping,omitempty"`
	Debug   bool        `json:"debug,omitempty" yaml:"debug,omitempty" toml:"debug,omitempty"`
	Stops   []StopEntry `json:"stops" yaml:"stops" toml:"stops"`
}

// Format selects a stop document encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatTOML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatFromPath picks a Format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: no stop document format for %q", ErrInvalidArgument, path)
}

// ParseDocument decodes a stop document. It fails if the data does not
// decode or lists no stops.
func ParseDocument(data []byte, format Format) (*Document, error) {
	var doc Document
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	default:
		return nil, fmt.Errorf("parse stop document: %w: %v", ErrInvalidArgument, format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse stop document: %w", err)
	}
	if len(doc.Stops) == 0 {
		return nil, fmt.Errorf("parse stop document: %w: no stops", ErrInvalidArgument)
	}
	return &doc, nil
}

// LoadFile reads a stop document, choosing the decoder by extension, and
// builds its timeline.
func LoadFile(path string) (*Timeline, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load stop document: %w", err)
	}
	doc, err := ParseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Timeline()
}

// Options returns the timeline options the document asks for.
func (d *Document) Options() Options {
	opts := DefaultOptions
	if d.Looping != nil {
		opts.Looping = *d.Looping
	}
	opts.Debug = d.Debug
	return opts
}

// BuildStops converts every StopEntry to a Stop.
func (d *Document) BuildStops() ([]Stop, error) {
	stops := make([]Stop, len(d.Stops))
	for i, entry := range d.Stops {
		s, err := entry.Stop()
		if err != nil {
			return nil, fmt.Errorf("stop %d: %w", i, err)
		}
		stops[i] = s
	}
	return stops, nil
}

// Timeline builds the document's timeline.
func (d *Document) Timeline() (*Timeline, error) {
	stops, err := d.BuildStops()
	if err != nil {
		return nil, err
	}
	return Build(stops, d.Options())
}

// Stop converts the entry. It fails with ErrInvalidArgument when the
// duration is missing, when neither or both of Matrix and SVG are given, or
// when the mode or ease is unknown. Numeric range checks happen in Build.
func (s StopEntry) Stop() (Stop, error) {
	if s.Duration == nil {
		return Stop{}, fmt.Errorf("%w: missing duration", ErrInvalidArgument)
	}
	var m Affine
	switch {
	case s.Matrix != nil && s.SVG != "":
		return Stop{}, fmt.Errorf("%w: both matrix and svg given", ErrInvalidArgument)
	case s.Matrix != nil:
		if len(s.Matrix) != 6 {
			return Stop{}, fmt.Errorf("%w: matrix needs 6 coefficients, got %d", ErrInvalidArgument, len(s.Matrix))
		}
		copy(m[:], s.Matrix)
	case s.SVG != "":
		var err error
		if m, err = ParseTransformList(s.SVG); err != nil {
			return Stop{}, err
		}
	default:
		return Stop{}, fmt.Errorf("%w: no transform", ErrInvalidArgument)
	}
	mode, err := ParseMode(s.Mode)
	if err != nil {
		return Stop{}, err
	}
	fn, err := EaseByName(s.Ease)
	if err != nil {
		return Stop{}, err
	}
	return Stop{Duration: *s.Duration, Transform: m, Mode: mode, Ease: fn, Label: s.Label}, nil
}
