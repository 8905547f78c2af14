// Package persist saves boards as YAML documents and keeps named snapshots in a sqlite
// blob store.
package persist

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"whiteboard/board"
	"whiteboard/canvas"
)

// Version is the document format written by Encode.
const Version = 1

var ErrInvalidDocument = errors.New("invalid board document")

type ViewDoc struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Scale float64 `yaml:"scale"`
}

type ShapeDoc struct {
	ID     string      `yaml:"id"`
	Kind   string      `yaml:"kind"`
	Color  string      `yaml:"color"`
	Width  float64     `yaml:"width"`
	Points [][]float64 `yaml:"points,flow"`
	Text   string      `yaml:"text,omitempty"`
}

type Document struct {
	Version int        `yaml:"version"`
	View    ViewDoc    `yaml:"view"`
	Shapes  []ShapeDoc `yaml:"shapes"`
}

// NewDocument snapshots b and v. Selection state is not recorded.
func NewDocument(b *board.Board, v *canvas.ViewState) Document {
	doc := Document{Version: Version, View: ViewDoc{Scale: canvas.DefaultViewScale}}
	if v != nil {
		doc.View = ViewDoc{X: v.X, Y: v.Y, Scale: v.Scale}
	}

	for _, s := range b.Shapes() {
		a := s.Base()
		sd := ShapeDoc{
			ID:    a.ID,
			Kind:  s.Kind().String(),
			Color: board.FormatColor(a.Style.Color),
			Width: a.Style.Width,
		}
		for _, p := range s.Points() {
			sd.Points = append(sd.Points, []float64{p.X, p.Y})
		}
		if t, ok := s.(*board.Text); ok {
			sd.Text = t.Body
		}
		doc.Shapes = append(doc.Shapes, sd)
	}
	return doc
}

// Restore rebuilds the board and view the document describes.
func (d Document) Restore() (*board.Board, *canvas.ViewState, error) {
	if d.Version > Version {
		return nil, nil, fmt.Errorf("%w: version %d is newer than %d", ErrInvalidDocument, d.Version, Version)
	}

	v := canvas.NewViewState()
	if d.View.Scale != 0 {
		v.X, v.Y, v.Scale = d.View.X, d.View.Y, d.View.Scale
		if !v.Valid() {
			return nil, nil, fmt.Errorf("%w: view scale %g out of range", ErrInvalidDocument, d.View.Scale)
		}
	}

	shapes := make([]board.Shape, 0, len(d.Shapes))
	seen := make(map[string]bool, len(d.Shapes))
	for i, sd := range d.Shapes {
		s, err := sd.shape()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: shape %d: %v", ErrInvalidDocument, i, err)
		}
		if sd.ID != "" {
			if seen[sd.ID] {
				return nil, nil, fmt.Errorf("%w: shape %d: duplicate id %q", ErrInvalidDocument, i, sd.ID)
			}
			seen[sd.ID] = true
		}
		shapes = append(shapes, s)
	}

	b := board.New()
	b.Replace(shapes)
	return b, v, nil
}

func (sd ShapeDoc) shape() (board.Shape, error) {
	kind, ok := board.ParseKind(sd.Kind)
	if !ok {
		return nil, fmt.Errorf("unknown kind %q", sd.Kind)
	}
	clr, err := board.ParseColor(sd.Color)
	if err != nil {
		return nil, err
	}
	if sd.Width <= 0 {
		return nil, fmt.Errorf("width %g must be positive", sd.Width)
	}

	pts := make([]canvas.Point, len(sd.Points))
	for i, p := range sd.Points {
		if len(p) != 2 {
			return nil, fmt.Errorf("point %d has %d coordinates", i, len(p))
		}
		pts[i] = canvas.Point{X: p[0], Y: p[1]}
	}

	attrs := board.Attrs{ID: sd.ID, Style: board.Style{Color: clr, Width: sd.Width}}
	switch {
	case kind == board.KindFreehand:
		if len(pts) == 0 {
			return nil, errors.New("freehand stroke has no points")
		}
		return &board.Freehand{Attrs: attrs, Path: pts}, nil
	case kind == board.KindText:
		if len(pts) != 1 {
			return nil, fmt.Errorf("text needs 1 point, got %d", len(pts))
		}
		if sd.Text == "" {
			return nil, errors.New("text is empty")
		}
		return &board.Text{Attrs: attrs, At: pts[0], Body: sd.Text}, nil
	case kind.Spanned():
		if len(pts) != 2 {
			return nil, fmt.Errorf("%s needs 2 points, got %d", kind, len(pts))
		}
		span := board.Span{From: pts[0], To: pts[1]}
		switch kind {
		case board.KindRectangle:
			return &board.Rectangle{Attrs: attrs, Span: span}, nil
		case board.KindEllipse:
			return &board.Ellipse{Attrs: attrs, Span: span}, nil
		case board.KindLine:
			return &board.Line{Attrs: attrs, Span: span}, nil
		default:
			return &board.Triangle{Attrs: attrs, Span: span}, nil
		}
	}
	return nil, fmt.Errorf("unsupported kind %q", sd.Kind)
}

// Encode writes b and v as a YAML document.
func Encode(b *board.Board, v *canvas.ViewState) ([]byte, error) {
	doc := NewDocument(b, v)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses a YAML document. Structural problems wrap ErrInvalidDocument.
func Decode(data []byte) (*board.Board, *canvas.ViewState, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Restore()
}

// SaveFile writes the document next to path and renames it into place.
func SaveFile(path string, b *board.Board, v *canvas.ViewState) error {
	data, err := Encode(b, v)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save %s: %w", path, err)
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func LoadFile(path string) (*board.Board, *canvas.ViewState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	b, v, err := Decode(data)
	if err != nil {
		return nil, nil, fmt.Errorf("load %s: %w", path, err)
	}
	return b, v, nil
}
