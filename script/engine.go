// Package script runs Starlark files that draw shapes onto a board.
package script

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"whiteboard/board"
	"whiteboard/canvas"
)

// MaxSteps bounds how long one script may run.
const MaxSteps = 5_000_000

// fileOptions lets scripts use loops and conditionals at top level.
var fileOptions = &syntax.FileOptions{
	Set:             true,
	While:           true,
	TopLevelControl: true,
	GlobalReassign:  true,
	Recursion:       true,
}

// Env is what a script sees: the default stroke and extra predeclared values.
type Env struct {
	Style board.Style
	Vars  map[string]any
}

// Hash identifies a script run for caching: same name, source and env give the same hash.
func Hash(name, src string, env Env) string {
	data := map[string]any{
		"name":  name,
		"src":   src,
		"color": board.FormatColor(env.Style.Color),
		"width": env.Style.Width,
		"vars":  env.Vars,
	}
	jsonData, _ := json.Marshal(data)
	return fmt.Sprintf("%x", sha256.Sum256(jsonData))
}

type recorder struct {
	style  board.Style
	shapes []board.Shape
}

const recorderKey = "whiteboard.recorder"

// Run executes src and returns the shapes it drew, in call order.
func Run(ctx context.Context, name, src string, env Env) ([]board.Shape, error) {
	rec := &recorder{style: env.Style}
	thread := &starlark.Thread{
		Name:  name,
		Print: func(_ *starlark.Thread, msg string) { log.Printf("Script %s: %s", name, msg) },
	}
	thread.SetLocal(recorderKey, rec)
	thread.SetMaxExecutionSteps(MaxSteps)

	globals := builtins()
	for k, v := range env.Vars {
		val, err := toStarlarkValue(v)
		if err != nil {
			return nil, fmt.Errorf("script %s: var %s: %w", name, k, err)
		}
		globals[k] = val
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			thread.Cancel(ctx.Err().Error())
		case <-done:
		}
	}()

	if _, err := starlark.ExecFileOptions(fileOptions, thread, name, src, globals); err != nil {
		var evalErr *starlark.EvalError
		if errors.As(err, &evalErr) {
			return nil, fmt.Errorf("script %s: %s", name, evalErr.Backtrace())
		}
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return rec.shapes, nil
}

func builtins() starlark.StringDict {
	return starlark.StringDict{
		"stroke":   starlark.NewBuiltin("stroke", stroke),
		"line":     starlark.NewBuiltin("line", spanBuiltin(board.KindLine)),
		"rect":     starlark.NewBuiltin("rect", spanBuiltin(board.KindRectangle)),
		"ellipse":  starlark.NewBuiltin("ellipse", spanBuiltin(board.KindEllipse)),
		"triangle": starlark.NewBuiltin("triangle", spanBuiltin(board.KindTriangle)),
		"text":     starlark.NewBuiltin("text", text),
	}
}

func stroke(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		points      starlark.Iterable
		clr, widthV starlark.Value
	)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "points", &points, "color?", &clr, "width?", &widthV); err != nil {
		return nil, err
	}
	style, err := styleArgs(thread, fn, clr, widthV)
	if err != nil {
		return nil, err
	}

	var path []canvas.Point
	it := points.Iterate()
	defer it.Done()
	var v starlark.Value
	for it.Next(&v) {
		p, err := toPoint(v)
		if err != nil {
			return nil, fmt.Errorf("%s: point %d: %v", fn.Name(), len(path), err)
		}
		path = append(path, p)
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("%s: no points", fn.Name())
	}

	f := &board.Freehand{Path: path}
	f.Style = style
	emit(thread, f)
	return starlark.None, nil
}

func spanBuiltin(kind board.Kind) func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error) {
	return func(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
		var x1, y1, x2, y2, clr, widthV starlark.Value
		if err := starlark.UnpackArgs(fn.Name(), args, kwargs,
			"x1", &x1, "y1", &y1, "x2", &x2, "y2", &y2, "color?", &clr, "width?", &widthV); err != nil {
			return nil, err
		}
		coords, err := floats(fn, x1, y1, x2, y2)
		if err != nil {
			return nil, err
		}
		style, err := styleArgs(thread, fn, clr, widthV)
		if err != nil {
			return nil, err
		}

		span := board.Span{
			From: canvas.Point{X: coords[0], Y: coords[1]},
			To:   canvas.Point{X: coords[2], Y: coords[3]},
		}
		attrs := board.Attrs{Style: style}
		var s board.Shape
		switch kind {
		case board.KindLine:
			s = &board.Line{Attrs: attrs, Span: span}
		case board.KindRectangle:
			s = &board.Rectangle{Attrs: attrs, Span: span}
		case board.KindEllipse:
			s = &board.Ellipse{Attrs: attrs, Span: span}
		default:
			s = &board.Triangle{Attrs: attrs, Span: span}
		}
		emit(thread, s)
		return starlark.None, nil
	}
}

func text(thread *starlark.Thread, fn *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var (
		x, y, clr, widthV starlark.Value
		body              string
	)
	if err := starlark.UnpackArgs(fn.Name(), args, kwargs, "x", &x, "y", &y, "s", &body, "color?", &clr, "width?", &widthV); err != nil {
		return nil, err
	}
	coords, err := floats(fn, x, y)
	if err != nil {
		return nil, err
	}
	if body == "" {
		return nil, fmt.Errorf("%s: empty text", fn.Name())
	}
	style, err := styleArgs(thread, fn, clr, widthV)
	if err != nil {
		return nil, err
	}

	t := &board.Text{At: canvas.Point{X: coords[0], Y: coords[1]}, Body: body}
	t.Style = style
	emit(thread, t)
	return starlark.None, nil
}

func emit(thread *starlark.Thread, s board.Shape) {
	rec := thread.Local(recorderKey).(*recorder)
	rec.shapes = append(rec.shapes, s)
}

func styleArgs(thread *starlark.Thread, fn *starlark.Builtin, clr, width starlark.Value) (board.Style, error) {
	style := thread.Local(recorderKey).(*recorder).style
	if clr != nil && clr != starlark.None {
		s, ok := starlark.AsString(clr)
		if !ok {
			return style, fmt.Errorf("%s: color must be a string, got %s", fn.Name(), clr.Type())
		}
		c, err := board.ParseColor(s)
		if err != nil {
			return style, fmt.Errorf("%s: %v", fn.Name(), err)
		}
		style.Color = c
	}
	if width != nil && width != starlark.None {
		w, ok := starlark.AsFloat(width)
		if !ok || w <= 0 {
			return style, fmt.Errorf("%s: width must be a positive number, got %s", fn.Name(), width)
		}
		style.Width = w
	}
	return style, nil
}

func floats(fn *starlark.Builtin, vs ...starlark.Value) ([]float64, error) {
	out := make([]float64, len(vs))
	for i, v := range vs {
		f, ok := starlark.AsFloat(v)
		if !ok {
			return nil, fmt.Errorf("%s: argument %d must be a number, got %s", fn.Name(), i+1, v.Type())
		}
		out[i] = f
	}
	return out, nil
}

func toPoint(v starlark.Value) (canvas.Point, error) {
	seq, ok := v.(starlark.Indexable)
	if !ok || seq.Len() != 2 {
		return canvas.Point{}, fmt.Errorf("want an (x, y) pair, got %s", v)
	}
	x, okx := starlark.AsFloat(seq.Index(0))
	y, oky := starlark.AsFloat(seq.Index(1))
	if !okx || !oky {
		return canvas.Point{}, fmt.Errorf("coordinates must be numbers, got %s", v)
	}
	return canvas.Point{X: x, Y: y}, nil
}

func toStarlarkValue(v any) (starlark.Value, error) {
	if v == nil {
		return starlark.None, nil
	}
	switch val := v.(type) {
	case string:
		return starlark.String(val), nil
	case int:
		return starlark.MakeInt(val), nil
	case float64:
		return starlark.Float(val), nil
	case bool:
		return starlark.Bool(val), nil
	}
	return starlark.None, fmt.Errorf("unsupported type: %T", v)
}
