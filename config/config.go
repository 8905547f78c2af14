// Package config loads the whiteboard's TOML settings.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"whiteboard/board"
)

type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

type Board struct {
	Color      string   `toml:"color"`
	Width      float64  `toml:"width"`
	Palette    []string `toml:"palette"`
	Background string   `toml:"background"`
	Grid       bool     `toml:"grid"`
	GridSize   float64  `toml:"grid_size"`
}

type Files struct {
	Board      string `toml:"board"`
	PDF        string `toml:"pdf"`
	Screenshot string `toml:"screenshot"`
	Store      string `toml:"store"`
	Scripts    string `toml:"scripts"`
}

type Config struct {
	Window Window `toml:"window"`
	Board  Board  `toml:"board"`
	Files  Files  `toml:"files"`
}

const (
	MinWidth = 1.0
	MaxWidth = 50.0
)

func Default() *Config {
	return &Config{
		Window: Window{Width: 1280, Height: 800, Title: "Whiteboard"},
		Board: Board{
			Color: "#000000",
			Width: 3,
			Palette: []string{
				"#000000", "#ef4444", "#f97316", "#eab308",
				"#22c55e", "#3b82f6", "#8b5cf6", "#ec4899",
			},
			Background: "#ffffff",
			Grid:       true,
			GridSize:   40,
		},
		Files: Files{
			Board:      "board.yaml",
			PDF:        "board.pdf",
			Screenshot: "screenshot.png",
			Store:      filepath.Join(".whiteboard", "store.db"),
			Scripts:    "scripts",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error. Environment
// overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c as TOML.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	defer f.Close()

	fmt.Fprintln(f, "# whiteboard configuration")
	fmt.Fprintln(f)
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return f.Close()
}

func (c *Config) ApplyEnvOverrides() {
	if store := os.Getenv("WHITEBOARD_STORE"); store != "" {
		c.Files.Store = store
	}
	if scripts := os.Getenv("WHITEBOARD_SCRIPTS"); scripts != "" {
		c.Files.Scripts = scripts
	}
}

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

func (c *Config) Validate() error {
	var errs ValidateErrors
	add := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if c.Window.Width < 200 || c.Window.Height < 200 {
		add("window", "size %dx%d is smaller than 200x200", c.Window.Width, c.Window.Height)
	}
	if _, err := board.ParseColor(c.Board.Color); err != nil {
		add("board.color", "%v", err)
	}
	if _, err := board.ParseColor(c.Board.Background); err != nil {
		add("board.background", "%v", err)
	}
	if c.Board.Width < MinWidth || c.Board.Width > MaxWidth {
		add("board.width", "%g is outside [%g, %g]", c.Board.Width, MinWidth, MaxWidth)
	}
	if len(c.Board.Palette) == 0 || len(c.Board.Palette) > 9 {
		add("board.palette", "needs 1 to 9 colours, got %d", len(c.Board.Palette))
	}
	for i, p := range c.Board.Palette {
		if _, err := board.ParseColor(p); err != nil {
			add(fmt.Sprintf("board.palette[%d]", i), "%v", err)
		}
	}
	if c.Board.GridSize <= 0 {
		add("board.grid_size", "must be positive")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) BackgroundColor() color.RGBA {
	return board.MustParseColor(c.Board.Background)
}

// Style is the default stroke for new shapes.
func (c *Config) Style() board.Style {
	return board.Style{Color: board.MustParseColor(c.Board.Color), Width: c.Board.Width}
}

// Palette returns the parsed palette colours. Call after Validate.
func (c *Config) Palette() []color.RGBA {
	out := make([]color.RGBA, len(c.Board.Palette))
	for i, p := range c.Board.Palette {
		out[i] = board.MustParseColor(p)
	}
	return out
}
