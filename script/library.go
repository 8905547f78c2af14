package script

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"whiteboard/board"
)

// Ext is the file extension scripts are loaded from.
const Ext = ".star"

type cacheEntry struct {
	hash   string
	shapes []board.Shape
}

// Library holds the scripts of one directory. Watch keeps it in sync from a background
// goroutine, so every method is safe for concurrent use.
type Library struct {
	dir string

	mu      sync.Mutex
	sources map[string]string
	cache   map[string]cacheEntry
	changes chan string
}

func NewLibrary(dir string) *Library {
	return &Library{
		dir:     dir,
		sources: make(map[string]string),
		cache:   make(map[string]cacheEntry),
		changes: make(chan string, 16),
	}
}

func (l *Library) Dir() string { return l.dir }

// Load reads every script in the directory, replacing what was loaded before. A missing
// directory loads nothing.
func (l *Library) Load() error {
	entries, err := os.ReadDir(l.dir)
	if errors.Is(err, os.ErrNotExist) {
		l.mu.Lock()
		l.sources = make(map[string]string)
		l.mu.Unlock()
		return nil
	}
	if err != nil {
		return fmt.Errorf("load scripts: %w", err)
	}

	sources := make(map[string]string)
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext {
			continue
		}
		data, err := os.ReadFile(filepath.Join(l.dir, e.Name()))
		if err != nil {
			return fmt.Errorf("load scripts: %w", err)
		}
		sources[e.Name()] = string(data)
	}

	l.mu.Lock()
	l.sources = sources
	l.mu.Unlock()
	return nil
}

// Set adds or replaces a script in memory.
func (l *Library) Set(name, src string) {
	l.mu.Lock()
	l.sources[name] = src
	l.mu.Unlock()
}

func (l *Library) Remove(name string) {
	l.mu.Lock()
	delete(l.sources, name)
	delete(l.cache, name)
	l.mu.Unlock()
}

// Names returns the loaded script names in run order.
func (l *Library) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.sources))
	for n := range l.sources {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// RunAll runs every script in name order and returns the shapes they drew. Scripts whose
// source and env are unchanged since their last run reuse the earlier output. A failing
// script does not stop the others; their errors are joined.
func (l *Library) RunAll(ctx context.Context, env Env) ([]board.Shape, error) {
	var (
		out  []board.Shape
		errs []error
	)
	for _, name := range l.Names() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		l.mu.Lock()
		src, ok := l.sources[name]
		l.mu.Unlock()
		if !ok {
			continue
		}

		hash := Hash(name, src, env)
		l.mu.Lock()
		cached, hit := l.cache[name]
		l.mu.Unlock()

		var shapes []board.Shape
		if hit && cached.hash == hash {
			log.Printf("Script %s: cache hit", name)
			shapes = cached.shapes
		} else {
			var err error
			shapes, err = Run(ctx, name, src, env)
			if err != nil {
				log.Printf("Script %s: %v", name, err)
				errs = append(errs, err)
				continue
			}
			l.mu.Lock()
			l.cache[name] = cacheEntry{hash: hash, shapes: shapes}
			l.mu.Unlock()
		}

		for _, s := range shapes {
			out = append(out, board.CloneShape(s))
		}
	}
	return out, errors.Join(errs...)
}

// Changes reports the names of scripts reloaded by Watch. Sends never block; bursts
// beyond the buffer are dropped.
func (l *Library) Changes() <-chan string {
	return l.changes
}

// Watch reloads scripts as they change on disk until ctx is done. It returns once the
// watcher is running.
func (l *Library) Watch(ctx context.Context) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("watch scripts: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch scripts: %w", err)
	}
	if err := w.Add(l.dir); err != nil {
		w.Close()
		return fmt.Errorf("watch scripts: %w", err)
	}

	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				l.handle(event)
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				log.Printf("Script watcher: %v", err)
			}
		}
	}()
	return nil
}

func (l *Library) handle(event fsnotify.Event) {
	name := filepath.Base(event.Name)
	if filepath.Ext(name) != Ext || strings.HasPrefix(name, ".") {
		return
	}

	switch {
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		data, err := os.ReadFile(event.Name)
		if err != nil {
			log.Printf("Script watcher: %v", err)
			return
		}
		l.Set(name, string(data))
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		l.Remove(name)
	default:
		return
	}

	select {
	case l.changes <- name:
	default:
	}
}
