// Package overrides loads per-command role and enablement overrides from a
// YAML file and reloads them when the file changes.
package overrides

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/goccy/go-yaml"
	"github.com/sglre6355/wikibot/internal/core"
)

// entry is one command block of the overrides file:
//
//	commands:
//	  move:
//	    roles: [Moderator]
//	  upload:
//	    disabled: true
type entry struct {
	Roles    []string `yaml:"roles"`
	Disabled bool     `yaml:"disabled"`
}

type document struct {
	Commands map[string]entry `yaml:"commands"`
}

// File is an overrides file. It implements core.OverrideSource.
type File struct {
	path string

	mu      sync.RWMutex
	current map[string]core.Override
}

// Load reads path. A missing file yields no overrides.
func Load(path string) (*File, error) {
	f := &File{path: path}
	if err := f.reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Parse decodes an overrides document. Command names are lowercased.
func Parse(data []byte) (map[string]core.Override, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return map[string]core.Override{}, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse overrides: %w", err)
	}

	result := make(map[string]core.Override, len(doc.Commands))
	for name, e := range doc.Commands {
		result[strings.ToLower(name)] = core.Override{
			Roles:    e.Roles,
			Disabled: e.Disabled,
		}
	}
	return result, nil
}

func (f *File) reload() error {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		data, err = nil, nil
	}
	if err != nil {
		return fmt.Errorf("failed to read overrides file: %w", err)
	}

	parsed, err := Parse(data)
	if err != nil {
		return err
	}

	f.mu.Lock()
	f.current = parsed
	f.mu.Unlock()

	return nil
}

// Overrides returns the overrides last loaded.
func (f *File) Overrides() map[string]core.Override {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.current
}

// Watch reloads the file whenever it changes and then calls onChange, until
// ctx is done. A file that fails to parse keeps the previous overrides.
func (f *File) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory so editors that replace the file are seen.
	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(f.path), err)
	}

	go func() {
		defer watcher.Close()
		name := filepath.Clean(f.path)

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) {
					continue
				}
				if err := f.reload(); err != nil {
					slog.Error("failed to reload overrides", "path", f.path, "error", err)
					continue
				}
				slog.Info("reloaded overrides", "path", f.path)
				onChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("failed to watch overrides", "path", f.path, "error", err)
			}
		}
	}()

	return nil
}
