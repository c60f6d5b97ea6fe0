package programs

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Source returns the embedded shader called name.
func Source(name string) (string, error) {
	b, err := shaderFS.ReadFile("shaders/" + name)
	if err != nil {
		return "", fmt.Errorf("shader %v: %w", name, err)
	}
	return string(b), nil
}

// IsShader reports whether the file name looks like a shader source.
func IsShader(name string) bool {
	switch filepath.Ext(name) {
	case ".vert", ".frag":
		return true
	}
	return false
}

// Uses reports whether the program is built from the named shader file.
func (p *Program) Uses(name string) bool {
	return p.VertexName == name || p.FragmentName == name
}

// Reload returns a copy of p with its shaders read from dir. Shaders
// missing from dir keep their embedded source.
func (p Program) Reload(dir string) (Program, error) {
	var err error
	if p.VertexShader, err = readOverride(dir, p.VertexName, p.VertexShader); err != nil {
		return p, err
	}
	if p.FragmentShader, err = readOverride(dir, p.FragmentName, p.FragmentShader); err != nil {
		return p, err
	}
	return p, nil
}

func readOverride(dir, name, fallback string) (string, error) {
	if dir == "" || name == "" {
		return fallback, nil
	}

	b, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("reading shader override: %w", err)
	}
	return string(b), nil
}

// WatchShaders calls onChange with the file name whenever a shader in dir is
// written or created, until ctx is done.
func WatchShaders(ctx context.Context, dir string, onChange func(name string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watching %v: %w", dir, err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				name := filepath.Base(event.Name)
				if !IsShader(name) {
					continue
				}
				if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
					onChange(name)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("shader watcher:", err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}
