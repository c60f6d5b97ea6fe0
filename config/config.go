// Package config reads the settings shared by the viewer and the command
// line tools from a TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// Settings is the contents of a settings file. Fields left out of the file
// keep their default. Every field can also be set with the flag named in its
// flag tag, see [Parse].
type Settings struct {
	// Demo is the name of the program to show.
	Demo   string `toml:"demo" flag:"demo"`
	Width  int    `toml:"width" flag:"width"`
	Height int    `toml:"height" flag:"height"`

	// Time is the animation time in seconds for still renders.
	Time   float64    `toml:"time" flag:"time"`
	Camera mgl32.Vec3 `toml:"camera" flag:"camera"`

	// Textures are image files for texture units in order. Empty entries
	// use the built in checker boards.
	Textures []string `toml:"textures" flag:"textures"`

	Antialias   float32 `toml:"antialias" flag:"antialias"`
	Multithread bool    `toml:"multithread" flag:"multithread"`
	Output      string  `toml:"output" flag:"o,output"`

	// ShaderDir overrides the built in shaders with files of the same
	// name, and is watched for changes.
	ShaderDir string `toml:"shader_dir" flag:"shaders,shader-dir"`
	Debug     bool   `toml:"debug" flag:"debug"`
}

func Default() Settings {
	return Settings{
		Demo:        "raymarch-cubes",
		Width:       800,
		Height:      600,
		Camera:      mgl32.Vec3{0, 0, 3},
		Antialias:   0.3,
		Multithread: true,
		Output:      "render.png",
	}
}

// Load reads path over the defaults.
func Load(path string) (Settings, error) {
	file, err := os.Open(path)
	if err != nil {
		return Settings{}, err
	}
	defer file.Close()

	s, err := Decode(file)
	if err != nil {
		return Settings{}, fmt.Errorf("%v: %w", path, err)
	}
	return s, nil
}

// Decode reads settings over the defaults. Unknown keys are an error.
func Decode(r io.Reader) (Settings, error) {
	s := Default()
	if err := decodeInto(r, &s); err != nil {
		return Settings{}, err
	}
	return s, s.Validate()
}

func decodeInto(r io.Reader, s *Settings) error {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(s); err != nil {
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return fmt.Errorf("line %v column %v: %w", row, col, err)
		}
		return err
	}
	return nil
}

func (s Settings) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid size %vx%v", s.Width, s.Height)
	}
	if s.Antialias < 0 {
		return fmt.Errorf("negative antialias distance %v", s.Antialias)
	}
	return nil
}

// Encode writes s as TOML.
func (s Settings) Encode(w io.Writer) error {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	_, err := buf.WriteTo(w)
	return err
}
