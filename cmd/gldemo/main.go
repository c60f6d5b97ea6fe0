// Command gldemo shows a single program in a GLFW window.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stewi1014/gldemos/config"
	"github.com/stewi1014/gldemos/glprog"
	"github.com/stewi1014/gldemos/programs"
)

func init() {
	// GLFW and GL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	opts := config.Options("gldemo", "Gldemo shows a single program in a window.")
	settings, err := config.Parse(opts, os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		fmt.Println(config.Usage(opts))
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	if err := run(settings); err != nil {
		log.Fatal(err)
	}
}

func run(settings config.Settings) error {
	program, err := programs.Lookup(settings.Demo)
	if err != nil {
		return err
	}
	if program, err = program.Reload(settings.ShaderDir); err != nil {
		return err
	}

	textures, err := programs.LoadTextures(settings.Textures)
	if err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw.Init: %w", err)
	}
	defer glfw.Terminate()

	window, err := newWindow(settings.Width, settings.Height, program.Title)
	if err != nil {
		return err
	}
	defer window.Destroy()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl.Init: %w", err)
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))
	if settings.Debug {
		glprog.EnableDebugOutput()
	}

	d, err := glprog.Load(program, textures)
	if err != nil {
		return err
	}
	defer d.Delete()

	changed := make(chan string, 16)
	if settings.ShaderDir != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		err := programs.WatchShaders(ctx, settings.ShaderDir, func(name string) {
			select {
			case changed <- name:
			default:
			}
		})
		if err != nil {
			return err
		}
	}

	width, height := window.GetFramebufferSize()
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		width, height = w, h
		gl.Viewport(0, 0, int32(w), int32(h))
	})
	gl.Viewport(0, 0, int32(width), int32(height))

	frame := 0
	for !window.ShouldClose() {
		select {
		case name := <-changed:
			reloadShaders(d, settings.ShaderDir, name)
		default:
		}

		state := d.Program.State(programs.Clock{
			Frame:   frame,
			Seconds: glfw.GetTime(),
		}, width, height)
		d.Draw(state)

		window.SwapBuffers()
		glfw.PollEvents()
		frame++
	}

	return nil
}

func newWindow(width, height int, title string) (*glfw.Window, error) {
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 6)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("glfw.CreateWindow: %w", err)
	}

	window.MakeContextCurrent()
	glfw.SwapInterval(1)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			w.SetShouldClose(true)
		}
	})

	return window, nil
}

// reloadShaders rebuilds the demo when one of its shaders changed on disk.
// Broken shaders are logged and the running ones kept.
func reloadShaders(d *glprog.Demo, dir, name string) {
	if !d.Program.Uses(name) {
		return
	}

	p, err := d.Program.Reload(dir)
	if err != nil {
		log.Println(err)
		return
	}

	if err := d.Reload(p); err != nil {
		log.Println(err)
		return
	}
	log.Println("reloaded", name)
}
