// Command glrender renders a program on the CPU and saves it as a PNG.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stewi1014/gldemos/config"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/render"
)

func main() {
	opts := config.Options("glrender", "Glrender renders a program on the CPU and saves it as a PNG.")
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

// listPrograms prints the programs that have a CPU implementation.
func listPrograms() {
	fmt.Println("programs that can be rendered:")
	for i := 0; i < programs.NumPrograms(); i++ {
		if p := programs.GetProgram(i); p.Prepare != nil {
			fmt.Printf("  %v\t%v\n", p.Name, p.Title)
		}
	}
}

func run(settings config.Settings) error {
	program, err := programs.Lookup(settings.Demo)
	if err == nil && program.Prepare == nil {
		err = fmt.Errorf("%v: %w", program.Name, programs.ErrNoCPUImplementation)
	}
	if err != nil {
		listPrograms()
		return err
	}

	textures, err := programs.LoadTextures(settings.Textures)
	if err != nil {
		return err
	}

	state := program.State(programs.Clock{
		Frame:   int(settings.Time * 60),
		Seconds: settings.Time,
	}, settings.Width, settings.Height)
	state.Uniforms.CamPos = settings.Camera
	state.Uniforms.CamRot = mgl32.Ident3()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	err = render.Save(ctx, render.SaveOptions{
		Name:        settings.Output,
		Width:       settings.Width,
		Height:      settings.Height,
		Antialias:   settings.Antialias,
		Multithread: settings.Multithread,
	}, program, programs.Frame{
		Uniforms: state.Uniforms,
		Textures: textures,
	}, func(stage string, progress func() float64) {
		log.Println(stage)
	})
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("render of %v cancelled", settings.Output)
	}
	if err != nil {
		return err
	}

	log.Printf("saved %v in %v\n", settings.Output, time.Since(start).Round(time.Millisecond))
	return nil
}
