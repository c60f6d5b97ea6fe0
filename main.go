package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/config"
)

func main() {
	opts := config.Options("gldemos", "Gldemos shows the demo programs with a window to pick and save them.")
	settings, err := config.Parse(opts, os.Args[1:])
	if errors.Is(err, config.ErrHelp) {
		fmt.Println(config.Usage(opts))
		return
	}
	if err != nil {
		log.Fatal(err)
	}

	mainContext, mainQuit := context.WithCancelCause(context.Background())

	go func() {
		defer CatchPanicToContext(mainQuit)
		mainQuit(gtkMain(mainContext, settings))
	}()

	<-mainContext.Done()
	if err := context.Cause(mainContext); !errors.Is(err, context.Canceled) {
		log.Println(err)
	}
}

func gtkMain(ctx context.Context, settings config.Settings) error {
	runtime.LockOSThread()

	// Flags are ours, so GTK only sees the program name.
	args := []string{os.Args[0]}
	gtk.Init(&args)
	app, err := gtk.ApplicationNew("com.github.stewi1014.gldemos", glib.APPLICATION_FLAGS_NONE)
	if err != nil {
		return fmt.Errorf("gtk.ApplicationNew failed: %w", err)
	}

	appContext, appQuit := context.WithCancelCause(ctx)
	app.Connect("activate", func() {
		client, listener := NewPipeListener()

		renderWindow := NewRenderWindow(app, client, appContext, appQuit, settings)
		if renderWindow == nil {
			return
		}
		renderWindow.Connect("destroy", func() {
			appQuit(nil)
		})

		configWindow := NewConfigWindow(app, listener, appContext, appQuit, settings)
		if configWindow == nil {
			return
		}
		configWindow.Connect("destroy", func() {
			appQuit(nil)
		})
		configWindow.SetTitle("GL Demos Config")
	})

	go func() {
		<-appContext.Done()
		glib.IdleAdd(app.Quit)
	}()
	app.Run(nil)

	err = context.Cause(appContext)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
