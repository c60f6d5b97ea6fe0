package main

import (
	"context"
	"fmt"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/render"
)

const previewSize = 600

// save renders in the background behind a progress dialog, then shows the
// result.
func save(
	ctx context.Context,
	window *gtk.ApplicationWindow,
	opts render.SaveOptions,
	program programs.Program,
	frame programs.Frame,
) {
	ctx, cancel := context.WithCancelCause(ctx)
	AttachErrorDialog(window, ctx)

	progress, err := NewProgressDialog(
		ctx, window, "Save Image",
		fmt.Sprintf("Saving %v", opts.Name),
		func() { cancel(context.Canceled) },
	)
	if err != nil {
		cancel(err)
		return
	}

	frame.Uniforms.Resize(opts.Width, opts.Height)

	go func() {
		defer CatchPanicToContext(cancel)

		err := render.Save(ctx, opts, program, frame, progress.SetStage)
		if err != nil {
			cancel(err)
			return
		}

		glib.IdleAdd(func() {
			defer cancel(context.Canceled)

			_, err := NewRenderPreview(window, opts.Name)
			if err != nil {
				NewErrorDialog(window, err)
			}
		})
	}()
}
