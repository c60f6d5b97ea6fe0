package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
)

func CatchPanicToContext(ctxCancel context.CancelCauseFunc) {
	if v := recover(); v != nil {
		err, ok := v.(error)
		if !ok {
			err = fmt.Errorf("panic: %v", v)
		}
		err = fmt.Errorf("%w\n%v", err, string(debug.Stack()))
		if ctxCancel != nil {
			ctxCancel(err)
		}
	}
}

func WrapErrorDialog(parent *gtk.ApplicationWindow, failable func() error) func() {
	return func() {
		err := failable()
		if err != nil {
			log.Println(err)
			glib.IdleAdd(func() {
				NewErrorDialog(parent, err)
			})
		}
	}
}

// AttachErrorDialog shows the cause of ctx ending unless it was cancelled.
func AttachErrorDialog(parent *gtk.ApplicationWindow, ctx context.Context) {
	go func() {
		<-ctx.Done()
		err := context.Cause(ctx)
		if !errors.Is(err, context.Canceled) {
			log.Println(err)
			glib.IdleAdd(func() {
				NewErrorDialog(parent, err)
			})
		}
	}()
}

func NewErrorDialog(
	parent *gtk.ApplicationWindow,
	err error,
) {
	_, file, line, ok := runtime.Caller(1)

	fileLocation := "unknown file"
	if ok {
		fileLocation = fmt.Sprintf("%s:%v", file, line)
	}

	dialog := gtk.MessageDialogNew(
		parent,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		gtk.MESSAGE_ERROR,
		gtk.BUTTONS_CLOSE,
		"Error in %s: %s",
		fileLocation,
		err.Error(),
	)

	dialog.Connect("response", dialog.Destroy)

	messageArea, err := dialog.GetMessageArea()
	if err != nil {
		log.Println(err)

	} else {
		messageArea.GetChildren().Foreach(func(item interface{}) {
			if widget, ok := item.(*gtk.Widget); ok {
				l, err := gtk.WidgetToLabel(widget)
				if err != nil {
					return
				}

				l.SetSelectable(true)
			}
		})
	}

	dialog.SetKeepAbove(true)
	dialog.Run()
}

// NewProgressDialog shows a progress bar until parentCtx is done.
func NewProgressDialog(
	parentCtx context.Context,
	parentWindow gtk.IWindow,
	title string,
	description string,
	onCancel func(),
) (*ProgressDialog, error) {
	var err error
	dialog := &ProgressDialog{}
	dialog.Dialog, err = gtk.DialogNewWithButtons(
		title,
		parentWindow,
		gtk.DIALOG_DESTROY_WITH_PARENT,
		[]interface{}{"CANCEL", gtk.RESPONSE_CANCEL},
	)
	if err != nil {
		return nil, fmt.Errorf("gtk.DialogNewWithButtons: %w", err)
	}

	dialog.SetKeepAbove(true)
	dialog.Connect("response", func(dialog *gtk.Dialog, response gtk.ResponseType) {
		if response == gtk.RESPONSE_CANCEL {
			onCancel()
		}
	})

	ca, err := dialog.GetContentArea()
	if err != nil {
		return nil, fmt.Errorf("GetContentArea: %w", err)
	}

	dialog.label, _ = gtk.LabelNew(description)
	ca.Add(dialog.label)

	dialog.progressBar, _ = gtk.ProgressBarNew()
	dialog.progressBar.SetProperty("show-text", true)
	dialog.progressBar.SetSizeRequest(500, 80)
	ca.Add(dialog.progressBar)

	dialog.ShowAll()
	go dialog.periodicUpdate(parentCtx)
	return dialog, nil
}

type ProgressDialog struct {
	*gtk.Dialog
	progressBar *gtk.ProgressBar
	label       *gtk.Label

	progressFunc func() float64
}

// SetStage names what is being done and where to read its progress from.
// It is safe to call from any goroutine.
func (dialog *ProgressDialog) SetStage(stage string, supplier func() float64) {
	glib.IdleAdd(func() {
		dialog.progressBar.SetText(stage)
		dialog.progressFunc = supplier
	})
}

func (dialog *ProgressDialog) periodicUpdate(ctx context.Context) {
	ticker := time.NewTicker(time.Second / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			glib.IdleAdd(func() {
				if dialog.progressFunc != nil {
					dialog.progressBar.SetFraction(dialog.progressFunc())
				}
			})
		case <-ctx.Done():
			glib.IdleAdd(func() {
				dialog.Destroy()
			})
			return
		}
	}
}

// NewRenderPreview shows a saved render scaled to fit in previewSize, with
// its name and size. Delete removes the file and Keep closes the window.
func NewRenderPreview(parent *gtk.ApplicationWindow, name string) (*RenderPreview, error) {
	app, err := parent.GetApplication()
	if err != nil {
		return nil, err
	}

	full, err := gdk.PixbufNewFromFile(name)
	if err != nil {
		return nil, fmt.Errorf("loading %v: %w", name, err)
	}
	width, height := previewFit(full.GetWidth(), full.GetHeight())
	scaled, err := full.ScaleSimple(width, height, gdk.INTERP_BILINEAR)
	if err != nil {
		return nil, fmt.Errorf("scaling preview: %w", err)
	}

	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}

	p := &RenderPreview{name: name, parent: parent}
	p.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		return nil, fmt.Errorf("gtk.ApplicationWindowNew: %w", err)
	}
	p.SetTitle(filepath.Base(name))

	image, err := gtk.ImageNewFromPixbuf(scaled)
	if err != nil {
		return nil, fmt.Errorf("gtk.ImageNewFromPixbuf: %w", err)
	}
	image.SetHExpand(true)
	image.SetVExpand(true)

	details, err := gtk.LabelNew(fmt.Sprintf(
		"%v\n%vx%v, %.1f KiB",
		name, full.GetWidth(), full.GetHeight(), float64(info.Size())/1024,
	))
	if err != nil {
		return nil, fmt.Errorf("gtk.LabelNew: %w", err)
	}
	details.SetSelectable(true)

	keep, err := gtk.ButtonNewWithLabel("Keep")
	if err != nil {
		return nil, fmt.Errorf("gtk.ButtonNewWithLabel: %w", err)
	}
	keep.Connect("clicked", p.Destroy)

	remove, err := gtk.ButtonNewWithLabel("Delete")
	if err != nil {
		return nil, fmt.Errorf("gtk.ButtonNewWithLabel: %w", err)
	}
	remove.Connect("clicked", p.delete)

	grid, err := gtk.GridNew()
	if err != nil {
		return nil, fmt.Errorf("gtk.GridNew: %w", err)
	}
	grid.SetRowSpacing(6)
	grid.Attach(image, 0, 0, 5, 1)
	grid.Attach(details, 0, 1, 5, 1)
	grid.Attach(keep, 0, 2, 1, 1)
	grid.Attach(remove, 4, 2, 1, 1)

	p.Add(grid)
	p.ShowAll()
	return p, nil
}

type RenderPreview struct {
	*gtk.ApplicationWindow
	parent *gtk.ApplicationWindow
	name   string
}

func (p *RenderPreview) delete() {
	if err := os.Remove(p.name); err != nil && !errors.Is(err, os.ErrNotExist) {
		NewErrorDialog(p.parent, err)
		return
	}
	log.Println("deleted", p.name)
	p.Destroy()
}

// previewFit scales width and height down to fit in previewSize, keeping
// the aspect ratio. Small images are left alone.
func previewFit(width, height int) (int, int) {
	largest := max(width, height)
	if largest <= previewSize {
		return width, height
	}
	return max(1, width*previewSize/largest), max(1, height*previewSize/largest)
}
