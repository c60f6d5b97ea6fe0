package main

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"net"
	"path/filepath"
	"reflect"

	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/config"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/render"
	"github.com/stewi1014/gldemos/texture"
)

const maxImageSize = 16384

func NewConfigWindow(
	app *gtk.Application,
	listener net.Listener,
	ctx context.Context,
	quit context.CancelCauseFunc,
	settings config.Settings,
) *ConfigWindow {
	var err error
	w := &ConfigWindow{
		ctx:         ctx,
		quit:        quit,
		settings:    settings,
		sendMessage: make(chan interface{}, 8),
	}

	w.textures, err = programs.LoadTextures(settings.Textures)
	if err != nil {
		quit(err)
		return nil
	}

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(280, 300)

	if err := w.build(); err != nil {
		quit(err)
		return nil
	}
	w.ShowAll()

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			quit(err)
			return
		}
		context.AfterFunc(ctx, func() { listener.Close() })

		go w.handleSend(conn)
		w.handleReceive(conn)
	}()

	return w
}

type ConfigWindow struct {
	*gtk.ApplicationWindow

	ctx      context.Context
	quit     context.CancelCauseFunc
	settings config.Settings
	textures []*texture.Image

	programSelect *gtk.ComboBoxText
	pause         *gtk.CheckButton
	width         *gtk.SpinButton
	height        *gtk.SpinButton
	antialias     *gtk.SpinButton
	multithread   *gtk.CheckButton
	saveButton    *gtk.Button
	status        *gtk.Label

	current     *FrameInfo
	sendMessage chan interface{}
}

func (w *ConfigWindow) build() error {
	var err error
	grid, err := gtk.GridNew()
	if err != nil {
		return fmt.Errorf("gtk.GridNew: %w", err)
	}
	grid.SetRowSpacing(6)
	grid.SetColumnSpacing(6)
	grid.SetBorderWidth(10)

	w.programSelect, err = gtk.ComboBoxTextNew()
	if err != nil {
		return fmt.Errorf("gtk.ComboBoxTextNew: %w", err)
	}
	for _, name := range programs.Names() {
		w.programSelect.AppendText(name)
	}
	w.programSelect.SetActive(programs.Index(w.settings.Demo))
	w.programSelect.Connect("changed", func() {
		w.send(&SelectProgram{Name: w.programSelect.GetActiveText()})
	})

	w.pause, err = gtk.CheckButtonNewWithLabel("Pause")
	if err != nil {
		return fmt.Errorf("gtk.CheckButtonNewWithLabel: %w", err)
	}
	w.pause.Connect("toggled", func() {
		w.send(&SetPaused{Paused: w.pause.GetActive()})
	})

	w.width, err = gtk.SpinButtonNewWithRange(1, maxImageSize, 1)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.width.SetValue(float64(w.settings.Width))

	w.height, err = gtk.SpinButtonNewWithRange(1, maxImageSize, 1)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.height.SetValue(float64(w.settings.Height))

	w.antialias, err = gtk.SpinButtonNewWithRange(0, 4, 0.1)
	if err != nil {
		return fmt.Errorf("gtk.SpinButtonNewWithRange: %w", err)
	}
	w.antialias.SetValue(float64(w.settings.Antialias))

	w.multithread, err = gtk.CheckButtonNewWithLabel("Multithread")
	if err != nil {
		return fmt.Errorf("gtk.CheckButtonNewWithLabel: %w", err)
	}
	w.multithread.SetActive(w.settings.Multithread)

	w.saveButton, err = gtk.ButtonNewWithLabel("Save PNG")
	if err != nil {
		return fmt.Errorf("gtk.ButtonNewWithLabel: %w", err)
	}
	w.saveButton.SetSensitive(false)
	w.saveButton.Connect("clicked", WrapErrorDialog(w.ApplicationWindow, w.save))

	w.status, err = gtk.LabelNew("")
	if err != nil {
		return fmt.Errorf("gtk.LabelNew: %w", err)
	}

	row := 0
	attach := func(label string, widget gtk.IWidget) {
		if label != "" {
			l, _ := gtk.LabelNew(label)
			l.SetHAlign(gtk.ALIGN_START)
			grid.Attach(l, 0, row, 1, 1)
			grid.Attach(widget, 1, row, 1, 1)
		} else {
			grid.Attach(widget, 0, row, 2, 1)
		}
		row++
	}

	attach("Program", w.programSelect)
	attach("", w.pause)
	attach("Width", w.width)
	attach("Height", w.height)
	attach("Antialias", w.antialias)
	attach("", w.multithread)
	attach("", w.saveButton)
	attach("", w.status)

	w.Add(grid)
	return nil
}

func (w *ConfigWindow) saveOptions(name string) render.SaveOptions {
	return render.SaveOptions{
		Name:        name,
		Width:       w.width.GetValueAsInt(),
		Height:      w.height.GetValueAsInt(),
		Antialias:   float32(w.antialias.GetValue()),
		Multithread: w.multithread.GetActive(),
	}
}

func (w *ConfigWindow) save() error {
	if w.current == nil {
		return fmt.Errorf("nothing rendered yet")
	}

	program, err := programs.Lookup(w.current.Name)
	if err != nil {
		return err
	}

	chooser, err := gtk.FileChooserDialogNewWith2Buttons(
		"Save Image", w.ApplicationWindow, gtk.FILE_CHOOSER_ACTION_SAVE,
		"Cancel", gtk.RESPONSE_CANCEL,
		"Save", gtk.RESPONSE_ACCEPT,
	)
	if err != nil {
		return fmt.Errorf("gtk.FileChooserDialogNewWith2Buttons: %w", err)
	}
	defer chooser.Destroy()

	chooser.SetDoOverwriteConfirmation(true)
	chooser.SetCurrentName(filepath.Base(w.settings.Output))
	if chooser.Run() != gtk.RESPONSE_ACCEPT {
		return nil
	}

	save(w.ctx, w.ApplicationWindow, w.saveOptions(chooser.GetFilename()), program, programs.Frame{
		Uniforms: w.current.Uniforms,
		Textures: w.textures,
	})
	return nil
}

// show updates the controls for what the render window is showing.
func (w *ConfigWindow) show(info *FrameInfo) {
	w.current = info

	program, err := programs.Lookup(info.Name)
	w.saveButton.SetSensitive(err == nil && program.Prepare != nil)

	w.status.SetText(fmt.Sprintf("frame %v, %.2fs", info.Clock.Frame, info.Clock.Seconds))
}

// send drops the message if the render window has fallen behind.
func (w *ConfigWindow) send(msg interface{}) {
	select {
	case w.sendMessage <- msg:
	default:
		log.Println("render window busy, dropped", reflect.TypeOf(msg))
	}
}

func (w *ConfigWindow) handleSend(conn net.Conn) {
	enc := gob.NewEncoder(conn)
	defer conn.Close()

	for {
		select {
		case msg := <-w.sendMessage:
			err := enc.Encode(&msg)
			if err != nil {
				w.quit(err)
				return
			}
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *ConfigWindow) handleReceive(conn net.Conn) {
	dec := gob.NewDecoder(conn)

	for {
		var v interface{}
		err := dec.Decode(&v)
		if err != nil {
			if w.ctx.Err() == nil {
				w.quit(fmt.Errorf("config window: %w", err))
			}
			conn.Close()
			return
		}

		switch msg := v.(type) {
		case *FrameInfo:
			glib.IdleAdd(func() {
				w.show(msg)
			})
		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}
