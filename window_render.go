package main

// #cgo pkg-config: gdk-3.0 glib-2.0 gobject-2.0
// #include <gdk/gdk.h>
import "C"

import (
	"context"
	"encoding/gob"
	"fmt"
	"log"
	"math"
	"net"
	"reflect"
	"time"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/gotk3/gotk3/gdk"
	"github.com/gotk3/gotk3/glib"
	"github.com/gotk3/gotk3/gtk"
	"github.com/stewi1014/gldemos/config"
	"github.com/stewi1014/gldemos/glprog"
	"github.com/stewi1014/gldemos/programs"
	"github.com/stewi1014/gldemos/raymarch"
	"github.com/stewi1014/gldemos/texture"
)

const (
	framesPerSecond = 60
	minDistance     = 1.5
	maxDistance     = 20
	maxPitch        = 1.5
)

func NewRenderWindow(
	app *gtk.Application,
	conn net.Conn,
	ctx context.Context,
	quit context.CancelCauseFunc,
	settings config.Settings,
) *RenderWindow {
	var err error
	w := &RenderWindow{
		ctx:         ctx,
		quit:        quit,
		settings:    settings,
		sendMessage: make(chan interface{}, 8),
	}
	w.yaw, w.pitch, w.distance = raymarch.OrbitAngles(mgl64.Vec3{
		float64(settings.Camera[0]),
		float64(settings.Camera[1]),
		float64(settings.Camera[2]),
	})

	go w.handleSend(conn)

	w.ApplicationWindow, err = gtk.ApplicationWindowNew(app)
	if err != nil {
		quit(fmt.Errorf("gtk.ApplicationWindowNew: %w", err))
		return nil
	}

	w.SetDefaultSize(getWindowSize(settings))

	w.gla, err = gtk.GLAreaNew()
	if err != nil {
		quit(fmt.Errorf("gtk.GLAreaNew: %w", err))
		return nil
	}

	w.gla.SetRequiredVersion(4, 6)
	w.gla.SetHasDepthBuffer(true)
	w.gla.Connect("realize", w.glaRealize)
	w.gla.Connect("render", w.glaRender)
	w.gla.Connect("unrealize", w.glaUnrealize)

	w.gla.SetEvents(
		int(gdk.BUTTON_PRESS_MASK) |
			int(gdk.BUTTON_RELEASE_MASK) |
			int(gdk.SCROLL_MASK),
	)
	w.gla.Connect("resize", w.resize)
	w.gla.Connect("scroll-event", w.scroll)
	w.gla.Connect("button-press-event", w.button)
	w.gla.Connect("button-release-event", w.button)

	w.Add(w.gla)
	w.ShowAll()

	go w.handleReceive(conn)

	return w
}

func getWindowSize(settings config.Settings) (width, height int) {
	width = settings.Width
	height = settings.Height

	display, err := gdk.DisplayGetDefault()
	if err != nil {
		return
	}

	monitor, err := display.GetPrimaryMonitor()
	if err != nil {
		return
	}

	maxWidth := int(float32(monitor.GetGeometry().GetWidth()) * .8)
	maxHeight := int(float32(monitor.GetGeometry().GetHeight()) * .8)
	return min(width, maxWidth), min(height, maxHeight)
}

type RenderWindow struct {
	*gtk.ApplicationWindow
	gla           *gtk.GLArea
	clickingMouse *gdk.Device
	clickPos      mgl32.Vec2
	width         int
	height        int

	ctx      context.Context
	quit     context.CancelCauseFunc
	settings config.Settings

	textures []*texture.Image
	demo     *glprog.Demo

	frame    int
	elapsed  time.Duration
	lastTick time.Time
	paused   bool

	yaw, pitch, distance float64

	sendMessage chan interface{}
}

func (w *RenderWindow) glaRealize(gla *gtk.GLArea) {
	gla.MakeCurrent()

	err := gl.Init()
	if err != nil {
		w.quit(fmt.Errorf("gl.Init: %w", err))
		return
	}
	log.Println("OpenGL version", gl.GoStr(gl.GetString(gl.VERSION)))

	if w.settings.Debug {
		glprog.EnableDebugOutput()
	}

	w.textures, err = programs.LoadTextures(w.settings.Textures)
	if err != nil {
		w.quit(err)
		return
	}

	err = w.loadProgram(w.settings.Demo)
	if err != nil {
		w.quit(err)
		return
	}

	if w.settings.ShaderDir != "" {
		err = programs.WatchShaders(w.ctx, w.settings.ShaderDir, func(name string) {
			glib.IdleAdd(func() {
				w.reloadShader(name)
			})
		})
		if err != nil {
			log.Println(err)
		}
	}

	w.lastTick = time.Now()
	glib.TimeoutAdd(1000/framesPerSecond, w.tick)
}

// tick advances the clock and redraws. It stops when the window goes.
func (w *RenderWindow) tick() bool {
	if w.ctx.Err() != nil || w.demo == nil {
		return false
	}

	now := time.Now()
	if !w.paused {
		w.elapsed += now.Sub(w.lastTick)
		w.frame++
		if w.frame%framesPerSecond == 0 {
			w.sendFrameInfo()
		}
	}
	w.lastTick = now

	w.gla.QueueRender()
	return true
}

func (w *RenderWindow) clock() programs.Clock {
	return programs.Clock{
		Frame:   w.frame,
		Seconds: w.elapsed.Seconds(),
	}
}

func (w *RenderWindow) state() programs.State {
	s := w.demo.Program.State(w.clock(), w.width, w.height)
	s.Uniforms.SetCamera(raymarch.Orbit(w.yaw, w.pitch, w.distance))
	return s
}

func (w *RenderWindow) sendFrameInfo() {
	if w.demo == nil {
		return
	}

	w.send(&FrameInfo{
		Name:     w.demo.Program.Name,
		Clock:    w.clock(),
		Uniforms: w.state().Uniforms,
	})
}

func (w *RenderWindow) glaRender(gla *gtk.GLArea) {
	if w.demo == nil {
		return
	}

	if w.clickingMouse != nil {
		pos := w.getMousePos()
		d := pos.Sub(w.clickPos)
		w.yaw -= float64(d.X()) * math.Pi
		w.pitch = mgl64.Clamp(w.pitch-float64(d.Y())*math.Pi, -maxPitch, maxPitch)
		w.clickPos = pos
	}

	w.gla.AttachBuffers()
	w.demo.Draw(w.state())
}

func (w *RenderWindow) glaUnrealize(gla *gtk.GLArea) {
	gla.MakeCurrent()
	if w.demo != nil {
		w.demo.Delete()
		w.demo = nil
	}
}

func (w *RenderWindow) resize(gla *gtk.GLArea, width, height int) {
	w.width, w.height = width, height
	gl.Viewport(0, 0, int32(w.width), int32(w.height))
}

func (w *RenderWindow) getMousePos() mgl32.Vec2 {
	var x, y int
	screen := w.GetScreen()
	err := w.clickingMouse.GetPosition(&screen, &x, &y)
	if err != nil {
		log.Println(err)
		return mgl32.Vec2{}
	}

	return mgl32.Vec2{float32(x) / float32(w.height), float32(y) / float32(w.height)}
}

func (w *RenderWindow) button(gla *gtk.GLArea, event *gdk.Event) {
	button := gdk.EventButtonNewFromEvent(event)
	gla.QueueRender()

	if button.Type() == gdk.EVENT_BUTTON_PRESS {
		C_GdkDevice := (*C.GdkEventButton)(unsafe.Pointer(button.Native())).device
		obj := &glib.Object{glib.ToGObject(unsafe.Pointer(C_GdkDevice))}
		w.clickingMouse = &gdk.Device{obj}
		w.clickPos = w.getMousePos()

	} else if button.Type() == gdk.EVENT_BUTTON_RELEASE {
		w.clickingMouse = nil
		w.sendFrameInfo()
	}
}

func (w *RenderWindow) scroll(gla *gtk.GLArea, event *gdk.Event) {
	scroll := gdk.EventScrollNewFromEvent(event)
	gla.QueueRender()

	if scroll.Direction() == gdk.SCROLL_DOWN {
		w.distance *= 1.1
	} else if scroll.Direction() == gdk.SCROLL_UP {
		w.distance /= 1.1
	}
	w.distance = mgl64.Clamp(w.distance, minDistance, maxDistance)

	w.sendFrameInfo()
}

func (w *RenderWindow) loadProgram(name string) error {
	program, err := programs.Lookup(name)
	if err != nil {
		return err
	}

	program, err = program.Reload(w.settings.ShaderDir)
	if err != nil {
		return err
	}

	w.gla.MakeCurrent()
	demo, err := glprog.Load(program, w.textures)
	if err != nil {
		return err
	}

	if w.demo != nil {
		w.demo.Delete()
	}
	w.demo = demo
	w.frame, w.elapsed = 0, 0
	w.SetTitle(program.Title)

	w.sendFrameInfo()
	return nil
}

func (w *RenderWindow) reloadShader(name string) {
	if w.demo == nil || !w.demo.Program.Uses(name) {
		return
	}

	p, err := w.demo.Program.Reload(w.settings.ShaderDir)
	if err != nil {
		log.Println(err)
		return
	}

	w.gla.MakeCurrent()
	if err := w.demo.Reload(p); err != nil {
		log.Println(err)
		return
	}
	log.Println("reloaded", name)
}

// send drops the message if the config window has fallen behind.
func (w *RenderWindow) send(msg interface{}) {
	select {
	case w.sendMessage <- msg:
	default:
	}
}

func (w *RenderWindow) handleSend(conn net.Conn) {
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

func (w *RenderWindow) handleReceive(conn net.Conn) {
	dec := gob.NewDecoder(conn)

	for {
		var v interface{}
		err := dec.Decode(&v)
		if err != nil {
			if w.ctx.Err() == nil {
				w.quit(fmt.Errorf("render window: %w", err))
			}
			conn.Close()
			return
		}

		switch msg := v.(type) {
		case *SelectProgram:
			glib.IdleAdd(func() {
				err := w.loadProgram(msg.Name)
				if err != nil {
					log.Println(err)
					NewErrorDialog(w.ApplicationWindow, err)
				}
				w.gla.QueueRender()
			})

		case *SetPaused:
			glib.IdleAdd(func() {
				w.paused = msg.Paused
				w.sendFrameInfo()
			})

		default:
			log.Println("unknown message received", reflect.TypeOf(v))
		}
	}
}
