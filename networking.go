package main

import (
	"encoding/gob"
	"net"
	"sync"

	"github.com/stewi1014/gldemos/programs"
)

func init() {
	gob.Register(&SelectProgram{})
	gob.Register(&SetPaused{})
	gob.Register(&FrameInfo{})
}

// SelectProgram asks the render window to show the named program.
type SelectProgram struct {
	Name string
}

// SetPaused stops or restarts the render window's clock.
type SetPaused struct {
	Paused bool
}

// FrameInfo tells the config window what is on screen, so saved images
// match it.
type FrameInfo struct {
	Name     string
	Clock    programs.Clock
	Uniforms programs.Uniforms
}

// NewPipeListener connects the two windows in memory. The listener hands
// out its end of the pipe once.
func NewPipeListener() (client net.Conn, listener net.Listener) {
	clientPipe, listenerPipe := net.Pipe()
	return clientPipe, &pipeListener{
		pipe: listenerPipe,
		done: make(chan struct{}),
	}
}

type pipeListener struct {
	pipe     net.Conn
	accepted bool
	done     chan struct{}
	close    sync.Once
	mu       sync.Mutex
}

func (p *pipeListener) Accept() (net.Conn, error) {
	p.mu.Lock()
	if !p.accepted {
		p.accepted = true
		p.mu.Unlock()
		return p.pipe, nil
	}
	p.mu.Unlock()

	<-p.done
	return nil, net.ErrClosed
}

func (p *pipeListener) Close() error {
	var err error
	p.close.Do(func() {
		close(p.done)
		err = p.pipe.Close()
	})
	return err
}

func (p *pipeListener) Addr() net.Addr {
	return p.pipe.LocalAddr()
}
