package main

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner writes a progress indicator to w while a long operation
// runs. A nil writer disables it entirely, keeping quiet runs and
// redirected output clean.
type Spinner struct {
	w       io.Writer
	message string

	once sync.Once
	done chan struct{}
	wg   sync.WaitGroup
}

func NewSpinner(w io.Writer, message string) *Spinner {
	message = strings.TrimSpace(message)
	message = strings.TrimRight(message, ".")
	return &Spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
	}
}

func (s *Spinner) Run(fn func()) {
	s.start()
	defer s.stop()
	fn()
}

func (s *Spinner) start() {
	if s.w == nil {
		return
	}
	s.wg.Add(1)
	go s.spin()
}

func (s *Spinner) stop() {
	if s.w == nil {
		return
	}
	s.once.Do(func() {
		close(s.done)
		s.wg.Wait()
		io.WriteString(s.w, "\x1b[0G\x1b[2K\x1b[0G")
	})
}

func (s *Spinner) spin() {
	defer s.wg.Done()
	tick := time.NewTicker(time.Millisecond * 90)
	defer tick.Stop()
	for i := 0; ; i++ {
		select {
		case <-tick.C:
			fmt.Fprintf(s.w, "\r%s %s...", spinFrames[i%len(spinFrames)], s.message)
		case <-s.done:
			return
		}
	}
}
