package main

import (
	"fmt"
	"io"
	"sync"
)

// syncWriter serializes writes from the recognizer goroutine and the
// command goroutine.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}

// terminalNotifier prints editor notices.
type terminalNotifier struct {
	out io.Writer
	err io.Writer
}

func (n terminalNotifier) Success(msg string) { fmt.Fprintln(n.out, msg) }
func (n terminalNotifier) Alert(msg string)   { fmt.Fprintln(n.err, msg) }
func (n terminalNotifier) Error(msg string)   { fmt.Fprintln(n.err, msg) }
