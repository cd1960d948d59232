package main

import (
	"bytes"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// screenWriter shows the most recent diagnostic lines on a tcell screen
type screenWriter struct {
	screen tcell.Screen
	title  string

	mu      sync.Mutex
	partial []byte
	lines   []string
}

func newScreenWriter(screen tcell.Screen, title string) *screenWriter {
	w := &screenWriter{screen: screen, title: title}
	w.draw()
	return w
}

// Write implements io.Writer; a frame is redrawn once per completed block
func (w *screenWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.partial = append(w.partial, p...)
	for {
		i := bytes.IndexByte(w.partial, '\n')
		if i < 0 {
			break
		}
		w.lines = append(w.lines, string(w.partial[:i]))
		w.partial = w.partial[i+1:]
	}

	_, h := w.screen.Size()
	if keep := max(h-2, 1); len(w.lines) > keep {
		w.lines = w.lines[len(w.lines)-keep:]
	}
	w.drawLocked()
	return len(p), nil
}

// status replaces the title line
func (w *screenWriter) status(title string) {
	w.mu.Lock()
	w.title = title
	w.drawLocked()
	w.mu.Unlock()
}

func (w *screenWriter) draw() {
	w.mu.Lock()
	w.drawLocked()
	w.mu.Unlock()
}

func (w *screenWriter) drawLocked() {
	w.screen.Clear()
	titleStyle := tcell.StyleDefault.Bold(true).Foreground(tcell.ColorYellow)
	putLine(w.screen, 0, w.title, titleStyle)
	for i, line := range w.lines {
		putLine(w.screen, i+2, strings.TrimRight(line, "\r"), tcell.StyleDefault)
	}
	w.screen.Show()
}

func putLine(s tcell.Screen, y int, text string, style tcell.Style) {
	width, _ := s.Size()
	x := 0
	for _, r := range text {
		if x >= width {
			return
		}
		s.SetContent(x, y, r, nil, style)
		x++
	}
}
