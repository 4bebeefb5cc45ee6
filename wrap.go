package kprint

import (
	"bytes"
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// WrapWriter decorates a sink with hard wrapping at a fixed display
// width, for framebuffer or serial consoles that do not wrap on their
// own. Width is measured in display cells, so wide runes count as two.
// It carries the current column across writes; like the sink it wraps,
// it is not safe for unserialized concurrent use.
type WrapWriter struct {
	w    io.Writer
	cols int
	col  int
}

// NewWrapWriter returns a WrapWriter that inserts a newline whenever a
// rune would extend a line past cols display cells. A cols of zero or
// less disables wrapping.
func NewWrapWriter(w io.Writer, cols int) *WrapWriter {
	return &WrapWriter{w: w, cols: cols}
}

// Write implements io.Writer. Each call issues at most one write to the
// underlying sink.
func (w *WrapWriter) Write(p []byte) (int, error) {
	if w.cols <= 0 {
		return w.w.Write(p)
	}
	var out bytes.Buffer
	for i := 0; i < len(p); {
		r, size := utf8.DecodeRune(p[i:])
		if r == '\n' {
			out.WriteByte('\n')
			w.col = 0
			i++
			continue
		}
		rw := runewidth.RuneWidth(r)
		if w.col+rw > w.cols {
			out.WriteByte('\n')
			w.col = 0
		}
		// Copy the original bytes through; the rune is only measured, so
		// invalid UTF-8 reaches the sink unmodified.
		out.Write(p[i : i+size])
		w.col += rw
		i += size
	}
	if _, err := w.w.Write(out.Bytes()); err != nil {
		return 0, err
	}
	return len(p), nil
}
