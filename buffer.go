package kprint

import (
	"bytes"
	"fmt"
	"io"
)

// bufferChannel assembles the whole message in an owned buffer and hands
// it to the sink in exactly one write, so a message is atomic from the
// sink's point of view. The buffer lives only for the one call; its
// allocation behavior is the ambient allocator's contract.
type bufferChannel struct {
	w   io.Writer
	buf bytes.Buffer
}

func newBufferChannel(w io.Writer) channel { return &bufferChannel{w: w} }

func (c *bufferChannel) printf(format string, args []any) error {
	_, err := fmt.Fprintf(&c.buf, format, args...)
	return err
}

func (c *bufferChannel) writeString(s string) error {
	c.buf.WriteString(s)
	return nil
}

func (c *bufferChannel) flush() error {
	if c.w == nil || c.buf.Len() == 0 {
		return nil
	}
	_, err := c.w.Write(c.buf.Bytes())
	return err
}
