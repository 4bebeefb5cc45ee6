//go:build kprint_buffered

package kprint

import "io"

// DefaultMode is the output mode compiled into this build.
const DefaultMode = Buffered

func newDefaultChannel(w io.Writer) channel { return newBufferChannel(w) }
