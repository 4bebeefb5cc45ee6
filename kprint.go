package kprint

import (
	"errors"
	"fmt"
	"io"
)

// Sentinel errors for programmatic error handling. Note that [Print] and
// [Println] never return errors; these surface only from the
// configuration helpers.
var (
	ErrUnsupportedMode = errors.New("unsupported mode")
	ErrUnsupportedDump = errors.New("unsupported dump style")
)

// Mode selects the output channel behind [Print] and [Println].
type Mode string

const (
	// Stream forwards each formatted fragment to the sink as it is
	// produced, with no whole-message buffer.
	Stream Mode = "stream"
	// Buffered renders the complete message in memory and issues exactly
	// one sink write per message.
	Buffered Mode = "buffered"
)

var modes = []Mode{Stream, Buffered}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Modes returns all supported mode names.
func Modes() []Mode {
	out := make([]Mode, len(modes))
	copy(out, modes)
	return out
}

// ParseMode parses a mode string, for hosts that resolve the output mode
// from a boot flag or configuration file.
func ParseMode(s string) (Mode, error) {
	for _, m := range modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedMode, s)
}

// sink is the globally registered output destination. nil drops output.
// No lock: serializing concurrent access is the sink's contract, and the
// sink is expected to be wired once during early startup.
var sink io.Writer

// SetSink registers the output destination for the whole package and
// returns the previous one. A nil sink silently drops all output.
//
// The sink must tolerate being invoked from every execution context in
// which the entry points are used, including interrupt context, and must
// perform its own serialization under concurrent invocation.
func SetSink(w io.Writer) (prev io.Writer) {
	prev = sink
	sink = w
	return prev
}

// channel is one message-rendering strategy. writeString carries literal
// fragments, printf carries a format segment with its operands, and flush
// marks the end of the message.
type channel interface {
	printf(format string, args []any) error
	writeString(s string) error
	flush() error
}

// makeChannel is resolved once, at build time via the kprint_buffered tag
// or at process start via [Configure]. Never reassigned per call.
var makeChannel func(io.Writer) channel = newDefaultChannel

// Print renders its arguments to the registered sink. If the first
// argument is a string it is treated as a fmt format string for the
// remaining arguments; otherwise the arguments render as fmt.Sprint
// would. No trailing newline is added.
//
// Print never fails and never panics on sink failure: every write error
// is discarded.
func Print(a ...any) {
	emit(makeChannel(sink), false, a)
}

// Println is [Print] with exactly one trailing newline. With no arguments
// it emits the newline alone.
func Println(a ...any) {
	emit(makeChannel(sink), true, a)
}

func emit(ch channel, newline bool, a []any) {
	if format, args, ok := splitFormat(a); ok {
		_ = ch.printf(format, args)
	} else if len(a) > 0 {
		_ = ch.writeString(fmt.Sprint(a...))
	}
	if newline {
		_ = ch.writeString("\n")
	}
	_ = ch.flush()
}

// splitFormat separates the optional leading format string from its
// operands. A non-string first argument means there is no format and the
// whole slice renders by default rules.
func splitFormat(a []any) (format string, args []any, ok bool) {
	if len(a) == 0 {
		return "", nil, false
	}
	s, ok := a[0].(string)
	if !ok {
		return "", nil, false
	}
	return s, a[1:], true
}
