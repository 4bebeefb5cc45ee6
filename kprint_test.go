package kprint_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/bjaus/kprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Test sinks ---

// failSink fails every write.
type failSink struct{}

func (failSink) Write(p []byte) (int, error) { return 0, errors.New("sink write failed") }

// countSink records the number of writes and their payloads.
type countSink struct {
	writes [][]byte
}

func (s *countSink) Write(p []byte) (int, error) {
	s.writes = append(s.writes, bytes.Clone(p))
	return len(p), nil
}

func (s *countSink) String() string {
	var b bytes.Buffer
	for _, w := range s.writes {
		b.Write(w)
	}
	return b.String()
}

func useSink(t *testing.T, w *countSink) {
	t.Helper()
	prev := kprint.SetSink(w)
	t.Cleanup(func() { kprint.SetSink(prev) })
}

func useMode(t *testing.T, m kprint.Mode) {
	t.Helper()
	require.NoError(t, kprint.Configure(kprint.Config{Mode: m}))
	t.Cleanup(func() {
		require.NoError(t, kprint.Configure(kprint.Config{Mode: kprint.DefaultMode}))
	})
}

// --- Entry points ---

func TestPrintNoTrailingNewline(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	kprint.Print("%d + %d = %d", 2, 2, 4)
	assert.Equal(t, "2 + 2 = 4", sink.String())
}

func TestPrintlnAddsExactlyOneNewline(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	kprint.Println("%d + %d = %d", 2, 2, 4)
	assert.Equal(t, "2 + 2 = 4\n", sink.String())
}

func TestPrintlnNoArgs(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	kprint.Println()
	assert.Equal(t, "\n", sink.String())
}

func TestPrintNonStringFirstArg(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	kprint.Println(42)
	kprint.Println(1, 2)
	assert.Equal(t, "42\n1 2\n", sink.String())
}

func TestPrintEmptyFormat(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	kprint.Print("")
	assert.Empty(t, sink.writes)
}

func TestPrintNilSink(t *testing.T) {
	prev := kprint.SetSink(nil)
	t.Cleanup(func() { kprint.SetSink(prev) })
	assert.NotPanics(t, func() {
		kprint.Print("dropped %d", 1)
		kprint.Println("dropped")
		kprint.Println()
	})
}

func TestPrintFailingSinkNeverPanics(t *testing.T) {
	prev := kprint.SetSink(failSink{})
	t.Cleanup(func() { kprint.SetSink(prev) })
	for _, mode := range kprint.Modes() {
		useMode(t, mode)
		assert.NotPanics(t, func() {
			kprint.Print("%d", 1)
			kprint.Println("%s", "x")
			kprint.Println()
		}, "mode %s", mode)
	}
}

// --- Mode equivalence ---

func TestModeEquivalence(t *testing.T) {
	cases := []struct {
		name string
		args []any
	}{
		{"plain", []any{"hello"}},
		{"verbs", []any{"%d + %d = %d", 2, 2, 4}},
		{"flags", []any{"%-8s|%05.2f|%+d", "hi", 3.14159, 7}},
		{"star width", []any{"%*d", 6, 42}},
		{"star precision", []any{"%.*f", 2, 3.14159}},
		{"hex and quote", []any{"%x %q", 255, "a\nb"}},
		{"percent literal", []any{"100%% done, %d%%", 50}},
		{"missing operand", []any{"%d %d", 1}},
		{"extra operands", []any{"%d", 1, 2, "three"}},
		{"extra nil operand", []any{"%d", 1, nil}},
		{"trailing percent", []any{"abc%"}},
		{"no operands at all", []any{"%d %s"}},
		{"wide runes", []any{"温度 %d°C", 42}},
		{"indexed operands", []any{"%[2]d then %[1]d", 1, 2}},
		{"repeated operand", []any{"%[1]d%[1]d", 7}},
		{"index out of range", []any{"%[5]d %d", 1, 2}},
		{"index then leftover", []any{"%[1]d", 1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stream := &countSink{}
			useSink(t, stream)
			useMode(t, kprint.Stream)
			kprint.Println(tc.args...)
			buffered := &countSink{}
			kprint.SetSink(buffered)
			useMode(t, kprint.Buffered)
			kprint.Println(tc.args...)
			assert.Equal(t, buffered.String(), stream.String())
		})
	}
}

func TestStreamMatchesSprintf(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	useMode(t, kprint.Stream)
	kprint.Print("%-8s|%05.2f|%*d|%q", "hi", 3.14159, 6, 42, "a b")
	want := fmt.Sprintf("%-8s|%05.2f|%*d|%q", "hi", 3.14159, 6, 42, "a b")
	assert.Equal(t, want, sink.String())
}

// --- Write-count contracts ---

func TestStreamWritesPerFragment(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	useMode(t, kprint.Stream)
	kprint.Println("%d + %d = %d", 2, 2, 4)
	// "2", " + ", "2", " = ", "4", "\n"
	assert.Len(t, sink.writes, 6)
}

func TestBufferedSingleWritePerMessage(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	useMode(t, kprint.Buffered)
	kprint.Println("%d + %d = %d", 2, 2, 4)
	require.Len(t, sink.writes, 1)
	assert.Equal(t, "2 + 2 = 4\n", string(sink.writes[0]))
}

// --- Mode parsing ---

func TestParseMode(t *testing.T) {
	t.Parallel()
	for _, m := range kprint.Modes() {
		got, err := kprint.ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	_, err := kprint.ParseMode("carrier-pigeon")
	require.Error(t, err)
	assert.ErrorIs(t, err, kprint.ErrUnsupportedMode)
}

func TestModesIsACopy(t *testing.T) {
	t.Parallel()
	modes := kprint.Modes()
	modes[0] = "scribble"
	assert.NotEqual(t, modes[0], kprint.Modes()[0])
}

// --- Configuration ---

func TestConfigureRejectsUnknownMode(t *testing.T) {
	err := kprint.Configure(kprint.Config{Mode: "morse"})
	assert.ErrorIs(t, err, kprint.ErrUnsupportedMode)
}

func TestConfigureRejectsUnknownDump(t *testing.T) {
	err := kprint.Configure(kprint.Config{Dump: "interpretive-dance"})
	assert.ErrorIs(t, err, kprint.ErrUnsupportedDump)
}

func TestConfigureZeroValueKeepsDefaults(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	require.NoError(t, kprint.Configure(kprint.Config{}))
	kprint.Print("%d", 1)
	assert.Equal(t, "1", sink.String())
}

func TestConfigureWrapDecoratesSink(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	require.NoError(t, kprint.Configure(kprint.Config{Wrap: 4}))
	kprint.Print("abcdefgh")
	assert.Equal(t, "abcd\nefgh", sink.String())
}

func TestConfigureWrapReplacesDecorator(t *testing.T) {
	sink := &countSink{}
	useSink(t, sink)
	require.NoError(t, kprint.Configure(kprint.Config{Wrap: 2}))
	require.NoError(t, kprint.Configure(kprint.Config{Wrap: 4}))
	kprint.Print("abcdefgh")
	assert.Equal(t, "abcd\nefgh", sink.String())
}

func TestParseConfig(t *testing.T) {
	t.Parallel()
	cfg, err := kprint.ParseConfig([]byte("mode: buffered\ndump: yaml\nwrap: 80\n"))
	require.NoError(t, err)
	assert.Equal(t, kprint.Buffered, cfg.Mode)
	assert.Equal(t, kprint.DumpYAML, cfg.Dump)
	assert.Equal(t, 80, cfg.Wrap)
}

func TestParseConfigPartial(t *testing.T) {
	t.Parallel()
	cfg, err := kprint.ParseConfig([]byte("wrap: 40\n"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Mode)
	assert.Empty(t, cfg.Dump)
	assert.Equal(t, 40, cfg.Wrap)
}

func TestParseConfigErrors(t *testing.T) {
	t.Parallel()
	_, err := kprint.ParseConfig([]byte("mode: nope\n"))
	assert.ErrorIs(t, err, kprint.ErrUnsupportedMode)
	_, err = kprint.ParseConfig([]byte("dump: nope\n"))
	assert.ErrorIs(t, err, kprint.ErrUnsupportedDump)
	_, err = kprint.ParseConfig([]byte("{"))
	assert.Error(t, err)
}

func TestParseDumpStyle(t *testing.T) {
	t.Parallel()
	for _, d := range kprint.DumpStyles() {
		got, err := kprint.ParseDumpStyle(d.String())
		require.NoError(t, err)
		assert.Equal(t, d, got)
	}
	_, err := kprint.ParseDumpStyle("hexdump")
	assert.ErrorIs(t, err, kprint.ErrUnsupportedDump)
}
