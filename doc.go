// Package kprint provides panic-free print-style diagnostics for
// environments without a standard console, such as kernels, bootloaders,
// and bare-metal firmware.
//
// Output goes to a single globally registered sink (any [io.Writer]),
// wired once at startup with [SetSink]. Until a sink is registered all
// output is dropped. The central entry points are [Print] and [Println];
// both accept an optional leading format string followed by its operands,
// and both unconditionally discard every sink error:
//
//	kprint.SetSink(serialPort)
//	kprint.Print("%d + %d = %d", 2, 2, 4)
//	kprint.Println("booting stage %s", stage)
//	kprint.Println()
//
// A failing sink can never crash the caller. This is deliberate:
// diagnostics are issued from early boot and interrupt context, where an
// abort inside the print path would be worse than losing the message.
//
// # Output Modes
//
// Two output channels sit behind the entry points:
//
//   - [Stream] — each literal run and each converted operand is forwarded
//     to the sink as its own write, with no whole-message buffer.
//   - [Buffered] — the complete message is rendered into a growable
//     buffer and handed to the sink in exactly one write.
//
// Streaming costs no message-sized allocation but offers no atomicity:
// fragments from concurrent callers may interleave unless the sink
// serializes them. Buffered is atomic per message at the price of an
// allocation. The mode is fixed per build: the kprint_buffered build tag
// selects the buffered channel, and hosts that carry a boot-time
// configuration may instead resolve the mode once at process start with
// [Configure] or [ParseConfig]. There is no per-call mode branching.
//
// The package adds no locking of its own. Serializing concurrent writers
// is the sink's responsibility.
//
// # Debug Echo
//
// [Dbg] prints an expression's source text and value, then returns the
// value unchanged, so it can wrap any expression in place:
//
//	total := kprint.Dbg(base) + tax
//	// output: [order.go:42] base = 100
//
// [Dbg2] and [Dbg3] echo two or three expressions left to right and
// return them positionally. [Here] prints only the call site. Each
// argument is evaluated exactly once, and values are rendered with a
// multi-line dump ([DumpSpew] by default, [DumpYAML] as an alternative).
// The source text is recovered by parsing the caller's source file; when
// the file is unreadable, as in a stripped or cross-built image, the echo
// degrades to a bare "dbg" label.
//
// # Fixed-Width Consoles
//
// [NewWrapWriter] decorates a sink with hard wrapping at a display-cell
// width, for framebuffer or serial consoles that do not wrap on their
// own. Wide runes count as two cells.
package kprint
