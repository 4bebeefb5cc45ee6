package kprint

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"unicode/utf8"
)

// streamChannel forwards every fragment straight to the sink. It holds no
// buffered state and exists for the duration of one call, so a sink that
// is invoked concurrently from another context may observe interleaved
// fragments of different messages.
type streamChannel struct {
	w io.Writer
}

func newStreamChannel(w io.Writer) channel { return &streamChannel{w: w} }

func (c *streamChannel) writeString(s string) error {
	if c.w == nil || s == "" {
		return nil
	}
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *streamChannel) flush() error { return nil }

// printf walks the format string and emits each literal run and each
// converted operand as its own sink write. Verb conversion is delegated
// to fmt one operand at a time, so the full specifier language (flags,
// width, precision, *, explicit [n] indexes) keeps its standard semantics
// and the concatenated fragments match fmt.Sprintf byte for byte.
func (c *streamChannel) printf(format string, args []any) error {
	var lit strings.Builder
	next := 0
	reordered := false
	i := 0
	for i < len(format) {
		if format[i] != '%' {
			lit.WriteByte(format[i])
			i++
			continue
		}
		if i+1 < len(format) && format[i+1] == '%' {
			lit.WriteByte('%')
			i += 2
			continue
		}
		v, ok := scanVerb(format[i:])
		if v.indexed {
			reordered = true
		}
		if !ok {
			lit.WriteString("%!(NOVERB)")
			i = len(format)
			break
		}
		if err := c.writeString(lit.String()); err != nil {
			return err
		}
		lit.Reset()
		if err := c.writeString(formatOperand(v, args, &next)); err != nil {
			return err
		}
		i += v.n
	}
	if err := c.writeString(lit.String()); err != nil {
		return err
	}
	// fmt reports leftover operands only when no specifier reordered them.
	if next < len(args) && !reordered {
		return c.writeString(extraOperands(args[next:]))
	}
	return nil
}

// verbSpec is one scanned format specifier. spec carries the specifier
// with any explicit argument index clauses stripped, so it can be handed
// to fmt with the operands already resolved.
type verbSpec struct {
	spec    string
	n       int  // bytes consumed from the format string
	stars   int  // '*' operands preceding the verb operand
	idx     int  // 1-based explicit operand index, 0 when implicit
	indexed bool // an index clause was present, even a malformed one
	bad     bool // malformed or misplaced index clause
}

// scanVerb scans one specifier at the start of s (which begins with '%').
// Index clauses are accepted in the positions fmt accepts them: before
// the width, after the precision dot, and before the verb. ok is false
// when the format ends before a verb.
func scanVerb(s string) (v verbSpec, ok bool) {
	var spec strings.Builder
	spec.WriteByte('%')
	i := 1
	for i < len(s) && strings.ContainsRune("+-# 0", rune(s[i])) {
		spec.WriteByte(s[i])
		i++
	}
	afterIndex := false
	i = scanIndex(s, i, &v, &afterIndex)
	if i < len(s) && s[i] == '*' {
		spec.WriteByte('*')
		v.stars++
		i++
		afterIndex = false
	} else {
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			if afterIndex {
				v.bad = true // "%[3]2d"
			}
			spec.WriteByte(s[i])
			i++
		}
	}
	if i < len(s) && s[i] == '.' {
		if afterIndex {
			v.bad = true // "%[3].2d"
		}
		spec.WriteByte('.')
		i++
		i = scanIndex(s, i, &v, &afterIndex)
		if i < len(s) && s[i] == '*' {
			spec.WriteByte('*')
			v.stars++
			i++
			afterIndex = false
		} else {
			for i < len(s) && s[i] >= '0' && s[i] <= '9' {
				spec.WriteByte(s[i])
				i++
			}
		}
	}
	if !afterIndex {
		i = scanIndex(s, i, &v, &afterIndex)
	}
	if i >= len(s) {
		return verbSpec{indexed: v.indexed}, false
	}
	r, size := utf8.DecodeRuneInString(s[i:])
	spec.WriteRune(r)
	i += size
	v.spec = spec.String()
	v.n = i
	return v, true
}

// scanIndex consumes an explicit argument index clause ("[n]") starting
// at s[i], following fmt's rules: a clause with no closing bracket
// consumes only the bracket, a clause with a malformed or non-positive
// number consumes through the bracket, and both poison the specifier.
func scanIndex(s string, i int, v *verbSpec, afterIndex *bool) int {
	if i >= len(s) || s[i] != '[' {
		return i
	}
	v.indexed = true
	for j := i + 1; j < len(s); j++ {
		if s[j] != ']' {
			continue
		}
		num := 0
		digits := false
		for k := i + 1; k < j; k++ {
			if s[k] < '0' || s[k] > '9' {
				num = -1
				break
			}
			num = num*10 + int(s[k]-'0')
			digits = true
		}
		if num <= 0 || !digits {
			v.bad = true
			return j + 1
		}
		v.idx = num
		*afterIndex = true
		return j + 1
	}
	v.bad = true
	return i + 1
}

// formatOperand converts the operands of a single specifier. An explicit
// index repositions the operand cursor the way fmt does, and like fmt a
// bad or out-of-range index reports BADINDEX without consuming an
// operand. Shortages fall through to fmt, which reports them as
// %!v(MISSING) in place.
func formatOperand(v verbSpec, args []any, next *int) string {
	if v.bad || v.idx > len(args) {
		return badIndex(v.spec)
	}
	if v.idx > 0 {
		*next = v.idx - 1
	}
	want := 1 + v.stars
	take := args[*next:]
	if len(take) > want {
		take = take[:want]
	}
	*next += len(take)
	return fmt.Sprintf(v.spec, take...)
}

func badIndex(spec string) string {
	verb, _ := utf8.DecodeLastRuneInString(spec)
	return fmt.Sprintf("%%!%c(BADINDEX)", verb)
}

// extraOperands reports operands left over after the last specifier, in
// the same form fmt appends to its own output.
func extraOperands(args []any) string {
	var b strings.Builder
	b.WriteString("%!(EXTRA ")
	for i, arg := range args {
		if i > 0 {
			b.WriteString(", ")
		}
		if arg == nil {
			b.WriteString("<nil>")
			continue
		}
		fmt.Fprintf(&b, "%s=%v", reflect.TypeOf(arg).String(), arg)
	}
	b.WriteString(")")
	return b.String()
}
