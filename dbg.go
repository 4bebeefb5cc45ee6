package kprint

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/printer"
	"go/token"
	"path/filepath"
	"reflect"
	"runtime"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// DumpStyle selects the value representation used by the debug echo.
type DumpStyle string

const (
	// DumpSpew renders values as deep multi-line spew dumps. Scalars
	// render plainly, without type annotation.
	DumpSpew DumpStyle = "spew"
	// DumpYAML renders values as YAML documents.
	DumpYAML DumpStyle = "yaml"
)

var dumpStyles = []DumpStyle{DumpSpew, DumpYAML}

// String returns the dump style name.
func (d DumpStyle) String() string { return string(d) }

// DumpStyles returns all supported dump style names.
func DumpStyles() []DumpStyle {
	out := make([]DumpStyle, len(dumpStyles))
	copy(out, dumpStyles)
	return out
}

// ParseDumpStyle parses a dump style string.
func ParseDumpStyle(s string) (DumpStyle, error) {
	for _, d := range dumpStyles {
		if string(d) == s {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedDump, s)
}

var dumpStyle = DumpSpew

var spewConfig = spew.ConfigState{Indent: "  ", SortKeys: true}

// Here prints the call site as "[file:line]" and a newline, nothing else.
func Here() {
	_, file, line, ok := runtime.Caller(1)
	if !ok {
		Println("[?:0]")
		return
	}
	Println("[%s:%d]", filepath.Base(file), line)
}

// Dbg prints "[file:line] <expr> = <value>" and returns v unchanged, so
// it can wrap any expression in place without altering program behavior
// beyond the printed line. The argument is evaluated exactly once, before
// the call, by ordinary Go evaluation; Dbg neither re-evaluates it nor
// intercepts any panic its evaluation raises.
func Dbg[T any](v T) T {
	loc, labels := callSite("Dbg", 1)
	echo(loc, labels[0], v)
	return v
}

// Dbg2 echoes two expressions left to right, one line each, and returns
// their values positionally.
func Dbg2[T1, T2 any](v1 T1, v2 T2) (T1, T2) {
	loc, labels := callSite("Dbg2", 2)
	echo(loc, labels[0], v1)
	echo(loc, labels[1], v2)
	return v1, v2
}

// Dbg3 echoes three expressions left to right, one line each, and returns
// their values positionally.
func Dbg3[T1, T2, T3 any](v1 T1, v2 T2, v3 T3) (T1, T2, T3) {
	loc, labels := callSite("Dbg3", 3)
	echo(loc, labels[0], v1)
	echo(loc, labels[1], v2)
	echo(loc, labels[2], v3)
	return v1, v2, v3
}

func echo(loc, label string, v any) {
	Println("%s %s = %s", loc, label, dumpValue(v))
}

// dumpValue renders v in the configured multi-line representation.
func dumpValue(v any) string {
	if v == nil {
		return "<nil>"
	}
	switch dumpStyle {
	case DumpYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimRight(string(data), "\n")
	default:
		switch reflect.ValueOf(v).Kind() {
		case reflect.String:
			return fmt.Sprintf("%q", v)
		case reflect.Bool,
			reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
			reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
			return fmt.Sprintf("%v", v)
		}
		return strings.TrimRight(spewConfig.Sdump(v), "\n")
	}
}

// callSite resolves the caller's location and recovers the literal text
// of the arguments at the call by re-parsing the caller's source file.
// When the source is unreachable every label degrades to "dbg".
func callSite(fn string, nargs int) (loc string, labels []string) {
	labels = make([]string, nargs)
	for i := range labels {
		labels[i] = "dbg"
	}
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return "[?:0]", labels
	}
	if texts := argTexts(file, line, fn, nargs); texts != nil {
		labels = texts
	}
	return fmt.Sprintf("[%s:%d]", filepath.Base(file), line), labels
}

// argTexts finds the fn call spanning the given line and prints each
// argument expression back to source text. Returns nil when the file
// cannot be parsed or no matching call is found.
func argTexts(file string, line int, fn string, nargs int) []string {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, file, nil, 0)
	if err != nil {
		return nil
	}
	var texts []string
	ast.Inspect(f, func(n ast.Node) bool {
		if texts != nil {
			return false
		}
		call, ok := n.(*ast.CallExpr)
		if !ok || calleeName(call.Fun) != fn || len(call.Args) != nargs {
			return true
		}
		if line < fset.Position(call.Pos()).Line || line > fset.Position(call.End()).Line {
			return true
		}
		out := make([]string, nargs)
		for i, arg := range call.Args {
			var buf bytes.Buffer
			if printer.Fprint(&buf, fset, arg) != nil {
				return true
			}
			out[i] = buf.String()
		}
		texts = out
		return false
	})
	return texts
}

func calleeName(e ast.Expr) string {
	switch fn := e.(type) {
	case *ast.Ident:
		return fn.Name
	case *ast.SelectorExpr:
		return fn.Sel.Name
	case *ast.IndexExpr:
		return calleeName(fn.X)
	case *ast.IndexListExpr:
		return calleeName(fn.X)
	}
	return ""
}
