package codegen

import (
	"fmt"
	"strings"

	"github.com/dhamidi/vrapper/typesys"
)

// ImportResolver decides how a type is spelled in the class being written,
// recording an import when it can use the simple name.
type ImportResolver interface {
	ResolveImport(t typesys.Type) string
}

// Writer accumulates Java source text. Format arguments that are
// typesys.Type values are replaced with their resolved names before
// formatting.
type Writer struct {
	sb          strings.Builder
	resolver    ImportResolver
	preview     bool
	indent      int
	indentStr   string
	atLineStart bool
}

// NewWriter returns a writer indenting by four spaces, or two in preview
// mode. In preview mode types are written by their simple names and the
// resolver is not consulted.
func NewWriter(resolver ImportResolver, preview bool) *Writer {
	indentStr := "    "
	if preview {
		indentStr = "  "
	}
	return &Writer{
		resolver:    resolver,
		preview:     preview,
		indentStr:   indentStr,
		atLineStart: true,
	}
}

func (w *Writer) Preview() bool { return w.preview }

// Type returns the name t should be written as.
func (w *Writer) Type(t typesys.Type) string {
	if w.preview {
		return t.SimpleName()
	}
	if w.resolver != nil {
		return w.resolver.ResolveImport(t)
	}
	return sourceName(t)
}

func (w *Writer) Print(format string, args ...any) {
	w.write(w.format(format, args))
}

func (w *Writer) Println(format string, args ...any) {
	w.write(w.format(format, args))
	w.Newline()
}

func (w *Writer) Newline() {
	w.sb.WriteByte('\n')
	w.atLineStart = true
}

func (w *Writer) Indent() { w.indent++ }

func (w *Writer) Outdent() {
	if w.indent > 0 {
		w.indent--
	}
}

func (w *Writer) String() string { return w.sb.String() }

func (w *Writer) format(format string, args []any) string {
	if len(args) == 0 {
		return format
	}
	resolved := make([]any, len(args))
	for i, arg := range args {
		if t, ok := arg.(typesys.Type); ok {
			resolved[i] = w.Type(t)
		} else {
			resolved[i] = arg
		}
	}
	return fmt.Sprintf(format, resolved...)
}

// write emits s, indenting every line that has content.
func (w *Writer) write(s string) {
	for len(s) > 0 {
		line, rest, found := strings.Cut(s, "\n")
		if line != "" {
			w.writeIndent()
			w.sb.WriteString(line)
		}
		if !found {
			return
		}
		w.Newline()
		s = rest
	}
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	for i := 0; i < w.indent; i++ {
		w.sb.WriteString(w.indentStr)
	}
	w.atLineStart = false
}

// sourceName spells a type fully qualified as it appears in source:
// nested classes use dots.
func sourceName(t typesys.Type) string {
	return strings.ReplaceAll(t.ClassName(), "$", ".")
}
