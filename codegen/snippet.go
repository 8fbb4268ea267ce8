package codegen

// Snippet is a piece of code written into a method body or other member.
type Snippet interface {
	WriteSnippet(w *Writer)
}

type SnippetFunc func(w *Writer)

func (f SnippetFunc) WriteSnippet(w *Writer) { f(w) }

// Inline writes formatted text without ending the line.
func Inline(format string, args ...any) Snippet {
	return SnippetFunc(func(w *Writer) {
		w.Print(format, args...)
	})
}

// Line writes one formatted line.
func Line(format string, args ...any) Snippet {
	return SnippetFunc(func(w *Writer) {
		w.Println(format, args...)
	})
}
