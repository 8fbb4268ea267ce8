package codegen

import (
	"strings"

	"github.com/dhamidi/vrapper/typesys"
)

// Annotation is written before a member in full mode. Parameter values are
// string literals.
type Annotation struct {
	Type   *typesys.ClassType
	Params []AnnotationParam
}

type AnnotationParam struct {
	Name  string
	Value string
}

func (a Annotation) write(w *Writer) {
	w.Print("@%s", a.Type)
	switch {
	case len(a.Params) == 0:
	case len(a.Params) == 1 && a.Params[0].Name == "value":
		w.Print("(%s)", Quote(a.Params[0].Value))
	default:
		parts := make([]string, len(a.Params))
		for i, p := range a.Params {
			parts[i] = p.Name + " = " + Quote(p.Value)
		}
		w.Print("(%s)", strings.Join(parts, ", "))
	}
	w.Newline()
}
