package codegen

import (
	"fmt"

	"github.com/dhamidi/vrapper/typesys"
)

// member holds what fields, methods and constructors have in common.
type member struct {
	name        string
	typ         typesys.Type
	public      bool
	annotations []Annotation
	hidden      bool
}

func (m *member) Name() string { return m.name }

func (m *member) SetPublic(public bool) { m.public = public }

// ExcludeFromPreview hides the member from preview renderings.
func (m *member) ExcludeFromPreview() { m.hidden = true }

func (m *member) InPreview() bool { return !m.hidden }

// AddAnnotation fails if the member already has an annotation of the same
// type.
func (m *member) AddAnnotation(a Annotation) error {
	for _, existing := range m.annotations {
		if existing.Type == a.Type {
			return fmt.Errorf("%s already has a @%s annotation: %w", m.name, a.Type.SimpleName(), ErrConflict)
		}
	}
	m.annotations = append(m.annotations, a)
	return nil
}

func (m *member) Annotations() []Annotation { return m.annotations }

func (m *member) writeDeclaration(w *Writer, withType bool) {
	if !w.Preview() {
		for _, a := range m.annotations {
			a.write(w)
		}
	}
	if m.public {
		w.Print("public ")
	} else {
		w.Print("private ")
	}
	if withType {
		w.Print("%s %s", m.typ, m.name)
	} else {
		w.Print("%s", m.name)
	}
}

type Field struct {
	member
	init string
}

func (f *Field) Type() typesys.Type { return f.typ }

// SetInitializer sets the expression the field is initialized with.
func (f *Field) SetInitializer(code string) { f.init = code }

func (f *Field) WriteSnippet(w *Writer) {
	f.writeDeclaration(w, true)
	if f.init != "" {
		w.Print(" = %s", f.init)
	}
	w.Println(";")
}

// Method is a method or constructor. Methods are public unless changed;
// parameters are named p0, p1, ... until SetParameterNames is called.
type Method struct {
	member
	params      []typesys.Type
	paramNames  []string
	snippets    []Snippet
	constructor bool
	override    bool
}

func newMethod(ret typesys.Type, name string, params []typesys.Type) *Method {
	m := &Method{
		member: member{name: name, typ: ret, public: true},
		params: params,
	}
	m.paramNames = make([]string, len(params))
	for i := range params {
		m.paramNames[i] = fmt.Sprintf("p%d", i)
	}
	return m
}

func (m *Method) ReturnType() typesys.Type       { return m.typ }
func (m *Method) ParameterTypes() []typesys.Type { return m.params }
func (m *Method) ParameterNames() []string       { return m.paramNames }
func (m *Method) IsConstructor() bool            { return m.constructor }
func (m *Method) IsOverride() bool               { return m.override }

func (m *Method) SetOverride(override bool) { m.override = override }

func (m *Method) SetParameterNames(names ...string) error {
	if len(names) != len(m.params) {
		return fmt.Errorf("%s: invalid number of parameter names: %d, expected %d: %w",
			m.name, len(names), len(m.params), ErrConflict)
	}
	m.paramNames = append(m.paramNames[:0], names...)
	return nil
}

// AddSnippet appends a statement to the body. A method without snippets is
// written as a declaration.
func (m *Method) AddSnippet(s Snippet) {
	m.snippets = append(m.snippets, s)
}

func (m *Method) WriteSnippet(w *Writer) {
	if m.override && !w.Preview() {
		w.Println("@Override")
	}
	m.writeDeclaration(w, !m.constructor)
	w.Print("(")
	for i, t := range m.params {
		if i > 0 {
			w.Print(", ")
		}
		w.Print("%s %s", t, m.paramNames[i])
	}
	w.Print(")")

	if len(m.snippets) == 0 {
		w.Println(";")
		return
	}
	w.Println(" {")
	w.Indent()
	for _, s := range m.snippets {
		s.WriteSnippet(w)
	}
	w.Outdent()
	w.Println("}")
}
