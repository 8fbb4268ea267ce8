package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/vrapper/typesys"
)

// CodeConfiguration names a generated class and its super type. It is
// mutable until a registry is built from it.
type CodeConfiguration struct {
	ClassName   string
	PackageName string
	Super       *typesys.ClassType
}

func (c *CodeConfiguration) QualifiedName() string {
	if c.PackageName == "" {
		return c.ClassName
	}
	return c.PackageName + "." + c.ClassName
}

// Generator builds one class or interface. Fields, constructors and
// methods are kept in insertion order and rejected when their key is
// already taken.
type Generator struct {
	config CodeConfiguration
	types  *typesys.Registry
	iface  bool

	fields       []*Field
	fieldKeys    map[string]bool
	constructors []*Method
	ctorKeys     map[string]bool
	methods      []*Method
	methodKeys   map[string]bool

	imports          map[string]*typesys.ClassType
	classAnnotations func(w *Writer)
}

func newGenerator(types *typesys.Registry, config CodeConfiguration) *Generator {
	return &Generator{
		config:     config,
		types:      types,
		fieldKeys:  make(map[string]bool),
		ctorKeys:   make(map[string]bool),
		methodKeys: make(map[string]bool),
	}
}

func (g *Generator) ClassName() string         { return g.config.ClassName }
func (g *Generator) PackageName() string       { return g.config.PackageName }
func (g *Generator) QualifiedName() string     { return g.config.QualifiedName() }
func (g *Generator) Super() *typesys.ClassType { return g.config.Super }
func (g *Generator) IsInterface() bool         { return g.iface }
func (g *Generator) SetInterface(iface bool)   { g.iface = iface }
func (g *Generator) Fields() []*Field          { return g.fields }
func (g *Generator) Methods() []*Method        { return g.methods }
func (g *Generator) Constructors() []*Method   { return g.constructors }
func (g *Generator) Types() *typesys.Registry  { return g.types }

// Type is the class type of the generated class itself.
func (g *Generator) Type() *typesys.ClassType {
	return g.types.ObjectType(g.QualifiedName())
}

func (g *Generator) AddField(name string, t typesys.Type) (*Field, error) {
	if g.fieldKeys[name] {
		return nil, fmt.Errorf("there is already a field named %s in %s: %w", name, g.ClassName(), ErrConflict)
	}
	g.fieldKeys[name] = true
	f := &Field{member: member{name: name, typ: t}}
	g.fields = append(g.fields, f)
	return f, nil
}

func (g *Generator) AddMethod(ret typesys.Type, name string, params ...typesys.Type) (*Method, error) {
	key := name + "(" + typeList(params) + ")"
	if g.methodKeys[key] {
		return nil, fmt.Errorf("there is already a method with the signature %s in %s: %w", key, g.ClassName(), ErrConflict)
	}
	g.methodKeys[key] = true
	m := newMethod(ret, name, params)
	g.methods = append(g.methods, m)
	return m, nil
}

func (g *Generator) AddConstructor(params ...typesys.Type) (*Method, error) {
	key := typeList(params)
	if g.ctorKeys[key] {
		return nil, fmt.Errorf("there is already a constructor with the parameters (%s) in %s: %w", key, g.ClassName(), ErrConflict)
	}
	g.ctorKeys[key] = true
	m := newMethod(nil, g.ClassName(), params)
	m.constructor = true
	g.constructors = append(g.constructors, m)
	return m, nil
}

func typeList(types []typesys.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.ClassName()
	}
	return strings.Join(names, ", ")
}

// ResolveImport returns the simple name of a class type and records the
// import, unless another type already claimed that simple name, in which
// case the fully qualified name is returned. Nested classes import their
// outermost class.
func (g *Generator) ResolveImport(t typesys.Type) string {
	switch t := t.(type) {
	case *typesys.ArrayType:
		return g.ResolveImport(t.Elem()) + strings.Repeat("[]", t.Dimensions())
	case *typesys.ClassType:
		outer := t
		simple := t.SimpleName()
		if i := strings.IndexByte(t.ClassName(), '$'); i >= 0 {
			outer = g.types.ObjectType(t.ClassName()[:i])
		}
		key := outer.SimpleName()
		if existing, ok := g.imports[key]; ok && existing != outer {
			return sourceName(t)
		}
		g.imports[key] = outer
		return simple
	}
	return t.ClassName()
}

// members lists what is written, fields first, then constructors, then
// methods.
func (g *Generator) members(preview bool) []Snippet {
	var out []Snippet
	for _, f := range g.fields {
		if !preview || f.InPreview() {
			out = append(out, f)
		}
	}
	for _, groups := range [][]*Method{g.constructors, g.methods} {
		for _, m := range groups {
			if !preview || m.InPreview() {
				out = append(out, m)
			}
		}
	}
	return out
}

// Render writes the class. In preview mode a class without visible members
// renders to nothing and ok is false. Full mode always produces the
// package, imports and class skeleton.
func (g *Generator) Render(preview bool) (code string, ok bool) {
	members := g.members(preview)
	if preview && len(members) == 0 {
		return "", false
	}

	self := g.Type()
	g.imports = map[string]*typesys.ClassType{self.SimpleName(): self}

	w := NewWriter(g, preview)
	if g.classAnnotations != nil {
		g.classAnnotations(w)
	}
	kind := "class"
	if g.iface {
		kind = "interface"
	}
	if g.config.Super != nil {
		w.Println("public %s %s extends %s {", kind, g.ClassName(), g.config.Super)
	} else {
		w.Println("public %s %s {", kind, g.ClassName())
	}
	w.Indent()
	w.Newline()
	for _, m := range members {
		m.WriteSnippet(w)
		w.Newline()
	}
	w.Outdent()
	w.Println("}")

	if preview {
		return w.String(), true
	}

	var sb strings.Builder
	if g.PackageName() != "" {
		fmt.Fprintf(&sb, "package %s;\n\n", g.PackageName())
	}
	var imports []string
	for _, t := range g.imports {
		pkg := t.PackageName()
		if t == self || pkg == "java.lang" || pkg == g.PackageName() {
			continue
		}
		imports = append(imports, t.ClassName())
	}
	sort.Strings(imports)
	for _, imp := range imports {
		fmt.Fprintf(&sb, "import %s;\n", imp)
	}
	if len(imports) > 0 {
		sb.WriteByte('\n')
	}
	sb.WriteString(w.String())
	return sb.String(), true
}
