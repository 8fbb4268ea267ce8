package typesys

import "strings"

// Type is a class, array or primitive type. Two types are equal iff they are
// the same value; the Registry interns them by descriptor.
type Type interface {
	Descriptor() string
	// ClassName is the binary name in dotted form, e.g. "java.lang.String",
	// "a.Outer$Inner", "int" or "byte[][]".
	ClassName() string
	// SimpleName drops the package and spells nested classes with dots,
	// e.g. "Outer.Inner" or "String[]".
	SimpleName() string
	String() string
}

type PrimitiveType struct {
	desc string
	name string
}

func (p *PrimitiveType) Descriptor() string { return p.desc }
func (p *PrimitiveType) ClassName() string  { return p.name }
func (p *PrimitiveType) SimpleName() string { return p.name }
func (p *PrimitiveType) String() string     { return p.desc }

func (p *PrimitiveType) IsVoid() bool { return p.desc == "V" }

type ArrayType struct {
	desc      string
	component Type
}

func (a *ArrayType) Descriptor() string { return a.desc }
func (a *ArrayType) String() string     { return a.desc }

// Component is the type one dimension down.
func (a *ArrayType) Component() Type { return a.component }

// Elem is the innermost non-array type.
func (a *ArrayType) Elem() Type {
	t := a.component
	for {
		inner, ok := t.(*ArrayType)
		if !ok {
			return t
		}
		t = inner.component
	}
}

func (a *ArrayType) Dimensions() int {
	return strings.LastIndexByte(a.desc, '[') + 1
}

func (a *ArrayType) ClassName() string {
	return a.Elem().ClassName() + strings.Repeat("[]", a.Dimensions())
}

func (a *ArrayType) SimpleName() string {
	return a.Elem().SimpleName() + strings.Repeat("[]", a.Dimensions())
}

// IsVoid reports whether t is the void pseudo-type.
func IsVoid(t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.IsVoid()
}
