package typesys

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/vrapper/classfile"
)

// Method is one method of a class type. Parameter and return types are
// resolved through the declaring type's registry when the method is read.
type Method struct {
	declaring *ClassType
	name      string
	desc      string
	access    classfile.AccessFlags
	params    []Type
	ret       Type
}

func newMethod(declaring *ClassType, name, desc string, access classfile.AccessFlags) (*Method, error) {
	paramDescs, retDesc, err := classfile.SplitMethodDescriptor(desc)
	if err != nil {
		return nil, err
	}
	m := &Method{declaring: declaring, name: name, desc: desc, access: access}
	for _, pd := range paramDescs {
		t, err := declaring.registry.TypeFor(pd)
		if err != nil {
			return nil, err
		}
		m.params = append(m.params, t)
	}
	if m.ret, err = declaring.registry.TypeFor(retDesc); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Method) Name() string              { return m.name }
func (m *Method) Descriptor() string        { return m.desc }
func (m *Method) DeclaringType() *ClassType { return m.declaring }
func (m *Method) ParameterTypes() []Type    { return m.params }
func (m *Method) ReturnType() Type          { return m.ret }
func (m *Method) IsAbstract() bool          { return m.access.IsAbstract() }
func (m *Method) ReturnsVoid() bool         { return IsVoid(m.ret) }

// Key identifies a method within a class hierarchy: name plus descriptor.
func (m *Method) Key() string { return m.name + m.desc }

// Equal reports whether m and other are the same method of the same
// declaring type.
func (m *Method) Equal(other *Method) bool {
	if m == nil || other == nil {
		return m == other
	}
	return m.declaring == other.declaring && m.name == other.name && m.desc == other.desc
}

// SourceString renders the method the way it reads in source, e.g.
// "void setColor(String)".
func (m *Method) SourceString() string {
	var b strings.Builder
	b.WriteString(m.ret.SimpleName())
	b.WriteByte(' ')
	b.WriteString(m.name)
	b.WriteByte('(')
	for i, p := range m.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.SimpleName())
	}
	b.WriteByte(')')
	return b.String()
}

func (m *Method) String() string { return m.name + m.desc }

// PropertyName derives a bean property name from an accessor name:
// setFoo, getFoo and isFoo all give "foo". Other names are returned as is.
func PropertyName(methodName string) string {
	for _, prefix := range []string{"set", "get", "is"} {
		rest, ok := strings.CutPrefix(methodName, prefix)
		if ok && rest != "" {
			return lowerFirst(rest)
		}
	}
	return methodName
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[size:]
}
