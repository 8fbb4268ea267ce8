// Package typesys models the classes, arrays and primitives reachable from a
// class source. Types are interned by descriptor and load their class files
// lazily; the Registry also decides which types can cross the RPC and shared
// state boundary.
//
// A Registry and the types it hands out are not safe for concurrent use.
package typesys

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/vrapper/classfile"
)

var log = commonlog.GetLogger("vrapper.typesys")

// ErrClassNotFound is returned when no source has the class file of a type.
var ErrClassNotFound = errors.New("class not found")

// ClassFinder supplies class file bytes by class name. classsource.Source
// satisfies it.
type ClassFinder interface {
	Find(name string) (data []byte, ok bool, err error)
}

type Registry struct {
	finder       ClassFinder
	types        map[string]Type
	serializable map[string]bool
}

func NewRegistry(finder ClassFinder) *Registry {
	r := &Registry{
		finder:       finder,
		types:        make(map[string]Type),
		serializable: make(map[string]bool),
	}
	for _, name := range knownSerializable {
		r.serializable[classfile.ObjectDescriptor(name)] = true
	}
	for _, name := range knownUnserializable {
		r.serializable[classfile.ObjectDescriptor(name)] = false
	}
	return r
}

// TypeFor returns the interned type for a field descriptor or "V". Class
// types are created unloaded.
func (r *Registry) TypeFor(desc string) (Type, error) {
	if t, ok := r.types[desc]; ok {
		return t, nil
	}
	if desc != "V" && !classfile.IsFieldDescriptor(desc) {
		return nil, fmt.Errorf("invalid type descriptor %q", desc)
	}

	var t Type
	switch desc[0] {
	case 'L':
		t = &ClassType{registry: r, name: desc[1 : len(desc)-1]}
	case '[':
		elem, err := r.TypeFor(desc[1:])
		if err != nil {
			return nil, err
		}
		t = &ArrayType{desc: desc, component: elem}
	default:
		name, _ := classfile.PrimitiveName(desc)
		t = &PrimitiveType{desc: desc, name: name}
	}
	r.types[desc] = t
	return t, nil
}

// ClassType returns the class type for a dotted or internal class name
// given by a user or read from an archive.
func (r *Registry) ClassType(name string) (*ClassType, error) {
	for _, segment := range strings.Split(classfile.SourceToInternalName(name), "/") {
		if segment == "" || strings.ContainsAny(segment, ";[<>") {
			return nil, fmt.Errorf("invalid class name %q", name)
		}
	}
	t, err := r.TypeFor(classfile.ObjectDescriptor(name))
	if err != nil {
		return nil, fmt.Errorf("invalid class name %q: %w", name, err)
	}
	return t.(*ClassType), nil
}

// ObjectType is ClassType for names known to be well formed: constants and
// names taken from parsed class files. It panics on a malformed name.
func (r *Registry) ObjectType(name string) *ClassType {
	t, err := r.ClassType(name)
	if err != nil {
		panic("typesys: " + err.Error())
	}
	return t
}

// Primitive returns the primitive type with the given keyword, such as
// "int" or "void".
func (r *Registry) Primitive(keyword string) (*PrimitiveType, error) {
	for _, desc := range []string{"Z", "B", "C", "S", "I", "J", "F", "D", "V"} {
		if name, _ := classfile.PrimitiveName(desc); name == keyword {
			t, err := r.TypeFor(desc)
			if err != nil {
				return nil, err
			}
			return t.(*PrimitiveType), nil
		}
	}
	return nil, fmt.Errorf("unknown primitive type %q", keyword)
}

func (r *Registry) Void() *PrimitiveType {
	t, _ := r.TypeFor("V")
	return t.(*PrimitiveType)
}

func (r *Registry) find(name string) (*classfile.ClassFile, error) {
	data, ok, err := r.finder.Find(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", classfile.InternalToSourceName(name), err)
	}
	if !ok {
		return nil, fmt.Errorf("load %s: %w", classfile.InternalToSourceName(name), ErrClassNotFound)
	}
	cf, err := classfile.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", classfile.InternalToSourceName(name), err)
	}
	return cf, nil
}
