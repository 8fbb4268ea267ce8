package typesys

import (
	"fmt"
	"strings"

	"github.com/dhamidi/vrapper/classfile"
)

// ClassType is a class or interface. Its class file is read on the first
// structural access (methods, super type, modifiers); a failed load is
// remembered and returned on every later access.
type ClassType struct {
	registry *Registry
	name     string // internal form

	loaded  bool
	loading bool
	err     error

	access    classfile.AccessFlags
	iface     bool
	superName string
	super     *ClassType
	methods   []*Method
	declared  []*Method
}

func (c *ClassType) Descriptor() string { return "L" + c.name + ";" }
func (c *ClassType) String() string     { return c.Descriptor() }

func (c *ClassType) InternalName() string { return c.name }

func (c *ClassType) ClassName() string {
	return classfile.InternalToSourceName(c.name)
}

func (c *ClassType) SimpleName() string {
	simple := c.name[strings.LastIndexByte(c.name, '/')+1:]
	return strings.ReplaceAll(simple, "$", ".")
}

func (c *ClassType) PackageName() string {
	i := strings.LastIndexByte(c.name, '/')
	if i < 0 {
		return ""
	}
	return classfile.InternalToSourceName(c.name[:i])
}

// Registry returns the registry that interned c.
func (c *ClassType) Registry() *Registry { return c.registry }

// Methods returns the public instance methods of c and its super classes,
// or of its super interfaces when c is an interface, own methods first in
// declaration order. An override replaces the inherited entry with the same
// name and descriptor. Bridge and synthetic methods are left out.
func (c *ClassType) Methods() ([]*Method, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.methods, nil
}

// DeclaredMethods is like Methods but without inherited methods.
func (c *ClassType) DeclaredMethods() ([]*Method, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.declared, nil
}

// SuperType returns the super class, or nil for a root class or when the
// super class could not be resolved.
func (c *ClassType) SuperType() (*ClassType, error) {
	if err := c.load(); err != nil {
		return nil, err
	}
	return c.super, nil
}

// SuperName is the dotted name of the declared super class, even when it
// could not be resolved.
func (c *ClassType) SuperName() (string, error) {
	if err := c.load(); err != nil {
		return "", err
	}
	return classfile.InternalToSourceName(c.superName), nil
}

func (c *ClassType) IsPublic() (bool, error) {
	if err := c.load(); err != nil {
		return false, err
	}
	return c.access.IsPublic(), nil
}

func (c *ClassType) IsAbstract() (bool, error) {
	if err := c.load(); err != nil {
		return false, err
	}
	return c.access.IsAbstract(), nil
}

func (c *ClassType) IsInterface() (bool, error) {
	if err := c.load(); err != nil {
		return false, err
	}
	return c.iface, nil
}

// IsOrExtends reports whether c is other or has other in its super chain.
func (c *ClassType) IsOrExtends(other *ClassType) (bool, error) {
	for t := c; t != nil; {
		if t == other {
			return true, nil
		}
		next, err := t.SuperType()
		if err != nil {
			return false, err
		}
		t = next
	}
	return false, nil
}

func (c *ClassType) load() error {
	if c.loaded {
		return c.err
	}
	if c.loading {
		return fmt.Errorf("load %s: cyclic inheritance", c.ClassName())
	}
	c.loading = true
	defer func() {
		c.loading = false
		c.loaded = true
	}()

	cf, err := c.registry.find(c.name)
	if err != nil {
		c.err = err
		return err
	}
	log.Debugf("loaded %s", c.ClassName())

	c.access = cf.AccessFlags
	c.iface = cf.IsInterface()
	c.superName = cf.SuperClassName()

	seen := make(map[string]bool)
	for i := range cf.Methods {
		info := &cf.Methods[i]
		if !info.IsPublic() || info.IsStatic() || info.IsBridge() || info.IsSynthetic() ||
			info.IsConstructor(cf.ConstantPool) {
			continue
		}
		m, err := newMethod(c, info.Name(cf.ConstantPool), info.Descriptor(cf.ConstantPool), info.AccessFlags)
		if err != nil {
			c.err = fmt.Errorf("load %s: %w", c.ClassName(), err)
			return c.err
		}
		c.declared = append(c.declared, m)
		seen[m.Key()] = true
	}
	c.methods = append(c.methods, c.declared...)
	inherit := func(methods []*Method) {
		for _, m := range methods {
			if !seen[m.Key()] {
				seen[m.Key()] = true
				c.methods = append(c.methods, m)
			}
		}
	}

	if c.superName != "" {
		super := c.registry.ObjectType(c.superName)
		if inherited, err := super.Methods(); err != nil {
			log.Warningf("super class of %s unavailable, ending chain: %v", c.ClassName(), err)
		} else {
			c.super = super
			inherit(inherited)
		}
	}

	if c.iface {
		for _, name := range cf.InterfaceNames() {
			inherited, err := c.registry.ObjectType(name).Methods()
			if err != nil {
				log.Warningf("super interface %s of %s unavailable: %v",
					classfile.InternalToSourceName(name), c.ClassName(), err)
				continue
			}
			inherit(inherited)
		}
	}
	return nil
}
