package typesys

import (
	"fmt"
	"strings"
)

const (
	javaScriptObject = "com.google.gwt.core.client.JavaScriptObject"
	javaEnum         = "java.lang.Enum"
)

var knownSerializable = []string{
	"java.lang.String",
	"java.util.List",
	"java.util.Set",
	"java.util.Map",
	"java.lang.Boolean",
	"java.lang.Byte",
	"java.lang.Character",
	"java.lang.Short",
	"java.lang.Integer",
	"java.lang.Long",
	"java.lang.Float",
	"java.lang.Double",
	"java.util.Date",
}

var knownUnserializable = []string{
	"com.vaadin.client.ApplicationConnection",
}

// IsSerializable reports whether values of t can be sent through shared
// state or RPC. Primitives and a fixed set of value types always can. Any
// other class must be a bean: it needs at least one setter, and every
// property that has both a setter and a getter must itself be serializable.
// Enums are accepted without inspection; JavaScript overlay types never are.
//
// The check does not look at generic type arguments or fields, so it can
// reject classes the framework would serialize.
//
// An error means some class could not be loaded; it is not memoized.
func (r *Registry) IsSerializable(t Type) (bool, error) {
	if ok, known := r.trivialSerializability(t); known {
		return ok, nil
	}
	ok, err := r.resolveSerializability(t)
	if err != nil {
		return false, err
	}
	r.serializable[t.Descriptor()] = ok
	return ok, nil
}

func (r *Registry) trivialSerializability(t Type) (ok, known bool) {
	if _, primitive := t.(*PrimitiveType); primitive {
		return true, true
	}
	ok, known = r.serializable[t.Descriptor()]
	return ok, known
}

func (r *Registry) resolveSerializability(t Type) (bool, error) {
	jso := r.ObjectType(javaScriptObject)
	enum := r.ObjectType(javaEnum)

	checked := make(map[Type]bool)
	pending := []Type{t}
	queued := map[Type]bool{t: true}

	for len(pending) > 0 {
		current := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		delete(queued, current)

		if array, ok := current.(*ArrayType); ok {
			current = array.Elem()
		}

		ok, known := r.trivialSerializability(current)
		if known {
			if !ok {
				log.Debugf("%s is not serializable because %s is not", t.ClassName(), current.ClassName())
				r.serializable[current.Descriptor()] = false
				return false, nil
			}
			continue
		}
		if checked[current] {
			continue
		}
		checked[current] = true

		class, isClass := current.(*ClassType)
		if !isClass {
			return false, fmt.Errorf("unexpected type %s in serializability check", current)
		}
		if isJSO, err := class.IsOrExtends(jso); err != nil {
			return false, err
		} else if isJSO {
			r.serializable[current.Descriptor()] = false
			return false, nil
		}
		if isEnum, err := class.IsOrExtends(enum); err != nil {
			return false, err
		} else if isEnum {
			continue
		}

		methods, err := class.Methods()
		if err != nil {
			return false, err
		}
		setters := make(map[string]bool)
		for _, m := range methods {
			if strings.HasPrefix(m.Name(), "set") && len(m.ParameterTypes()) == 1 {
				setters[PropertyName(m.Name())] = true
			}
		}
		if len(setters) == 0 {
			log.Debugf("%s has no setters", class.ClassName())
			r.serializable[current.Descriptor()] = false
			return false, nil
		}

		hasProperties := false
		for _, m := range methods {
			name := m.Name()
			if !strings.HasPrefix(name, "get") && !strings.HasPrefix(name, "is") {
				continue
			}
			if len(m.ParameterTypes()) != 0 {
				continue
			}
			property := PropertyName(name)
			if !setters[property] {
				continue
			}
			delete(setters, property)
			if m.ReturnsVoid() {
				continue
			}
			hasProperties = true
			if ret := m.ReturnType(); !queued[ret] {
				queued[ret] = true
				pending = append(pending, ret)
			}
		}
		if !hasProperties {
			log.Debugf("%s has no bean properties", class.ClassName())
			r.serializable[current.Descriptor()] = false
			return false, nil
		}
	}

	for checkedType := range checked {
		r.serializable[checkedType.Descriptor()] = true
	}
	return true, nil
}
