package widget

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

var (
	// ErrEditorKindRequired is returned when a parameter is added without
	// naming an editor kind while several kinds are available.
	ErrEditorKindRequired = errors.New("parameter editor kind required")

	// ErrUnknownOption is returned for an editor kind or option that is
	// not offered.
	ErrUnknownOption = errors.New("unknown parameter option")
)

const (
	nativeEventType         = "com.google.gwt.dom.client.NativeEvent"
	mouseEventDetailsType   = "com.vaadin.shared.MouseEventDetails"
	mouseDetailsBuilderType = "com.vaadin.client.MouseEventDetailsBuilder"
)

// CustomParameter is one argument sent to the server when an event fires:
// its type and name in the RPC method, and the expression computing it in
// the connector's handler.
type CustomParameter struct {
	Type        typesys.Type
	Name        string
	Expression  codegen.Snippet
	Description string
}

// QualifiedMethodParameter sends the result of calling m on qualifier.
func QualifiedMethodParameter(qualifier string, m *typesys.Method) CustomParameter {
	return CustomParameter{
		Type:        m.ReturnType(),
		Name:        typesys.PropertyName(m.Name()),
		Expression:  codegen.Inline("%s.%s()", qualifier, m.Name()),
		Description: qualifier + "." + m.Name() + "()",
	}
}

// ParameterEditor produces custom parameters of one kind. Options lists
// the accepted option values.
type ParameterEditor struct {
	Kind    string
	Label   string
	Options []string
	create  func(option, name string) CustomParameter
}

// Create builds a parameter from option. An empty option picks the only
// option, or the first one for editors with a default. A non-empty name
// replaces the derived parameter name.
func (e *ParameterEditor) Create(option, name string) (CustomParameter, error) {
	if option == "" {
		if len(e.Options) == 0 {
			return CustomParameter{}, fmt.Errorf("%s has no options: %w", e.Label, ErrUnknownOption)
		}
		if len(e.Options) > 1 && e.Kind != MouseDetailsEditor {
			return CustomParameter{}, fmt.Errorf("%s needs one of %s: %w", e.Label, strings.Join(e.Options, ", "), ErrUnknownOption)
		}
		option = e.Options[0]
	}
	if !slices.Contains(e.Options, option) {
		return CustomParameter{}, fmt.Errorf("%s does not offer %q: %w", e.Label, option, ErrUnknownOption)
	}
	return e.create(option, name), nil
}

// Editor kinds.
const (
	WidgetMethodEditor     = "widget-method"
	EventMethodEditor      = "event-method"
	MouseDetailsEditor     = "mouse-details"
	HandlerParameterEditor = "handler-parameter"
)

// ParameterEditors is the ordered set of editors offered for one event
// handler action.
type ParameterEditors []*ParameterEditor

func (es ParameterEditors) Lookup(kind string) *ParameterEditor {
	for _, e := range es {
		if e.Kind == kind {
			return e
		}
	}
	return nil
}

// Create builds a parameter with the editor of the given kind. kind may be
// empty only when there is a single editor.
func (es ParameterEditors) Create(kind, option, name string) (CustomParameter, error) {
	var editor *ParameterEditor
	switch {
	case kind != "":
		if editor = es.Lookup(kind); editor == nil {
			return CustomParameter{}, fmt.Errorf("no %s parameter editor: %w", kind, ErrUnknownOption)
		}
	case len(es) == 1:
		editor = es[0]
	default:
		return CustomParameter{}, ErrEditorKindRequired
	}
	return editor.Create(option, name)
}

// targetMethodEditor offers the no-argument methods of target that return
// a serializable value.
func targetMethodEditor(kind, label string, target *typesys.ClassType, qualifier string) (*ParameterEditor, error) {
	methods, err := target.Methods()
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*typesys.Method)
	e := &ParameterEditor{Kind: kind, Label: label}
	for _, m := range methods {
		if len(m.ParameterTypes()) != 0 || m.ReturnsVoid() {
			continue
		}
		if _, dup := byName[m.Name()]; dup {
			continue
		}
		ok, err := target.Registry().IsSerializable(m.ReturnType())
		if err != nil {
			return nil, err
		}
		if ok {
			byName[m.Name()] = m
			e.Options = append(e.Options, m.Name())
		}
	}
	e.create = func(option, name string) CustomParameter {
		p := QualifiedMethodParameter(qualifier, byName[option])
		if name != "" {
			p.Name = name
		}
		return p
	}
	return e, nil
}

// mouseDetailsEditor builds MouseEventDetails from the native event
// returned by accessor, optionally relative to the widget element.
func mouseDetailsEditor(types *typesys.Registry, accessor string) *ParameterEditor {
	details := types.ObjectType(mouseEventDetailsType)
	builder := types.ObjectType(mouseDetailsBuilderType)
	return &ParameterEditor{
		Kind:    MouseDetailsEditor,
		Label:   "MouseEventDetails",
		Options: []string{"relative", "absolute"},
		create: func(option, name string) CustomParameter {
			if name == "" {
				name = "details"
			}
			expr := codegen.Inline("%s.buildMouseEventDetails(%s, getWidget().getElement())", builder, accessor)
			if option == "absolute" {
				expr = codegen.Inline("%s.buildMouseEventDetails(%s)", builder, accessor)
			}
			return CustomParameter{
				Type:        details,
				Name:        name,
				Expression:  expr,
				Description: "MouseEventDetails",
			}
		},
	}
}

// handlerParameterEditor passes on the handler's own serializable
// parameters, named p0, p1, ... in the generated handler.
func handlerParameterEditor(handler *typesys.Method) (*ParameterEditor, error) {
	types := handler.DeclaringType().Registry()
	sendable := make(map[string]typesys.Type)
	e := &ParameterEditor{Kind: HandlerParameterEditor, Label: "Handler parameter"}
	for i, t := range handler.ParameterTypes() {
		ok, err := types.IsSerializable(t)
		if err != nil {
			return nil, err
		}
		if ok {
			key := fmt.Sprintf("p%d", i)
			sendable[key] = t
			e.Options = append(e.Options, key)
		}
	}
	e.create = func(option, name string) CustomParameter {
		t := sendable[option]
		if name == "" {
			name = option
			if class, ok := t.(*typesys.ClassType); ok {
				name = strings.ToLower(class.SimpleName())
			}
		}
		return CustomParameter{
			Type:        t,
			Name:        name,
			Expression:  codegen.Inline(option),
			Description: "Parameter " + name,
		}
	}
	return e, nil
}
