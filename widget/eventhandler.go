package widget

import (
	"fmt"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

const (
	serverRPCInterface  = "com.vaadin.shared.communication.ServerRpc"
	handlerRegistration = "com.google.gwt.event.shared.HandlerRegistration"
	javaObject          = "java.lang.Object"
)

// EventHandler registers a listener on the widget that forwards each event
// to the server through a server RPC interface. What is sent is chosen
// with custom parameters.
type EventHandler struct {
	baseAction
	InterfaceName string

	widget        *typesys.ClassType
	handlerType   *typesys.ClassType
	handlerMethod *typesys.Method
	eventType     *typesys.ClassType

	editors    ParameterEditors
	parameters []CustomParameter
}

func newEventHandler(m *typesys.Method, widget *typesys.ClassType, componentName string) (*EventHandler, error) {
	a := &EventHandler{
		baseAction:    baseAction{method: m},
		InterfaceName: componentName + "ServerRpc",
		widget:        widget,
	}
	if err := a.inspectHandler(); err != nil {
		return nil, err
	}

	switch {
	case len(m.ParameterTypes()) != 1:
		a.verdict = Verdict{Impossible, "Only one parameter supported"}
	case a.handlerType == nil || a.handlerMethod == nil:
		a.verdict = Verdict{Impossible, "Method parameter type must have one abstract method"}
	case !a.handlerMethod.ReturnsVoid():
		a.verdict = Verdict{Impossible, "Handler method must return void"}
	case a.eventType == nil:
		a.verdict = Verdict{Discouraged, "Event type not detected"}
	case m.ReturnType().ClassName() != handlerRegistration:
		a.verdict = Verdict{Discouraged, "Method does not return a HandlerRegistration"}
	default:
		a.verdict = Verdict{Supported, ""}
	}
	return a, nil
}

// inspectHandler finds the handler interface, its single method and the
// event type that method receives.
func (a *EventHandler) inspectHandler() error {
	params := a.method.ParameterTypes()
	if len(params) != 1 {
		return nil
	}
	handlerType, ok := params[0].(*typesys.ClassType)
	if !ok {
		return nil
	}
	a.handlerType = handlerType

	methods, err := handlerType.Methods()
	if err != nil {
		return err
	}
	var candidates []*typesys.Method
	for _, hm := range methods {
		if hm.DeclaringType().ClassName() != javaObject {
			candidates = append(candidates, hm)
		}
	}
	if len(candidates) != 1 {
		return nil
	}
	a.handlerMethod = candidates[0]
	if hp := a.handlerMethod.ParameterTypes(); len(hp) == 1 {
		a.eventType, _ = hp[0].(*typesys.ClassType)
	}
	return nil
}

func (a *EventHandler) Kind() ActionKind { return EventHandlerKind }
func (a *EventHandler) Label() string    { return "Send event to server" }

func (a *EventHandler) HandlerType() *typesys.ClassType { return a.handlerType }
func (a *EventHandler) HandlerMethod() *typesys.Method  { return a.handlerMethod }

// EventType is nil when the handler method does not take a single class
// typed event.
func (a *EventHandler) EventType() *typesys.ClassType { return a.eventType }

// Editors returns the custom parameter editors available for this action.
// The widget's methods are always offered. With a known event type, the
// event's methods are offered too, and MouseEventDetails when the event
// exposes its native event. Otherwise the handler's own serializable
// parameters can be passed on.
func (a *EventHandler) Editors() (ParameterEditors, error) {
	if a.editors != nil {
		return a.editors, nil
	}
	if a.handlerMethod == nil {
		return nil, fmt.Errorf("%s: no handler method to send parameters from", a.method.Name())
	}

	widgetEditor, err := targetMethodEditor(WidgetMethodEditor, "Widget method", a.widget, "getWidget()")
	if err != nil {
		return nil, err
	}
	editors := ParameterEditors{widgetEditor}

	if a.eventType != nil {
		methods, err := a.eventType.Methods()
		if err != nil {
			return nil, err
		}
		nativeEvent := a.types().ObjectType(nativeEventType)
		for _, em := range methods {
			if em.ReturnType() == nativeEvent && len(em.ParameterTypes()) == 0 {
				editors = append(editors, mouseDetailsEditor(a.types(), "event."+em.Name()+"()"))
				break
			}
		}
		eventEditor, err := targetMethodEditor(EventMethodEditor, "Event method", a.eventType, "event")
		if err != nil {
			return nil, err
		}
		editors = append(editors, eventEditor)
	} else {
		paramEditor, err := handlerParameterEditor(a.handlerMethod)
		if err != nil {
			return nil, err
		}
		if len(paramEditor.Options) > 0 {
			editors = append(editors, paramEditor)
		}
	}
	a.editors = editors
	return editors, nil
}

// Parameters returns the custom parameters in the order they are sent.
func (a *EventHandler) Parameters() []CustomParameter { return a.parameters }

// AddParameter appends a custom parameter. Names must be unique.
func (a *EventHandler) AddParameter(p CustomParameter) error {
	for _, existing := range a.parameters {
		if existing.Name == p.Name {
			return fmt.Errorf("there is already a parameter named %s: %w", p.Name, codegen.ErrConflict)
		}
	}
	a.parameters = append(a.parameters, p)
	return nil
}

func (a *EventHandler) RemoveParameter(i int) {
	if i >= 0 && i < len(a.parameters) {
		a.parameters = append(a.parameters[:i], a.parameters[i+1:]...)
	}
}

func (a *EventHandler) WriteCode(code *codegen.Registry) error {
	if err := a.checkPossible(); err != nil {
		return err
	}

	types := make([]typesys.Type, len(a.parameters))
	names := make([]string, len(a.parameters))
	for i, p := range a.parameters {
		types[i] = p.Type
		names[i] = p.Name
	}
	rpc, err := code.AddServerRPCMethod(codegen.RPCMethod{
		Interface:      a.InterfaceName,
		Super:          code.Types().ObjectType(serverRPCInterface),
		Name:           a.handlerMethod.Name(),
		Parameters:     types,
		ParameterNames: names,
		Handler:        codegen.Line("// TODO handle event"),
	})
	if err != nil {
		return err
	}
	connector, err := code.ConnectorCode()
	if err != nil {
		return err
	}
	return connector.AddInitSnippet(codegen.SnippetFunc(func(w *codegen.Writer) {
		a.writeListener(w, rpc)
	}))
}

func (a *EventHandler) writeListener(w *codegen.Writer, rpc *typesys.ClassType) {
	hm := a.handlerMethod
	w.Println("getWidget().%s(new %s() {", a.method.Name(), a.handlerType)
	w.Indent()
	if !w.Preview() {
		w.Println("@Override")
	}
	if a.eventType != nil {
		w.Println("public %s %s(%s event) {", hm.ReturnType(), hm.Name(), a.eventType)
	} else {
		w.Print("public %s %s(", hm.ReturnType(), hm.Name())
		for i, t := range hm.ParameterTypes() {
			if i > 0 {
				w.Print(", ")
			}
			w.Print("%s p%d", t, i)
		}
		w.Println(") {")
	}
	w.Indent()

	w.Print("getRpcProxy(%s.class).%s(", rpc, hm.Name())
	split := len(a.parameters) >= 2
	if split {
		w.Newline()
		w.Indent()
	}
	for i, p := range a.parameters {
		if i > 0 {
			if split {
				w.Println(",")
			} else {
				w.Print(", ")
			}
		}
		p.Expression.WriteSnippet(w)
	}
	if split {
		w.Newline()
		w.Outdent()
	}
	w.Println(");")

	w.Outdent()
	w.Println("}")
	w.Outdent()
	w.Println("});")
}
