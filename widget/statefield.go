package widget

import (
	"fmt"
	"strings"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

const delegateToWidget = "com.vaadin.shared.annotations.DelegateToWidget"

// StateField maps a setter onto a shared state field. A single parameter
// becomes one field delegated to the widget; several parameters become
// indexed fields applied together by the connector.
type StateField struct {
	baseAction
	FieldName  string
	SetterName string
}

func newStateField(m *typesys.Method) (*StateField, error) {
	a := &StateField{
		baseAction: baseAction{method: m},
		FieldName:  typesys.PropertyName(m.Name()),
		SetterName: m.Name(),
	}
	v, err := a.evaluate()
	if err != nil {
		return nil, err
	}
	a.verdict = v
	return a, nil
}

func (a *StateField) Kind() ActionKind { return StateFieldKind }
func (a *StateField) Label() string    { return "Define in shared state" }

func (a *StateField) evaluate() (Verdict, error) {
	m := a.method
	if len(m.ParameterTypes()) == 0 {
		return Verdict{Impossible, "Must have at least one parameter"}, nil
	}
	bad, err := firstUnserializable(m)
	if err != nil {
		return Verdict{}, err
	}
	if bad != nil {
		return Verdict{Impossible, bad.ClassName() + " can't be serialized"}, nil
	}

	switch {
	case !m.ReturnsVoid():
		return Verdict{Discouraged, "Doesn't seem like a setter since there is a return type"}, nil
	case strings.HasPrefix(m.Name(), "set"):
		if len(m.ParameterTypes()) == 1 {
			return Verdict{Recommended, ""}, nil
		}
		return Verdict{Supported, ""}, nil
	}
	return Verdict{Supported, "Not named like a setter"}, nil
}

func (a *StateField) WriteCode(code *codegen.Registry) error {
	if err := a.checkPossible(); err != nil {
		return err
	}
	params := a.method.ParameterTypes()
	if len(params) == 1 {
		return a.writeSingle(code, params[0])
	}
	return a.writeMulti(code, params)
}

func (a *StateField) writeSingle(code *codegen.Registry, t typesys.Type) error {
	state, err := code.SharedStateCode()
	if err != nil {
		return err
	}
	field, err := state.AddField(a.FieldName, t)
	if err != nil {
		return err
	}
	field.SetPublic(true)

	delegate := codegen.Annotation{Type: code.Types().ObjectType(delegateToWidget)}
	if a.FieldName != typesys.PropertyName(a.method.Name()) {
		delegate.Params = []codegen.AnnotationParam{{Name: "value", Value: a.method.Name()}}
	}
	if err := field.AddAnnotation(delegate); err != nil {
		return err
	}

	component := code.ComponentCode()
	setter, err := component.AddMethod(code.Types().Void(), a.SetterName, t)
	if err != nil {
		return err
	}
	if err := setter.SetParameterNames(a.FieldName); err != nil {
		return err
	}
	setter.AddSnippet(codegen.Line("getState().%s = %s;", a.FieldName, a.FieldName))

	getter, err := component.AddMethod(t, GetterName(t, a.SetterName))
	if err != nil {
		return err
	}
	getter.AddSnippet(codegen.Line("return getState(false).%s;", a.FieldName))
	return nil
}

func (a *StateField) writeMulti(code *codegen.Registry, params []typesys.Type) error {
	state, err := code.SharedStateCode()
	if err != nil {
		return err
	}
	component := code.ComponentCode()
	setter, err := component.AddMethod(code.Types().Void(), a.SetterName, params...)
	if err != nil {
		return err
	}
	setter.AddSnippet(codegen.Line("%s state = getState();", state.Type()))

	fields := make([]string, len(params))
	for i, t := range params {
		fields[i] = fmt.Sprintf("%s%d", a.FieldName, i)
		field, err := state.AddField(fields[i], t)
		if err != nil {
			return err
		}
		field.SetPublic(true)
		setter.AddSnippet(codegen.Line("state.%s = %s;", fields[i], setter.ParameterNames()[i]))

		getter, err := component.AddMethod(t, "get"+upperFirst(fields[i]))
		if err != nil {
			return err
		}
		getter.AddSnippet(codegen.Line("return getState(false).%s;", fields[i]))
	}

	connector, err := code.ConnectorCode()
	if err != nil {
		return err
	}
	widgetMethod := a.method.Name()
	return connector.AddStateChangeSnippet(codegen.SnippetFunc(func(w *codegen.Writer) {
		w.Print("if (")
		for i, f := range fields {
			if i > 0 {
				w.Print(" || ")
			}
			w.Print("event.hasPropertyChanged(\"%s\")", codegen.Escape(f))
		}
		w.Println(") {")
		w.Indent()
		w.Print("getWidget().%s(", widgetMethod)
		for i, f := range fields {
			if i > 0 {
				w.Print(", ")
			}
			w.Print("getState().%s", f)
		}
		w.Println(");")
		w.Outdent()
		w.Println("}")
	}))
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
