package widget

import (
	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

const (
	resourceType = "com.vaadin.server.Resource"
	stringType   = "java.lang.String"
)

// ResourceURL replaces a URL setter with a Resource setter on the
// component. The connector resolves the resource and passes its URL on.
type ResourceURL struct {
	baseAction
	ResourceKey string
	SetterName  string
}

func newResourceURL(m *typesys.Method) *ResourceURL {
	a := &ResourceURL{
		baseAction:  baseAction{method: m},
		ResourceKey: typesys.PropertyName(m.Name()),
		SetterName:  m.Name(),
	}
	params := m.ParameterTypes()
	switch {
	case len(params) != 1:
		a.verdict = Verdict{Impossible, "There's more than 1 parameter"}
	case params[0].ClassName() != stringType:
		a.verdict = Verdict{Impossible, "Only String parameter supported"}
	case !m.ReturnsVoid():
		a.verdict = Verdict{Discouraged, "Returned value will be ignored"}
	default:
		a.verdict = Verdict{Supported, ""}
	}
	return a
}

func (a *ResourceURL) Kind() ActionKind { return ResourceURLKind }
func (a *ResourceURL) Label() string    { return "Set using Resource" }

func (a *ResourceURL) WriteCode(code *codegen.Registry) error {
	if err := a.checkPossible(); err != nil {
		return err
	}
	resource := code.Types().ObjectType(resourceType)
	key := codegen.Escape(a.ResourceKey)
	component := code.ComponentCode()

	setter, err := component.AddMethod(code.Types().Void(), a.SetterName, resource)
	if err != nil {
		return err
	}
	if err := setter.SetParameterNames("resource"); err != nil {
		return err
	}
	setter.AddSnippet(codegen.Line("setResource(\"%s\", resource);", key))

	getter, err := component.AddMethod(resource, GetterName(resource, a.SetterName))
	if err != nil {
		return err
	}
	getter.AddSnippet(codegen.Line("return getResource(\"%s\");", key))

	connector, err := code.ConnectorCode()
	if err != nil {
		return err
	}
	widgetMethod := a.method.Name()
	return connector.AddStateChangeSnippet(codegen.SnippetFunc(func(w *codegen.Writer) {
		w.Println("if (event.hasPropertyChanged(\"resources\")) {")
		w.Indent()
		w.Println("getWidget().%s(getResourceUrl(\"%s\"));", widgetMethod, key)
		w.Outdent()
		w.Println("}")
	}))
}
