package widget

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

// Action is one way of exposing a widget method through the generated
// classes. Its verdict is computed once, when the action is created.
// WriteCode is only called for the selected action, once per registry, and
// fails with ErrImpossibleAction when the verdict is Impossible.
type Action interface {
	Kind() ActionKind
	Label() string
	Method() *typesys.Method
	Verdict() Verdict
	WriteCode(code *codegen.Registry) error
}

// ErrImpossibleAction is returned when writing code for an action whose
// verdict is Impossible.
var ErrImpossibleAction = errors.New("impossible action")

type baseAction struct {
	method  *typesys.Method
	verdict Verdict
}

func (a *baseAction) Method() *typesys.Method { return a.method }
func (a *baseAction) Verdict() Verdict        { return a.verdict }

func (a *baseAction) checkPossible() error {
	if a.verdict.Status != Impossible {
		return nil
	}
	return fmt.Errorf("%s: %s: %w", a.method.SourceString(), a.verdict.Comment, ErrImpossibleAction)
}

func (a *baseAction) types() *typesys.Registry {
	return a.method.DeclaringType().Registry()
}

// newActions creates the four actions for m in evaluation order.
func newActions(m *typesys.Method, widget *typesys.ClassType, componentName string) ([]Action, error) {
	stateField, err := newStateField(m)
	if err != nil {
		return nil, err
	}
	clientRPC, err := newClientRPC(m, componentName)
	if err != nil {
		return nil, err
	}
	eventHandler, err := newEventHandler(m, widget, componentName)
	if err != nil {
		return nil, err
	}
	resourceURL := newResourceURL(m)

	actions := []Action{stateField, clientRPC, eventHandler, resourceURL}
	for _, a := range actions {
		log.Debugf("%s %s: %s", m.Name(), a.Kind(), a.Verdict())
	}
	return actions, nil
}

// firstUnserializable returns the first parameter type of m that cannot be
// serialized, or nil.
func firstUnserializable(m *typesys.Method) (typesys.Type, error) {
	types := m.DeclaringType().Registry()
	for _, t := range m.ParameterTypes() {
		ok, err := types.IsSerializable(t)
		if err != nil {
			return nil, err
		}
		if !ok {
			return t, nil
		}
	}
	return nil, nil
}

// GetterName derives the getter matching a setter: setFoo gives getFoo, or
// isFoo for a boolean property. Names not starting with "set" are returned
// unchanged.
func GetterName(propertyType typesys.Type, setterName string) string {
	base, ok := strings.CutPrefix(setterName, "set")
	if !ok {
		return setterName
	}
	if propertyType.ClassName() == "boolean" {
		return "is" + base
	}
	return "get" + base
}

// argList writes p0, p1, ... up to n.
func argList(w *codegen.Writer, n int) {
	for i := 0; i < n; i++ {
		if i > 0 {
			w.Print(", ")
		}
		w.Print("p%d", i)
	}
}
