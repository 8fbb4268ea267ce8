package widget

import (
	"strings"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

const clientRPCInterface = "com.vaadin.shared.communication.ClientRpc"

// ClientRPC calls the widget method from the server through a client RPC
// interface. Return values cannot travel back and are dropped.
type ClientRPC struct {
	baseAction
	MethodName    string
	InterfaceName string
}

func newClientRPC(m *typesys.Method, componentName string) (*ClientRPC, error) {
	a := &ClientRPC{
		baseAction:    baseAction{method: m},
		MethodName:    m.Name(),
		InterfaceName: componentName + "ClientRpc",
	}
	bad, err := firstUnserializable(m)
	if err != nil {
		return nil, err
	}
	switch {
	case bad != nil:
		a.verdict = Verdict{Impossible, "Not all parameters are serializable"}
	case m.ReturnsVoid():
		a.verdict = Verdict{Supported, ""}
	case isGetter(m):
		a.verdict = Verdict{Discouraged, "Seems like a getter method"}
	default:
		a.verdict = Verdict{Discouraged, "Returned value will be ignored"}
	}
	return a, nil
}

func isGetter(m *typesys.Method) bool {
	name := m.Name()
	return (strings.HasPrefix(name, "get") || strings.HasPrefix(name, "is")) && len(m.ParameterTypes()) == 0
}

func (a *ClientRPC) Kind() ActionKind { return ClientRPCKind }
func (a *ClientRPC) Label() string    { return "Call using RPC" }

func (a *ClientRPC) WriteCode(code *codegen.Registry) error {
	if err := a.checkPossible(); err != nil {
		return err
	}
	name := a.method.Name()
	params := a.method.ParameterTypes()

	rpc, err := code.AddClientRPCMethod(codegen.RPCMethod{
		Interface:  a.InterfaceName,
		Super:      code.Types().ObjectType(clientRPCInterface),
		Name:       name,
		Parameters: params,
		Handler: codegen.SnippetFunc(func(w *codegen.Writer) {
			w.Print("getWidget().%s(", name)
			argList(w, len(params))
			w.Println(");")
		}),
	})
	if err != nil {
		return err
	}

	method, err := code.ComponentCode().AddMethod(code.Types().Void(), a.MethodName, params...)
	if err != nil {
		return err
	}
	method.AddSnippet(codegen.SnippetFunc(func(w *codegen.Writer) {
		w.Print("getRpcProxy(%s.class).%s(", rpc, name)
		argList(w, len(params))
		w.Println(");")
	}))
	return nil
}
