// Package codegen builds the Java classes generated for a widget: the
// server-side component, the client-side connector, the shared state and
// any RPC interfaces between them. A Registry holds the generators of one
// rendering; create a new one for every rendering.
package codegen

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/vrapper/typesys"
)

var log = commonlog.GetLogger("vrapper.codegen")

// ErrConflict is wrapped by every error caused by contradictory generation
// requests: duplicate members, RPC interfaces with conflicting super types
// and parameter name count mismatches.
var ErrConflict = errors.New("conflicting code generation request")

// Layout describes where the generated classes go.
type Layout struct {
	Widget    *typesys.ClassType
	Component *CodeConfiguration
	Connector *CodeConfiguration
	State     *CodeConfiguration
}

type Registry struct {
	types   *typesys.Registry
	layout  Layout
	classes map[string]*Generator
	order   []*Generator

	component *ComponentGenerator
	connector *ConnectorGenerator
	state     *Generator
}

// NewRegistry snapshots the code configurations of layout; later changes
// to them do not affect this registry.
func NewRegistry(types *typesys.Registry, layout Layout) *Registry {
	snapshot := func(c *CodeConfiguration) *CodeConfiguration {
		copied := *c
		return &copied
	}
	return &Registry{
		types: types,
		layout: Layout{
			Widget:    layout.Widget,
			Component: snapshot(layout.Component),
			Connector: snapshot(layout.Connector),
			State:     snapshot(layout.State),
		},
		classes: make(map[string]*Generator),
	}
}

func (r *Registry) Types() *typesys.Registry { return r.types }

// Classes returns the generators in creation order.
func (r *Registry) Classes() []*Generator { return r.order }

// SharedPackage is where RPC interfaces are placed: the shared state's
// package.
func (r *Registry) SharedPackage() string { return r.layout.State.PackageName }

func (r *Registry) put(config CodeConfiguration) *Generator {
	g := newGenerator(r.types, config)
	r.classes[config.QualifiedName()] = g
	r.order = append(r.order, g)
	log.Debugf("generating %s", config.QualifiedName())
	return g
}

func (r *Registry) checkFree(config CodeConfiguration) error {
	if _, ok := r.classes[config.QualifiedName()]; ok {
		return fmt.Errorf("%s has already been defined: %w", config.QualifiedName(), ErrConflict)
	}
	return nil
}

// AddClass registers a plain class. It fails if the name is taken.
func (r *Registry) AddClass(pkg, name string, super *typesys.ClassType) (*Generator, error) {
	config := CodeConfiguration{ClassName: name, PackageName: pkg, Super: super}
	if err := r.checkFree(config); err != nil {
		return nil, err
	}
	return r.put(config), nil
}

func (r *Registry) ComponentCode() *ComponentGenerator {
	if r.component == nil {
		r.component = &ComponentGenerator{Generator: r.put(*r.layout.Component)}
	}
	return r.component
}

// ConnectorCode returns the connector generator. On creation it gets a
// getWidget() override returning the widget type. It fails when the
// connector is named like a class already generated.
func (r *Registry) ConnectorCode() (*ConnectorGenerator, error) {
	if r.connector != nil {
		return r.connector, nil
	}
	component := r.ComponentCode().Type()
	if err := r.checkFree(*r.layout.Connector); err != nil {
		return nil, err
	}
	connector := newConnectorGenerator(r.put(*r.layout.Connector), component)

	getWidget, err := connector.AddMethod(r.layout.Widget, "getWidget")
	if err != nil {
		return nil, err
	}
	getWidget.AddSnippet(Line("return (%s) super.getWidget();", r.layout.Widget))
	getWidget.SetOverride(true)
	getWidget.ExcludeFromPreview()
	r.connector = connector
	return connector, nil
}

// SharedStateCode returns the shared state generator. On creation the
// connector and component get getState() overrides returning the state
// type, and the component also getState(boolean markAsDirty).
func (r *Registry) SharedStateCode() (*Generator, error) {
	if r.state != nil {
		return r.state, nil
	}
	if err := r.checkFree(*r.layout.State); err != nil {
		return nil, err
	}
	state := r.put(*r.layout.State)
	r.state = state
	stateType := state.Type()

	connector, err := r.ConnectorCode()
	if err != nil {
		return nil, err
	}
	for _, g := range []*Generator{connector.Generator, r.ComponentCode().Generator} {
		getState, err := g.AddMethod(stateType, "getState")
		if err != nil {
			return nil, err
		}
		getState.AddSnippet(Line("return (%s) super.getState();", stateType))
		getState.SetOverride(true)
		getState.ExcludeFromPreview()
	}

	boolean, err := r.types.Primitive("boolean")
	if err != nil {
		return nil, err
	}
	getState, err := r.ComponentCode().AddMethod(stateType, "getState", boolean)
	if err != nil {
		return nil, err
	}
	if err := getState.SetParameterNames("markAsDirty"); err != nil {
		return nil, err
	}
	getState.AddSnippet(Line("return (%s) super.getState(markAsDirty);", stateType))
	getState.SetOverride(true)
	getState.ExcludeFromPreview()
	return state, nil
}

// RPCMethod describes one method of an RPC interface and the code that
// handles calls to it.
type RPCMethod struct {
	Interface      string
	Super          *typesys.ClassType
	Name           string
	Parameters     []typesys.Type
	ParameterNames []string // nil keeps p0, p1, ...
	Handler        Snippet
}

// AddClientRPCMethod declares a server-to-client RPC method. The handler
// is registered in the connector's init().
func (r *Registry) AddClientRPCMethod(m RPCMethod) (*typesys.ClassType, error) {
	connector, err := r.ConnectorCode()
	if err != nil {
		return nil, err
	}
	return r.addRPCMethod(m, connector.addRPCInit)
}

// AddServerRPCMethod declares a client-to-server RPC method. The handler
// is registered in the component's constructor.
func (r *Registry) AddServerRPCMethod(m RPCMethod) (*typesys.ClassType, error) {
	component := r.ComponentCode()
	return r.addRPCMethod(m, component.addRPCInit)
}

func (r *Registry) addRPCMethod(m RPCMethod, register func(*typesys.ClassType, *Method, Snippet) error) (*typesys.ClassType, error) {
	config := CodeConfiguration{ClassName: m.Interface, PackageName: r.SharedPackage(), Super: m.Super}
	iface, ok := r.classes[config.QualifiedName()]
	if ok {
		if iface.Super() != m.Super {
			return nil, fmt.Errorf("there is already a class named %s with conflicting super type: %s vs. %s: %w",
				m.Interface, superName(m.Super), superName(iface.Super()), ErrConflict)
		}
	} else {
		iface = r.put(config)
		iface.SetInterface(true)
	}

	decl, err := iface.AddMethod(r.types.Void(), m.Name, m.Parameters...)
	if err != nil {
		return nil, err
	}
	if m.ParameterNames != nil {
		if err := decl.SetParameterNames(m.ParameterNames...); err != nil {
			return nil, err
		}
	}
	if err := register(iface.Type(), decl, m.Handler); err != nil {
		return nil, err
	}
	return iface.Type(), nil
}

func superName(t *typesys.ClassType) string {
	if t == nil {
		return "<none>"
	}
	return t.ClassName()
}
