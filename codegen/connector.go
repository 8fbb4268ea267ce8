package codegen

import "github.com/dhamidi/vrapper/typesys"

const (
	connectAnnotation = "com.vaadin.shared.ui.Connect"
	stateChangeEvent  = "com.vaadin.client.communication.StateChangeEvent"
)

// ConnectorGenerator builds the client-side connector class. It is
// annotated with the component it connects to in full renderings.
type ConnectorGenerator struct {
	*Generator
	component   *typesys.ClassType
	init        *Method
	stateChange *Method
	rpc         rpcHandlers
}

func newConnectorGenerator(g *Generator, component *typesys.ClassType) *ConnectorGenerator {
	c := &ConnectorGenerator{Generator: g, component: component}
	g.classAnnotations = c.writeConnect
	return c
}

func (c *ConnectorGenerator) writeConnect(w *Writer) {
	if w.Preview() {
		return
	}
	// Always fully qualified.
	w.Println("@%s(%s.class)", connectAnnotation, sourceName(c.component))
}

// AddInitSnippet appends a snippet to init(), creating the override on
// first use.
func (c *ConnectorGenerator) AddInitSnippet(s Snippet) error {
	if c.init == nil {
		m, err := c.AddMethod(c.types.Void(), "init")
		if err != nil {
			return err
		}
		m.SetOverride(true)
		m.AddSnippet(Line("super.init();"))
		c.init = m
	}
	c.init.AddSnippet(s)
	return nil
}

// AddStateChangeSnippet appends a snippet to onStateChange(event), creating
// the override on first use.
func (c *ConnectorGenerator) AddStateChangeSnippet(s Snippet) error {
	if c.stateChange == nil {
		m, err := c.AddMethod(c.types.Void(), "onStateChange", c.types.ObjectType(stateChangeEvent))
		if err != nil {
			return err
		}
		m.SetOverride(true)
		if err := m.SetParameterNames("event"); err != nil {
			return err
		}
		m.AddSnippet(Line("super.onStateChange(event);"))
		c.stateChange = m
	}
	c.stateChange.AddSnippet(s)
	return nil
}

func (c *ConnectorGenerator) addRPCInit(iface *typesys.ClassType, decl *Method, handler Snippet) error {
	if c.rpc.add(iface, decl, handler) {
		return c.AddInitSnippet(&c.rpc)
	}
	return nil
}
