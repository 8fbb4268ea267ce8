// Package widget decides how each public method of a widget class can be
// exposed through a generated component, connector and shared state, and
// drives the code generation for the chosen actions.
//
// A Configuration is not safe for concurrent use.
package widget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

var log = commonlog.GetLogger("vrapper.widget")

// Configuration holds the method configurations of one widget and the
// names of the classes generated for it.
type Configuration struct {
	widget  *typesys.ClassType
	methods []*MethodConfiguration
	skipped []Skipped

	component *codegen.CodeConfiguration
	connector *codegen.CodeConfiguration
	state     *codegen.CodeConfiguration

	skipUnresolvable bool
}

// Skipped is a method left out because evaluating it failed.
type Skipped struct {
	Method *typesys.Method
	Err    error
}

type Option func(*Configuration)

// SkipUnresolvable makes methods whose evaluation fails, typically because
// a parameter class cannot be loaded, be skipped and logged instead of
// failing the whole configuration.
func SkipUnresolvable() Option {
	return func(c *Configuration) { c.skipUnresolvable = true }
}

// NewConfiguration evaluates every public method of widget except those
// declared by Object, UIObject and Widget. Methods without any possible
// action are left out.
func NewConfiguration(widget *typesys.ClassType, opts ...Option) (*Configuration, error) {
	c := &Configuration{widget: widget}
	for _, opt := range opts {
		opt(c)
	}
	c.component, c.connector, c.state = defaultCodeConfigurations(widget)

	methods, err := widget.Methods()
	if err != nil {
		return nil, err
	}
	for _, m := range methods {
		if ignoredDeclarers[m.DeclaringType().ClassName()] {
			continue
		}
		mc, err := newMethodConfiguration(m, widget, c.component.ClassName)
		if err != nil {
			if !c.skipUnresolvable {
				return nil, fmt.Errorf("%s: %w", m.SourceString(), err)
			}
			log.Warningf("skipping %s: %v", m.SourceString(), err)
			c.skipped = append(c.skipped, Skipped{Method: m, Err: err})
			continue
		}
		if len(mc.Actions()) > 0 {
			c.methods = append(c.methods, mc)
		}
	}
	log.Infof("%s: %d configurable methods", widget.ClassName(), len(c.methods))
	return c, nil
}

func (c *Configuration) Widget() *typesys.ClassType { return c.widget }

// Methods returns the method configurations in declaration order.
func (c *Configuration) Methods() []*MethodConfiguration { return c.methods }

func (c *Configuration) Skipped() []Skipped { return c.skipped }

// Method finds a method configuration by method name, or by name and
// descriptor (setValue(I)V) when the name is overloaded.
func (c *Configuration) Method(name string) (*MethodConfiguration, error) {
	var found []*MethodConfiguration
	for _, mc := range c.methods {
		m := mc.Method()
		if m.Key() == name {
			return mc, nil
		}
		if m.Name() == name {
			found = append(found, mc)
		}
	}
	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s has no configurable method %s", c.widget.ClassName(), name)
	case 1:
		return found[0], nil
	}
	keys := make([]string, len(found))
	for i, mc := range found {
		keys[i] = mc.Method().Key()
	}
	return nil, fmt.Errorf("%s is overloaded, use one of %s", name, strings.Join(keys, ", "))
}

// ComponentConfig, ConnectorConfig and StateConfig name the generated
// classes. Changes apply to the next rendering.
func (c *Configuration) ComponentConfig() *codegen.CodeConfiguration { return c.component }
func (c *Configuration) ConnectorConfig() *codegen.CodeConfiguration { return c.connector }
func (c *Configuration) StateConfig() *codegen.CodeConfiguration     { return c.state }

func (c *Configuration) Layout() codegen.Layout {
	return codegen.Layout{
		Widget:    c.widget,
		Component: c.component,
		Connector: c.connector,
		State:     c.state,
	}
}

func (c *Configuration) newRegistry() *codegen.Registry {
	return codegen.NewRegistry(c.widget.Registry(), c.Layout())
}

// BuildFullSource writes the selected action of every method and renders
// all generated classes in full, in creation order.
func (c *Configuration) BuildFullSource() (string, error) {
	classes, err := c.Generate()
	if err != nil {
		return "", err
	}
	sources := make([]string, 0, len(classes))
	for _, g := range classes {
		code, _ := g.Render(false)
		sources = append(sources, code)
	}
	return strings.Join(sources, "\n\n"), nil
}

// Generate writes the selected action of every method into a fresh
// registry and returns its classes in creation order.
func (c *Configuration) Generate() ([]*codegen.Generator, error) {
	code := c.newRegistry()
	for _, mc := range c.methods {
		a := mc.Selected()
		if a == nil {
			continue
		}
		if err := a.WriteCode(code); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", mc.Method().SourceString(), a.Kind(), err)
		}
	}
	return code.Classes(), nil
}

// Preview renders the code a single action produces, ordered by class name
// descending. Classes with nothing to show in preview mode are left out.
// With a nil action only the connector is shown.
func (c *Configuration) Preview(a Action, preview bool) (string, error) {
	code := c.newRegistry()
	if a != nil {
		if err := a.WriteCode(code); err != nil {
			return "", err
		}
	} else if _, err := code.ConnectorCode(); err != nil {
		return "", err
	}

	classes := append([]*codegen.Generator(nil), code.Classes()...)
	sort.SliceStable(classes, func(i, j int) bool {
		return classes[i].QualifiedName() > classes[j].QualifiedName()
	})
	var sources []string
	for _, g := range classes {
		if src, ok := g.Render(preview); ok {
			sources = append(sources, src)
		}
	}
	return strings.Join(sources, "\n\n"), nil
}
