package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/widget"
)

// choices collects the per-method decisions given on the command line.
type choices struct {
	selects []string
	params  []string

	component string
	connector string
	state     string
}

func (ch *choices) addFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringArrayVarP(&ch.selects, "select", "s", nil, "select an action: method=kind")
	flags.StringArrayVarP(&ch.params, "param", "p", nil, "add an event parameter: method=editor/option[/name]")
	flags.StringVar(&ch.component, "component", "", "qualified name of the generated component")
	flags.StringVar(&ch.connector, "connector", "", "qualified name of the generated connector")
	flags.StringVar(&ch.state, "state", "", "qualified name of the generated shared state")
}

// apply renames the generated classes, then selects actions, then adds
// event parameters, each in command line order.
func (ch *choices) apply(c *widget.Configuration) error {
	setQualifiedName(c.ComponentConfig(), ch.component)
	setQualifiedName(c.ConnectorConfig(), ch.connector)
	setQualifiedName(c.StateConfig(), ch.state)

	for _, s := range ch.selects {
		name, value, err := splitAssignment(s)
		if err != nil {
			return err
		}
		mc, err := c.Method(name)
		if err != nil {
			return err
		}
		kind, err := widget.ParseActionKind(value)
		if err != nil {
			return err
		}
		if err := mc.SelectKind(kind); err != nil {
			return fmt.Errorf("--select %s: %w", s, err)
		}
	}

	for _, p := range ch.params {
		name, value, err := splitAssignment(p)
		if err != nil {
			return err
		}
		mc, err := c.Method(name)
		if err != nil {
			return err
		}
		handler, ok := mc.Action(widget.EventHandlerKind).(*widget.EventHandler)
		if !ok {
			return fmt.Errorf("--param %s: %s is not an event handler registration", p, name)
		}
		editors, err := handler.Editors()
		if err != nil {
			return err
		}
		kind, option, paramName := parseParam(value)
		param, err := editors.Create(kind, option, paramName)
		if err != nil {
			return fmt.Errorf("--param %s: %w", p, err)
		}
		if err := handler.AddParameter(param); err != nil {
			return fmt.Errorf("--param %s: %w", p, err)
		}
	}
	return nil
}

var errAssignment = errors.New("expected method=value")

func splitAssignment(s string) (method, value string, err error) {
	method, value, ok := strings.Cut(s, "=")
	if !ok || method == "" {
		return "", "", fmt.Errorf("%q: %w", s, errAssignment)
	}
	return method, value, nil
}

// parseParam splits editor/option/name. Missing parts are empty.
func parseParam(s string) (kind, option, name string) {
	parts := strings.SplitN(s, "/", 3)
	kind = parts[0]
	if len(parts) > 1 {
		option = parts[1]
	}
	if len(parts) > 2 {
		name = parts[2]
	}
	return kind, option, name
}

func setQualifiedName(cfg *codegen.CodeConfiguration, name string) {
	if name == "" {
		return
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		cfg.PackageName, cfg.ClassName = name[:i], name[i+1:]
	} else {
		cfg.PackageName, cfg.ClassName = "", name
	}
}
