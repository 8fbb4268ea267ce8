package widget

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/vrapper/codegen"
	"github.com/dhamidi/vrapper/typesys"
)

const (
	abstractComponent      = "com.vaadin.ui.AbstractComponent"
	abstractConnector      = "com.vaadin.client.ui.AbstractComponentConnector"
	abstractComponentState = "com.vaadin.shared.AbstractComponentState"
)

// ignoredDeclarers are the base classes whose methods every widget has.
var ignoredDeclarers = map[string]bool{
	"java.lang.Object":                       true,
	"com.google.gwt.user.client.ui.UIObject": true,
	"com.google.gwt.user.client.ui.Widget":   true,
}

// componentName strips a "V" prefix followed by an upper case letter and
// a "Widget" suffix: VSlider and SliderWidget both give Slider.
func componentName(widget *typesys.ClassType) string {
	name := widget.SimpleName()
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	if len(name) >= 2 && name[0] == 'V' {
		if r, _ := utf8.DecodeRuneInString(name[1:]); unicode.IsUpper(r) {
			name = name[1:]
		}
	}
	if trimmed := strings.TrimSuffix(name, "Widget"); trimmed != "" {
		name = trimmed
	}
	return name
}

// serverPackage cuts the package at its "client" segment:
// com.example.client.ui gives com.example.
func serverPackage(widget *typesys.ClassType) string {
	pkg := widget.PackageName()
	if pkg == "client" || strings.HasPrefix(pkg, "client.") {
		return ""
	}
	for i := 0; ; {
		j := strings.Index(pkg[i:], ".client")
		if j < 0 {
			return pkg
		}
		end := i + j + len(".client")
		if end == len(pkg) || pkg[end] == '.' {
			return pkg[:i+j]
		}
		i = end
	}
}

func defaultCodeConfigurations(widget *typesys.ClassType) (component, connector, state *codegen.CodeConfiguration) {
	types := widget.Registry()
	name := componentName(widget)
	pkg := serverPackage(widget)

	component = &codegen.CodeConfiguration{
		ClassName:   name,
		PackageName: pkg,
		Super:       types.ObjectType(abstractComponent),
	}
	connector = &codegen.CodeConfiguration{
		ClassName:   name + "Connector",
		PackageName: widget.PackageName(),
		Super:       types.ObjectType(abstractConnector),
	}
	sharedPkg := "shared"
	if pkg != "" {
		sharedPkg = pkg + ".shared"
	}
	state = &codegen.CodeConfiguration{
		ClassName:   name + "State",
		PackageName: sharedPkg,
		Super:       types.ObjectType(abstractComponentState),
	}
	return component, connector, state
}
