package widget

import "github.com/dhamidi/vrapper/typesys"

const widgetBase = "com.google.gwt.user.client.ui.Widget"

// Discover returns the public, non-abstract classes among names that extend
// the GWT Widget class. Classes that cannot be loaded are logged and skipped.
func Discover(types *typesys.Registry, names []string) []*typesys.ClassType {
	base := types.ObjectType(widgetBase)
	var widgets []*typesys.ClassType
	for _, name := range names {
		t, err := types.ClassType(name)
		if err != nil {
			log.Warningf("skipping %s: %v", name, err)
			continue
		}
		if t == base {
			continue
		}
		ok, err := isWidget(t, base)
		if err != nil {
			log.Warningf("skipping %s: %v", name, err)
			continue
		}
		if ok {
			widgets = append(widgets, t)
		}
	}
	return widgets
}

func isWidget(t, base *typesys.ClassType) (bool, error) {
	public, err := t.IsPublic()
	if err != nil || !public {
		return false, err
	}
	abstract, err := t.IsAbstract()
	if err != nil || abstract {
		return false, err
	}
	return t.IsOrExtends(base)
}
