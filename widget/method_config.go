package widget

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dhamidi/vrapper/typesys"
)

// ErrInvalidSelection is returned when selecting an action that belongs to
// another method or is not available for this one.
var ErrInvalidSelection = errors.New("invalid action selection")

// MethodConfiguration holds the evaluated actions of one widget method and
// the action chosen for it.
type MethodConfiguration struct {
	method     *typesys.Method
	actions    []Action
	impossible []Action
	selected   Action
}

func newMethodConfiguration(m *typesys.Method, widget *typesys.ClassType, componentName string) (*MethodConfiguration, error) {
	all, err := newActions(m, widget, componentName)
	if err != nil {
		return nil, err
	}
	mc := &MethodConfiguration{method: m}
	for _, a := range all {
		if a.Verdict().Status == Impossible {
			mc.impossible = append(mc.impossible, a)
		} else {
			mc.actions = append(mc.actions, a)
		}
	}
	sort.SliceStable(mc.actions, func(i, j int) bool {
		return mc.actions[i].Verdict().Status > mc.actions[j].Verdict().Status
	})

	if len(mc.actions) > 0 && mc.actions[0].Verdict().Status == Recommended {
		if len(mc.actions) == 1 || mc.actions[1].Verdict().Status != Recommended {
			mc.selected = mc.actions[0]
		}
	}
	return mc, nil
}

func (mc *MethodConfiguration) Method() *typesys.Method { return mc.method }

// Actions returns the possible actions, best first.
func (mc *MethodConfiguration) Actions() []Action { return mc.actions }

// ImpossibleActions returns the rejected actions in evaluation order, for
// diagnostics.
func (mc *MethodConfiguration) ImpossibleActions() []Action { return mc.impossible }

// Selected returns the chosen action, or nil.
func (mc *MethodConfiguration) Selected() Action { return mc.selected }

// Action returns the action of the given kind, possible or not.
func (mc *MethodConfiguration) Action(kind ActionKind) Action {
	for _, list := range [][]Action{mc.actions, mc.impossible} {
		for _, a := range list {
			if a.Kind() == kind {
				return a
			}
		}
	}
	return nil
}

// Select chooses a. A nil action clears the selection; an impossible action
// is rejected. On error the previous selection is kept.
func (mc *MethodConfiguration) Select(a Action) error {
	if a != nil && !a.Method().Equal(mc.method) {
		return fmt.Errorf("can't assign action for %s to the method %s: %w",
			a.Method().SourceString(), mc.method.SourceString(), ErrInvalidSelection)
	}
	if a != nil && a.Verdict().Status == Impossible {
		return fmt.Errorf("%s can't use %s (%s): %w",
			mc.method.SourceString(), a.Kind(), a.Verdict(), ErrInvalidSelection)
	}
	mc.selected = a
	return nil
}

// SelectKind chooses the possible action of the given kind.
func (mc *MethodConfiguration) SelectKind(kind ActionKind) error {
	for _, a := range mc.actions {
		if a.Kind() == kind {
			return mc.Select(a)
		}
	}
	reason := "not available"
	if a := mc.Action(kind); a != nil {
		reason = a.Verdict().String()
	}
	return fmt.Errorf("%s can't use %s (%s): %w", mc.method.SourceString(), kind, reason, ErrInvalidSelection)
}
