package widget

import (
	"fmt"
	"strings"
)

// Status ranks how well an action expresses a method. The order is total:
// Impossible < Discouraged < Supported < Recommended.
type Status int

const (
	Impossible Status = iota
	Discouraged
	Supported
	Recommended
)

func (s Status) String() string {
	switch s {
	case Impossible:
		return "IMPOSSIBLE"
	case Discouraged:
		return "DISCOURAGED"
	case Supported:
		return "SUPPORTED"
	case Recommended:
		return "RECOMMENDED"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Verdict is the outcome of evaluating an action. Comment may be empty.
type Verdict struct {
	Status  Status
	Comment string
}

func (v Verdict) String() string {
	if v.Comment == "" {
		return v.Status.String()
	}
	return v.Status.String() + ": " + v.Comment
}

// ActionKind names one of the four ways a widget method can be exposed.
type ActionKind int

const (
	StateFieldKind ActionKind = iota
	ClientRPCKind
	EventHandlerKind
	ResourceURLKind
)

var actionKindNames = []string{"state-field", "client-rpc", "event-handler", "resource-url"}

func (k ActionKind) String() string {
	if k < 0 || int(k) >= len(actionKindNames) {
		return fmt.Sprintf("ActionKind(%d)", int(k))
	}
	return actionKindNames[k]
}

// ParseActionKind accepts the names printed by ActionKind.String.
func ParseActionKind(s string) (ActionKind, error) {
	for i, name := range actionKindNames {
		if strings.EqualFold(s, name) {
			return ActionKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown action kind %q (expected one of %s)", s, strings.Join(actionKindNames, ", "))
}
