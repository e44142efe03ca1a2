package enums

import "fmt"

// TransitionAction is a status-changing order operation exposed by the backend
// as PUT /api/product-orders/{id}/{action}.
type TransitionAction string

const (
	TransitionActionApprove TransitionAction = "approve"
	TransitionActionShip    TransitionAction = "ship"
	TransitionActionDeliver TransitionAction = "deliver"
	TransitionActionCancel  TransitionAction = "cancel"
)

var validTransitionActions = []TransitionAction{
	TransitionActionApprove,
	TransitionActionShip,
	TransitionActionDeliver,
	TransitionActionCancel,
}

// String implements fmt.Stringer.
func (a TransitionAction) String() string {
	return string(a)
}

// IsValid reports whether the value is a known TransitionAction.
func (a TransitionAction) IsValid() bool {
	for _, candidate := range validTransitionActions {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseTransitionAction converts raw input into a TransitionAction.
func ParseTransitionAction(value string) (TransitionAction, error) {
	for _, candidate := range validTransitionActions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid transition action %q", value)
}
