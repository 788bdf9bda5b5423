// Package wizard drives the claim check from start to report: an explicit
// state machine plus an interactive line-based front end.
package wizard

import (
	"fmt"

	"github.com/helmcode/claimsafe/pkg/claim"
	"github.com/helmcode/claimsafe/pkg/model"
)

// State is a wizard screen.
type State int

const (
	Landing State = iota
	PolicyUpload
	ClaimDetails
	Result
)

func (s State) String() string {
	switch s {
	case Landing:
		return "landing"
	case PolicyUpload:
		return "policy-upload"
	case ClaimDetails:
		return "claim-details"
	case Result:
		return "result"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Event moves the machine between states.
type Event interface {
	event()
}

// Started leaves the landing screen.
type Started struct{}

// PolicyProvided completes the upload step. An empty PolicyID means the
// upload was skipped.
type PolicyProvided struct {
	PolicyID string
}

// ClaimSubmitted carries a validated claim to the result screen.
type ClaimSubmitted struct {
	Input model.ClaimInput
}

// EditRequested goes back from the result to the claim form, keeping the
// policy.
type EditRequested struct{}

// Restarted clears everything and returns to the landing screen.
type Restarted struct{}

func (Started) event()        {}
func (PolicyProvided) event() {}
func (ClaimSubmitted) event() {}
func (EditRequested) event()  {}
func (Restarted) event()      {}

// TransitionError reports an event that is not allowed in the current state.
type TransitionError struct {
	From  State
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("wizard: %T not allowed in state %s", e.Event, e.From)
}

// Machine is the wizard state. The claim and policy are replaced as a whole
// on every transition, never edited in place.
type Machine struct {
	state    State
	policyID string
	claim    *model.ClaimInput
}

func NewMachine() *Machine {
	return &Machine{state: Landing}
}

func (m *Machine) State() State { return m.state }

// PolicyID is the chosen policy, or the sentinel once the upload step was
// skipped. It is empty before the upload step.
func (m *Machine) PolicyID() string { return m.policyID }

// Claim returns the submitted claim, if any.
func (m *Machine) Claim() (model.ClaimInput, bool) {
	if m.claim == nil {
		return model.ClaimInput{}, false
	}
	return *m.claim, true
}

// Apply performs a transition.
func (m *Machine) Apply(ev Event) error {
	switch e := ev.(type) {
	case Started:
		if m.state != Landing {
			return &TransitionError{From: m.state, Event: ev}
		}
		m.state = PolicyUpload

	case PolicyProvided:
		if m.state != PolicyUpload {
			return &TransitionError{From: m.state, Event: ev}
		}
		m.policyID = claim.PolicyIDOrSentinel(e.PolicyID)
		m.state = ClaimDetails

	case ClaimSubmitted:
		if m.state != ClaimDetails {
			return &TransitionError{From: m.state, Event: ev}
		}
		in := e.Input.Normalize()
		m.claim = &in
		m.state = Result

	case EditRequested:
		if m.state != Result {
			return &TransitionError{From: m.state, Event: ev}
		}
		m.state = ClaimDetails

	case Restarted:
		if m.state != Result {
			return &TransitionError{From: m.state, Event: ev}
		}
		*m = Machine{state: Landing}

	default:
		return &TransitionError{From: m.state, Event: ev}
	}
	return nil
}
