// Package update decides whether the Agoric CLI needs to be installed,
// updated or left alone, and drives the installer accordingly.
package update

// Action is what the trigger does after probing.
type Action int

const (
	ActionNoOp Action = iota
	ActionInstall
	ActionUpdate
)

func (a Action) String() string {
	switch a {
	case ActionInstall:
		return "install"
	case ActionUpdate:
		return "update"
	default:
		return "none"
	}
}

// Reasons reported in Decision.Reason.
const (
	ReasonNotInstalled = "not installed"
	ReasonNoRef        = "version reference unavailable"
	ReasonUpToDate     = "up to date"
	ReasonAvailable    = "update available"
)

// Input is the state a decision is made from.
type Input struct {
	Installed  bool
	LocalRef   string
	RemoteRef  string
	AutoUpdate bool
}

// Decision is the outcome of Decide. Prompt is set when an update is
// available but has to be confirmed by the user.
type Decision struct {
	Action Action
	Prompt bool
	// Reason is a short human readable explanation.
	Reason string
}

// Decide maps the probed state to exactly one action.
func Decide(in Input) Decision {
	switch {
	case !in.Installed:
		return Decision{Action: ActionInstall, Reason: ReasonNotInstalled}
	case in.LocalRef == "" || in.RemoteRef == "":
		return Decision{Action: ActionNoOp, Reason: ReasonNoRef}
	case in.LocalRef == in.RemoteRef:
		return Decision{Action: ActionNoOp, Reason: ReasonUpToDate}
	case in.AutoUpdate:
		return Decision{Action: ActionUpdate, Reason: ReasonAvailable}
	default:
		return Decision{Action: ActionUpdate, Prompt: true, Reason: ReasonAvailable}
	}
}
