package domain

import "time"

// Decision is the routing outcome for a screened number.
type Decision string

const (
	DecisionScam Decision = "SCAM"
	DecisionSafe Decision = "SAFE"
)

// FlowState is a step of a single call submission.
type FlowState string

const (
	StateIdle        FlowState = "IDLE"
	StateValidating  FlowState = "VALIDATING"
	StateRoutingScam FlowState = "ROUTING_SCAM"
	StateRoutingSafe FlowState = "ROUTING_SAFE"
	StateRejected    FlowState = "REJECTED"
)

// Terminal reports whether a submission stops at this state.
// A rejected submission goes back to IDLE only when the user submits again.
func (s FlowState) Terminal() bool {
	switch s {
	case StateRejected, StateRoutingScam, StateRoutingSafe:
		return true
	}
	return false
}

// Screens opened by the presentation layer.
const (
	ScreenScamWarning = "scam_warning"
	ScreenDefaultCall = "default_call"
)

// Destination tells the presentation layer which screen to open and with which flags.
type Destination struct {
	Screen       string `json:"screen"`
	IsScam       bool   `json:"is_scam"`
	IsCallActive bool   `json:"is_call_active"`
}

// Screening is the result of one submission.
type Screening struct {
	Input       string       `json:"input"`
	PhoneNumber string       `json:"phone_number"`
	Path        []FlowState  `json:"path"`
	State       FlowState    `json:"state"`
	Decision    Decision     `json:"decision,omitempty"`
	Destination *Destination `json:"destination,omitempty"`

	// Code and Message are set only for rejected submissions.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`

	CheckedAt time.Time `json:"checked_at"`
}

// Routed reports whether the submission produced a decision.
func (s *Screening) Routed() bool {
	return s.State == StateRoutingScam || s.State == StateRoutingSafe
}
