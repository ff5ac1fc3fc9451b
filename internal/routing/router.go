package routing

import (
	"errors"
	"strings"
	"time"

	"github.com/rgdevment/scam-scanner/internal/domain"
	"github.com/rgdevment/scam-scanner/internal/registry"
)

// Router turns a submitted number into a routing decision.
type Router struct {
	lookup registry.Lookup
	now    func() time.Time
}

func NewRouter(lookup registry.Lookup) *Router {
	return &Router{
		lookup: lookup,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// DetermineDestination does not validate. Callers check IsValidFormat first.
func (r *Router) DetermineDestination(input string) domain.Decision {
	if r.lookup.IsScam(input) {
		return domain.DecisionScam
	}
	return domain.DecisionSafe
}

// DestinationFor maps a decision to the screen the caller opens next.
func DestinationFor(d domain.Decision) domain.Destination {
	if d == domain.DecisionScam {
		return domain.Destination{Screen: domain.ScreenScamWarning, IsScam: true}
	}
	return domain.Destination{Screen: domain.ScreenDefaultCall}
}

// Submit runs one submission from IDLE to a terminal state.
// Invalid input is reported in the result, never as an error.
func (r *Router) Submit(input string) domain.Screening {
	s := domain.Screening{
		Input:       input,
		PhoneNumber: strings.TrimSpace(input),
		Path:        []domain.FlowState{domain.StateIdle, domain.StateValidating},
		CheckedAt:   r.now(),
	}

	if err := ValidateFormat(input); err != nil {
		var vErr *domain.ValidationError
		if !errors.As(err, &vErr) {
			vErr = domain.ErrInvalidFormat
		}
		s.Code = vErr.Code
		s.Message = vErr.Message
		return finish(s, domain.StateRejected)
	}

	s.Decision = r.DetermineDestination(s.PhoneNumber)
	dest := DestinationFor(s.Decision)
	s.Destination = &dest

	if s.Decision == domain.DecisionScam {
		return finish(s, domain.StateRoutingScam)
	}
	return finish(s, domain.StateRoutingSafe)
}

func finish(s domain.Screening, state domain.FlowState) domain.Screening {
	s.Path = append(s.Path, state)
	s.State = state
	return s
}
