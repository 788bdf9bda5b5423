package analyzer

import (
	"context"
	"errors"

	"github.com/helmcode/claimsafe/pkg/model"
	"github.com/helmcode/claimsafe/pkg/resilience"
	"github.com/helmcode/claimsafe/pkg/scoring"
)

// Kind groups failures by how the user recovers from them.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation is fixed by correcting input.
	KindValidation
	// KindTransport covers failed or timed out calls.
	KindTransport
	// KindContract is a reply that breaks the service contract.
	KindContract
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindTransport:
		return "transport"
	case KindContract:
		return "contract"
	default:
		return "unknown"
	}
}

// KindOf classifies err.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}
	var ce *model.ContractError
	if errors.As(err, &ce) {
		return KindContract
	}
	var se *scoring.StatusError
	if errors.As(err, &se) || resilience.IsTransient(err) ||
		errors.Is(err, context.DeadlineExceeded) {
		return KindTransport
	}
	return KindUnknown
}

// Retryable reports whether offering the user a retry makes sense.
func Retryable(err error) bool {
	return KindOf(err) == KindTransport && (resilience.IsTransient(err) || errors.Is(err, context.DeadlineExceeded))
}
