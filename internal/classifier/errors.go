package classifier

import (
	"fmt"
	"strings"
)

// Attempt records why one provider did not produce a result.
type Attempt struct {
	Provider string `json:"provider"`
	Reason   string `json:"reason"`
}

// AllProvidersUnavailableError is returned when the whole failover chain
// is exhausted. It carries every attempted provider and its failure
// reason for diagnosis; individual provider errors are never surfaced
// directly.
type AllProvidersUnavailableError struct {
	Attempts []Attempt `json:"attempts"`
}

func (e *AllProvidersUnavailableError) Error() string {
	if len(e.Attempts) == 0 {
		return "all providers unavailable: no providers enabled"
	}

	reasons := make([]string, len(e.Attempts))
	for i, a := range e.Attempts {
		reasons[i] = fmt.Sprintf("%s: %s", a.Provider, a.Reason)
	}
	return "all providers unavailable: " + strings.Join(reasons, "; ")
}
