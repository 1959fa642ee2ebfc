package provider

import (
	"context"
	"strings"
	"sync"
)

// MockAdapter returns deterministic classifications for local runs and
// tests. Tickets containing a category keyword get that category;
// everything else falls back to the default.
type MockAdapter struct {
	mutex           sync.Mutex
	name            string
	defaultCategory string
	err             error
	calls           int
}

// NewMockAdapter creates a mock adapter answering with the default
// category.
func NewMockAdapter(name string) *MockAdapter {
	return &MockAdapter{name: name, defaultCategory: CategoryOther}
}

func (a *MockAdapter) Name() string {
	return a.name
}

func (a *MockAdapter) Model() string {
	return "mock-1"
}

// SetError makes every subsequent call fail with err; nil restores
// normal behavior.
func (a *MockAdapter) SetError(err error) {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	a.err = err
}

// Calls returns how many times Classify has been invoked.
func (a *MockAdapter) Calls() int {
	a.mutex.Lock()
	defer a.mutex.Unlock()
	return a.calls
}

// Classify returns a deterministic category for the ticket.
func (a *MockAdapter) Classify(ctx context.Context, ticket string) (Classification, error) {
	a.mutex.Lock()
	a.calls++
	err := a.err
	a.mutex.Unlock()

	if err != nil {
		return Classification{}, err
	}
	if ctx.Err() != nil {
		return Classification{}, wrapTransport(a.name, ctx.Err())
	}

	lowered := strings.ToLower(ticket)
	category := a.defaultCategory
	switch {
	case strings.Contains(lowered, "network"), strings.Contains(lowered, "wifi"):
		category = CategoryNetworkIssue
	case strings.Contains(lowered, "account"), strings.Contains(lowered, "login"):
		category = CategoryAccountProblem
	case strings.Contains(lowered, "payment"), strings.Contains(lowered, "charge"):
		category = CategoryPaymentIssue
	case strings.Contains(lowered, "feature"), strings.Contains(lowered, "request"):
		category = CategoryFeatureRequest
	}

	return Classification{Category: category, Confidence: 1.0}, nil
}
