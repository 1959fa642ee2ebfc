package provider

import (
	"fmt"
	"strings"
)

// The fixed category set every provider must answer from.
const (
	CategoryNetworkIssue   = "Network Issue"
	CategoryAccountProblem = "Account Problem"
	CategoryPaymentIssue   = "Payment Issue"
	CategoryFeatureRequest = "Feature Request"
	CategoryOther          = "Other"
)

// Ticket priorities derived from the category.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

var categories = []string{
	CategoryNetworkIssue,
	CategoryAccountProblem,
	CategoryPaymentIssue,
	CategoryFeatureRequest,
	CategoryOther,
}

var priorities = map[string]string{
	CategoryNetworkIssue:   PriorityHigh,
	CategoryAccountProblem: PriorityHigh,
	CategoryPaymentIssue:   PriorityHigh,
	CategoryFeatureRequest: PriorityLow,
	CategoryOther:          PriorityMedium,
}

// Categories returns the category labels providers choose from.
func Categories() []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// PriorityFor maps a category to its ticket priority.
// Unknown categories default to medium.
func PriorityFor(category string) string {
	if p, ok := priorities[category]; ok {
		return p
	}
	return PriorityMedium
}

// NormalizeCategory matches a raw model response against the category set.
// Matching is case-insensitive and tolerant of surrounding quotes and
// trailing punctuation. Returns false when the response is not one of the
// known labels.
func NormalizeCategory(raw string) (string, bool) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.Trim(cleaned, "\"'`")
	cleaned = strings.TrimRight(cleaned, ".")
	cleaned = strings.TrimSpace(cleaned)

	for _, c := range categories {
		if strings.EqualFold(cleaned, c) {
			return c, true
		}
	}

	return "", false
}

// BuildPrompt renders the classification prompt for a ticket.
func BuildPrompt(ticket string) string {
	var sb strings.Builder

	sb.WriteString("Classify this support ticket into ONE of these categories:\n")
	for _, c := range categories {
		fmt.Fprintf(&sb, "- %s\n", c)
	}
	fmt.Fprintf(&sb, "\nTicket: %s\n\n", ticket)
	sb.WriteString("Respond with ONLY the category name, nothing else.")

	return sb.String()
}
