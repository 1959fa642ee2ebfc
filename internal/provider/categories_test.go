package provider_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ticket-classifier/internal/provider"
)

var _ = Describe("Categories", func() {
	Describe("Categories", func() {
		It("should return the five known labels", func() {
			Expect(provider.Categories()).To(Equal([]string{
				"Network Issue",
				"Account Problem",
				"Payment Issue",
				"Feature Request",
				"Other",
			}))
		})

		It("should return a copy callers cannot mutate", func() {
			got := provider.Categories()
			got[0] = "mutated"
			Expect(provider.Categories()[0]).To(Equal("Network Issue"))
		})
	})

	DescribeTable("PriorityFor",
		func(category, expected string) {
			Expect(provider.PriorityFor(category)).To(Equal(expected))
		},
		Entry("network issues are high", provider.CategoryNetworkIssue, provider.PriorityHigh),
		Entry("account problems are high", provider.CategoryAccountProblem, provider.PriorityHigh),
		Entry("payment issues are high", provider.CategoryPaymentIssue, provider.PriorityHigh),
		Entry("feature requests are low", provider.CategoryFeatureRequest, provider.PriorityLow),
		Entry("other is medium", provider.CategoryOther, provider.PriorityMedium),
		Entry("unknown defaults to medium", "Something Else", provider.PriorityMedium),
	)

	DescribeTable("NormalizeCategory",
		func(raw, expected string, ok bool) {
			got, matched := provider.NormalizeCategory(raw)
			Expect(matched).To(Equal(ok))
			Expect(got).To(Equal(expected))
		},
		Entry("exact match", "Network Issue", "Network Issue", true),
		Entry("lowercase", "network issue", "Network Issue", true),
		Entry("uppercase", "PAYMENT ISSUE", "Payment Issue", true),
		Entry("surrounding whitespace", "  Account Problem  ", "Account Problem", true),
		Entry("quoted", "\"Feature Request\"", "Feature Request", true),
		Entry("trailing period", "Other.", "Other", true),
		Entry("quoted and punctuated", "'network issue.'", "Network Issue", true),
		Entry("unknown label", "Billing", "", false),
		Entry("empty", "", "", false),
		Entry("category embedded in a sentence", "The category is Other", "", false),
	)

	Describe("BuildPrompt", func() {
		It("should include every category and the ticket text", func() {
			prompt := provider.BuildPrompt("My wifi is down")
			for _, c := range provider.Categories() {
				Expect(prompt).To(ContainSubstring("- " + c))
			}
			Expect(prompt).To(ContainSubstring("Ticket: My wifi is down"))
			Expect(strings.Count(prompt, "Ticket:")).To(Equal(1))
		})
	})
})
