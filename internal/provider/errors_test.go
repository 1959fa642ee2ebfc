package provider_test

import (
	"context"
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/angeloszaimis/ticket-classifier/internal/provider"
)

var _ = Describe("ClassifyError", func() {
	Describe("Error", func() {
		It("should include provider, kind and cause", func() {
			err := &provider.ClassifyError{
				Provider: "gemini",
				Kind:     provider.FailureTimeout,
				Err:      errors.New("deadline exceeded"),
			}
			Expect(err.Error()).To(Equal("gemini: timeout: deadline exceeded"))
		})

		It("should omit the cause when absent", func() {
			err := &provider.ClassifyError{Provider: "gemini", Kind: provider.FailureAuth}
			Expect(err.Error()).To(Equal("gemini: authentication"))
		})
	})

	Describe("Unwrap", func() {
		It("should expose the wrapped cause to errors.Is", func() {
			cause := errors.New("connection refused")
			err := &provider.ClassifyError{
				Provider: "openai",
				Kind:     provider.FailureNetwork,
				Err:      cause,
			}
			Expect(errors.Is(err, cause)).To(BeTrue())
		})
	})

	Describe("KindOf", func() {
		It("should extract the kind from a wrapped chain", func() {
			inner := &provider.ClassifyError{Provider: "gemini", Kind: provider.FailureRateLimited}
			wrapped := fmt.Errorf("attempt 1: %w", inner)
			Expect(provider.KindOf(wrapped)).To(Equal(provider.FailureRateLimited))
		})

		It("should report unclassified errors as provider_unavailable", func() {
			Expect(provider.KindOf(errors.New("boom"))).To(Equal(provider.FailureUnavailable))
		})
	})

	Describe("IsNonRetryable", func() {
		It("should be true only for authentication failures", func() {
			auth := &provider.ClassifyError{Provider: "gemini", Kind: provider.FailureAuth}
			Expect(provider.IsNonRetryable(auth)).To(BeTrue())

			for _, kind := range []provider.FailureKind{
				provider.FailureTimeout,
				provider.FailureRateLimited,
				provider.FailureMalformed,
				provider.FailureNetwork,
				provider.FailureUnavailable,
			} {
				err := &provider.ClassifyError{Provider: "gemini", Kind: kind}
				Expect(provider.IsNonRetryable(err)).To(BeFalse(), string(kind))
			}
		})
	})
})

var _ = Describe("MockAdapter", func() {
	var mock *provider.MockAdapter

	BeforeEach(func() {
		mock = provider.NewMockAdapter("mock")
	})

	DescribeTable("keyword classification",
		func(ticket, expected string) {
			result, err := mock.Classify(context.Background(), ticket)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Category).To(Equal(expected))
		},
		Entry("wifi ticket", "my WIFI is broken", provider.CategoryNetworkIssue),
		Entry("login ticket", "cannot login to the portal", provider.CategoryAccountProblem),
		Entry("charge ticket", "double charge on my card", provider.CategoryPaymentIssue),
		Entry("feature ticket", "feature idea: dark mode", provider.CategoryFeatureRequest),
		Entry("anything else", "hello there", provider.CategoryOther),
	)

	It("should count calls", func() {
		Expect(mock.Calls()).To(BeZero())
		_, _ = mock.Classify(context.Background(), "hi")
		_, _ = mock.Classify(context.Background(), "hi")
		Expect(mock.Calls()).To(Equal(2))
	})

	It("should fail while an error is injected", func() {
		boom := errors.New("boom")
		mock.SetError(boom)
		_, err := mock.Classify(context.Background(), "hi")
		Expect(err).To(MatchError(boom))

		mock.SetError(nil)
		_, err = mock.Classify(context.Background(), "hi")
		Expect(err).NotTo(HaveOccurred())
	})
})
