package classifier

import (
	"context"
)

// ItemError reports a failed batch item by its input index.
type ItemError struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// BatchResult aggregates per-item outcomes. Partial failure is expected;
// one bad ticket never fails its siblings.
type BatchResult struct {
	Results []*Result   `json:"results"`
	Errors  []ItemError `json:"errors,omitempty"`
}

// ClassifyBatch applies the single-ticket failover chain independently to
// every item. Items run sequentially so the cost/priority preference of
// the chain is preserved; cancellation is honored between items.
func (c *Classifier) ClassifyBatch(ctx context.Context, tickets []string) (BatchResult, error) {
	batch := BatchResult{
		Results: make([]*Result, 0, len(tickets)),
	}

	for i, ticket := range tickets {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		result, err := c.Classify(ctx, ticket)
		if err != nil {
			if ctx.Err() != nil {
				return batch, err
			}
			batch.Errors = append(batch.Errors, ItemError{Index: i, Reason: err.Error()})
			continue
		}

		batch.Results = append(batch.Results, result)
	}

	return batch, nil
}
