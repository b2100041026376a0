package service

import (
	"context"

	"dealflow_backend/internal/propertydata/transport"
)

// BatchOptions configures progress and error reporting for a batch fetch.
// Both callbacks are optional.
type BatchOptions struct {
	// OnProgress is invoked after every ID, success or failure, with the
	// number of IDs processed so far and the total.
	OnProgress func(done, total int)
	// OnError is invoked once per failing ID. When nil, failures are
	// logged and the batch continues.
	OnError func(id string, err error)
}

// FetchDetails fetches details for the given IDs strictly sequentially.
// The throttle already serializes the underlying calls, and sequential
// iteration keeps error attribution simple. One failing ID never aborts
// the batch: the function always returns whatever succeeded, in input
// order. Not-found IDs are skipped silently.
func (s *Service) FetchDetails(ctx context.Context, ids []string, opts BatchOptions) []*transport.DetailResult {
	results := make([]*transport.DetailResult, 0, len(ids))
	total := len(ids)

	for i, id := range ids {
		detail, err := s.DetailByID(ctx, id)
		switch {
		case err != nil:
			if opts.OnError != nil {
				opts.OnError(id, err)
			} else if s.log != nil {
				s.log.Error("detail fetch failed", "id", id, "error", err)
			}
		case detail != nil:
			results = append(results, detail)
		}

		if opts.OnProgress != nil {
			opts.OnProgress(i+1, total)
		}
	}

	return results
}
