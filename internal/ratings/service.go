package ratings

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/multierr"

	"github.com/medimarket/storefront-backend/internal/orders"
	"github.com/medimarket/storefront-backend/pkg/auth"
	pkgerrors "github.com/medimarket/storefront-backend/pkg/errors"
	"github.com/medimarket/storefront-backend/pkg/logger"
	"github.com/medimarket/storefront-backend/pkg/types"
)

type ratingSubmitter interface {
	SubmitRating(ctx context.Context, session auth.Session, record types.RatingRecord) error
}

// Input is the buyer's rating for one delivered order, fanned out per
// product. An omitted score defaults to the top of the band.
type Input struct {
	Score  int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Review string `json:"review,omitempty"`
}

// Service submits per-product ratings for delivered orders.
type Service interface {
	Rate(ctx context.Context, session auth.Session, order types.Order, input Input) error
}

type service struct {
	submitter ratingSubmitter
	logg      *logger.Logger
}

// NewService builds the rating submitter.
func NewService(submitter ratingSubmitter, logg *logger.Logger) (Service, error) {
	if submitter == nil {
		return nil, fmt.Errorf("rating submitter required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{submitter: submitter, logg: logg}, nil
}

// Rate submits one rating record per rateable line, in parallel. Lines
// without a product id are skipped; an order with none is a no-op success.
// Submissions that fail are combined and surfaced together, and already
// accepted records are not rolled back.
func (s *service) Rate(ctx context.Context, session auth.Session, order types.Order, input Input) error {
	if err := orders.GateRate(session, order); err != nil {
		return err
	}
	score := input.Score
	if score == 0 {
		score = types.RatingDefault
	}
	if !types.ValidRating(score) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("rating must be between %d and %d", types.RatingMin, types.RatingMax))
	}

	records := make([]types.RatingRecord, 0, len(order.Items))
	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		records = append(records, types.RatingRecord{
			ProductID: *item.ProductID,
			Rating:    score,
			Review:    input.Review,
		})
	}
	if len(records) == 0 {
		return nil
	}

	ctx = s.logg.WithFields(ctx, map[string]any{
		"order_id":     order.ID.String(),
		"record_count": len(records),
	})

	errs := make([]error, len(records))
	var wg sync.WaitGroup
	for i, record := range records {
		wg.Add(1)
		go func(i int, record types.RatingRecord) {
			defer wg.Done()
			errs[i] = s.submitter.SubmitRating(ctx, session, record)
		}(i, record)
	}
	wg.Wait()

	if err := multierr.Combine(errs...); err != nil {
		s.logg.Error(ctx, "ratings.submit.failed", err)
		return err
	}
	s.logg.Info(ctx, "ratings.submitted")
	return nil
}
