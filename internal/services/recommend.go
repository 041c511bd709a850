package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/platform/obs"
	"pharmacy-options-service/internal/ports"
)

// Snapshot stage names, in pipeline order.
const (
	StageFoundAll          = "found_all"
	StageFiltered          = "filtered"
	StageTopCheapest       = "top_cheapest"
	StageTopClosest        = "top_closest"
	StageAugmentedCheapest = "augmented_cheapest"
	StageAugmentedClosest  = "augmented_closest"
	StageDeliveryOptions   = "delivery_options"
	StageFinal             = "final"
)

// OrderRequest is one inbound recommendation request after validation.
type OrderRequest struct {
	City    string
	Items   []ports.SKURequest
	Address domain.Coordinates
}

// Recommender runs the filter -> rank -> augment -> quote -> decide
// pipeline against the two collaborators. All intermediate state is built
// fresh per request; the service itself holds only wiring.
type Recommender struct {
	Searcher  ports.PharmacySearcher
	Pricer    ports.DeliveryPricer
	Snapshots ports.SnapshotSink
	Location  *time.Location

	// Now supplies the evaluation instant for opening-hours
	// classification; nil means time.Now.
	Now func() time.Time
}

// Recommend produces the four-slot bundle for one order.
func (r *Recommender) Recommend(ctx context.Context, req OrderRequest) (_ *domain.RecommendationBundle, err error) {
	defer obs.Time(ctx, "recommend")(&err)

	candidates, err := r.Searcher.Search(ctx, req.City, req.Items)
	if err != nil {
		return nil, fmt.Errorf("recommend: search pharmacies: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("recommend: no pharmacies found with the provided SKU data: %w", ErrNotFound)
	}
	r.capture(ctx, StageFoundAll, candidates)

	filtered, err := FilterCandidates(candidates)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	r.capture(ctx, StageFiltered, filtered)

	cheapest := TopCheapest(filtered)
	r.capture(ctx, StageTopCheapest, cheapest)

	closest := TopClosest(filtered, req.Address)
	r.capture(ctx, StageTopClosest, closest)

	cheapest, closest = EnsureAlwaysOpen(filtered, cheapest, closest, req.Address)
	r.capture(ctx, StageAugmentedCheapest, cheapest)
	r.capture(ctx, StageAugmentedClosest, closest)

	union := UnionByCode(closest, cheapest)
	tuples, err := FetchDeliveryQuotes(ctx, r.Pricer, union, req.Address)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	r.capture(ctx, StageDeliveryOptions, tuples)

	bundle, err := Decide(tuples, r.now(), r.Location)
	if err != nil {
		return nil, fmt.Errorf("recommend: %w", err)
	}
	r.capture(ctx, StageFinal, bundle)

	return bundle, nil
}

func (r *Recommender) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// capture persists one stage snapshot; failures are logged and swallowed so
// a broken sink never fails the request.
func (r *Recommender) capture(ctx context.Context, stage string, payload any) {
	if r.Snapshots == nil {
		return
	}
	if err := r.Snapshots.Capture(ctx, obs.RequestID(ctx), stage, payload); err != nil {
		log.Printf("snapshot capture failed: stage=%s err=%v", stage, err)
	}
}
