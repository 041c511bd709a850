package services

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"pharmacy-options-service/internal/adapters/pricing"
	"pharmacy-options-service/internal/adapters/search"
	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/ports"
)

type recordingSink struct {
	stages []string
}

func (r *recordingSink) Capture(ctx context.Context, requestID, stage string, payload any) error {
	r.stages = append(r.stages, stage)
	return nil
}

func testOrder() OrderRequest {
	return OrderRequest{
		City:    "city-hash",
		Items:   []ports.SKURequest{{SKU: "sku-1", CountDesired: 1}},
		Address: domain.Coordinates{Lat: 43.0, Lon: 76.0},
	}
}

func newRecommender(searcher ports.PharmacySearcher, pricer ports.DeliveryPricer, sink ports.SnapshotSink, t *testing.T) *Recommender {
	return &Recommender{
		Searcher:  searcher,
		Pricer:    pricer,
		Snapshots: sink,
		Location:  almaty(t),
		Now:       func() time.Time { return evalInstant },
	}
}

// Three filtered candidates at totals 400/4000/5000; only the cheapest one
// gets a delivery option, the other two degrade to null-delivery tuples and
// must not displace it.
func TestRecommendEndToEnd(t *testing.T) {
	searcher := &search.MockSearcher{
		Candidates: []*domain.PharmacyCandidate{
			withCoords(newCandidate("a", 400), 43.001, 76.001),
			withCoords(newCandidate("b", 4000), 43.002, 76.002),
			withCoords(newCandidate("c", 5000), 43.003, 76.003),
		},
	}
	pricer := &pricing.MockPricer{
		Options: map[string][]domain.DeliveryOption{
			"a": {{Price: 150, Eta: 20}},
		},
		Errs: map[string]error{
			"b": &ports.UnavailableError{Collaborator: "pricing", Err: errors.New("timeout")},
			"c": &ports.UnavailableError{Collaborator: "pricing", Err: errors.New("timeout")},
		},
	}
	sink := &recordingSink{}

	rec := newRecommender(searcher, pricer, sink, t)
	bundle, err := rec.Recommend(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cheapest := bundle.CheapestDeliveryOption
	if cheapest == nil || cheapest.Pharmacy.Source.Code != "a" {
		t.Fatalf("cheapest = %+v, want candidate a", cheapest)
	}
	if cheapest.TotalPrice != 550 {
		t.Fatalf("cheapest total price = %v, want 550", cheapest.TotalPrice)
	}
	if cheapest.DeliveryOption == nil || cheapest.DeliveryOption.Eta != 20 {
		t.Fatalf("cheapest delivery option = %+v, want eta 20", cheapest.DeliveryOption)
	}

	fastest := bundle.FastestDeliveryOption
	if fastest == nil || fastest.Pharmacy.Source.Code != "a" {
		t.Fatalf("fastest = %+v, want candidate a", fastest)
	}

	wantStages := []string{
		StageFoundAll, StageFiltered, StageTopCheapest, StageTopClosest,
		StageAugmentedCheapest, StageAugmentedClosest, StageDeliveryOptions, StageFinal,
	}
	if !reflect.DeepEqual(sink.stages, wantStages) {
		t.Fatalf("snapshot stages = %v, want %v", sink.stages, wantStages)
	}
}

func TestRecommendIsIdempotent(t *testing.T) {
	searcher := &search.MockSearcher{
		Candidates: []*domain.PharmacyCandidate{
			withCoords(newCandidate("a", 400), 43.001, 76.001),
			withCoords(newCandidate("b", 400), 43.002, 76.002),
			withCoords(newCandidate("c", 5000), 43.003, 76.003),
		},
	}
	pricer := &pricing.MockPricer{
		Options: map[string][]domain.DeliveryOption{
			"a": {{Price: 150, Eta: 20}},
			"b": {{Price: 150, Eta: 20}},
			"c": {{Price: 100, Eta: 90}},
		},
	}

	rec := newRecommender(searcher, pricer, nil, t)

	first, err := rec.Recommend(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := rec.Recommend(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("identical requests produced different bundles:\n%+v\n%+v", first, second)
	}
}

// Pricing down across the board still yields a recommendation through the
// degenerate path, provided an always-open pharmacy exists.
func TestRecommendAllPricingFailures(t *testing.T) {
	searcher := &search.MockSearcher{
		Candidates: []*domain.PharmacyCandidate{
			withCoords(newCandidate("a", 400), 43.001, 76.001),
			withCoords(alwaysOpen(newCandidate("b", 4000)), 43.002, 76.002),
		},
	}
	pricer := &pricing.MockPricer{
		Errs: map[string]error{
			"a": &ports.UnavailableError{Collaborator: "pricing", Err: errors.New("down")},
			"b": &ports.UnavailableError{Collaborator: "pricing", Err: errors.New("down")},
		},
	}

	rec := newRecommender(searcher, pricer, nil, t)
	bundle, err := rec.Recommend(context.Background(), testOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if bundle.CheapestDeliveryOption == nil || bundle.CheapestDeliveryOption.Pharmacy.Source.Code != "a" {
		t.Fatalf("cheapest = %+v, want candidate a with nil delivery", bundle.CheapestDeliveryOption)
	}
	if bundle.CheapestDeliveryOption.DeliveryOption != nil {
		t.Fatal("cheapest delivery option must be nil when all pricing failed")
	}
	if bundle.FastestDeliveryOption == nil || bundle.FastestDeliveryOption.Pharmacy.Source.Code != "b" {
		t.Fatalf("fastest = %+v, want the always-open candidate", bundle.FastestDeliveryOption)
	}
}

func TestRecommendEmptySearchResult(t *testing.T) {
	rec := newRecommender(&search.MockSearcher{}, &pricing.MockPricer{}, nil, t)

	_, err := rec.Recommend(context.Background(), testOrder())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRecommendSearchUnavailableIsFatal(t *testing.T) {
	searcher := &search.MockSearcher{
		Err: &ports.UnavailableError{Collaborator: "search", Err: errors.New("connection refused")},
	}

	rec := newRecommender(searcher, &pricing.MockPricer{}, nil, t)
	_, err := rec.Recommend(context.Background(), testOrder())

	var unavailableErr *ports.UnavailableError
	if !errors.As(err, &unavailableErr) {
		t.Fatalf("err = %v, want UnavailableError", err)
	}
	if unavailableErr.Collaborator != "search" {
		t.Fatalf("collaborator = %q, want search", unavailableErr.Collaborator)
	}
}
