package services

import (
	"fmt"
	"time"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/ports"
)

// Ratio a closed pharmacy must undercut the open pick by (on price or eta)
// to be worth offering as an alternate.
const closedDiscountFactor = 0.7

// Decide combines price, eta and opening status into the four-slot
// recommendation bundle. `at` is the evaluation instant and `loc` the
// reference timezone for opening-hours classification.
//
// The engine is a pair of linear passes maintaining explicit running
// minima, so the outcome is the global best per slot and independent of
// tuple order.
func Decide(
	tuples []*domain.PriceTuple,
	at time.Time,
	loc *time.Location,
) (*domain.RecommendationBundle, error) {
	if len(tuples) == 0 {
		return nil, fmt.Errorf("decide: no delivery options found: %w", ErrNotFound)
	}

	for _, t := range tuples {
		if t == nil || t.Pharmacy == nil {
			return nil, &ports.ContractError{
				Collaborator: "pricing",
				Detail:       "invalid delivery option data format",
			}
		}
	}

	if allWithoutDelivery(tuples) {
		return decideDegenerate(tuples)
	}

	statuses := make([]domain.OpeningStatus, len(tuples))
	for i, t := range tuples {
		statuses[i] = domain.ClassifyOpening(t.Pharmacy.Source, at, loc)
	}

	var (
		cheapestOpen       *domain.PriceTuple
		cheapestOpenStatus domain.OpeningStatus
		fastestOpen        *domain.PriceTuple
		fastestOpenStatus  domain.OpeningStatus
		altCheapest        *domain.PriceTuple
		altFastest         *domain.PriceTuple
	)

	// First pass: best open picks plus the best not-closing-soon fallbacks.
	for i, t := range tuples {
		if t.Pharmacy.Source.Code == "" {
			continue
		}
		status := statuses[i]
		if status.IsClosed() {
			continue
		}

		if cheapestOpen == nil || t.TotalPrice < cheapestOpen.TotalPrice {
			cheapestOpen = t
			cheapestOpenStatus = status
		}

		// Eta minima only consider tuples that actually carry an option;
		// degraded nil-delivery tuples have no eta to rank on.
		if t.DeliveryOption != nil {
			if fastestOpen == nil || t.DeliveryOption.Eta < fastestOpen.DeliveryOption.Eta {
				fastestOpen = t
				fastestOpenStatus = status
			}
		}

		if status.OpenBeyondSoon() {
			if altCheapest == nil || t.TotalPrice < altCheapest.TotalPrice {
				altCheapest = t
			}
			if t.DeliveryOption != nil {
				if altFastest == nil || t.DeliveryOption.Eta < altFastest.DeliveryOption.Eta {
					altFastest = t
				}
			}
		}
	}

	// Alternates only matter when the primary pick is about to close.
	if cheapestOpen == nil || cheapestOpenStatus != domain.StatusClosingSoon {
		altCheapest = nil
	}
	if fastestOpen == nil || fastestOpenStatus != domain.StatusClosingSoon {
		altFastest = nil
	}

	var (
		closedCheapest *domain.PriceTuple
		closedFastest  *domain.PriceTuple
	)

	// Second pass: closed pharmacies, admitted only through the discount
	// gate relative to the open picks. With no open pick at all the gate
	// drops and closed pharmacies compete on their own.
	for i, t := range tuples {
		if t.Pharmacy.Source.Code == "" {
			continue
		}
		if !statuses[i].IsClosed() {
			continue
		}

		priceGatePassed := cheapestOpen == nil ||
			t.TotalPrice <= cheapestOpen.TotalPrice*closedDiscountFactor
		if priceGatePassed {
			if closedCheapest == nil || t.TotalPrice < closedCheapest.TotalPrice {
				closedCheapest = t
			}
		}

		if t.DeliveryOption != nil {
			etaGatePassed := fastestOpen == nil ||
				t.DeliveryOption.Eta <= fastestOpen.DeliveryOption.Eta*closedDiscountFactor
			if etaGatePassed {
				if closedFastest == nil || t.DeliveryOption.Eta < closedFastest.DeliveryOption.Eta {
					closedFastest = t
				}
			}
		}
	}

	// A gated closed pick outranks the closing-soon fallback as alternate.
	if closedCheapest != nil && cheapestOpen != nil {
		return &domain.RecommendationBundle{
			CheapestDeliveryOption:    cheapestOpen,
			AlternativeCheapestOption: closedCheapest,
			FastestDeliveryOption:     fastestOpen,
			AlternativeFastestOption:  closedFastest,
		}, nil
	}

	// Everything is closed: offer the best closed picks without alternates.
	if cheapestOpen == nil && fastestOpen == nil {
		return &domain.RecommendationBundle{
			CheapestDeliveryOption:    closedCheapest,
			AlternativeCheapestOption: nil,
			FastestDeliveryOption:     closedFastest,
			AlternativeFastestOption:  nil,
		}, nil
	}

	return &domain.RecommendationBundle{
		CheapestDeliveryOption:    cheapestOpen,
		AlternativeCheapestOption: altCheapest,
		FastestDeliveryOption:     fastestOpen,
		AlternativeFastestOption:  altFastest,
	}, nil
}

func allWithoutDelivery(tuples []*domain.PriceTuple) bool {
	for _, t := range tuples {
		if t.DeliveryOption != nil {
			return false
		}
	}
	return true
}

// decideDegenerate handles the batch where pricing failed for every
// candidate: rank on bare candidate totals, and reserve the fastest slot
// for an always-open pharmacy since nothing else guarantees availability.
func decideDegenerate(tuples []*domain.PriceTuple) (*domain.RecommendationBundle, error) {
	var cheapest *domain.PriceTuple
	for _, t := range tuples {
		if cheapest == nil || t.Pharmacy.TotalSum < cheapest.Pharmacy.TotalSum {
			cheapest = t
		}
	}

	var fastest *domain.PriceTuple
	for _, t := range tuples {
		if !t.Pharmacy.Source.IsAlwaysOpen() {
			continue
		}
		if fastest == nil || t.Pharmacy.TotalSum < fastest.Pharmacy.TotalSum {
			fastest = t
		}
	}
	if fastest == nil {
		return nil, fmt.Errorf("decide: no always-open pharmacy for the fastest slot: %w", ErrNotFound)
	}

	return &domain.RecommendationBundle{
		CheapestDeliveryOption:    cheapest,
		AlternativeCheapestOption: nil,
		FastestDeliveryOption:     fastest,
		AlternativeFastestOption:  nil,
	}, nil
}
