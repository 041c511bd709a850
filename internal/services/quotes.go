package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/ports"
)

// Quote requests for distinct candidates are independent and side-effect
// free, so they fan out concurrently with a bounded degree.
const maxConcurrentQuotes = 5

// UnionByCode merges shortlists preserving order, keeping the first
// occurrence of each source code. Candidates without a code are dropped
// here since they cannot be quoted or deduplicated.
func UnionByCode(lists ...[]*domain.PharmacyCandidate) []*domain.PharmacyCandidate {
	seen := make(map[string]struct{})
	union := make([]*domain.PharmacyCandidate, 0)
	for _, list := range lists {
		for _, c := range list {
			code := c.Source.Code
			if code == "" {
				continue
			}
			if _, ok := seen[code]; ok {
				continue
			}
			seen[code] = struct{}{}
			union = append(union, c)
		}
	}
	return union
}

// FetchDeliveryQuotes asks the pricing collaborator for carrier options for
// every candidate in the union and expands the answers into price tuples:
// one tuple per delivery option, with the candidate total added to the
// option price.
//
// Failure handling is asymmetric. A transport failure or HTTP error for one
// candidate degrades that candidate to a single tuple with a nil delivery
// option and does not disturb the others. A malformed success payload is a
// contract violation and fails the whole request; remaining in-flight calls
// are cancelled but the batch is still drained before returning.
func FetchDeliveryQuotes(
	ctx context.Context,
	pricer ports.DeliveryPricer,
	union []*domain.PharmacyCandidate,
	destination domain.Coordinates,
) ([]*domain.PriceTuple, error) {
	if len(union) == 0 {
		return nil, fmt.Errorf("fetch delivery quotes: no pharmacies available for delivery options: %w", ErrNotFound)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Results are collected per input slot so the tuple order (and with it
	// the engine's tie-breaking) never depends on goroutine scheduling.
	tuplesBySlot := make([][]*domain.PriceTuple, len(union))
	errsBySlot := make([]error, len(union))

	sem := make(chan struct{}, maxConcurrentQuotes)
	var wg sync.WaitGroup

	for i, candidate := range union {
		items := quotableItems(candidate)
		if len(items) == 0 {
			continue
		}

		wg.Add(1)
		go func(slot int, c *domain.PharmacyCandidate, items []ports.QuoteItem) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			options, err := pricer.Quote(ctx, ports.QuoteRequest{
				Items:       items,
				Destination: destination,
				SourceCode:  c.Source.Code,
			})
			if err != nil {
				var unavailable *ports.UnavailableError
				if errors.As(err, &unavailable) {
					// Per-candidate degradation: the candidate stays in
					// the running on its bare total.
					tuplesBySlot[slot] = []*domain.PriceTuple{{
						Pharmacy:       c,
						TotalPrice:     c.TotalSum,
						DeliveryOption: nil,
					}}
					return
				}

				errsBySlot[slot] = fmt.Errorf("fetch delivery quotes: source %q: %w", c.Source.Code, err)
				cancel()
				return
			}

			tuples := make([]*domain.PriceTuple, 0, len(options))
			for _, option := range options {
				option := option
				tuples = append(tuples, &domain.PriceTuple{
					Pharmacy:       c,
					TotalPrice:     c.TotalSum + option.Price,
					DeliveryOption: &option,
				})
			}
			tuplesBySlot[slot] = tuples
		}(i, candidate, items)
	}

	wg.Wait()

	for _, err := range errsBySlot {
		if err == nil {
			continue
		}
		// A sibling cancelled by the fatal error reports the context
		// cancellation; the first real failure wins.
		if errors.Is(err, context.Canceled) {
			continue
		}
		return nil, err
	}

	tuples := make([]*domain.PriceTuple, 0, len(union))
	for _, slot := range tuplesBySlot {
		tuples = append(tuples, slot...)
	}
	return tuples, nil
}

// quotableItems builds the quote lines for a candidate: every product the
// pharmacy holds at the desired quantity.
func quotableItems(c *domain.PharmacyCandidate) []ports.QuoteItem {
	items := make([]ports.QuoteItem, 0, len(c.Products))
	for _, line := range c.Products {
		if line.Quantity >= line.QuantityDesired {
			items = append(items, ports.QuoteItem{
				SKU:      line.SKU,
				Quantity: line.QuantityDesired,
			})
		}
	}
	return items
}
