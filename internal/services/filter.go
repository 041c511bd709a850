package services

import (
	"fmt"
	"pharmacy-options-service/internal/domain"
)

// FilterCandidates keeps only pharmacies able to satisfy every requested
// line at its desired quantity. An empty result means no pharmacy can serve
// the whole order, which terminates the pipeline.
func FilterCandidates(candidates []*domain.PharmacyCandidate) ([]*domain.PharmacyCandidate, error) {
	kept := make([]*domain.PharmacyCandidate, 0, len(candidates))
	for _, c := range candidates {
		if c.CanFulfill() {
			kept = append(kept, c)
		}
	}

	if len(kept) == 0 {
		return nil, fmt.Errorf(
			"filter candidates: no pharmacy matches the requested quantities: %w",
			ErrNotFound,
		)
	}

	return kept, nil
}
