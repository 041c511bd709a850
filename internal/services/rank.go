package services

import (
	"sort"

	"pharmacy-options-service/internal/domain"
)

const (
	cheapestShortlistCap = 3
	closestShortlistCap  = 2
)

// TopCheapest returns up to three candidates with the lowest total sum,
// cheapest first. The sort is stable so equal-priced candidates keep their
// search-response order and repeated requests rank identically.
func TopCheapest(candidates []*domain.PharmacyCandidate) []*domain.PharmacyCandidate {
	sorted := make([]*domain.PharmacyCandidate, len(candidates))
	copy(sorted, candidates)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalSum < sorted[j].TotalSum
	})

	if len(sorted) > cheapestShortlistCap {
		sorted = sorted[:cheapestShortlistCap]
	}
	return sorted
}

// TopClosest returns up to two candidates nearest to the requester by
// planar distance, closest first. Candidates without coordinates are
// excluded rather than ranked last.
func TopClosest(candidates []*domain.PharmacyCandidate, from domain.Coordinates) []*domain.PharmacyCandidate {
	type ranked struct {
		candidate *domain.PharmacyCandidate
		distance  float64
	}

	withDistance := make([]ranked, 0, len(candidates))
	for _, c := range candidates {
		d, ok := c.DistanceFrom(from)
		if !ok {
			continue
		}
		withDistance = append(withDistance, ranked{candidate: c, distance: d})
	}

	sort.SliceStable(withDistance, func(i, j int) bool {
		return withDistance[i].distance < withDistance[j].distance
	})

	out := make([]*domain.PharmacyCandidate, 0, closestShortlistCap)
	for _, r := range withDistance {
		if len(out) == closestShortlistCap {
			break
		}
		out = append(out, r.candidate)
	}
	return out
}
