package services

import "pharmacy-options-service/internal/domain"

// EnsureAlwaysOpen guarantees each shortlist contains an always-open
// candidate whenever the filtered set has one, so a recommendation is never
// lost to closing hours alone. At most one candidate is appended per
// shortlist: the cheapest always-open for the cheapest list, the nearest
// for the closest list. Membership checks compare stable source codes, not
// candidate structures.
func EnsureAlwaysOpen(
	filtered []*domain.PharmacyCandidate,
	cheapest []*domain.PharmacyCandidate,
	closest []*domain.PharmacyCandidate,
	from domain.Coordinates,
) ([]*domain.PharmacyCandidate, []*domain.PharmacyCandidate) {
	alwaysOpen := make([]*domain.PharmacyCandidate, 0, len(filtered))
	for _, c := range filtered {
		if c.Source.IsAlwaysOpen() {
			alwaysOpen = append(alwaysOpen, c)
		}
	}
	if len(alwaysOpen) == 0 {
		return cheapest, closest
	}

	if !containsAlwaysOpen(cheapest) {
		var pick *domain.PharmacyCandidate
		for _, c := range alwaysOpen {
			if pick == nil || c.TotalSum < pick.TotalSum {
				pick = c
			}
		}
		if pick != nil && !containsCode(cheapest, pick.Source.Code) {
			cheapest = append(cheapest, pick)
		}
	}

	if !containsAlwaysOpen(closest) {
		var pick *domain.PharmacyCandidate
		var pickDistance float64
		for _, c := range alwaysOpen {
			d, ok := c.DistanceFrom(from)
			if !ok {
				continue
			}
			if pick == nil || d < pickDistance {
				pick = c
				pickDistance = d
			}
		}
		if pick != nil && !containsCode(closest, pick.Source.Code) {
			closest = append(closest, pick)
		}
	}

	return cheapest, closest
}

func containsAlwaysOpen(candidates []*domain.PharmacyCandidate) bool {
	for _, c := range candidates {
		if c.Source.IsAlwaysOpen() {
			return true
		}
	}
	return false
}

func containsCode(candidates []*domain.PharmacyCandidate, code string) bool {
	for _, c := range candidates {
		if c.Source.Code == code {
			return true
		}
	}
	return false
}
