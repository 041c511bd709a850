package search

import (
	"context"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/ports"
)

// MockSearcher returns a canned candidate list for tests and local runs.
type MockSearcher struct {
	Candidates []*domain.PharmacyCandidate
	Err        error

	// Recorded arguments of the last call.
	LastCity  string
	LastItems []ports.SKURequest
}

func (m *MockSearcher) Search(
	ctx context.Context,
	city string,
	items []ports.SKURequest,
) ([]*domain.PharmacyCandidate, error) {
	m.LastCity = city
	m.LastItems = items
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Candidates, nil
}
