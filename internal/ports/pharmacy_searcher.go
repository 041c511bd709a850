package ports

import (
	"context"
	"pharmacy-options-service/internal/domain"
)

// One requested order line: a SKU and how many units the requester wants.
type SKURequest struct {
	SKU          string `json:"sku"`
	CountDesired int    `json:"count_desired"`
}

// Port: a boundary for the upstream pharmacy/stock search service.
type PharmacySearcher interface {
	// Return every pharmacy in the city holding any of the requested SKUs.
	Search(ctx context.Context, city string, items []SKURequest) ([]*domain.PharmacyCandidate, error)
}
