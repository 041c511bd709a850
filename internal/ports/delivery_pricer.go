package ports

import (
	"context"
	"pharmacy-options-service/internal/domain"
)

// One line of a delivery quote request.
type QuoteItem struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// QuoteRequest asks the pricing service for carrier options shipping the
// given items from one pharmacy to the requester's coordinates.
type QuoteRequest struct {
	Items       []QuoteItem        `json:"items"`
	Destination domain.Coordinates `json:"dst"`
	SourceCode  string             `json:"source_code"`
}

// Port: a boundary for the upstream delivery pricing service.
type DeliveryPricer interface {
	// Return the carrier delivery options for one pharmacy. An empty slice
	// is a valid answer (no carrier serves the route).
	Quote(ctx context.Context, req QuoteRequest) ([]domain.DeliveryOption, error)
}
