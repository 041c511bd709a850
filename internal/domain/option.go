package domain

// DeliveryOption is one carrier quote from the pricing service.
// Eta is a unitless carrier estimate; smaller means faster.
type DeliveryOption struct {
	Price float64 `json:"price"`
	Eta   float64 `json:"eta"`
	Kind  string  `json:"kind,omitempty"`
	Name  string  `json:"name,omitempty"`
}

// PriceTuple is the unit the decision engine ranks: one candidate paired
// with one delivery option. DeliveryOption is nil when the pricing service
// failed for this candidate; TotalPrice then falls back to the bare
// candidate total.
type PriceTuple struct {
	Pharmacy       *PharmacyCandidate `json:"pharmacy"`
	TotalPrice     float64            `json:"total_price"`
	DeliveryOption *DeliveryOption    `json:"delivery_option"`
}

// RecommendationBundle is the final four-slot answer. Any slot may be nil,
// meaning no candidate satisfies that slot's constraint; that is a valid
// outcome, not an error.
type RecommendationBundle struct {
	CheapestDeliveryOption    *PriceTuple `json:"cheapest_delivery_option"`
	AlternativeCheapestOption *PriceTuple `json:"alternative_cheapest_option"`
	FastestDeliveryOption     *PriceTuple `json:"fastest_delivery_option"`
	AlternativeFastestOption  *PriceTuple `json:"alternative_fastest_option"`
}
