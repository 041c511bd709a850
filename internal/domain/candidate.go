package domain

import "strings"

// Marker the upstream search service places in free-text opening hours for
// pharmacies with continuous (24h) service.
const alwaysOpenMarker = "круглосуточно"

// Label attached to a pharmacy by the search service (service-quality badges,
// confirmation-time hints and similar).
type SourceTag struct {
	ID    int    `json:"id"`
	Meta  string `json:"meta,omitempty"`
	Color string `json:"color,omitempty"`
	Name  string `json:"name"`
}

// PharmacySource describes one pharmacy as reported by the search service.
// Lat/Lon are pointers because the upstream omits coordinates for some
// sources; OpensAt/ClosesAt are the RFC 3339 UTC instants of today's window.
// The value is immutable for the lifetime of a request.
type PharmacySource struct {
	Code          string      `json:"code"`
	Name          string      `json:"name,omitempty"`
	City          string      `json:"city,omitempty"`
	Address       string      `json:"address,omitempty"`
	Lat           *float64    `json:"lat"`
	Lon           *float64    `json:"lon"`
	OpeningHours  string      `json:"opening_hours"`
	NetworkCode   string      `json:"network_code,omitempty"`
	WithReserve   bool        `json:"with_reserve"`
	PaymentOnSite bool        `json:"payment_on_site"`
	KaspiRed      bool        `json:"kaspi_red"`
	ClosesAt      string      `json:"closes_at"`
	OpensAt       string      `json:"opens_at"`
	SourceTags    []SourceTag `json:"source_tags,omitempty"`
	WorkingToday  bool        `json:"working_today"`
	PaymentByCard bool        `json:"payment_by_card"`
}

// IsAlwaysOpen reports whether the free-text opening hours declare continuous
// service. The upstream exposes no boolean for this, so the locale-specific
// substring match is isolated here.
func (s PharmacySource) IsAlwaysOpen() bool {
	return strings.Contains(strings.ToLower(s.OpeningHours), alwaysOpenMarker)
}

func (s PharmacySource) HasCoordinates() bool {
	return s.Lat != nil && s.Lon != nil
}

// Location returns the pharmacy coordinates; ok is false when the upstream
// did not report them.
func (s PharmacySource) Location() (Coordinates, bool) {
	if !s.HasCoordinates() {
		return Coordinates{}, false
	}
	return Coordinates{Lat: *s.Lat, Lon: *s.Lon}, true
}

// One stocked product inside a single pharmacy's offer.
type ProductLine struct {
	SourceCode      string  `json:"source_code,omitempty"`
	SKU             string  `json:"sku"`
	Name            string  `json:"name,omitempty"`
	BasePrice       float64 `json:"base_price"`
	DiscountedPrice float64 `json:"price_with_warehouse_discount"`
	Discount        float64 `json:"warehouse_discount"`
	Quantity        int     `json:"quantity"`
	QuantityDesired int     `json:"quantity_desired"`
	Packing         string  `json:"pp_packing,omitempty"`
	ManufacturerID  string  `json:"manufacturer_id,omitempty"`
	RecipeNeeded    bool    `json:"recipe_needed"`
	StrongRecipe    bool    `json:"strong_recipe"`
}

// Fulfillable reports whether the pharmacy holds at least the desired
// quantity. Lines with no desired quantity never block an order.
func (l ProductLine) Fulfillable() bool {
	return l.QuantityDesired <= 0 || l.Quantity >= l.QuantityDesired
}

// PharmacyCandidate is one pharmacy offer for the whole order: the source,
// its product lines, and the aggregate price at desired quantities.
// Candidates are built from search responses and read-only afterwards.
type PharmacyCandidate struct {
	Source   PharmacySource `json:"source"`
	Products []ProductLine  `json:"products"`
	TotalSum float64        `json:"total_sum"`
	AvgSum   float64        `json:"avg_sum,omitempty"`
	MinSum   float64        `json:"min_sum,omitempty"`
}

// CanFulfill reports whether every requested line is in stock at the desired
// quantity.
func (c *PharmacyCandidate) CanFulfill() bool {
	for _, line := range c.Products {
		if !line.Fulfillable() {
			return false
		}
	}
	return true
}

// DistanceFrom returns the planar distance between the requester and the
// pharmacy; ok is false when the pharmacy has no coordinates.
func (c *PharmacyCandidate) DistanceFrom(from Coordinates) (float64, bool) {
	loc, ok := c.Source.Location()
	if !ok {
		return 0, false
	}
	return from.PlanarDistance(loc), true
}
