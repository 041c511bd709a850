package services

import (
	"testing"
	"time"

	"pharmacy-options-service/internal/domain"
)

// Shared fixtures: one opening window (03:00Z-18:00Z) evaluated at noon UTC
// in the Asia/Almaty reference timezone unless a test overrides it.

var evalInstant = time.Date(2024, 10, 21, 12, 0, 0, 0, time.UTC)

func almaty(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Almaty")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

func newCandidate(code string, totalSum float64) *domain.PharmacyCandidate {
	return &domain.PharmacyCandidate{
		Source: domain.PharmacySource{
			Code:         code,
			OpeningHours: "Пн-Вс: 08:00-23:00",
			OpensAt:      "2024-10-21T03:00:00Z",
			ClosesAt:     "2024-10-21T18:00:00Z",
		},
		Products: []domain.ProductLine{
			{SKU: "sku-1", Quantity: 1, QuantityDesired: 1},
		},
		TotalSum: totalSum,
	}
}

func withCoords(c *domain.PharmacyCandidate, lat, lon float64) *domain.PharmacyCandidate {
	c.Source.Lat = &lat
	c.Source.Lon = &lon
	return c
}

func withWindow(c *domain.PharmacyCandidate, opensAt, closesAt string) *domain.PharmacyCandidate {
	c.Source.OpensAt = opensAt
	c.Source.ClosesAt = closesAt
	return c
}

func alwaysOpen(c *domain.PharmacyCandidate) *domain.PharmacyCandidate {
	c.Source.OpeningHours = "Круглосуточно"
	return c
}

func tuple(c *domain.PharmacyCandidate, price, eta float64) *domain.PriceTuple {
	return &domain.PriceTuple{
		Pharmacy:       c,
		TotalPrice:     c.TotalSum + price,
		DeliveryOption: &domain.DeliveryOption{Price: price, Eta: eta},
	}
}

func nullTuple(c *domain.PharmacyCandidate) *domain.PriceTuple {
	return &domain.PriceTuple{
		Pharmacy:   c,
		TotalPrice: c.TotalSum,
	}
}
