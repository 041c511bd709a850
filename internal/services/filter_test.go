package services

import (
	"errors"
	"testing"

	"pharmacy-options-service/internal/domain"
)

func TestFilterCandidates(t *testing.T) {
	full := newCandidate("full", 100)
	short := newCandidate("short", 50)
	short.Products = []domain.ProductLine{
		{SKU: "sku-1", Quantity: 2, QuantityDesired: 2},
		{SKU: "sku-2", Quantity: 1, QuantityDesired: 3},
	}
	zeroDesired := newCandidate("zero", 70)
	zeroDesired.Products = []domain.ProductLine{
		{SKU: "sku-1", Quantity: 0, QuantityDesired: 0},
	}

	kept, err := FilterCandidates([]*domain.PharmacyCandidate{full, short, zeroDesired})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(kept) != 2 {
		t.Fatalf("kept %d candidates, want 2", len(kept))
	}
	if kept[0].Source.Code != "full" || kept[1].Source.Code != "zero" {
		t.Fatalf("kept wrong candidates: %s, %s", kept[0].Source.Code, kept[1].Source.Code)
	}
}

func TestFilterCandidatesAllShort(t *testing.T) {
	short := newCandidate("short", 50)
	short.Products[0].Quantity = 0

	_, err := FilterCandidates([]*domain.PharmacyCandidate{short})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
