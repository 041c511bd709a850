package services

import (
	"testing"

	"pharmacy-options-service/internal/domain"
)

func TestEnsureAlwaysOpenBackfillsBothShortlists(t *testing.T) {
	user := domain.Coordinates{Lat: 43.0, Lon: 76.0}

	regular := withCoords(newCandidate("regular", 400), 43.001, 76.001)
	cheap24 := withCoords(alwaysOpen(newCandidate("cheap24", 900)), 43.1, 76.1)
	far24 := withCoords(alwaysOpen(newCandidate("far24", 1500)), 43.2, 76.2)

	filtered := []*domain.PharmacyCandidate{regular, cheap24, far24}
	cheapest := []*domain.PharmacyCandidate{regular}
	closest := []*domain.PharmacyCandidate{regular}

	gotCheapest, gotClosest := EnsureAlwaysOpen(filtered, cheapest, closest, user)

	if len(gotCheapest) != 2 || gotCheapest[1].Source.Code != "cheap24" {
		t.Fatalf("cheapest shortlist = %v, want cheap24 appended", codes(gotCheapest))
	}
	// cheap24 is also the nearest always-open candidate.
	if len(gotClosest) != 2 || gotClosest[1].Source.Code != "cheap24" {
		t.Fatalf("closest shortlist = %v, want cheap24 appended", codes(gotClosest))
	}
}

func TestEnsureAlwaysOpenNoAlwaysOpenCandidates(t *testing.T) {
	user := domain.Coordinates{Lat: 43.0, Lon: 76.0}

	regular := withCoords(newCandidate("regular", 400), 43.001, 76.001)
	filtered := []*domain.PharmacyCandidate{regular}
	cheapest := []*domain.PharmacyCandidate{regular}
	closest := []*domain.PharmacyCandidate{regular}

	gotCheapest, gotClosest := EnsureAlwaysOpen(filtered, cheapest, closest, user)

	if len(gotCheapest) != 1 || len(gotClosest) != 1 {
		t.Fatal("shortlists changed with no always-open candidate anywhere")
	}
}

func TestEnsureAlwaysOpenAlreadyPresent(t *testing.T) {
	user := domain.Coordinates{Lat: 43.0, Lon: 76.0}

	open24 := withCoords(alwaysOpen(newCandidate("open24", 400)), 43.001, 76.001)
	regular := withCoords(newCandidate("regular", 500), 43.002, 76.002)

	filtered := []*domain.PharmacyCandidate{open24, regular}
	cheapest := []*domain.PharmacyCandidate{open24, regular}
	closest := []*domain.PharmacyCandidate{open24}

	gotCheapest, gotClosest := EnsureAlwaysOpen(filtered, cheapest, closest, user)

	if len(gotCheapest) != 2 {
		t.Fatalf("cheapest shortlist grew to %v despite containing an always-open member", codes(gotCheapest))
	}
	if len(gotClosest) != 1 {
		t.Fatalf("closest shortlist grew to %v despite containing an always-open member", codes(gotClosest))
	}
}

func TestEnsureAlwaysOpenSkipsCoordinatelessForClosest(t *testing.T) {
	user := domain.Coordinates{Lat: 43.0, Lon: 76.0}

	regular := withCoords(newCandidate("regular", 400), 43.001, 76.001)
	blind24 := alwaysOpen(newCandidate("blind24", 900))

	filtered := []*domain.PharmacyCandidate{regular, blind24}
	cheapest := []*domain.PharmacyCandidate{regular}
	closest := []*domain.PharmacyCandidate{regular}

	gotCheapest, gotClosest := EnsureAlwaysOpen(filtered, cheapest, closest, user)

	if len(gotCheapest) != 2 || gotCheapest[1].Source.Code != "blind24" {
		t.Fatalf("cheapest shortlist = %v, want blind24 appended", codes(gotCheapest))
	}
	// No distance means no nearest pick; the closest list stays as-is.
	if len(gotClosest) != 1 {
		t.Fatalf("closest shortlist = %v, want unchanged", codes(gotClosest))
	}
}

func codes(candidates []*domain.PharmacyCandidate) []string {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.Source.Code)
	}
	return out
}
