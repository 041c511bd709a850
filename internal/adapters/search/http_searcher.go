package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/platform/obs"
	"pharmacy-options-service/internal/ports"
)

// HTTPSearcher implements PharmacySearcher against the upstream
// pharmacy/stock search HTTP API.
//
// Failures are never retried here: the caller reports each failure exactly
// once, and a search failure is fatal for the request anyway.
type HTTPSearcher struct {
	session *http.Client
	url     string
}

func NewHTTPSearcher(url string, timeout time.Duration) (*HTTPSearcher, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("search url is empty")
	}

	return &HTTPSearcher{
		session: &http.Client{Timeout: timeout},
		url:     url,
	}, nil
}

type searchResponse struct {
	// Raw so a missing "result" key is distinguishable from an empty list;
	// the former is a contract violation.
	Result json.RawMessage `json:"result"`
}

// Search posts the requested SKUs and returns every candidate pharmacy.
// The upstream takes the city as a query parameter and the items as a bare
// JSON array body.
func (s *HTTPSearcher) Search(
	ctx context.Context,
	city string,
	items []ports.SKURequest,
) (_ []*domain.PharmacyCandidate, err error) {
	defer obs.Time(ctx, "search.Search")(&err)

	payload, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("search: marshal items: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("search: create request: %w", err)
	}
	q := req.URL.Query()
	q.Set("city", city)
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := s.session.Do(req)
	if err != nil {
		return nil, &ports.UnavailableError{Collaborator: "search", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ports.UnavailableError{
			Collaborator: "search",
			Err:          fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ports.ContractError{Collaborator: "search", Detail: "undecodable response body"}
	}
	if decoded.Result == nil {
		return nil, &ports.ContractError{Collaborator: "search", Detail: "missing result field"}
	}

	var candidates []*domain.PharmacyCandidate
	if err := json.Unmarshal(decoded.Result, &candidates); err != nil {
		return nil, &ports.ContractError{Collaborator: "search", Detail: "result is not a pharmacy list"}
	}

	return candidates, nil
}
