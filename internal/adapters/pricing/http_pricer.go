package pricing

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

// HTTPPricer implements DeliveryPricer against the upstream delivery
// pricing HTTP API.
//
// Transport failures and HTTP error statuses surface as UnavailableError so
// the quote fetcher can degrade the single affected candidate. A 2xx
// response that does not carry a well-formed success payload surfaces as
// ContractError and fails the whole request. No retries here.
type HTTPPricer struct {
	session *http.Client
	url     string
}

func NewHTTPPricer(url string, timeout time.Duration) (*HTTPPricer, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("pricing url is empty")
	}

	return &HTTPPricer{
		session: &http.Client{Timeout: timeout},
		url:     url,
	}, nil
}

type quoteResponse struct {
	Status string `json:"status"`
	Result *struct {
		Delivery []domain.DeliveryOption `json:"delivery"`
	} `json:"result"`
}

func (p *HTTPPricer) Quote(ctx context.Context, quoteReq ports.QuoteRequest) (_ []domain.DeliveryOption, err error) {
	defer obs.Time(ctx, "pricing.Quote")(&err)

	payload, err := json.Marshal(quoteReq)
	if err != nil {
		return nil, fmt.Errorf("quote: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("quote: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := p.session.Do(req)
	if err != nil {
		return nil, &ports.UnavailableError{Collaborator: "pricing", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &ports.UnavailableError{
			Collaborator: "pricing",
			Err:          fmt.Errorf("http status %d: %s", resp.StatusCode, strings.TrimSpace(string(b))),
		}
	}

	var decoded quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &ports.ContractError{Collaborator: "pricing", Detail: "undecodable response body"}
	}

	if decoded.Status != "success" {
		return nil, &ports.ContractError{
			Collaborator: "pricing",
			Detail:       fmt.Sprintf("status %q", decoded.Status),
		}
	}
	if decoded.Result == nil || decoded.Result.Delivery == nil {
		return nil, &ports.ContractError{Collaborator: "pricing", Detail: "missing result.delivery field"}
	}

	return decoded.Result.Delivery, nil
}
