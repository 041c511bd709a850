package pricing

import (
	"context"
	"sync"

	"pharmacy-options-service/internal/domain"
	"pharmacy-options-service/internal/ports"
)

// MockPricer serves canned quote outcomes keyed by pharmacy source code.
// Safe for concurrent use since the quote fetcher fans out.
type MockPricer struct {
	Options map[string][]domain.DeliveryOption
	Errs    map[string]error

	mu       sync.Mutex
	requests []ports.QuoteRequest
}

func (m *MockPricer) Quote(ctx context.Context, req ports.QuoteRequest) ([]domain.DeliveryOption, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if err, ok := m.Errs[req.SourceCode]; ok {
		return nil, err
	}
	return m.Options[req.SourceCode], nil
}

// Requests returns a copy of every quote request seen so far.
func (m *MockPricer) Requests() []ports.QuoteRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ports.QuoteRequest, len(m.requests))
	copy(out, m.requests)
	return out
}
