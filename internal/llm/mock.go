package llm

import (
	"context"
	"sync"
)

// MockGateway is a scriptable Gateway for tests. The respond function
// receives each request and decides the outcome; calls are recorded in
// arrival order.
type MockGateway struct {
	mu      sync.Mutex
	calls   []CompletionRequest
	respond func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
}

// NewMockGateway creates a mock gateway driven by respond.
func NewMockGateway(respond func(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)) *MockGateway {
	return &MockGateway{respond: respond}
}

// NewStaticGateway creates a mock gateway that returns the same text
// for every request.
func NewStaticGateway(content string) *MockGateway {
	return NewMockGateway(func(_ context.Context, req CompletionRequest) (*CompletionResponse, error) {
		return &CompletionResponse{Content: content, Model: req.Model}, nil
	})
}

// Complete records the request and delegates to the respond function.
func (m *MockGateway) Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, req)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m.respond(ctx, req)
}

// Calls returns a copy of all recorded requests.
func (m *MockGateway) Calls() []CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]CompletionRequest, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns the number of recorded requests.
func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
