package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply. A non-nil Err is returned instead of
// content.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

type mockCall struct {
	purpose string
	req     Request
}

// MockProvider serves canned replies without a network. A request is
// answered from the queue scripted for its purpose, then the shared
// queue, then the purpose's fallback. With none of those left it fails
// with ErrProviderUnavailable.
type MockProvider struct {
	mu        sync.Mutex
	shared    []MockResponse
	byPurpose map[string][]MockResponse
	fallback  map[string]MockResponse
	calls     []mockCall
}

func NewMockProvider(shared ...MockResponse) *MockProvider {
	return &MockProvider{
		shared:    shared,
		byPurpose: map[string][]MockResponse{},
		fallback:  map[string]MockResponse{},
	}
}

func (m *MockProvider) ModelID() string { return "mock" }

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, mockCall{purpose: purpose, req: req})

	reply, ok := m.pop(purpose)
	switch {
	case !ok:
		return nil, &ErrProviderUnavailable{}
	case reply.Err != nil:
		return nil, reply.Err
	}
	return &Response{Content: reply.Content, Usage: reply.Usage, Model: "mock", StopReason: "end"}, nil
}

func (m *MockProvider) pop(purpose string) (MockResponse, bool) {
	if q := m.byPurpose[purpose]; len(q) > 0 {
		m.byPurpose[purpose] = q[1:]
		return q[0], true
	}
	if len(m.shared) > 0 {
		reply := m.shared[0]
		m.shared = m.shared[1:]
		return reply, true
	}
	reply, ok := m.fallback[purpose]
	return reply, ok
}

// Script queues replies for requests carrying purpose.
func (m *MockProvider) Script(purpose string, replies ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byPurpose[purpose] = append(m.byPurpose[purpose], replies...)
}

// Fallback sets a reply that is never consumed.
func (m *MockProvider) Fallback(purpose string, reply MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fallback[purpose] = reply
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Requests returns every request received, oldest first.
func (m *MockProvider) Requests() []Request {
	return m.CallsFor("")
}

// CallsFor returns the requests made with purpose. An empty purpose
// matches all of them.
func (m *MockProvider) CallsFor(purpose string) []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Request
	for _, c := range m.calls {
		if purpose == "" || c.purpose == purpose {
			out = append(out, c.req)
		}
	}
	return out
}
