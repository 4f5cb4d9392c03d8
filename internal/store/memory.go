package store

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// MemoryStore is an in-process SnapshotStore. It holds the encoded blob
// so that loads go through the same decoder as the durable backends.
type MemoryStore struct {
	mu     sync.Mutex
	data   []byte
	logger *zap.Logger
	fail   error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryStore{logger: logger}
}

// SetRaw replaces the stored blob with data verbatim.
func (m *MemoryStore) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
}

// SetFail makes every subsequent call fail with err wrapped in
// ErrUnavailable. A nil err restores normal operation.
func (m *MemoryStore) SetFail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail = err
}

// Raw returns a copy of the stored blob, or nil when empty.
func (m *MemoryStore) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil
	}
	return append([]byte(nil), m.data...)
}

func (m *MemoryStore) Load(_ context.Context) (*SessionSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, unavailable("load snapshot", m.fail)
	}
	if m.data == nil {
		return nil, nil
	}
	return decodeOrDiscard(m.data, m.logger, DefaultSnapshotKey)
}

func (m *MemoryStore) Save(_ context.Context, snap *SessionSnapshot) error {
	b, err := EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return unavailable("save snapshot", m.fail)
	}
	m.data = b
	return nil
}

func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return unavailable("clear snapshot", m.fail)
	}
	m.data = nil
	return nil
}
