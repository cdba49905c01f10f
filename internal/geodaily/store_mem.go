package geodaily

import (
	"context"
	"encoding/json"
	"sync"
)

// MemStore keeps the snapshot as serialized JSON in memory. Going
// through the codec on every Load keeps callers isolated from each
// other, exactly like the durable backends. Used in tests and
// throwaway deployments.
type MemStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Load(_ context.Context) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return NewSnapshot(), nil
	}
	var snap Snapshot
	if err := json.Unmarshal(s.data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

func (s *MemStore) Save(_ context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
