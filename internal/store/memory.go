package store

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/dukamarket/checkout-api/internal/domain"
	"github.com/dukamarket/checkout-api/pkg/errors"
)

// MemoryStore keeps snapshots in a mutex-guarded map. Used in tests and as
// a last-resort backend; it survives nothing.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Save(_ context.Context, snapshot *domain.OrderSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[orderKey(snapshot.OrderID)] = raw
	s.data[lastOrderKey] = []byte(snapshot.OrderID)
	return nil
}

func (s *MemoryStore) Load(_ context.Context, orderID string) (*domain.OrderSnapshot, error) {
	s.mu.RLock()
	raw, ok := s.data[orderKey(orderID)]
	s.mu.RUnlock()
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}

	var snapshot domain.OrderSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, &errors.ErrNotFound{Resource: "order snapshot", ID: orderID}
	}
	return &snapshot, nil
}

func (s *MemoryStore) LoadLastOrderID(_ context.Context) (string, error) {
	s.mu.RLock()
	raw, ok := s.data[lastOrderKey]
	s.mu.RUnlock()
	if !ok || len(raw) == 0 {
		return "", &errors.ErrNotFound{Resource: "last order id"}
	}
	return string(raw), nil
}

func (s *MemoryStore) SetClearCartFlag(_ context.Context, orderID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[clearCartKey(orderID)] = []byte("1")
	return nil
}

func (s *MemoryStore) ConsumeClearCartFlag(_ context.Context, orderID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := clearCartKey(orderID)
	if _, ok := s.data[key]; !ok {
		return false, nil
	}
	delete(s.data, key)
	return true, nil
}
