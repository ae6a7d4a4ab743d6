package introspect

import (
	"context"

	"github.com/micatools/mica/internal/inventory"
)

// Mock is an in-memory Introspector used in tests and demo runs.
type Mock struct {
	Raw        inventory.Raw
	ConnectErr error
	QueryErr   error

	Connected bool
	Closed    bool
}

func (m *Mock) Connect(ctx context.Context) error {
	if m.ConnectErr != nil {
		return m.ConnectErr
	}
	m.Connected = true
	return nil
}

func (m *Mock) Introspect(ctx context.Context) (inventory.Raw, error) {
	if m.QueryErr != nil {
		return inventory.Raw{}, m.QueryErr
	}
	return m.Raw, nil
}

func (m *Mock) Close() error {
	m.Closed = true
	m.Connected = false
	return nil
}

var _ Introspector = (*Mock)(nil)
