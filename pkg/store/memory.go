package store

import (
	"context"
	"sync"
	"time"

	"billscan/pkg/models"
)

// MemoryStore is an in-process table. Its contents vanish with the process.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID uint
	bills  []models.Bill
	docs   map[string]models.Document
}

// NewMemoryStore returns an empty store. IDs start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1, docs: make(map[string]models.Document)}
}

// CreateBill appends a copy of bill and assigns the next ID.
func (m *MemoryStore) CreateBill(_ context.Context, bill *models.Bill) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	bill.ID = m.nextID
	bill.CreatedAt = now
	bill.UpdatedAt = now
	m.nextID++
	m.bills = append(m.bills, *bill)
	return nil
}

// ListBills returns a copy of every bill in insertion order.
func (m *MemoryStore) ListBills(_ context.Context) ([]models.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Bill, len(m.bills))
	copy(out, m.bills)
	return out, nil
}

// GetBill returns a copy of one bill, or ErrNotFound.
func (m *MemoryStore) GetBill(_ context.Context, id uint) (*models.Bill, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.bills {
		if m.bills[i].ID == id {
			b := m.bills[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteBill removes one bill, or returns ErrNotFound.
func (m *MemoryStore) DeleteBill(_ context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.bills {
		if m.bills[i].ID == id {
			m.bills = append(m.bills[:i], m.bills[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// DeleteAllBills drops every bill and reports how many there were.
func (m *MemoryStore) DeleteAllBills(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.bills))
	m.bills = nil
	return n, nil
}

// SumAmounts adds up the stored amounts.
func (m *MemoryStore) SumAmounts(_ context.Context) (float64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var total float64
	for _, b := range m.bills {
		total += b.Amount
	}
	return total, nil
}

// CreateDocument stores a copy of doc, replacing any with the same ID.
func (m *MemoryStore) CreateDocument(_ context.Context, doc *models.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	m.docs[doc.ID] = *doc
	return nil
}

// GetDocument returns a copy of one document, or ErrNotFound.
func (m *MemoryStore) GetDocument(_ context.Context, id string) (*models.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	doc, ok := m.docs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &doc, nil
}

// Close is a no-op.
func (m *MemoryStore) Close() error { return nil }
