// Package store persists scanned bills and uploaded documents.
package store

import (
	"context"
	"errors"

	"billscan/pkg/models"
)

// ErrNotFound is returned when a bill or document id does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence surface used by the services.
type Store interface {
	CreateBill(ctx context.Context, bill *models.Bill) error
	// ListBills returns bills in insertion order.
	ListBills(ctx context.Context) ([]models.Bill, error)
	GetBill(ctx context.Context, id uint) (*models.Bill, error)
	DeleteBill(ctx context.Context, id uint) error
	DeleteAllBills(ctx context.Context) (int64, error)
	SumAmounts(ctx context.Context) (float64, error)

	CreateDocument(ctx context.Context, doc *models.Document) error
	GetDocument(ctx context.Context, id string) (*models.Document, error)

	Close() error
}
