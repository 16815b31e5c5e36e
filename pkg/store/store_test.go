package store

import (
	"context"
	"path/filepath"
	"testing"

	"billscan/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm/logger"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()

	sqlStore, err := Open(filepath.Join(t.TempDir(), "bill_details.db"), logger.Discard)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlStore.Close() })

	mem, err := Open(MemoryURL, nil)
	require.NoError(t, err)

	return map[string]Store{"memory": mem, "sqlite": sqlStore}
}

func TestBills(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			total, err := s.SumAmounts(ctx)
			require.NoError(t, err)
			assert.Zero(t, total)

			first := &models.Bill{Name: "groceries", Image: "aW1n", Amount: 12.5}
			second := &models.Bill{Name: "fuel", Image: "aW1n", Amount: 40}
			require.NoError(t, s.CreateBill(ctx, first))
			require.NoError(t, s.CreateBill(ctx, second))
			assert.NotZero(t, first.ID)
			assert.Greater(t, second.ID, first.ID)

			bills, err := s.ListBills(ctx)
			require.NoError(t, err)
			require.Len(t, bills, 2)
			assert.Equal(t, "groceries", bills[0].Name)
			assert.Equal(t, "fuel", bills[1].Name)

			total, err = s.SumAmounts(ctx)
			require.NoError(t, err)
			assert.InDelta(t, 52.5, total, 0.001)

			got, err := s.GetBill(ctx, second.ID)
			require.NoError(t, err)
			assert.Equal(t, 40.0, got.Amount)

			require.NoError(t, s.DeleteBill(ctx, first.ID))
			assert.ErrorIs(t, s.DeleteBill(ctx, first.ID), ErrNotFound)
			_, err = s.GetBill(ctx, first.ID)
			assert.ErrorIs(t, err, ErrNotFound)

			n, err := s.DeleteAllBills(ctx)
			require.NoError(t, err)
			assert.Equal(t, int64(1), n)

			bills, err = s.ListBills(ctx)
			require.NoError(t, err)
			assert.Empty(t, bills)
		})
	}
}

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			doc := &models.Document{ID: "doc-1", Filename: "a.pdf", Text: "hello", Pages: 2}
			require.NoError(t, s.CreateDocument(ctx, doc))

			got, err := s.GetDocument(ctx, "doc-1")
			require.NoError(t, err)
			assert.Equal(t, "hello", got.Text)
			assert.Equal(t, 2, got.Pages)

			_, err = s.GetDocument(ctx, "missing")
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestDialector(t *testing.T) {
	assert.IsType(t, &postgres.Dialector{}, Dialector("postgres://u:p@localhost/bills"))
	assert.IsType(t, &postgres.Dialector{}, Dialector("postgresql://localhost/bills"))
	assert.IsType(t, &sqlite.Dialector{}, Dialector("bill_details.db"))
	assert.IsType(t, &sqlite.Dialector{}, Dialector("sqlite://bill_details.db"))
}
