package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"billscan/pkg/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormStore keeps bills in a relational database.
type GormStore struct {
	db *gorm.DB
}

// Dialector picks the gorm driver for a database URL: postgres:// and
// postgresql:// URLs go to PostgreSQL, anything else is a SQLite file path.
func Dialector(databaseURL string) gorm.Dialector {
	if strings.HasPrefix(databaseURL, "postgres://") || strings.HasPrefix(databaseURL, "postgresql://") {
		return postgres.Open(databaseURL)
	}
	return sqlite.Open(strings.TrimPrefix(databaseURL, "sqlite://"))
}

// OpenGorm connects and migrates the schema.
func OpenGorm(databaseURL string, log logger.Interface) (*GormStore, error) {
	cfg := &gorm.Config{}
	if log != nil {
		cfg.Logger = log
	}
	db, err := gorm.Open(Dialector(databaseURL), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.Bill{}, &models.Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}
	return &GormStore{db: db}, nil
}

// CreateBill inserts bill and fills in its ID and timestamps.
func (s *GormStore) CreateBill(ctx context.Context, bill *models.Bill) error {
	return s.db.WithContext(ctx).Create(bill).Error
}

// ListBills returns every bill in insertion order.
func (s *GormStore) ListBills(ctx context.Context) ([]models.Bill, error) {
	var bills []models.Bill
	err := s.db.WithContext(ctx).Order("id").Find(&bills).Error
	return bills, err
}

// GetBill loads one bill, or ErrNotFound.
func (s *GormStore) GetBill(ctx context.Context, id uint) (*models.Bill, error) {
	var bill models.Bill
	err := s.db.WithContext(ctx).First(&bill, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// DeleteBill hard-deletes one bill, or returns ErrNotFound.
func (s *GormStore) DeleteBill(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Unscoped().Delete(&models.Bill{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAllBills empties the bills table and reports how many rows went.
func (s *GormStore) DeleteAllBills(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped().Delete(&models.Bill{})
	return res.RowsAffected, res.Error
}

// SumAmounts totals the amount column in SQL. An empty table sums to 0.
func (s *GormStore) SumAmounts(ctx context.Context) (float64, error) {
	var total float64
	err := s.db.WithContext(ctx).Model(&models.Bill{}).Select("COALESCE(SUM(amount), 0)").Scan(&total).Error
	return total, err
}

// CreateDocument inserts doc under its preassigned ID.
func (s *GormStore) CreateDocument(ctx context.Context, doc *models.Document) error {
	return s.db.WithContext(ctx).Create(doc).Error
}

// GetDocument loads one document, or ErrNotFound.
func (s *GormStore) GetDocument(ctx context.Context, id string) (*models.Document, error) {
	var doc models.Document
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// Close releases the underlying connection pool.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
