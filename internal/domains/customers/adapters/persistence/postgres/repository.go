package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists customers in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&customerRecord{})
	}
	return repo
}

type customerRecord struct {
	ID            int64           `gorm:"primaryKey;column:id"`
	FullName      string          `gorm:"column:full_name;size:100"`
	Username      string          `gorm:"column:username;size:50;uniqueIndex"`
	Password      string          `gorm:"column:password_hash;size:200"`
	Age           int32           `gorm:"column:age"`
	Address       string          `gorm:"column:address;size:200"`
	Gender        string          `gorm:"column:gender;size:10"`
	MaritalStatus string          `gorm:"column:marital_status;size:10"`
	WalletBalance decimal.Decimal `gorm:"column:wallet_balance;type:numeric(12,2)"`
	IsAdmin       bool            `gorm:"column:is_admin"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (customerRecord) TableName() string { return "customers" }

// Save inserts or updates a customer keyed by username.
func (r *Repository) Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "username"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"full_name", "password_hash", "age", "address", "gender",
				"marital_status", "wallet_balance", "is_admin", "updated_at",
			}),
		}).
		Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByUsername(ctx, record.Username)
}

// GetByID fetches a customer by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByUsername fetches a customer by login name.
func (r *Repository) GetByUsername(ctx context.Context, username string) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	var record customerRecord
	if err := r.db.WithContext(ctx).First(&record, "username = ?", username).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a customer by username.
func (r *Repository) Delete(ctx context.Context, username string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	username = strings.TrimSpace(username)
	result := r.db.WithContext(ctx).Where("username = ?", username).Delete(&customerRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// AdjustWalletBalance applies a relative balance change with a guarded UPDATE
// so it serializes against the purchase ledger's debit on the same row.
func (r *Repository) AdjustWalletBalance(ctx context.Context, username string, delta decimal.Decimal) (*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	username = strings.TrimSpace(username)
	result := r.db.WithContext(ctx).Model(&customerRecord{}).
		Where("username = ? AND wallet_balance + ? >= 0", username, delta).
		Update("wallet_balance", gorm.Expr("wallet_balance + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByUsername(ctx, username); err != nil {
			return nil, err
		}
		return nil, domain.ErrInsufficientFunds
	}
	return r.GetByUsername(ctx, username)
}

// List returns all customers.
func (r *Repository) List(ctx context.Context) ([]*domain.Customer, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []customerRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	customers := make([]*domain.Customer, 0, len(records))
	for i := range records {
		customers = append(customers, records[i].toDomain())
	}
	return customers, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres customer repository not configured")
	}
	return nil
}

func toRecord(customer *domain.Customer) customerRecord {
	return customerRecord{
		ID:            customer.ID,
		FullName:      customer.FullName,
		Username:      customer.Username,
		Password:      customer.PasswordHash,
		Age:           customer.Age,
		Address:       customer.Address,
		Gender:        customer.Gender,
		MaritalStatus: customer.MaritalStatus,
		WalletBalance: customer.WalletBalance,
		IsAdmin:       customer.IsAdmin,
	}
}

func (r customerRecord) toDomain() *domain.Customer {
	return &domain.Customer{
		ID:            r.ID,
		FullName:      r.FullName,
		Username:      r.Username,
		PasswordHash:  r.Password,
		Age:           r.Age,
		Address:       r.Address,
		Gender:        r.Gender,
		MaritalStatus: r.MaritalStatus,
		WalletBalance: r.WalletBalance,
		IsAdmin:       r.IsAdmin,
	}
}
