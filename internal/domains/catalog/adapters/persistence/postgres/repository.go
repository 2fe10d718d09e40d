package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists goods in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&goodsRecord{})
	}
	return repo
}

type goodsRecord struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	Name         string          `gorm:"column:name;size:100"`
	Category     string          `gorm:"column:category;size:50;index"`
	PricePerItem decimal.Decimal `gorm:"column:price_per_item;type:numeric(12,2)"`
	Description  string          `gorm:"column:description;type:text"`
	ImageURLs    pq.StringArray  `gorm:"column:image_urls;type:text[]"`
	CountInStock int32           `gorm:"column:count_in_stock"`
	CreatedAt    time.Time       `gorm:"column:created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at"`
}

func (goodsRecord) TableName() string { return "goods" }

// Save inserts or updates a goods row.
func (r *Repository) Save(ctx context.Context, goods *domain.Goods) (*domain.Goods, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if goods == nil {
		return nil, errors.New("goods is nil")
	}
	clone := *goods
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           record.Name,
				"category":       record.Category,
				"price_per_item": record.PricePerItem,
				"description":    record.Description,
				"image_urls":     record.ImageURLs,
				"count_in_stock": record.CountInStock,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a goods row by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Goods, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record goodsRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByIDs returns the rows that exist, preserving the order of ids.
func (r *Repository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Goods, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []goodsRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[int64]*goodsRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}
	list := make([]*domain.Goods, 0, len(ids))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			list = append(list, record.toDomain())
		}
	}
	return list, nil
}

// Delete removes a goods row by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&goodsRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all goods.
func (r *Repository) List(ctx context.Context) ([]*domain.Goods, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []goodsRecord
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	list := make([]*domain.Goods, 0, len(records))
	for i := range records {
		list = append(list, records[i].toDomain())
	}
	return list, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres goods repository not configured")
	}
	return nil
}

func toRecord(goods *domain.Goods) goodsRecord {
	return goodsRecord{
		ID:           goods.ID,
		Name:         goods.Name,
		Category:     goods.Category,
		PricePerItem: goods.PricePerItem,
		Description:  goods.Description,
		ImageURLs:    pq.StringArray(goods.ImageURLs),
		CountInStock: goods.CountInStock,
	}
}

func (r goodsRecord) toDomain() *domain.Goods {
	return &domain.Goods{
		ID:           r.ID,
		Name:         r.Name,
		Category:     r.Category,
		PricePerItem: r.PricePerItem,
		Description:  r.Description,
		ImageURLs:    append([]string{}, r.ImageURLs...),
		CountInStock: r.CountInStock,
	}
}
