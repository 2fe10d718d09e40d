package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists reviews in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&reviewRecord{})
	}
	return repo
}

type reviewRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	CustomerID  int64     `gorm:"column:customer_id;uniqueIndex:idx_reviews_customer_goods"`
	GoodsID     int64     `gorm:"column:goods_id;uniqueIndex:idx_reviews_customer_goods;index"`
	Rating      int32     `gorm:"column:rating"`
	Comment     string    `gorm:"column:comment;size:1000"`
	IsModerated bool      `gorm:"column:is_moderated"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }

// Create inserts a review. The unique (customer_id, goods_id) index enforces
// the one-review-per-pair rule at the database level.
func (r *Repository) Create(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ports.ErrDuplicateReview
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Update(ctx context.Context, review *domain.Review) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if review == nil {
		return nil, errors.New("review is nil")
	}
	clone := *review
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(&clone)
	result := r.db.WithContext(ctx).Model(&reviewRecord{}).Where("id = ?", record.ID).
		Updates(map[string]any{
			"rating":       record.Rating,
			"comment":      record.Comment,
			"is_moderated": record.IsModerated,
			"updated_at":   record.UpdatedAt,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record reviewRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&reviewRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ListByGoods(ctx context.Context, goodsID int64) ([]*domain.Review, error) {
	return r.list(ctx, "goods_id = ?", goodsID)
}

func (r *Repository) ListByCustomer(ctx context.Context, customerID int64) ([]*domain.Review, error) {
	return r.list(ctx, "customer_id = ?", customerID)
}

func (r *Repository) list(ctx context.Context, query string, arg int64) ([]*domain.Review, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []reviewRecord
	if err := r.db.WithContext(ctx).Where(query, arg).Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	reviews := make([]*domain.Review, 0, len(records))
	for i := range records {
		reviews = append(reviews, records[i].toDomain())
	}
	return reviews, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres review repository not configured")
	}
	return nil
}

func toRecord(review *domain.Review) reviewRecord {
	return reviewRecord{
		ID:          review.ID,
		CustomerID:  review.CustomerID,
		GoodsID:     review.GoodsID,
		Rating:      review.Rating,
		Comment:     review.Comment,
		IsModerated: review.IsModerated,
		CreatedAt:   review.CreatedAt,
		UpdatedAt:   review.UpdatedAt,
	}
}

func (r reviewRecord) toDomain() *domain.Review {
	return &domain.Review{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		GoodsID:     r.GoodsID,
		Rating:      r.Rating,
		Comment:     r.Comment,
		IsModerated: r.IsModerated,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
