package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&customerRecord{},
		&sessionRecord{},
		&goodsRecord{},
		&purchaseRecord{},
		&reviewRecord{},
	)
}

// Customer schema mirrors the customers Postgres adapter.
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

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "customer_sessions" }

// Goods schema mirrors the catalog Postgres adapter.
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

// Purchase schema mirrors the sales ledger adapter.
type purchaseRecord struct {
	ID           int64           `gorm:"primaryKey;column:id"`
	CustomerID   int64           `gorm:"column:customer_id;index:idx_purchases_customer_goods"`
	GoodsID      int64           `gorm:"column:goods_id;index:idx_purchases_customer_goods;index"`
	Quantity     int32           `gorm:"column:quantity"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(12,2)"`
	PurchaseDate time.Time       `gorm:"column:purchase_date;index"`
}

func (purchaseRecord) TableName() string { return "purchases" }

// Review schema mirrors the reviews Postgres adapter.
type reviewRecord struct {
	ID          int64     `gorm:"primaryKey;column:id"`
	CustomerID  int64     `gorm:"column:customer_id;index:idx_reviews_customer_goods"`
	GoodsID     int64     `gorm:"column:goods_id;index:idx_reviews_customer_goods;index"`
	Rating      int32     `gorm:"column:rating"`
	Comment     string    `gorm:"column:comment;type:text"`
	IsModerated bool      `gorm:"column:is_moderated"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (reviewRecord) TableName() string { return "reviews" }
