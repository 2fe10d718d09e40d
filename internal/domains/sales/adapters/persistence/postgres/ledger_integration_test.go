//go:build integration
// +build integration

// To enable gopls support for this file, add the following to your VSCode settings.json:
// "gopls": {
//   "buildFlags": ["-tags=integration"]
// }

package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	catalogpostgres "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	customerpostgres "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/persistence/postgres"
	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	salescatalog "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/catalog"
	salespostgres "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/marketcore/go-gin-market-server/internal/domains/sales/application"
	salesdomain "github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
	"github.com/marketcore/go-gin-market-server/internal/platform/migrations"
)

func setupPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("market_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

type fixtures struct {
	service   *salesapp.Service
	customers *customerpostgres.Repository
	catalog   *catalogpostgres.Repository
}

func newFixtures(db *gorm.DB) *fixtures {
	customers := customerpostgres.NewRepository(db)
	catalog := catalogpostgres.NewRepository(db)
	service := salesapp.NewService(
		salespostgres.NewLedger(db),
		salescatalog.NewReader(catalogapp.NewService(catalog)),
	)
	return &fixtures{service: service, customers: customers, catalog: catalog}
}

func (f *fixtures) seedCustomer(t *testing.T, username, balance string) int64 {
	t.Helper()
	customer, err := customerdomain.NewCustomer(0, "Customer "+username, username, "hashed-password", 30)
	require.NoError(t, err)
	amount := decimal.RequireFromString(balance)
	if amount.IsPositive() {
		require.NoError(t, customer.CreditWallet(amount))
	}
	saved, err := f.customers.Save(context.Background(), customer)
	require.NoError(t, err)
	return saved.ID
}

func (f *fixtures) seedGoods(t *testing.T, name, price string, stock int32) int64 {
	t.Helper()
	goods, err := catalogdomain.NewGoods(0, name, "general", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	saved, err := f.catalog.Save(context.Background(), goods)
	require.NoError(t, err)
	return saved.ID
}

func (f *fixtures) buy(t *testing.T, customerID, goodsID int64, quantity int32) {
	t.Helper()
	_, err := f.service.Purchase(context.Background(), salesports.PurchaseInput{
		CustomerID: customerID,
		GoodsID:    goodsID,
		Quantity:   quantity,
	})
	require.NoError(t, err)
}

func TestPostgresLedger_PurchaseCommitsAllThreeWrites(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	f := newFixtures(db)
	ctx := context.Background()
	customerID := f.seedCustomer(t, "alice", "100.00")
	goodsID := f.seedGoods(t, "keyboard", "29.99", 50)

	receipt, err := f.service.Purchase(ctx, salesports.PurchaseInput{
		CustomerID: customerID,
		GoodsID:    goodsID,
		Quantity:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "59.98", receipt.TotalPrice.StringFixed(2))
	assert.Equal(t, "40.02", receipt.WalletBalance.StringFixed(2))

	customer, err := f.customers.GetByID(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, "40.02", customer.WalletBalance.StringFixed(2))

	goods, err := f.catalog.GetByID(ctx, goodsID)
	require.NoError(t, err)
	assert.Equal(t, int32(48), goods.CountInStock)

	history, err := f.service.PurchaseHistory(ctx, customerID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int32(2), history[0].Quantity)
}

func TestPostgresLedger_FailedPurchaseRollsBack(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	f := newFixtures(db)
	ctx := context.Background()
	customerID := f.seedCustomer(t, "alice", "10.00")
	goodsID := f.seedGoods(t, "keyboard", "29.99", 50)

	_, err := f.service.Purchase(ctx, salesports.PurchaseInput{
		CustomerID: customerID,
		GoodsID:    goodsID,
		Quantity:   1,
	})
	require.ErrorIs(t, err, salesdomain.ErrInsufficientFunds)

	customer, err := f.customers.GetByID(ctx, customerID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", customer.WalletBalance.StringFixed(2))

	goods, err := f.catalog.GetByID(ctx, goodsID)
	require.NoError(t, err)
	assert.Equal(t, int32(50), goods.CountInStock)

	history, err := f.service.PurchaseHistory(ctx, customerID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestPostgresLedger_StockErrorWinsWhenBothChecksFail(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	f := newFixtures(db)
	customerID := f.seedCustomer(t, "broke", "0.00")
	goodsID := f.seedGoods(t, "keyboard", "29.99", 1)

	_, err := f.service.Purchase(context.Background(), salesports.PurchaseInput{
		CustomerID: customerID,
		GoodsID:    goodsID,
		Quantity:   2,
	})
	require.ErrorIs(t, err, salesdomain.ErrInsufficientStock)
}

func TestPostgresLedger_RecommendationRanking(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	f := newFixtures(db)
	ctx := context.Background()
	alice := f.seedCustomer(t, "alice", "500.00")
	bob := f.seedCustomer(t, "bob", "500.00")
	carol := f.seedCustomer(t, "carol", "500.00")
	x := f.seedGoods(t, "x", "10.00", 50)
	y := f.seedGoods(t, "y", "10.00", 50)
	z := f.seedGoods(t, "z", "10.00", 50)

	// Bob and Carol share X with Alice. Z is bought twice among them, Y once,
	// so the ranking for Alice is Z then Y.
	f.buy(t, alice, x, 1)
	f.buy(t, bob, x, 1)
	f.buy(t, bob, z, 1)
	f.buy(t, carol, x, 1)
	f.buy(t, carol, z, 1)
	f.buy(t, carol, y, 1)

	recommendations, err := f.service.Recommend(ctx, alice, 0)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	assert.Equal(t, z, recommendations[0].GoodsID)
	assert.Equal(t, y, recommendations[1].GoodsID)
}

func TestPostgresLedger_RecommendationFallsBackToTopSelling(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupPostgresContainer(t)
	defer cleanup()

	f := newFixtures(db)
	ctx := context.Background()
	alice := f.seedCustomer(t, "alice", "500.00")
	newcomer := f.seedCustomer(t, "newcomer", "500.00")
	popular := f.seedGoods(t, "popular", "10.00", 50)
	niche := f.seedGoods(t, "niche", "10.00", 50)

	f.buy(t, alice, popular, 1)
	f.buy(t, alice, popular, 1)
	f.buy(t, alice, niche, 1)

	recommendations, err := f.service.Recommend(ctx, newcomer, 0)
	require.NoError(t, err)
	require.Len(t, recommendations, 2)
	assert.Equal(t, popular, recommendations[0].GoodsID)
	assert.Equal(t, niche, recommendations[1].GoodsID)
}
