package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	customermemory "github.com/marketcore/go-gin-market-server/internal/domains/customers/adapters/memory"
	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	salescatalog "github.com/marketcore/go-gin-market-server/internal/domains/sales/adapters/catalog"
	salesapp "github.com/marketcore/go-gin-market-server/internal/domains/sales/application"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

func seedCustomer(t *testing.T, repo *customermemory.Repository, username, balance string) int64 {
	t.Helper()
	customer, err := customerdomain.NewCustomer(0, "Customer "+username, username, "hashed-password", 30)
	require.NoError(t, err)
	amount := decimal.RequireFromString(balance)
	if amount.IsPositive() {
		require.NoError(t, customer.CreditWallet(amount))
	}
	saved, err := repo.Save(context.Background(), customer)
	require.NoError(t, err)
	return saved.ID
}

func seedGoods(t *testing.T, repo *catalogmemory.Repository, price string, stock int32) int64 {
	t.Helper()
	goods, err := catalogdomain.NewGoods(0, "widget", "general", decimal.RequireFromString(price), stock)
	require.NoError(t, err)
	saved, err := repo.Save(context.Background(), goods)
	require.NoError(t, err)
	return saved.ID
}

// Purchases racing on the same wallet must never overdraw it: the ledger
// serializes transactions, so only as many purchases succeed as the balance
// covers.
func TestConcurrentPurchases_CannotOverdrawWallet(t *testing.T) {
	customers := customermemory.NewRepository()
	catalog := catalogmemory.NewRepository()
	service := salesapp.NewService(
		NewLedger(customers, catalog),
		salescatalog.NewReader(catalogapp.NewService(catalog)),
	)

	customerID := seedCustomer(t, customers, "alice", "25.00")
	goodsID := seedGoods(t, catalog, "10.00", 100)

	const attempts = 5
	var wg sync.WaitGroup
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.Purchase(context.Background(), salesports.PurchaseInput{
				CustomerID: customerID,
				GoodsID:    goodsID,
				Quantity:   1,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 2, succeeded)

	customer, err := customers.GetByID(context.Background(), customerID)
	require.NoError(t, err)
	require.Equal(t, "5.00", customer.WalletBalance.StringFixed(2))

	goods, err := catalog.GetByID(context.Background(), goodsID)
	require.NoError(t, err)
	require.Equal(t, int32(98), goods.CountInStock)
}

// Racing buyers must never push stock below zero.
func TestConcurrentPurchases_CannotOversellStock(t *testing.T) {
	customers := customermemory.NewRepository()
	catalog := catalogmemory.NewRepository()
	service := salesapp.NewService(
		NewLedger(customers, catalog),
		salescatalog.NewReader(catalogapp.NewService(catalog)),
	)

	goodsID := seedGoods(t, catalog, "1.00", 3)
	buyers := []int64{
		seedCustomer(t, customers, "a", "100.00"),
		seedCustomer(t, customers, "b", "100.00"),
		seedCustomer(t, customers, "c", "100.00"),
		seedCustomer(t, customers, "d", "100.00"),
		seedCustomer(t, customers, "e", "100.00"),
	}

	var wg sync.WaitGroup
	results := make(chan error, len(buyers))
	for _, buyerID := range buyers {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := service.Purchase(context.Background(), salesports.PurchaseInput{
				CustomerID: id,
				GoodsID:    goodsID,
				Quantity:   1,
			})
			results <- err
		}(buyerID)
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		}
	}
	require.Equal(t, 3, succeeded)

	goods, err := catalog.GetByID(context.Background(), goodsID)
	require.NoError(t, err)
	require.Equal(t, int32(0), goods.CountInStock)
}
