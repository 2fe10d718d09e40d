package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/memory"
	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
)

func addKeyboard(t *testing.T, svc *Service) *domain.Goods {
	t.Helper()
	goods, err := svc.AddGoods(context.Background(), ports.AddGoodsInput{
		Name:         "keyboard",
		Category:     "electronics",
		PricePerItem: decimal.RequireFromString("29.99"),
		Description:  "87-key mechanical",
		ImageURLs:    []string{"https://img.example/kb-front.jpg", "https://img.example/kb-side.jpg"},
		CountInStock: 50,
	})
	require.NoError(t, err)
	return goods
}

func TestAddGoods(t *testing.T) {
	svc := NewService(memory.NewRepository())
	goods := addKeyboard(t, svc)
	require.NotZero(t, goods.ID)
	require.Equal(t, "keyboard", goods.Name)
	require.Len(t, goods.ImageURLs, 2)
	require.Equal(t, int32(50), goods.CountInStock)
}

func TestAddGoods_RejectsInvalidInput(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.AddGoods(context.Background(), ports.AddGoodsInput{
		Name:         "",
		Category:     "electronics",
		PricePerItem: decimal.RequireFromString("29.99"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.AddGoods(context.Background(), ports.AddGoodsInput{
		Name:         "keyboard",
		Category:     "electronics",
		PricePerItem: decimal.RequireFromString("-1"),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrNegativePrice)
}

func TestUpdateGoods_PartialChange(t *testing.T) {
	svc := NewService(memory.NewRepository())
	goods := addKeyboard(t, svc)

	newPrice := decimal.RequireFromString("24.99")
	updated, err := svc.UpdateGoods(context.Background(), goods.ID, ports.UpdateGoodsInput{
		PricePerItem: &newPrice,
	})
	require.NoError(t, err)
	require.Equal(t, "24.99", updated.PricePerItem.StringFixed(2))
	// Untouched fields survive the update.
	require.Equal(t, "keyboard", updated.Name)
	require.Equal(t, int32(50), updated.CountInStock)
}

func TestUpdateGoods_NotFound(t *testing.T) {
	svc := NewService(memory.NewRepository())
	name := "mouse"
	_, err := svc.UpdateGoods(context.Background(), 404, ports.UpdateGoodsInput{Name: &name})
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestDeductStock(t *testing.T) {
	svc := NewService(memory.NewRepository())
	goods := addKeyboard(t, svc)

	updated, err := svc.DeductStock(context.Background(), goods.ID, 20)
	require.NoError(t, err)
	require.Equal(t, int32(30), updated.CountInStock)

	_, err = svc.DeductStock(context.Background(), goods.ID, 31)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = svc.DeductStock(context.Background(), goods.ID, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetGoodsByIDs_PreservesOrderAndDropsMissing(t *testing.T) {
	svc := NewService(memory.NewRepository())
	first := addKeyboard(t, svc)
	second, err := svc.AddGoods(context.Background(), ports.AddGoodsInput{
		Name:         "mouse",
		Category:     "electronics",
		PricePerItem: decimal.RequireFromString("9.99"),
		CountInStock: 10,
	})
	require.NoError(t, err)

	goods, err := svc.GetGoodsByIDs(context.Background(), []int64{second.ID, 404, first.ID})
	require.NoError(t, err)
	require.Len(t, goods, 2)
	require.Equal(t, second.ID, goods[0].ID)
	require.Equal(t, first.ID, goods[1].ID)
}

func TestDeleteGoods(t *testing.T) {
	svc := NewService(memory.NewRepository())
	goods := addKeyboard(t, svc)

	require.NoError(t, svc.DeleteGoods(context.Background(), goods.ID))
	_, err := svc.GetGoods(context.Background(), goods.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)
}
