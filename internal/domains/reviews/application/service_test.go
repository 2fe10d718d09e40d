package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	catalogmemory "github.com/marketcore/go-gin-market-server/internal/domains/catalog/adapters/memory"
	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	reviewcatalog "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/catalog"
	reviewmemory "github.com/marketcore/go-gin-market-server/internal/domains/reviews/adapters/memory"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

type reviewHarness struct {
	service *Service
	catalog *catalogmemory.Repository
}

func newReviewHarness() *reviewHarness {
	catalog := catalogmemory.NewRepository()
	service := NewService(
		reviewmemory.NewRepository(),
		reviewcatalog.NewChecker(catalogapp.NewService(catalog)),
	)
	return &reviewHarness{service: service, catalog: catalog}
}

func (h *reviewHarness) seedGoods(t *testing.T) int64 {
	t.Helper()
	goods, err := catalogdomain.NewGoods(0, "keyboard", "electronics", decimal.RequireFromString("29.99"), 50)
	require.NoError(t, err)
	saved, err := h.catalog.Save(context.Background(), goods)
	require.NoError(t, err)
	return saved.ID
}

func TestSubmitReview(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)

	review, err := h.service.Submit(context.Background(), ports.SubmitInput{
		CustomerID: 1,
		GoodsID:    goodsID,
		Rating:     4,
		Comment:    "solid keys",
	})
	require.NoError(t, err)
	require.NotZero(t, review.ID)
	require.Equal(t, int32(4), review.Rating)
	require.False(t, review.IsModerated)
}

func TestSubmitReview_GoodsMustExist(t *testing.T) {
	h := newReviewHarness()
	_, err := h.service.Submit(context.Background(), ports.SubmitInput{
		CustomerID: 1,
		GoodsID:    404,
		Rating:     4,
		Comment:    "solid keys",
	})
	require.ErrorIs(t, err, ports.ErrGoodsNotFound)
}

func TestSubmitReview_SecondReviewRejected(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)
	input := ports.SubmitInput{CustomerID: 1, GoodsID: goodsID, Rating: 4, Comment: "solid keys"}

	_, err := h.service.Submit(context.Background(), input)
	require.NoError(t, err)

	_, err = h.service.Submit(context.Background(), input)
	require.ErrorIs(t, err, domain.ErrAlreadyReviewed)

	// A different customer may still review the same goods.
	input.CustomerID = 2
	_, err = h.service.Submit(context.Background(), input)
	require.NoError(t, err)
}

func TestSubmitReview_RatingBounds(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)

	for _, rating := range []int32{0, 6, -1} {
		_, err := h.service.Submit(context.Background(), ports.SubmitInput{
			CustomerID: 1,
			GoodsID:    goodsID,
			Rating:     rating,
			Comment:    "out of range",
		})
		require.ErrorIs(t, err, ErrInvalidInput)
		require.ErrorIs(t, err, domain.ErrInvalidRating)
	}
}

func TestUpdateReview(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)
	review, err := h.service.Submit(context.Background(), ports.SubmitInput{
		CustomerID: 1, GoodsID: goodsID, Rating: 2, Comment: "meh",
	})
	require.NoError(t, err)

	newRating := int32(5)
	updated, err := h.service.Update(context.Background(), review.ID, ports.UpdateInput{Rating: &newRating})
	require.NoError(t, err)
	require.Equal(t, int32(5), updated.Rating)
	require.Equal(t, "meh", updated.Comment)
}

func TestModerateReview(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)
	review, err := h.service.Submit(context.Background(), ports.SubmitInput{
		CustomerID: 1, GoodsID: goodsID, Rating: 4, Comment: "solid keys",
	})
	require.NoError(t, err)

	approved, err := h.service.Moderate(context.Background(), review.ID, domain.ModerationApprove)
	require.NoError(t, err)
	require.True(t, approved.IsModerated)

	flagged, err := h.service.Moderate(context.Background(), review.ID, domain.ModerationFlag)
	require.NoError(t, err)
	require.False(t, flagged.IsModerated)

	_, err = h.service.Moderate(context.Background(), review.ID, "shadowban")
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrInvalidModAction)
}

func TestDeleteReview_AllowsResubmission(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)
	input := ports.SubmitInput{CustomerID: 1, GoodsID: goodsID, Rating: 4, Comment: "solid keys"}
	review, err := h.service.Submit(context.Background(), input)
	require.NoError(t, err)

	require.NoError(t, h.service.Delete(context.Background(), review.ID))

	_, err = h.service.Get(context.Background(), review.ID)
	require.ErrorIs(t, err, ports.ErrNotFound)

	_, err = h.service.Submit(context.Background(), input)
	require.NoError(t, err)
}

func TestListReviews(t *testing.T) {
	h := newReviewHarness()
	goodsID := h.seedGoods(t)
	otherGoodsID := h.seedGoods(t)

	for customerID := int64(1); customerID <= 3; customerID++ {
		_, err := h.service.Submit(context.Background(), ports.SubmitInput{
			CustomerID: customerID, GoodsID: goodsID, Rating: 3, Comment: "fine",
		})
		require.NoError(t, err)
	}
	_, err := h.service.Submit(context.Background(), ports.SubmitInput{
		CustomerID: 1, GoodsID: otherGoodsID, Rating: 5, Comment: "great",
	})
	require.NoError(t, err)

	byGoods, err := h.service.ListByGoods(context.Background(), goodsID)
	require.NoError(t, err)
	require.Len(t, byGoods, 3)

	byCustomer, err := h.service.ListByCustomer(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, byCustomer, 2)

	_, err = h.service.ListByGoods(context.Background(), 404)
	require.ErrorIs(t, err, ports.ErrGoodsNotFound)
}
