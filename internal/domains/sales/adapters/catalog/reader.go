package catalog

import (
	"context"
	"errors"

	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

var _ ports.CatalogReader = (*Reader)(nil)

// Reader resolves ranked goods ids through the catalog service, keeping the
// caller's ordering and dropping ids for goods that were deleted since the
// ranking was computed.
type Reader struct {
	catalog catalogports.Service
}

func NewReader(catalog catalogports.Service) *Reader {
	return &Reader{catalog: catalog}
}

func (r *Reader) GoodsByIDs(ctx context.Context, ids []int64) ([]*domain.RecommendedGoods, error) {
	if r == nil || r.catalog == nil {
		return nil, errors.New("catalog reader not configured")
	}
	if len(ids) == 0 {
		return []*domain.RecommendedGoods{}, nil
	}
	goods, err := r.catalog.GetGoodsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	recommended := make([]*domain.RecommendedGoods, 0, len(goods))
	for _, g := range goods {
		recommended = append(recommended, &domain.RecommendedGoods{
			GoodsID:      g.ID,
			Name:         g.Name,
			Category:     g.Category,
			PricePerItem: g.PricePerItem,
			Description:  g.Description,
		})
	}
	return recommended, nil
}
