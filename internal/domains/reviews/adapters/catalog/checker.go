package catalog

import (
	"context"
	"errors"

	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

var _ ports.GoodsCatalog = (*Checker)(nil)

// Checker answers goods existence checks through the catalog service.
type Checker struct {
	catalog catalogports.Service
}

func NewChecker(catalog catalogports.Service) *Checker {
	return &Checker{catalog: catalog}
}

func (c *Checker) GoodsExists(ctx context.Context, goodsID int64) error {
	if c == nil || c.catalog == nil {
		return errors.New("goods checker not configured")
	}
	if _, err := c.catalog.GetGoods(ctx, goodsID); err != nil {
		if errors.Is(err, catalogports.ErrNotFound) {
			return ports.ErrGoodsNotFound
		}
		return err
	}
	return nil
}
