package marketserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
)

// GoodsAPI implements the catalog endpoints.
type GoodsAPI struct {
	service catalogports.Service
}

// NewGoodsAPI wires dependencies.
func NewGoodsAPI(service catalogports.Service) GoodsAPI {
	return GoodsAPI{service: service}
}

// Goods is the transport representation of an inventory item.
type Goods struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Description  string          `json:"description,omitempty"`
	ImageURLs    []string        `json:"image_urls,omitempty"`
	CountInStock int32           `json:"count_in_stock"`
}

type addGoodsRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	PricePerItem decimal.Decimal `json:"price_per_item" binding:"required"`
	Description  string          `json:"description"`
	ImageURLs    []string        `json:"image_urls"`
	CountInStock int32           `json:"count_in_stock"`
}

type updateGoodsRequest struct {
	Name         *string          `json:"name"`
	Category     *string          `json:"category"`
	PricePerItem *decimal.Decimal `json:"price_per_item"`
	Description  *string          `json:"description"`
	ImageURLs    *[]string        `json:"image_urls"`
	CountInStock *int32           `json:"count_in_stock"`
}

type deductStockRequest struct {
	Amount int32 `json:"amount" binding:"required"`
}

func fromDomainGoods(goods *catalogdomain.Goods) Goods {
	return Goods{
		ID:           goods.ID,
		Name:         goods.Name,
		Category:     goods.Category,
		PricePerItem: goods.PricePerItem,
		Description:  goods.Description,
		ImageURLs:    goods.ImageURLs,
		CountInStock: goods.CountInStock,
	}
}

func goodsIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("goodsId"), 10, 64)
	if err != nil {
		return 0, errors.New("goodsId must be an integer")
	}
	return id, nil
}

// Post /goods
// Add an inventory item
func (api *GoodsAPI) Add(c *gin.Context) {
	var payload addGoodsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	goods, err := api.service.AddGoods(c.Request.Context(), catalogports.AddGoodsInput{
		Name:         payload.Name,
		Category:     payload.Category,
		PricePerItem: payload.PricePerItem,
		Description:  payload.Description,
		ImageURLs:    payload.ImageURLs,
		CountInStock: payload.CountInStock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainGoods(goods))
}

// Get /goods
// List the full catalog
func (api *GoodsAPI) List(c *gin.Context) {
	goods, err := api.service.ListGoods(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Goods, 0, len(goods))
	for _, item := range goods {
		result = append(result, fromDomainGoods(item))
	}
	c.JSON(http.StatusOK, result)
}

// Get /goods/:goodsId
// Get an inventory item
func (api *GoodsAPI) Get(c *gin.Context) {
	id, err := goodsIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	goods, err := api.service.GetGoods(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainGoods(goods))
}

// Put /goods/:goodsId
// Update an inventory item
func (api *GoodsAPI) Update(c *gin.Context) {
	id, err := goodsIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload updateGoodsRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	goods, err := api.service.UpdateGoods(c.Request.Context(), id, catalogports.UpdateGoodsInput{
		Name:         payload.Name,
		Category:     payload.Category,
		PricePerItem: payload.PricePerItem,
		Description:  payload.Description,
		ImageURLs:    payload.ImageURLs,
		CountInStock: payload.CountInStock,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainGoods(goods))
}

// Delete /goods/:goodsId
// Remove an inventory item
func (api *GoodsAPI) Delete(c *gin.Context) {
	id, err := goodsIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	if err := api.service.DeleteGoods(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "goods deleted"})
}

// Post /goods/:goodsId/deduct
// Deduct stock outside of a sale, e.g. shrinkage corrections
func (api *GoodsAPI) DeductStock(c *gin.Context) {
	id, err := goodsIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload deductStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	goods, err := api.service.DeductStock(c.Request.Context(), id, payload.Amount)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainGoods(goods))
}
