package marketserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
	salesdomain "github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
)

// SalesAPI implements the purchase and recommendation endpoints.
type SalesAPI struct {
	service   salesports.Service
	customers customerports.Service
}

// NewSalesAPI wires dependencies. The customer service resolves usernames in
// purchase-history lookups.
func NewSalesAPI(service salesports.Service, customers customerports.Service) SalesAPI {
	return SalesAPI{service: service, customers: customers}
}

// Purchase is the transport representation of a completed sale.
type Purchase struct {
	ID           int64           `json:"id"`
	CustomerID   int64           `json:"customer_id"`
	GoodsID      int64           `json:"goods_id"`
	Quantity     int32           `json:"quantity"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	PurchaseDate time.Time       `json:"purchase_date"`
}

// RecommendedGoods is a catalog item surfaced by the recommendation flow.
type RecommendedGoods struct {
	GoodsID      int64           `json:"goods_id"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	PricePerItem decimal.Decimal `json:"price_per_item"`
	Description  string          `json:"description,omitempty"`
}

// Quantity is a pointer so an omitted field defaults to one unit while an
// explicit zero is rejected as invalid.
type purchaseRequest struct {
	GoodsID  int64  `json:"goods_id" binding:"required"`
	Quantity *int32 `json:"quantity"`
}

type purchaseReceiptResponse struct {
	PurchaseID    int64           `json:"purchase_id"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	WalletBalance decimal.Decimal `json:"wallet_balance"`
}

func fromDomainPurchase(purchase *salesdomain.Purchase) Purchase {
	return Purchase{
		ID:           purchase.ID,
		CustomerID:   purchase.CustomerID,
		GoodsID:      purchase.GoodsID,
		Quantity:     purchase.Quantity,
		TotalPrice:   purchase.TotalPrice,
		PurchaseDate: purchase.PurchaseDate,
	}
}

func fromDomainRecommendation(goods *salesdomain.RecommendedGoods) RecommendedGoods {
	return RecommendedGoods{
		GoodsID:      goods.GoodsID,
		Name:         goods.Name,
		Category:     goods.Category,
		PricePerItem: goods.PricePerItem,
		Description:  goods.Description,
	}
}

// Post /sales
// Buy goods for the authenticated customer
func (api *SalesAPI) Purchase(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	var payload purchaseRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	quantity := int32(1)
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	receipt, err := api.service.Purchase(c.Request.Context(), salesports.PurchaseInput{
		CustomerID: identity.ID,
		GoodsID:    payload.GoodsID,
		Quantity:   quantity,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, purchaseReceiptResponse{
		PurchaseID:    receipt.PurchaseID,
		TotalPrice:    receipt.TotalPrice,
		WalletBalance: receipt.WalletBalance,
	})
}

// Get /customers/:username/purchases
// List a customer's purchase history
func (api *SalesAPI) PurchaseHistory(c *gin.Context) {
	customer, err := api.customers.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	purchases, err := api.service.PurchaseHistory(c.Request.Context(), customer.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]Purchase, 0, len(purchases))
	for _, purchase := range purchases {
		result = append(result, fromDomainPurchase(purchase))
	}
	c.JSON(http.StatusOK, result)
}

// Get /recommendations
// Rank goods for the authenticated customer
func (api *SalesAPI) Recommend(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondError(c, http.StatusBadRequest, errors.New("limit must be an integer"))
			return
		}
		limit = parsed
	}
	recommendations, err := api.service.Recommend(c.Request.Context(), identity.ID, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	result := make([]RecommendedGoods, 0, len(recommendations))
	for _, goods := range recommendations {
		result = append(result, fromDomainRecommendation(goods))
	}
	c.JSON(http.StatusOK, result)
}
