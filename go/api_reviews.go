package marketserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
	reviewdomain "github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	reviewports "github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

// ReviewAPI implements the review endpoints.
type ReviewAPI struct {
	service   reviewports.Service
	customers customerports.Service
}

// NewReviewAPI wires dependencies. The customer service resolves usernames in
// per-customer listings.
func NewReviewAPI(service reviewports.Service, customers customerports.Service) ReviewAPI {
	return ReviewAPI{service: service, customers: customers}
}

// Review is the transport representation of a customer review.
type Review struct {
	ID          int64     `json:"id"`
	CustomerID  int64     `json:"customer_id"`
	GoodsID     int64     `json:"goods_id"`
	Rating      int32     `json:"rating"`
	Comment     string    `json:"comment"`
	IsModerated bool      `json:"is_moderated"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type submitReviewRequest struct {
	GoodsID int64  `json:"goods_id" binding:"required"`
	Rating  int32  `json:"rating" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

type updateReviewRequest struct {
	Rating  *int32  `json:"rating"`
	Comment *string `json:"comment"`
}

type moderateReviewRequest struct {
	Action string `json:"action" binding:"required"`
}

func fromDomainReview(review *reviewdomain.Review) Review {
	return Review{
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

func reviewIDParam(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("reviewId"), 10, 64)
	if err != nil {
		return 0, errors.New("reviewId must be an integer")
	}
	return id, nil
}

// loadOwnedReview fetches a review and enforces the owner-or-admin rule.
func (api *ReviewAPI) loadOwnedReview(c *gin.Context) (*reviewdomain.Review, bool) {
	id, err := reviewIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return nil, false
	}
	identity, ok := identityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return nil, false
	}
	review, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return nil, false
	}
	if !identity.IsAdmin && identity.ID != review.CustomerID {
		respondError(c, http.StatusForbidden, errors.New("not allowed to modify this review"))
		return nil, false
	}
	return review, true
}

// Post /reviews
// Submit a review for purchased goods
func (api *ReviewAPI) Submit(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
		return
	}
	var payload submitReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.Submit(c.Request.Context(), reviewports.SubmitInput{
		CustomerID: identity.ID,
		GoodsID:    payload.GoodsID,
		Rating:     payload.Rating,
		Comment:    payload.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, fromDomainReview(review))
}

// Get /reviews/:reviewId
// Get a single review
func (api *ReviewAPI) Get(c *gin.Context) {
	id, err := reviewIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainReview(review))
}

// Put /reviews/:reviewId
// Update a review's rating or comment
func (api *ReviewAPI) Update(c *gin.Context) {
	review, ok := api.loadOwnedReview(c)
	if !ok {
		return
	}
	var payload updateReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), review.ID, reviewports.UpdateInput{
		Rating:  payload.Rating,
		Comment: payload.Comment,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainReview(updated))
}

// Delete /reviews/:reviewId
// Remove a review
func (api *ReviewAPI) Delete(c *gin.Context) {
	review, ok := api.loadOwnedReview(c)
	if !ok {
		return
	}
	if err := api.service.Delete(c.Request.Context(), review.ID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review deleted"})
}

// Post /reviews/:reviewId/moderate
// Apply an admin moderation decision
func (api *ReviewAPI) Moderate(c *gin.Context) {
	id, err := reviewIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	var payload moderateReviewRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	review, err := api.service.Moderate(c.Request.Context(), id, payload.Action)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainReview(review))
}

// Get /goods/:goodsId/reviews
// List reviews for goods
func (api *ReviewAPI) ListByGoods(c *gin.Context) {
	id, err := goodsIDParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}
	reviews, err := api.service.ListByGoods(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainReviews(reviews))
}

// Get /customers/:username/reviews
// List reviews written by a customer
func (api *ReviewAPI) ListByCustomer(c *gin.Context) {
	customer, err := api.customers.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	reviews, err := api.service.ListByCustomer(c.Request.Context(), customer.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, fromDomainReviews(reviews))
}

func fromDomainReviews(reviews []*reviewdomain.Review) []Review {
	result := make([]Review, 0, len(reviews))
	for _, review := range reviews {
		result = append(result, fromDomainReview(review))
	}
	return result
}
