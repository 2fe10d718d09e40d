package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidRating    = errors.New("rating must be between 1 and 5")
	ErrEmptyComment     = errors.New("comment must not be empty")
	ErrAlreadyReviewed  = errors.New("customer already reviewed these goods")
	ErrInvalidModAction = errors.New("moderation action must be approve or flag")
)

// Moderation actions accepted by Moderate.
const (
	ModerationApprove = "approve"
	ModerationFlag    = "flag"
)

// Review is a customer's opinion on purchased goods. At most one review
// exists per (customer, goods) pair.
type Review struct {
	ID          int64
	CustomerID  int64
	GoodsID     int64
	Rating      int32
	Comment     string
	IsModerated bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewReview validates and constructs an unmoderated review.
func NewReview(customerID, goodsID int64, rating int32, comment string, at time.Time) (*Review, error) {
	review := &Review{
		CustomerID: customerID,
		GoodsID:    goodsID,
		CreatedAt:  at,
		UpdatedAt:  at,
	}
	if err := review.SetRating(rating); err != nil {
		return nil, err
	}
	if err := review.SetComment(comment); err != nil {
		return nil, err
	}
	return review, nil
}

func (r *Review) SetRating(rating int32) error {
	if rating < 1 || rating > 5 {
		return ErrInvalidRating
	}
	r.Rating = rating
	return nil
}

func (r *Review) SetComment(comment string) error {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return ErrEmptyComment
	}
	r.Comment = comment
	return nil
}

// Moderate applies an admin decision. Approving marks the review as vetted,
// flagging clears the mark again.
func (r *Review) Moderate(action string) error {
	switch action {
	case ModerationApprove:
		r.IsModerated = true
	case ModerationFlag:
		r.IsModerated = false
	default:
		return ErrInvalidModAction
	}
	return nil
}

// Validate checks the aggregate state before persisting.
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Comment) == "" {
		return ErrEmptyComment
	}
	return nil
}
