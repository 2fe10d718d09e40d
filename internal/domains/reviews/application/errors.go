package application

import (
	"errors"
	"fmt"

	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	"github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid review input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrEmptyComment),
		errors.Is(err, domain.ErrInvalidModAction):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	case errors.Is(err, ports.ErrDuplicateReview):
		return domain.ErrAlreadyReviewed
	}
	return err
}
