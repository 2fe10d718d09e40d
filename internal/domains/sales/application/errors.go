package application

import (
	"errors"
	"fmt"

	"github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid sales input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidQuantity) || errors.Is(err, domain.ErrInvalidLimit) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
