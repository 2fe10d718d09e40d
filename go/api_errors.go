package marketserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	catalogapp "github.com/marketcore/go-gin-market-server/internal/domains/catalog/application"
	catalogdomain "github.com/marketcore/go-gin-market-server/internal/domains/catalog/domain"
	catalogports "github.com/marketcore/go-gin-market-server/internal/domains/catalog/ports"
	customerapp "github.com/marketcore/go-gin-market-server/internal/domains/customers/application"
	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
	reviewapp "github.com/marketcore/go-gin-market-server/internal/domains/reviews/application"
	reviewdomain "github.com/marketcore/go-gin-market-server/internal/domains/reviews/domain"
	reviewports "github.com/marketcore/go-gin-market-server/internal/domains/reviews/ports"
	salesapp "github.com/marketcore/go-gin-market-server/internal/domains/sales/application"
	salesdomain "github.com/marketcore/go-gin-market-server/internal/domains/sales/domain"
	salesports "github.com/marketcore/go-gin-market-server/internal/domains/sales/ports"
	apierrors "github.com/marketcore/go-gin-market-server/internal/shared/errors"
)

// respondProblem maps a ProblemDetail through the shared responder.
func respondProblem(c *gin.Context, problem apierrors.ProblemDetail) {
	apierrors.Respond(c, problem)
}

// respondError returns an RFC 7807 response for the given status.
func respondError(c *gin.Context, status int, err error) {
	if err == nil {
		return
	}
	var problem apierrors.ProblemDetail
	switch status {
	case http.StatusBadRequest:
		problem = apierrors.ErrBadRequest.WithDetail(err.Error())
	case http.StatusNotFound:
		problem = apierrors.ErrNotFound.WithDetail(err.Error())
	case http.StatusUnauthorized:
		problem = apierrors.ErrUnauthorized.WithDetail(err.Error())
	case http.StatusForbidden:
		problem = apierrors.ErrForbidden.WithDetail(err.Error())
	case http.StatusConflict:
		problem = apierrors.ErrConflict.WithDetail(err.Error())
	default:
		problem = apierrors.ErrInternal.WithDetail(err.Error())
	}
	respondProblem(c, problem)
}

// respondServiceError translates service-layer sentinels into HTTP statuses.
// Not-found maps to 404; stock, funds, validation, and duplicate errors map
// to 400; everything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	switch {
	case errors.Is(err, customerports.ErrNotFound),
		errors.Is(err, catalogports.ErrNotFound),
		errors.Is(err, reviewports.ErrNotFound),
		errors.Is(err, reviewports.ErrGoodsNotFound),
		errors.Is(err, salesports.ErrCustomerNotFound),
		errors.Is(err, salesports.ErrGoodsNotFound):
		respondError(c, http.StatusNotFound, err)
	case errors.Is(err, salesdomain.ErrInsufficientStock),
		errors.Is(err, salesdomain.ErrInsufficientFunds),
		errors.Is(err, catalogdomain.ErrInsufficientStock),
		errors.Is(err, customerdomain.ErrInsufficientFunds),
		errors.Is(err, reviewdomain.ErrAlreadyReviewed),
		errors.Is(err, customerports.ErrDuplicateUsername),
		errors.Is(err, customerapp.ErrInvalidInput),
		errors.Is(err, catalogapp.ErrInvalidInput),
		errors.Is(err, reviewapp.ErrInvalidInput),
		errors.Is(err, salesapp.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, err)
	case errors.Is(err, customerapp.ErrAuthentication):
		respondError(c, http.StatusUnauthorized, err)
	default:
		respondError(c, http.StatusInternalServerError, err)
	}
}
