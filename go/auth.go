package marketserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	customerdomain "github.com/marketcore/go-gin-market-server/internal/domains/customers/domain"
	customerports "github.com/marketcore/go-gin-market-server/internal/domains/customers/ports"
)

const identityContextKey = "marketserver.identity"

// BearerAuth resolves the Authorization header into a customer identity and
// attaches it to the request context. Requests without a header pass through
// anonymously; guards downstream decide whether that is acceptable.
func BearerAuth(customers customerports.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		customer, err := customers.ResolveToken(c.Request.Context(), token)
		if err != nil {
			respondError(c, http.StatusUnauthorized, errors.New("invalid or expired token"))
			c.Abort()
			return
		}
		c.Set(identityContextKey, customer)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func identityFrom(c *gin.Context) (*customerdomain.Customer, bool) {
	value, ok := c.Get(identityContextKey)
	if !ok {
		return nil, false
	}
	customer, ok := value.(*customerdomain.Customer)
	return customer, ok && customer != nil
}

// requireAuthenticated aborts with 401 unless a valid token was presented.
func requireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := identityFrom(c); !ok {
			respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdmin aborts with 401 for anonymous callers and 403 for
// non-admin identities.
func requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		if !identity.IsAdmin {
			respondError(c, http.StatusForbidden, errors.New("admin privileges required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireOwnerOrAdmin restricts a route carrying a username path parameter to
// the named customer or an admin.
func requireOwnerOrAdmin(param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := identityFrom(c)
		if !ok {
			respondError(c, http.StatusUnauthorized, errors.New("authentication required"))
			c.Abort()
			return
		}
		if !identity.IsAdmin && identity.Username != c.Param(param) {
			respondError(c, http.StatusForbidden, errors.New("not allowed to access this resource"))
			c.Abort()
			return
		}
		c.Next()
	}
}
