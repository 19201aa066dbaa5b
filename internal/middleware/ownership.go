package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"shopcart/internal/config"
	"shopcart/internal/domain"
	"shopcart/internal/pkg/response"
)

// EntityScope declares, at route-registration time, how a route derives the
// entity whose ownership is checked. No per-request path sniffing.
type EntityScope int

const (
	// BrandScoped routes carry the brand id in the "id" path parameter.
	BrandScoped EntityScope = iota
	// ProductScoped routes carry a product id in the "id" path parameter;
	// ownership is checked against the product's owning brand.
	ProductScoped
	// ReportScoped routes name the target through entityType/entityId query
	// parameters. entityType=site is admin-only.
	ReportScoped
)

const (
	entityTypeParam = "entityType"
	entityIDParam   = "entityId"

	entityTypeBrand   = "brand"
	entityTypeProduct = "product"
	entityTypeSite    = "site"
)

// BrandDirectory is the read surface of the brand store.
type BrandDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Brand, error)
}

// ProductDirectory is the read surface of the product store.
type ProductDirectory interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}

// UserFinder re-resolves the caller by email so a role change since token
// issuance takes effect immediately.
type UserFinder interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OwnershipChecker resolves the brand a requested entity belongs to and
// compares its owner against the caller. Admins bypass the check.
type OwnershipChecker struct {
	users         UserFinder
	brands        BrandDirectory
	products      ProductDirectory
	lookupTimeout time.Duration
}

func NewOwnershipChecker(users UserFinder, brands BrandDirectory, products ProductDirectory, cfg *config.AuthRuntimeConfig) *OwnershipChecker {
	timeout := cfg.LookupTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &OwnershipChecker{
		users:         users,
		brands:        brands,
		products:      products,
		lookupTimeout: timeout,
	}
}

// RequireOwnership gates a route group on brand ownership, with the entity
// derivation strategy fixed by scope. Must run after Authenticate.
func (oc *OwnershipChecker) RequireOwnership(scope EntityScope) gin.HandlerFunc {
	return func(c *gin.Context) {
		cached, ok := CurrentUser(c)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Authentication required")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), oc.lookupTimeout)
		defer cancel()

		// Do not trust the cached claims for authorization decisions.
		user, err := oc.users.GetByEmail(ctx, cached.Email)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.ErrorWithCode(c, http.StatusUnauthorized, "USER_NOT_FOUND", "User not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		if user.HasAdminAccess() {
			c.Next()
			return
		}

		brandID, ok := oc.resolveBrandID(ctx, c, scope)
		if !ok {
			return
		}

		brand, err := oc.brands.GetByID(ctx, brandID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				response.Error(c, http.StatusNotFound, "Brand not found")
			} else {
				response.Error(c, http.StatusInternalServerError, "Internal server error")
			}
			c.Abort()
			return
		}

		if brand.OwnerID != user.ID {
			response.Error(c, http.StatusForbidden, "You don't own this brand")
			c.Abort()
			return
		}

		c.Next()
	}
}

// resolveBrandID derives the owning brand id for the requested entity. When
// it returns ok=false the response has already been written; any route shape
// that yields no entity denies by default.
func (oc *OwnershipChecker) resolveBrandID(ctx context.Context, c *gin.Context, scope EntityScope) (int64, bool) {
	switch scope {
	case BrandScoped:
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusForbidden, "Access denied")
			c.Abort()
			return 0, false
		}
		return id, true

	case ProductScoped:
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			response.Error(c, http.StatusForbidden, "Access denied")
			c.Abort()
			return 0, false
		}
		return oc.brandOfProduct(ctx, c, id)

	case ReportScoped:
		entityType := c.Query(entityTypeParam)
		switch entityType {
		case entityTypeSite:
			// Site-wide analytics have no ownership concept.
			response.Error(c, http.StatusForbidden, "Site-wide analytics are admin only")
			c.Abort()
			return 0, false
		case entityTypeBrand:
			id, err := strconv.ParseInt(c.Query(entityIDParam), 10, 64)
			if err != nil {
				response.Error(c, http.StatusForbidden, "Access denied")
				c.Abort()
				return 0, false
			}
			return id, true
		case entityTypeProduct:
			id, err := strconv.ParseInt(c.Query(entityIDParam), 10, 64)
			if err != nil {
				response.Error(c, http.StatusForbidden, "Access denied")
				c.Abort()
				return 0, false
			}
			return oc.brandOfProduct(ctx, c, id)
		}
	}

	response.Error(c, http.StatusForbidden, "Access denied")
	c.Abort()
	return 0, false
}

func (oc *OwnershipChecker) brandOfProduct(ctx context.Context, c *gin.Context, productID int64) (int64, bool) {
	product, err := oc.products.GetByID(ctx, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Product not found")
		} else {
			response.Error(c, http.StatusInternalServerError, "Internal server error")
		}
		c.Abort()
		return 0, false
	}
	return product.BrandID, true
}
