package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"shopcart/internal/domain"
)

type fakeBrands struct {
	brands map[int64]*domain.Brand
}

func (f *fakeBrands) GetByID(_ context.Context, id int64) (*domain.Brand, error) {
	b, ok := f.brands[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

type fakeProducts struct {
	products map[int64]*domain.Product
}

func (f *fakeProducts) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ownershipFixture: owner@ owns brand 1 (with product 10), other@ owns
// brand 2 (with product 20), admin@ owns nothing.
func ownershipFixture() (*fakeUsers, *fakeBrands, *fakeProducts) {
	users := &fakeUsers{users: map[int64]*domain.User{
		1: {ID: 1, Email: "owner@example.com", Role: domain.RoleUser},
		2: {ID: 2, Email: "other@example.com", Role: domain.RoleUser},
		3: {ID: 3, Email: "admin@example.com", Role: domain.RoleAdmin},
	}}
	brands := &fakeBrands{brands: map[int64]*domain.Brand{
		1: {ID: 1, OwnerID: 1, Name: "Aurora"},
		2: {ID: 2, OwnerID: 2, Name: "Borealis"},
	}}
	products := &fakeProducts{products: map[int64]*domain.Product{
		10: {ID: 10, BrandID: 1, Name: "Lamp"},
		20: {ID: 20, BrandID: 2, Name: "Desk"},
	}}
	return users, brands, products
}

func ownershipRouter(scope EntityScope, asUser int64, pattern string) *gin.Engine {
	users, brands, products := ownershipFixture()
	oc := NewOwnershipChecker(users, brands, products, testConfig())

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setCurrentUser(c, *users.users[asUser])
		c.Next()
	})
	router.GET(pattern, oc.RequireOwnership(scope), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestOwnership_BrandOwnerAllowed(t *testing.T) {
	router := ownershipRouter(BrandScoped, 1, "/analytics/brands/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_BrandNonOwnerDenied(t *testing.T) {
	router := ownershipRouter(BrandScoped, 2, "/analytics/brands/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/1", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_AdminBypassesEverything(t *testing.T) {
	router := ownershipRouter(BrandScoped, 3, "/analytics/brands/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_MissingBrand(t *testing.T) {
	router := ownershipRouter(BrandScoped, 1, "/analytics/brands/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnership_ProductResolvesToOwningBrand(t *testing.T) {
	router := ownershipRouter(ProductScoped, 1, "/analytics/products/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/products/10", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_ProductOfForeignBrand(t *testing.T) {
	router := ownershipRouter(ProductScoped, 1, "/analytics/products/:id")

	w := httptest.NewRecorder()
	// Product 20 exists but belongs to brand 2: ownership fails, not lookup.
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/products/20", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_MissingProduct(t *testing.T) {
	router := ownershipRouter(ProductScoped, 1, "/analytics/products/:id")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/products/99", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOwnership_ReportBrandQuery(t *testing.T) {
	router := ownershipRouter(ReportScoped, 1, "/analytics/reports")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports?entityType=brand&entityId=1", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_ReportProductQuery(t *testing.T) {
	router := ownershipRouter(ReportScoped, 2, "/analytics/reports")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports?entityType=product&entityId=20", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_SiteScopeNonAdmin(t *testing.T) {
	router := ownershipRouter(ReportScoped, 1, "/analytics/reports")

	// Denied even without an entityId: there is no ownership at site scope.
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports?entityType=site", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_SiteScopeAdmin(t *testing.T) {
	router := ownershipRouter(ReportScoped, 3, "/analytics/reports")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports?entityType=site", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_UnknownScopeFailsClosed(t *testing.T) {
	router := ownershipRouter(ReportScoped, 1, "/analytics/reports")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports?entityType=warehouse&entityId=1", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_NoEntityFailsClosed(t *testing.T) {
	router := ownershipRouter(ReportScoped, 1, "/analytics/reports")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/reports", nil))

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestOwnership_RoleChangeHonoredImmediately(t *testing.T) {
	users, brands, products := ownershipFixture()
	oc := NewOwnershipChecker(users, brands, products, testConfig())

	// The attached context still says role=user, but the directory has since
	// promoted the account. The refetch wins.
	stale := *users.users[1]
	users.users[1].Role = domain.RoleAdmin

	router := gin.New()
	router.Use(func(c *gin.Context) {
		setCurrentUser(c, stale)
		c.Next()
	})
	router.GET("/analytics/brands/:id", oc.RequireOwnership(BrandScoped), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestOwnership_NoIdentity(t *testing.T) {
	users, brands, products := ownershipFixture()
	oc := NewOwnershipChecker(users, brands, products, testConfig())

	router := gin.New()
	router.GET("/analytics/brands/:id", oc.RequireOwnership(BrandScoped), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/analytics/brands/1", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
