package analytics

import (
	"context"

	"shopcart/internal/repository"
)

// StatsReader exposes the aggregate queries behind the report endpoints.
type StatsReader interface {
	BrandStats(ctx context.Context, brandID int64) (*repository.BrandStats, error)
	ProductStats(ctx context.Context, productID int64) (*repository.ProductStats, error)
	SiteStats(ctx context.Context) (*repository.SiteStats, error)
}
