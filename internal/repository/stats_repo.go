package repository

import (
	"context"

	"gorm.io/gorm"
)

// StatsRepository serves the aggregate queries behind the analytics
// endpoints. Read-only.
type StatsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

type BrandStats struct {
	BrandID        int64 `json:"brand_id"`
	TotalProducts  int64 `json:"total_products"`
	ActiveProducts int64 `json:"active_products"`
	OutOfStock     int64 `json:"out_of_stock"`
}

type ProductStats struct {
	ProductID     int64   `json:"product_id"`
	BrandID       int64   `json:"brand_id"`
	Price         float64 `json:"price"`
	Stock         int     `json:"stock"`
	BrandProducts int64   `json:"brand_products"`
}

type SiteStats struct {
	TotalUsers    int64 `json:"total_users"`
	TotalBrands   int64 `json:"total_brands"`
	TotalProducts int64 `json:"total_products"`
	BlockedUsers  int64 `json:"blocked_users"`
}

func (r *StatsRepository) BrandStats(ctx context.Context, brandID int64) (*BrandStats, error) {
	stats := &BrandStats{BrandID: brandID}

	base := r.db.WithContext(ctx).Model(&productModel{}).
		Where("brand_id = ? AND deleted_at IS NULL", brandID)

	if err := base.Session(&gorm.Session{}).Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("active = ?", true).Count(&stats.ActiveProducts).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).Where("stock = 0").Count(&stats.OutOfStock).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *StatsRepository) ProductStats(ctx context.Context, productID int64) (*ProductStats, error) {
	var m productModel
	tx := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&m, productID)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}

	stats := &ProductStats{
		ProductID: m.ID,
		BrandID:   m.BrandID,
		Price:     m.Price,
		Stock:     m.Stock,
	}

	if err := r.db.WithContext(ctx).Model(&productModel{}).
		Where("brand_id = ? AND deleted_at IS NULL", m.BrandID).
		Count(&stats.BrandProducts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}

func (r *StatsRepository) SiteStats(ctx context.Context) (*SiteStats, error) {
	stats := &SiteStats{}

	if err := r.db.WithContext(ctx).Model(&userModel{}).Count(&stats.TotalUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&userModel{}).Where("blocked = ?", true).Count(&stats.BlockedUsers).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&brandModel{}).Where("deleted_at IS NULL").Count(&stats.TotalBrands).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Model(&productModel{}).Where("deleted_at IS NULL").Count(&stats.TotalProducts).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
