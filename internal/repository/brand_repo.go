package repository

import (
	"context"
	"time"

	"shopcart/internal/domain"

	"gorm.io/gorm"
)

type BrandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) *BrandRepository {
	return &BrandRepository{db: db}
}

type brandModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	OwnerID     int64      `gorm:"column:owner_id;index"`
	Name        string     `gorm:"column:name"`
	Description *string    `gorm:"column:description"`
	LogoURL     *string    `gorm:"column:logo_url"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (brandModel) TableName() string { return "brands" }

func toDomainBrand(m brandModel) *domain.Brand {
	var description, logo string
	if m.Description != nil {
		description = *m.Description
	}
	if m.LogoURL != nil {
		logo = *m.LogoURL
	}

	return &domain.Brand{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Description: description,
		LogoURL:     logo,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}

func (r *BrandRepository) GetByID(ctx context.Context, id int64) (*domain.Brand, error) {
	var m brandModel
	tx := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&m, id)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainBrand(m), nil
}
