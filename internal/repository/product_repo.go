package repository

import (
	"context"
	"time"

	"shopcart/internal/domain"

	"gorm.io/gorm"
)

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

type productModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	BrandID     int64      `gorm:"column:brand_id;index"`
	Name        string     `gorm:"column:name"`
	Description *string    `gorm:"column:description"`
	Price       float64    `gorm:"column:price"`
	Stock       int        `gorm:"column:stock"`
	Active      bool       `gorm:"column:active"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
	DeletedAt   *time.Time `gorm:"column:deleted_at;index"`
}

func (productModel) TableName() string { return "products" }

func toDomainProduct(m productModel) *domain.Product {
	var description string
	if m.Description != nil {
		description = *m.Description
	}

	return &domain.Product{
		ID:          m.ID,
		BrandID:     m.BrandID,
		Name:        m.Name,
		Description: description,
		Price:       m.Price,
		Stock:       m.Stock,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
		DeletedAt:   m.DeletedAt,
	}
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var m productModel
	tx := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&m, id)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainProduct(m), nil
}
