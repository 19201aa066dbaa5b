package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"shopcart/internal/domain"

	"gorm.io/gorm"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Name         string    `gorm:"column:name"`
	Email        string    `gorm:"column:email;uniqueIndex"`
	Mobile       *string   `gorm:"column:mobile"`
	PasswordHash string    `gorm:"column:password_hash"`
	IsAdmin      bool      `gorm:"column:is_admin"`
	Role         string    `gorm:"column:role"`
	Blocked      bool      `gorm:"column:blocked"`
	RefreshToken *string   `gorm:"column:refresh_token"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// authProjection is the minimal column set the auth middleware needs. The
// refresh token and password hash are deliberately excluded.
var authProjection = []string{"id", "name", "email", "mobile", "is_admin", "role", "blocked"}

func toDomainUser(m userModel) *domain.User {
	var mobile, refresh string
	if m.Mobile != nil {
		mobile = *m.Mobile
	}
	if m.RefreshToken != nil {
		refresh = *m.RefreshToken
	}

	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		Mobile:       mobile,
		PasswordHash: m.PasswordHash,
		IsAdmin:      m.IsAdmin,
		Role:         domain.UserRole(m.Role),
		Blocked:      m.Blocked,
		RefreshToken: refresh,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// GetByID fetches a user with the minimal auth projection.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).Select(authProjection).First(&m, id)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainUser(m), nil
}

// GetByIDWithSession fetches a user including the persisted refresh token.
// Only the refresh path needs this wider projection.
func (r *UserRepository) GetByIDWithSession(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	cols := append(append([]string{}, authProjection...), "refresh_token")
	tx := r.db.WithContext(ctx).Select(cols).First(&m, id)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m userModel
	tx := r.db.WithContext(ctx).
		Where("LOWER(email) = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&m)
	if tx.Error != nil {
		return nil, mapNotFound(tx.Error)
	}
	return toDomainUser(m), nil
}

// SetRefreshToken overwrites the stored refresh token unconditionally. Any
// previously issued refresh token stops matching and its session dies; a user
// holds at most one live refresh token at a time.
func (r *UserRepository) SetRefreshToken(ctx context.Context, userID int64, token string) error {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", userID).
		Update("refresh_token", token)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceRefreshToken swaps the stored refresh token only if it still equals
// prev. The WHERE clause makes the read-compare-write atomic, so two
// concurrent rotations for the same user cannot both win against a stale
// value. Returns false when the stored value no longer matches.
func (r *UserRepository) ReplaceRefreshToken(ctx context.Context, userID int64, prev, next string) (bool, error) {
	tx := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ? AND refresh_token = ?", userID, prev).
		Update("refresh_token", next)
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}
