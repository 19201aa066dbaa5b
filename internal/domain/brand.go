package domain

import "time"

type Brand struct {
	ID          int64      `json:"id"`
	OwnerID     int64      `json:"owner_id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	LogoURL     string     `json:"logo_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`

	Products []Product `json:"products,omitempty"`
}
