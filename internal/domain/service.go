package domain

import (
	"time"
)

// Service is a bookable catalog entry. DurationMinutes drives both slot
// length and the end bound of a generated slot.
type Service struct {
	ID              int64     `json:"id"`
	StoreID         int64     `json:"store_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Category        string    `json:"category,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Price           float64   `json:"price"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type CreateServiceDTO struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Category        string  `json:"category"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,gt=0"`
	Price           float64 `json:"price" binding:"required,gte=0"`
}

type UpdateServiceDTO struct {
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	Category        *string  `json:"category"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,gt=0"`
	Price           *float64 `json:"price" binding:"omitempty,gte=0"`
	IsActive        *bool    `json:"is_active"`
}

type ServiceFilter struct {
	StoreID  *int64  `json:"store_id"`
	Category *string `json:"category"`
	Active   *bool   `json:"active"`
	Limit    int     `json:"limit"`
	Offset   int     `json:"offset"`
}
