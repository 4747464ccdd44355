package domain

import (
	"time"
)

type Store struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Timezone  string    `json:"timezone"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location resolves the store timezone, falling back to UTC when the stored
// name is empty or unknown. "Today" and "now" comparisons in availability are
// always made in this location.
func (s *Store) Location() *time.Location {
	if s.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

type CreateStoreDTO struct {
	Name     string `json:"name" binding:"required"`
	Slug     string `json:"slug" binding:"required"`
	Timezone string `json:"timezone" binding:"required"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
}

type UpdateStoreDTO struct {
	Name     *string `json:"name"`
	Timezone *string `json:"timezone"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
}
