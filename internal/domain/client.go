package domain

import (
	"time"
)

// GuardianInfo is required for clients younger than 18 at booking time.
// It is stored as a validated JSONB column, never as free text.
type GuardianInfo struct {
	FullName     string `json:"full_name" binding:"required"`
	Phone        string `json:"phone" binding:"required"`
	Relationship string `json:"relationship" binding:"required"`
}

type MedicalInfo struct {
	Allergies  []string `json:"allergies,omitempty"`
	Conditions []string `json:"conditions,omitempty"`
	Notes      string   `json:"notes,omitempty"`
}

type Client struct {
	ID        int64         `json:"id"`
	StoreID   int64         `json:"store_id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Phone     string        `json:"phone"`
	Email     string        `json:"email,omitempty"`
	BirthDate *time.Time    `json:"birth_date,omitempty"`
	Guardian  *GuardianInfo `json:"guardian,omitempty"`
	Medical   *MedicalInfo  `json:"medical,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// IsMinor reports whether the client is under 18 at the reference time.
// Unknown birth dates count as adult.
func (c *Client) IsMinor(at time.Time) bool {
	if c.BirthDate == nil {
		return false
	}
	return IsMinorAt(*c.BirthDate, at)
}

func IsMinorAt(birthDate, at time.Time) bool {
	eighteenth := birthDate.AddDate(18, 0, 0)
	return at.Before(eighteenth)
}

type CreateClientDTO struct {
	FirstName string        `json:"first_name" binding:"required"`
	LastName  string        `json:"last_name" binding:"required"`
	Phone     string        `json:"phone" binding:"required"`
	Email     string        `json:"email" binding:"omitempty,email"`
	BirthDate *time.Time    `json:"birth_date"`
	Guardian  *GuardianInfo `json:"guardian"`
	Medical   *MedicalInfo  `json:"medical"`
}

type UpdateClientDTO struct {
	FirstName *string       `json:"first_name"`
	LastName  *string       `json:"last_name"`
	Phone     *string       `json:"phone"`
	Email     *string       `json:"email" binding:"omitempty,email"`
	BirthDate *time.Time    `json:"birth_date"`
	Guardian  *GuardianInfo `json:"guardian"`
	Medical   *MedicalInfo  `json:"medical"`
}

type ClientFilter struct {
	StoreID *int64  `json:"store_id"`
	Search  *string `json:"search"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}
