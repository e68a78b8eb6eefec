package dto

import (
	"time"

	"github.com/coderr-app/marketplace-api/internal/models"
)

type ProfileDTO struct {
	User         uint      `json:"user"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	File         string    `json:"file"`
	Location     string    `json:"location"`
	Tel          string    `json:"tel"`
	Description  string    `json:"description"`
	WorkingHours string    `json:"working_hours"`
	Type         string    `json:"type"`
	Email        string    `json:"email"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewProfileDTO(p *models.Profile) ProfileDTO {
	return ProfileDTO{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
		Email:        p.Email,
		CreatedAt:    p.CreatedAt,
	}
}

// BusinessProfileDTO is the reduced field set for the business listing.
type BusinessProfileDTO struct {
	User         uint   `json:"user"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	File         string `json:"file"`
	Location     string `json:"location"`
	Tel          string `json:"tel"`
	Description  string `json:"description"`
	WorkingHours string `json:"working_hours"`
	Type         string `json:"type"`
}

func NewBusinessProfileDTO(p *models.Profile) BusinessProfileDTO {
	return BusinessProfileDTO{
		User:         p.UserID,
		Username:     p.User.Username,
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		File:         p.File,
		Location:     p.Location,
		Tel:          p.Tel,
		Description:  p.Description,
		WorkingHours: p.WorkingHours,
		Type:         p.Type,
	}
}

// CustomerProfileDTO is the minimal field set for the customer listing.
type CustomerProfileDTO struct {
	User      uint   `json:"user"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	File      string `json:"file"`
	Type      string `json:"type"`
}

func NewCustomerProfileDTO(p *models.Profile) CustomerProfileDTO {
	return CustomerProfileDTO{
		User:      p.UserID,
		Username:  p.User.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		File:      p.File,
		Type:      p.Type,
	}
}
