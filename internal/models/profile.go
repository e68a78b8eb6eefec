package models

import "time"

const (
	ProfileTypeCustomer = "customer"
	ProfileTypeBusiness = "business"
)

// Profile extends a User with marketplace-facing fields. Exactly one per
// user; Type is fixed at registration.
type Profile struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"uniqueIndex;not null" json:"user"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	FirstName    string `gorm:"size:255" json:"first_name"`
	LastName     string `gorm:"size:255" json:"last_name"`
	File         string `gorm:"size:255" json:"file"`
	Location     string `gorm:"size:100" json:"location"`
	Tel          string `gorm:"size:20" json:"tel"`
	Description  string `gorm:"size:500" json:"description"`
	WorkingHours string `gorm:"size:100" json:"working_hours"`
	Type         string `gorm:"size:10;not null" json:"type"`
	Email        string `gorm:"size:255" json:"email"`

	CreatedAt time.Time `json:"created_at"`
}
