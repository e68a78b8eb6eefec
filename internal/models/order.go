package models

import "time"

// Order binds a customer to one specific offer detail. Both party IDs are
// captured at creation time and never change afterwards.
type Order struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CustomerUserID uint `gorm:"not null;index" json:"customer_user"`
	CustomerUser   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	BusinessUserID uint `gorm:"not null;index" json:"business_user"`
	BusinessUser   User `gorm:"foreignKey:BusinessUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	OfferDetailID uint        `gorm:"not null;index" json:"-"`
	OfferDetail   OfferDetail `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Status string `gorm:"size:20;default:'in_progress'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
