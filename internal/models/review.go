package models

import "time"

// Review is a 1-5 rating plus comment. One per (business, reviewer) pair,
// enforced by the composite unique index.
type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BusinessUserID uint `gorm:"not null;uniqueIndex:idx_review_business_reviewer" json:"business_user"`
	BusinessUser   User `gorm:"foreignKey:BusinessUserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	ReviewerID uint `gorm:"not null;uniqueIndex:idx_review_business_reviewer" json:"reviewer"`
	Reviewer   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Rating      int    `gorm:"not null" json:"rating"`
	Description string `gorm:"size:1000" json:"description"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
