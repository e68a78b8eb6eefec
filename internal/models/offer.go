package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

type Offer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	Title       string `gorm:"size:200;not null" json:"title"`
	Image       string `gorm:"size:255" json:"image"`
	Description string `gorm:"size:1000" json:"description"`

	Details []OfferDetail `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"details"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	OfferTypeBasic    = "basic"
	OfferTypeStandard = "standard"
	OfferTypePremium  = "premium"
)

// OfferDetail is one priced tier (basic/standard/premium) of an offer.
// Orders reference details directly, which protects them from deletion.
type OfferDetail struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OfferID uint `gorm:"not null;index" json:"-"`

	Title              string      `gorm:"size:200;not null" json:"title"`
	Revisions          int         `gorm:"not null" json:"revisions"`
	DeliveryTimeInDays int         `gorm:"not null" json:"delivery_time_in_days"`
	Price              float64     `gorm:"not null" json:"price"`
	Features           FeatureList `gorm:"type:text" json:"features"`
	OfferType          string      `gorm:"size:10;not null" json:"offer_type"`
}

// FeatureList stores an ordered list of feature strings as a JSON column.
type FeatureList []string

func (f FeatureList) Value() (driver.Value, error) {
	if f == nil {
		f = FeatureList{}
	}
	b, err := json.Marshal(f)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FeatureList) Scan(value any) error {
	if value == nil {
		*f = FeatureList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("features: unsupported column type")
	}

	if len(raw) == 0 {
		*f = FeatureList{}
		return nil
	}
	return json.Unmarshal(raw, f)
}
