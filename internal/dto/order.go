package dto

import (
	"time"

	"github.com/coderr-app/marketplace-api/internal/models"
)

// OrderDTO denormalizes the referenced detail so clients need no join.
type OrderDTO struct {
	ID                 uint               `json:"id"`
	CustomerUser       uint               `json:"customer_user"`
	BusinessUser       uint               `json:"business_user"`
	Title              string             `json:"title"`
	Revisions          int                `json:"revisions"`
	DeliveryTimeInDays int                `json:"delivery_time_in_days"`
	Price              float64            `json:"price"`
	Features           models.FeatureList `json:"features"`
	OfferType          string             `json:"offer_type"`
	Status             string             `json:"status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

func NewOrderDTO(o *models.Order) OrderDTO {
	features := o.OfferDetail.Features
	if features == nil {
		features = models.FeatureList{}
	}
	return OrderDTO{
		ID:                 o.ID,
		CustomerUser:       o.CustomerUserID,
		BusinessUser:       o.BusinessUserID,
		Title:              o.OfferDetail.Title,
		Revisions:          o.OfferDetail.Revisions,
		DeliveryTimeInDays: o.OfferDetail.DeliveryTimeInDays,
		Price:              o.OfferDetail.Price,
		Features:           features,
		OfferType:          o.OfferDetail.OfferType,
		Status:             o.Status,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}
