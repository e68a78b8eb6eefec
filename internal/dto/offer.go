package dto

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	domainOffer "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/models"
)

// DetailRef is the lightweight reference used by list/retrieve responses:
// the id plus a link to the stand-alone detail endpoint.
type DetailRef struct {
	ID  uint   `json:"id"`
	URL string `json:"url"`
}

func NewDetailRefs(c *gin.Context, details []models.OfferDetail) []DetailRef {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}

	refs := make([]DetailRef, 0, len(details))
	for _, d := range details {
		refs = append(refs, DetailRef{
			ID:  d.ID,
			URL: fmt.Sprintf("%s://%s/api/offerdetails/%d", scheme, c.Request.Host, d.ID),
		})
	}
	return refs
}

type UserDetails struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Username  string `json:"username"`
}

type OfferListItemDTO struct {
	ID              uint         `json:"id"`
	User            uint         `json:"user"`
	Title           string       `json:"title"`
	Image           string       `json:"image"`
	Description     string       `json:"description"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
	Details         []DetailRef  `json:"details"`
	MinPrice        float64      `json:"min_price"`
	MinDeliveryTime int          `json:"min_delivery_time"`
	UserDetails     *UserDetails `json:"user_details,omitempty"`
}

func NewOfferListItemDTO(c *gin.Context, o *models.Offer, creator *models.Profile) OfferListItemDTO {
	item := OfferListItemDTO{
		ID:              o.ID,
		User:            o.UserID,
		Title:           o.Title,
		Image:           o.Image,
		Description:     o.Description,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
		Details:         NewDetailRefs(c, o.Details),
		MinPrice:        domainOffer.MinPrice(o.Details),
		MinDeliveryTime: domainOffer.MinDeliveryTime(o.Details),
	}

	if creator != nil {
		item.UserDetails = &UserDetails{
			FirstName: creator.FirstName,
			LastName:  creator.LastName,
			Username:  creator.User.Username,
		}
	}
	return item
}

// OfferWriteResponseDTO echoes the created/updated offer with the full
// nested detail bodies.
type OfferWriteResponseDTO struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	Image       string               `json:"image"`
	Description string               `json:"description"`
	Details     []models.OfferDetail `json:"details"`
}

func NewOfferWriteResponseDTO(o *models.Offer) OfferWriteResponseDTO {
	details := o.Details
	if details == nil {
		details = []models.OfferDetail{}
	}
	return OfferWriteResponseDTO{
		ID:          o.ID,
		Title:       o.Title,
		Image:       o.Image,
		Description: o.Description,
		Details:     details,
	}
}
