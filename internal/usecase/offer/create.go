package offer

import (
	"context"

	"github.com/coderr-app/marketplace-api/internal/audit"
	domain "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type CreateOfferInput struct {
	UserID uint

	Title       string
	Image       string
	Description string

	Details []domain.DetailInput
}

type CreateOffer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateOffer(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateOffer {
	return &CreateOffer{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateOffer) Execute(
	ctx context.Context,
	in CreateOfferInput,
) (*models.Offer, error) {

	if len(in.Details) == 0 {
		return nil, httperr.ErrBusinessMsg("invalid_details", "an offer needs at least one detail")
	}

	details := make([]models.OfferDetail, 0, len(in.Details))
	for _, d := range in.Details {
		if err := domain.ValidateDetail(d); err != nil {
			return nil, err
		}
		details = append(details, models.OfferDetail{
			Title:              d.Title,
			Revisions:          d.Revisions,
			DeliveryTimeInDays: d.DeliveryTimeInDays,
			Price:              d.Price,
			Features:           models.FeatureList(d.Features),
			OfferType:          d.OfferType,
		})
	}

	o := &models.Offer{
		UserID:      in.UserID,
		Title:       in.Title,
		Image:       in.Image,
		Description: in.Description,
		Details:     details,
	}

	if err := uc.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "offer_created",
		Entity:   "offer",
		EntityID: &o.ID,
	})

	return o, nil
}
