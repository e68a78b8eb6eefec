package offer

import (
	"context"

	"github.com/coderr-app/marketplace-api/internal/audit"
	domain "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type UpdateOfferInput struct {
	OfferID uint
	UserID  uint

	Title       *string
	Image       *string
	Description *string

	// Details carries the submitted tier collection; DetailsSet
	// distinguishes "leave the children untouched" from "reconcile
	// against an empty list".
	Details    []domain.DetailInput
	DetailsSet bool
}

type UpdateOffer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateOffer(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateOffer {
	return &UpdateOffer{
		repo:  repo,
		audit: audit,
	}
}

func (uc *UpdateOffer) Execute(
	ctx context.Context,
	in UpdateOfferInput,
) (*models.Offer, error) {

	o, err := uc.repo.GetWithDetails(ctx, in.OfferID)
	if err != nil {
		return nil, err
	}

	if o.UserID != in.UserID {
		return nil, httperr.ErrBusinessMsg("not_offer_owner", "only the owner may change this offer")
	}

	if in.Title != nil {
		o.Title = *in.Title
	}
	if in.Image != nil {
		o.Image = *in.Image
	}
	if in.Description != nil {
		o.Description = *in.Description
	}

	plan := &domain.Plan{}
	if in.DetailsSet {
		plan, err = domain.BuildPlan(o.ID, o.Details, in.Details)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.repo.ApplyUpdate(ctx, o, plan); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "offer_updated",
		Entity:   "offer",
		EntityID: &o.ID,
	})

	// Reload so the response reflects the reconciled detail set.
	return uc.repo.GetWithDetails(ctx, o.ID)
}
