package offer

import (
	"context"

	"github.com/coderr-app/marketplace-api/internal/audit"
	domain "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/httperr"
)

type DeleteOfferInput struct {
	OfferID uint
	UserID  uint
}

type DeleteOffer struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteOffer(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteOffer {
	return &DeleteOffer{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteOffer) Execute(
	ctx context.Context,
	in DeleteOfferInput,
) error {

	o, err := uc.repo.GetWithDetails(ctx, in.OfferID)
	if err != nil {
		return err
	}

	if o.UserID != in.UserID {
		return httperr.ErrBusinessMsg("not_offer_owner", "only the owner may delete this offer")
	}

	if err := uc.repo.Delete(ctx, o); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "offer_deleted",
		Entity:   "offer",
		EntityID: &in.OfferID,
	})

	return nil
}
