package offer

import (
	"fmt"

	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
)

// DetailInput is one tier as submitted by a client. A nil ID means the
// tier is new; a non-nil ID must match an existing child of the offer.
type DetailInput struct {
	ID                 *uint
	Title              string
	Revisions          int
	DeliveryTimeInDays int
	Price              float64
	Features           []string
	OfferType          string
}

// Plan is the outcome of reconciling a submitted detail collection
// against the offer's current children. It is applied atomically by the
// repository.
type Plan struct {
	Update []models.OfferDetail
	Create []models.OfferDetail
	Delete []models.OfferDetail
}

// ValidateDetail enforces the numeric bounds and the tier tag.
func ValidateDetail(d DetailInput) error {
	if d.Title == "" {
		return httperr.ErrBusinessMsg("invalid_detail", "detail title must not be empty")
	}
	if d.Revisions < 1 {
		return httperr.ErrBusinessMsg("invalid_detail", "revisions must be at least 1")
	}
	if d.DeliveryTimeInDays < 1 {
		return httperr.ErrBusinessMsg("invalid_detail", "delivery_time_in_days must be at least 1")
	}
	if d.Price < 0 {
		return httperr.ErrBusinessMsg("invalid_detail", "price must not be negative")
	}
	switch d.OfferType {
	case models.OfferTypeBasic, models.OfferTypeStandard, models.OfferTypePremium:
	default:
		return httperr.ErrBusinessMsg("invalid_detail", fmt.Sprintf("unknown offer_type %q", d.OfferType))
	}
	return nil
}

// BuildPlan reconciles the submitted details against the existing ones:
//
//   - an input carrying the id of an existing child updates it in place
//   - an input carrying an unknown id fails the whole update
//   - an input without an id creates a new child
//   - existing children not mentioned in the input are deleted
//
// Inputs are validated before any matching happens, so a plan is only
// ever produced for a fully valid payload.
func BuildPlan(offerID uint, existing []models.OfferDetail, inputs []DetailInput) (*Plan, error) {
	for _, in := range inputs {
		if err := ValidateDetail(in); err != nil {
			return nil, err
		}
	}

	remaining := make(map[uint]models.OfferDetail, len(existing))
	for _, d := range existing {
		remaining[d.ID] = d
	}

	plan := &Plan{}
	for _, in := range inputs {
		if in.ID != nil {
			current, ok := remaining[*in.ID]
			if !ok {
				return nil, httperr.ErrBusinessMsg(
					"unknown_detail_id",
					fmt.Sprintf("detail %d does not belong to this offer", *in.ID),
				)
			}
			delete(remaining, *in.ID)

			current.Title = in.Title
			current.Revisions = in.Revisions
			current.DeliveryTimeInDays = in.DeliveryTimeInDays
			current.Price = in.Price
			current.Features = models.FeatureList(in.Features)
			current.OfferType = in.OfferType
			plan.Update = append(plan.Update, current)
			continue
		}

		plan.Create = append(plan.Create, models.OfferDetail{
			OfferID:            offerID,
			Title:              in.Title,
			Revisions:          in.Revisions,
			DeliveryTimeInDays: in.DeliveryTimeInDays,
			Price:              in.Price,
			Features:           models.FeatureList(in.Features),
			OfferType:          in.OfferType,
		})
	}

	for _, d := range existing {
		if _, unmentioned := remaining[d.ID]; unmentioned {
			plan.Delete = append(plan.Delete, d)
		}
	}

	return plan, nil
}
