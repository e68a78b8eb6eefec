package offer

import (
	"context"

	"github.com/coderr-app/marketplace-api/internal/models"
)

type Repository interface {
	// GetWithDetails loads the offer and its ordered detail set.
	GetWithDetails(
		ctx context.Context,
		id uint,
	) (*models.Offer, error)

	// Create persists the offer and all supplied details in one
	// transaction.
	Create(
		ctx context.Context,
		o *models.Offer,
	) error

	// ApplyUpdate saves the offer's own fields and applies the
	// reconciliation plan atomically. Deleting a detail referenced by an
	// order aborts the whole transaction with a detail_protected error.
	ApplyUpdate(
		ctx context.Context,
		o *models.Offer,
		plan *Plan,
	) error

	// Delete removes the offer and its details, failing entirely when
	// any detail is referenced by an order.
	Delete(
		ctx context.Context,
		o *models.Offer,
	) error
}
