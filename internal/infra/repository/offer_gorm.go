package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	domain "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type OfferGormRepository struct {
	db *gorm.DB
}

func NewOfferGormRepository(db *gorm.DB) *OfferGormRepository {
	return &OfferGormRepository{db: db}
}

func (r *OfferGormRepository) GetWithDetails(
	ctx context.Context,
	id uint,
) (*models.Offer, error) {

	var o models.Offer
	if err := r.db.WithContext(ctx).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_type ASC")
		}).
		Preload("User").
		First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OfferGormRepository) Create(
	ctx context.Context,
	o *models.Offer,
) error {
	// gorm persists the nested details together with the offer; the
	// transaction keeps the whole aggregate all-or-nothing.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(o).Error
	})
}

func (r *OfferGormRepository) ApplyUpdate(
	ctx context.Context,
	o *models.Offer,
	plan *domain.Plan,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertDetailsUnreferenced(tx, plan.Delete); err != nil {
			return err
		}

		if err := tx.Omit("Details", "User").Save(o).Error; err != nil {
			return err
		}

		for i := range plan.Update {
			if err := tx.Save(&plan.Update[i]).Error; err != nil {
				return err
			}
		}
		for i := range plan.Create {
			if err := tx.Create(&plan.Create[i]).Error; err != nil {
				return err
			}
		}
		for i := range plan.Delete {
			if err := tx.Delete(&plan.Delete[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *OfferGormRepository) Delete(
	ctx context.Context,
	o *models.Offer,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := assertDetailsUnreferenced(tx, o.Details); err != nil {
			return err
		}

		if err := tx.Where("offer_id = ?", o.ID).
			Delete(&models.OfferDetail{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Offer{}, o.ID).Error
	})
}

// assertDetailsUnreferenced aborts the surrounding transaction when any
// of the given details is still referenced by an order. The database
// RESTRICT constraint is the backstop; checking here lets us name the
// blocking detail in the error.
func assertDetailsUnreferenced(tx *gorm.DB, details []models.OfferDetail) error {
	for _, d := range details {
		var count int64
		if err := tx.Model(&models.Order{}).
			Where("offer_detail_id = ?", d.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrBusinessMsg(
				"detail_protected",
				fmt.Sprintf("cannot delete detail #%d: it is referenced by existing orders", d.ID),
			)
		}
	}
	return nil
}

// Compile-time check
var _ domain.Repository = (*OfferGormRepository)(nil)
