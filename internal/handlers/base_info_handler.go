package handlers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type BaseInfoHandler struct {
	db *gorm.DB
}

func NewBaseInfoHandler(db *gorm.DB) *BaseInfoHandler {
	return &BaseInfoHandler{db: db}
}

// Get returns the public platform rollup. The average rating is rounded
// to one decimal and defaults to 0.0 when there are no reviews.
func (h *BaseInfoHandler) Get(c *gin.Context) {
	var reviewCount int64
	if err := h.db.Model(&models.Review{}).Count(&reviewCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Could not load platform stats.")
		return
	}

	var averageRating float64
	if reviewCount > 0 {
		var avg struct {
			Avg float64
		}
		if err := h.db.Model(&models.Review{}).
			Select("AVG(rating) AS avg").
			Scan(&avg).Error; err != nil {
			httperr.Internal(c, "failed_to_load_stats", "Could not load platform stats.")
			return
		}
		averageRating = math.Round(avg.Avg*10) / 10
	}

	var businessCount int64
	if err := h.db.Model(&models.Profile{}).
		Where("type = ?", models.ProfileTypeBusiness).
		Count(&businessCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Could not load platform stats.")
		return
	}

	var offerCount int64
	if err := h.db.Model(&models.Offer{}).Count(&offerCount).Error; err != nil {
		httperr.Internal(c, "failed_to_load_stats", "Could not load platform stats.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"review_count":           reviewCount,
		"average_rating":         averageRating,
		"business_profile_count": businessCount,
		"offer_count":            offerCount,
	})
}
