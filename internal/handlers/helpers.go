package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/middleware"
	"github.com/coderr-app/marketplace-api/internal/models"
)

func currentUserID(c *gin.Context) uint {
	return c.MustGet(middleware.ContextUserID).(uint)
}

// currentProfile loads the caller's profile. The role check happens per
// request so a stale token can never carry an outdated role.
func currentProfile(c *gin.Context, db *gorm.DB) (*models.Profile, bool) {
	userID := currentUserID(c)

	var profile models.Profile
	if err := db.Preload("User").
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.Forbidden(c, "no_profile", "Create a profile before using the marketplace.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_load_profile", "Could not load your profile.")
		return nil, false
	}

	return &profile, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return 0, false
	}
	return uint(id), true
}
