package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/dto"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/models"
	"github.com/coderr-app/marketplace-api/internal/storage"
)

type ProfileHandler struct {
	db    *gorm.DB
	store storage.Storage
}

func NewProfileHandler(db *gorm.DB, store storage.Storage) *ProfileHandler {
	return &ProfileHandler{db: db, store: store}
}

// --------- Requests ---------

type UpdateProfileRequest struct {
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	Location     *string `json:"location,omitempty"`
	Tel          *string `json:"tel,omitempty"`
	Description  *string `json:"description,omitempty"`
	WorkingHours *string `json:"working_hours,omitempty"`
	Email        *string `json:"email,omitempty" binding:"omitempty,email"`
}

// --------- Handlers ---------

// Get returns the caller's own profile; anyone else's id yields 404, the
// profile simply is not visible to them.
func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, ok := h.ownProfile(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}

func (h *ProfileHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, ok := h.ownProfile(c, id)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.FirstName != nil {
		profile.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		profile.LastName = *req.LastName
	}
	if req.Location != nil {
		profile.Location = *req.Location
	}
	if req.Tel != nil {
		profile.Tel = *req.Tel
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.WorkingHours != nil {
		profile.WorkingHours = *req.WorkingHours
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			profile.Email = email

			// The account email mirrors the profile one.
			if err := tx.Model(&models.User{}).
				Where("id = ?", profile.UserID).
				Update("email", email).Error; err != nil {
				return err
			}
			profile.User.Email = email
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not update the profile.")
		return
	}

	c.JSON(http.StatusOK, dto.NewProfileDTO(profile))
}

func (h *ProfileHandler) ListBusiness(c *gin.Context) {
	profiles, ok := h.listByType(c, models.ProfileTypeBusiness)
	if !ok {
		return
	}

	out := make([]dto.BusinessProfileDTO, 0, len(profiles))
	for i := range profiles {
		out = append(out, dto.NewBusinessProfileDTO(&profiles[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProfileHandler) ListCustomer(c *gin.Context) {
	profiles, ok := h.listByType(c, models.ProfileTypeCustomer)
	if !ok {
		return
	}

	out := make([]dto.CustomerProfileDTO, 0, len(profiles))
	for i := range profiles {
		out = append(out, dto.NewCustomerProfileDTO(&profiles[i]))
	}
	c.JSON(http.StatusOK, out)
}

// UploadFile stores a processed profile image and saves its URL.
func (h *ProfileHandler) UploadFile(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, ok := h.ownProfile(c, id)
	if !ok {
		return
	}

	url, ok := saveUploadedImage(c, h.store, "file", "profiles")
	if !ok {
		return
	}

	profile.File = url
	if err := h.db.Save(profile).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "Could not save the file.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"file": url})
}

// --------- Internals ---------

func (h *ProfileHandler) ownProfile(c *gin.Context, id uint) (*models.Profile, bool) {
	userID := currentUserID(c)

	var profile models.Profile
	if err := h.db.Preload("User").
		Where("id = ? AND user_id = ?", id, userID).
		First(&profile).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "profile_not_found", "Profile not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_profile", "Could not load the profile.")
		return nil, false
	}

	return &profile, true
}

func (h *ProfileHandler) listByType(c *gin.Context, profileType string) ([]models.Profile, bool) {
	var profiles []models.Profile
	if err := h.db.Preload("User").
		Where("type = ?", profileType).
		Order("id ASC").
		Find(&profiles).Error; err != nil {

		httperr.Internal(c, "failed_to_list_profiles", "Could not list profiles.")
		return nil, false
	}
	return profiles, true
}

// saveUploadedImage reads a multipart image field, converts it to webp
// and writes it to storage. Shared with the offer image upload.
func saveUploadedImage(c *gin.Context, store storage.Storage, field, prefix string) (string, bool) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		httperr.BadRequest(c, "missing_file", fmt.Sprintf("A %q file is required.", field))
		return "", false
	}

	f, err := fileHeader.Open()
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the uploaded file.")
		return "", false
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		httperr.BadRequest(c, "invalid_file", "Could not read the uploaded file.")
		return "", false
	}

	processed, err := storage.ProcessImage(raw)
	if err != nil {
		httperr.BadRequest(c, "invalid_image", "The uploaded file is not a supported image.")
		return "", false
	}

	key := fmt.Sprintf("%s/%s.webp", prefix, uuid.NewString())
	url, err := store.Save(c.Request.Context(), key, "image/webp", bytes.NewReader(processed))
	if err != nil {
		httperr.Internal(c, "failed_to_store_file", "Could not store the file.")
		return "", false
	}

	return url, true
}
