package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/audit"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/httpresp"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type ReviewHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewReviewHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ReviewHandler {
	return &ReviewHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateReviewRequest struct {
	BusinessUser uint   `json:"business_user" binding:"required"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Description  string `json:"description"`
}

type UpdateReviewRequest struct {
	Rating      *int    `json:"rating,omitempty" binding:"omitempty,min=1,max=5"`
	Description *string `json:"description,omitempty"`
}

// --------- Handlers ---------

func (h *ReviewHandler) List(c *gin.Context) {
	q := h.db.Model(&models.Review{})

	if v := c.Query("business_user_id"); v != "" {
		q = q.Where("business_user_id = ?", v)
	}
	if v := c.Query("reviewer_id"); v != "" {
		q = q.Where("reviewer_id = ?", v)
	}

	switch c.Query("ordering") {
	case "rating":
		q = q.Order("rating ASC")
	case "updated_at":
		q = q.Order("updated_at ASC")
	default:
		q = q.Order("updated_at DESC")
	}

	var reviews []models.Review
	if err := q.Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "Could not list reviews.")
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	profile, ok := currentProfile(c, h.db)
	if !ok {
		return
	}
	if profile.Type != models.ProfileTypeCustomer {
		httperr.Forbidden(c, "not_a_customer", "Only customers are able to create reviews.")
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var business models.User
	if err := h.db.First(&business, req.BusinessUser).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "business_user_not_found", "The reviewed business user does not exist.")
			return
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load the business user.")
		return
	}

	review := models.Review{
		BusinessUserID: req.BusinessUser,
		ReviewerID:     profile.UserID,
		Rating:         req.Rating,
		Description:    req.Description,
	}

	// The composite unique index enforces one review per (business,
	// reviewer) pair; inserting and mapping the duplicate-key error keeps
	// the contract intact under concurrent submissions too.
	if err := h.db.Create(&review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			httperr.BadRequest(c, "already_reviewed", "You have already rated this business.")
			return
		}
		httperr.Internal(c, "failed_to_create_review", "Could not create the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &profile.UserID,
		Action:   "review_created",
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.Created(c, review)
}

func (h *ReviewHandler) Get(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Update(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}

	if review.ReviewerID != currentUserID(c) {
		httperr.Forbidden(c, "not_the_reviewer", "Only the original reviewer may change this review.")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Rating != nil {
		review.Rating = *req.Rating
	}
	if req.Description != nil {
		review.Description = *req.Description
	}

	if err := h.db.Save(review).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "Could not update the review.")
		return
	}

	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	review, ok := h.loadReview(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	if review.ReviewerID != userID {
		httperr.Forbidden(c, "not_the_reviewer", "Only the original reviewer may delete this review.")
		return
	}

	if err := h.db.Delete(&models.Review{}, review.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "Could not delete the review.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "review_deleted",
		Entity:   "review",
		EntityID: &review.ID,
	})

	httpresp.NoContent(c)
}

// --------- Internals ---------

func (h *ReviewHandler) loadReview(c *gin.Context) (*models.Review, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var review models.Review
	if err := h.db.First(&review, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "review_not_found", "Review not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_review", "Could not load the review.")
		return nil, false
	}

	return &review, true
}
