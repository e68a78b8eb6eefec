package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domainOffer "github.com/coderr-app/marketplace-api/internal/domain/offer"
	"github.com/coderr-app/marketplace-api/internal/dto"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/httpresp"
	"github.com/coderr-app/marketplace-api/internal/models"
	"github.com/coderr-app/marketplace-api/internal/storage"
	ucOffer "github.com/coderr-app/marketplace-api/internal/usecase/offer"
)

const defaultPageSize = 6

type OfferHandler struct {
	db    *gorm.DB
	store storage.Storage

	createUC *ucOffer.CreateOffer
	updateUC *ucOffer.UpdateOffer
	deleteUC *ucOffer.DeleteOffer
}

func NewOfferHandler(
	db *gorm.DB,
	store storage.Storage,
	createUC *ucOffer.CreateOffer,
	updateUC *ucOffer.UpdateOffer,
	deleteUC *ucOffer.DeleteOffer,
) *OfferHandler {
	return &OfferHandler{
		db:       db,
		store:    store,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// --------- Requests ---------

type OfferDetailPayload struct {
	ID                 *uint    `json:"id,omitempty"`
	Title              string   `json:"title"`
	Revisions          int      `json:"revisions"`
	DeliveryTimeInDays int      `json:"delivery_time_in_days"`
	Price              float64  `json:"price"`
	Features           []string `json:"features"`
	OfferType          string   `json:"offer_type"`
}

func (p OfferDetailPayload) toInput() domainOffer.DetailInput {
	return domainOffer.DetailInput{
		ID:                 p.ID,
		Title:              p.Title,
		Revisions:          p.Revisions,
		DeliveryTimeInDays: p.DeliveryTimeInDays,
		Price:              p.Price,
		Features:           p.Features,
		OfferType:          p.OfferType,
	}
}

type CreateOfferRequest struct {
	Title       string               `json:"title" binding:"required"`
	Image       string               `json:"image"`
	Description string               `json:"description"`
	Details     []OfferDetailPayload `json:"details" binding:"required"`
}

type UpdateOfferRequest struct {
	Title       *string               `json:"title,omitempty"`
	Image       *string               `json:"image,omitempty"`
	Description *string               `json:"description,omitempty"`
	Details     *[]OfferDetailPayload `json:"details,omitempty"`
}

// --------- List ---------

type offerListParams struct {
	creatorID       *uint
	minPrice        *float64
	maxDeliveryTime *int
	search          string
	ordering        string
	page            int
	pageSize        int
}

func parseOfferListParams(c *gin.Context) (offerListParams, error) {
	p := offerListParams{
		ordering: "-updated_at",
		page:     1,
		pageSize: defaultPageSize,
	}

	if v := c.Query("creator_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return p, httperr.ErrBusinessMsg("invalid_filter", "creator_id must be an integer")
		}
		uid := uint(id)
		p.creatorID = &uid
	}
	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return p, httperr.ErrBusinessMsg("invalid_filter", "min_price must be a number")
		}
		p.minPrice = &f
	}
	if v := c.Query("max_delivery_time"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, httperr.ErrBusinessMsg("invalid_filter", "max_delivery_time must be an integer")
		}
		p.maxDeliveryTime = &n
	}

	p.search = strings.ToLower(strings.TrimSpace(c.Query("search")))

	if v := c.Query("ordering"); v != "" {
		switch v {
		case "updated_at", "-updated_at", "min_price", "-min_price":
			p.ordering = v
		default:
			return p, httperr.ErrBusinessMsg("invalid_filter", "ordering must be updated_at or min_price")
		}
	}

	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, httperr.ErrBusinessMsg("invalid_filter", "page must be a positive integer")
		}
		p.page = n
	}
	if v := c.Query("page_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			return p, httperr.ErrBusinessMsg("invalid_filter", "page_size must be between 1 and 100")
		}
		p.pageSize = n
	}

	return p, nil
}

// base builds the filtered query. The per-offer minimum aggregates come
// from a grouped subquery so price/delivery filters apply to the offer's
// minimum, not to individual tiers.
func (p offerListParams) base(db *gorm.DB) *gorm.DB {
	agg := db.Model(&models.OfferDetail{}).
		Select("offer_id, MIN(price) AS min_price, MIN(delivery_time_in_days) AS min_delivery_time").
		Group("offer_id")

	q := db.Model(&models.Offer{}).
		Joins("JOIN (?) AS agg ON agg.offer_id = offers.id", agg)

	if p.creatorID != nil {
		q = q.Where("offers.user_id = ?", *p.creatorID)
	}
	if p.minPrice != nil {
		q = q.Where("agg.min_price >= ?", *p.minPrice)
	}
	if p.maxDeliveryTime != nil {
		q = q.Where("agg.min_delivery_time <= ?", *p.maxDeliveryTime)
	}
	if p.search != "" {
		like := "%" + p.search + "%"
		q = q.Where("LOWER(offers.title) LIKE ? OR LOWER(offers.description) LIKE ?", like, like)
	}

	return q
}

func (p offerListParams) orderExpr() string {
	switch p.ordering {
	case "updated_at":
		return "offers.updated_at ASC"
	case "-updated_at":
		return "offers.updated_at DESC"
	case "min_price":
		return "agg.min_price ASC"
	default:
		return "agg.min_price DESC"
	}
}

func (h *OfferHandler) List(c *gin.Context) {
	params, err := parseOfferListParams(c)
	if err != nil {
		code, msg, _ := httperr.BusinessCode(err)
		httperr.BadRequest(c, code, msg)
		return
	}

	var count int64
	if err := params.base(h.db).Count(&count).Error; err != nil {
		httperr.Internal(c, "failed_to_list_offers", "Could not list offers.")
		return
	}

	var offers []models.Offer
	if err := params.base(h.db).
		Select("offers.*").
		Order(params.orderExpr()).
		Limit(params.pageSize).
		Offset((params.page - 1) * params.pageSize).
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_type ASC")
		}).
		Preload("User").
		Find(&offers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_offers", "Could not list offers.")
		return
	}

	profiles := h.creatorProfiles(offers)

	results := make([]dto.OfferListItemDTO, 0, len(offers))
	for i := range offers {
		results = append(results, dto.NewOfferListItemDTO(c, &offers[i], profiles[offers[i].UserID]))
	}

	httpresp.OK(c, httpresp.NewPage(c, count, params.page, params.pageSize, results))
}

func (h *OfferHandler) creatorProfiles(offers []models.Offer) map[uint]*models.Profile {
	ids := make([]uint, 0, len(offers))
	seen := make(map[uint]bool, len(offers))
	for _, o := range offers {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}

	byUser := make(map[uint]*models.Profile, len(ids))
	if len(ids) == 0 {
		return byUser
	}

	var profiles []models.Profile
	if err := h.db.Preload("User").Where("user_id IN ?", ids).Find(&profiles).Error; err != nil {
		return byUser
	}
	for i := range profiles {
		byUser[profiles[i].UserID] = &profiles[i]
	}
	return byUser
}

// --------- Create ---------

func (h *OfferHandler) Create(c *gin.Context) {
	profile, ok := currentProfile(c, h.db)
	if !ok {
		return
	}
	if profile.Type != models.ProfileTypeBusiness {
		httperr.Forbidden(c, "not_a_business", "Only users with business-profiles are allowed to create an offer.")
		return
	}

	var req CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	details := make([]domainOffer.DetailInput, 0, len(req.Details))
	for _, d := range req.Details {
		details = append(details, d.toInput())
	}

	o, err := h.createUC.Execute(c.Request.Context(), ucOffer.CreateOfferInput{
		UserID:      profile.UserID,
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
		Details:     details,
	})
	if err != nil {
		writeOfferError(c, err)
		return
	}

	httpresp.Created(c, dto.NewOfferWriteResponseDTO(o))
}

// --------- Retrieve ---------

func (h *OfferHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var o models.Offer
	if err := h.db.
		Preload("Details", func(db *gorm.DB) *gorm.DB {
			return db.Order("offer_type ASC")
		}).
		Preload("User").
		First(&o, id).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "offer_not_found", "Offer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_offer", "Could not load the offer.")
		return
	}

	httpresp.OK(c, dto.NewOfferListItemDTO(c, &o, nil))
}

// --------- Update ---------

func (h *OfferHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := ucOffer.UpdateOfferInput{
		OfferID:     id,
		UserID:      currentUserID(c),
		Title:       req.Title,
		Image:       req.Image,
		Description: req.Description,
	}
	if req.Details != nil {
		in.DetailsSet = true
		for _, d := range *req.Details {
			in.Details = append(in.Details, d.toInput())
		}
	}

	o, err := h.updateUC.Execute(c.Request.Context(), in)
	if err != nil {
		writeOfferError(c, err)
		return
	}

	httpresp.OK(c, dto.NewOfferWriteResponseDTO(o))
}

// --------- Delete ---------

func (h *OfferHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	err := h.deleteUC.Execute(c.Request.Context(), ucOffer.DeleteOfferInput{
		OfferID: id,
		UserID:  currentUserID(c),
	})
	if err != nil {
		writeOfferError(c, err)
		return
	}

	httpresp.NoContent(c)
}

// --------- Image upload ---------

func (h *OfferHandler) UploadImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var o models.Offer
	if err := h.db.First(&o, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "offer_not_found", "Offer not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_offer", "Could not load the offer.")
		return
	}

	if o.UserID != currentUserID(c) {
		httperr.Forbidden(c, "not_offer_owner", "Only the owner may change this offer.")
		return
	}

	url, ok := saveUploadedImage(c, h.store, "image", "offers")
	if !ok {
		return
	}

	o.Image = url
	if err := h.db.Save(&o).Error; err != nil {
		httperr.Internal(c, "failed_to_update_offer", "Could not save the image.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"image": url})
}

// --------- Stand-alone detail ---------

func (h *OfferHandler) GetDetail(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var d models.OfferDetail
	if err := h.db.First(&d, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "detail_not_found", "Offer detail not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_detail", "Could not load the offer detail.")
		return
	}

	c.JSON(http.StatusOK, d)
}

// --------- Errors ---------

func writeOfferError(c *gin.Context, err error) {
	if err == gorm.ErrRecordNotFound {
		httperr.NotFound(c, "offer_not_found", "Offer not found.")
		return
	}

	code, msg, ok := httperr.BusinessCode(err)
	if !ok {
		httperr.Internal(c, "offer_error", "Could not process the offer.")
		return
	}

	switch code {
	case "not_offer_owner":
		httperr.Forbidden(c, code, msg)
	case "detail_protected":
		httperr.Conflict(c, code, msg)
	default:
		httperr.BadRequest(c, code, msg)
	}
}
