package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/audit"
	domainOrder "github.com/coderr-app/marketplace-api/internal/domain/order"
	"github.com/coderr-app/marketplace-api/internal/dto"
	"github.com/coderr-app/marketplace-api/internal/httperr"
	"github.com/coderr-app/marketplace-api/internal/httpresp"
	"github.com/coderr-app/marketplace-api/internal/models"
)

type OrderHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewOrderHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *OrderHandler {
	return &OrderHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CreateOrderRequest struct {
	OfferDetailID uint `json:"offer_detail_id" binding:"required"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// --------- Handlers ---------

// List returns every order the caller is a party to, on either side.
func (h *OrderHandler) List(c *gin.Context) {
	userID := currentUserID(c)

	var orders []models.Order
	if err := h.db.Preload("OfferDetail").
		Where("customer_user_id = ? OR business_user_id = ?", userID, userID).
		Order("id ASC").
		Find(&orders).Error; err != nil {

		httperr.Internal(c, "failed_to_list_orders", "Could not list orders.")
		return
	}

	out := make([]dto.OrderDTO, 0, len(orders))
	for i := range orders {
		out = append(out, dto.NewOrderDTO(&orders[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) Create(c *gin.Context) {
	profile, ok := currentProfile(c, h.db)
	if !ok {
		return
	}
	if profile.Type != models.ProfileTypeCustomer {
		httperr.Forbidden(c, "not_a_customer", "Only customers may create orders.")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var order models.Order

	// The detail and its parent offer are read inside the transaction so
	// the business party is captured consistently with the write.
	err := h.db.Transaction(func(tx *gorm.DB) error {
		var detail models.OfferDetail
		if err := tx.First(&detail, req.OfferDetailID).Error; err != nil {
			return err
		}

		var parent models.Offer
		if err := tx.First(&parent, detail.OfferID).Error; err != nil {
			return err
		}

		order = models.Order{
			CustomerUserID: profile.UserID,
			BusinessUserID: parent.UserID,
			OfferDetailID:  detail.ID,
			OfferDetail:    detail,
			Status:         string(domainOrder.InitialStatus()),
		}
		return tx.Omit("OfferDetail").Create(&order).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.BadRequest(c, "detail_not_found", "The referenced offer detail does not exist.")
			return
		}
		httperr.Internal(c, "failed_to_create_order", "Could not create the order.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &profile.UserID,
		Action:   "order_created",
		Entity:   "order",
		EntityID: &order.ID,
	})

	httpresp.Created(c, dto.NewOrderDTO(&order))
}

// Get is restricted to the order's two parties; everyone else gets 403.
func (h *OrderHandler) Get(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	if userID != order.CustomerUserID && userID != order.BusinessUserID {
		httperr.Forbidden(c, "not_a_party", "You are not a party to this order.")
		return
	}

	c.JSON(http.StatusOK, dto.NewOrderDTO(order))
}

// UpdateStatus lets the business party move the order along the
// lifecycle. Any payload field other than status is ignored.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	userID := currentUserID(c)
	if userID != order.BusinessUserID {
		httperr.Forbidden(c, "not_the_business", "Only the business party may update the order status.")
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	from := domainOrder.Status(order.Status)
	to := domainOrder.Status(req.Status)
	if err := domainOrder.CanTransition(from, to); err != nil {
		code, msg, _ := httperr.BusinessCode(err)
		httperr.BadRequest(c, code, msg)
		return
	}

	order.Status = string(to)
	if err := h.db.Save(order).Error; err != nil {
		httperr.Internal(c, "failed_to_update_order", "Could not update the order.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "order_status_changed",
		Entity:   "order",
		EntityID: &order.ID,
		Metadata: gin.H{"from": string(from), "to": string(to)},
	})

	c.JSON(http.StatusOK, dto.NewOrderDTO(order))
}

// Delete is a staff-only operation; neither party may remove an order.
func (h *OrderHandler) Delete(c *gin.Context) {
	order, ok := h.loadOrder(c)
	if !ok {
		return
	}

	var caller models.User
	if err := h.db.First(&caller, currentUserID(c)).Error; err != nil {
		httperr.Internal(c, "failed_to_get_user", "Could not load the caller.")
		return
	}
	if !caller.IsStaff {
		httperr.Forbidden(c, "not_staff", "Only staff may delete orders.")
		return
	}

	if err := h.db.Delete(&models.Order{}, order.ID).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_order", "Could not delete the order.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &caller.ID,
		Action:   "order_deleted",
		Entity:   "order",
		EntityID: &order.ID,
	})

	httpresp.NoContent(c)
}

// CountInProgress and CountCompleted expose per-business counts to any
// authenticated caller; there is deliberately no ownership check.

func (h *OrderHandler) CountInProgress(c *gin.Context) {
	count, ok := h.countByStatus(c, string(domainOrder.StatusInProgress))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"order_count": count})
}

func (h *OrderHandler) CountCompleted(c *gin.Context) {
	count, ok := h.countByStatus(c, string(domainOrder.StatusCompleted))
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed_order_count": count})
}

// --------- Internals ---------

func (h *OrderHandler) loadOrder(c *gin.Context) (*models.Order, bool) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	var order models.Order
	if err := h.db.Preload("OfferDetail").First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "order_not_found", "Order not found.")
			return nil, false
		}
		httperr.Internal(c, "failed_to_get_order", "Could not load the order.")
		return nil, false
	}

	return &order, true
}

func (h *OrderHandler) countByStatus(c *gin.Context, status string) (int64, bool) {
	businessID, ok := parseIDParam(c, "business_user_id")
	if !ok {
		return 0, false
	}

	var user models.User
	if err := h.db.First(&user, businessID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "business_user_not_found", "Business user not found.")
			return 0, false
		}
		httperr.Internal(c, "failed_to_get_user", "Could not load the business user.")
		return 0, false
	}

	var count int64
	if err := h.db.Model(&models.Order{}).
		Where("business_user_id = ? AND status = ?", businessID, status).
		Count(&count).Error; err != nil {

		httperr.Internal(c, "failed_to_count_orders", "Could not count orders.")
		return 0, false
	}

	return count, true
}
