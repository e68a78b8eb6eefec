package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderr-app/marketplace-api/internal/models"
)

type offerPage struct {
	Count    int64   `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []struct {
		ID              uint    `json:"id"`
		User            uint    `json:"user"`
		Title           string  `json:"title"`
		MinPrice        float64 `json:"min_price"`
		MinDeliveryTime int     `json:"min_delivery_time"`
		Details         []struct {
			ID  uint   `json:"id"`
			URL string `json:"url"`
		} `json:"details"`
		UserDetails *struct {
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Username  string `json:"username"`
		} `json:"user_details"`
	} `json:"results"`
}

func TestCreateOfferRequiresBusinessProfile(t *testing.T) {
	env := newTestEnv(t)
	customer := env.register("carl", "customer")

	w := env.do(http.MethodPost, "/api/offers", customer.Token, threeTierOffer)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "business-profiles")
}

func TestCreateOfferRejectsEmptyDetails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")

	w := env.do(http.MethodPost, "/api/offers", business.Token, `{"title":"Empty","details":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOfferReturnsNestedDetails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")

	offer := env.createOffer(business, threeTierOffer)
	require.Len(t, offer.Details, 3)
	for _, d := range offer.Details {
		assert.NotZero(t, d.ID)
	}
	assert.ElementsMatch(t,
		[]string{"basic", "standard", "premium"},
		[]string{offer.Details[0].OfferType, offer.Details[1].OfferType, offer.Details[2].OfferType},
	)
}

func TestListOffersIsPublicAndAggregates(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	env.createOffer(business, threeTierOffer)

	w := env.do(http.MethodGet, "/api/offers", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var page offerPage
	env.decode(w, &page)
	require.Equal(t, int64(1), page.Count)
	require.Len(t, page.Results, 1)

	item := page.Results[0]
	// Cheapest is the basic tier, fastest is the premium one.
	assert.Equal(t, 100.0, item.MinPrice)
	assert.Equal(t, 3, item.MinDeliveryTime)
	assert.Len(t, item.Details, 3)
	assert.Contains(t, item.Details[0].URL, "/api/offerdetails/")
	require.NotNil(t, item.UserDetails)
	assert.Equal(t, "bella", item.UserDetails.Username)
}

func TestListOffersFilters(t *testing.T) {
	env := newTestEnv(t)
	bella := env.register("bella", "business")
	bruno := env.register("bruno", "business")

	env.createOffer(bella, threeTierOffer)
	env.createOffer(bruno, `{
		"title": "Slow translation",
		"description": "Documents",
		"details": [
			{"title": "Short text", "revisions": 1, "delivery_time_in_days": 14, "price": 400, "features": ["1 page"], "offer_type": "basic"}
		]
	}`)

	tests := []struct {
		name  string
		query string
		want  int64
	}{
		{"all", "", 2},
		{"creator", fmt.Sprintf("creator_id=%d", bruno.UserID), 1},
		{"min price excludes the cheap offer", "min_price=200", 1},
		{"min price keeps both", "min_price=50", 2},
		{"max delivery time", "max_delivery_time=5", 1},
		{"search title", "search=translation", 1},
		{"search description", "search=brand", 1},
		{"search misses", "search=plumbing", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(http.MethodGet, "/api/offers?"+tt.query, "", "")
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var page offerPage
			env.decode(w, &page)
			assert.Equal(t, tt.want, page.Count)
		})
	}
}

func TestListOffersOrderingByMinPrice(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")

	env.createOffer(business, threeTierOffer) // min price 100
	env.createOffer(business, `{
		"title": "Cheap fix",
		"details": [
			{"title": "Tiny", "revisions": 1, "delivery_time_in_days": 1, "price": 10, "features": ["Fix"], "offer_type": "basic"}
		]
	}`)

	w := env.do(http.MethodGet, "/api/offers?ordering=min_price", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page offerPage
	env.decode(w, &page)
	require.Len(t, page.Results, 2)
	assert.Equal(t, 10.0, page.Results[0].MinPrice)
	assert.Equal(t, 100.0, page.Results[1].MinPrice)
}

func TestListOffersPagination(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")

	for i := 0; i < 3; i++ {
		env.createOffer(business, fmt.Sprintf(`{
			"title": "Offer %d",
			"details": [
				{"title": "Tier", "revisions": 1, "delivery_time_in_days": 1, "price": %d, "features": ["F"], "offer_type": "basic"}
			]
		}`, i, (i+1)*10))
	}

	w := env.do(http.MethodGet, "/api/offers?page=1&page_size=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var page offerPage
	env.decode(w, &page)
	assert.Equal(t, int64(3), page.Count)
	assert.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	assert.Contains(t, *page.Next, "page=2")
	assert.Nil(t, page.Previous)

	w = env.do(http.MethodGet, "/api/offers?page=2&page_size=2", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	env.decode(w, &page)
	assert.Len(t, page.Results, 1)
	assert.Nil(t, page.Next)
	require.NotNil(t, page.Previous)
	assert.Contains(t, *page.Previous, "page=1")
}

func TestListOffersRejectsBadFilter(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/offers?min_price=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(http.MethodGet, "/api/offers?ordering=price", "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetOfferRequiresAuth(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	w := env.do(http.MethodGet, fmt.Sprintf("/api/offers/%d", offer.ID), "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetOfferDetailIsPublic(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	id := offer.detailID(t, "premium")
	w := env.do(http.MethodGet, fmt.Sprintf("/api/offerdetails/%d", id), "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "Premium logo")

	w = env.do(http.MethodGet, "/api/offerdetails/99999", "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOfferReconcilesDetails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	basicID := offer.detailID(t, "basic")

	// Keep basic (updated), add a new premium, drop standard and the old
	// premium by omission.
	body := fmt.Sprintf(`{
		"details": [
			{"id": %d, "title": "Basic reworked", "revisions": 3, "delivery_time_in_days": 4, "price": 120, "features": ["Logo", "Card"], "offer_type": "basic"},
			{"title": "Premium plus", "revisions": 12, "delivery_time_in_days": 2, "price": 900, "features": ["Everything"], "offer_type": "premium"}
		]
	}`, basicID)

	w := env.do(http.MethodPatch, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated offerResponse
	env.decode(w, &updated)
	require.Len(t, updated.Details, 2)

	var details []models.OfferDetail
	require.NoError(t, env.db.Where("offer_id = ?", offer.ID).Order("id ASC").Find(&details).Error)
	require.Len(t, details, 2)

	assert.Equal(t, basicID, details[0].ID)
	assert.Equal(t, "Basic reworked", details[0].Title)
	assert.Equal(t, 120.0, details[0].Price)

	assert.Greater(t, details[1].ID, offer.detailID(t, "premium"))
	assert.Equal(t, "Premium plus", details[1].Title)
}

func TestUpdateOfferUnknownDetailIDFails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	body := `{
		"details": [
			{"id": 99999, "title": "Ghost", "revisions": 1, "delivery_time_in_days": 1, "price": 10, "features": ["F"], "offer_type": "basic"}
		]
	}`
	w := env.do(http.MethodPatch, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown_detail_id")

	var count int64
	env.db.Model(&models.OfferDetail{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestUpdateOfferScalarOnlyKeepsDetails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	w := env.do(http.MethodPatch, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, `{"title":"New title"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated offerResponse
	env.decode(w, &updated)
	assert.Len(t, updated.Details, 3)

	var o models.Offer
	require.NoError(t, env.db.First(&o, offer.ID).Error)
	assert.Equal(t, "New title", o.Title)
}

func TestUpdateOfferRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	bella := env.register("bella", "business")
	bruno := env.register("bruno", "business")
	offer := env.createOffer(bella, threeTierOffer)

	w := env.do(http.MethodPatch, fmt.Sprintf("/api/offers/%d", offer.ID), bruno.Token, `{"title":"Hijacked"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_offer_owner")
}

func TestUpdateOfferOrderedDetailIsProtected(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	customer := env.register("carl", "customer")
	offer := env.createOffer(business, threeTierOffer)

	standardID := offer.detailID(t, "standard")
	env.createOrder(customer, standardID)

	// Omitting the ordered standard tier would delete it; the whole
	// update must be rejected with nothing applied.
	body := fmt.Sprintf(`{
		"title": "Should not stick",
		"details": [
			{"id": %d, "title": "Basic only", "revisions": 1, "delivery_time_in_days": 1, "price": 10, "features": ["F"], "offer_type": "basic"}
		]
	}`, offer.detailID(t, "basic"))

	w := env.do(http.MethodPatch, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "detail_protected")

	var count int64
	env.db.Model(&models.OfferDetail{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(3), count)

	var o models.Offer
	require.NoError(t, env.db.First(&o, offer.ID).Error)
	assert.Equal(t, "Logo design", o.Title)

	var basic models.OfferDetail
	require.NoError(t, env.db.First(&basic, offer.detailID(t, "basic")).Error)
	assert.Equal(t, "Basic logo", basic.Title)
}

func TestDeleteOffer(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	offer := env.createOffer(business, threeTierOffer)

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	env.db.Model(&models.Offer{}).Where("id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	env.db.Model(&models.OfferDetail{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteOfferWithOrderedDetailFails(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	customer := env.register("carl", "customer")
	offer := env.createOffer(business, threeTierOffer)

	env.createOrder(customer, offer.detailID(t, "basic"))

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/offers/%d", offer.ID), business.Token, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	var count int64
	env.db.Model(&models.OfferDetail{}).Where("offer_id = ?", offer.ID).Count(&count)
	assert.Equal(t, int64(3), count)
}

func TestDeleteOfferRequiresOwner(t *testing.T) {
	env := newTestEnv(t)
	bella := env.register("bella", "business")
	bruno := env.register("bruno", "business")
	offer := env.createOffer(bella, threeTierOffer)

	w := env.do(http.MethodDelete, fmt.Sprintf("/api/offers/%d", offer.ID), bruno.Token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
