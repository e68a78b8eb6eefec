package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coderr-app/marketplace-api/internal/models"
)

type reviewBody struct {
	ID           uint   `json:"id"`
	BusinessUser uint   `json:"business_user"`
	Reviewer     uint   `json:"reviewer"`
	Rating       int    `json:"rating"`
	Description  string `json:"description"`
}

func (e *testEnv) createReview(acc account, businessUserID uint, rating int) reviewBody {
	e.t.Helper()

	body := fmt.Sprintf(`{"business_user": %d, "rating": %d, "description": "Great work"}`, businessUserID, rating)
	w := e.do(http.MethodPost, "/api/reviews", acc.Token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp reviewBody
	e.decode(w, &resp)
	return resp
}

func TestCreateReviewRequiresCustomerProfile(t *testing.T) {
	env := newTestEnv(t)
	bella := env.register("bella", "business")
	bruno := env.register("bruno", "business")

	w := env.do(http.MethodPost, "/api/reviews", bruno.Token,
		fmt.Sprintf(`{"business_user": %d, "rating": 5}`, bella.UserID))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "not_a_customer")
}

func TestCreateReviewOncePerBusiness(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	customer := env.register("carl", "customer")

	env.createReview(customer, business.UserID, 4)

	w := env.do(http.MethodPost, "/api/reviews", customer.Token,
		fmt.Sprintf(`{"business_user": %d, "rating": 5}`, business.UserID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already_reviewed")

	// A second customer may still review the same business.
	other := env.register("olga", "customer")
	env.createReview(other, business.UserID, 5)
}

func TestCreateReviewDuplicateHitsUniqueIndex(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	customer := env.register("carl", "customer")

	// Seed the pair straight into the database so the request below
	// conflicts on the unique index itself.
	require.NoError(t, env.db.Create(&models.Review{
		BusinessUserID: business.UserID,
		ReviewerID:     customer.UserID,
		Rating:         4,
	}).Error)

	w := env.do(http.MethodPost, "/api/reviews", customer.Token,
		fmt.Sprintf(`{"business_user": %d, "rating": 5}`, business.UserID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already_reviewed")

	var count int64
	env.db.Model(&models.Review{}).
		Where("business_user_id = ? AND reviewer_id = ?", business.UserID, customer.UserID).
		Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReviewValidatesRating(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	customer := env.register("carl", "customer")

	for _, rating := range []int{0, 6} {
		w := env.do(http.MethodPost, "/api/reviews", customer.Token,
			fmt.Sprintf(`{"business_user": %d, "rating": %d}`, business.UserID, rating))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestCreateReviewUnknownBusiness(t *testing.T) {
	env := newTestEnv(t)
	customer := env.register("carl", "customer")

	w := env.do(http.MethodPost, "/api/reviews", customer.Token, `{"business_user": 99999, "rating": 5}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "business_user_not_found")
}

func TestListReviewsFiltersAndOrdering(t *testing.T) {
	env := newTestEnv(t)
	bella := env.register("bella", "business")
	bruno := env.register("bruno", "business")
	carl := env.register("carl", "customer")
	olga := env.register("olga", "customer")

	env.createReview(carl, bella.UserID, 5)
	env.createReview(carl, bruno.UserID, 2)
	env.createReview(olga, bella.UserID, 3)

	w := env.do(http.MethodGet, fmt.Sprintf("/api/reviews?business_user_id=%d", bella.UserID), carl.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var reviews []reviewBody
	env.decode(w, &reviews)
	assert.Len(t, reviews, 2)

	w = env.do(http.MethodGet, fmt.Sprintf("/api/reviews?reviewer_id=%d", carl.UserID), carl.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	env.decode(w, &reviews)
	assert.Len(t, reviews, 2)

	w = env.do(http.MethodGet, "/api/reviews?ordering=rating", carl.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	env.decode(w, &reviews)
	require.Len(t, reviews, 3)
	assert.Equal(t, 2, reviews[0].Rating)
	assert.Equal(t, 5, reviews[2].Rating)
}

func TestUpdateReviewOnlyByReviewer(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	carl := env.register("carl", "customer")
	olga := env.register("olga", "customer")

	review := env.createReview(carl, business.UserID, 3)
	path := fmt.Sprintf("/api/reviews/%d", review.ID)

	w := env.do(http.MethodPatch, path, olga.Token, `{"rating": 1}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodPatch, path, carl.Token, `{"rating": 5, "description": "Even better"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var updated reviewBody
	env.decode(w, &updated)
	assert.Equal(t, 5, updated.Rating)
	assert.Equal(t, "Even better", updated.Description)
}

func TestDeleteReviewOnlyByReviewer(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	carl := env.register("carl", "customer")
	olga := env.register("olga", "customer")

	review := env.createReview(carl, business.UserID, 3)
	path := fmt.Sprintf("/api/reviews/%d", review.ID)

	w := env.do(http.MethodDelete, path, olga.Token, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodDelete, path, carl.Token, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(http.MethodGet, path, carl.Token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
