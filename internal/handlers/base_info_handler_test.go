package handlers_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type baseInfoBody struct {
	ReviewCount          int64   `json:"review_count"`
	AverageRating        float64 `json:"average_rating"`
	BusinessProfileCount int64   `json:"business_profile_count"`
	OfferCount           int64   `json:"offer_count"`
}

func TestBaseInfoEmptyPlatform(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(http.MethodGet, "/api/base-info", "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var info baseInfoBody
	env.decode(w, &info)
	assert.Equal(t, int64(0), info.ReviewCount)
	assert.Equal(t, 0.0, info.AverageRating)
	assert.Equal(t, int64(0), info.BusinessProfileCount)
	assert.Equal(t, int64(0), info.OfferCount)
}

func TestBaseInfoCountsAndRoundedAverage(t *testing.T) {
	env := newTestEnv(t)
	business := env.register("bella", "business")
	env.register("bruno", "business")
	carl := env.register("carl", "customer")
	olga := env.register("olga", "customer")

	env.createOffer(business, threeTierOffer)

	env.createReview(carl, business.UserID, 4)
	env.createReview(olga, business.UserID, 3)

	w := env.do(http.MethodGet, "/api/base-info", "", "")
	require.Equal(t, http.StatusOK, w.Code)

	var info baseInfoBody
	env.decode(w, &info)
	assert.Equal(t, int64(2), info.ReviewCount)
	assert.Equal(t, 3.5, info.AverageRating)
	assert.Equal(t, int64(2), info.BusinessProfileCount)
	assert.Equal(t, int64(1), info.OfferCount)
}
