package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/config"
	dbpkg "github.com/coderr-app/marketplace-api/internal/db"
	"github.com/coderr-app/marketplace-api/internal/models"
	"github.com/coderr-app/marketplace-api/internal/routes"
)

type testEnv struct {
	t      *testing.T
	db     *gorm.DB
	router *gin.Engine
}

// newTestEnv wires the full router against a private in-memory database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	cfg := &config.Config{
		JWTSecret: "test-secret",
		UploadDir: t.TempDir(),
	}

	r := gin.New()
	routes.RegisterRoutes(r, db, cfg)

	return &testEnv{t: t, db: db, router: r}
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	e.t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) decode(w *httptest.ResponseRecorder, out any) {
	e.t.Helper()
	require.NoError(e.t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
}

type account struct {
	Token  string
	UserID uint
}

func (e *testEnv) register(username, profileType string) account {
	e.t.Helper()

	body := fmt.Sprintf(
		`{"username":%q,"email":"%s@example.com","password":"password123","repeated_password":"password123","type":%q}`,
		username, username, profileType,
	)
	w := e.do(http.MethodPost, "/api/registration", "", body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token  string `json:"token"`
		UserID uint   `json:"user_id"`
	}
	e.decode(w, &resp)
	return account{Token: resp.Token, UserID: resp.UserID}
}

func (e *testEnv) profileID(acc account) uint {
	e.t.Helper()

	var profile models.Profile
	require.NoError(e.t, e.db.Where("user_id = ?", acc.UserID).First(&profile).Error)
	return profile.ID
}

const threeTierOffer = `{
	"title": "Logo design",
	"description": "A complete brand identity",
	"details": [
		{"title": "Basic logo", "revisions": 2, "delivery_time_in_days": 5, "price": 100, "features": ["Logo"], "offer_type": "basic"},
		{"title": "Standard logo", "revisions": 5, "delivery_time_in_days": 7, "price": 200, "features": ["Logo", "Flyer"], "offer_type": "standard"},
		{"title": "Premium logo", "revisions": 10, "delivery_time_in_days": 3, "price": 500, "features": ["Logo", "Flyer", "Homepage"], "offer_type": "premium"}
	]
}`

type offerResponse struct {
	ID      uint `json:"id"`
	Details []struct {
		ID                 uint     `json:"id"`
		Title              string   `json:"title"`
		Revisions          int      `json:"revisions"`
		DeliveryTimeInDays int      `json:"delivery_time_in_days"`
		Price              float64  `json:"price"`
		Features           []string `json:"features"`
		OfferType          string   `json:"offer_type"`
	} `json:"details"`
}

func (e *testEnv) createOffer(acc account, body string) offerResponse {
	e.t.Helper()

	w := e.do(http.MethodPost, "/api/offers", acc.Token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp offerResponse
	e.decode(w, &resp)
	return resp
}

func (e *testEnv) createOrder(acc account, detailID uint) uint {
	e.t.Helper()

	body := fmt.Sprintf(`{"offer_detail_id": %d}`, detailID)
	w := e.do(http.MethodPost, "/api/orders", acc.Token, body)
	require.Equal(e.t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID uint `json:"id"`
	}
	e.decode(w, &resp)
	return resp.ID
}

// detailID picks the detail with the given offer_type out of a created
// offer response.
func (o offerResponse) detailID(t *testing.T, offerType string) uint {
	t.Helper()
	for _, d := range o.Details {
		if d.OfferType == offerType {
			return d.ID
		}
	}
	t.Fatalf("no detail with offer_type %q", offerType)
	return 0
}
