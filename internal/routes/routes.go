package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/coderr-app/marketplace-api/internal/audit"
	"github.com/coderr-app/marketplace-api/internal/config"
	"github.com/coderr-app/marketplace-api/internal/handlers"
	infraRepo "github.com/coderr-app/marketplace-api/internal/infra/repository"
	"github.com/coderr-app/marketplace-api/internal/middleware"
	"github.com/coderr-app/marketplace-api/internal/storage"
	ucOffer "github.com/coderr-app/marketplace-api/internal/usecase/offer"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ------------------------------
	// INFRA
	// ------------------------------
	store := storage.FromConfig(cfg)

	offerRepo := infraRepo.NewOfferGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ------------------------------
	// USE CASES: OFFERS
	// ------------------------------
	createOfferUC := ucOffer.NewCreateOffer(offerRepo, auditDispatcher)
	updateOfferUC := ucOffer.NewUpdateOffer(offerRepo, auditDispatcher)
	deleteOfferUC := ucOffer.NewDeleteOffer(offerRepo, auditDispatcher)

	// ------------------------------
	// HANDLERS
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg)
	profileHandler := handlers.NewProfileHandler(db, store)
	offerHandler := handlers.NewOfferHandler(db, store, createOfferUC, updateOfferUC, deleteOfferUC)
	orderHandler := handlers.NewOrderHandler(db, auditDispatcher)
	reviewHandler := handlers.NewReviewHandler(db, auditDispatcher)
	baseInfoHandler := handlers.NewBaseInfoHandler(db)

	// ------------------------------
	// CREDENTIAL RATE LIMITING
	// ------------------------------
	credentialLimit := func(name string) gin.HandlerFunc {
		if cfg.RedisURL == "" {
			return func(c *gin.Context) { c.Next() }
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("invalid REDIS_URL, rate limiting disabled")
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimit(redis.NewClient(opts), name, 10, time.Minute)
	}

	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC
		// ------------------------------
		api.POST("/registration", credentialLimit("registration"), authHandler.Register)
		api.POST("/login", credentialLimit("login"), authHandler.Login)

		api.GET("/offers", offerHandler.List)
		api.GET("/offerdetails/:id", offerHandler.GetDetail)
		api.GET("/base-info", baseInfoHandler.Get)

		// ------------------------------
		// AUTHENTICATED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/profile/:id", profileHandler.Get)
			secured.PATCH("/profile/:id", profileHandler.Update)
			secured.POST("/profile/:id/file", profileHandler.UploadFile)

			secured.GET("/profiles/business", profileHandler.ListBusiness)
			secured.GET("/profiles/customer", profileHandler.ListCustomer)

			secured.POST("/offers", offerHandler.Create)
			secured.GET("/offers/:id", offerHandler.Get)
			secured.PATCH("/offers/:id", offerHandler.Update)
			secured.DELETE("/offers/:id", offerHandler.Delete)
			secured.POST("/offers/:id/image", offerHandler.UploadImage)

			secured.GET("/orders", orderHandler.List)
			secured.POST("/orders", orderHandler.Create)
			secured.GET("/orders/:id", orderHandler.Get)
			secured.PATCH("/orders/:id", orderHandler.UpdateStatus)
			secured.DELETE("/orders/:id", orderHandler.Delete)

			secured.GET("/order-count/:business_user_id", orderHandler.CountInProgress)
			secured.GET("/completed-order-count/:business_user_id", orderHandler.CountCompleted)

			secured.GET("/reviews", reviewHandler.List)
			secured.POST("/reviews", reviewHandler.Create)
			secured.GET("/reviews/:id", reviewHandler.Get)
			secured.PATCH("/reviews/:id", reviewHandler.Update)
			secured.DELETE("/reviews/:id", reviewHandler.Delete)
		}
	}
}
