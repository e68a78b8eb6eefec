package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/coderr-app/marketplace-api/internal/config"
	dbpkg "github.com/coderr-app/marketplace-api/internal/db"
	"github.com/coderr-app/marketplace-api/internal/middleware"
	"github.com/coderr-app/marketplace-api/internal/routes"
)

func main() {

	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestLogger())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Locally stored uploads are served by the API itself; with S3 the
	// returned URLs point at the bucket directly.
	if cfg.S3Bucket == "" {
		r.Static("/uploads", cfg.UploadDir)
	}

	routes.RegisterRoutes(r, db, cfg)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
