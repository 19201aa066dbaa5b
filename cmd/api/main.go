package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"shopcart/internal/config"
	"shopcart/internal/database"
	"shopcart/internal/middleware"
	"shopcart/internal/modules/analytics"
	"shopcart/internal/modules/auth"
	jwtsvc "shopcart/internal/pkg/jwt"
	"shopcart/internal/repository"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.LoadAuthRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repository.NewUserRepository(db)
	brandRepo := repository.NewBrandRepository(db)
	productRepo := repository.NewProductRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	codec := jwtsvc.New(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	authn := middleware.NewAuthenticator(codec, userRepo, cfg)
	ownership := middleware.NewOwnershipChecker(userRepo, brandRepo, productRepo, cfg)

	authService := auth.NewService(userRepo, codec)
	authHandler := auth.NewHandler(authService, authn)

	analyticsHandler := analytics.NewHandler(statsRepo, ownership)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(authn.Authenticate())
		{
			authHandler.RegisterProtectedRoutes(protected)
			analyticsHandler.RegisterRoutes(protected)
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
