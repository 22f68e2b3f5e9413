package httpserver

import (
	"errors"
	"log"
	"time"

	"storefront-tagging/internal/repository/settings"
	"storefront-tagging/internal/tagging"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps are the collaborators wired into the router.
type Deps struct {
	Tagging  *tagging.Service
	Settings settings.Repository

	// Admin auth. AdminPassword empty disables the admin surface.
	AdminUser     string
	AdminPassword string
	JWTSecret     string
	JWTTTL        time.Duration

	// Origins allowed to fetch tagging fragments cross-origin.
	ShopOrigins []string
}

// buildRouter wires storefront fragment routes and the admin settings API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Tagging == nil {
		return nil, errors.New("tagging service required")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(deps.ShopOrigins) == 1 && deps.ShopOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = deps.ShopOrigins
	}
	corsCfg.AllowMethods = []string{"GET", "POST"}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	router.GET("/pages/render", renderPageHandler(deps.Tagging))
	router.GET("/tagging/product/:id", productFragmentHandler(deps.Tagging))
	router.GET("/tagging/category/:slug", categoryFragmentHandler(deps.Tagging))
	router.GET("/tagging/cart/:id", cartFragmentHandler(deps.Tagging))
	router.GET("/tagging/customer/:id", customerFragmentHandler(deps.Tagging))
	router.POST("/hooks/order", orderHookHandler(deps.Tagging))

	if deps.Settings != nil && deps.AdminPassword != "" {
		tokens := newTokenManager(deps.JWTSecret, deps.JWTTTL, deps.AdminUser, deps.AdminPassword)
		admin := router.Group("/admin")
		admin.POST("/login", loginHandler(tokens))

		protected := admin.Group("")
		protected.Use(authRequired(tokens))
		protected.GET("/settings", getSettingsHandler(deps.Settings))
		protected.PUT("/settings", putSettingsHandler(deps.Settings))
	}

	return router, nil
}
