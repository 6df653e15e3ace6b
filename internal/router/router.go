// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hotelist/hotelist-backend/internal/config"
	"github.com/hotelist/hotelist-backend/internal/handlers"
	"github.com/hotelist/hotelist-backend/internal/middleware"
	"github.com/hotelist/hotelist-backend/internal/models"
	"github.com/hotelist/hotelist-backend/internal/services"
	"github.com/hotelist/hotelist-backend/internal/utils"
	"github.com/hotelist/hotelist-backend/internal/ws"
)

func Initialize(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// Notification hub: merchants join user:<id>, admins join the shared room.
	hub := ws.NewHub()
	go hub.Run()

	// Services
	authzService := services.NewAuthorizationService()
	authService := services.NewAuthService(db, cfg)
	hotelService := services.NewHotelService(db, authzService, hub)
	adminService := services.NewAdminService(db, authzService, hub)
	searchService := services.NewSearchService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	hotelHandler := handlers.NewHotelHandler(hotelService)
	adminHandler := handlers.NewAdminHandler(adminService, hotelService)
	publicHandler := handlers.NewPublicHandler(searchService, hotelService)

	utils.SetJWTSecret(cfg.JWT.SecretKey)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS())
	r.Use(middleware.GeneralRateLimit())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	r.GET("/ws", hub.HandleWebSocket)

	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Merchant surface
		hotels := v1.Group("/hotels")
		hotels.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleMerchant))
		{
			hotels.POST("", hotelHandler.CreateHotel)
			hotels.GET("", hotelHandler.ListMyHotels)
			hotels.GET("/:id", hotelHandler.GetHotel)
			hotels.PUT("/:id", hotelHandler.UpdateHotel)
			hotels.POST("/:id/submit", hotelHandler.SubmitForReview)
			hotels.GET("/:id/audits", hotelHandler.GetAuditTrail)
		}

		// Admin surface
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.RoleRequired(models.UserRoleAdmin))
		{
			admin.GET("/hotels", adminHandler.ListHotels)
			admin.POST("/hotels/:id/review", adminHandler.ReviewHotel)
			admin.POST("/hotels/:id/publish", adminHandler.PublishHotel)
			admin.POST("/hotels/:id/offline", adminHandler.OfflineHotel)
			admin.POST("/hotels/:id/restore", adminHandler.RestoreHotel)
		}

		// Public surface: published hotels only, except that an
		// authenticated owner or admin may open their own detail page.
		public := v1.Group("/public")
		public.Use(middleware.OptionalAuth())
		{
			public.GET("/hotels", publicHandler.ListHotels)
			public.GET("/hotels/:id", publicHandler.GetHotel)
		}

		// End-user search surface
		user := v1.Group("/user")
		{
			user.POST("/hotels/search", publicHandler.SearchHotels)
		}
	}

	return r
}
