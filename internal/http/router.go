package api

import (
	"log"
	stdhttp "net/http"

	"github.com/gin-gonic/gin"

	intconfig "automart/internal/config"
	h "automart/internal/http/handlers"
	"automart/internal/http/middleware"
)

func NewRouter(env intconfig.Env) *gin.Engine {
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.RequestLogger(), gin.Recovery(), middleware.CORS(env.CORSAllowedOrigins))

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/db-check", h.DBCheck)

		// Auth
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/password-reset", h.PasswordResetRequest)
		api.POST("/password-reset/confirm", h.PasswordResetConfirm)

		authed := api.Group("")
		authed.Use(middleware.Auth())
		{
			authed.GET("/user-details", h.UserDetails)

			// Garage
			vehicles := authed.Group("/vehicles")
			vehicles.GET("", h.ListVehicles)
			vehicles.POST("", h.CreateVehicle)
			vehicles.PUT("/:id", h.UpdateVehicle)
			vehicles.DELETE("/:id", h.DeleteVehicle)

			// Service catalog
			services := authed.Group("/services")
			services.GET("", h.ListServices)
			services.GET("/:id", h.GetService)
			services.POST("", middleware.RequireAdmin(), h.CreateService)
			services.PUT("/:id", middleware.RequireAdmin(), h.UpdateService)
			services.DELETE("/:id", middleware.RequireAdmin(), h.DeleteService)

			// Spare parts storefront
			parts := authed.Group("/spare-parts")
			parts.GET("", h.ListParts)
			parts.GET("/:id", h.GetPart)
			parts.POST("", middleware.RequireAdmin(), h.CreatePart)
			parts.PUT("/:id", middleware.RequireAdmin(), h.UpdatePart)
			parts.DELETE("/:id", middleware.RequireAdmin(), h.DeletePart)
			parts.POST("/:id/sell", middleware.RequireStaff(), h.SellPart)

			// Service bookings
			bookings := authed.Group("/bookings")
			bookings.GET("", h.ListBookings)
			bookings.POST("", h.CreateBooking)
			bookings.GET("/:id", h.GetBooking)
			bookings.POST("/:id/create_payment_intent", h.CreateBookingPaymentIntent)
			bookings.POST("/:id/verify_payment", h.VerifyBookingPayment)

			adminBookings := authed.Group("/admin-bookings", middleware.RequireStaff())
			adminBookings.POST("/:id/finalize_booking", h.FinalizeBooking)
			adminBookings.PUT("/:id", h.AdminUpdateBooking)

			// Part orders
			orders := authed.Group("/part-orders")
			orders.GET("", h.ListPartOrders)
			orders.POST("/checkout", h.CheckoutPart)
			orders.POST("/:id/verify_part_payment", h.VerifyPartPayment)
			orders.POST("/:id/cancel_order", h.CancelPartOrder)

			adminOrders := authed.Group("/admin-part-orders", middleware.RequireStaff())
			adminOrders.POST("/:id/update_status", h.AdminUpdateOrderStatus)
			adminOrders.GET("/stats", h.OrderStats)

			// Denting / painting estimates
			denting := authed.Group("/denting-requests")
			denting.GET("", h.ListDentingRequests)
			denting.POST("", h.CreateDentingRequest)
			denting.PATCH("/:id", middleware.RequireStaff(), h.ReviewDentingRequest)

			// Service history logbook
			history := authed.Group("/history")
			history.GET("", h.ListHistory)
			history.PUT("/:id", middleware.RequireStaff(), h.UpdateHistory)
			history.GET("/:id/invoice", h.HistoryInvoicePDF)

			// Staff console
			staff := authed.Group("/staff")
			staff.GET("/users", middleware.RequireStaff(), h.ListUsers)
			staff.POST("/users/:id/toggle-staff", middleware.RequireSuperuser(), h.ToggleStaff)
			staff.POST("/users/:id/toggle-role", middleware.RequireSuperuser(), h.ToggleRole)
		}
	}

	return r
}
