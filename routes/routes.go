package routes

import (
	"net/http"
	"time"

	"rentflow/handlers"
	"rentflow/middleware"
	"rentflow/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HealthReporter exposes the latest backend health snapshot.
type HealthReporter interface {
	Status() utils.HealthStatus
}

// RegisterAuthRoutes registers registration, login and profile endpoints.
func RegisterAuthRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", hb.Auth.RegisterHandler)
		authGroup.POST("/login", hb.Auth.LoginHandler)
		authGroup.POST("/logout", auth, hb.Auth.LogoutHandler)
		authGroup.GET("/me", auth, hb.Auth.MeHandler)
	}

	me := api.Group("/users/me", auth)
	{
		me.PUT("/preferences", hb.Auth.UpdatePreferencesHandler)
		me.PUT("/fcm-token", hb.Auth.UpdateFCMTokenHandler)
	}
}

// RegisterBillRoutes registers bill endpoints. Tenants only see their own bills.
func RegisterBillRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	bills := api.Group("/bills", auth)
	{
		bills.GET("", hb.Bills.ListBillsHandler)
		bills.GET("/:id", hb.Bills.GetBillHandler)
		bills.POST("", middleware.RequireAdmin(), hb.Bills.GenerateBillHandler)
		bills.DELETE("/:id", middleware.RequireAdmin(), hb.Bills.DeleteBillHandler)
	}
}

// RegisterPaymentRoutes registers slip submission and verification endpoints.
func RegisterPaymentRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	payments := api.Group("/payments", auth)
	{
		payments.POST("", hb.Payments.SubmitPaymentHandler)
		payments.GET("", hb.Payments.ListPaymentsHandler)
		payments.GET("/:id", hb.Payments.GetPaymentHandler)
		payments.GET("/:id/verification", hb.Payments.VerificationHandler)

		admin := payments.Group("", middleware.RequireAdmin())
		admin.PUT("/:id/ocr", hb.Payments.UpdateOCRHandler)
		admin.POST("/:id/approve", hb.Payments.ApproveHandler)
		admin.POST("/:id/reject", hb.Payments.RejectHandler)
	}
}

func RegisterNotificationRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	notifications := api.Group("/notifications", auth)
	{
		notifications.GET("", hb.Notifications.ListHandler)
		notifications.GET("/unread-count", hb.Notifications.UnreadCountHandler)
		notifications.PUT("/read-all", hb.Notifications.MarkAllReadHandler)
		notifications.PUT("/:id/read", hb.Notifications.MarkReadHandler)
	}
}

func RegisterMaintenanceRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	tickets := api.Group("/maintenance", auth)
	{
		tickets.POST("", hb.Maintenance.CreateHandler)
		tickets.GET("", hb.Maintenance.ListHandler)
		tickets.GET("/:id", hb.Maintenance.GetHandler)
		tickets.PUT("/:id/status", middleware.RequireAdmin(), hb.Maintenance.UpdateStatusHandler)
	}
}

// RegisterAdminRoutes sets up endpoints for admin operations.
func RegisterAdminRoutes(api *gin.RouterGroup, hb *handlers.HandlerBundle, auth gin.HandlerFunc) {
	adminGroup := api.Group("/admin", auth, middleware.RequireAdmin())
	{
		rooms := adminGroup.Group("/rooms")
		rooms.GET("", hb.Admin.ListRoomsHandler)
		rooms.POST("", hb.Admin.CreateRoomHandler)
		rooms.GET("/:id", hb.Admin.GetRoomHandler)
		rooms.PUT("/:id", hb.Admin.UpdateRoomHandler)
		rooms.DELETE("/:id", hb.Admin.DeleteRoomHandler)
		rooms.POST("/:id/assign", hb.Admin.AssignTenantHandler)
		rooms.POST("/:id/unassign", hb.Admin.UnassignTenantHandler)
		rooms.POST("/:id/agreement", hb.Admin.UploadAgreementHandler)
		rooms.GET("/:id/agreement", hb.Admin.AgreementURLHandler)

		adminGroup.GET("/tenants", hb.Admin.ListTenantsHandler)

		adminGroup.GET("/notification-templates/:type", hb.Admin.GetTemplateHandler)
		adminGroup.PUT("/notification-templates/:type", hb.Admin.SaveTemplateHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, health HealthReporter) {
	r.GET("/health", func(c *gin.Context) {
		status := health.Status()
		code := http.StatusOK
		if !status.Mongo || !status.Redis {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, auth gin.HandlerFunc, health HealthReporter) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r, health)

	api := r.Group("/api")
	RegisterAuthRoutes(api, hb, auth)
	RegisterBillRoutes(api, hb, auth)
	RegisterPaymentRoutes(api, hb, auth)
	RegisterNotificationRoutes(api, hb, auth)
	RegisterMaintenanceRoutes(api, hb, auth)
	RegisterAdminRoutes(api, hb, auth)
}
