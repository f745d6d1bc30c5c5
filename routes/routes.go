package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"totalhub-web/config"
	"totalhub-web/controllers"
	"totalhub-web/middleware"
)

func parseCorsOrigins(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controllers onto the public booking surface and the
// auth-guarded dashboard group.
func SetupRouter(
	settings *config.Settings,
	ac *controllers.AuthController,
	bc *controllers.BookingController,
	dc *controllers.DayPriceController,
	rc *controllers.ReservationController,
	pc *controllers.PaymentController,
	cc *controllers.ChannelSyncController,
	oc *controllers.OperatorController,
	gc *controllers.GuestController,
	auc *controllers.AdminUserController,
	roomc *controllers.RoomController,
	rtc *controllers.RoomTypeController,
	hc *controllers.HostelController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	origins := parseCorsOrigins(settings.CORSOrigins)
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/login", ac.Login)
			auth.POST("/logout", ac.Logout)
		}

		// Public booking flow
		api.GET("/availability", bc.SearchAvailability)
		hostels := api.Group("/hostels")
		{
			hostels.GET("/:slug", bc.GetHostel)
			hostels.GET("/:slug/rooms/:roomSlug", bc.GetRoom)
			hostels.GET("/:slug/preview/:roomId", bc.PricePreview)
			hostels.POST("/:slug/preview/:roomId/queue", bc.QueuePreview)
			hostels.POST("/:slug/reservations", bc.CreateReservation)
			hostels.GET("/:slug/reservations/lookup", bc.LookupReservation)
		}
		api.GET("/preview-sessions/:session", bc.PreviewResult)

		// Dashboard: every call carries the session bearer token
		dashboard := api.Group("/dashboard")
		dashboard.Use(middleware.RequireAuth(settings.JWTSecret))
		{
			dayPrices := dashboard.Group("/day-prices")
			{
				dayPrices.GET("", dc.GetRange)
				dayPrices.POST("", dc.UpsertSingle)
				dayPrices.POST("/conflicts", dc.CheckConflicts)
				dayPrices.POST("/bulk", dc.BulkUpsert)
				dayPrices.POST("/edits", dc.StageEdit)
				dayPrices.GET("/edits", dc.Edits)
			}

			reservations := dashboard.Group("/reservations")
			{
				reservations.GET("", rc.List)
				reservations.GET("/history", rc.History)
				reservations.GET("/calendar/hostel", rc.Calendar)
				reservations.GET("/occupancy", rc.Occupancy)
				reservations.GET("/income", rc.Income)
				reservations.GET("/:id", rc.Get)
				reservations.PATCH("/:id", rc.Update)
				reservations.POST("/:id/payments", pc.Add)
			}

			dashboard.GET("/payments", pc.List)

			channelSync := dashboard.Group("/channel-sync")
			{
				channelSync.GET("/logs", cc.Logs)
				channelSync.POST("/logs/:id/confirm", cc.Confirm)
			}

			operators := dashboard.Group("/operators")
			{
				operators.GET("", oc.List)
				operators.GET("/:id", oc.Get)
				operators.POST("", oc.Create)
				operators.PATCH("/:id", oc.Update)
				operators.DELETE("/:id", oc.Delete)
			}

			guests := dashboard.Group("/guests")
			{
				guests.GET("", gc.List)
				guests.GET("/:id", gc.Get)
				guests.GET("/:id/payments", gc.Payments)
				guests.POST("", gc.Create)
				guests.PUT("/:id", gc.Update)
			}

			adminUsers := dashboard.Group("/admin-users")
			{
				adminUsers.GET("", auc.List)
				adminUsers.POST("", auc.Create)
				adminUsers.PUT("/:id", auc.Update)
			}

			rooms := dashboard.Group("/rooms")
			{
				rooms.GET("", roomc.List)
				rooms.POST("", roomc.Create)
				rooms.PATCH("/:id", roomc.Update)
				rooms.PUT("/:id", roomc.Update)
				rooms.DELETE("/:id", roomc.Delete)
			}

			roomTypes := dashboard.Group("/room-types")
			{
				roomTypes.GET("", rtc.List)
				roomTypes.POST("", rtc.Create)
				roomTypes.DELETE("/:id", rtc.Delete)
			}

			hostelAdmin := dashboard.Group("/hostels")
			{
				hostelAdmin.GET("", hc.List)
				hostelAdmin.POST("", hc.Create)
				hostelAdmin.PATCH("/:id", hc.Update)
			}
		}
	}

	return r
}
