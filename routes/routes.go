package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"bluewave-backend/controllers"
	"bluewave-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
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

func SetupRouter(
	ac *controllers.AuthController,
	rc *controllers.RoomController,
	resc *controllers.ReservationController,
	cc *controllers.ContactController,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
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
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-User-Id", "X-User-Email", "X-User-Name"},
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
			auth.POST("/register", ac.Register)
			auth.POST("/login", ac.Login)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", rc.GetRooms)
			rooms.GET("/:id", rc.GetRoom)
			rooms.GET("/:id/availability", rc.GetAvailability)
		}
		api.GET("/availability", rc.GetAvailabilityByName)

		reservations := api.Group("/reservations")
		{
			reservations.POST("", resc.CreateReservation)
			reservations.GET("", resc.GetMyReservations)
		}

		api.POST("/contacts", cc.CreateContact)

		admin := api.Group("/admin")
		admin.Use(middleware.RequireAdmin())
		{
			adminRooms := admin.Group("/rooms")
			{
				adminRooms.POST("", rc.CreateRoom)
				adminRooms.PATCH("/:id", rc.UpdateRoom)
				adminRooms.PUT("/:id", rc.UpdateRoom)
				adminRooms.PUT("/:id/capacity", rc.SetCapacity)
				adminRooms.DELETE("/:id", rc.DeleteRoom)
			}

			adminReservations := admin.Group("/reservations")
			{
				adminReservations.GET("", resc.GetReservations)
				adminReservations.PATCH("/:id/status", resc.TransitionStatus)
				adminReservations.DELETE("/:id", resc.DeleteReservation)
			}

			adminContacts := admin.Group("/contacts")
			{
				adminContacts.GET("", cc.GetContacts)
				adminContacts.PATCH("/read-all", cc.MarkAllRead)
				adminContacts.PATCH("/:id/read", cc.MarkRead)
				adminContacts.POST("/:id/reply", cc.Reply)
				adminContacts.GET("/:id/replies", cc.GetReplies)
				adminContacts.DELETE("/:id", cc.DeleteContact)
			}
		}
	}

	return r
}
