package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventdesk/internal/container"
	"github.com/joshua-takyi/eventdesk/internal/handlers"
	"github.com/joshua-takyi/eventdesk/internal/middleware"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const serviceName = "eventdesk-api"

// SetupRoutes configures all routes with the dependency container
func SetupRoutes(container *container.Container) *gin.Engine {
	if container.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = container.Config.MaxUploadBytes
	r.Use(cors.New(cors.Config{
		AllowOrigins:     container.Config.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Add middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(container.Logger))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler(container.Logger))
	r.Use(gin.Recovery())
	r.Use(middleware.MaxBodySize(container.Config.MaxUploadBytes))

	// Health and metrics
	r.GET("/", handlers.Health(serviceName))
	r.GET("/health/ready", handlers.Ready(container.Store, container.Logger))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	handlers.RegisterRecordRoutes[models.Event](r.Group("/events"), container.EventService, "Event")
	handlers.RegisterRecordRoutes[models.Attendee](r.Group("/attendees"), container.AttendeeService, "Attendee")
	handlers.RegisterRecordRoutes[models.Venue](r.Group("/venues"), container.VenueService, "Venue")
	handlers.RegisterRecordRoutes[models.Booking](r.Group("/bookings"), container.BookingService, "Booking")

	// Media uploads and latest-item streaming
	media := container.MediaService
	r.POST("/upload_event_poster/:event_id", handlers.UploadMedia(media, models.EventPoster))
	r.POST("/upload_promo_video/:event_id", handlers.UploadMedia(media, models.PromoVideo))
	r.POST("/upload_venue_photo/:venue_id", handlers.UploadMedia(media, models.VenuePhoto))

	r.GET("/event_poster/:event_id", handlers.StreamLatestMedia(media, models.EventPoster))
	r.GET("/promo_video/:event_id", handlers.StreamLatestMedia(media, models.PromoVideo))
	r.GET("/venue_photo/:venue_id", handlers.StreamLatestMedia(media, models.VenuePhoto))

	mediaRoutes := r.Group("/media")
	{
		mediaRoutes.GET("/:media_id", handlers.GetMedia(media))
		mediaRoutes.GET("/event/:event_id", handlers.ListMediaByLink(media, models.LinkEvent))
		mediaRoutes.GET("/venue/:venue_id", handlers.ListMediaByLink(media, models.LinkVenue))
	}

	return r
}
