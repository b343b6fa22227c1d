package container

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/joshua-takyi/eventdesk/internal/config"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"github.com/joshua-takyi/eventdesk/internal/services"
	"go.mongodb.org/mongo-driver/mongo"
)

type (
	EventService    = services.RecordService[models.Event, *models.Event]
	AttendeeService = services.RecordService[models.Attendee, *models.Attendee]
	VenueService    = services.RecordService[models.Venue, *models.Venue]
	BookingService  = services.RecordService[models.Booking, *models.Booking]
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Container holds all application dependencies
type Container struct {
	Config          *config.Config
	Logger          *slog.Logger
	MongoDBClient   *mongo.Client
	Store           Pinger
	EventService    *EventService
	AttendeeService *AttendeeService
	VenueService    *VenueService
	BookingService  *BookingService
	MediaService    *services.MediaService
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *slog.Logger, mongoDBClient *mongo.Client) (*Container, error) {
	// Initialize repositories
	mdb := models.MongodbNewRepo(mongoDBClient, cfg.MongoDBDatabase)

	events, err := models.RecordRepoFor[models.Event](mdb, models.EventsColName)
	if err != nil {
		return nil, fmt.Errorf("events repo: %w", err)
	}
	attendees, err := models.RecordRepoFor[models.Attendee](mdb, models.AttendeesColName)
	if err != nil {
		return nil, fmt.Errorf("attendees repo: %w", err)
	}
	venues, err := models.RecordRepoFor[models.Venue](mdb, models.VenuesColName)
	if err != nil {
		return nil, fmt.Errorf("venues repo: %w", err)
	}
	bookings, err := models.RecordRepoFor[models.Booking](mdb, models.BookingsColName)
	if err != nil {
		return nil, fmt.Errorf("bookings repo: %w", err)
	}

	return &Container{
		Config:          cfg,
		Logger:          logger,
		MongoDBClient:   mongoDBClient,
		Store:           mdb,
		EventService:    services.NewRecordService[models.Event](models.EventsColName, events),
		AttendeeService: services.NewRecordService[models.Attendee](models.AttendeesColName, attendees),
		VenueService:    services.NewRecordService[models.Venue](models.VenuesColName, venues),
		BookingService:  services.NewRecordService[models.Booking](models.BookingsColName, bookings),
		MediaService:    services.NewMediaService(mdb, logger),
	}, nil
}
