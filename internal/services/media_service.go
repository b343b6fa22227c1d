package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const genericContentType = "application/octet-stream"

var (
	mediaUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_media_uploads_total",
		Help: "Media uploads by kind and outcome.",
	}, []string{"kind", "status"})

	mediaUploadBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_media_upload_bytes_total",
		Help: "Bytes stored by media uploads.",
	}, []string{"kind"})

	mediaStreamsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "eventdesk_media_streams_total",
		Help: "Latest-media lookups by kind and outcome.",
	}, []string{"kind", "status"})
)

type UploadInput struct {
	Kind        models.MediaKind
	LinkID      primitive.ObjectID
	Filename    string
	ContentType string
	Content     []byte
}

type MediaService struct {
	mediaRepo models.MediaRepo
	logger    *slog.Logger
	now       func() time.Time
}

func NewMediaService(mediaRepo models.MediaRepo, logger *slog.Logger) *MediaService {
	return &MediaService{
		mediaRepo: mediaRepo,
		logger:    logger.With(slog.String("component", "media_service")),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ResolveContentType returns the declared type, or one sniffed from content
// when the client sent nothing useful.
func ResolveContentType(declared string, content []byte) string {
	ct := strings.TrimSpace(declared)
	if ct == "" || strings.EqualFold(ct, genericContentType) {
		return mimetype.Detect(content).String()
	}
	return ct
}

// CheckContentType fails with ErrInvalidMediaType unless contentType belongs
// to the family required by kind.
func CheckContentType(kind models.MediaKind, contentType string) error {
	prefix := kind.ContentPrefix()
	if prefix == "" {
		return fmt.Errorf("%w: unknown media kind %q", helpers.ErrInvalidInput, kind)
	}
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), prefix) {
		return fmt.Errorf("%w: %s requires %s* content, got %q", helpers.ErrInvalidMediaType, kind, prefix, contentType)
	}
	return nil
}

// cleanFilename keeps only the base name. It does not sanitize: filenames are
// stored as metadata and never reach a query.
func cleanFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}
	return name
}

// Upload stores one file for an event or venue. Nothing is deduplicated;
// every call adds a document and the newest one wins on Latest.
func (ms *MediaService) Upload(ctx context.Context, in UploadInput) (primitive.ObjectID, error) {
	if _, err := models.ParseMediaKind(string(in.Kind)); err != nil {
		return primitive.NilObjectID, err
	}
	if in.LinkID.IsZero() {
		return primitive.NilObjectID, fmt.Errorf("%w: empty %s", helpers.ErrMalformedIdentifier, in.Kind.LinkField())
	}

	contentType := ResolveContentType(in.ContentType, in.Content)
	if err := CheckContentType(in.Kind, contentType); err != nil {
		mediaUploadsTotal.WithLabelValues(string(in.Kind), "rejected").Inc()
		return primitive.NilObjectID, err
	}

	media := &models.Media{
		LinkField:   in.Kind.LinkField(),
		LinkID:      in.LinkID,
		MediaType:   in.Kind,
		Filename:    cleanFilename(in.Filename),
		ContentType: contentType,
		Size:        int64(len(in.Content)),
		Content:     in.Content,
		UploadedAt:  ms.now(),
	}

	id, err := ms.mediaRepo.InsertMedia(ctx, media)
	if err != nil {
		mediaUploadsTotal.WithLabelValues(string(in.Kind), "error").Inc()
		return primitive.NilObjectID, fmt.Errorf("failed to store %s: %w", in.Kind, err)
	}

	mediaUploadsTotal.WithLabelValues(string(in.Kind), "ok").Inc()
	mediaUploadBytes.WithLabelValues(string(in.Kind)).Add(float64(media.Size))
	ms.logger.Debug("media stored",
		"id", id.Hex(),
		"kind", in.Kind,
		"link_id", in.LinkID.Hex(),
		"size", media.Size,
	)
	return id, nil
}

// Latest returns the most recent upload of kind for linkID. The caller owns
// the returned Body and must close it.
func (ms *MediaService) Latest(ctx context.Context, kind models.MediaKind, linkID primitive.ObjectID) (*models.MediaContent, error) {
	if _, err := models.ParseMediaKind(string(kind)); err != nil {
		return nil, err
	}
	if linkID.IsZero() {
		return nil, fmt.Errorf("%w: empty %s", helpers.ErrMalformedIdentifier, kind.LinkField())
	}

	content, err := ms.mediaRepo.LatestMedia(ctx, kind.LinkField(), linkID, kind)
	if err != nil {
		status := "error"
		if errors.Is(err, helpers.ErrNotFound) {
			status = "not_found"
		}
		mediaStreamsTotal.WithLabelValues(string(kind), status).Inc()
		return nil, err
	}
	mediaStreamsTotal.WithLabelValues(string(kind), "ok").Inc()
	return content, nil
}

func (ms *MediaService) Get(ctx context.Context, id primitive.ObjectID) (*models.Media, error) {
	if id.IsZero() {
		return nil, fmt.Errorf("%w: empty media id", helpers.ErrMalformedIdentifier)
	}
	return ms.mediaRepo.GetMedia(ctx, id)
}

// ListByLink returns the metadata of every upload for an event or venue,
// newest first.
func (ms *MediaService) ListByLink(ctx context.Context, linkField string, linkID primitive.ObjectID) ([]*models.MediaMeta, error) {
	if linkField != models.LinkEvent && linkField != models.LinkVenue {
		return nil, fmt.Errorf("%w: unknown link field %q", helpers.ErrInvalidInput, linkField)
	}
	if linkID.IsZero() {
		return nil, fmt.Errorf("%w: empty %s", helpers.ErrMalformedIdentifier, linkField)
	}
	return ms.mediaRepo.ListMediaByLink(ctx, linkField, linkID, models.ListLimit)
}
