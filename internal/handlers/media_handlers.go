package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"github.com/joshua-takyi/eventdesk/internal/services"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const uploadField = "file"

type MediaService interface {
	Upload(ctx context.Context, in services.UploadInput) (primitive.ObjectID, error)
	Latest(ctx context.Context, kind models.MediaKind, linkID primitive.ObjectID) (*models.MediaContent, error)
	Get(ctx context.Context, id primitive.ObjectID) (*models.Media, error)
	ListByLink(ctx context.Context, linkField string, linkID primitive.ObjectID) ([]*models.MediaMeta, error)
}

var uploadNouns = map[models.MediaKind]string{
	models.EventPoster: "Event poster",
	models.PromoVideo:  "Promo video",
	models.VenuePhoto:  "Venue photo",
}

// readUpload pulls the multipart file out of the request.
func readUpload(c *gin.Context) (filename, contentType string, content []byte, err error) {
	header, err := c.FormFile(uploadField)
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return "", "", nil, fmt.Errorf("%w: upload exceeds %d bytes", helpers.ErrPayloadTooLarge, tooBig.Limit)
		}
		return "", "", nil, fmt.Errorf("%w: multipart field %q: %v", helpers.ErrInvalidInput, uploadField, err)
	}

	f, err := header.Open()
	if err != nil {
		return "", "", nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		return "", "", nil, fmt.Errorf("read upload: %w", err)
	}
	return header.Filename, header.Header.Get("Content-Type"), content, nil
}

// UploadMedia stores the multipart "file" field as a new upload of kind,
// linked to the id in the kind's path parameter.
func UploadMedia(s MediaService, kind models.MediaKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkID, err := pathID(c, kind.LinkField())
		if err != nil {
			_ = c.Error(err)
			return
		}

		filename, contentType, content, err := readUpload(c)
		if err != nil {
			_ = c.Error(err)
			return
		}

		id, err := s.Upload(c.Request.Context(), services.UploadInput{
			Kind:        kind,
			LinkID:      linkID,
			Filename:    filename,
			ContentType: contentType,
			Content:     content,
		})
		if err != nil {
			_ = c.Error(err)
			return
		}

		c.JSON(http.StatusCreated, models.CreatedResponse{
			Message: uploadNouns[kind] + " uploaded",
			ID:      id.Hex(),
		})
	}
}

// StreamLatestMedia writes the newest upload of kind for the linked record
// as the raw response body.
func StreamLatestMedia(s MediaService, kind models.MediaKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkID, err := pathID(c, kind.LinkField())
		if err != nil {
			_ = c.Error(err)
			return
		}

		latest, err := s.Latest(c.Request.Context(), kind, linkID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		defer latest.Body.Close()

		extra := map[string]string{}
		if disposition := mime.FormatMediaType("inline", map[string]string{"filename": latest.Filename}); disposition != "" {
			extra["Content-Disposition"] = disposition
		}
		c.DataFromReader(http.StatusOK, latest.Size, latest.ContentType, latest.Body, extra)
	}
}

func GetMedia(s MediaService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathID(c, "media_id")
		if err != nil {
			_ = c.Error(err)
			return
		}

		media, err := s.Get(c.Request.Context(), id)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.SuccessResponse(media, ""))
	}
}

// ListMediaByLink lists upload metadata for the record named by the
// linkField path parameter.
func ListMediaByLink(s MediaService, linkField string) gin.HandlerFunc {
	return func(c *gin.Context) {
		linkID, err := pathID(c, linkField)
		if err != nil {
			_ = c.Error(err)
			return
		}

		items, err := s.ListByLink(c.Request.Context(), linkField, linkID)
		if err != nil {
			_ = c.Error(err)
			return
		}
		c.JSON(http.StatusOK, models.ListResponse(items, len(items)))
	}
}
