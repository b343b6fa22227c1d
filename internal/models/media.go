package models

import (
	"fmt"
	"time"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaKind string

const (
	EventPoster MediaKind = "event_poster"
	PromoVideo  MediaKind = "promo_video"
	VenuePhoto  MediaKind = "venue_photo"
)

const (
	LinkEvent = "event_id"
	LinkVenue = "venue_id"
)

type mediaRule struct {
	linkField     string
	contentPrefix string
}

var mediaRules = map[MediaKind]mediaRule{
	EventPoster: {linkField: LinkEvent, contentPrefix: "image/"},
	PromoVideo:  {linkField: LinkEvent, contentPrefix: "video/"},
	VenuePhoto:  {linkField: LinkVenue, contentPrefix: "image/"},
}

func ParseMediaKind(s string) (MediaKind, error) {
	k := MediaKind(s)
	if _, ok := mediaRules[k]; !ok {
		return "", fmt.Errorf("%w: unknown media kind %q", helpers.ErrInvalidInput, s)
	}
	return k, nil
}

// LinkField names the record type a media kind hangs off.
func (k MediaKind) LinkField() string { return mediaRules[k].linkField }

// ContentPrefix is the content-type family uploads of this kind must carry.
func (k MediaKind) ContentPrefix() string { return mediaRules[k].contentPrefix }

// Media is one uploaded file. Content is stored inline and left out of
// listings.
type Media struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LinkField   string             `bson:"link_field" json:"link_field"`
	LinkID      primitive.ObjectID `bson:"link_id" json:"link_id"`
	MediaType   MediaKind          `bson:"media_type" json:"media_type"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`
	Content     []byte             `bson:"content,omitempty" json:"content,omitempty"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}

// MediaMeta is Media without the payload, decoded next to a streamed body.
type MediaMeta struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	LinkField   string             `bson:"link_field" json:"link_field"`
	LinkID      primitive.ObjectID `bson:"link_id" json:"link_id"`
	MediaType   MediaKind          `bson:"media_type" json:"media_type"`
	Filename    string             `bson:"filename" json:"filename"`
	ContentType string             `bson:"content_type" json:"content_type"`
	Size        int64              `bson:"size" json:"size"`
	UploadedAt  time.Time          `bson:"uploaded_at" json:"uploaded_at"`
}
