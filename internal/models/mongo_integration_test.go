package models

import (
	"bytes"
	"context"
	"io"
	"os"
	"testing"
	"time"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// setupTestRepo starts a throwaway MongoDB and returns a repo bound to a
// fresh database. Skipped unless TEST_INTEGRATION is set.
func setupTestRepo(t *testing.T) *MongodbRepo {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("skipping integration test: TEST_INTEGRATION not set")
	}

	ctx := context.Background()
	container, err := mongodb.Run(ctx, "mongo:7")
	require.NoError(t, err, "start mongodb container")
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(ctx) })

	repo := MongodbNewRepo(client, "eventdesk_it")
	require.NoError(t, repo.Ping(ctx))
	require.NoError(t, repo.EnsureMediaIndexes(ctx))
	return repo
}

func TestMongoRecordRepoLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	venues, err := RecordRepoFor[Venue](repo, VenuesColName)
	require.NoError(t, err)

	rec := Venue{ID: primitive.NewObjectID(), Name: "Hall", Address: "1 Quay Road", Capacity: 300}
	clientID := rec.ID
	id, err := venues.Create(ctx, &rec)
	require.NoError(t, err)
	assert.NotEqual(t, clientID, id, "store assigns the key")

	got, err := venues.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Hall", got.Name)

	replacement := Venue{Name: "Annex", Address: "2 Quay Road", Capacity: 40}
	require.NoError(t, venues.Replace(ctx, id, &replacement))
	got, err = venues.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "Annex", got.Name)
	assert.Equal(t, 40, got.Capacity)

	missing := primitive.NewObjectID()
	_, err = venues.Get(ctx, missing)
	assert.ErrorIs(t, err, helpers.ErrNotFound)
	assert.ErrorIs(t, venues.Replace(ctx, missing, &replacement), helpers.ErrNotFound)
	assert.ErrorIs(t, venues.Delete(ctx, missing), helpers.ErrNotFound)

	require.NoError(t, venues.Delete(ctx, id))
	_, err = venues.Get(ctx, id)
	assert.ErrorIs(t, err, helpers.ErrNotFound)
}

func TestMongoRecordRepoListLimit(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	bookings, err := RecordRepoFor[Booking](repo, BookingsColName)
	require.NoError(t, err)

	for i := 0; i < 12; i++ {
		rec := Booking{EventID: "e", AttendeeID: "a", TicketType: "general", Quantity: i + 1}
		_, err := bookings.Create(ctx, &rec)
		require.NoError(t, err)
	}

	list, err := bookings.List(ctx, 5)
	require.NoError(t, err)
	assert.Len(t, list, 5)

	list, err = bookings.List(ctx, ListLimit)
	require.NoError(t, err)
	assert.Len(t, list, 12)
}

func TestMongoMediaLatestAndList(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	eventID := primitive.NewObjectID()
	base := time.Now().UTC().Truncate(time.Millisecond)

	insert := func(kind MediaKind, body string, at time.Time) primitive.ObjectID {
		t.Helper()
		id, err := repo.InsertMedia(ctx, &Media{
			LinkField:   kind.LinkField(),
			LinkID:      eventID,
			MediaType:   kind,
			Filename:    body + ".bin",
			ContentType: kind.ContentPrefix() + "test",
			Size:        int64(len(body)),
			Content:     []byte(body),
			UploadedAt:  at,
		})
		require.NoError(t, err)
		return id
	}

	first := insert(EventPoster, "one", base)
	insert(EventPoster, "two", base.Add(time.Second))
	insert(EventPoster, "tie", base.Add(time.Second))
	insert(PromoVideo, "video", base.Add(2*time.Second))

	latest, err := repo.LatestMedia(ctx, LinkEvent, eventID, EventPoster)
	require.NoError(t, err)
	body, err := io.ReadAll(latest.Body)
	require.NoError(t, err)
	require.NoError(t, latest.Body.Close())
	assert.Equal(t, "tie", string(body))
	assert.Equal(t, "tie.bin", latest.Filename)
	assert.Equal(t, "image/test", latest.ContentType)

	_, err = repo.LatestMedia(ctx, LinkVenue, eventID, VenuePhoto)
	assert.ErrorIs(t, err, helpers.ErrNotFound)

	m, err := repo.GetMedia(ctx, first)
	require.NoError(t, err)
	assert.True(t, bytes.Equal([]byte("one"), m.Content))

	items, err := repo.ListMediaByLink(ctx, LinkEvent, eventID, ListLimit)
	require.NoError(t, err)
	require.Len(t, items, 4)
	assert.Equal(t, PromoVideo, items[0].MediaType)
	assert.Equal(t, first, items[3].ID)
}
