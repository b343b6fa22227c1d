package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/joshua-takyi/eventdesk/internal/helpers"
	"github.com/joshua-takyi/eventdesk/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var errStoreDown = errors.New("server selection error: no reachable servers")

// memRecordRepo keeps records in insertion order, standing in for one
// collection.
type memRecordRepo[T any, P models.Document[T]] struct {
	mu    sync.Mutex
	order []primitive.ObjectID
	docs  map[primitive.ObjectID]T
	calls int
	fail  error
}

func newMemRecordRepo[T any, P models.Document[T]]() *memRecordRepo[T, P] {
	return &memRecordRepo[T, P]{docs: make(map[primitive.ObjectID]T)}
}

func (m *memRecordRepo[T, P]) Create(_ context.Context, rec *T) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.fail != nil {
		return primitive.NilObjectID, m.fail
	}
	id := primitive.NewObjectID()
	P(rec).SetID(id)
	m.docs[id] = *rec
	m.order = append(m.order, id)
	return id, nil
}

func (m *memRecordRepo[T, P]) Get(_ context.Context, id primitive.ObjectID) (*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	rec, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id.Hex(), helpers.ErrNotFound)
	}
	return &rec, nil
}

func (m *memRecordRepo[T, P]) Replace(_ context.Context, id primitive.ObjectID, rec *T) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("record %s: %w", id.Hex(), helpers.ErrNotFound)
	}
	P(rec).SetID(id)
	m.docs[id] = *rec
	return nil
}

func (m *memRecordRepo[T, P]) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("record %s: %w", id.Hex(), helpers.ErrNotFound)
	}
	delete(m.docs, id)
	for i, o := range m.order {
		if o == id {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	return nil
}

func (m *memRecordRepo[T, P]) List(_ context.Context, limit int64) ([]*T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	out := make([]*T, 0)
	for _, id := range m.order {
		if int64(len(out)) >= limit {
			break
		}
		rec := m.docs[id]
		out = append(out, &rec)
	}
	return out, nil
}

// memMediaRepo mimics the media collection, including the latest-wins sort.
type memMediaRepo struct {
	mu    sync.Mutex
	items []models.Media
	fail  error
}

func (m *memMediaRepo) InsertMedia(_ context.Context, media *models.Media) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return primitive.NilObjectID, m.fail
	}
	media.ID = primitive.NewObjectID()
	stored := *media
	stored.Content = append([]byte(nil), media.Content...)
	m.items = append(m.items, stored)
	return media.ID, nil
}

func (m *memMediaRepo) GetMedia(_ context.Context, id primitive.ObjectID) (*models.Media, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, it := range m.items {
		if it.ID == id {
			found := it
			return &found, nil
		}
	}
	return nil, fmt.Errorf("media %s: %w", id.Hex(), helpers.ErrNotFound)
}

func (m *memMediaRepo) matching(linkField string, linkID primitive.ObjectID, kind models.MediaKind) []models.Media {
	var out []models.Media
	for i := len(m.items) - 1; i >= 0; i-- {
		it := m.items[i]
		if it.LinkField == linkField && it.LinkID == linkID && (kind == "" || it.MediaType == kind) {
			out = append(out, it)
		}
	}
	// newest insert first already; a stable sort keeps that for equal timestamps
	sort.SliceStable(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out
}

func (m *memMediaRepo) LatestMedia(_ context.Context, linkField string, linkID primitive.ObjectID, kind models.MediaKind) (*models.MediaContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	found := m.matching(linkField, linkID, kind)
	if len(found) == 0 {
		return nil, fmt.Errorf("%s: %w", kind, helpers.ErrNotFound)
	}
	it := found[0]
	return &models.MediaContent{
		MediaMeta: models.MediaMeta{
			ID:          it.ID,
			LinkField:   it.LinkField,
			LinkID:      it.LinkID,
			MediaType:   it.MediaType,
			Filename:    it.Filename,
			ContentType: it.ContentType,
			Size:        it.Size,
			UploadedAt:  it.UploadedAt,
		},
		Body: newTrackedBody(it.Content),
	}, nil
}

func (m *memMediaRepo) ListMediaByLink(_ context.Context, linkField string, linkID primitive.ObjectID, limit int64) ([]*models.MediaMeta, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*models.MediaMeta, 0)
	for _, it := range m.matching(linkField, linkID, "") {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, &models.MediaMeta{
			ID:          it.ID,
			LinkField:   it.LinkField,
			LinkID:      it.LinkID,
			MediaType:   it.MediaType,
			Filename:    it.Filename,
			ContentType: it.ContentType,
			Size:        it.Size,
			UploadedAt:  it.UploadedAt,
		})
	}
	return out, nil
}

func (m *memMediaRepo) EnsureMediaIndexes(context.Context) error { return nil }
