package venue_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/internal/params"
	"github.com/GGP1/pinpoint/internal/ulid"
	"github.com/GGP1/pinpoint/model"
	"github.com/GGP1/pinpoint/service/venue"
	"github.com/GGP1/pinpoint/test"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
)

var (
	venueSv     venue.Service
	db          *sql.DB
	ctx         = context.Background()
	cacheClient cache.Client
)

func TestMain(m *testing.M) {
	test.Main(m, func(s *sql.DB, _ *redis.Client, c cache.Client) {
		db = s
		cacheClient = c
		venueSv = venue.NewService(s, c)
	}, test.Postgres, test.Memcached)
}

func TestCreate(t *testing.T) {
	venueID := ulid.NewString()

	t.Run("Create", func(t *testing.T) {
		created, err := venueSv.Create(ctx, venueID, venue.CreateVenue{
			Title:      "Cafe\x00Pushkin",
			Address:    "Tverskoy Blvd 26A",
			Provider:   "gplaces",
			ProviderID: "ChIJW7Q",
			Type:       "restaurant",
			Latitude:   55.7616,
			Longitude:  37.6062,
		})
		assert.NoError(t, err)
		assert.Equal(t, "Cafe Pushkin", created.Title)
		assert.Equal(t, venueID, created.ID)
	})

	t.Run("Duplicated provider id", func(t *testing.T) {
		_, err := venueSv.Create(ctx, ulid.NewString(), venue.CreateVenue{
			Title:      "Cafe Pushkin",
			Address:    "Tverskoy Blvd 26A",
			Provider:   "gplaces",
			ProviderID: "ChIJW7Q",
			Type:       "restaurant",
			Latitude:   55.7616,
			Longitude:  37.6062,
		})
		assert.Error(t, err)
	})

	t.Run("Empty location", func(t *testing.T) {
		_, err := venueSv.Create(ctx, ulid.NewString(), venue.CreateVenue{
			Title:      "Nowhere",
			Address:    "-",
			Provider:   "gplaces",
			ProviderID: "none",
			Type:       "bar",
			Latitude:   91,
			Longitude:  0,
		})
		assert.ErrorIs(t, err, model.ErrInvalidLocation)
	})
}

func TestGetByID(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "The Vault", "foursquare", "4b5460")

	got, err := venueSv.GetByID(ctx, venueID)
	assert.NoError(t, err)
	assert.Equal(t, "The Vault", got.Title)
	assert.Equal(t, venueID, got.ID)
}

func TestGetByProvider(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "Blue Note", "osm", "n1234")

	venues, err := venueSv.GetByProvider(ctx, "osm", params.Query{Cursor: params.DefaultCursor, Limit: "20"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(venues))
	assert.Equal(t, venueID, venues[0].ID)
}

func TestGetByProviderID(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "Gorky Park", "yandex", "y777")

	got, err := venueSv.GetByProviderID(ctx, "yandex", "y777")
	assert.NoError(t, err)
	assert.Equal(t, venueID, got.ID)
	assert.Equal(t, "Gorky Park", got.Title)
}

func TestSearch(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "Bolshoi Theatre", "gplaces", "ChIJb0l")

	venues, err := venueSv.Search(ctx, "bolshoi", params.Query{Cursor: params.DefaultCursor, Limit: "20"})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(venues))
	assert.Equal(t, venueID, venues[0].ID)
}

func TestUpdate(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "Old Name", "gplaces", "ChIJup")

	title := "New\rName"
	err := venueSv.Update(ctx, venueID, venue.UpdateVenue{Title: &title})
	assert.NoError(t, err)

	got, err := venueSv.GetByID(ctx, venueID)
	assert.NoError(t, err)
	assert.Equal(t, "NewName", got.Title)
}

func TestDelete(t *testing.T) {
	venueID := ulid.NewString()
	test.CreateVenue(t, db, venueID, "Closing Soon", "gplaces", "ChIJx1")

	err := venueSv.Delete(ctx, venueID)
	assert.NoError(t, err)

	_, err = venueSv.GetByID(ctx, venueID)
	assert.Error(t, err)

	t.Run("Non-existent", func(t *testing.T) {
		err := venueSv.Delete(ctx, ulid.NewString())
		assert.Error(t, err)
	})
}
