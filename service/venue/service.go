package venue

import (
	"context"
	"database/sql"
	"time"

	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/internal/params"
	"github.com/GGP1/pinpoint/internal/sanitize"
	"github.com/GGP1/pinpoint/model"
	"github.com/GGP1/pinpoint/storage/postgres"

	"github.com/GGP1/sqan"
	"github.com/pkg/errors"
)

// Service represents the venue service.
type Service interface {
	Create(ctx context.Context, venueID string, venue CreateVenue) (Venue, error)
	Delete(ctx context.Context, venueID string) error
	GetByID(ctx context.Context, venueID string) (Venue, error)
	GetByProvider(ctx context.Context, provider string, params params.Query) ([]Venue, error)
	GetByProviderID(ctx context.Context, provider, providerID string) (Venue, error)
	Search(ctx context.Context, query string, params params.Query) ([]Venue, error)
	Update(ctx context.Context, venueID string, venue UpdateVenue) error
}

type service struct {
	db    *sql.DB
	cache cache.Client

	metrics metrics
}

// NewService returns a new venue service.
func NewService(db *sql.DB, cache cache.Client) Service {
	return &service{
		db:      db,
		cache:   cache,
		metrics: initMetrics(),
	}
}

// Create cleans and stores a new venue.
func (s *service) Create(ctx context.Context, venueID string, venue CreateVenue) (Venue, error) {
	s.metrics.incMethodCalls("Create")

	mv, err := venue.Validate()
	if err != nil {
		s.metrics.rejectedVenues.Inc()
		return Venue{}, err
	}

	exists, err := postgres.QueryBool(ctx, s.db, venueExistsQuery, mv.Provider(), mv.ID())
	if err != nil {
		return Venue{}, err
	}
	if exists {
		return Venue{}, errors.Errorf("venue %q from provider %q already exists", mv.ID(), mv.Provider())
	}

	location := mv.Location()
	_, err = s.db.ExecContext(ctx, createVenueQuery, venueID, mv.Title(), mv.Address(),
		mv.Provider(), mv.ID(), mv.Type(), location.Latitude(), location.Longitude(),
		location.HorizontalAccuracy(), location.AccessHash())
	if err != nil {
		return Venue{}, errors.Wrap(err, "creating venue")
	}

	s.metrics.registeredVenues.Inc()
	return Venue{
		ID:                 venueID,
		Title:              mv.Title(),
		Address:            mv.Address(),
		Provider:           mv.Provider(),
		ProviderID:         mv.ID(),
		Type:               mv.Type(),
		Latitude:           location.Latitude(),
		Longitude:          location.Longitude(),
		HorizontalAccuracy: location.HorizontalAccuracy(),
		AccessHash:         location.AccessHash(),
	}, nil
}

// Delete removes a venue from the system.
func (s *service) Delete(ctx context.Context, venueID string) error {
	s.metrics.incMethodCalls("Delete")

	row := s.db.QueryRowContext(ctx, "SELECT provider, provider_id FROM venues WHERE id=$1", venueID)
	var provider, providerID string
	if err := row.Scan(&provider, &providerID); err != nil {
		if err == sql.ErrNoRows {
			return errors.Errorf("venue %q does not exist", venueID)
		}
		return errors.Wrap(err, "fetching venue")
	}

	if _, err := s.db.ExecContext(ctx, "DELETE FROM venues WHERE id=$1", venueID); err != nil {
		return errors.Wrap(err, "deleting venue")
	}

	if err := s.cache.Delete(cache.VenuesKey(venueID)); err != nil {
		return errors.Wrap(err, "memcached: deleting venue")
	}
	if err := s.cache.Delete(cache.LookupKey(provider, providerID)); err != nil {
		return errors.Wrap(err, "memcached: deleting venue lookup")
	}

	s.metrics.registeredVenues.Dec()
	return nil
}

// GetByID returns the venue with the given id.
func (s *service) GetByID(ctx context.Context, venueID string) (Venue, error) {
	s.metrics.incMethodCalls("GetByID")

	rows, err := s.db.QueryContext(ctx, getVenueQuery, venueID)
	if err != nil {
		return Venue{}, errors.Wrap(err, "fetching venue")
	}

	var venue Venue
	if err := sqan.Row(&venue, rows); err != nil {
		return Venue{}, errors.Wrap(err, "scanning venue")
	}

	return venue, nil
}

// GetByProvider returns the venues registered under a provider.
func (s *service) GetByProvider(ctx context.Context, provider string, params params.Query) ([]Venue, error) {
	s.metrics.incMethodCalls("GetByProvider")

	q := postgres.SelectWhere(postgres.Venues, "provider=$1", "id", params)
	rows, err := s.db.QueryContext(ctx, q, provider)
	if err != nil {
		return nil, errors.Wrap(err, "fetching venues")
	}

	var venues []Venue
	if err := sqan.Rows(&venues, rows); err != nil {
		return nil, errors.Wrap(err, "scanning venues")
	}

	return venues, nil
}

// GetByProviderID returns the venue registered under the provider's own identifier.
func (s *service) GetByProviderID(ctx context.Context, provider, providerID string) (Venue, error) {
	s.metrics.incMethodCalls("GetByProviderID")

	rows, err := s.db.QueryContext(ctx, getVenueByProviderIDQuery, provider, providerID)
	if err != nil {
		return Venue{}, errors.Wrap(err, "fetching venue")
	}

	var venue Venue
	if err := sqan.Row(&venue, rows); err != nil {
		return Venue{}, errors.Wrap(err, "scanning venue")
	}

	return venue, nil
}

// Search performs a full text search on venues' titles and addresses.
func (s *service) Search(ctx context.Context, query string, params params.Query) ([]Venue, error) {
	s.metrics.incMethodCalls("Search")

	q := postgres.FullTextSearch(postgres.Venues, params)
	rows, err := s.db.QueryContext(ctx, q, postgres.ToTSQuery(query))
	if err != nil {
		return nil, errors.Wrap(err, "venues searching")
	}

	var venues []Venue
	if err := sqan.Rows(&venues, rows); err != nil {
		return nil, errors.Wrap(err, "scanning venues")
	}

	return venues, nil
}

// Update updates a venue, cleaning the fields received.
func (s *service) Update(ctx context.Context, venueID string, venue UpdateVenue) error {
	s.metrics.incMethodCalls("Update")

	title, err := cleanField(venue.Title, model.ErrInvalidTitle)
	if err != nil {
		return err
	}
	if title != nil && *title == "" {
		return model.ErrInvalidTitle
	}
	address, err := cleanField(venue.Address, model.ErrInvalidAddress)
	if err != nil {
		return err
	}
	venueType, err := cleanField(venue.Type, model.ErrInvalidType)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, updateVenueQuery, venueID, title, address, venueType, time.Now())
	if err != nil {
		return errors.Wrap(err, "updating venue")
	}

	if err := s.cache.Delete(cache.VenuesKey(venueID)); err != nil {
		return errors.Wrap(err, "memcached: deleting venue")
	}

	return nil
}

// cleanField sanitizes an optional field, mapping a rejection to fieldErr.
func cleanField(field *string, fieldErr error) (*string, error) {
	if field == nil {
		return nil, nil
	}

	clean, err := sanitize.Clean(*field)
	if err != nil {
		return nil, fieldErr
	}

	return &clean, nil
}
