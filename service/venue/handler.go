package venue

import (
	"encoding/json"
	"net/http"

	"github.com/GGP1/pinpoint/internal/cache"
	"github.com/GGP1/pinpoint/internal/params"
	"github.com/GGP1/pinpoint/internal/response"
	"github.com/GGP1/pinpoint/internal/sanitize"
	"github.com/GGP1/pinpoint/internal/ulid"

	"github.com/julienschmidt/httprouter"
)

// Handler handles venues endpoints.
type Handler struct {
	service Service
	cache   cache.Client
}

// NewHandler returns a venue handler.
func NewHandler(service Service, cache cache.Client) Handler {
	return Handler{
		service: service,
		cache:   cache,
	}
}

// Create registers a new venue.
func (h *Handler) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var venue CreateVenue
		if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}
		defer r.Body.Close()

		venueID := ulid.NewString()
		created, err := h.service.Create(ctx, venueID, venue)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		response.JSON(w, http.StatusCreated, created)
	}
}

// Delete removes a venue from the system.
func (h *Handler) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		venueID, err := params.IDFromCtx(ctx)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		if err := h.service.Delete(ctx, venueID); err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}

		response.JSONMessage(w, http.StatusOK, venueID)
	}
}

// GetByID gets a venue by its id.
func (h *Handler) GetByID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		venueID, err := params.IDFromCtx(ctx)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		cacheKey := cache.VenuesKey(venueID)
		if v, err := h.cache.Get(cacheKey); err == nil {
			response.EncodedJSON(w, v)
			return
		}

		venue, err := h.service.GetByID(ctx, venueID)
		if err != nil {
			response.Error(w, http.StatusNotFound, err)
			return
		}

		response.JSONAndCache(h.cache, w, cacheKey, venue)
	}
}

// GetByProvider gets the venues registered under a provider.
func (h *Handler) GetByProvider() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		provider := httprouter.ParamsFromContext(ctx).ByName("provider")

		params, err := params.ParseQuery(r.URL.RawQuery, params.Venue)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		venues, err := h.service.GetByProvider(ctx, provider, params)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}

		response.JSON(w, http.StatusOK, venues)
	}
}

// GetByProviderID gets a venue by the provider's own identifier.
func (h *Handler) GetByProviderID() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		routerParams := httprouter.ParamsFromContext(ctx)
		provider := routerParams.ByName("provider")
		providerID := routerParams.ByName("provider_id")

		cacheKey := cache.LookupKey(provider, providerID)
		if v, err := h.cache.Get(cacheKey); err == nil {
			response.EncodedJSON(w, v)
			return
		}

		venue, err := h.service.GetByProviderID(ctx, provider, providerID)
		if err != nil {
			response.Error(w, http.StatusNotFound, err)
			return
		}

		response.JSONAndCache(h.cache, w, cacheKey, venue)
	}
}

// Search looks for venues matching the query.
func (h *Handler) Search() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := sanitize.Normalize(httprouter.ParamsFromContext(ctx).ByName("query"))
		if err := sanitize.UserInput(query); err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		params, err := params.ParseQuery(r.URL.RawQuery, params.Venue)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		venues, err := h.service.Search(ctx, query, params)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}

		response.JSON(w, http.StatusOK, venues)
	}
}

// Update updates a venue.
func (h *Handler) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		venueID, err := params.IDFromCtx(ctx)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		var venue UpdateVenue
		if err := json.NewDecoder(r.Body).Decode(&venue); err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}
		defer r.Body.Close()

		if err := venue.Validate(); err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}

		if err := h.service.Update(ctx, venueID, venue); err != nil {
			response.Error(w, http.StatusInternalServerError, err)
			return
		}

		response.JSONMessage(w, http.StatusOK, venueID)
	}
}
