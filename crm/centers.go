package crm

import (
	"context"
	"net/http"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/query"
)

// CenterInput carries the writable center fields for create and update.
type CenterInput struct {
	Name     string `json:"name"`
	City     string `json:"city"`
	Address  string `json:"address,omitempty"`
	Capacity int    `json:"capacity,omitempty"`
	Active   *bool  `json:"active,omitempty"`
}

// CenterService talks to the /centers endpoints.
type CenterService struct {
	client *api.Client
	cache  *query.Cache
}

// NewCenterService wires the service to its transport and cache.
func NewCenterService(client *api.Client, cache *query.Cache) *CenterService {
	return &CenterService{client: client, cache: cache}
}

// List returns all centers.
func (s *CenterService) List(ctx context.Context) ([]Center, error) {
	return query.Fetch(ctx, s.cache, "centers", func(ctx context.Context) ([]Center, error) {
		return unwrap[[]Center](ctx, s.client, http.MethodGet, "/centers", nil)
	})
}

// Get returns a single center by id.
func (s *CenterService) Get(ctx context.Context, id string) (Center, error) {
	return query.Fetch(ctx, s.cache, "centers/"+id, func(ctx context.Context) (Center, error) {
		return unwrap[Center](ctx, s.client, http.MethodGet, "/centers/"+id, nil)
	})
}

// Create adds a center and returns the stored record.
func (s *CenterService) Create(ctx context.Context, in CenterInput) (Center, error) {
	center, err := unwrap[Center](ctx, s.client, http.MethodPost, "/centers", in)
	if err != nil {
		return Center{}, err
	}
	s.cache.InvalidatePrefix("centers")
	return center, nil
}

// Update replaces the writable fields of a center.
func (s *CenterService) Update(ctx context.Context, id string, in CenterInput) (Center, error) {
	center, err := unwrap[Center](ctx, s.client, http.MethodPut, "/centers/"+id, in)
	if err != nil {
		return Center{}, err
	}
	s.cache.InvalidatePrefix("centers")
	return center, nil
}

// Delete removes a center.
func (s *CenterService) Delete(ctx context.Context, id string) error {
	if _, err := unwrap[struct{}](ctx, s.client, http.MethodDelete, "/centers/"+id, nil); err != nil {
		return err
	}
	s.cache.InvalidatePrefix("centers")
	return nil
}
