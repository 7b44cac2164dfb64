package crm

import (
	"context"
	"net/http"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/query"
)

// LeadInput carries the writable lead fields for create and update.
type LeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Company string `json:"company,omitempty"`
	Status  string `json:"status,omitempty"`
	Source  string `json:"source,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

// LeadService talks to the /leads endpoints. Reads go through the query
// cache under the "leads" key namespace; every mutation drops that namespace.
type LeadService struct {
	client *api.Client
	cache  *query.Cache
}

// NewLeadService wires the service to its transport and cache. A nil cache
// disables read caching.
func NewLeadService(client *api.Client, cache *query.Cache) *LeadService {
	return &LeadService{client: client, cache: cache}
}

// List returns all leads.
func (s *LeadService) List(ctx context.Context) ([]Lead, error) {
	return query.Fetch(ctx, s.cache, "leads", func(ctx context.Context) ([]Lead, error) {
		return unwrap[[]Lead](ctx, s.client, http.MethodGet, "/leads", nil)
	})
}

// Get returns a single lead by id.
func (s *LeadService) Get(ctx context.Context, id string) (Lead, error) {
	return query.Fetch(ctx, s.cache, "leads/"+id, func(ctx context.Context) (Lead, error) {
		return unwrap[Lead](ctx, s.client, http.MethodGet, "/leads/"+id, nil)
	})
}

// Create adds a lead and returns the stored record.
func (s *LeadService) Create(ctx context.Context, in LeadInput) (Lead, error) {
	lead, err := unwrap[Lead](ctx, s.client, http.MethodPost, "/leads", in)
	if err != nil {
		return Lead{}, err
	}
	s.cache.InvalidatePrefix("leads")
	return lead, nil
}

// Update replaces the writable fields of a lead.
func (s *LeadService) Update(ctx context.Context, id string, in LeadInput) (Lead, error) {
	lead, err := unwrap[Lead](ctx, s.client, http.MethodPut, "/leads/"+id, in)
	if err != nil {
		return Lead{}, err
	}
	s.cache.InvalidatePrefix("leads")
	return lead, nil
}

// Delete removes a lead.
func (s *LeadService) Delete(ctx context.Context, id string) error {
	if _, err := unwrap[struct{}](ctx, s.client, http.MethodDelete, "/leads/"+id, nil); err != nil {
		return err
	}
	s.cache.InvalidatePrefix("leads")
	return nil
}
