package crm

import (
	"context"
	"net/http"

	"github.com/coworkpro/clientkit/api"
	"github.com/coworkpro/clientkit/query"
)

// ProposalInput carries the writable proposal fields for create and update.
type ProposalInput struct {
	LeadID   string         `json:"leadId"`
	CenterID string         `json:"centerId"`
	Title    string         `json:"title"`
	Status   string         `json:"status,omitempty"`
	Items    []ProposalItem `json:"items"`
	ValidTo  string         `json:"validTo,omitempty"`
}

// PDF is a rendered proposal document.
type PDF struct {
	ContentType string
	Data        []byte
}

// ProposalService talks to the /proposals endpoints.
type ProposalService struct {
	client *api.Client
	cache  *query.Cache

	metricInc func(int)
	pdfMetric int
}

// NewProposalService wires the service to its transport and cache. metricInc
// may be nil; pdfMetric is the counter bumped per rendered document.
func NewProposalService(client *api.Client, cache *query.Cache, metricInc func(int), pdfMetric int) *ProposalService {
	return &ProposalService{client: client, cache: cache, metricInc: metricInc, pdfMetric: pdfMetric}
}

// List returns all proposals.
func (s *ProposalService) List(ctx context.Context) ([]Proposal, error) {
	return query.Fetch(ctx, s.cache, "proposals", func(ctx context.Context) ([]Proposal, error) {
		return unwrap[[]Proposal](ctx, s.client, http.MethodGet, "/proposals", nil)
	})
}

// Get returns a single proposal by id.
func (s *ProposalService) Get(ctx context.Context, id string) (Proposal, error) {
	return query.Fetch(ctx, s.cache, "proposals/"+id, func(ctx context.Context) (Proposal, error) {
		return unwrap[Proposal](ctx, s.client, http.MethodGet, "/proposals/"+id, nil)
	})
}

// Create adds a proposal and returns the stored record.
func (s *ProposalService) Create(ctx context.Context, in ProposalInput) (Proposal, error) {
	proposal, err := unwrap[Proposal](ctx, s.client, http.MethodPost, "/proposals", in)
	if err != nil {
		return Proposal{}, err
	}
	s.cache.InvalidatePrefix("proposals")
	return proposal, nil
}

// Update replaces the writable fields of a proposal.
func (s *ProposalService) Update(ctx context.Context, id string, in ProposalInput) (Proposal, error) {
	proposal, err := unwrap[Proposal](ctx, s.client, http.MethodPut, "/proposals/"+id, in)
	if err != nil {
		return Proposal{}, err
	}
	s.cache.InvalidatePrefix("proposals")
	return proposal, nil
}

// Delete removes a proposal.
func (s *ProposalService) Delete(ctx context.Context, id string) error {
	if _, err := unwrap[struct{}](ctx, s.client, http.MethodDelete, "/proposals/"+id, nil); err != nil {
		return err
	}
	s.cache.InvalidatePrefix("proposals")
	return nil
}

// DownloadPDF asks the backend to render the proposal and returns the raw
// document. Renders are never cached.
func (s *ProposalService) DownloadPDF(ctx context.Context, id string) (PDF, error) {
	data, contentType, err := s.client.Download(ctx, http.MethodPost, "/proposals/"+id+"/pdf", nil)
	if err != nil {
		return PDF{}, err
	}
	if s.metricInc != nil {
		s.metricInc(s.pdfMetric)
	}
	return PDF{ContentType: contentType, Data: data}, nil
}
