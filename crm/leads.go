package crm

import (
	"context"
	"net/http"
	"time"
)

// Lead is one row of the leads table.
type Lead struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Source    string    `json:"source"`
	Status    string    `json:"status"`
	AgentID   string    `json:"agentId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LeadInput is the create/update payload for a lead.
type LeadInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Source  string `json:"source"`
	Status  string `json:"status"`
	AgentID string `json:"agentId,omitempty"`
}

// Leads fetches every lead visible to the signed-in user. Filtering and
// pagination happen client-side via ListOptions, matching the dashboard.
func (c *Client) Leads(ctx context.Context) ([]Lead, error) {
	var leads []Lead
	if err := c.do(ctx, http.MethodGet, "/leads", nil, nil, &leads); err != nil {
		return nil, err
	}
	return leads, nil
}

// CreateLead registers a new lead and returns the stored record.
func (c *Client) CreateLead(ctx context.Context, input LeadInput) (Lead, error) {
	var lead Lead
	if err := c.do(ctx, http.MethodPost, "/leads", nil, input, &lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// UpdateLead replaces a lead's editable fields.
func (c *Client) UpdateLead(ctx context.Context, id string, input LeadInput) (Lead, error) {
	var lead Lead
	if err := c.do(ctx, http.MethodPut, "/leads/"+id, nil, input, &lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}

// DeleteLead removes a lead.
func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/leads/"+id, nil, nil, nil)
}

// AssignLead moves a lead to an agent. Assignment rules are server-side.
func (c *Client) AssignLead(ctx context.Context, leadID, agentID string) (Lead, error) {
	body := map[string]string{"agentId": agentID}
	var lead Lead
	if err := c.do(ctx, http.MethodPost, "/leads/"+leadID+"/assign", nil, body, &lead); err != nil {
		return Lead{}, err
	}
	return lead, nil
}
