package crm

import (
	"context"
	"net/http"
)

// Agent is a CRM user who works leads.
type Agent struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// AgentInput is the create/update payload for an agent.
type AgentInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// Agents lists all agents.
func (c *Client) Agents(ctx context.Context) ([]Agent, error) {
	var agents []Agent
	if err := c.do(ctx, http.MethodGet, "/agents", nil, nil, &agents); err != nil {
		return nil, err
	}
	return agents, nil
}

// CreateAgent registers a new agent account.
func (c *Client) CreateAgent(ctx context.Context, input AgentInput) (Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/agents", nil, input, &agent); err != nil {
		return Agent{}, err
	}
	return agent, nil
}

// UpdateAgent replaces an agent's editable fields.
func (c *Client) UpdateAgent(ctx context.Context, id string, input AgentInput) (Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPut, "/agents/"+id, nil, input, &agent); err != nil {
		return Agent{}, err
	}
	return agent, nil
}

// DeleteAgent removes an agent account.
func (c *Client) DeleteAgent(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/agents/"+id, nil, nil, nil)
}
