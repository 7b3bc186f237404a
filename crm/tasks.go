package crm

import (
	"context"
	"net/http"
	"time"
)

// Task is one follow-up item on the task board.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"dueAt"`
	Done        bool      `json:"done"`
	AgentID     string    `json:"agentId"`
	LeadID      string    `json:"leadId"`
}

// TaskInput is the create payload for a task.
type TaskInput struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueAt       time.Time `json:"dueAt"`
	AgentID     string    `json:"agentId,omitempty"`
	LeadID      string    `json:"leadId,omitempty"`
}

// Tasks lists every task visible to the signed-in user.
func (c *Client) Tasks(ctx context.Context) ([]Task, error) {
	var tasks []Task
	if err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask adds a task to the board.
func (c *Client) CreateTask(ctx context.Context, input TaskInput) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, input, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// CompleteTask marks a task done.
func (c *Client) CompleteTask(ctx context.Context, id string) (Task, error) {
	var task Task
	if err := c.do(ctx, http.MethodPatch, "/tasks/"+id+"/complete", nil, nil, &task); err != nil {
		return Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+id, nil, nil, nil)
}
