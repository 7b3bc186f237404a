package crm

import (
	"context"
	"net/http"
)

// Role pairs a role name with its permission tags. Permissions come back in
// server order and may repeat; the client keeps them verbatim.
type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

// Roles lists every role and its permission set.
func (c *Client) Roles(ctx context.Context) ([]Role, error) {
	var roles []Role
	if err := c.do(ctx, http.MethodGet, "/roles", nil, nil, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// AssignPermissions replaces a role's permission list. The list is sent
// exactly as given — order preserved, duplicates untouched — because the
// server owns the semantics of both.
func (c *Client) AssignPermissions(ctx context.Context, roleID string, permissions []string) (Role, error) {
	body := map[string][]string{"permissions": permissions}
	var role Role
	if err := c.do(ctx, http.MethodPut, "/roles/"+roleID+"/permissions", nil, body, &role); err != nil {
		return Role{}, err
	}
	return role, nil
}
