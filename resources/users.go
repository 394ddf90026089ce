package resources

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetUserByID(ctx context.Context, userID string) (core.Outcome, error) {
	userID, err := requireID("user id", userID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "user/"+userID, nil)
}

func (c *Client) ListUsers(ctx context.Context, query PageQuery) (core.Outcome, error) {
	return c.get(ctx, "users", query.params())
}

func (c *Client) SaveUser(ctx context.Context, user core.Params, confirmed bool) (core.Outcome, error) {
	if len(user) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: user body is required")
	}
	return c.mutate(ctx, "POST", "user", nil, user, confirmed)
}

func (c *Client) DeleteUser(ctx context.Context, userID string, confirmed bool) (core.Outcome, error) {
	userID, err := requireID("user id", userID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "user/"+userID, nil, nil, confirmed)
}
