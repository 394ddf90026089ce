package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// CountByQuery posts an entity count query. The query body follows the
// platform's EntityCountQuery shape and the endpoint is a read in
// platform terms, so it is dispatched pre-confirmed.
func (c *Client) CountByQuery(ctx context.Context, query core.Params) (core.Outcome, error) {
	if len(query) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: entity query body is required")
	}
	spec := core.NewRequestSpec("POST", "entitiesQuery/count", nil, query)
	return c.dispatcher.DispatchConfirmed(ctx, spec)
}

func (c *Client) FindByQuery(ctx context.Context, query core.Params) (core.Outcome, error) {
	if len(query) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: entity query body is required")
	}
	spec := core.NewRequestSpec("POST", "entitiesQuery/find", nil, query)
	return c.dispatcher.DispatchConfirmed(ctx, spec)
}

func (c *Client) FindKeysByQuery(ctx context.Context, query core.Params) (core.Outcome, error) {
	if len(query) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: entity query body is required")
	}
	spec := core.NewRequestSpec("POST", "entitiesQuery/find/keys", nil, query)
	return c.dispatcher.DispatchConfirmed(ctx, spec)
}

func (c *Client) GetEntitiesByIDs(ctx context.Context, entityType string, entityIDs []string) (core.Outcome, error) {
	entityType = strings.ToUpper(strings.TrimSpace(entityType))
	if entityType == "" {
		return core.Outcome{}, fmt.Errorf("resources: entity type is required")
	}
	if len(entityIDs) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: entity ids are required")
	}
	params := core.Params{"entityIds": strings.Join(entityIDs, ",")}
	return c.get(ctx, "entities/"+entityType, params)
}
