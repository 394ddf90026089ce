package resources

import (
	"context"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetTenantByID(ctx context.Context, tenantID string) (core.Outcome, error) {
	tenantID, err := requireID("tenant id", tenantID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "tenant/"+tenantID, nil)
}

func (c *Client) ListTenants(ctx context.Context, query PageQuery) (core.Outcome, error) {
	return c.get(ctx, "tenants", query.params())
}
