package resources

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetDashboardByID(ctx context.Context, dashboardID string) (core.Outcome, error) {
	dashboardID, err := requireID("dashboard id", dashboardID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "dashboard/"+dashboardID, nil)
}

// GetDashboardInfo returns the dashboard's metadata without its widget
// configuration.
func (c *Client) GetDashboardInfo(ctx context.Context, dashboardID string) (core.Outcome, error) {
	dashboardID, err := requireID("dashboard id", dashboardID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "dashboard/info/"+dashboardID, nil)
}

func (c *Client) ListTenantDashboards(ctx context.Context, query PageQuery) (core.Outcome, error) {
	return c.get(ctx, "tenant/dashboards", query.params())
}

func (c *Client) SaveDashboard(ctx context.Context, dashboard core.Params, confirmed bool) (core.Outcome, error) {
	if len(dashboard) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: dashboard body is required")
	}
	return c.mutate(ctx, "POST", "dashboard", nil, dashboard, confirmed)
}

func (c *Client) DeleteDashboard(ctx context.Context, dashboardID string, confirmed bool) (core.Outcome, error) {
	dashboardID, err := requireID("dashboard id", dashboardID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "dashboard/"+dashboardID, nil, nil, confirmed)
}

func (c *Client) AssignDashboardToCustomer(
	ctx context.Context,
	customerID string,
	dashboardID string,
	confirmed bool,
) (core.Outcome, error) {
	customerID, err := requireID("customer id", customerID)
	if err != nil {
		return core.Outcome{}, err
	}
	dashboardID, err = requireID("dashboard id", dashboardID)
	if err != nil {
		return core.Outcome{}, err
	}
	endpoint := "customer/" + customerID + "/dashboard/" + dashboardID
	return c.mutate(ctx, "POST", endpoint, nil, nil, confirmed)
}
