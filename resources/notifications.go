package resources

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) SendNotification(ctx context.Context, request core.Params, confirmed bool) (core.Outcome, error) {
	if len(request) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: notification request body is required")
	}
	return c.mutate(ctx, "POST", "notification/requests", nil, request, confirmed)
}

func (c *Client) ListNotificationDeliveryMethods(ctx context.Context) (core.Outcome, error) {
	return c.get(ctx, "notification/deliveryMethods", nil)
}
