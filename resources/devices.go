package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetDeviceByID(ctx context.Context, deviceID string) (core.Outcome, error) {
	deviceID, err := requireID("device id", deviceID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "device/"+deviceID, nil)
}

func (c *Client) ListTenantDevices(ctx context.Context, query PageQuery, deviceType string) (core.Outcome, error) {
	params := query.params()
	if deviceType = strings.TrimSpace(deviceType); deviceType != "" {
		params["type"] = deviceType
	}
	return c.get(ctx, "tenant/devices", params)
}

func (c *Client) SaveDevice(ctx context.Context, device core.Params, confirmed bool) (core.Outcome, error) {
	if len(device) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: device body is required")
	}
	return c.mutate(ctx, "POST", "device", nil, device, confirmed)
}

func (c *Client) DeleteDevice(ctx context.Context, deviceID string, confirmed bool) (core.Outcome, error) {
	deviceID, err := requireID("device id", deviceID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "device/"+deviceID, nil, nil, confirmed)
}

func (c *Client) GetDeviceCredentials(ctx context.Context, deviceID string) (core.Outcome, error) {
	deviceID, err := requireID("device id", deviceID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "device/"+deviceID+"/credentials", nil)
}

func (c *Client) GetDeviceProfile(ctx context.Context, profileID string) (core.Outcome, error) {
	profileID, err := requireID("device profile id", profileID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "deviceProfile/"+profileID, nil)
}
