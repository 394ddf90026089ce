package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetAssetByID(ctx context.Context, assetID string) (core.Outcome, error) {
	assetID, err := requireID("asset id", assetID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "asset/"+assetID, nil)
}

// ListTenantAssets lists the tenant's assets, optionally filtered to a
// single asset type.
func (c *Client) ListTenantAssets(ctx context.Context, query PageQuery, assetType string) (core.Outcome, error) {
	params := query.params()
	if assetType = strings.TrimSpace(assetType); assetType != "" {
		params["type"] = assetType
	}
	return c.get(ctx, "tenant/assets", params)
}

// SaveAsset creates or updates an asset. An update is a save whose body
// carries the asset's id, matching the platform's merged save endpoint.
func (c *Client) SaveAsset(ctx context.Context, asset core.Params, confirmed bool) (core.Outcome, error) {
	if len(asset) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: asset body is required")
	}
	return c.mutate(ctx, "POST", "asset", nil, asset, confirmed)
}

func (c *Client) DeleteAsset(ctx context.Context, assetID string, confirmed bool) (core.Outcome, error) {
	assetID, err := requireID("asset id", assetID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "asset/"+assetID, nil, nil, confirmed)
}
