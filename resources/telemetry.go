package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// Attribute scopes accepted by the platform's telemetry plugin.
const (
	ScopeServer = "SERVER_SCOPE"
	ScopeShared = "SHARED_SCOPE"
	ScopeClient = "CLIENT_SCOPE"
)

var validScopes = map[string]bool{
	ScopeServer: true,
	ScopeShared: true,
	ScopeClient: true,
}

func normalizeScope(scope string) (string, error) {
	scope = strings.ToUpper(strings.TrimSpace(scope))
	if !validScopes[scope] {
		return "", fmt.Errorf(
			"resources: invalid attribute scope %q (valid: %s, %s, %s)",
			scope, ScopeServer, ScopeShared, ScopeClient,
		)
	}
	return scope, nil
}

func telemetryBase(entityType string, entityID string) (string, error) {
	entityType = strings.ToUpper(strings.TrimSpace(entityType))
	entityID = strings.TrimSpace(entityID)
	if entityType == "" || entityID == "" {
		return "", fmt.Errorf("resources: entity type and entity id are required")
	}
	return "plugins/telemetry/" + entityType + "/" + entityID, nil
}

// GetAttributes reads attribute values. Empty keys fetches every
// attribute the caller can see.
func (c *Client) GetAttributes(
	ctx context.Context,
	entityType string,
	entityID string,
	keys []string,
) (core.Outcome, error) {
	base, err := telemetryBase(entityType, entityID)
	if err != nil {
		return core.Outcome{}, err
	}
	params := core.Params{}
	if len(keys) > 0 {
		params["keys"] = strings.Join(keys, ",")
	}
	return c.get(ctx, base+"/values/attributes", params)
}

type TimeseriesQuery struct {
	Keys     []string
	StartTS  int64
	EndTS    int64
	Interval int64
	Limit    int
	Agg      string
}

func (c *Client) GetTimeseries(
	ctx context.Context,
	entityType string,
	entityID string,
	query TimeseriesQuery,
) (core.Outcome, error) {
	base, err := telemetryBase(entityType, entityID)
	if err != nil {
		return core.Outcome{}, err
	}
	params := core.Params{}
	if len(query.Keys) > 0 {
		params["keys"] = strings.Join(query.Keys, ",")
	}
	if query.StartTS > 0 {
		params["startTs"] = query.StartTS
	}
	if query.EndTS > 0 {
		params["endTs"] = query.EndTS
	}
	if query.Interval > 0 {
		params["interval"] = query.Interval
	}
	if query.Limit > 0 {
		params["limit"] = query.Limit
	}
	if agg := strings.ToUpper(strings.TrimSpace(query.Agg)); agg != "" {
		params["agg"] = agg
	}
	return c.get(ctx, base+"/values/timeseries", params)
}

func (c *Client) SaveAttributes(
	ctx context.Context,
	entityType string,
	entityID string,
	scope string,
	attributes core.Params,
	confirmed bool,
) (core.Outcome, error) {
	base, err := telemetryBase(entityType, entityID)
	if err != nil {
		return core.Outcome{}, err
	}
	scope, err = normalizeScope(scope)
	if err != nil {
		return core.Outcome{}, err
	}
	if len(attributes) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: attributes body is required")
	}
	return c.mutate(ctx, "POST", base+"/"+scope, nil, attributes, confirmed)
}

func (c *Client) DeleteAttributes(
	ctx context.Context,
	entityType string,
	entityID string,
	scope string,
	keys []string,
	confirmed bool,
) (core.Outcome, error) {
	base, err := telemetryBase(entityType, entityID)
	if err != nil {
		return core.Outcome{}, err
	}
	scope, err = normalizeScope(scope)
	if err != nil {
		return core.Outcome{}, err
	}
	if len(keys) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: attribute keys are required")
	}
	params := core.Params{"keys": strings.Join(keys, ",")}
	return c.mutate(ctx, "DELETE", base+"/"+scope, params, nil, confirmed)
}

func (c *Client) DeleteTimeseries(
	ctx context.Context,
	entityType string,
	entityID string,
	keys []string,
	deleteLatest bool,
	rewriteLatestIfDeleted bool,
	confirmed bool,
) (core.Outcome, error) {
	base, err := telemetryBase(entityType, entityID)
	if err != nil {
		return core.Outcome{}, err
	}
	if len(keys) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: timeseries keys are required")
	}
	params := core.Params{
		"keys":                   strings.Join(keys, ","),
		"deleteAllDataForKeys":   !deleteLatest,
		"rewriteLatestIfDeleted": rewriteLatestIfDeleted,
	}
	return c.mutate(ctx, "DELETE", base+"/timeseries/delete", params, nil, confirmed)
}
