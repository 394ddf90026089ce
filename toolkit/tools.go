package toolkit

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/resources"
)

// BuildRegistry assembles the full tool catalog over the resource client.
// Mutating tools accept a `confirmed` flag; without it the first call
// returns the confirmation descriptor instead of touching the platform.
func BuildRegistry(client *resources.Client) (*Registry, error) {
	if client == nil {
		return nil, fmt.Errorf("toolkit: resource client is required")
	}

	registry := NewRegistry()
	for _, register := range []func(*Registry, *resources.Client) error{
		registerGenericTools,
		registerAlarmTools,
		registerAssetTools,
		registerDeviceTools,
		registerCustomerTools,
		registerDashboardTools,
		registerTelemetryTools,
		registerEntityTools,
		registerRelationTools,
		registerTenantTools,
		registerUserTools,
		registerRuleChainTools,
		registerNotificationTools,
	} {
		if err := register(registry, client); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func idSchema(name string, description string) map[string]any {
	return map[string]any{
		name: map[string]any{"type": "string", "description": description},
	}
}

var confirmedSchema = map[string]any{
	"confirmed": map[string]any{
		"type":        "boolean",
		"description": "Set true to execute; false returns a confirmation request",
	},
}

var bodySchema = map[string]any{
	"body": map[string]any{"type": "object", "description": "Entity body as JSON"},
}

func registerGenericTools(registry *Registry, client *resources.Client) error {
	return registry.Register(&funcTool{
		name:        "execute_with_permission",
		description: "Execute an arbitrary ThingsBoard REST call through the confirmation gate",
		parameters: mergeSchemas(map[string]any{
			"method":    map[string]any{"type": "string", "description": "HTTP method (GET, POST, PUT, DELETE)"},
			"endpoint":  map[string]any{"type": "string", "description": "API endpoint relative to the base URL"},
			"params":    map[string]any{"type": "object", "description": "Query parameters"},
			"json_data": map[string]any{"type": "object", "description": "JSON request body"},
		}, confirmedSchema),
		required: []string{"method", "endpoint"},
		handler: func(ctx context.Context, args map[string]any) (any, error) {
			method, err := requireStringArg(args, "method")
			if err != nil {
				return nil, err
			}
			endpoint, err := requireStringArg(args, "endpoint")
			if err != nil {
				return nil, err
			}
			params, err := paramsArg(args, "params")
			if err != nil {
				return nil, err
			}
			jsonData, err := paramsArg(args, "json_data")
			if err != nil {
				return nil, err
			}
			confirmed, err := boolArg(args, "confirmed")
			if err != nil {
				return nil, err
			}
			outcome, dispatchErr := client.ExecuteWithPermission(ctx, method, endpoint, params, jsonData, confirmed)
			return dispatchResult(method, outcome, dispatchErr)
		},
	})
}

func registerAlarmTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_alarm_by_id",
			description: "Fetch a single alarm with originator info",
			parameters:  idSchema("alarm_id", "Alarm identifier"),
			required:    []string{"alarm_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetAlarmByID(ctx, alarmID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_alarms",
			description: "List alarms for an entity, optionally filtered by status and severity",
			parameters: mergeSchemas(pageParameterSchema(), map[string]any{
				"entity_type":   map[string]any{"type": "string", "description": "Originator entity type, e.g. DEVICE"},
				"entity_id":     map[string]any{"type": "string", "description": "Originator entity identifier"},
				"search_status": map[string]any{"type": "string", "description": "Alarm status filter, e.g. ACTIVE"},
				"severity":      map[string]any{"type": "string", "description": "Alarm severity filter, e.g. CRITICAL"},
			}),
			required: []string{"entity_type", "entity_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				searchStatus, err := stringArg(args, "search_status")
				if err != nil {
					return nil, err
				}
				severity, err := stringArg(args, "severity")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListAlarms(ctx, entityType, entityID, resources.AlarmQuery{
					PageQuery:    pageQuery,
					SearchStatus: searchStatus,
					Severity:     severity,
				})
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "create_alarm",
			description: "Create a new alarm",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.CreateAlarm(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "ack_alarm",
			description: "Acknowledge an alarm",
			parameters:  mergeSchemas(idSchema("alarm_id", "Alarm identifier"), confirmedSchema),
			required:    []string{"alarm_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.AcknowledgeAlarm(ctx, alarmID, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "clear_alarm",
			description: "Clear an alarm",
			parameters:  mergeSchemas(idSchema("alarm_id", "Alarm identifier"), confirmedSchema),
			required:    []string{"alarm_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ClearAlarm(ctx, alarmID, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_alarm",
			description: "Delete an alarm",
			parameters:  mergeSchemas(idSchema("alarm_id", "Alarm identifier"), confirmedSchema),
			required:    []string{"alarm_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteAlarm(ctx, alarmID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
		{
			name:        "assign_alarm",
			description: "Assign an alarm to a user",
			parameters: mergeSchemas(mergeSchemas(
				idSchema("alarm_id", "Alarm identifier"),
				idSchema("assignee_id", "User identifier to assign the alarm to"),
			), confirmedSchema),
			required: []string{"alarm_id", "assignee_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				assigneeID, err := requireStringArg(args, "assignee_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.AssignAlarm(ctx, alarmID, assigneeID, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "unassign_alarm",
			description: "Remove an alarm's assignee",
			parameters:  mergeSchemas(idSchema("alarm_id", "Alarm identifier"), confirmedSchema),
			required:    []string{"alarm_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.UnassignAlarm(ctx, alarmID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
		{
			name:        "add_alarm_comment",
			description: "Attach a comment to an alarm",
			parameters: mergeSchemas(mergeSchemas(
				idSchema("alarm_id", "Alarm identifier"),
				bodySchema,
			), confirmedSchema),
			required: []string{"alarm_id", "body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				alarmID, err := requireStringArg(args, "alarm_id")
				if err != nil {
					return nil, err
				}
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.AddAlarmComment(ctx, alarmID, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerAssetTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_asset_by_id",
			description: "Fetch a single asset",
			parameters:  idSchema("asset_id", "Asset identifier"),
			required:    []string{"asset_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				assetID, err := requireStringArg(args, "asset_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetAssetByID(ctx, assetID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_tenant_assets",
			description: "List the tenant's assets",
			parameters: mergeSchemas(pageParameterSchema(), map[string]any{
				"type": map[string]any{"type": "string", "description": "Optional asset type filter"},
			}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				assetType, err := stringArg(args, "type")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListTenantAssets(ctx, pageQuery, assetType)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_asset",
			description: "Create an asset, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveAsset(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_asset",
			description: "Delete an asset",
			parameters:  mergeSchemas(idSchema("asset_id", "Asset identifier"), confirmedSchema),
			required:    []string{"asset_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				assetID, err := requireStringArg(args, "asset_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteAsset(ctx, assetID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerDeviceTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_device_by_id",
			description: "Fetch a single device",
			parameters:  idSchema("device_id", "Device identifier"),
			required:    []string{"device_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				deviceID, err := requireStringArg(args, "device_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetDeviceByID(ctx, deviceID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_tenant_devices",
			description: "List the tenant's devices",
			parameters: mergeSchemas(pageParameterSchema(), map[string]any{
				"type": map[string]any{"type": "string", "description": "Optional device type filter"},
			}),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				deviceType, err := stringArg(args, "type")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListTenantDevices(ctx, pageQuery, deviceType)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_device",
			description: "Create a device, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveDevice(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_device",
			description: "Delete a device",
			parameters:  mergeSchemas(idSchema("device_id", "Device identifier"), confirmedSchema),
			required:    []string{"device_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				deviceID, err := requireStringArg(args, "device_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteDevice(ctx, deviceID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
		{
			name:        "get_device_credentials",
			description: "Fetch a device's credentials",
			parameters:  idSchema("device_id", "Device identifier"),
			required:    []string{"device_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				deviceID, err := requireStringArg(args, "device_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetDeviceCredentials(ctx, deviceID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "get_device_profile",
			description: "Fetch a device profile",
			parameters:  idSchema("profile_id", "Device profile identifier"),
			required:    []string{"profile_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				profileID, err := requireStringArg(args, "profile_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetDeviceProfile(ctx, profileID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerCustomerTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_customer_by_id",
			description: "Fetch a single customer",
			parameters:  idSchema("customer_id", "Customer identifier"),
			required:    []string{"customer_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				customerID, err := requireStringArg(args, "customer_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetCustomerByID(ctx, customerID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_customers",
			description: "List the tenant's customers",
			parameters:  pageParameterSchema(),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListCustomers(ctx, pageQuery)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_customer",
			description: "Create a customer, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveCustomer(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_customer",
			description: "Delete a customer",
			parameters:  mergeSchemas(idSchema("customer_id", "Customer identifier"), confirmedSchema),
			required:    []string{"customer_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				customerID, err := requireStringArg(args, "customer_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteCustomer(ctx, customerID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerDashboardTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_dashboard_by_id",
			description: "Fetch a full dashboard including widget configuration",
			parameters:  idSchema("dashboard_id", "Dashboard identifier"),
			required:    []string{"dashboard_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				dashboardID, err := requireStringArg(args, "dashboard_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetDashboardByID(ctx, dashboardID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "get_dashboard_info",
			description: "Fetch dashboard metadata without widget configuration",
			parameters:  idSchema("dashboard_id", "Dashboard identifier"),
			required:    []string{"dashboard_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				dashboardID, err := requireStringArg(args, "dashboard_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetDashboardInfo(ctx, dashboardID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_tenant_dashboards",
			description: "List the tenant's dashboards",
			parameters:  pageParameterSchema(),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListTenantDashboards(ctx, pageQuery)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_dashboard",
			description: "Create a dashboard, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveDashboard(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_dashboard",
			description: "Delete a dashboard",
			parameters:  mergeSchemas(idSchema("dashboard_id", "Dashboard identifier"), confirmedSchema),
			required:    []string{"dashboard_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				dashboardID, err := requireStringArg(args, "dashboard_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteDashboard(ctx, dashboardID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
		{
			name:        "assign_dashboard_to_customer",
			description: "Assign a dashboard to a customer",
			parameters: mergeSchemas(mergeSchemas(
				idSchema("customer_id", "Customer identifier"),
				idSchema("dashboard_id", "Dashboard identifier"),
			), confirmedSchema),
			required: []string{"customer_id", "dashboard_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				customerID, err := requireStringArg(args, "customer_id")
				if err != nil {
					return nil, err
				}
				dashboardID, err := requireStringArg(args, "dashboard_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.AssignDashboardToCustomer(ctx, customerID, dashboardID, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerTelemetryTools(registry *Registry, client *resources.Client) error {
	entitySchema := mergeSchemas(
		idSchema("entity_type", "Entity type, e.g. DEVICE or ASSET"),
		idSchema("entity_id", "Entity identifier"),
	)
	tools := []*funcTool{
		{
			name:        "get_attributes",
			description: "Read attribute values for an entity",
			parameters: mergeSchemas(entitySchema, map[string]any{
				"keys": map[string]any{"type": "array", "description": "Attribute keys; omit for all"},
			}),
			required: []string{"entity_type", "entity_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				keys, err := stringSliceArg(args, "keys")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetAttributes(ctx, entityType, entityID, keys)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "get_timeseries",
			description: "Read timeseries values for an entity",
			parameters: mergeSchemas(entitySchema, map[string]any{
				"keys":     map[string]any{"type": "array", "description": "Timeseries keys"},
				"start_ts": map[string]any{"type": "integer", "description": "Range start, epoch milliseconds"},
				"end_ts":   map[string]any{"type": "integer", "description": "Range end, epoch milliseconds"},
				"limit":    map[string]any{"type": "integer", "description": "Maximum datapoints per key"},
			}),
			required: []string{"entity_type", "entity_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				keys, err := stringSliceArg(args, "keys")
				if err != nil {
					return nil, err
				}
				startTS, err := intArg(args, "start_ts")
				if err != nil {
					return nil, err
				}
				endTS, err := intArg(args, "end_ts")
				if err != nil {
					return nil, err
				}
				limit, err := intArg(args, "limit")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetTimeseries(ctx, entityType, entityID, resources.TimeseriesQuery{
					Keys:    keys,
					StartTS: startTS,
					EndTS:   endTS,
					Limit:   int(limit),
				})
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_attributes",
			description: "Write attribute values into a scope (SERVER_SCOPE, SHARED_SCOPE or CLIENT_SCOPE)",
			parameters: mergeSchemas(mergeSchemas(entitySchema, map[string]any{
				"scope":      map[string]any{"type": "string", "description": "Attribute scope"},
				"attributes": map[string]any{"type": "object", "description": "Attribute key/value pairs"},
			}), confirmedSchema),
			required: []string{"entity_type", "entity_id", "scope", "attributes"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				scope, err := requireStringArg(args, "scope")
				if err != nil {
					return nil, err
				}
				attributes, err := paramsArg(args, "attributes")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveAttributes(ctx, entityType, entityID, scope, attributes, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_attributes",
			description: "Delete attribute keys from a scope",
			parameters: mergeSchemas(mergeSchemas(entitySchema, map[string]any{
				"scope": map[string]any{"type": "string", "description": "Attribute scope"},
				"keys":  map[string]any{"type": "array", "description": "Attribute keys to delete"},
			}), confirmedSchema),
			required: []string{"entity_type", "entity_id", "scope", "keys"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				scope, err := requireStringArg(args, "scope")
				if err != nil {
					return nil, err
				}
				keys, err := stringSliceArg(args, "keys")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteAttributes(ctx, entityType, entityID, scope, keys, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_timeseries",
			description: "Delete timeseries keys for an entity",
			parameters: mergeSchemas(mergeSchemas(entitySchema, map[string]any{
				"keys":          map[string]any{"type": "array", "description": "Timeseries keys to delete"},
				"delete_latest": map[string]any{"type": "boolean", "description": "Delete only the latest values"},
				"rewrite_latest_if_deleted": map[string]any{
					"type":        "boolean",
					"description": "Recompute the latest value after deletion",
				},
			}), confirmedSchema),
			required: []string{"entity_type", "entity_id", "keys"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityID, err := requireStringArg(args, "entity_id")
				if err != nil {
					return nil, err
				}
				keys, err := stringSliceArg(args, "keys")
				if err != nil {
					return nil, err
				}
				deleteLatest, err := boolArg(args, "delete_latest")
				if err != nil {
					return nil, err
				}
				rewriteLatest, err := boolArg(args, "rewrite_latest_if_deleted")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteTimeseries(
					ctx, entityType, entityID, keys, deleteLatest, rewriteLatest, confirmed,
				)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerEntityTools(registry *Registry, client *resources.Client) error {
	querySchema := map[string]any{
		"query": map[string]any{"type": "object", "description": "Entity query body"},
	}
	tools := []*funcTool{
		{
			name:        "count_entities_by_query",
			description: "Count entities matching an entity query",
			parameters:  querySchema,
			required:    []string{"query"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				query, err := paramsArg(args, "query")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.CountByQuery(ctx, query)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "find_entities_by_query",
			description: "Find entities matching an entity query",
			parameters:  querySchema,
			required:    []string{"query"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				query, err := paramsArg(args, "query")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.FindByQuery(ctx, query)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "find_entity_keys_by_query",
			description: "Find attribute and timeseries keys for entities matching a query",
			parameters:  querySchema,
			required:    []string{"query"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				query, err := paramsArg(args, "query")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.FindKeysByQuery(ctx, query)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "get_entities_by_ids",
			description: "Fetch several entities of one type by their identifiers",
			parameters: mergeSchemas(idSchema("entity_type", "Entity type, e.g. DEVICE"), map[string]any{
				"entity_ids": map[string]any{"type": "array", "description": "Entity identifiers"},
			}),
			required: []string{"entity_type", "entity_ids"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				entityType, err := requireStringArg(args, "entity_type")
				if err != nil {
					return nil, err
				}
				entityIDs, err := stringSliceArg(args, "entity_ids")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetEntitiesByIDs(ctx, entityType, entityIDs)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerRelationTools(registry *Registry, client *resources.Client) error {
	refSchema := map[string]any{
		"from_id":   map[string]any{"type": "string", "description": "Source entity identifier"},
		"from_type": map[string]any{"type": "string", "description": "Source entity type"},
		"to_id":     map[string]any{"type": "string", "description": "Target entity identifier"},
		"to_type":   map[string]any{"type": "string", "description": "Target entity type"},
		"type":      map[string]any{"type": "string", "description": "Relation type, e.g. Contains"},
	}
	relationRefFromArgs := func(args map[string]any) (resources.RelationRef, error) {
		fromID, err := stringArg(args, "from_id")
		if err != nil {
			return resources.RelationRef{}, err
		}
		fromType, err := stringArg(args, "from_type")
		if err != nil {
			return resources.RelationRef{}, err
		}
		toID, err := stringArg(args, "to_id")
		if err != nil {
			return resources.RelationRef{}, err
		}
		toType, err := stringArg(args, "to_type")
		if err != nil {
			return resources.RelationRef{}, err
		}
		relationType, err := stringArg(args, "type")
		if err != nil {
			return resources.RelationRef{}, err
		}
		return resources.RelationRef{
			FromID:   fromID,
			FromType: fromType,
			ToID:     toID,
			ToType:   toType,
			Type:     relationType,
		}, nil
	}

	tools := []*funcTool{
		{
			name:        "get_relation",
			description: "Fetch a single relation between two entities",
			parameters:  refSchema,
			required:    []string{"from_id", "from_type", "to_id", "to_type", "type"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				ref, err := relationRefFromArgs(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetRelation(ctx, ref)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_relations",
			description: "List relations originating from an entity",
			parameters: map[string]any{
				"from_id":   map[string]any{"type": "string", "description": "Source entity identifier"},
				"from_type": map[string]any{"type": "string", "description": "Source entity type"},
				"with_info": map[string]any{"type": "boolean", "description": "Include related entity names"},
			},
			required: []string{"from_id", "from_type"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				fromID, err := requireStringArg(args, "from_id")
				if err != nil {
					return nil, err
				}
				fromType, err := requireStringArg(args, "from_type")
				if err != nil {
					return nil, err
				}
				withInfo, err := boolArg(args, "with_info")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListRelations(ctx, fromID, fromType, withInfo)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_relation",
			description: "Create or update a relation",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveRelation(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_relation",
			description: "Delete a relation between two entities",
			parameters:  mergeSchemas(refSchema, confirmedSchema),
			required:    []string{"from_id", "from_type", "to_id", "to_type", "type"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				ref, err := relationRefFromArgs(args)
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteRelation(ctx, ref, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerTenantTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_tenant_by_id",
			description: "Fetch a single tenant",
			parameters:  idSchema("tenant_id", "Tenant identifier"),
			required:    []string{"tenant_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				tenantID, err := requireStringArg(args, "tenant_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetTenantByID(ctx, tenantID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_tenants",
			description: "List tenants",
			parameters:  pageParameterSchema(),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListTenants(ctx, pageQuery)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerUserTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_user_by_id",
			description: "Fetch a single user",
			parameters:  idSchema("user_id", "User identifier"),
			required:    []string{"user_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				userID, err := requireStringArg(args, "user_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetUserByID(ctx, userID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_users",
			description: "List users",
			parameters:  pageParameterSchema(),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListUsers(ctx, pageQuery)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_user",
			description: "Create a user, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveUser(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_user",
			description: "Delete a user",
			parameters:  mergeSchemas(idSchema("user_id", "User identifier"), confirmedSchema),
			required:    []string{"user_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				userID, err := requireStringArg(args, "user_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteUser(ctx, userID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerRuleChainTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "get_rule_chain",
			description: "Fetch a single rule chain",
			parameters:  idSchema("rule_chain_id", "Rule chain identifier"),
			required:    []string{"rule_chain_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				ruleChainID, err := requireStringArg(args, "rule_chain_id")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.GetRuleChain(ctx, ruleChainID)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "list_rule_chains",
			description: "List rule chains",
			parameters:  pageParameterSchema(),
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				pageQuery, err := pageQueryArg(args)
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.ListRuleChains(ctx, pageQuery)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
		{
			name:        "save_rule_chain",
			description: "Create a rule chain, or update one by including its id in the body",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SaveRuleChain(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "delete_rule_chain",
			description: "Delete a rule chain",
			parameters:  mergeSchemas(idSchema("rule_chain_id", "Rule chain identifier"), confirmedSchema),
			required:    []string{"rule_chain_id"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				ruleChainID, err := requireStringArg(args, "rule_chain_id")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.DeleteRuleChain(ctx, ruleChainID, confirmed)
				return dispatchResult("DELETE", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerNotificationTools(registry *Registry, client *resources.Client) error {
	tools := []*funcTool{
		{
			name:        "send_notification",
			description: "Send a notification request",
			parameters:  mergeSchemas(bodySchema, confirmedSchema),
			required:    []string{"body"},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				body, err := paramsArg(args, "body")
				if err != nil {
					return nil, err
				}
				confirmed, err := boolArg(args, "confirmed")
				if err != nil {
					return nil, err
				}
				outcome, dispatchErr := client.SendNotification(ctx, body, confirmed)
				return dispatchResult("POST", outcome, dispatchErr)
			},
		},
		{
			name:        "list_notification_delivery_methods",
			description: "List the available notification delivery methods",
			parameters:  map[string]any{},
			handler: func(ctx context.Context, args map[string]any) (any, error) {
				outcome, dispatchErr := client.ListNotificationDeliveryMethods(ctx)
				return dispatchResult("GET", outcome, dispatchErr)
			},
		},
	}
	return registerAll(registry, tools)
}

func registerAll(registry *Registry, tools []*funcTool) error {
	for _, tool := range tools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}
	return nil
}
