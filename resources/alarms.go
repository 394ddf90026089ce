package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// AlarmQuery narrows an alarm listing beyond the shared page parameters.
type AlarmQuery struct {
	PageQuery
	SearchStatus    string
	Severity        string
	StartTime       int64
	EndTime         int64
	FetchOriginator bool
}

func (c *Client) GetAlarmByID(ctx context.Context, alarmID string) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "alarm/info/"+alarmID, nil)
}

func (c *Client) ListAlarms(
	ctx context.Context,
	entityType string,
	entityID string,
	query AlarmQuery,
) (core.Outcome, error) {
	entityType, err := requireID("entity type", entityType)
	if err != nil {
		return core.Outcome{}, err
	}
	entityID, err = requireID("entity id", entityID)
	if err != nil {
		return core.Outcome{}, err
	}

	params := query.params()
	if status := strings.TrimSpace(query.SearchStatus); status != "" {
		params["searchStatus"] = strings.ToUpper(status)
	}
	if severity := strings.TrimSpace(query.Severity); severity != "" {
		params["severity"] = strings.ToUpper(severity)
	}
	if query.StartTime > 0 {
		params["startTime"] = query.StartTime
	}
	if query.EndTime > 0 {
		params["endTime"] = query.EndTime
	}
	if query.FetchOriginator {
		params["fetchOriginator"] = true
	}

	endpoint := fmt.Sprintf("alarm/%s/%s", strings.ToUpper(entityType), entityID)
	return c.get(ctx, endpoint, params)
}

func (c *Client) CreateAlarm(ctx context.Context, alarm core.Params, confirmed bool) (core.Outcome, error) {
	if len(alarm) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: alarm body is required")
	}
	return c.mutate(ctx, "POST", "alarm", nil, alarm, confirmed)
}

func (c *Client) AcknowledgeAlarm(ctx context.Context, alarmID string, confirmed bool) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "POST", "alarm/"+alarmID+"/ack", nil, nil, confirmed)
}

func (c *Client) ClearAlarm(ctx context.Context, alarmID string, confirmed bool) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "POST", "alarm/"+alarmID+"/clear", nil, nil, confirmed)
}

func (c *Client) DeleteAlarm(ctx context.Context, alarmID string, confirmed bool) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "alarm/"+alarmID, nil, nil, confirmed)
}

func (c *Client) AssignAlarm(
	ctx context.Context,
	alarmID string,
	assigneeID string,
	confirmed bool,
) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	assigneeID, err = requireID("assignee id", assigneeID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "POST", "alarm/"+alarmID+"/assign/"+assigneeID, nil, nil, confirmed)
}

func (c *Client) UnassignAlarm(ctx context.Context, alarmID string, confirmed bool) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "alarm/"+alarmID+"/assign", nil, nil, confirmed)
}

func (c *Client) AddAlarmComment(
	ctx context.Context,
	alarmID string,
	comment core.Params,
	confirmed bool,
) (core.Outcome, error) {
	alarmID, err := requireID("alarm id", alarmID)
	if err != nil {
		return core.Outcome{}, err
	}
	if len(comment) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: comment body is required")
	}
	return c.mutate(ctx, "POST", "alarm/"+alarmID+"/comment", nil, comment, confirmed)
}
