package resources

import (
	"context"
	"fmt"
	"strings"

	"github.com/apachler/thingsboard-mcp-server/core"
)

// RelationRef names one side of a relation plus the relation type.
type RelationRef struct {
	FromID   string
	FromType string
	ToID     string
	ToType   string
	Type     string
}

func (r RelationRef) params() (core.Params, error) {
	fromID := strings.TrimSpace(r.FromID)
	toID := strings.TrimSpace(r.ToID)
	relationType := strings.TrimSpace(r.Type)
	if fromID == "" || toID == "" || relationType == "" {
		return nil, fmt.Errorf("resources: relation from id, to id and type are required")
	}
	return core.Params{
		"fromId":            fromID,
		"fromType":          strings.ToUpper(strings.TrimSpace(r.FromType)),
		"toId":              toID,
		"toType":            strings.ToUpper(strings.TrimSpace(r.ToType)),
		"relationType":      relationType,
		"relationTypeGroup": "COMMON",
	}, nil
}

func (c *Client) GetRelation(ctx context.Context, ref RelationRef) (core.Outcome, error) {
	params, err := ref.params()
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "relation", params)
}

// ListRelations lists relations originating from an entity. When
// withInfo is set the platform includes the related entity names.
func (c *Client) ListRelations(
	ctx context.Context,
	fromID string,
	fromType string,
	withInfo bool,
) (core.Outcome, error) {
	fromID, err := requireID("from id", fromID)
	if err != nil {
		return core.Outcome{}, err
	}
	fromType, err = requireID("from type", fromType)
	if err != nil {
		return core.Outcome{}, err
	}

	params := core.Params{
		"fromId":   fromID,
		"fromType": strings.ToUpper(fromType),
	}
	endpoint := "relations"
	if withInfo {
		endpoint = "relations/info"
	}
	return c.get(ctx, endpoint, params)
}

func (c *Client) SaveRelation(ctx context.Context, relation core.Params, confirmed bool) (core.Outcome, error) {
	if len(relation) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: relation body is required")
	}
	return c.mutate(ctx, "POST", "relation", nil, relation, confirmed)
}

func (c *Client) DeleteRelation(ctx context.Context, ref RelationRef, confirmed bool) (core.Outcome, error) {
	params, err := ref.params()
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "relation", params, nil, confirmed)
}
