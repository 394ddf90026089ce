package resources

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetRuleChain(ctx context.Context, ruleChainID string) (core.Outcome, error) {
	ruleChainID, err := requireID("rule chain id", ruleChainID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "ruleChain/"+ruleChainID, nil)
}

func (c *Client) ListRuleChains(ctx context.Context, query PageQuery) (core.Outcome, error) {
	return c.get(ctx, "ruleChains", query.params())
}

func (c *Client) SaveRuleChain(ctx context.Context, ruleChain core.Params, confirmed bool) (core.Outcome, error) {
	if len(ruleChain) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: rule chain body is required")
	}
	return c.mutate(ctx, "POST", "ruleChain", nil, ruleChain, confirmed)
}

func (c *Client) DeleteRuleChain(ctx context.Context, ruleChainID string, confirmed bool) (core.Outcome, error) {
	ruleChainID, err := requireID("rule chain id", ruleChainID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "ruleChain/"+ruleChainID, nil, nil, confirmed)
}
