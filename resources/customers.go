package resources

import (
	"context"
	"fmt"

	"github.com/apachler/thingsboard-mcp-server/core"
)

func (c *Client) GetCustomerByID(ctx context.Context, customerID string) (core.Outcome, error) {
	customerID, err := requireID("customer id", customerID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.get(ctx, "customer/"+customerID, nil)
}

func (c *Client) ListCustomers(ctx context.Context, query PageQuery) (core.Outcome, error) {
	return c.get(ctx, "customers", query.params())
}

func (c *Client) SaveCustomer(ctx context.Context, customer core.Params, confirmed bool) (core.Outcome, error) {
	if len(customer) == 0 {
		return core.Outcome{}, fmt.Errorf("resources: customer body is required")
	}
	return c.mutate(ctx, "POST", "customer", nil, customer, confirmed)
}

func (c *Client) DeleteCustomer(ctx context.Context, customerID string, confirmed bool) (core.Outcome, error) {
	customerID, err := requireID("customer id", customerID)
	if err != nil {
		return core.Outcome{}, err
	}
	return c.mutate(ctx, "DELETE", "customer/"+customerID, nil, nil, confirmed)
}
