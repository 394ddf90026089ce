package resources

import (
	"context"
	"strings"
	"testing"

	"github.com/apachler/thingsboard-mcp-server/core"
)

type recordingDispatcher struct {
	specs     []core.RequestSpec
	confirmed []bool
	outcome   core.Outcome
	err       error
}

func (d *recordingDispatcher) Dispatch(
	_ context.Context,
	spec core.RequestSpec,
	confirmed bool,
) (core.Outcome, error) {
	d.specs = append(d.specs, spec)
	d.confirmed = append(d.confirmed, confirmed)
	return d.outcome, d.err
}

func (d *recordingDispatcher) DispatchConfirmed(ctx context.Context, spec core.RequestSpec) (core.Outcome, error) {
	return d.Dispatch(ctx, spec, true)
}

func newTestClient(t *testing.T) (*Client, *recordingDispatcher) {
	t.Helper()

	dispatcher := &recordingDispatcher{
		outcome: core.Outcome{StatusCode: 200, Payload: map[string]any{"id": "x"}},
	}
	client, err := NewClient(dispatcher)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client, dispatcher
}

func lastSpec(t *testing.T, dispatcher *recordingDispatcher) core.RequestSpec {
	t.Helper()

	if len(dispatcher.specs) == 0 {
		t.Fatal("expected a dispatched spec")
	}
	return dispatcher.specs[len(dispatcher.specs)-1]
}

func TestNewClientRequiresDispatcher(t *testing.T) {
	if _, err := NewClient(nil); err == nil {
		t.Fatal("expected error for nil dispatcher")
	}
}

func TestGetDeviceByID(t *testing.T) {
	client, dispatcher := newTestClient(t)

	if _, err := client.GetDeviceByID(context.Background(), " dev-1 "); err != nil {
		t.Fatalf("GetDeviceByID returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Method != "GET" || spec.Endpoint != "device/dev-1" {
		t.Fatalf("unexpected spec %+v", spec)
	}
}

func TestGetDeviceByIDRequiresID(t *testing.T) {
	client, dispatcher := newTestClient(t)

	if _, err := client.GetDeviceByID(context.Background(), "  "); err == nil {
		t.Fatal("expected validation error")
	}
	if len(dispatcher.specs) != 0 {
		t.Fatal("expected no dispatch on validation failure")
	}
}

func TestDeleteDeviceForwardsConfirmedFlag(t *testing.T) {
	client, dispatcher := newTestClient(t)

	if _, err := client.DeleteDevice(context.Background(), "dev-1", false); err != nil {
		t.Fatalf("DeleteDevice returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Method != "DELETE" || spec.Endpoint != "device/dev-1" {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if dispatcher.confirmed[0] {
		t.Fatal("expected unconfirmed dispatch")
	}

	if _, err := client.DeleteDevice(context.Background(), "dev-1", true); err != nil {
		t.Fatalf("DeleteDevice returned error: %v", err)
	}
	if !dispatcher.confirmed[1] {
		t.Fatal("expected confirmed dispatch")
	}
}

func TestPageQueryDefaults(t *testing.T) {
	client, dispatcher := newTestClient(t)

	if _, err := client.ListTenantDevices(context.Background(), PageQuery{}, ""); err != nil {
		t.Fatalf("ListTenantDevices returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Endpoint != "tenant/devices" {
		t.Fatalf("unexpected endpoint %q", spec.Endpoint)
	}
	if spec.Params["pageSize"] != 10 {
		t.Fatalf("expected default pageSize 10, got %v", spec.Params["pageSize"])
	}
	if spec.Params["page"] != 0 {
		t.Fatalf("expected page 0, got %v", spec.Params["page"])
	}
	if _, ok := spec.Params["textSearch"]; ok {
		t.Fatal("expected empty textSearch to be omitted")
	}
}

func TestListAlarmsBuildsParams(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.ListAlarms(context.Background(), "device", "dev-1", AlarmQuery{
		PageQuery:    PageQuery{PageSize: 25, Page: 2},
		SearchStatus: "active",
		Severity:     "critical",
	})
	if err != nil {
		t.Fatalf("ListAlarms returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Endpoint != "alarm/DEVICE/dev-1" {
		t.Fatalf("unexpected endpoint %q", spec.Endpoint)
	}
	if spec.Params["searchStatus"] != "ACTIVE" || spec.Params["severity"] != "CRITICAL" {
		t.Fatalf("unexpected params %v", spec.Params)
	}
	if spec.Params["pageSize"] != 25 {
		t.Fatalf("unexpected pageSize %v", spec.Params["pageSize"])
	}
}

func TestSaveAttributesValidatesScope(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.SaveAttributes(
		context.Background(),
		"device",
		"dev-1",
		"BOGUS_SCOPE",
		core.Params{"firmware": "1.2.3"},
		true,
	)
	if err == nil {
		t.Fatal("expected scope validation error")
	}
	if !strings.Contains(err.Error(), "invalid attribute scope") {
		t.Fatalf("unexpected error %v", err)
	}
	if len(dispatcher.specs) != 0 {
		t.Fatal("expected no dispatch on invalid scope")
	}

	_, err = client.SaveAttributes(
		context.Background(),
		"device",
		"dev-1",
		"server_scope",
		core.Params{"firmware": "1.2.3"},
		true,
	)
	if err != nil {
		t.Fatalf("SaveAttributes returned error: %v", err)
	}
	spec := lastSpec(t, dispatcher)
	if spec.Endpoint != "plugins/telemetry/DEVICE/dev-1/SERVER_SCOPE" {
		t.Fatalf("unexpected endpoint %q", spec.Endpoint)
	}
}

func TestEntityQueriesArePreConfirmed(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.FindByQuery(context.Background(), core.Params{"entityFilter": map[string]any{"type": "entityType"}})
	if err != nil {
		t.Fatalf("FindByQuery returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Method != "POST" || spec.Endpoint != "entitiesQuery/find" {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if !dispatcher.confirmed[0] {
		t.Fatal("expected entity query to bypass the confirmation gate")
	}
}

func TestDeleteRelationRequiresRef(t *testing.T) {
	client, dispatcher := newTestClient(t)

	if _, err := client.DeleteRelation(context.Background(), RelationRef{FromID: "a"}, true); err == nil {
		t.Fatal("expected relation validation error")
	}
	if len(dispatcher.specs) != 0 {
		t.Fatal("expected no dispatch on incomplete relation ref")
	}
}

func TestExecuteWithPermission(t *testing.T) {
	client, dispatcher := newTestClient(t)

	_, err := client.ExecuteWithPermission(
		context.Background(),
		"post",
		"/device",
		nil,
		core.Params{"name": "sensor"},
		false,
	)
	if err != nil {
		t.Fatalf("ExecuteWithPermission returned error: %v", err)
	}

	spec := lastSpec(t, dispatcher)
	if spec.Method != "POST" || spec.Endpoint != "device" {
		t.Fatalf("unexpected spec %+v", spec)
	}
	if dispatcher.confirmed[0] {
		t.Fatal("expected unconfirmed dispatch")
	}
}
