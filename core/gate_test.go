package core

import (
	"strings"
	"testing"
)

func TestMutationGateReadsAndConfirmedProceed(t *testing.T) {
	gate := MutationGate{}

	if decision := gate.Evaluate(NewRequestSpec("GET", "device/abc", nil, nil), false); !decision.Proceed {
		t.Fatal("reads must proceed unconfirmed")
	}
	if decision := gate.Evaluate(NewRequestSpec("DELETE", "device/abc", nil, nil), true); !decision.Proceed {
		t.Fatal("confirmed mutations must proceed")
	}
}

func TestMutationGateDescriptorMessages(t *testing.T) {
	gate := MutationGate{}

	tests := []struct {
		method string
		want   string
	}{
		{"POST", "create or add new data"},
		{"PUT", "update existing data"},
		{"DELETE", "permanently remove data"},
		{"PATCH", "perform a PATCH operation"},
	}
	for _, tc := range tests {
		decision := gate.Evaluate(NewRequestSpec(tc.method, "device", nil, nil), false)
		if decision.Proceed || decision.Descriptor == nil {
			t.Fatalf("%s: expected descriptor", tc.method)
		}
		if !strings.Contains(decision.Descriptor.Message, tc.want) {
			t.Fatalf("%s: message %q missing %q", tc.method, decision.Descriptor.Message, tc.want)
		}
		if !strings.Contains(decision.Descriptor.Message, "endpoint: device") {
			t.Fatalf("%s: message %q missing endpoint", tc.method, decision.Descriptor.Message)
		}
		if !strings.HasSuffix(decision.Descriptor.Message, "Do you want to proceed?") {
			t.Fatalf("%s: message %q missing prompt", tc.method, decision.Descriptor.Message)
		}
	}
}

func TestMutationGateDescriptorIncludesData(t *testing.T) {
	gate := MutationGate{}

	spec := NewRequestSpec("POST", "device", Params{"page": 1}, Params{"name": "sensor-1"})
	decision := gate.Evaluate(spec, false)
	if decision.Descriptor == nil {
		t.Fatal("expected descriptor")
	}
	if !strings.Contains(decision.Descriptor.Message, `data: {"name":"sensor-1"}`) {
		t.Fatalf("message %q missing data info", decision.Descriptor.Message)
	}

	// The descriptor echoes the spec exactly and replays into the same call.
	replay := decision.Descriptor.Spec()
	if replay.Method != spec.Method || replay.Endpoint != spec.Endpoint {
		t.Fatalf("replayed spec differs: %+v vs %+v", replay, spec)
	}
	if replay.Params["page"] != 1 || replay.JSONData["name"] != "sensor-1" {
		t.Fatalf("replayed spec lost parameters: %+v", replay)
	}

	// Without a body, the data segment is absent.
	bare := gate.Evaluate(NewRequestSpec("DELETE", "device/abc", nil, nil), false)
	if strings.Contains(bare.Descriptor.Message, "data:") {
		t.Fatalf("bare message should not mention data: %q", bare.Descriptor.Message)
	}
}
