package core

import (
	"encoding/json"
	"testing"
)

func TestNewRequestSpecNormalization(t *testing.T) {
	tests := []struct {
		method       string
		endpoint     string
		wantMethod   string
		wantEndpoint string
	}{
		{"get", "device/abc", "GET", "device/abc"},
		{" post ", "/device", "POST", "device"},
		{"DELETE", " /alarm/a1 ", "DELETE", "alarm/a1"},
	}
	for _, tc := range tests {
		spec := NewRequestSpec(tc.method, tc.endpoint, nil, nil)
		if spec.Method != tc.wantMethod {
			t.Fatalf("%q: expected method %q, got %q", tc.method, tc.wantMethod, spec.Method)
		}
		if spec.Endpoint != tc.wantEndpoint {
			t.Fatalf("%q: expected endpoint %q, got %q", tc.endpoint, tc.wantEndpoint, spec.Endpoint)
		}
	}
}

func TestRequestSpecValidate(t *testing.T) {
	if err := (RequestSpec{}).Validate(); err == nil {
		t.Fatal("expected error for empty spec")
	}
	if err := (RequestSpec{Method: "GET"}).Validate(); err == nil {
		t.Fatal("expected error for missing endpoint")
	}
	if err := NewRequestSpec("GET", "device/abc", nil, nil).Validate(); err != nil {
		t.Fatalf("valid spec rejected: %v", err)
	}
}

func TestRequestSpecIsRead(t *testing.T) {
	if !NewRequestSpec("get", "device", nil, nil).IsRead() {
		t.Fatal("GET is a read")
	}
	if NewRequestSpec("POST", "device", nil, nil).IsRead() {
		t.Fatal("POST is not a read")
	}
}

func TestNewParamsDropsBlankAndNil(t *testing.T) {
	params := NewParams(map[string]any{
		"pageSize": 10,
		"  ":       "blank key",
		"absent":   nil,
		" sort ":   "createdTime",
	})
	if len(params) != 2 {
		t.Fatalf("expected 2 params, got %d: %#v", len(params), params)
	}
	if params["sort"] != "createdTime" {
		t.Fatalf("expected trimmed key, got %#v", params)
	}
	if NewParams(nil) != nil {
		t.Fatal("empty input yields nil params")
	}
	if NewParams(map[string]any{"only": nil}) != nil {
		t.Fatal("all-nil input yields nil params")
	}
}

func TestParamsStringMap(t *testing.T) {
	params := Params{
		"pageSize": 10,
		"active":   true,
		"search":   " sensor ",
	}
	rendered := params.StringMap()
	if rendered["pageSize"] != "10" || rendered["active"] != "true" || rendered["search"] != "sensor" {
		t.Fatalf("unexpected rendering %#v", rendered)
	}
}

func TestParamsCloneIsIndependent(t *testing.T) {
	original := Params{"key": "value"}
	cloned := original.Clone()
	cloned["key"] = "changed"
	if original["key"] != "value" {
		t.Fatal("clone must not alias the original")
	}
	if Params(nil).Clone() != nil {
		t.Fatal("nil params clone to nil")
	}
}

func TestConfirmationDescriptorWireShape(t *testing.T) {
	descriptor := ConfirmationDescriptor{
		RequiresPermission: true,
		Method:             "DELETE",
		Endpoint:           "device/abc",
		Message:            "confirm?",
	}
	encoded, err := json.Marshal(descriptor)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var wire map[string]any
	if err := json.Unmarshal(encoded, &wire); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"requires_permission", "method", "endpoint", "params", "json_data", "message"} {
		if _, ok := wire[key]; !ok {
			t.Fatalf("missing wire key %q in %s", key, encoded)
		}
	}
	if wire["params"] != nil {
		t.Fatalf("empty params must serialize as null, got %v", wire["params"])
	}
	if wire["json_data"] != nil {
		t.Fatalf("empty json_data must serialize as null, got %v", wire["json_data"])
	}
}

func TestSuccessMarker(t *testing.T) {
	marker := SuccessMarker()
	if marker["success"] != true {
		t.Fatalf("unexpected marker %#v", marker)
	}
	marker["success"] = false
	if SuccessMarker()["success"] != true {
		t.Fatal("marker must be a fresh map per call")
	}
}

func TestOutcomeRequiresConfirmation(t *testing.T) {
	if (Outcome{}).RequiresConfirmation() {
		t.Fatal("plain outcome requires no confirmation")
	}
	gated := Outcome{Confirmation: &ConfirmationDescriptor{RequiresPermission: true}}
	if !gated.RequiresConfirmation() {
		t.Fatal("descriptor outcome requires confirmation")
	}
}
