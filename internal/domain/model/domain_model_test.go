//go:build !integration

package model

import "testing"

func TestRawService_Activable(t *testing.T) {
	cases := []struct {
		name      string
		available string
		entitled  string
		want      bool
	}{
		{"available and entitled", "yes", "yes", true},
		{"entitled but unavailable on this machine", "no", "yes", false},
		{"available but not covered by the contract", "yes", "no", false},
		{"neither", "no", "no", false},
		{"missing flags", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := RawService{Name: "esm-infra", Available: tc.available, Entitled: tc.entitled}
			if got := svc.Activable(); got != tc.want {
				t.Errorf("Activable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestServiceFromRaw(t *testing.T) {
	raw := RawService{
		Name:        "livepatch",
		Description: "Canonical Livepatch service",
		Available:   "yes",
		Entitled:    "yes",
		AutoEnabled: "yes",
	}
	svc := ServiceFromRaw(raw)
	if svc.Name != raw.Name || svc.Description != raw.Description {
		t.Errorf("fields not carried over: %+v", svc)
	}
	if !svc.AutoEnabled {
		t.Error("auto_enabled=yes should map to true")
	}

	raw.AutoEnabled = "no"
	if ServiceFromRaw(raw).AutoEnabled {
		t.Error("auto_enabled=no should map to false")
	}
}
