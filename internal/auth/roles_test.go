// ABOUTME: Tests for the Role enumeration and membership checks
// ABOUTME: Ensures unknown role strings are rejected rather than passed through

package auth

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input   string
		want    Role
		wantErr bool
	}{
		{input: "admin", want: RoleAdmin},
		{input: "project_manager", want: RoleProjectManager},
		{input: "member", want: RoleMember},
		{input: "viewer", want: RoleViewer},
		// The spelling with a space is exactly the drift a checked enum exists
		// to catch.
		{input: "project manager", wantErr: true},
		{input: "Admin", wantErr: true},
		{input: "", wantErr: true},
		{input: "owner", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRoleIn(t *testing.T) {
	if !RoleMember.In(RoleProjectManager, RoleMember) {
		t.Error("member should be in {project_manager, member}")
	}
	if RoleViewer.In(RoleProjectManager, RoleMember) {
		t.Error("viewer should not be in {project_manager, member}")
	}
	if RoleAdmin.In() {
		t.Error("no role should be in the empty set")
	}
}
