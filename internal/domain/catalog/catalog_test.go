package catalog_test

import (
	"testing"

	"github.com/punxlabs/teampulse/internal/domain/catalog"
)

func TestRolesFor_DesignTeam(t *testing.T) {
	roles := catalog.RolesFor(catalog.TeamDesign)
	want := []string{"Production Lead", "3D Animator", "AI Artist", "Lead AI Artist"}
	if len(roles) != len(want) {
		t.Fatalf("RolesFor(%q) = %v", catalog.TeamDesign, roles)
	}
	for i, r := range want {
		if roles[i] != r {
			t.Errorf("roles[%d] = %q, want %q", i, roles[i], r)
		}
	}
}

func TestRolesFor_EmptyTeam(t *testing.T) {
	if roles := catalog.RolesFor(""); len(roles) != 0 {
		t.Errorf("empty team should have empty role catalog, got %v", roles)
	}
}

func TestValidRole_AcrossTeamChange(t *testing.T) {
	// A role valid for one team is invalid after switching to a team whose
	// catalog does not contain it.
	if !catalog.ValidRole(catalog.TeamDesign, "3D Animator") {
		t.Error("3D Animator should be valid for Design & Creatives")
	}
	if catalog.ValidRole(catalog.TeamContent, "3D Animator") {
		t.Error("3D Animator should be invalid for Content")
	}
}

func TestValidRole_EmptyRoleAlwaysValid(t *testing.T) {
	if !catalog.ValidRole("", "") {
		t.Error("empty role with empty team should be valid")
	}
	if !catalog.ValidRole(catalog.TeamTech, "") {
		t.Error("empty role should be valid for any team")
	}
	if catalog.ValidRole("", "Developer") {
		t.Error("non-empty role requires a team catalog containing it")
	}
}

func TestToolsFor_TeamExtras(t *testing.T) {
	base := catalog.ToolsFor("")
	tech := catalog.ToolsFor(catalog.TeamTech)

	if len(tech) <= len(base) {
		t.Fatalf("expected team extras beyond the base list, base=%d team=%d", len(base), len(tech))
	}
	// Base tools come first, in catalog order.
	for i, v := range base {
		if tech[i] != v {
			t.Errorf("tech[%d] = %q, want base tool %q", i, tech[i], v)
		}
	}
}

func TestCatalogCopiesAreIndependent(t *testing.T) {
	a := catalog.Skills()
	a[0] = "mutated"
	if b := catalog.Skills(); b[0] == "mutated" {
		t.Error("catalog accessors must return copies")
	}
}

func TestValidTeam(t *testing.T) {
	if !catalog.ValidTeam("") {
		t.Error("empty team should be valid")
	}
	if !catalog.ValidTeam(catalog.TeamOperations) {
		t.Error("known team should be valid")
	}
	if catalog.ValidTeam("Skunkworks") {
		t.Error("unknown team should be invalid")
	}
}
