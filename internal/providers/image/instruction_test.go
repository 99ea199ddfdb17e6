package image

import (
	"strings"
	"testing"

	"server/internal/domain"
)

func TestBuildInstruction(t *testing.T) {
	req := GenerateRequest{
		Theme:                 domain.ThemeSpace,
		Prompt:                "a ringed planet over a nebula",
		BaseColor:             "#000000",
		TransparentBackground: true,
	}
	got := BuildInstruction(req)
	for _, expect := range []string{
		"a ringed planet over a nebula",
		"space themed",
		"#000000",
		"Square composition",
		"Transparent background",
	} {
		if !strings.Contains(got, expect) {
			t.Fatalf("instruction missing %q: %s", expect, got)
		}
	}
	if strings.Contains(got, "Solid background") {
		t.Fatalf("transparent request asks for solid background: %s", got)
	}
}

func TestBuildInstructionSolidBackground(t *testing.T) {
	got := BuildInstruction(GenerateRequest{Theme: domain.ThemeRetro, Prompt: "sunset grid"})
	if !strings.Contains(got, "Solid background") {
		t.Fatalf("instruction missing solid background directive: %s", got)
	}
}
