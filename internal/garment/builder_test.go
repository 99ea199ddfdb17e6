package garment

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"server/internal/domain"
)

func partNames(g *Garment) map[string]bool {
	names := make(map[string]bool, len(g.Parts))
	for _, p := range g.Parts {
		names[p.Name] = true
	}
	return names
}

func TestBuildSleeveConfigurations(t *testing.T) {
	cases := []struct {
		sleeve    domain.SleeveLength
		wantParts []string
		banned    []string
	}{
		{domain.SleeveNone, []string{PartCapLeft, PartCapRight}, []string{PartSleeveLeft, PartSleeveRight}},
		{domain.SleeveShort, []string{PartSleeveLeft, PartSleeveRight}, []string{PartCapLeft, PartCapRight}},
		{domain.SleeveLong, []string{PartSleeveLeft, PartSleeveRight}, []string{PartCapLeft, PartCapRight}},
	}
	for _, tc := range cases {
		g := Build(tc.sleeve, domain.FabricCotton, "#ffffff")
		names := partNames(g)
		for _, want := range append([]string{PartTorso, PartCollar, PartDecal}, tc.wantParts...) {
			if !names[want] {
				t.Fatalf("sleeve %s: missing part %s", tc.sleeve, want)
			}
		}
		for _, banned := range tc.banned {
			if names[banned] {
				t.Fatalf("sleeve %s: unexpected part %s", tc.sleeve, banned)
			}
		}
		if len(g.Parts) != 5 {
			t.Fatalf("sleeve %s: part count = %d, want 5", tc.sleeve, len(g.Parts))
		}
	}
}

func TestMaterialTable(t *testing.T) {
	cases := []struct {
		fabric    domain.Fabric
		roughness float64
		metalness float64
	}{
		{domain.FabricCotton, 0.9, 0.0},
		{domain.FabricPerformancePoly, 0.5, 0.1},
		{domain.FabricSilkBlend, 0.3, 0.2},
	}
	for _, tc := range cases {
		r, m := MaterialFor(tc.fabric)
		if r != tc.roughness || m != tc.metalness {
			t.Fatalf("%s: got (%.2f, %.2f), want (%.2f, %.2f)", tc.fabric, r, m, tc.roughness, tc.metalness)
		}
	}
}

func TestBuildSharedBodyMaterial(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#c0ffee")
	if g.Body.Roughness != 0.9 || g.Body.Metalness != 0 {
		t.Fatalf("cotton body material = %+v", g.Body)
	}
	if g.Body.Color != "#c0ffee" {
		t.Fatalf("body color = %s", g.Body.Color)
	}
	for _, p := range g.Parts {
		if p.Name == PartDecal {
			if p.Material != g.Decal {
				t.Fatalf("decal part does not reference the decal material")
			}
			continue
		}
		if p.Material != g.Body {
			t.Fatalf("part %s does not share the body material", p.Name)
		}
	}
}

func TestDecalMaterialFlags(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	d := g.Decal
	if d.Opacity != 0 {
		t.Fatalf("decal starts at opacity %.1f, want 0", d.Opacity)
	}
	if !d.DoubleSided || d.DepthWrite {
		t.Fatalf("decal flags = doubleSided %v depthWrite %v", d.DoubleSided, d.DepthWrite)
	}
	if d.PolygonOffset >= 0 {
		t.Fatalf("decal polygon offset = %.1f, want negative", d.PolygonOffset)
	}
	if g.DecalPart() == nil {
		t.Fatal("decal part must always exist")
	}
}

func TestSleeveLengths(t *testing.T) {
	for sleeve, want := range map[domain.SleeveLength]float64{
		domain.SleeveShort: 0.6,
		domain.SleeveLong:  1.6,
	} {
		g := Build(sleeve, domain.FabricCotton, "#ffffff")
		p := g.Part(PartSleeveLeft)
		if p == nil {
			t.Fatalf("sleeve %s: no left sleeve part", sleeve)
		}
		minY, maxY := math.Inf(1), math.Inf(-1)
		for _, v := range p.Positions {
			minY = math.Min(minY, v.Y)
			maxY = math.Max(maxY, v.Y)
		}
		// Extent along the rotated axis: project onto the sleeve direction
		// instead; vertical span alone is length*cos(angle) plus radius play,
		// so check the overall diagonal is at least the sleeve length.
		span := maxY - minY
		atLeast := want * math.Cos(sleeveAngle)
		if span < atLeast {
			t.Fatalf("sleeve %s: vertical span %.3f < %.3f", sleeve, span, atLeast)
		}
	}
}

func TestSleevesMirrored(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	left, right := g.Part(PartSleeveLeft), g.Part(PartSleeveRight)
	if len(left.Positions) != len(right.Positions) {
		t.Fatalf("sleeve vertex counts differ: %d vs %d", len(left.Positions), len(right.Positions))
	}
	var leftX, rightX float64
	for i := range left.Positions {
		leftX += left.Positions[i].X
		rightX += right.Positions[i].X
	}
	leftX /= float64(len(left.Positions))
	rightX /= float64(len(right.Positions))
	if math.Abs(leftX+rightX) > 1e-9 {
		t.Fatalf("sleeves not mirrored: centroids %.4f and %.4f", leftX, rightX)
	}
	if leftX >= 0 || rightX <= 0 {
		t.Fatalf("sleeves on wrong sides: %.4f / %.4f", leftX, rightX)
	}
}

func TestTorsoFlattened(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	torso := g.Part(PartTorso)
	var maxX, maxZ float64
	for _, v := range torso.Positions {
		maxX = math.Max(maxX, math.Abs(v.X))
		maxZ = math.Max(maxZ, math.Abs(v.Z))
	}
	if math.Abs(maxX-torsoRadius) > 1e-6 {
		t.Fatalf("torso width radius = %.4f, want %.4f", maxX, torsoRadius)
	}
	if math.Abs(maxZ-torsoRadius*depthScale) > 1e-6 {
		t.Fatalf("torso depth radius = %.4f, want %.4f", maxZ, torsoRadius*depthScale)
	}
}

func TestSetBaseColorMutatesInPlace(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	torso := g.Part(PartTorso)
	before := g.Body.Version
	g.SetBaseColor("#112233")
	if torso.Material.Color != "#112233" {
		t.Fatalf("torso material color = %s after SetBaseColor", torso.Material.Color)
	}
	if g.Body.Version == before {
		t.Fatal("material version must advance on color change")
	}
}

func TestWriteOBJ(t *testing.T) {
	g := Build(domain.SleeveShort, domain.FabricCotton, "#ffffff")
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, g, nil); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"o torso", "o collar", "o sleeve_left", "o print_decal", "\nv ", "\nvt ", "\nvn ", "\nf "} {
		if !strings.Contains(out, want) {
			t.Fatalf("OBJ output missing %q", want)
		}
	}

	var skipped bytes.Buffer
	err := WriteOBJ(&skipped, g, func(p *Part) bool { return p.Name != PartDecal })
	if err != nil {
		t.Fatalf("WriteOBJ with filter: %v", err)
	}
	if strings.Contains(skipped.String(), "o print_decal") {
		t.Fatal("filtered OBJ still contains the decal part")
	}
}
