package garment

import (
	"math"

	"server/internal/domain"
)

// Part names used across the builder, the texture binder and the exporter.
const (
	PartTorso       = "torso"
	PartCollar      = "collar"
	PartSleeveLeft  = "sleeve_left"
	PartSleeveRight = "sleeve_right"
	PartCapLeft     = "shoulder_cap_left"
	PartCapRight    = "shoulder_cap_right"
	PartDecal       = "print_decal"
)

// Geometry constants. The decal shell is slightly wider than the torso so it
// hugs the curvature instead of floating as a flat plane; the sector chord
// divisor is a little wider than the true chord to avoid edge stretching.
const (
	torsoRadius = 0.55
	torsoHeight = 1.5
	depthScale  = 0.5

	collarMajorRadius = 0.22
	collarMinorRadius = 0.04
	collarY           = 0.78

	shoulderX = 0.52
	shoulderY = 0.68
	// Sleeves swing outward from vertical so they angle down from the
	// shoulder; left and right mirror around the vertical axis.
	sleeveAngle = math.Pi / 3.5

	DecalRadius = 0.56
	DecalHeight = 0.7
	DecalArc    = 1.6
	decalChord  = 0.82
	decalY      = 0.12

	radialSegments = 32
)

type sleeveParam struct {
	Length       float64
	TopRadius    float64
	BottomRadius float64
}

// sleeveParams keys geometry on sleeve length; sleeveless garments take
// shoulder caps instead.
var sleeveParams = map[domain.SleeveLength]sleeveParam{
	domain.SleeveShort: {Length: 0.6, TopRadius: 0.22, BottomRadius: 0.20},
	domain.SleeveLong:  {Length: 1.6, TopRadius: 0.22, BottomRadius: 0.15},
}

type fabricParam struct {
	Roughness float64
	Metalness float64
}

var fabricParams = map[domain.Fabric]fabricParam{
	domain.FabricCotton:          {Roughness: 0.9, Metalness: 0.0},
	domain.FabricPerformancePoly: {Roughness: 0.5, Metalness: 0.1},
	domain.FabricSilkBlend:       {Roughness: 0.3, Metalness: 0.2},
}

// MaterialFor returns the (roughness, metalness) pair for a fabric category.
func MaterialFor(fabric domain.Fabric) (roughness, metalness float64) {
	p, ok := fabricParams[fabric]
	if !ok {
		p = fabricParams[domain.FabricCotton]
	}
	return p.Roughness, p.Metalness
}

// Garment is the complete set of disjoint parts plus the two materials: one
// shared by every fabric part and one owned by the print decal.
type Garment struct {
	Parts []*Part
	Body  *Material
	Decal *Material
}

// Part returns the named part, or nil.
func (g *Garment) Part(name string) *Part {
	for _, p := range g.Parts {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// DecalPart returns the print-decal surface. It always exists.
func (g *Garment) DecalPart() *Part {
	return g.Part(PartDecal)
}

// SetBaseColor mutates the shared body material in place; no rebuild.
func (g *Garment) SetBaseColor(hex string) {
	g.Body.Color = hex
	g.Body.Version++
}

// Build constructs a complete garment mesh for the given options. All inputs
// are closed enumerations, so there is no failure path.
func Build(sleeve domain.SleeveLength, fabric domain.Fabric, baseColor string) *Garment {
	roughness, metalness := MaterialFor(fabric)
	body := &Material{
		Color:      baseColor,
		Roughness:  roughness,
		Metalness:  metalness,
		Opacity:    1,
		DepthWrite: true,
	}
	decal := &Material{
		Color:         "#ffffff",
		Roughness:     roughness,
		Metalness:     0,
		Opacity:       0,
		DoubleSided:   true,
		DepthWrite:    false,
		PolygonOffset: -4,
	}

	g := &Garment{Body: body, Decal: decal}

	torso := newCylinder(PartTorso, torsoRadius, torsoRadius, torsoHeight, radialSegments)
	torso.Scale(1, 1, depthScale)
	torso.Material = body
	torso.CastShadow = true
	torso.ReceiveShadow = true
	g.Parts = append(g.Parts, torso)

	collar := newTorus(PartCollar, collarMajorRadius, collarMinorRadius, radialSegments, 12)
	collar.Translate(0, collarY, 0)
	collar.Material = body
	collar.CastShadow = true
	g.Parts = append(g.Parts, collar)

	if param, ok := sleeveParams[sleeve]; ok {
		g.Parts = append(g.Parts,
			buildSleeve(PartSleeveLeft, param, -1, body),
			buildSleeve(PartSleeveRight, param, 1, body),
		)
	} else {
		g.Parts = append(g.Parts,
			buildShoulderCap(PartCapLeft, -1, body),
			buildShoulderCap(PartCapRight, 1, body),
		)
	}

	g.Parts = append(g.Parts, buildDecal(decal))
	return g
}

// buildSleeve makes one tapered sleeve cylinder pivoted at the shoulder. The
// geometry is shifted so its top sits at the local origin before rotation, so
// the rotation swings the sleeve downward from the shoulder joint.
func buildSleeve(name string, param sleeveParam, side float64, mat *Material) *Part {
	p := newCylinder(name, param.TopRadius, param.BottomRadius, param.Length, radialSegments)
	p.Translate(0, -param.Length/2, 0)
	p.RotateZ(side * sleeveAngle)
	p.Translate(side*shoulderX, shoulderY, 0)
	p.Material = mat
	p.CastShadow = true
	return p
}

// buildShoulderCap makes one hemispherical cap flattened vertically and in
// depth, smoothing the bare armhole edge on sleeveless garments.
func buildShoulderCap(name string, side float64, mat *Material) *Part {
	p := newHemisphere(name, sleeveParams[domain.SleeveShort].TopRadius, radialSegments, 8)
	p.Scale(1, 0.5, 0.5)
	p.Translate(side*shoulderX, shoulderY, 0)
	p.Material = mat
	p.CastShadow = true
	return p
}

// buildDecal makes the curved print surface. UVs are recomputed per vertex
// from local position before the group-level depth flattening, because
// standard cylindrical UVs do not align a rectangular image onto a narrow
// angular sector.
func buildDecal(mat *Material) *Part {
	p := newCylinderShell(PartDecal, DecalRadius, DecalHeight, DecalArc, radialSegments, 8)
	RecomputeDecalUVs(p)
	p.Scale(1, 1, depthScale)
	p.Translate(0, decalY, 0)
	p.Material = mat
	return p
}
