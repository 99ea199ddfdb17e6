package garment

import (
	"image"
	"math"
)

// Vector3 is the builder's intermediate representation for positions and
// normals. The renderer consumes the OBJ serialization, so the builder does
// not depend on any rendering backend.
type Vector3 struct {
	X, Y, Z float64
}

// UV is a 2D texture coordinate in the 0..1 range.
type UV struct {
	U, V float64
}

// Face is a triangle as three indices into a part's vertex arrays.
type Face [3]int

// Material carries the shading parameters a renderer needs for one or more
// parts. All non-decal parts share a single instance.
type Material struct {
	Color     string
	Roughness float64
	Metalness float64

	// Decal-only flags. Opacity 0 hides the print surface without removing
	// the part; depth-write stays off and the polygon offset biases the
	// shell toward the camera so it never z-fights the torso.
	Opacity       float64
	DoubleSided   bool
	DepthWrite    bool
	PolygonOffset float64

	// Map is the bound artwork, nil when the decal is clear. Version is
	// bumped on every map change so a renderer knows to re-upload.
	Map     image.Image
	Version uint64
}

// SetMap binds or clears the material's texture map.
func (m *Material) SetMap(img image.Image) {
	m.Map = img
	if img != nil {
		m.Opacity = 1
	} else {
		m.Opacity = 0
	}
	m.Version++
}

// Part is one disjoint piece of the garment with its own geometry and a
// shared or per-part material reference.
type Part struct {
	Name      string
	Positions []Vector3
	Normals   []Vector3
	UVs       []UV
	Faces     []Face
	Material  *Material

	CastShadow    bool
	ReceiveShadow bool
}

// Translate moves every vertex of the part by the given offset.
func (p *Part) Translate(dx, dy, dz float64) {
	for i := range p.Positions {
		p.Positions[i].X += dx
		p.Positions[i].Y += dy
		p.Positions[i].Z += dz
	}
}

// Scale multiplies positions componentwise around the part's local origin.
// Normals are scaled by the inverse and renormalized.
func (p *Part) Scale(sx, sy, sz float64) {
	for i := range p.Positions {
		p.Positions[i].X *= sx
		p.Positions[i].Y *= sy
		p.Positions[i].Z *= sz
	}
	for i := range p.Normals {
		n := p.Normals[i]
		n = Vector3{n.X / sx, n.Y / sy, n.Z / sz}
		p.Normals[i] = normalize(n)
	}
}

// RotateZ rotates the part about the Z axis through its local origin.
func (p *Part) RotateZ(angle float64) {
	sin, cos := math.Sincos(angle)
	rot := func(v Vector3) Vector3 {
		return Vector3{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos, v.Z}
	}
	for i := range p.Positions {
		p.Positions[i] = rot(p.Positions[i])
	}
	for i := range p.Normals {
		p.Normals[i] = rot(p.Normals[i])
	}
}

// RotateX rotates the part about the X axis through its local origin.
func (p *Part) RotateX(angle float64) {
	sin, cos := math.Sincos(angle)
	rot := func(v Vector3) Vector3 {
		return Vector3{v.X, v.Y*cos - v.Z*sin, v.Y*sin + v.Z*cos}
	}
	for i := range p.Positions {
		p.Positions[i] = rot(p.Positions[i])
	}
	for i := range p.Normals {
		p.Normals[i] = rot(p.Normals[i])
	}
}

func normalize(v Vector3) Vector3 {
	l := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if l == 0 {
		return v
	}
	return Vector3{v.X / l, v.Y / l, v.Z / l}
}

// newCylinder builds a capped cylinder with independent top and bottom radii,
// centered at the origin with height along Y.
func newCylinder(name string, radiusTop, radiusBottom, height float64, segments int) *Part {
	p := &Part{Name: name}
	half := height / 2

	// Side rings: top then bottom, one vertex per segment plus a seam
	// duplicate so UV wrapping stays contiguous.
	for ring := 0; ring < 2; ring++ {
		radius := radiusTop
		y := half
		if ring == 1 {
			radius = radiusBottom
			y = -half
		}
		for i := 0; i <= segments; i++ {
			theta := float64(i) / float64(segments) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			p.Positions = append(p.Positions, Vector3{radius * sin, y, radius * cos})
			// Slope-less side normal; the taper is shallow enough that the
			// radial normal reads correctly.
			p.Normals = append(p.Normals, Vector3{sin, 0, cos})
			p.UVs = append(p.UVs, UV{float64(i) / float64(segments), 1 - float64(ring)})
		}
	}
	stride := segments + 1
	for i := 0; i < segments; i++ {
		a, b := i, i+1
		c, d := stride+i, stride+i+1
		p.Faces = append(p.Faces, Face{a, c, b}, Face{b, c, d})
	}

	// Caps.
	for ring := 0; ring < 2; ring++ {
		radius := radiusTop
		y := half
		ny := 1.0
		if ring == 1 {
			radius = radiusBottom
			y = -half
			ny = -1.0
		}
		center := len(p.Positions)
		p.Positions = append(p.Positions, Vector3{0, y, 0})
		p.Normals = append(p.Normals, Vector3{0, ny, 0})
		p.UVs = append(p.UVs, UV{0.5, 0.5})
		for i := 0; i <= segments; i++ {
			theta := float64(i) / float64(segments) * 2 * math.Pi
			sin, cos := math.Sincos(theta)
			p.Positions = append(p.Positions, Vector3{radius * sin, y, radius * cos})
			p.Normals = append(p.Normals, Vector3{0, ny, 0})
			p.UVs = append(p.UVs, UV{(sin + 1) / 2, (cos + 1) / 2})
		}
		for i := 0; i < segments; i++ {
			a, b := center+1+i, center+2+i
			if ring == 0 {
				p.Faces = append(p.Faces, Face{center, a, b})
			} else {
				p.Faces = append(p.Faces, Face{center, b, a})
			}
		}
	}
	return p
}

// newTorus builds a torus in the XZ plane (already "lying flat"), centered at
// the origin.
func newTorus(name string, majorRadius, minorRadius float64, radialSegments, tubeSegments int) *Part {
	p := &Part{Name: name}
	for i := 0; i <= radialSegments; i++ {
		u := float64(i) / float64(radialSegments) * 2 * math.Pi
		sinU, cosU := math.Sincos(u)
		for j := 0; j <= tubeSegments; j++ {
			v := float64(j) / float64(tubeSegments) * 2 * math.Pi
			sinV, cosV := math.Sincos(v)
			center := Vector3{majorRadius * cosU, 0, majorRadius * sinU}
			pos := Vector3{
				(majorRadius + minorRadius*cosV) * cosU,
				minorRadius * sinV,
				(majorRadius + minorRadius*cosV) * sinU,
			}
			p.Positions = append(p.Positions, pos)
			p.Normals = append(p.Normals, normalize(Vector3{pos.X - center.X, pos.Y - center.Y, pos.Z - center.Z}))
			p.UVs = append(p.UVs, UV{float64(i) / float64(radialSegments), float64(j) / float64(tubeSegments)})
		}
	}
	stride := tubeSegments + 1
	for i := 0; i < radialSegments; i++ {
		for j := 0; j < tubeSegments; j++ {
			a := i*stride + j
			b := a + 1
			c := a + stride
			d := c + 1
			p.Faces = append(p.Faces, Face{a, c, b}, Face{b, c, d})
		}
	}
	return p
}

// newHemisphere builds the upper half of a sphere of the given radius,
// centered at the origin.
func newHemisphere(name string, radius float64, widthSegments, heightSegments int) *Part {
	p := &Part{Name: name}
	for ring := 0; ring <= heightSegments; ring++ {
		phi := float64(ring) / float64(heightSegments) * (math.Pi / 2)
		sinPhi, cosPhi := math.Sincos(phi)
		for i := 0; i <= widthSegments; i++ {
			theta := float64(i) / float64(widthSegments) * 2 * math.Pi
			sinTheta, cosTheta := math.Sincos(theta)
			pos := Vector3{
				radius * sinPhi * sinTheta,
				radius * cosPhi,
				radius * sinPhi * cosTheta,
			}
			p.Positions = append(p.Positions, pos)
			p.Normals = append(p.Normals, normalize(pos))
			p.UVs = append(p.UVs, UV{float64(i) / float64(widthSegments), 1 - float64(ring)/float64(heightSegments)})
		}
	}
	stride := widthSegments + 1
	for ring := 0; ring < heightSegments; ring++ {
		for i := 0; i < widthSegments; i++ {
			a := ring*stride + i
			b := a + 1
			c := a + stride
			d := c + 1
			p.Faces = append(p.Faces, Face{a, c, b}, Face{b, c, d})
		}
	}
	return p
}

// newCylinderShell builds an open partial cylinder of the given angular span,
// centered on the front-facing (+Z) direction.
func newCylinderShell(name string, radius, height, arc float64, radialSegments, heightSegments int) *Part {
	p := &Part{Name: name}
	for ring := 0; ring <= heightSegments; ring++ {
		y := height/2 - float64(ring)/float64(heightSegments)*height
		for i := 0; i <= radialSegments; i++ {
			theta := -arc/2 + float64(i)/float64(radialSegments)*arc
			sin, cos := math.Sincos(theta)
			p.Positions = append(p.Positions, Vector3{radius * sin, y, radius * cos})
			p.Normals = append(p.Normals, Vector3{sin, 0, cos})
			p.UVs = append(p.UVs, UV{float64(i) / float64(radialSegments), 1 - float64(ring)/float64(heightSegments)})
		}
	}
	stride := radialSegments + 1
	for ring := 0; ring < heightSegments; ring++ {
		for i := 0; i < radialSegments; i++ {
			a := ring*stride + i
			b := a + 1
			c := a + stride
			d := c + 1
			p.Faces = append(p.Faces, Face{a, c, b}, Face{b, c, d})
		}
	}
	return p
}
