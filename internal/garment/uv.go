package garment

// RecomputeDecalUVs maps the full source image across the decal's visible
// sector. Standard cylindrical UV generation does not align a rectangular
// image onto a narrow angular sector, so UVs are derived directly from each
// vertex's local position: u from the horizontal coordinate over the
// effective chord width, v from the vertical coordinate over the decal
// height. Pure function of position; calling it again yields identical UVs.
func RecomputeDecalUVs(p *Part) {
	uvs := make([]UV, len(p.Positions))
	for i, pos := range p.Positions {
		uvs[i] = UV{
			U: pos.X/decalChord + 0.5,
			V: pos.Y/DecalHeight + 0.5,
		}
	}
	p.UVs = uvs
}
