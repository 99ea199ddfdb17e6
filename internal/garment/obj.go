package garment

import (
	"bufio"
	"fmt"
	"io"
)

// WriteOBJ serializes the garment as Wavefront OBJ, one object per part.
// Indices are global and 1-based per the format. Parts can be filtered by
// the keep predicate (nil keeps everything); the exporter uses this to skip
// the decal when no artwork is bound.
func WriteOBJ(w io.Writer, g *Garment, keep func(*Part) bool) error {
	bw := bufio.NewWriter(w)
	offset := 1
	for _, part := range g.Parts {
		if keep != nil && !keep(part) {
			continue
		}
		fmt.Fprintf(bw, "o %s\n", part.Name)
		for _, v := range part.Positions {
			fmt.Fprintf(bw, "v %f %f %f\n", v.X, v.Y, v.Z)
		}
		for _, uv := range part.UVs {
			fmt.Fprintf(bw, "vt %f %f\n", uv.U, uv.V)
		}
		for _, n := range part.Normals {
			fmt.Fprintf(bw, "vn %f %f %f\n", n.X, n.Y, n.Z)
		}
		for _, f := range part.Faces {
			a, b, c := f[0]+offset, f[1]+offset, f[2]+offset
			if len(part.UVs) == len(part.Positions) {
				fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
			} else {
				fmt.Fprintf(bw, "f %d//%d %d//%d %d//%d\n", a, a, b, b, c, c)
			}
		}
		offset += len(part.Positions)
	}
	return bw.Flush()
}
