package material

import "github.com/Stroby241/svoray/types"

// Material id 0 marks an empty octant and is never resolved to a color.
const EmptyID = 0

// The material table maps the material ids stored in leaf octants to RGBA
// colors. Like the octree snapshot it is uploaded before a dispatch and
// read-only while rendering.
type Table [256]types.Vec4

// Resolve a leaf material id to its color.
func (t *Table) Resolve(id uint8) types.Vec4 {
	return t[id]
}

// Create the built-in palette used when no palette file is supplied. Ids
// without an explicit color fall back to a neutral gray so unknown materials
// remain visible.
func DefaultTable() *Table {
	var t Table
	for i := 1; i < len(t); i++ {
		t[i] = types.Vec4{0.6, 0.6, 0.6, 1}
	}

	t[1] = types.Vec4{0.47, 0.32, 0.18, 1} // dirt
	t[2] = types.Vec4{0.27, 0.55, 0.23, 1} // grass
	t[3] = types.Vec4{0.50, 0.50, 0.52, 1} // stone
	t[4] = types.Vec4{0.90, 0.85, 0.55, 1} // sand
	t[5] = types.Vec4{0.20, 0.35, 0.80, 1} // water
	t[6] = types.Vec4{0.95, 0.95, 0.98, 1} // snow
	t[7] = types.Vec4{0.65, 0.16, 0.16, 1} // brick

	return &t
}
