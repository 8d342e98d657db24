package svo

import (
	"github.com/Stroby241/svoray/asset/octree"
	"github.com/Stroby241/svoray/types"
)

// Per-ray traversal outcome.
type Status uint8

const (
	// The ray does not intersect any solid voxel. Also reported when the
	// step budget runs out; Result.Steps then equals the budget.
	StatusMiss Status = iota

	// The ray hit a solid leaf voxel.
	StatusHit

	// The decoded child octant index fell outside the 0-7 range. Signals
	// corrupted tree data or an arithmetic bug and is surfaced instead of
	// being folded into a miss.
	StatusCorrupt

	// A node pointer translated to a page that is not resident. The paging
	// side must guarantee residency of every page reachable from the root
	// before a dispatch, so this is a broken precondition, never a miss.
	StatusPageFault
)

func (s Status) String() string {
	switch s {
	case StatusMiss:
		return "miss"
	case StatusHit:
		return "hit"
	case StatusCorrupt:
		return "corrupt octant"
	case StatusPageFault:
		return "page fault"
	}
	return "unknown"
}

type Result struct {
	Status Status

	// Material id of the hit leaf; 0 unless Status is StatusHit.
	Material uint8

	// Accumulated travel distance from the ray origin.
	Distance float32

	// Number of traversal steps executed.
	Steps uint32

	// Number of restart-from-root events caused by empty leaf exits.
	Resets uint32
}

// The traversal cursor: the node the ray position currently lies in. A small
// value type rebuilt from the root on every empty-leaf exit; no parent stack
// is kept.
type traversalState struct {
	depth   uint32
	nodePos types.Vec3
	ptr     uint32
	phys    uint32
	header  octree.Header
}

// Offset applied after every boundary crossing so the advanced position does
// not land exactly on a node face.
const stepEpsilon = 1e-3

// Rebuild the traversal cursor at the root node (global pointer 0).
func enterRoot(snap *octree.Snapshot) (traversalState, bool) {
	phys, ok := snap.Translate(0)
	if !ok {
		return traversalState{}, false
	}

	return traversalState{
		depth:  1,
		ptr:    0,
		phys:   phys,
		header: snap.ReadHeader(phys),
	}, true
}

// Trace a single ray through the paged octree snapshot.
//
// The loop runs the descend/advance state machine of the kernel: translate
// the current pointer, decode the header, pick the child octant the ray
// position occupies and either descend (branch), skip ahead and restart from
// the root (empty leaf) or terminate (solid leaf). maxSteps bounds the loop
// as a liveness safeguard; running out of budget reports a miss.
func Traverse(snap *octree.Snapshot, ray Ray, maxSteps uint32) Result {
	rootSize := float32(snap.RootSize())
	rootMin := types.Vec3{}

	pos := ray.Origin
	var traveled float32

	// Advance the ray to the root volume if it starts outside of it.
	if !inBox(pos, rootMin, rootSize) {
		tMin, tMax, hit := intersectBox(pos, ray.InvDir, rootMin, rootSize)
		if !hit || tMax <= 0 {
			return Result{Status: StatusMiss}
		}

		traveled = maxf(tMin, 0) + stepEpsilon
		pos = pos.Add(ray.Dir.Mul(traveled))
		if !inBox(pos, rootMin, rootSize) {
			// Grazing entry; the nudged position missed the volume.
			return Result{Status: StatusMiss}
		}
	}

	st, ok := enterRoot(snap)
	if !ok {
		return Result{Status: StatusPageFault}
	}

	var resets uint32
	for step := uint32(0); step < maxSteps; step++ {
		childSize := float32(snap.RootSize() >> st.depth)
		if childSize < 1 {
			// Branch bits below the configured max depth.
			return Result{Status: StatusCorrupt, Distance: traveled, Steps: step, Resets: resets}
		}

		// One parity bit per axis selects the child octant.
		ix := int(floorf((pos[0] - st.nodePos[0]) / childSize))
		iy := int(floorf((pos[1] - st.nodePos[1]) / childSize))
		iz := int(floorf((pos[2] - st.nodePos[2]) / childSize))
		if uint(ix) > 1 || uint(iy) > 1 || uint(iz) > 1 {
			return Result{Status: StatusCorrupt, Distance: traveled, Steps: step, Resets: resets}
		}
		octant := ix | iy<<1 | iz<<2

		childMin := st.nodePos.Add(types.Vec3{float32(ix), float32(iy), float32(iz)}.Mul(childSize))

		if st.header.IsBranch(octant) {
			ptr := st.ptr + st.header.RelPtr()
			if st.header.Far() {
				// The 23 bit relative pointer cannot reach the child
				// block; the slot it points at holds the extra offset.
				farPhys, ok := snap.Translate(ptr)
				if !ok {
					return Result{Status: StatusPageFault, Distance: traveled, Steps: step, Resets: resets}
				}
				ptr += snap.ReadHeaderWord(farPhys)
			}
			ptr += st.header.ChildOffset(octant)

			phys, ok := snap.Translate(ptr)
			if !ok {
				return Result{Status: StatusPageFault, Distance: traveled, Steps: step, Resets: resets}
			}

			st = traversalState{
				depth:   st.depth + 1,
				nodePos: childMin,
				ptr:     ptr,
				phys:    phys,
				header:  snap.ReadHeader(phys),
			}
			continue
		}

		if matID := snap.ReadMaterial(st.phys, octant); matID != 0 {
			return Result{Status: StatusHit, Material: matID, Distance: traveled, Steps: step + 1, Resets: resets}
		}

		// Empty leaf: advance past its exit face and restart from the root.
		_, tMax, _ := intersectBox(pos, ray.InvDir, childMin, childSize)
		advance := tMax + stepEpsilon
		if !(advance > 0) {
			// Degenerate slab result; nudge forward so the loop cannot stall.
			advance = stepEpsilon
		}
		pos = pos.Add(ray.Dir.Mul(advance))
		traveled += advance

		if !inBox(pos, rootMin, rootSize) {
			return Result{Status: StatusMiss, Distance: traveled, Steps: step + 1, Resets: resets}
		}

		st, ok = enterRoot(snap)
		if !ok {
			return Result{Status: StatusPageFault, Distance: traveled, Steps: step + 1, Resets: resets}
		}
		resets++
	}

	return Result{Status: StatusMiss, Distance: traveled, Steps: maxSteps, Resets: resets}
}
