package octree

import "math/bits"

// Number of uint32 words per node slot: one header word followed by the 8
// octant material ids packed 4 per word.
const NodeWords = 3

const (
	branchMaskShift = 24
	farFlagBit      = 1 << 23
	relPtrMask      = 0x7fffff
)

// A node header packs the branch bitmask (bits 31-24), the far flag (bit 23)
// and the 23 bit relative child pointer (bits 22-0) into a single word.
//
// Bit i of the branch bitmask marks octant i as an internal branch. For
// branch octants the corresponding material byte carries no meaning.
type Header uint32

// Assemble a header from its three fields. The relative pointer is truncated
// to its 23 bit storage width.
func NewHeader(branchMask uint8, far bool, relPtr uint32) Header {
	h := Header(branchMask)<<branchMaskShift | Header(relPtr&relPtrMask)
	if far {
		h |= farFlagBit
	}
	return h
}

// Get the per-octant branch bitmask.
func (h Header) BranchMask() uint8 {
	return uint8(h >> branchMaskShift)
}

// Check whether the given octant is an internal branch.
func (h Header) IsBranch(octant int) bool {
	return h.BranchMask()&(1<<uint(octant)) != 0
}

// Check whether the child pointer requires a far-page indirection. The
// relative pointer field is only 23 bits wide; when set, the pointer targets
// an auxiliary slot whose header word holds an extra offset to add.
func (h Header) Far() bool {
	return h&farFlagBit != 0
}

// Get the child pointer relative to the global pointer of the node that owns
// this header.
func (h Header) RelPtr() uint32 {
	return uint32(h) & relPtrMask
}

// Get the position of a branch octant's child node within the contiguous
// child block: the number of branch bits set at octant positions below it.
func (h Header) ChildOffset(octant int) uint32 {
	prefix := h.BranchMask() & uint8(1<<uint(octant)-1)
	return uint32(bits.OnesCount8(prefix))
}

// Pack the 8 octant material ids into the two material words of a node slot.
func PackMaterials(materials [8]uint8) [2]uint32 {
	var words [2]uint32
	for octant, id := range materials {
		words[octant/4] |= uint32(id) << uint(8*(octant%4))
	}
	return words
}
