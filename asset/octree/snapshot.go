package octree

import "fmt"

// Default log2 of the page size in nodes.
const DefaultPageBits = 12

// A snapshot pairs a page table with the flat node store slab it indexes
// into. Both are owned and mutated by the external paging subsystem between
// render passes; during a dispatch a snapshot is immutable and may be read
// concurrently by any number of traversals.
//
// Node pointers are logical addresses into a virtual, unbounded node address
// space. A pointer splits into pageID = ptr >> pageBits and an in-page
// offset; the page table maps the page id to the physical region of the slab
// that holds the page.
type Snapshot struct {
	pageBits uint32
	maxDepth uint32

	table *PageTable
	words []uint32
}

// Create a snapshot over a node word slab. The slab length must be a
// multiple of the node slot size and hold every slot the page table maps.
func NewSnapshot(pageBits, maxDepth uint32, table *PageTable, words []uint32) (*Snapshot, error) {
	if pageBits == 0 || pageBits > 20 {
		return nil, fmt.Errorf("octree: unsupported page bits %d", pageBits)
	}
	if maxDepth == 0 || maxDepth > 22 {
		return nil, fmt.Errorf("octree: unsupported max depth %d", maxDepth)
	}
	if len(words)%NodeWords != 0 {
		return nil, fmt.Errorf("octree: node slab length %d is not a multiple of the %d word slot size", len(words), NodeWords)
	}

	pageSize := uint32(1) << pageBits
	nodeCapacity := uint32(len(words) / NodeWords)
	for _, entry := range table.entries {
		if entry.Slot < 0 || (uint32(entry.Slot)+1)*pageSize > nodeCapacity {
			return nil, fmt.Errorf("octree: page %d slot %d exceeds node store capacity %d", entry.PageID, entry.Slot, nodeCapacity)
		}
	}

	return &Snapshot{
		pageBits: pageBits,
		maxDepth: maxDepth,
		table:    table,
		words:    words,
	}, nil
}

// Convert a global node pointer into a physical node store index. Returns
// false if the pointer's page is not resident.
func (s *Snapshot) Translate(ptr uint32) (uint32, bool) {
	pageID := ptr >> s.pageBits
	offset := ptr & (1<<s.pageBits - 1)

	slot, ok := s.table.Lookup(pageID)
	if !ok {
		return 0, false
	}
	return offset + uint32(slot)<<s.pageBits, true
}

// Read the header of the node at a physical index. The index must come from
// a successful Translate call.
func (s *Snapshot) ReadHeader(physIdx uint32) Header {
	return Header(s.words[physIdx*NodeWords])
}

// Read the raw header word of the node at a physical index. Used to resolve
// far pointers, whose auxiliary slot stores a plain pointer offset in place
// of a header.
func (s *Snapshot) ReadHeaderWord(physIdx uint32) uint32 {
	return s.words[physIdx*NodeWords]
}

// Read the material id of the given octant of the node at a physical index.
func (s *Snapshot) ReadMaterial(physIdx uint32, octant int) uint8 {
	word := s.words[physIdx*NodeWords+1+uint32(octant/4)]
	return uint8(word >> uint(8*(octant%4)))
}

// Get the octree depth. The root volume spans 1<<maxDepth voxel units per
// axis and node sizes halve each level down from it.
func (s *Snapshot) MaxDepth() uint32 {
	return s.maxDepth
}

// Get the root volume edge length in voxel units.
func (s *Snapshot) RootSize() uint32 {
	return 1 << s.maxDepth
}

// Get the log2 of the page size.
func (s *Snapshot) PageBits() uint32 {
	return s.pageBits
}

// Get the page size in nodes.
func (s *Snapshot) PageSize() uint32 {
	return 1 << s.pageBits
}

// Get the number of resident pages.
func (s *Snapshot) PageCount() int {
	return s.table.Len()
}

// Get the total node slot capacity of the store.
func (s *Snapshot) NodeCapacity() uint32 {
	return uint32(len(s.words) / NodeWords)
}
