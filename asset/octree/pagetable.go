package octree

import (
	"fmt"
	"sort"
)

// A page table entry maps a logical page id to the physical slot the page
// currently occupies inside the node store.
type PageEntry struct {
	PageID uint32
	Slot   int32
}

// The page table is the sorted directory of all resident pages. It is
// rebuilt wholesale by the paging policy whenever residency changes and is
// strictly read-only for the duration of a render dispatch.
type PageTable struct {
	entries []PageEntry
}

// Create a page table from the given directory entries. Entries must be
// sorted in ascending page id order and contain no duplicates.
func NewPageTable(entries []PageEntry) (*PageTable, error) {
	for i := 1; i < len(entries); i++ {
		if entries[i].PageID <= entries[i-1].PageID {
			return nil, fmt.Errorf("octree: page table entry %d violates sorted/unique page id order", i)
		}
	}

	return &PageTable{entries: entries}, nil
}

// Look up the physical slot for a logical page id. Returns false if the page
// is not resident.
func (pt *PageTable) Lookup(pageID uint32) (int32, bool) {
	i := sort.Search(len(pt.entries), func(i int) bool {
		return pt.entries[i].PageID >= pageID
	})
	if i == len(pt.entries) || pt.entries[i].PageID != pageID {
		return 0, false
	}
	return pt.entries[i].Slot, true
}

// Get the number of resident pages.
func (pt *PageTable) Len() int {
	return len(pt.entries)
}
