package octree

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/Stroby241/svoray/log"
)

// Magic value at the start of packed octree snapshot streams.
const snapshotMagic uint32 = 0x53564f31 // "SVO1"

// The packed snapshot layout, all fields little-endian:
//
//	u32 magic
//	u32 pageBits
//	u32 maxDepth
//	u32 page table entry count
//	u32 node word count
//	entries: (u32 pageID, i32 slot) pairs, ascending by pageID
//	words:   u32 node slab
type snapshotFileHeader struct {
	Magic      uint32
	PageBits   uint32
	MaxDepth   uint32
	EntryCount uint32
	WordCount  uint32
}

// Read a packed octree snapshot produced by the external tree builder.
func ReadFile(path string) (*Snapshot, error) {
	logger := log.New("octree")

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("octree: %s", err.Error())
	}
	defer f.Close()

	snap, err := Read(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("octree: could not parse %s: %s", path, err.Error())
	}

	logger.Infof("loaded %s: depth %d, %d resident pages of %d nodes, %d node slots",
		path, snap.MaxDepth(), snap.PageCount(), snap.PageSize(), snap.NodeCapacity())
	return snap, nil
}

// Read a packed octree snapshot from a stream.
func Read(r io.Reader) (*Snapshot, error) {
	var header snapshotFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if header.Magic != snapshotMagic {
		return nil, fmt.Errorf("unsupported magic value %08x", header.Magic)
	}

	entries := make([]PageEntry, header.EntryCount)
	if err := binary.Read(r, binary.LittleEndian, entries); err != nil {
		return nil, err
	}

	words := make([]uint32, header.WordCount)
	if err := binary.Read(r, binary.LittleEndian, words); err != nil {
		return nil, err
	}

	table, err := NewPageTable(entries)
	if err != nil {
		return nil, err
	}

	return NewSnapshot(header.PageBits, header.MaxDepth, table, words)
}
