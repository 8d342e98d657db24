package octree

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func packTestSnapshot(t *testing.T, magic, pageBits, maxDepth uint32, entries []PageEntry, words []uint32) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	header := snapshotFileHeader{
		Magic:      magic,
		PageBits:   pageBits,
		MaxDepth:   maxDepth,
		EntryCount: uint32(len(entries)),
		WordCount:  uint32(len(words)),
	}
	for _, block := range []interface{}{header, entries, words} {
		if err := binary.Write(&buf, binary.LittleEndian, block); err != nil {
			t.Fatal(err)
		}
	}
	return &buf
}

func TestReadSnapshot(t *testing.T) {
	entries := []PageEntry{
		{PageID: 0, Slot: 0},
		{PageID: 2, Slot: 1},
	}
	words := make([]uint32, 8*NodeWords)
	words[0] = uint32(NewHeader(0x01, false, 1))

	buf := packTestSnapshot(t, snapshotMagic, 2, 5, entries, words)
	snap, err := Read(buf)
	if err != nil {
		t.Fatal(err)
	}

	if snap.PageBits() != 2 {
		t.Fatalf("expected page bits 2; got %d", snap.PageBits())
	}
	if snap.MaxDepth() != 5 {
		t.Fatalf("expected max depth 5; got %d", snap.MaxDepth())
	}
	if snap.PageCount() != 2 {
		t.Fatalf("expected 2 resident pages; got %d", snap.PageCount())
	}
	if snap.NodeCapacity() != 8 {
		t.Fatalf("expected node capacity 8; got %d", snap.NodeCapacity())
	}
	if got := snap.ReadHeader(0); got.RelPtr() != 1 || got.BranchMask() != 0x01 {
		t.Fatalf("expected root header to survive the round trip; got %08x", uint32(got))
	}
}

func TestReadSnapshotErrors(t *testing.T) {
	// bad magic
	buf := packTestSnapshot(t, 0xdeadbeef, 2, 5, nil, make([]uint32, NodeWords))
	if _, err := Read(buf); err == nil {
		t.Fatal("expected bad magic value to be rejected")
	}

	// truncated stream
	buf = packTestSnapshot(t, snapshotMagic, 2, 5, nil, make([]uint32, NodeWords))
	truncated := bytes.NewReader(buf.Bytes()[:buf.Len()-4])
	if _, err := Read(truncated); err == nil {
		t.Fatal("expected truncated stream to be rejected")
	}

	// unsorted page table
	buf = packTestSnapshot(t, snapshotMagic, 2, 5, []PageEntry{
		{PageID: 2, Slot: 0},
		{PageID: 0, Slot: 1},
	}, make([]uint32, 8*NodeWords))
	if _, err := Read(buf); err == nil {
		t.Fatal("expected unsorted page table to be rejected")
	}
}
