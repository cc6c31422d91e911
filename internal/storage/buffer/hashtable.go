package buffer

import (
	"fmt"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// pageTable maps a page identity (file id, page number) to the frame caching
// it. Chained hash table sized to roughly 1.2x the frame count, rounded to an
// odd number, to keep expected chain length low.
type pageTable struct {
	buckets []*tableEntry
}

type tableEntry struct {
	fileID   util.FileID
	pageNo   util.PageID
	frameIdx int
	next     *tableEntry
}

func tableSize(frames int) int {
	return (int(float64(frames)*1.2) &^ 1) + 1
}

func newPageTable(frames int) *pageTable {
	return &pageTable{buckets: make([]*tableEntry, tableSize(frames))}
}

func (pt *pageTable) bucket(fileID util.FileID, pageNo util.PageID) int {
	return int((uint64(fileID) + uint64(pageNo)) % uint64(len(pt.buckets)))
}

// lookup returns the frame caching the page. A miss is a normal branch,
// reported through ok rather than an error.
func (pt *pageTable) lookup(fileID util.FileID, pageNo util.PageID) (int, bool) {
	for e := pt.buckets[pt.bucket(fileID, pageNo)]; e != nil; e = e.next {
		if e.fileID == fileID && e.pageNo == pageNo {
			return e.frameIdx, true
		}
	}
	return -1, false
}

// insert records the page identity as cached in frameIdx
func (pt *pageTable) insert(fileID util.FileID, pageNo util.PageID, frameIdx int) error {
	idx := pt.bucket(fileID, pageNo)
	for e := pt.buckets[idx]; e != nil; e = e.next {
		if e.fileID == fileID && e.pageNo == pageNo {
			return fmt.Errorf("insert page %d of file %d: %w", pageNo, fileID, util.ErrDuplicatePage)
		}
	}
	pt.buckets[idx] = &tableEntry{
		fileID:   fileID,
		pageNo:   pageNo,
		frameIdx: frameIdx,
		next:     pt.buckets[idx],
	}
	return nil
}

// remove drops the page identity from the table
func (pt *pageTable) remove(fileID util.FileID, pageNo util.PageID) error {
	idx := pt.bucket(fileID, pageNo)
	for link := &pt.buckets[idx]; *link != nil; link = &(*link).next {
		if e := *link; e.fileID == fileID && e.pageNo == pageNo {
			*link = e.next
			return nil
		}
	}
	return fmt.Errorf("remove page %d of file %d: %w", pageNo, fileID, util.ErrPageNotFound)
}

// entries returns the number of identities currently in the table
func (pt *pageTable) entries() int {
	n := 0
	for _, e := range pt.buckets {
		for ; e != nil; e = e.next {
			n++
		}
	}
	return n
}
