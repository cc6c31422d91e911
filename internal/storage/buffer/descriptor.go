package buffer

import (
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// descriptor tracks per-frame state. A frame with valid == false must satisfy
// the empty invariant: no identity, pinCount 0, refbit and dirty cleared.
type descriptor struct {
	frameIdx int
	file     file.Filer  // owning file, nil while invalid
	pageNo   util.PageID // page number within the owning file
	valid    bool
	refbit   bool // set on every access, cleared by the clock scan
	dirty    bool // sticky until write-back
	pinCount int32
}

// newDescriptors initializes the descriptor table for a pool of the given size
func newDescriptors(size int) []descriptor {
	descs := make([]descriptor, size)
	for i := range descs {
		descs[i].frameIdx = i
		descs[i].pageNo = util.InvalidPageID
	}
	return descs
}

// set marks the frame as caching a new page identity, pinned once.
// Called exactly once per identity, right after the frame was allocated.
func (d *descriptor) set(f file.Filer, pageNo util.PageID) {
	d.file = f
	d.pageNo = pageNo
	d.valid = true
	d.refbit = true
	d.dirty = false
	d.pinCount = 1
}

// clear resets the frame to the empty invariant, dropping its identity
func (d *descriptor) clear() {
	d.file = nil
	d.pageNo = util.InvalidPageID
	d.valid = false
	d.refbit = false
	d.dirty = false
	d.pinCount = 0
}

// ownedBy reports whether the frame records f as its owning file
func (d *descriptor) ownedBy(f file.Filer) bool {
	return d.file != nil && d.file.ID() == f.ID()
}
