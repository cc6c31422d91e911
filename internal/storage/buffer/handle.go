package buffer

import (
	"fmt"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// Handle is a pinned reference to a cached page. It records the frame and the
// page identity it was issued for; Page revalidates both against the pool, so
// a handle kept past its unpin cannot read a reused slot.
type Handle struct {
	pool     *BufferPool
	frameIdx int
	fileID   util.FileID
	pageNo   util.PageID
}

func (bp *BufferPool) handle(frameIdx int) *Handle {
	d := &bp.descTable[frameIdx]
	return &Handle{
		pool:     bp,
		frameIdx: frameIdx,
		fileID:   d.file.ID(),
		pageNo:   d.pageNo,
	}
}

// PageNo returns the page number the handle was issued for
func (h *Handle) PageNo() util.PageID {
	return h.pageNo
}

// Page returns the cached page content. It fails with ErrInvalidHandle once
// the frame no longer holds the handle's page under an outstanding pin.
func (h *Handle) Page() (*page.Page, error) {
	d := &h.pool.descTable[h.frameIdx]
	if !d.valid || d.pinCount == 0 || d.file.ID() != h.fileID || d.pageNo != h.pageNo {
		return nil, fmt.Errorf("page %d (frame %d): %w", h.pageNo, h.frameIdx, util.ErrInvalidHandle)
	}
	return &h.pool.frames[h.frameIdx], nil
}
