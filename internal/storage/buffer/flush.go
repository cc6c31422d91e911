package buffer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/file"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// FlushFile writes back and drops every cached page of the file. Frames are
// visited in ascending index order; a pinned page fails with ErrPagePinned
// and a frame claiming the file while invalid fails with ErrBadBuffer. Frames
// already processed before the failing one stay flushed and cleared.
func (bp *BufferPool) FlushFile(f file.Filer) error {
	for i := range bp.descTable {
		d := &bp.descTable[i]
		if !d.ownedBy(f) {
			continue
		}

		if d.pinCount > 0 {
			return fmt.Errorf("flush %s: page %d (frame %d, pins %d): %w",
				f.Name(), d.pageNo, i, d.pinCount, util.ErrPagePinned)
		}
		if !d.valid {
			return fmt.Errorf("flush %s: frame %d (dirty %v, refbit %v): %w",
				f.Name(), i, d.dirty, d.refbit, util.ErrBadBuffer)
		}

		if d.dirty {
			if err := f.WritePage(&bp.frames[i]); err != nil {
				return fmt.Errorf("flush %s: write page %d: %w", f.Name(), d.pageNo, err)
			}
			d.dirty = false
			bp.metrics.writeBack()
		}

		if err := bp.table.remove(f.ID(), d.pageNo); err != nil {
			return fmt.Errorf("flush %s: frame %d: %w", f.Name(), i, err)
		}
		d.clear()
	}

	bp.log.Debug("file flushed", zap.String("file", f.Name()))
	return nil
}

// DisposePage drops the page from the cache so the caller can reclaim its
// on-disk slot through the file. A page that is not cached fails with
// ErrPageNotFound. Disposal does not check the pin count.
func (bp *BufferPool) DisposePage(f file.Filer, pageNo util.PageID) error {
	frameIdx, ok := bp.table.lookup(f.ID(), pageNo)
	if !ok {
		return fmt.Errorf("dispose page %d of %s: %w", pageNo, f.Name(), util.ErrPageNotFound)
	}

	if err := bp.table.remove(f.ID(), pageNo); err != nil {
		return fmt.Errorf("dispose page %d of %s: %w", pageNo, f.Name(), err)
	}
	bp.descTable[frameIdx].clear()

	return nil
}

// Close writes back every dirty frame. Frames with outstanding pins are
// written too, but the leaked pins are logged since callers should have
// released them first.
func (bp *BufferPool) Close() error {
	var errs error
	for i := range bp.descTable {
		d := &bp.descTable[i]
		if !d.valid {
			continue
		}

		if d.pinCount > 0 {
			bp.log.Warn("closing pool with pinned page",
				zap.String("file", d.file.Name()),
				zap.Uint64("page", uint64(d.pageNo)),
				zap.Int32("pins", d.pinCount))
		}

		if d.dirty {
			if err := d.file.WritePage(&bp.frames[i]); err != nil {
				errs = errors.Join(errs, fmt.Errorf("write back page %d of %s: %w", d.pageNo, d.file.Name(), err))
				continue
			}
			d.dirty = false
			bp.metrics.writeBack()
		}
	}
	return errs
}
