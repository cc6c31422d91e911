package buffer

import (
	"fmt"

	"go.uber.org/zap"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// advanceClock moves the clock hand to the next frame, wrapping around
func (bp *BufferPool) advanceClock() {
	bp.clockHand = (bp.clockHand + 1) % bp.poolSize
}

/*
allocFrame selects a frame with the clock (second-chance) scan and returns it
ready for reuse. The hand advances on every candidate and keeps its position
across calls, so coverage of the frames stays fair over time.

Per candidate frame, in order:
  - invalid: taken immediately
  - refbit set: the bit is cleared and the frame skipped (its second chance);
    such skips are not counted against the pinned bound
  - pinned: skipped and counted; poolSize pinned observations mean every frame
    is pinned and allocation fails
  - otherwise it is the victim: written back first if dirty, then dropped from
    the page table and cleared

Each pass clears refbits monotonically, so a victim is found (or the pinned
bound reached) within two full sweeps.
*/
func (bp *BufferPool) allocFrame() (int, error) {
	pinned := 0
	for pinned < bp.poolSize {
		bp.advanceClock()
		d := &bp.descTable[bp.clockHand]

		if !d.valid {
			return bp.clockHand, nil
		}

		if d.refbit {
			d.refbit = false
			continue
		}

		if d.pinCount > 0 {
			pinned++
			continue
		}

		if d.dirty {
			if err := d.file.WritePage(&bp.frames[bp.clockHand]); err != nil {
				return -1, fmt.Errorf("write back page %d of %s: %w", d.pageNo, d.file.Name(), err)
			}
			bp.metrics.writeBack()
			bp.log.Debug("dirty victim written back",
				zap.String("file", d.file.Name()),
				zap.Uint64("page", uint64(d.pageNo)),
				zap.Int("frame", bp.clockHand))
		}

		if err := bp.table.remove(d.file.ID(), d.pageNo); err != nil {
			return -1, fmt.Errorf("evict frame %d: %w", bp.clockHand, err)
		}
		d.clear()
		bp.metrics.eviction()

		return bp.clockHand, nil
	}

	return -1, util.ErrBufferExceeded
}
