package buffer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/file"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/*
BufferPool mediates all access to pages stored on disk. It caches up to
poolSize pages in fixed frames and evicts with the clock (second-chance)
policy when a frame is needed. The pool is the sole owner of cached page
contents; callers hold them only through pinned Handles.

The design is single-threaded per call: callers serialize access themselves.
*/
type BufferPool struct {
	frames    []page.Page  // page content slots, 1:1 with descTable by index
	descTable []descriptor // per-frame metadata
	table     *pageTable   // page identity -> frame index
	clockHand int          // circular cursor, persists across allocations
	poolSize  int
	log       *zap.Logger
	metrics   *Metrics
}

// Option configures a BufferPool
type Option func(*BufferPool)

// WithLogger attaches a logger; by default the pool does not log
func WithLogger(log *zap.Logger) Option {
	return func(bp *BufferPool) {
		bp.log = log
	}
}

// WithMetrics attaches hit/miss/eviction counters
func WithMetrics(m *Metrics) Option {
	return func(bp *BufferPool) {
		bp.metrics = m
	}
}

func NewBufferPool(size int, opts ...Option) *BufferPool {
	if size <= 0 {
		panic(util.ErrInvalidPoolSize)
	}

	bp := &BufferPool{
		frames:    make([]page.Page, size),
		descTable: newDescriptors(size),
		table:     newPageTable(size),
		clockHand: size - 1, // the first allocation advances to frame 0
		poolSize:  size,
		log:       zap.NewNop(),
	}

	for _, opt := range opts {
		opt(bp)
	}
	return bp
}

// Size returns the number of frames in the pool
func (bp *BufferPool) Size() int {
	return bp.poolSize
}

// FetchPage returns a pinned handle to the page. On a cache hit the frame is
// re-pinned with no file I/O; on a miss a frame is allocated (evicting if
// necessary) and the page is read from the file.
func (bp *BufferPool) FetchPage(f file.Filer, pageNo util.PageID) (*Handle, error) {
	if frameIdx, ok := bp.table.lookup(f.ID(), pageNo); ok {
		d := &bp.descTable[frameIdx]
		d.refbit = true
		d.pinCount++
		bp.metrics.hit()
		return bp.handle(frameIdx), nil
	}
	bp.metrics.miss()

	frameIdx, err := bp.allocFrame()
	if err != nil {
		return nil, fmt.Errorf("fetch page %d of %s: %w", pageNo, f.Name(), err)
	}

	p, err := f.ReadPage(pageNo)
	if err != nil {
		return nil, fmt.Errorf("fetch page %d of %s: %w", pageNo, f.Name(), err)
	}
	bp.frames[frameIdx] = *p

	if err := bp.table.insert(f.ID(), pageNo, frameIdx); err != nil {
		return nil, err
	}
	bp.descTable[frameIdx].set(f, pageNo)

	bp.log.Debug("page fetched from disk",
		zap.String("file", f.Name()),
		zap.Uint64("page", uint64(pageNo)),
		zap.Int("frame", frameIdx))

	return bp.handle(frameIdx), nil
}

// UnpinPage releases one pin on the page. Unpinning a page that is not cached
// is a no-op; unpinning a cached page whose pin count is already zero is a
// caller error. A true dirty argument marks the frame dirty; the mark is
// sticky until the next successful write-back.
func (bp *BufferPool) UnpinPage(f file.Filer, pageNo util.PageID, dirty bool) error {
	frameIdx, ok := bp.table.lookup(f.ID(), pageNo)
	if !ok {
		return nil
	}

	d := &bp.descTable[frameIdx]
	if d.pinCount == 0 {
		return fmt.Errorf("unpin page %d of %s (frame %d): %w",
			pageNo, f.Name(), frameIdx, util.ErrPageNotPinned)
	}

	d.pinCount--
	if dirty {
		d.dirty = true
	}
	return nil
}

// NewPage allocates a brand-new page in the file and caches it pinned.
// Returns the page number assigned by the file along with the handle.
func (bp *BufferPool) NewPage(f file.Filer) (util.PageID, *Handle, error) {
	p, err := f.AllocatePage()
	if err != nil {
		return util.InvalidPageID, nil, fmt.Errorf("new page in %s: %w", f.Name(), err)
	}
	pageNo := p.Header.PageID

	frameIdx, err := bp.allocFrame()
	if err != nil {
		return util.InvalidPageID, nil, fmt.Errorf("new page %d in %s: %w", pageNo, f.Name(), err)
	}

	if err := bp.table.insert(f.ID(), pageNo, frameIdx); err != nil {
		return util.InvalidPageID, nil, err
	}
	bp.descTable[frameIdx].set(f, pageNo)
	bp.frames[frameIdx] = *p

	bp.log.Debug("new page allocated",
		zap.String("file", f.Name()),
		zap.Uint64("page", uint64(pageNo)),
		zap.Int("frame", frameIdx))

	return pageNo, bp.handle(frameIdx), nil
}
