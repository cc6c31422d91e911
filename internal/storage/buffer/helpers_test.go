package buffer

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/file"
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// countingFiler wraps a FileManager and records page I/O so tests can assert
// on cache hits and write-backs.
type countingFiler struct {
	*file.FileManager
	reads  int
	writes int
	wrote  []util.PageID // page numbers written back, in order
}

func (cf *countingFiler) ReadPage(pageNo util.PageID) (*page.Page, error) {
	cf.reads++
	return cf.FileManager.ReadPage(pageNo)
}

func (cf *countingFiler) WritePage(p *page.Page) error {
	cf.writes++
	cf.wrote = append(cf.wrote, p.Header.PageID)
	return cf.FileManager.WritePage(p)
}

// newTestFiler opens a temp file pre-populated with pages 0..pages-1, each
// carrying a recognizable payload.
func newTestFiler(t *testing.T, pages int) *countingFiler {
	t.Helper()
	path, cleanup := util.CreateTempFile(t)
	t.Cleanup(cleanup)

	fm, err := file.NewFileManager(path)
	require.NoError(t, err, "create FileManager")
	t.Cleanup(func() { fm.Close() })

	for i := 0; i < pages; i++ {
		p, err := fm.AllocatePage()
		require.NoError(t, err, "allocate page %d", i)
		copy(p.Data[:], fmt.Sprintf("page %d test data", i))
		require.NoError(t, fm.WritePage(p), "write page %d", i)
	}
	return &countingFiler{FileManager: fm}
}

// seedFrame puts a page identity directly into a frame, bypassing fetch, so
// clock-scan tests can arrange exact descriptor states.
func seedFrame(t *testing.T, bp *BufferPool, frameIdx int, f file.Filer, pageNo util.PageID, pins int32) {
	t.Helper()
	require.NoError(t, bp.table.insert(f.ID(), pageNo, frameIdx))
	bp.descTable[frameIdx].set(f, pageNo)
	bp.descTable[frameIdx].pinCount = pins
	bp.frames[frameIdx] = *page.CreateTestPage(pageNo, nil)
}

// assertInvariants checks the frame/table consistency the pool must hold at
// every observable point.
func assertInvariants(t *testing.T, bp *BufferPool) {
	t.Helper()

	valid := 0
	for i := range bp.descTable {
		d := &bp.descTable[i]
		if !d.valid {
			assert.Nil(t, d.file, "invalid frame %d has no file", i)
			assert.Equal(t, util.InvalidPageID, d.pageNo, "invalid frame %d has no page", i)
			assert.Zero(t, d.pinCount, "invalid frame %d has no pins", i)
			assert.False(t, d.refbit, "invalid frame %d refbit clear", i)
			assert.False(t, d.dirty, "invalid frame %d dirty clear", i)
			continue
		}
		valid++
		require.NotNil(t, d.file, "valid frame %d records its file", i)
		frameIdx, ok := bp.table.lookup(d.file.ID(), d.pageNo)
		assert.True(t, ok, "valid frame %d has a table entry", i)
		assert.Equal(t, i, frameIdx, "table entry for frame %d points back at it", i)
	}
	assert.Equal(t, valid, bp.table.entries(), "one table entry per valid frame")
}
