package buffer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func TestTableSize(t *testing.T) {
	// ~1.2x the frame count, rounded to an odd number
	cases := map[int]int{
		3:    3,
		10:   13,
		100:  121,
		1000: 1201,
	}
	for frames, want := range cases {
		assert.Equal(t, want, tableSize(frames), "frames=%d", frames)
		assert.Equal(t, 1, tableSize(frames)%2, "size must be odd for frames=%d", frames)
	}
}

func TestPageTable(t *testing.T) {
	pt := newPageTable(10)

	t.Run("LookupMiss", func(t *testing.T) {
		_, ok := pt.lookup(1, 0)
		assert.False(t, ok, "empty table has no entries")
	})

	t.Run("InsertLookup", func(t *testing.T) {
		assert.NoError(t, pt.insert(1, 0, 4))
		frameIdx, ok := pt.lookup(1, 0)
		assert.True(t, ok)
		assert.Equal(t, 4, frameIdx)
	})

	t.Run("DuplicateInsert", func(t *testing.T) {
		assert.ErrorIs(t, pt.insert(1, 0, 9), util.ErrDuplicatePage)
	})

	t.Run("DistinctFilesSamePageNo", func(t *testing.T) {
		assert.NoError(t, pt.insert(2, 0, 5))
		frameIdx, ok := pt.lookup(2, 0)
		assert.True(t, ok)
		assert.Equal(t, 5, frameIdx)

		frameIdx, ok = pt.lookup(1, 0)
		assert.True(t, ok)
		assert.Equal(t, 4, frameIdx, "entry for file 1 untouched")
	})

	t.Run("Remove", func(t *testing.T) {
		assert.NoError(t, pt.remove(1, 0))
		_, ok := pt.lookup(1, 0)
		assert.False(t, ok)
		assert.ErrorIs(t, pt.remove(1, 0), util.ErrPageNotFound)
	})
}

func TestPageTableCollisions(t *testing.T) {
	pt := newPageTable(3) // 3 buckets; page numbers 0, 3, 6 of one file collide
	size := len(pt.buckets)

	keys := []util.PageID{0, util.PageID(size), util.PageID(2 * size)}
	for i, pageNo := range keys {
		assert.NoError(t, pt.insert(7, pageNo, i))
	}
	assert.Equal(t, len(keys), pt.entries())

	// all three chained in one bucket, each still reachable
	for i, pageNo := range keys {
		frameIdx, ok := pt.lookup(7, pageNo)
		assert.True(t, ok, "key %d found", pageNo)
		assert.Equal(t, i, frameIdx, "key %d maps to its frame", pageNo)
	}

	// remove the middle of the chain
	assert.NoError(t, pt.remove(7, keys[1]))
	_, ok := pt.lookup(7, keys[1])
	assert.False(t, ok)
	for _, pageNo := range []util.PageID{keys[0], keys[2]} {
		_, ok := pt.lookup(7, pageNo)
		assert.True(t, ok, "remaining key %d intact", pageNo)
	}
	assert.Equal(t, 2, pt.entries())
}
