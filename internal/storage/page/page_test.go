package page

import (
	"testing"

	"github.com/stretchr/testify/assert"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func TestSerializeDeserialize(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		p := CreateTestPage(42, []byte("hello page"))
		p.Header.Flags = 0x0003

		buf := p.Serialize()
		assert.Equal(t, util.PageSize, len(buf), "serialized size")

		got, err := Deserialize(buf)
		assert.NoError(t, err, "deserialize")
		assert.Equal(t, util.PageID(42), got.Header.PageID, "page id")
		assert.Equal(t, uint16(0x0003), got.Header.Flags, "flags")
		assert.Equal(t, p.Data, got.Data, "payload")
		assert.NotZero(t, got.Header.Checksum, "checksum recorded")
	})

	t.Run("ChecksumMismatch", func(t *testing.T) {
		p := CreateTestPage(7, []byte("payload"))
		buf := p.Serialize()

		// flip one payload byte after the checksum was computed
		buf[HEADER_SIZE+2] ^= 0xff

		_, err := Deserialize(buf)
		assert.ErrorIs(t, err, util.ErrChecksumMismatch)
	})

	t.Run("ZeroChecksumSkipsVerification", func(t *testing.T) {
		// a fresh file region reads back as all zero bytes
		buf := make([]byte, util.PageSize)
		got, err := Deserialize(buf)
		assert.NoError(t, err)
		assert.Equal(t, util.PageID(0), got.Header.PageID)
	})

	t.Run("WrongBufferSize", func(t *testing.T) {
		_, err := Deserialize(make([]byte, 100))
		assert.ErrorIs(t, err, util.ErrInvalidPageBuffer)
	})
}

func TestCreateTestPage(t *testing.T) {
	long := make([]byte, util.PageSize*2)
	for i := range long {
		long[i] = byte(i)
	}
	p := CreateTestPage(1, long)
	assert.Equal(t, util.PageID(1), p.Header.PageID)
	assert.Equal(t, long[:DataSize], p.Data[:], "payload truncated to fit")
}
