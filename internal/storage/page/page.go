package page

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

const (
	HEADER_SIZE = 16 // Size of PageHeader struct: PageID(8) + Checksum(4) + Flags(2) + padding(2)

	// DataSize is the payload capacity of one page
	DataSize = util.PageSize - HEADER_SIZE
)

// Page is block that read/write from disk
type Page struct {
	Header PageHeader
	Data   [DataSize]byte
}

type PageHeader struct {
	PageID   util.PageID // 8 bytes
	Checksum uint32      // 4 bytes
	Flags    uint16      // 2 bytes
	_        uint16      // 2 bytes (padding)
}

// New returns an empty page with the given id
func New(pageID util.PageID) *Page {
	return &Page{Header: PageHeader{PageID: pageID}}
}

// Serialize packs the page into a byte slice for writing.
// The checksum is recomputed over the payload on every call.
func (p *Page) Serialize() []byte {
	p.Header.Checksum = checksum(p.Data[:])

	buf := make([]byte, util.PageSize)
	binary.LittleEndian.PutUint64(buf[0:8], uint64(p.Header.PageID))
	binary.LittleEndian.PutUint32(buf[8:12], p.Header.Checksum)
	binary.LittleEndian.PutUint16(buf[12:14], p.Header.Flags)

	copy(buf[HEADER_SIZE:], p.Data[:])

	return buf
}

// Deserialize unpacks from bytes, validates checksum
func Deserialize(data []byte) (*Page, error) {
	if len(data) != util.PageSize {
		return nil, fmt.Errorf("deserialize %d bytes: %w", len(data), util.ErrInvalidPageBuffer)
	}

	p := &Page{
		Header: PageHeader{
			PageID:   util.PageID(binary.LittleEndian.Uint64(data[0:8])),
			Checksum: binary.LittleEndian.Uint32(data[8:12]),
			Flags:    binary.LittleEndian.Uint16(data[12:14]),
		},
	}
	copy(p.Data[:], data[HEADER_SIZE:])

	// A zero checksum marks a page that was never serialized (fresh file region)
	if p.Header.Checksum != 0 {
		if sum := checksum(p.Data[:]); sum != p.Header.Checksum {
			return nil, fmt.Errorf("page %d: stored %#x, computed %#x: %w",
				p.Header.PageID, p.Header.Checksum, sum, util.ErrChecksumMismatch)
		}
	}

	return p, nil
}

func checksum(data []byte) uint32 {
	return uint32(xxhash.Sum64(data))
}
