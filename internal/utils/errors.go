package util

import "errors"

var (
	ErrBufferExceeded    = errors.New("buffer exceeded: all frames are pinned")
	ErrPageNotPinned     = errors.New("page is not pinned")
	ErrPagePinned        = errors.New("page is pinned")
	ErrBadBuffer         = errors.New("bad buffer: frame violates validity invariant")
	ErrPageNotFound      = errors.New("page not found in buffer pool")
	ErrDuplicatePage     = errors.New("page already present in buffer pool")
	ErrInvalidHandle     = errors.New("page handle is no longer valid")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrPageOutOfBounds   = errors.New("page out of bounds")
	ErrInvalidPoolSize   = errors.New("invalid pool size")
	ErrInvalidPageBuffer = errors.New("invalid page buffer size")
)
