package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"

	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

/**
* This module is used to read and write pages from / to disk.
* One FileManager owns one data file; pages are addressed by page number
* at fixed PageSize offsets.
**/
type FileManager struct {
	file  *os.File
	path  string
	id    util.FileID
	pages int64 // number of pages currently allocated in the file
}

func NewFileManager(path string) (*FileManager, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o666)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	return &FileManager{
		file:  f,
		path:  path,
		id:    fileID(abs),
		pages: info.Size() / int64(util.PageSize),
	}, nil
}

// fileID derives a stable nonzero identity from the absolute path
func fileID(abs string) util.FileID {
	id := util.FileID(xxhash.Sum64String(abs))
	if id == util.InvalidFileID {
		id = 1
	}
	return id
}

// ID returns the file identity used to key cached pages
func (fm *FileManager) ID() util.FileID {
	return fm.id
}

// Name returns the path the file was opened with, for diagnostics
func (fm *FileManager) Name() string {
	return fm.path
}

// NumPages returns the number of pages allocated in the file
func (fm *FileManager) NumPages() int64 {
	return fm.pages
}

/* READ FILE */
func (fm *FileManager) ReadPage(pageID util.PageID) (*page.Page, error) {
	if int64(pageID) >= fm.pages {
		return nil, fmt.Errorf("read page %d of %d: %w", pageID, fm.pages, util.ErrPageOutOfBounds)
	}

	buf := make([]byte, util.PageSize)
	offset := int64(pageID) * int64(util.PageSize)
	if _, err := fm.file.ReadAt(buf, offset); err != nil {
		return nil, fmt.Errorf("read page %d: %w", pageID, err)
	}

	p, err := page.Deserialize(buf)
	if err != nil {
		return nil, fmt.Errorf("deserialize page %d: %w", pageID, err)
	}
	p.Header.PageID = pageID

	return p, nil
}

/* WRITE FILE */
func (fm *FileManager) WritePage(p *page.Page) error {
	if int64(p.Header.PageID) >= fm.pages {
		return fmt.Errorf("write page %d of %d: %w", p.Header.PageID, fm.pages, util.ErrPageOutOfBounds)
	}

	offset := int64(p.Header.PageID) * int64(util.PageSize)
	if _, err := fm.file.WriteAt(p.Serialize(), offset); err != nil {
		return fmt.Errorf("write page %d: %w", p.Header.PageID, err)
	}
	return nil
}

// AllocatePage extends the file by one empty page and returns it
func (fm *FileManager) AllocatePage() (*page.Page, error) {
	p := page.New(util.PageID(fm.pages))

	offset := fm.pages * int64(util.PageSize)
	if _, err := fm.file.WriteAt(p.Serialize(), offset); err != nil {
		return nil, fmt.Errorf("allocate page %d: %w", p.Header.PageID, err)
	}
	fm.pages++

	return p, nil
}

// DisposePage reclaims a page's on-disk slot. The last page of the file is
// reclaimed by truncation; interior pages are zeroed and their slot is not
// reused until the file shrinks past them.
func (fm *FileManager) DisposePage(pageID util.PageID) error {
	if int64(pageID) >= fm.pages {
		return fmt.Errorf("dispose page %d of %d: %w", pageID, fm.pages, util.ErrPageOutOfBounds)
	}

	if int64(pageID) == fm.pages-1 {
		if err := fm.file.Truncate(int64(pageID) * int64(util.PageSize)); err != nil {
			return fmt.Errorf("truncate page %d: %w", pageID, err)
		}
		fm.pages--
		return nil
	}

	zero := make([]byte, util.PageSize)
	if _, err := fm.file.WriteAt(zero, int64(pageID)*int64(util.PageSize)); err != nil {
		return fmt.Errorf("zero page %d: %w", pageID, err)
	}
	return nil
}

/**
* CLOSE FUNCTION
**/
func (fm *FileManager) Close() error {
	if fm == nil || fm.file == nil {
		return nil // Idempotent
	}

	var err error
	if e := fm.file.Sync(); e != nil {
		err = errors.Join(err, fmt.Errorf("sync file: %w", e))
	}
	if e := fm.file.Close(); e != nil {
		err = errors.Join(err, fmt.Errorf("close file: %w", e))
	}
	fm.file = nil
	return err
}
