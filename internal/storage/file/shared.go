package file

import (
	"github.com/bietkhonhungvandi212/clock-db/internal/storage/page"
	utils "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// Filer is the file surface the buffer pool depends on. Two Filers refer to
// the same file exactly when their IDs are equal.
type Filer interface {
	ID() utils.FileID
	Name() string
	ReadPage(pageID utils.PageID) (*page.Page, error)
	WritePage(p *page.Page) error
	AllocatePage() (*page.Page, error)
}
