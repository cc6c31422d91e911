package page

import (
	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

func CreateTestPage(pageID util.PageID, data []byte) *Page {
	p := New(pageID)
	if len(data) > len(p.Data) {
		data = data[:len(p.Data)] // Truncate to fit
	}
	copy(p.Data[:], data)
	return p
}
