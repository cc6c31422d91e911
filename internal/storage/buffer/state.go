package buffer

import (
	"fmt"
	"strings"

	util "github.com/bietkhonhungvandi212/clock-db/internal/utils"
)

// FrameState is a read-only snapshot of one frame's metadata
type FrameState struct {
	Frame    int
	File     string
	PageNo   util.PageID
	Valid    bool
	RefBit   bool
	Dirty    bool
	PinCount int32
}

// State snapshots every frame. Introspection only; no side effects.
func (bp *BufferPool) State() []FrameState {
	states := make([]FrameState, bp.poolSize)
	for i := range bp.descTable {
		d := &bp.descTable[i]
		states[i] = FrameState{
			Frame:    i,
			PageNo:   d.pageNo,
			Valid:    d.valid,
			RefBit:   d.refbit,
			Dirty:    d.dirty,
			PinCount: d.pinCount,
		}
		if d.file != nil {
			states[i].File = d.file.Name()
		}
	}
	return states
}

// String renders a diagnostic dump of every frame plus the valid-frame count
func (bp *BufferPool) String() string {
	var sb strings.Builder
	valid := 0
	for _, s := range bp.State() {
		if s.Valid {
			valid++
			fmt.Fprintf(&sb, "frame %d: file=%s page=%d pins=%d refbit=%v dirty=%v\n",
				s.Frame, s.File, s.PageNo, s.PinCount, s.RefBit, s.Dirty)
		} else {
			fmt.Fprintf(&sb, "frame %d: empty\n", s.Frame)
		}
	}
	fmt.Fprintf(&sb, "valid frames: %d/%d\n", valid, bp.poolSize)
	return sb.String()
}
