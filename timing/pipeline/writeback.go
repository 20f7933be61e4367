package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// WritebackStage commits completed results to the register file. Both
// PostALU and PostMem may have an entry the same cycle (an ALU result
// and a completed load both retiring in the same Writeback tick), so
// Consume pops both before Produce commits either.
type WritebackStage struct {
	regs   *emu.RegisterFile
	queues *Queues

	fromALU *PostALUEntry
	fromMem *PostMemEntry
}

// NewWritebackStage creates a Writeback stage.
func NewWritebackStage(regs *emu.RegisterFile, queues *Queues) *WritebackStage {
	return &WritebackStage{regs: regs, queues: queues}
}

// Consume pops whatever PostALU and PostMem are holding.
func (w *WritebackStage) Consume() {
	w.fromALU = nil
	w.fromMem = nil

	if e, ok := w.queues.PostALU.PopFront(); ok {
		w.fromALU = &e
	}
	if e, ok := w.queues.PostMem.PopFront(); ok {
		w.fromMem = &e
	}
}

// Produce commits each popped result to its destination register and
// releases the locks Issue placed on it.
func (w *WritebackStage) Produce() {
	if w.fromALU != nil {
		w.commit(w.fromALU.Instr, w.fromALU.Result)
	}
	if w.fromMem != nil {
		w.commit(w.fromMem.Instr, w.fromMem.Result)
	}
}

func (w *WritebackStage) commit(in insts.Instruction, result int32) {
	if r, ok := in.Writes(); ok {
		w.regs.Write(r, result)
	}
	w.regs.RemoveLocks(in)
}
