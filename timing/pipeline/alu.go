package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// ALUStage executes one arithmetic/shift instruction per cycle: it
// pops PreALU and computes the result during Consume (registers are
// still holding their end-of-last-cycle values at that point), then
// hands the result to PostALU during Produce.
type ALUStage struct {
	regs   *emu.RegisterFile
	queues *Queues

	produced *PostALUEntry
}

// NewALUStage creates an ALU stage.
func NewALUStage(regs *emu.RegisterFile, queues *Queues) *ALUStage {
	return &ALUStage{regs: regs, queues: queues}
}

// Consume pops PreALU and computes the instruction's result.
func (a *ALUStage) Consume() {
	a.produced = nil

	e, ok := a.queues.PreALU.PopFront()
	if !ok {
		return
	}

	rs, rt := readOperands(a.regs, e.Instr)
	result := insts.ALUResult(e.Instr, rs, rt)
	a.produced = &PostALUEntry{entry: e, Result: result}
}

// Produce pushes the computed result into PostALU.
func (a *ALUStage) Produce() {
	if a.produced == nil {
		return
	}
	a.queues.PostALU.PushBack(*a.produced)
}
