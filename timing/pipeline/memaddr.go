package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// MemAddrStage computes the effective address of one LW/SW per cycle,
// the first half of the memory lane.
type MemAddrStage struct {
	regs   *emu.RegisterFile
	queues *Queues

	produced *PreMemEntry
}

// NewMemAddrStage creates a MemAddr stage.
func NewMemAddrStage(regs *emu.RegisterFile, queues *Queues) *MemAddrStage {
	return &MemAddrStage{regs: regs, queues: queues}
}

// Consume pops PreMemAddr and computes the effective address.
func (m *MemAddrStage) Consume() {
	m.produced = nil

	e, ok := m.queues.PreMemAddr.PopFront()
	if !ok {
		return
	}

	rs, _ := readOperands(m.regs, e.Instr)
	addr := insts.MemAddress(e.Instr, rs)
	m.produced = &PreMemEntry{entry: e, EffAddr: uint32(addr)}
}

// Produce pushes the computed address into PreMem.
func (m *MemAddrStage) Produce() {
	if m.produced == nil {
		return
	}
	m.queues.PreMem.PushBack(*m.produced)
}
