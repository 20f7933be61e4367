package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
)

// MemStage is the second half of the memory lane: it performs the
// actual data-memory access. A store retires here and never reaches
// Writeback, since SW writes no register, Mem itself is responsible
// for releasing the read locks Issue placed on rs and rt. A load reads
// its word here and hands the value to PostMem for Writeback to commit
// to the register file.
type MemStage struct {
	regs *emu.RegisterFile
	mem  *emu.Memory

	queues *Queues

	popped     *PreMemEntry
	storeValue int32
	loadValue  int32
}

// NewMemStage creates a Mem stage.
func NewMemStage(regs *emu.RegisterFile, mem *emu.Memory, queues *Queues) *MemStage {
	return &MemStage{regs: regs, mem: mem, queues: queues}
}

// Consume pops PreMem and, for a load, reads the word at its effective
// address; for a store, reads the register value it will write.
func (m *MemStage) Consume() {
	m.popped = nil

	e, ok := m.queues.PreMem.PopFront()
	if !ok {
		return
	}
	m.popped = &e

	if e.Instr.Op.IsStore() {
		m.storeValue = m.regs.Read(e.Instr.I.RT)
	} else {
		m.loadValue = m.mem.ReadData(e.EffAddr)
	}
}

// Produce commits a store's write to memory and releases its locks,
// or pushes a load's value into PostMem for Writeback.
func (m *MemStage) Produce() {
	if m.popped == nil {
		return
	}

	in := m.popped.Instr
	if in.Op.IsStore() {
		m.mem.WriteData(m.popped.EffAddr, m.storeValue)
		m.regs.RemoveLocks(in)
		return
	}

	m.queues.PostMem.PushBack(PostMemEntry{entry: m.popped.entry, Result: m.loadValue})
}
