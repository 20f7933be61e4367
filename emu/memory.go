package emu

import "github.com/sarchlab/spimdf/insts"

// Memory holds the simulated program (decoded instructions) and data
// (signed 32-bit words) address spaces. Both are word-addressed maps
// rather than flat arrays: the loader only ever populates the
// addresses a real program file uses, and an unmapped data read is
// defined to return 0 rather than panic.
type Memory struct {
	program map[uint32]insts.Instruction
	data    map[uint32]int32
	order   []uint32 // insertion order of data addresses, for trace output
}

// NewMemory returns an empty Memory.
func NewMemory() *Memory {
	return &Memory{
		program: make(map[uint32]insts.Instruction),
		data:    make(map[uint32]int32),
	}
}

// StoreInstruction records the decoded instruction at addr. Only
// addresses the loader has stored here are legal Fetch targets.
func (m *Memory) StoreInstruction(addr uint32, in insts.Instruction) {
	m.program[addr] = in
}

// Instruction returns the decoded instruction at addr and whether one
// is mapped there.
func (m *Memory) Instruction(addr uint32) (insts.Instruction, bool) {
	in, ok := m.program[addr]
	return in, ok
}

// ReadData returns the word at addr, or 0 if nothing has been written
// there yet.
func (m *Memory) ReadData(addr uint32) int32 {
	return m.data[addr]
}

// WriteData stores v at addr, word-addressed. First write to an
// address is tracked so DataAddresses() can report addresses in the order the
// loader or a store first touched them, matching the trace format's
// fixed-width memory dump.
func (m *Memory) WriteData(addr uint32, v int32) {
	if _, exists := m.data[addr]; !exists {
		m.order = append(m.order, addr)
	}
	m.data[addr] = v
}

// DataAddresses returns every address that has ever been written, in
// first-write order.
func (m *Memory) DataAddresses() []uint32 {
	out := make([]uint32, len(m.order))
	copy(out, m.order)
	return out
}
