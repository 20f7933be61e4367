package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
)

// stage is satisfied by every one of the six pipeline stages. The CPU
// orchestrator never reaches into stage internals; it only ever calls
// these two methods, in the same fixed order, once per Clock tick.
type stage interface {
	Consume()
	Produce()
}

// CPU is the pipeline orchestrator: it owns the six inter-stage queues
// and the six stages, and advances all of them one cycle at a time
// under the Consume-then-Produce protocol every stage implements.
type CPU struct {
	Regs    *emu.RegisterFile
	Memory  *emu.Memory
	Queues  *Queues

	Fetch     *FetchStage
	Issue     *IssueStage
	ALU       *ALUStage
	MemAddr   *MemAddrStage
	Mem       *MemStage
	Writeback *WritebackStage

	cycle uint64
}

// NewCPU wires up a fresh pipeline over the given architectural state.
func NewCPU(regs *emu.RegisterFile, mem *emu.Memory) *CPU {
	queues := NewQueues()
	return &CPU{
		Regs:      regs,
		Memory:    mem,
		Queues:    queues,
		Fetch:     NewFetchStage(regs, mem, queues),
		Issue:     NewIssueStage(regs, queues),
		ALU:       NewALUStage(regs, queues),
		MemAddr:   NewMemAddrStage(regs, queues),
		Mem:       NewMemStage(regs, mem, queues),
		Writeback: NewWritebackStage(regs, queues),
		cycle:     1,
	}
}

// Cycle returns the number of the cycle about to run (or, after Run
// has finished, one past the last cycle executed).
func (c *CPU) Cycle() uint64 { return c.cycle }

// stages returns the six stages in the fixed order Clock drives them.
func (c *CPU) stages() []stage {
	return []stage{c.Fetch, c.Issue, c.ALU, c.MemAddr, c.Mem, c.Writeback}
}

// Clock runs one cycle: every stage's Consume, in order, then every
// stage's Produce, in order, then advances the cycle counter. This is
// the two-phase protocol the whole simulator depends on: no stage's
// Produce may run before every stage has finished Consume, so that no
// stage ever observes a downstream queue mutated by this same cycle.
func (c *CPU) Clock() {
	for _, s := range c.stages() {
		s.Consume()
	}
	for _, s := range c.stages() {
		s.Produce()
	}
	c.cycle++
}

// Done reports whether the simulation has run to completion: BREAK has
// been decoded, Fetch's staller slot is empty, and every queue has
// drained.
func (c *CPU) Done() bool {
	if !c.Fetch.Broken() {
		return false
	}
	return c.Fetch.IsIdle() &&
		c.Queues.PreIssue.IsEmpty() &&
		c.Queues.PreALU.IsEmpty() &&
		c.Queues.PostALU.IsEmpty() &&
		c.Queues.PreMemAddr.IsEmpty() &&
		c.Queues.PreMem.IsEmpty() &&
		c.Queues.PostMem.IsEmpty()
}

// Run clocks the pipeline until Done reports true, or maxCycles is
// reached (0 means unbounded). It returns the number of cycles run.
func (c *CPU) Run(maxCycles uint64) uint64 {
	var ran uint64
	for !c.Done() {
		if maxCycles > 0 && ran >= maxCycles {
			break
		}
		c.Clock()
		ran++
	}
	return ran
}
