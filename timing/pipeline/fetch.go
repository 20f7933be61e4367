package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// FetchStage decodes up to two instructions per cycle into PreIssue,
// and separately parks and later retires branches and BREAK through a
// dedicated staller slot so the rest of the pipeline never has to deal
// with control flow directly.
//
// While the staller slot is occupied, Fetch decodes nothing: the
// branch or BREAK it holds must resolve (its target, if any, becomes
// certain) before fetching past it is safe. Executed retains the most
// recently retired staller for exactly one cycle, purely so the trace
// formatter can still show what Fetch just finished.
type FetchStage struct {
	regs   *emu.RegisterFile
	mem    *emu.Memory
	queues *Queues

	pc     uint32
	broken bool

	staller  *entry
	executed *entry

	decodedSlot1 *entry
	decodedSlot2 *entry
}

// NewFetchStage creates a Fetch stage with the program counter parked
// at the conventional load address of 256.
func NewFetchStage(regs *emu.RegisterFile, mem *emu.Memory, queues *Queues) *FetchStage {
	return &FetchStage{regs: regs, mem: mem, queues: queues, pc: 256}
}

// PC returns the current program counter.
func (f *FetchStage) PC() uint32 { return f.pc }

// Broken reports whether a BREAK has been decoded.
func (f *FetchStage) Broken() bool { return f.broken }

// IsIdle reports whether Fetch is holding no in-flight state, that is,
// no branch or BREAK waiting in the staller slot; used by the CPU
// orchestrator's termination check. The executed slot only carries the
// last retired staller for trace display and is not considered.
func (f *FetchStage) IsIdle() bool { return f.staller == nil }

// StallerPretty returns the disassembly of the instruction currently
// parked in the staller slot waiting to retire, or "" if the slot is
// empty. Used by the trace formatter's "Waiting Instruction" line.
func (f *FetchStage) StallerPretty() string {
	if f.staller == nil {
		return ""
	}
	return insts.Disassemble(f.staller.Instr, f.staller.Addr)
}

// ExecutedPretty returns the disassembly of the staller most recently
// retired, held for exactly the one cycle after its retirement, or ""
// if nothing retired last cycle. Used by the trace formatter's
// "Executed Instruction" line.
func (f *FetchStage) ExecutedPretty() string {
	if f.executed == nil {
		return ""
	}
	return insts.Disassemble(f.executed.Instr, f.executed.Addr)
}

// Consume decodes up to two instructions into the slots that Produce
// will push into PreIssue. It decodes nothing while broken, or while
// the staller slot is still occupied by an unretired branch or BREAK.
func (f *FetchStage) Consume() {
	f.decodedSlot1, f.decodedSlot2 = nil, nil

	if f.broken || f.staller != nil {
		return
	}

	numEmpty := f.queues.PreIssue.NumEmpty()
	for i := 1; i <= 2; i++ {
		if numEmpty < i {
			break
		}

		addr := f.pc
		in, ok := f.mem.Instruction(addr)
		if !ok {
			break
		}

		if in.Op == insts.BRK {
			f.broken = true
			f.staller = &entry{Instr: in, Addr: addr}
			f.pc += 4
			break
		}

		if in.Op.IsBranch() {
			f.staller = &entry{Instr: in, Addr: addr}
			f.pc += 4
			break
		}

		slot := &entry{Instr: in, Addr: addr}
		if i == 1 {
			f.decodedSlot1 = slot
		} else {
			f.decodedSlot2 = slot
		}
		f.pc += 4
	}
}

// Produce pushes the decode slots into PreIssue, clears the executed
// slot (the staller retired last cycle), then checks whether the
// staller can retire this cycle.
func (f *FetchStage) Produce() {
	if f.decodedSlot1 != nil {
		f.queues.PreIssue.PushBack(*f.decodedSlot1)
	}
	if f.decodedSlot2 != nil {
		f.queues.PreIssue.PushBack(*f.decodedSlot2)
	}

	f.executed = nil

	if f.staller == nil {
		return
	}

	if f.regs.ActiveHazard(f.staller.Instr, emu.HazardRAW) {
		return
	}
	if f.hasStallerPreIssueHazard() {
		return
	}

	f.retireStaller()
	f.executed = f.staller
	f.staller = nil
}

// hasStallerPreIssueHazard reports whether any not-yet-issued PreIssue
// entry will write a register the staller reads, which would make
// resolving the branch now observe a stale value.
func (f *FetchStage) hasStallerPreIssueHazard() bool {
	hazard := false
	f.queues.PreIssue.Each(func(_ int, e PreIssueEntry) {
		if emu.InterHazard(e.Instr, f.staller.Instr, emu.HazardRAW) {
			hazard = true
		}
	})
	return hazard
}

// retireStaller applies a branch's effect on the program counter. BREAK
// has none: it already set broken at decode time.
func (f *FetchStage) retireStaller() {
	in := f.staller.Instr
	if !in.Op.IsBranch() {
		return
	}

	var rs, rt int32
	switch in.Op {
	case insts.JR:
		rs = f.regs.Read(in.R.RS)
	case insts.BEQ:
		rs = f.regs.Read(in.I.RS)
		rt = f.regs.Read(in.I.RT)
	case insts.BLTZ, insts.BGTZ:
		rs = f.regs.Read(in.I.RS)
	}

	if !insts.BranchTaken(in, rs, rt) {
		return
	}
	f.pc = insts.BranchTarget(in, f.pc, rs, rt)
}
