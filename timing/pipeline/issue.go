package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
)

// IssueStage selects up to two PreIssue entries per cycle, in FIFO
// order, and routes them to the ALU or MemAddr lane. Selection must
// respect three kinds of constraint against each candidate: a
// structural hazard (the destination lane's queue has no room), an
// active hazard against the scoreboard (an already-issued instruction
// still holds a conflicting lock), and an inter-hazard against every
// PreIssue entry still ahead of the candidate (which preserves program
// order for anything the scoreboard can't see yet, and keeps every load
// or store behind any earlier not-yet-issued store).
type IssueStage struct {
	regs   *emu.RegisterFile
	queues *Queues

	pickPos1, pickPos2 int
}

// NewIssueStage creates an Issue stage.
func NewIssueStage(regs *emu.RegisterFile, queues *Queues) *IssueStage {
	return &IssueStage{regs: regs, queues: queues, pickPos1: -1, pickPos2: -1}
}

// Consume scans PreIssue for up to two issuable entries without
// mutating anything; selection only becomes visible in Produce.
func (s *IssueStage) Consume() {
	s.pickPos1, s.pickPos2 = -1, -1

	entries := s.queues.PreIssue.Snapshot()
	firstIsMem := false

	for pos, e := range entries {
		if s.blocked(e, pos, entries) {
			continue
		}

		if s.pickPos1 == -1 {
			s.pickPos1 = pos
			firstIsMem = e.Instr.Op.IsMemAccess()
			continue
		}

		if e.Instr.Op.IsMemAccess() == firstIsMem {
			continue // both lanes can't carry the same instruction type in one cycle
		}

		s.pickPos2 = pos
		break
	}
}

// blocked reports whether cand, at pos within entries, cannot issue
// this cycle.
func (s *IssueStage) blocked(cand PreIssueEntry, pos int, entries []PreIssueEntry) bool {
	if cand.Instr.Op.IsMemAccess() {
		if s.queues.PreMemAddr.IsFull() {
			return true
		}
	} else if s.queues.PreALU.IsFull() {
		return true
	}

	if s.regs.ActiveHazard(cand.Instr, emu.HazardRAW|emu.HazardWAW) {
		return true
	}

	for i := 0; i < pos; i++ {
		earlier := entries[i]
		if emu.InterHazard(earlier.Instr, cand.Instr, emu.HazardRAW|emu.HazardWAW|emu.HazardWAR) {
			return true
		}
		if earlier.Instr.Op.IsStore() && cand.Instr.Op.IsMemAccess() {
			return true
		}
	}

	return false
}

// Produce removes the selected entries from PreIssue, the higher
// position first so the lower position's index stays valid, locks
// each one's registers immediately, and routes it to its lane's queue.
func (s *IssueStage) Produce() {
	var picks []int
	if s.pickPos1 >= 0 {
		picks = append(picks, s.pickPos1)
	}
	if s.pickPos2 >= 0 {
		picks = append(picks, s.pickPos2)
	}
	if len(picks) == 2 && picks[0] < picks[1] {
		picks[0], picks[1] = picks[1], picks[0]
	}

	for _, pos := range picks {
		e, ok := s.queues.PreIssue.Pull(pos)
		if !ok {
			continue
		}
		s.regs.AddLocks(e.Instr)

		if e.Instr.Op.IsMemAccess() {
			s.queues.PreMemAddr.PushBack(e)
		} else {
			s.queues.PreALU.PushBack(e)
		}
	}
}
