// Package emu provides the architectural state the pipeline operates
// on: the 32-entry scoreboarded register file and the word-addressed
// instruction/data memories.
package emu

import "github.com/sarchlab/spimdf/insts"

// HazardKind is a bitmask selecting which hazard classes a check
// considers. RAW (read-after-write), WAW (write-after-write), and WAR
// (write-after-read) are the three classes the scoreboard protocol
// checks, both against already-issued state (ActiveHazard) and against
// other not-yet-issued candidates (InterHazard).
type HazardKind uint8

const (
	HazardRAW HazardKind = 1 << iota
	HazardWAW
	HazardWAR
)

func (k HazardKind) has(h HazardKind) bool { return k&h != 0 }

// register is one entry of the scoreboard: its current value plus the
// pending-read/pending-write locks held by in-flight instructions.
type register struct {
	value       int32
	pendingRead bool
	pendingWrite bool
}

// RegisterFile is the 32-register scoreboard. R0 is an ordinary
// writable register; nothing hard-wires it to zero.
type RegisterFile struct {
	regs [32]register
}

// Read returns a register's current value.
func (rf *RegisterFile) Read(r uint8) int32 {
	return rf.regs[r].value
}

// Write sets a register's current value. It does not touch the locks;
// Writeback calls this after the scoreboard locks have already been
// checked and are released separately via RemoveLocks.
func (rf *RegisterFile) Write(r uint8, v int32) {
	rf.regs[r].value = v
}

// AddLocks sets the pendingRead flag for every register in's Reads()
// names and the pendingWrite flag for the register its Writes() names,
// if any. Issue calls this the instant it selects an instruction.
func (rf *RegisterFile) AddLocks(in insts.Instruction) {
	rf.setLocks(in, true)
}

// RemoveLocks clears the same flags AddLocks set. Writeback calls this
// once an instruction's result (if any) has been committed; Mem calls
// it directly for stores, which never reach Writeback.
func (rf *RegisterFile) RemoveLocks(in insts.Instruction) {
	rf.setLocks(in, false)
}

func (rf *RegisterFile) setLocks(in insts.Instruction, flag bool) {
	for _, r := range in.Reads() {
		rf.regs[r].pendingRead = flag
	}
	if w, ok := in.Writes(); ok {
		rf.regs[w].pendingWrite = flag
	}
}

// ActiveHazard reports whether in conflicts, under any of the
// requested kinds, with locks already held in the scoreboard (i.e.
// with instructions that have already been issued). RAW: any register
// in reads has pendingWrite set. WAW: in's write target has
// pendingWrite set. WAR: in's write target has pendingRead set. WAW
// and WAR both report false immediately if in writes nothing.
func (rf *RegisterFile) ActiveHazard(in insts.Instruction, kinds HazardKind) bool {
	if kinds.has(HazardRAW) {
		for _, r := range in.Reads() {
			if rf.regs[r].pendingWrite {
				return true
			}
		}
	}

	w, writes := in.Writes()
	if !writes {
		return false
	}

	if kinds.has(HazardWAW) && rf.regs[w].pendingWrite {
		return true
	}
	if kinds.has(HazardWAR) && rf.regs[w].pendingRead {
		return true
	}
	return false
}

// InterHazard reports whether later conflicts with earlier, an
// instruction ahead of it in program order that has not yet issued.
// RAW: later reads a register earlier writes. WAR: earlier reads a
// register later writes. WAW: both write the same register. WAR and
// WAW report false if later writes nothing; WAW also reports false if
// earlier writes nothing.
func InterHazard(earlier, later insts.Instruction, kinds HazardKind) bool {
	earlierW, earlierWrites := earlier.Writes()
	laterW, laterWrites := later.Writes()

	if kinds.has(HazardRAW) && earlierWrites {
		for _, r := range later.Reads() {
			if r == earlierW {
				return true
			}
		}
	}

	if kinds.has(HazardWAR) && laterWrites {
		for _, r := range earlier.Reads() {
			if r == laterW {
				return true
			}
		}
	}

	if kinds.has(HazardWAW) && laterWrites && earlierWrites && laterW == earlierW {
		return true
	}

	return false
}

// Snapshot returns the 32 register values in order, for trace output.
func (rf *RegisterFile) Snapshot() [32]int32 {
	var out [32]int32
	for i := range rf.regs {
		out[i] = rf.regs[i].value
	}
	return out
}
