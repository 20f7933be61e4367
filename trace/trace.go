// Package trace renders the per-cycle simulation.txt listing: the
// fetch unit's waiting/executed slots, the six inter-stage queues, the
// register file, and data memory, exactly as spec'd for every Clock
// tick from the first through the one where Fetch's broken flag and
// the post-Produce queue state both go quiet.
package trace

import (
	"fmt"
	"io"

	"github.com/sarchlab/spimdf/insts"
	"github.com/sarchlab/spimdf/timing/pipeline"
)

// Writer renders one cycle's worth of CPU state per call to WriteCycle,
// separated by a line of 20 hyphens.
type Writer struct {
	w io.Writer
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// WriteCycle renders cpu's current state as the cycle that just ran.
func (tw *Writer) WriteCycle(cpu *pipeline.CPU) error {
	var err error
	emit := func(format string, args ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(tw.w, format, args...)
	}

	emit("%s\n", dashes(20))
	emit("Cycle %d:\n\n", cpu.Cycle()-1)

	emit("IF Unit:\n")
	emit("\tWaiting Instruction:%s\n", bracketed(cpu.Fetch.StallerPretty()))
	emit("\tExecuted Instruction:%s\n", bracketed(cpu.Fetch.ExecutedPretty()))

	emit("Pre-Issue Queue:\n")
	writeMultiEntry(emit, cpu.Queues.PreIssue.Snapshot(), 4)

	emit("Pre-ALU1 Queue:\n")
	writeMultiEntry(emit, cpu.Queues.PreMemAddr.Snapshot(), 2)

	emit("Pre-MEM Queue:%s\n", bracketed(singlePretty(cpu.Queues.PreMem.Snapshot())))
	emit("Post-MEM Queue:%s\n", bracketed(singlePrettyPostMem(cpu.Queues.PostMem.Snapshot())))

	emit("Pre-ALU2 Queue:\n")
	writeMultiEntry(emit, cpu.Queues.PreALU.Snapshot(), 2)

	emit("Post-ALU2 Queue:%s\n", bracketed(singlePrettyPostALU(cpu.Queues.PostALU.Snapshot())))

	emit("\nRegisters\n")
	regs := cpu.Regs.Snapshot()
	for row := 0; row < 4; row++ {
		emit("R%02d:", row*8)
		for col := 0; col < 8; col++ {
			emit("\t%d", regs[row*8+col])
		}
		emit("\n")
	}

	emit("\nData\n")
	addrs := cpu.Memory.DataAddresses()
	word := 0
	for _, addr := range addrs {
		if word == 0 {
			emit("%d:\t", addr)
		}
		emit("%d", cpu.Memory.ReadData(addr))
		if word == 7 {
			emit("\n")
			word = 0
		} else {
			emit("\t")
			word++
		}
	}

	return err
}

func dashes(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '-'
	}
	return string(b)
}

func bracketed(pretty string) string {
	if pretty == "" {
		return ""
	}
	return " [" + pretty + "]"
}

func writeMultiEntry(emit func(string, ...interface{}), entries []pipeline.PreIssueEntry, capacity int) {
	for i := 0; i < capacity; i++ {
		pretty := ""
		if i < len(entries) {
			pretty = insts.Disassemble(entries[i].Instr, entries[i].Addr)
		}
		emit("\tEntry %d:%s\n", i, bracketed(pretty))
	}
}

func singlePretty(entries []pipeline.PreMemEntry) string {
	if len(entries) == 0 {
		return ""
	}
	e := entries[0]
	return insts.Disassemble(e.Instr, e.Addr)
}

func singlePrettyPostMem(entries []pipeline.PostMemEntry) string {
	if len(entries) == 0 {
		return ""
	}
	e := entries[0]
	return insts.Disassemble(e.Instr, e.Addr)
}

func singlePrettyPostALU(entries []pipeline.PostALUEntry) string {
	if len(entries) == 0 {
		return ""
	}
	e := entries[0]
	return insts.Disassemble(e.Instr, e.Addr)
}
