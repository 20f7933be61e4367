package trace_test

import (
	"bytes"
	"strings"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
	"github.com/sarchlab/spimdf/timing/pipeline"
	"github.com/sarchlab/spimdf/trace"
)

func TestTrace(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Trace Suite")
}

var _ = Describe("Writer", func() {
	It("delimits each cycle with a line of 20 hyphens and numbers it", func() {
		regs := &emu.RegisterFile{}
		mem := emu.NewMemory()
		mem.StoreInstruction(256, insts.Instruction{Op: insts.BRK})

		cpu := pipeline.NewCPU(regs, mem)
		cpu.Clock()

		var buf bytes.Buffer
		w := trace.NewWriter(&buf)
		Expect(w.WriteCycle(cpu)).NotTo(HaveOccurred())

		out := buf.String()
		Expect(out).To(HavePrefix(strings.Repeat("-", 20)))
		Expect(out).To(ContainSubstring("Cycle 1:"))
		Expect(out).To(ContainSubstring("R00:"))
		Expect(out).To(ContainSubstring("R24:"))
	})

	It("omits the bracketed pretty form for an empty slot", func() {
		regs := &emu.RegisterFile{}
		mem := emu.NewMemory()
		mem.StoreInstruction(256, insts.Instruction{Op: insts.BRK})

		cpu := pipeline.NewCPU(regs, mem)
		cpu.Clock()

		var buf bytes.Buffer
		Expect(trace.NewWriter(&buf).WriteCycle(cpu)).NotTo(HaveOccurred())
		Expect(buf.String()).To(ContainSubstring("Post-MEM Queue:\n"))
	})

	It("leaves a partial data row with a trailing tab and no newline", func() {
		regs := &emu.RegisterFile{}
		mem := emu.NewMemory()
		mem.StoreInstruction(256, insts.Instruction{Op: insts.BRK})
		mem.WriteData(100, 7)

		cpu := pipeline.NewCPU(regs, mem)
		cpu.Clock()

		var buf bytes.Buffer
		Expect(trace.NewWriter(&buf).WriteCycle(cpu)).NotTo(HaveOccurred())
		Expect(buf.String()).To(HaveSuffix("100:\t7\t"))
	})
})
