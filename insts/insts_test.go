package insts_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/spimdf/insts"
)

func TestInsts(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Insts Suite")
}

func bin(opcode string, rest string) string {
	return opcode + rest
}

var _ = Describe("Decode", func() {
	It("decodes an R-type ADD", func() {
		// opcode 110000, rs=1, rt=2, rd=3, sa=0, func=0
		mach := "110000" + "00001" + "00010" + "00011" + "00000" + "000000"
		in, err := insts.Decode(mach)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Op).To(Equal(insts.ADD))
		Expect(in.R.RS).To(Equal(uint8(1)))
		Expect(in.R.RT).To(Equal(uint8(2)))
		Expect(in.R.RD).To(Equal(uint8(3)))
	})

	It("decodes an I-type ADDI with a negative immediate", func() {
		// opcode 111000, rs=0, rt=1, imm = -50 two's complement over 16 bits
		mach := "111000" + "00000" + "00001" + twosComp16(-50)
		in, err := insts.Decode(mach)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Op).To(Equal(insts.ADDI))
		Expect(in.I.Imm).To(Equal(int32(-50)))
	})

	It("zero-extends ORI immediates", func() {
		mach := "111010" + "00000" + "00001" + "1111111111111111"
		in, err := insts.Decode(mach)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.I.Imm).To(Equal(int32(0x0000FFFF)))
	})

	It("decodes a J-type BREAK", func() {
		mach := "010101" + "00000000000000000000000001"
		in, err := insts.Decode(mach)
		Expect(err).NotTo(HaveOccurred())
		Expect(in.Op).To(Equal(insts.BRK))
	})

	It("rejects unrecognized opcode bits", func() {
		mach := "000001" + "00000000000000000000000000"
		_, err := insts.Decode(mach)
		Expect(err).To(HaveOccurred())
	})

	It("rejects lines that are not 32 bits", func() {
		_, err := insts.Decode("0101")
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Dependency descriptors", func() {
	It("reports LW reads rs and writes rt", func() {
		in := insts.Instruction{Op: insts.LW, I: insts.IType{RS: 1, RT: 2, Imm: 8}}
		Expect(in.Reads()).To(Equal([]uint8{1}))
		rd, ok := in.Writes()
		Expect(ok).To(BeTrue())
		Expect(rd).To(Equal(uint8(2)))
	})

	It("reports SW reads rs and rt and writes nothing", func() {
		in := insts.Instruction{Op: insts.SW, I: insts.IType{RS: 1, RT: 2, Imm: 8}}
		Expect(in.Reads()).To(Equal([]uint8{1, 2}))
		_, ok := in.Writes()
		Expect(ok).To(BeFalse())
	})

	It("reports NOP has no reads or writes", func() {
		in := insts.Instruction{Op: insts.NOP}
		Expect(in.Reads()).To(BeEmpty())
		_, ok := in.Writes()
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("ALUResult", func() {
	It("computes ADDI", func() {
		in := insts.Instruction{Op: insts.ADDI, I: insts.IType{Imm: 5}}
		Expect(insts.ALUResult(in, 10, 0)).To(Equal(int32(15)))
	})

	It("computes SRA as an arithmetic shift", func() {
		in := insts.Instruction{Op: insts.SRA, R: insts.RType{SA: 1}}
		Expect(insts.ALUResult(in, 0, -4)).To(Equal(int32(-2)))
	})

	It("computes SRL as a logical shift", func() {
		in := insts.Instruction{Op: insts.SRL, R: insts.RType{SA: 1}}
		Expect(insts.ALUResult(in, 0, -4)).To(Equal(int32(uint32(0xFFFFFFFC) >> 1)))
	})

	It("computes NOR", func() {
		in := insts.Instruction{Op: insts.NOR}
		Expect(insts.ALUResult(in, 0, 0)).To(Equal(int32(-1)))
	})
})

var _ = Describe("Disassemble", func() {
	It("prints J with the shifted index", func() {
		in := insts.Instruction{Op: insts.J, J: insts.JType{Index: 68}}
		Expect(insts.Disassemble(in, 256)).To(Equal("J #272"))
	})

	It("prints BEQ with imm*4", func() {
		in := insts.Instruction{Op: insts.BEQ, I: insts.IType{RS: 1, RT: 2, Imm: 4}}
		Expect(insts.Disassemble(in, 0)).To(Equal("BEQ R1, R2, #16"))
	})

	It("prints SW as offset(base)", func() {
		in := insts.Instruction{Op: insts.SW, I: insts.IType{RS: 1, RT: 2, Imm: 8}}
		Expect(insts.Disassemble(in, 0)).To(Equal("SW R2, 8(R1)"))
	})

	It("prints shifts with an unmultiplied shift amount", func() {
		in := insts.Instruction{Op: insts.SLL, R: insts.RType{RD: 3, RT: 1, SA: 2}}
		Expect(insts.Disassemble(in, 0)).To(Equal("SLL R3, R1, #2"))
	})
})

func twosComp16(v int) string {
	u := uint16(int16(v))
	s := make([]byte, 16)
	for i := 0; i < 16; i++ {
		bit := (u >> uint(15-i)) & 1
		if bit == 1 {
			s[i] = '1'
		} else {
			s[i] = '0'
		}
	}
	return string(s)
}
