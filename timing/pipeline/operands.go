package pipeline

import (
	"github.com/sarchlab/spimdf/emu"
	"github.com/sarchlab/spimdf/insts"
)

// readOperands reads the register values an instruction's execute
// function needs, in (rs, rt) order. Which fields are meaningful
// depends on the instruction's shape: R-type shift instructions only
// read rt, I-type arithmetic/memory instructions only read rs.
func readOperands(regs *emu.RegisterFile, in insts.Instruction) (rs, rt int32) {
	switch in.Op.Shape() {
	case insts.ShapeR:
		switch in.Op {
		case insts.SLL, insts.SRL, insts.SRA:
			rt = regs.Read(in.R.RT)
		default:
			rs = regs.Read(in.R.RS)
			rt = regs.Read(in.R.RT)
		}
	case insts.ShapeI:
		rs = regs.Read(in.I.RS)
	}
	return rs, rt
}
