package insts

import "fmt"

// Disassemble renders the textual form used in disassembly.txt and in
// the Pre-Issue/Pre-ALU/etc. queue listings of simulation.txt. addr is
// accepted for callers that carry an instruction's address alongside
// it, but disassembly here never needs it: J prints its shifted index,
// not an absolute target.
func Disassemble(in Instruction, addr uint32) string {
	switch in.Op {
	case J:
		return fmt.Sprintf("J #%d", in.J.Index<<2)
	case JR:
		return fmt.Sprintf("JR R%d", in.R.RS)
	case BEQ:
		return fmt.Sprintf("BEQ R%d, R%d, #%d", in.I.RS, in.I.RT, in.I.Imm*4)
	case BLTZ:
		return fmt.Sprintf("BLTZ R%d, #%d", in.I.RS, in.I.Imm*4)
	case BGTZ:
		return fmt.Sprintf("BGTZ R%d, #%d", in.I.RS, in.I.Imm*4)
	case BRK:
		return "BREAK"
	case SW:
		return fmt.Sprintf("SW R%d, %d(R%d)", in.I.RT, in.I.Imm, in.I.RS)
	case LW:
		return fmt.Sprintf("LW R%d, %d(R%d)", in.I.RT, in.I.Imm, in.I.RS)
	case SLL:
		return fmt.Sprintf("SLL R%d, R%d, #%d", in.R.RD, in.R.RT, in.R.SA)
	case SRL:
		return fmt.Sprintf("SRL R%d, R%d, #%d", in.R.RD, in.R.RT, in.R.SA)
	case SRA:
		return fmt.Sprintf("SRA R%d, R%d, #%d", in.R.RD, in.R.RT, in.R.SA)
	case NOP:
		return "NOP"
	case ADD, SUB, MUL, AND, OR, XOR, NOR, SLT:
		return fmt.Sprintf("%s R%d, R%d, R%d", in.Op, in.R.RD, in.R.RS, in.R.RT)
	case ADDI, ANDI, ORI, XORI:
		return fmt.Sprintf("%s R%d, R%d, #%d", in.Op, in.I.RT, in.I.RS, in.I.Imm)
	default:
		return "???"
	}
}
