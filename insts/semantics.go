package insts

// ALUResult computes the value ADD/SUB/MUL/AND/OR/XOR/NOR/SLT/ADDI/ANDI/
// ORI/XORI/SLL/SRL/SRA write back, given the already-read source register
// values in rs, rt order (matching Instruction.Reads()). It is a pure
// function: the pipeline reads registers and hands their values in, so
// this package never touches a register file.
func ALUResult(in Instruction, rs, rt int32) int32 {
	switch in.Op {
	case ADD:
		return rs + rt
	case SUB:
		return rs - rt
	case MUL:
		return rs * rt
	case AND:
		return rs & rt
	case OR:
		return rs | rt
	case XOR:
		return rs ^ rt
	case NOR:
		return ^(rs | rt)
	case SLT:
		if rs < rt {
			return 1
		}
		return 0
	case ADDI:
		return rs + in.I.Imm
	case ANDI:
		return rs & in.I.Imm
	case ORI:
		return rs | in.I.Imm
	case XORI:
		return rs ^ in.I.Imm
	case SLL:
		return rt << in.R.SA
	case SRL:
		return int32(uint32(rt) >> in.R.SA)
	case SRA:
		return rt >> in.R.SA
	default:
		return 0
	}
}

// MemAddress computes the effective address for LW/SW: base register
// plus the sign-extended immediate.
func MemAddress(in Instruction, rs int32) int32 {
	return rs + in.I.Imm
}

// BranchTarget computes the PC a taken J/JR/BEQ/BLTZ/BGTZ jumps to. pc
// is the PC as Fetch already advanced it past the branch itself (the
// address of the next sequential instruction) before parking it in the
// staller slot; rs/rt are the already-read source values needed by
// JR/BEQ/BLTZ/BGTZ.
func BranchTarget(in Instruction, pc uint32, rs, rt int32) uint32 {
	switch in.Op {
	case J:
		return (pc & 0xF0000000) | (in.J.Index << 2)
	case JR:
		return uint32(rs)
	case BEQ:
		return uint32(int64(pc) + int64(in.I.Imm)*4)
	case BLTZ:
		return uint32(int64(pc) + int64(in.I.Imm)*4)
	case BGTZ:
		return uint32(int64(pc) + int64(in.I.Imm)*4)
	default:
		return pc
	}
}

// BranchTaken reports whether a conditional branch's condition holds.
// J and JR are unconditional and always report true.
func BranchTaken(in Instruction, rs, rt int32) bool {
	switch in.Op {
	case J, JR:
		return true
	case BEQ:
		return rs == rt
	case BLTZ:
		return rs < 0
	case BGTZ:
		return rs > 0
	default:
		return false
	}
}
