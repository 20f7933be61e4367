package pipeline

import "github.com/sarchlab/spimdf/insts"

// entry is the payload every inter-stage queue carries at minimum: the
// instruction itself and the address it was fetched from, which the
// trace formatter needs to render the queue listings.
type entry struct {
	Instr insts.Instruction
	Addr  uint32
}

// PreIssueEntry is a PreIssue queue payload: a decoded instruction
// waiting for Issue to select it.
type PreIssueEntry = entry

// PreALUEntry is a PreALU queue payload: an instruction Issue routed
// to the ALU lane, waiting for ALU to execute it.
type PreALUEntry = entry

// PostALUEntry is a PostALU queue payload: an ALU result waiting for
// Writeback.
type PostALUEntry struct {
	entry
	Result int32
}

// PreMemAddrEntry is a PreMemAddr queue payload: a memory instruction
// waiting for MemAddr to compute its effective address.
type PreMemAddrEntry = entry

// PreMemEntry is a PreMem queue payload: a memory instruction with its
// effective address computed, waiting for Mem.
type PreMemEntry struct {
	entry
	EffAddr uint32
}

// PostMemEntry is a PostMem queue payload: a completed load's result,
// waiting for Writeback. Stores never produce a PostMem entry; they
// retire directly inside Mem.
type PostMemEntry struct {
	entry
	Result int32
}

// Queues bundles the six fixed-capacity inter-stage FIFOs, sized per
// the capacities given beside each field.
type Queues struct {
	PreIssue   *BoundedFIFO[PreIssueEntry]   // capacity 4
	PreALU     *BoundedFIFO[PreALUEntry]     // capacity 2
	PostALU    *BoundedFIFO[PostALUEntry]    // capacity 1
	PreMemAddr *BoundedFIFO[PreMemAddrEntry] // capacity 2
	PreMem     *BoundedFIFO[PreMemEntry]     // capacity 1
	PostMem    *BoundedFIFO[PostMemEntry]    // capacity 1
}

// NewQueues allocates the six inter-stage queues at the capacities the
// pipeline is fixed to.
func NewQueues() *Queues {
	return &Queues{
		PreIssue:   NewBoundedFIFO[PreIssueEntry]("pre_issue", 4),
		PreALU:     NewBoundedFIFO[PreALUEntry]("pre_alu", 2),
		PostALU:    NewBoundedFIFO[PostALUEntry]("post_alu", 1),
		PreMemAddr: NewBoundedFIFO[PreMemAddrEntry]("pre_mem_addr", 2),
		PreMem:     NewBoundedFIFO[PreMemEntry]("pre_mem", 1),
		PostMem:    NewBoundedFIFO[PostMemEntry]("post_mem", 1),
	}
}
