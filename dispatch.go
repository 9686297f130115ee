package m68k

// opHandler is the signature every dispatch table entry has: given the
// already-fetched opcode word, mutate CPU state (consuming any extension
// words itself via nextWord/nextLong) and return the instruction's cycle
// cost.
type opHandler func(cpu *CPU, opcode uint16) int

// instructionFamily is one row of the compact handler table plus its
// decode-metadata rule: every opcode matching mask/match shares handler.
// The lowest matching opcode no earlier family has claimed is the
// canonical encoding (table68k handler field == -1, in the source this is
// modeled on); every other opcode the family claims is a merge-pass alias
// of it.
//
// Families are listed most-specific first. A broader family's loop skips
// any opcode a narrower family already claimed, so e.g. MOVEA (mask
// 0xF1C0) must precede the general MOVE family (mask 0xF000) that would
// otherwise also match it.
type instructionFamily struct {
	name    string
	mask    uint16
	match   uint16
	handler opHandler
}

var instructionFamilies = []instructionFamily{
	// Exact single-opcode encodings.
	{"RESET", 0xFFFF, 0x4E70, opReset},
	{"NOP", 0xFFFF, 0x4E71, opNop},
	{"STOP", 0xFFFF, 0x4E72, opStop},
	{"RTE", 0xFFFF, 0x4E73, opRte},
	{"RTS", 0xFFFF, 0x4E75, opRts},
	{"TRAPV", 0xFFFF, 0x4E76, opTrapv},
	{"RTR", 0xFFFF, 0x4E77, opRtr},
	{"ORI2CCR", 0xFFFF, 0x003C, opOriToCcr},
	{"ANDI2CCR", 0xFFFF, 0x023C, opAndiToCcr},
	{"EORI2CCR", 0xFFFF, 0x0A3C, opEoriToCcr},
	{"ORI2SR", 0xFFFF, 0x007C, opOriToSr},
	{"ANDI2SR", 0xFFFF, 0x027C, opAndiToSr},
	{"EORI2SR", 0xFFFF, 0x0A7C, opEoriToSr},

	// Quick immediate / single-register ops.
	{"TRAP", 0xFFF0, 0x4E40, opTrap},
	{"LINK", 0xFFF8, 0x4E50, opLink},
	{"UNLK", 0xFFF8, 0x4E58, opUnlk},
	{"MOVEUSP", 0xFFF0, 0x4E60, opMoveUsp},
	{"SWAP", 0xFFF8, 0x4840, opSwap},
	{"EXTW", 0xFFF8, 0x4880, opExtWord},
	{"EXTL", 0xFFF8, 0x48C0, opExtLong},
	{"NBCD", 0xFFC0, 0x4800, opNbcd},
	{"PEA", 0xFFC0, 0x4840, opPea},
	{"TAS", 0xFFC0, 0x4AC0, opTas},
	{"JSR", 0xFFC0, 0x4E80, opJsr},
	{"JMP", 0xFFC0, 0x4EC0, opJmp},
	{"CHK", 0xF1C0, 0x4180, opChk},
	{"LEA", 0xF1C0, 0x41C0, opLea},

	// MOVEM. Bit 10 is the direction bit and must be part of the match, or
	// the save family (listed first) would also claim every restore opcode.
	{"MOVEM-save", 0xFF80, 0x4880, opMovemSave},
	{"MOVEM-restore", 0xFF80, 0x4C80, opMovemRestore},

	// EXG before AND, MULU/MULS/ABCD before AND.
	{"EXG-DD", 0xF1F8, 0xC140, opExgDD},
	{"EXG-AA", 0xF1F8, 0xC148, opExgAA},
	{"EXG-DA", 0xF1F8, 0xC188, opExgDA},
	{"MULU", 0xF1C0, 0xC0C0, opMulu},
	{"MULS", 0xF1C0, 0xC1C0, opMuls},
	{"ABCD", 0xF1F0, 0xC100, opAbcd},
	{"AND", 0xF000, 0xC000, opAnd},

	{"DIVU", 0xF1C0, 0x80C0, opDivu},
	{"DIVS", 0xF1C0, 0x81C0, opDivs},
	{"SBCD", 0xF1F0, 0x8100, opSbcd},
	{"OR", 0xF000, 0x8000, opOr},

	// ADD family.
	{"ADDA.W", 0xF1C0, 0xD0C0, opAdda},
	{"ADDA.L", 0xF1C0, 0xD1C0, opAdda},
	{"ADDX", 0xF130, 0xD100, opAddx},
	{"ADDQ.B", 0xF1C0, 0x5000, opAddq},
	{"ADDQ.W", 0xF1C0, 0x5040, opAddq},
	{"ADDQ.L", 0xF1C0, 0x5080, opAddq},
	{"ADD", 0xF000, 0xD000, opAdd},

	// SUB family.
	{"SUBA.W", 0xF1C0, 0x90C0, opSuba},
	{"SUBA.L", 0xF1C0, 0x91C0, opSuba},
	{"SUBX", 0xF130, 0x9100, opSubx},
	{"SUBQ.B", 0xF1C0, 0x5100, opSubq},
	{"SUBQ.W", 0xF1C0, 0x5140, opSubq},
	{"SUBQ.L", 0xF1C0, 0x5180, opSubq},
	{"SUB", 0xF000, 0x9000, opSub},

	// CMP family.
	{"CMPA.W", 0xF1C0, 0xB0C0, opCmpa},
	{"CMPA.L", 0xF1C0, 0xB1C0, opCmpa},
	{"CMPM", 0xF138, 0xB108, opCmpm},
	{"EOR", 0xF100, 0xB100, opEor},
	{"CMP", 0xF000, 0xB000, opCmp},

	// Immediate ops.
	{"ORI", 0xFF00, 0x0000, opOri},
	{"ANDI", 0xFF00, 0x0200, opAndi},
	{"SUBI", 0xFF00, 0x0400, opSubi},
	{"ADDI", 0xFF00, 0x0600, opAddi},
	{"EORI", 0xFF00, 0x0A00, opEori},
	{"CMPI", 0xFF00, 0x0C00, opCmpi},

	// Bit operations: MOVEP before dynamic-bit, static before dynamic.
	{"MOVEP", 0xF138, 0x0108, opMovep},
	{"BTST-s", 0xFFC0, 0x0800, opBtstStatic},
	{"BCHG-s", 0xFFC0, 0x0840, opBchgStatic},
	{"BCLR-s", 0xFFC0, 0x0880, opBclrStatic},
	{"BSET-s", 0xFFC0, 0x08C0, opBsetStatic},
	{"BTST-d", 0xF1C0, 0x0100, opBtstDynamic},
	{"BCHG-d", 0xF1C0, 0x0140, opBchgDynamic},
	{"BCLR-d", 0xF1C0, 0x0180, opBclrDynamic},
	{"BSET-d", 0xF1C0, 0x01C0, opBsetDynamic},

	// Shift/rotate: memory form (size bits==11) before register form.
	{"SHIFT-mem", 0xF0C0, 0xE0C0, opShiftMem},
	{"SHIFT-reg.B", 0xF0C0, 0xE000, opShiftReg},
	{"SHIFT-reg.W", 0xF0C0, 0xE040, opShiftReg},
	{"SHIFT-reg.L", 0xF0C0, 0xE080, opShiftReg},

	// CLR/NEG/NEGX/NOT/TST.
	{"NEGX", 0xFF00, 0x4000, opNegx},
	{"CLR", 0xFF00, 0x4200, opClr},
	{"NEG", 0xFF00, 0x4400, opNeg},
	{"NOT", 0xFF00, 0x4600, opNot},
	{"TST", 0xFF00, 0x4A00, opTst},

	// MOVEA before general MOVE.
	{"MOVEA.W", 0xF1C0, 0x3040, opMovea},
	{"MOVEA.L", 0xF1C0, 0x2040, opMovea},
	{"MOVE.B", 0xF000, 0x1000, opMove},
	{"MOVE.W", 0xF000, 0x3000, opMove},
	{"MOVE.L", 0xF000, 0x2000, opMove},

	// MOVEQ.
	{"MOVEQ", 0xF100, 0x7000, opMoveq},

	// Branches: BRA/BSR before the general Bcc sweep; DBcc before Scc.
	{"BRA", 0xFF00, 0x6000, opBra},
	{"BSR", 0xFF00, 0x6100, opBsr},
	{"Bcc", 0xF000, 0x6000, opBcc},
	{"DBcc", 0xF0F8, 0x50C8, opDbcc},
	{"Scc", 0xF0C0, 0x50C0, opScc},
}

// BuildDispatchTable constructs the 65,536-entry dispatch array exactly
// once (idempotent on repeated calls): every slot starts at the shared
// illegal-opcode handler, the compact table pass assigns each family's
// canonical opcode directly, and the merge pass propagates that handler to
// every other opcode the family's mask/match rule covers. A family whose
// canonical slot was never actually assigned (a construction bug, not a
// runtime condition) leaves the merge source pointing at the illegal
// handler — fatal, exactly as an inconsistent table68k is in the source
// this is grounded on.
func BuildDispatchTable(cpu *CPU) {
	if cpu.dispatchSet {
		return
	}

	for o := range cpu.dispatch {
		cpu.dispatch[o] = IllegalOpcode
	}

	// mergeTarget[o] == 0 means unclaimed (stays illegal), claimedNoCopy
	// marks a canonical slot; otherwise it is the canonical opcode (stored
	// as opcode+2 so 0x0000 itself is representable) whose handler o must
	// copy in the merge pass below.
	var mergeTarget [65536]uint32
	const claimedNoCopy = 1 << 31

	for _, f := range instructionFamilies {
		// The canonical slot for this family is the first opcode its
		// mask/match rule covers that no narrower family has already
		// claimed — not necessarily f.match itself, since a family's
		// nominal representative can coincide with an unrelated, more
		// specific encoding (e.g. PEA's mode-0 member is literally SWAP).
		canonical := -1
		for o := 0; o < 65536; o++ {
			opcode := uint16(o)
			if opcode&f.mask != f.match || mergeTarget[o] != 0 {
				continue
			}
			canonical = o
			break
		}
		if canonical < 0 {
			continue // every matching opcode already belongs to a narrower family
		}
		mergeTarget[canonical] = claimedNoCopy
		cpu.dispatch[canonical] = f.handler
		cpu.dispatchAssigned[canonical] = true

		for o := 0; o < 65536; o++ {
			opcode := uint16(o)
			if o == canonical || opcode&f.mask != f.match || mergeTarget[o] != 0 {
				continue
			}
			mergeTarget[o] = uint32(canonical) + 2
		}
	}

	for o := 0; o < 65536; o++ {
		switch {
		case mergeTarget[o] == 0:
			continue // illegal opcode, leave pointing at IllegalOpcode
		case mergeTarget[o] == claimedNoCopy:
			continue // canonical slot, already assigned above
		default:
			src := uint16(mergeTarget[o] - 2)
			if !cpu.dispatchAssigned[src] {
				panic("m68k: dispatch table inconsistent: merge source never assigned a handler")
			}
			cpu.dispatch[o] = cpu.dispatch[src]
			cpu.dispatchAssigned[o] = true
		}
	}

	cpu.dispatchSet = true
}
