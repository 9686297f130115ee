package m68k

// System, branch, and subroutine-linkage handlers.

func opReset(cpu *CPU, opcode uint16) int {
	cpu.logger.Log("m68k: RESET instruction executed at pc=%#x", cpu.pc-2)
	return 132
}

func opNop(cpu *CPU, opcode uint16) int {
	return 4
}

func opStop(cpu *CPU, opcode uint16) int {
	sr := cpu.nextWord()
	cpu.MakeFromSR(sr)
	cpu.stopped = true
	return 4
}

func opRte(cpu *CPU, opcode uint16) int {
	sr := cpu.popWord()
	pc := cpu.popLong()
	cpu.MakeFromSR(sr)
	cpu.pc = pc
	cpu.refillPrefetch(pc, 0)
	return 20
}

func opRts(cpu *CPU, opcode uint16) int {
	pc := cpu.popLong()
	cpu.pc = pc
	cpu.refillPrefetch(pc, 0)
	return 16
}

func opTrapv(cpu *CPU, opcode uint16) int {
	if cpu.v {
		cpu.Exception(vectorTRAPV)
		return 4
	}
	return 4
}

func opRtr(cpu *CPU, opcode uint16) int {
	ccr := cpu.popWord()
	sr := cpu.MakeSR()
	cpu.MakeFromSR((sr &^ 0x00FF) | (ccr & 0x00FF))
	pc := cpu.popLong()
	cpu.pc = pc
	cpu.refillPrefetch(pc, 0)
	return 20
}

func opOriToCcr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	sr := cpu.MakeSR()
	cpu.MakeFromSR(sr | (imm & 0x00FF))
	return 20
}

func opAndiToCcr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	sr := cpu.MakeSR()
	cpu.MakeFromSR(sr & (imm | 0xFF00))
	return 20
}

func opEoriToCcr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	sr := cpu.MakeSR()
	cpu.MakeFromSR(sr ^ (imm & 0x00FF))
	return 20
}

func opOriToSr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	if !cpu.s {
		cpu.Exception(vectorPrivilege)
		return 4
	}
	cpu.MakeFromSR(cpu.MakeSR() | imm)
	return 20
}

func opAndiToSr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	if !cpu.s {
		cpu.Exception(vectorPrivilege)
		return 4
	}
	cpu.MakeFromSR(cpu.MakeSR() & imm)
	return 20
}

func opEoriToSr(cpu *CPU, opcode uint16) int {
	imm := cpu.nextWord()
	if !cpu.s {
		cpu.Exception(vectorPrivilege)
		return 4
	}
	cpu.MakeFromSR(cpu.MakeSR() ^ imm)
	return 20
}

func opTrap(cpu *CPU, opcode uint16) int {
	n := opcode & 0x0F
	cpu.Exception(vectorTrap0 + int(n))
	return 4
}

func opChk(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	bound := int32(int16(uint16(cpu.readEA(mode, eaReg, 16))))
	value := int32(int16(uint16(cpu.d[reg])))
	if value < 0 {
		cpu.n = true
		cpu.Exception(vectorCHK)
		return 4
	}
	if value > bound {
		cpu.n = false
		cpu.Exception(vectorCHK)
		return 4
	}
	return 10
}

func opLink(cpu *CPU, opcode uint16) int {
	reg := int(opcode & 0x07)
	disp := signExtend16(uint32(cpu.nextWord()))
	cpu.a[7] -= 4
	cpu.writeMem(cpu.a[7], cpu.a[reg], 32)
	cpu.a[reg] = cpu.a[7]
	cpu.a[7] += disp
	return 16
}

func opUnlk(cpu *CPU, opcode uint16) int {
	reg := int(opcode & 0x07)
	cpu.a[7] = cpu.a[reg]
	cpu.a[reg] = cpu.readMem(cpu.a[7], 32)
	cpu.a[7] += 4
	return 12
}

func opMoveUsp(cpu *CPU, opcode uint16) int {
	if !cpu.s {
		cpu.Exception(vectorPrivilege)
		return 4
	}
	reg := int(opcode & 0x07)
	if opcode&0x08 != 0 {
		cpu.a[reg] = cpu.usp
	} else {
		cpu.usp = cpu.a[reg]
	}
	return 4
}

func opJmp(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	addr := cpu.effectiveAddress(mode, reg)
	cpu.pc = addr
	cpu.refillPrefetch(addr, 0)
	return 8
}

func opJsr(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	addr := cpu.effectiveAddress(mode, reg)
	cpu.a[7] -= 4
	cpu.writeMem(cpu.a[7], cpu.pc, 32)
	cpu.pc = addr
	cpu.refillPrefetch(addr, 0)
	return 16
}

func opBra(cpu *CPU, opcode uint16) int {
	return cpu.branch(opcode, true)
}

func opBsr(cpu *CPU, opcode uint16) int {
	target, _ := cpu.branchTarget(opcode)
	retPC := cpu.pc
	cpu.a[7] -= 4
	cpu.writeMem(cpu.a[7], retPC, 32)
	cpu.pc = target
	cpu.refillPrefetch(target, 0)
	return 18
}

func opBcc(cpu *CPU, opcode uint16) int {
	cond := int((opcode >> 8) & 0x0F)
	return cpu.branch(opcode, cpu.testCondition(cond))
}

func opDbcc(cpu *CPU, opcode uint16) int {
	cond := int((opcode >> 8) & 0x0F)
	reg := int(opcode & 0x07)
	base := cpu.pc // address of the displacement word
	disp := signExtend16(uint32(cpu.nextWord()))
	if cpu.testCondition(cond) {
		cpu.refillPrefetch(cpu.pc, 0)
		return 12
	}
	cpu.d[reg] = (cpu.d[reg] &^ 0xFFFF) | (uint32(uint16(cpu.d[reg])-1) & 0xFFFF)
	if uint16(cpu.d[reg]) == 0xFFFF {
		cpu.refillPrefetch(cpu.pc, 0)
		return 14
	}
	target := base + disp
	cpu.pc = target
	cpu.refillPrefetch(target, 0)
	return 10
}

func opScc(cpu *CPU, opcode uint16) int {
	cond := int((opcode >> 8) & 0x0F)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	var value uint32
	if cpu.testCondition(cond) {
		value = 0xFF
	}
	cpu.writeEA(mode, reg, 8, value)
	return 8
}

// branch computes a Bcc/BRA-style 8-or-16-bit displacement branch. The
// base for the displacement is the address of the word following the
// opcode, i.e. pc as left by fetchOpcode.
func (cpu *CPU) branch(opcode uint16, taken bool) int {
	target, _ := cpu.branchTarget(opcode)
	if !taken {
		cpu.refillPrefetch(cpu.pc, 0)
		return 8
	}
	cpu.pc = target
	cpu.refillPrefetch(target, 0)
	return 10
}

// branchTarget resolves the branch target for Bcc/BRA/BSR: an 8-bit
// displacement in the opcode's low byte, or (when that byte is zero) a
// 16-bit displacement word following the opcode.
func (cpu *CPU) branchTarget(opcode uint16) (target uint32, used16 bool) {
	base := cpu.pc // address of the word following the opcode
	disp8 := opcode & 0xFF
	if disp8 != 0 {
		return base + signExtend8(uint32(disp8)), false
	}
	disp16 := cpu.nextWord()
	return base + signExtend16(uint32(disp16)), true
}

// effectiveAddress computes the address a control-addressing-mode operand
// (JMP/JSR/PEA/LEA) refers to, without reading through it.
func (cpu *CPU) effectiveAddress(mode, reg int) uint32 {
	switch mode {
	case ModeAddrIndirect, ModeAddrPostInc, ModeAddrPreDec:
		return cpu.a[reg]
	case ModeAddrDisplace:
		disp := signExtend16(uint32(cpu.nextWord()))
		return cpu.a[reg] + disp
	case ModeAddrIndex:
		return cpu.a[reg] + cpu.indexedDisplacement()
	case ModeAbsShort:
		return signExtend16(uint32(cpu.nextWord()))
	case ModeAbsLong:
		return cpu.nextLong()
	case ModePCDisplace:
		base := cpu.pc
		disp := signExtend16(uint32(cpu.nextWord()))
		return base + disp
	case ModePCIndex:
		base := cpu.pc
		return base + cpu.indexedDisplacement()
	default:
		return 0
	}
}

func (cpu *CPU) popWord() uint16 {
	v := uint16(cpu.readMem(cpu.a[7], 16))
	cpu.a[7] += 2
	return v
}

func (cpu *CPU) popLong() uint32 {
	v := cpu.readMem(cpu.a[7], 32)
	cpu.a[7] += 4
	return v
}
