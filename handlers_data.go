package m68k

// Data movement and single-operand handlers.

func opMove(cpu *CPU, opcode uint16) int {
	size := moveSize(opcode)
	srcMode := getEAMode(opcode)
	srcReg := getEAReg(opcode)
	dstReg := int((opcode >> 9) & 0x07)
	dstMode := moveDestMode(opcode, dstReg)

	value := cpu.readEA(srcMode, srcReg, size)
	cpu.writeEA(dstMode, dstReg, size, value)
	cpu.setFlagsLogical(value, size)
	return 4
}

// moveDestMode decodes MOVE's destination field, which places mode in
// bits 8-6 and register in bits 11-9 — the reverse order of every other
// instruction's <ea> field.
func moveDestMode(opcode uint16, dstReg int) int {
	m := int((opcode >> 6) & 0x07)
	if m == 7 {
		return ModeAbsShort + dstReg
	}
	return m
}

// moveSize decodes MOVE's two-bit size field (bits 13-12): 01=byte,
// 11=word, 10=long. This differs from the shift-amount convention getSize
// uses elsewhere, so MOVE has its own decoder.
func moveSize(opcode uint16) int {
	switch (opcode >> 12) & 0x03 {
	case 1:
		return 8
	case 3:
		return 16
	default:
		return 32
	}
}

func opMovea(cpu *CPU, opcode uint16) int {
	size := moveSize(opcode)
	srcMode := getEAMode(opcode)
	srcReg := getEAReg(opcode)
	dstReg := int((opcode >> 9) & 0x07)

	value := cpu.readEA(srcMode, srcReg, size)
	if size == 16 {
		value = signExtend16(value)
	}
	cpu.a[dstReg] = value
	return 4
}

func opMoveq(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	value := signExtend8(uint32(opcode & 0xFF))
	cpu.d[reg] = value
	cpu.setFlagsLogical(value, 32)
	return 4
}

func opClr(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	cpu.writeEA(mode, reg, size, 0)
	cpu.n, cpu.z, cpu.v, cpu.c = false, true, false, false
	return 4
}

func opNot(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	value := maskValue(^cpu.readEA(mode, reg, size), size)
	cpu.writeEA(mode, reg, size, value)
	cpu.setFlagsLogical(value, size)
	return 4
}

func opNeg(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	src := cpu.readEA(mode, reg, size)
	result := maskValue(0-src, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsSub(0, src, result, size)
	return 4
}

func opNegx(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	src := cpu.readEA(mode, reg, size)
	var borrow uint32
	if cpu.x {
		borrow = 1
	}
	result := maskValue(0-src-borrow, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsSub(0, src+borrow, result, size)
	if result != 0 {
		cpu.z = false
	}
	return 4
}

func opTst(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	value := cpu.readEA(mode, reg, size)
	cpu.setFlagsLogical(value, size)
	return 4
}

func opSwap(cpu *CPU, opcode uint16) int {
	reg := int(opcode & 0x07)
	v := cpu.d[reg]
	v = (v << 16) | (v >> 16)
	cpu.d[reg] = v
	cpu.setFlagsLogical(v, 32)
	return 4
}

func opExtWord(cpu *CPU, opcode uint16) int {
	reg := int(opcode & 0x07)
	v := signExtend8(cpu.d[reg] & 0xFF)
	cpu.d[reg] = (cpu.d[reg] &^ 0xFFFF) | (v & 0xFFFF)
	cpu.setFlagsLogical(v&0xFFFF, 16)
	return 4
}

func opExtLong(cpu *CPU, opcode uint16) int {
	reg := int(opcode & 0x07)
	v := signExtend16(cpu.d[reg] & 0xFFFF)
	cpu.d[reg] = v
	cpu.setFlagsLogical(v, 32)
	return 4
}

func opLea(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	dst := int((opcode >> 9) & 0x07)
	cpu.a[dst] = cpu.effectiveAddress(mode, reg)
	return 4
}

func opPea(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	addr := cpu.effectiveAddress(mode, reg)
	cpu.a[7] -= 4
	cpu.writeMem(cpu.a[7], addr, 32)
	return 12
}

func opExgDD(cpu *CPU, opcode uint16) int {
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	cpu.d[rx], cpu.d[ry] = cpu.d[ry], cpu.d[rx]
	return 6
}

func opExgAA(cpu *CPU, opcode uint16) int {
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	cpu.a[rx], cpu.a[ry] = cpu.a[ry], cpu.a[rx]
	return 6
}

func opExgDA(cpu *CPU, opcode uint16) int {
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	cpu.d[rx], cpu.a[ry] = cpu.a[ry], cpu.d[rx]
	return 6
}

func opTas(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	value := cpu.readEA(mode, reg, 8)
	cpu.setFlagsLogical(value, 8)
	cpu.writeEA(mode, reg, 8, value|0x80)
	return 14
}

func opNbcd(cpu *CPU, opcode uint16) int {
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	src := cpu.readEA(mode, reg, 8)
	result, borrow := bcdSubtract(0, src, cpu.x)
	cpu.writeEA(mode, reg, 8, result)
	cpu.c, cpu.x = borrow, borrow
	if result != 0 {
		cpu.z = false
	}
	return 6
}

// opMovemSave implements the register-to-memory form of MOVEM. The
// register list is a 16-bit mask following the opcode; bit order depends
// on the addressing mode (predecrement reverses it relative to every
// other mode, per the standard 68000 convention).
func opMovemSave(cpu *CPU, opcode uint16) int {
	size := 32
	if opcode&0x40 == 0 {
		size = 16
	}
	mask := cpu.nextWord()
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	count := 0

	if mode == ModeAddrPreDec {
		for i := 0; i < 16; i++ {
			if mask&(1<<uint(i)) == 0 {
				continue
			}
			regIdx := 15 - i
			var value uint32
			if regIdx < 8 {
				value = cpu.d[regIdx]
			} else {
				value = cpu.a[regIdx-8]
			}
			cpu.a[reg] -= uint32(size / 8)
			cpu.writeMem(cpu.a[reg], value, size)
			count++
		}
		return 8 + count*(size/8/2+1)
	}

	addr := cpu.effectiveAddress(mode, reg)
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		var value uint32
		if i < 8 {
			value = cpu.d[i]
		} else {
			value = cpu.a[i-8]
		}
		cpu.writeMem(addr, value, size)
		addr += uint32(size / 8)
		count++
	}
	return 8 + count*(size/8/2+1)
}

func opMovemRestore(cpu *CPU, opcode uint16) int {
	size := 32
	if opcode&0x40 == 0 {
		size = 16
	}
	mask := cpu.nextWord()
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	count := 0

	addr := cpu.effectiveAddress(mode, reg)
	for i := 0; i < 16; i++ {
		if mask&(1<<uint(i)) == 0 {
			continue
		}
		value := cpu.readMem(addr, size)
		if size == 16 {
			value = signExtend16(value)
		}
		if i < 8 {
			cpu.d[i] = value
		} else {
			cpu.a[i-8] = value
		}
		addr += uint32(size / 8)
		count++
	}
	if mode == ModeAddrPostInc {
		cpu.a[reg] = addr
	}
	return 12 + count*(size/8/2+1)
}

// bcdSubtract performs one BCD digit-pair subtraction (dest - src - x),
// returning the packed BCD result and whether a borrow occurred. Shared by
// NBCD (dest=0) and SBCD; ABCD does its own digit addition.
func bcdSubtract(dest, src uint32, extend bool) (result uint32, borrow bool) {
	var x uint32
	if extend {
		x = 1
	}
	lo := int32(dest&0x0F) - int32(src&0x0F) - int32(x)
	var loBorrow int32
	if lo < 0 {
		lo += 10
		loBorrow = 1
	}
	hi := int32((dest>>4)&0x0F) - int32((src>>4)&0x0F) - loBorrow
	var hiBorrow bool
	if hi < 0 {
		hi += 10
		hiBorrow = true
	}
	return uint32(hi<<4) | uint32(lo), hiBorrow
}
