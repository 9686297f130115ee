package m68k

// Arithmetic and comparison handlers.

func opAdd(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	toEA := opcode&0x0100 != 0

	if toEA {
		dest := cpu.readEA(mode, eaReg, size)
		src := maskValue(cpu.d[reg], size)
		result := maskValue(dest+src, size)
		cpu.writeEA(mode, eaReg, size, result)
		cpu.setFlagsAdd(dest, src, result, size)
	} else {
		dest := maskValue(cpu.d[reg], size)
		src := cpu.readEA(mode, eaReg, size)
		result := maskValue(dest+src, size)
		writeSized(&cpu.d[reg], result, size)
		cpu.setFlagsAdd(dest, src, result, size)
	}
	return 4
}

func opAdda(cpu *CPU, opcode uint16) int {
	size := 32
	if opcode&0x0100 == 0 {
		size = 16
	}
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	src := cpu.readEA(mode, eaReg, size)
	if size == 16 {
		src = signExtend16(src)
	}
	cpu.a[reg] += src
	return 8
}

func opAddi(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	imm := cpu.immediateFor(size)
	dest := cpu.readEA(mode, reg, size)
	result := maskValue(dest+imm, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsAdd(dest, imm, result, size)
	return 8
}

func opAddq(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	data := quickData(opcode)
	if mode == ModeAddrDirect {
		cpu.a[reg] += data
		return 8
	}
	dest := cpu.readEA(mode, reg, size)
	result := maskValue(dest+data, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsAdd(dest, data, result, size)
	return 8
}

func opAddx(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	memoryForm := opcode&0x08 != 0

	var dest, src uint32
	if memoryForm {
		cpu.a[rx] -= uint32(size / 8)
		cpu.a[ry] -= uint32(size / 8)
		dest = cpu.readMem(cpu.a[rx], size)
		src = cpu.readMem(cpu.a[ry], size)
	} else {
		dest = maskValue(cpu.d[rx], size)
		src = maskValue(cpu.d[ry], size)
	}
	var extend uint32
	if cpu.x {
		extend = 1
	}
	result := maskValue(dest+src+extend, size)
	if memoryForm {
		cpu.writeMem(cpu.a[rx], result, size)
	} else {
		writeSized(&cpu.d[rx], result, size)
	}
	cpu.setFlagsAdd(dest, src+extend, result, size)
	if result != 0 {
		cpu.z = false
	}
	return 4
}

func opSub(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	toEA := opcode&0x0100 != 0

	if toEA {
		dest := cpu.readEA(mode, eaReg, size)
		src := maskValue(cpu.d[reg], size)
		result := maskValue(dest-src, size)
		cpu.writeEA(mode, eaReg, size, result)
		cpu.setFlagsSub(dest, src, result, size)
	} else {
		dest := maskValue(cpu.d[reg], size)
		src := cpu.readEA(mode, eaReg, size)
		result := maskValue(dest-src, size)
		writeSized(&cpu.d[reg], result, size)
		cpu.setFlagsSub(dest, src, result, size)
	}
	return 4
}

func opSuba(cpu *CPU, opcode uint16) int {
	size := 32
	if opcode&0x0100 == 0 {
		size = 16
	}
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	src := cpu.readEA(mode, eaReg, size)
	if size == 16 {
		src = signExtend16(src)
	}
	cpu.a[reg] -= src
	return 8
}

func opSubi(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	imm := cpu.immediateFor(size)
	dest := cpu.readEA(mode, reg, size)
	result := maskValue(dest-imm, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsSub(dest, imm, result, size)
	return 8
}

func opSubq(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	data := quickData(opcode)
	if mode == ModeAddrDirect {
		cpu.a[reg] -= data
		return 8
	}
	dest := cpu.readEA(mode, reg, size)
	result := maskValue(dest-data, size)
	cpu.writeEA(mode, reg, size, result)
	cpu.setFlagsSub(dest, data, result, size)
	return 8
}

func opSubx(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	memoryForm := opcode&0x08 != 0

	var dest, src uint32
	if memoryForm {
		cpu.a[rx] -= uint32(size / 8)
		cpu.a[ry] -= uint32(size / 8)
		dest = cpu.readMem(cpu.a[rx], size)
		src = cpu.readMem(cpu.a[ry], size)
	} else {
		dest = maskValue(cpu.d[rx], size)
		src = maskValue(cpu.d[ry], size)
	}
	var extend uint32
	if cpu.x {
		extend = 1
	}
	result := maskValue(dest-src-extend, size)
	if memoryForm {
		cpu.writeMem(cpu.a[rx], result, size)
	} else {
		writeSized(&cpu.d[rx], result, size)
	}
	cpu.setFlagsSub(dest, src+extend, result, size)
	if result != 0 {
		cpu.z = false
	}
	return 4
}

func opCmp(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	dest := maskValue(cpu.d[reg], size)
	src := cpu.readEA(mode, eaReg, size)
	result := maskValue(dest-src, size)
	cpu.setFlagsSub(dest, src, result, size)
	return 4
}

func opCmpa(cpu *CPU, opcode uint16) int {
	size := 32
	if opcode&0x0100 == 0 {
		size = 16
	}
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	src := cpu.readEA(mode, eaReg, size)
	if size == 16 {
		src = signExtend16(src)
	}
	dest := cpu.a[reg]
	result := dest - src
	cpu.setFlagsSub(dest, src, result, 32)
	return 6
}

func opCmpi(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	mode := getEAMode(opcode)
	reg := getEAReg(opcode)
	imm := cpu.immediateFor(size)
	dest := cpu.readEA(mode, reg, size)
	result := maskValue(dest-imm, size)
	cpu.setFlagsSub(dest, imm, result, size)
	return 8
}

func opCmpm(cpu *CPU, opcode uint16) int {
	size := getSize(opcode, 6)
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	src := cpu.readMem(cpu.a[ry], size)
	cpu.a[ry] += uint32(size / 8)
	dest := cpu.readMem(cpu.a[rx], size)
	cpu.a[rx] += uint32(size / 8)
	result := maskValue(dest-src, size)
	cpu.setFlagsSub(dest, src, result, size)
	return 4
}

func opMulu(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	src := cpu.readEA(mode, eaReg, 16) & 0xFFFF
	dest := cpu.d[reg] & 0xFFFF
	result := dest * src
	cpu.d[reg] = result
	cpu.setFlagsLogical(result, 32)
	return 70
}

func opMuls(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	src := int32(int16(uint16(cpu.readEA(mode, eaReg, 16))))
	dest := int32(int16(uint16(cpu.d[reg])))
	result := uint32(dest * src)
	cpu.d[reg] = result
	cpu.setFlagsLogical(result, 32)
	return 70
}

func opDivu(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	divisor := cpu.readEA(mode, eaReg, 16) & 0xFFFF
	if divisor == 0 {
		cpu.Exception(vectorZeroDivide)
		return 4
	}
	dividend := cpu.d[reg]
	quotient := dividend / divisor
	remainder := dividend % divisor
	if quotient > 0xFFFF {
		cpu.v = true
		return 140
	}
	cpu.d[reg] = (remainder << 16) | (quotient & 0xFFFF)
	cpu.setFlagsLogical(quotient&0xFFFF, 16)
	return 140
}

func opDivs(cpu *CPU, opcode uint16) int {
	reg := int((opcode >> 9) & 0x07)
	mode := getEAMode(opcode)
	eaReg := getEAReg(opcode)
	divisor := int32(int16(uint16(cpu.readEA(mode, eaReg, 16))))
	if divisor == 0 {
		cpu.Exception(vectorZeroDivide)
		return 4
	}
	dividend := int32(cpu.d[reg])
	quotient := dividend / divisor
	remainder := dividend % divisor
	if quotient > 32767 || quotient < -32768 {
		cpu.v = true
		return 158
	}
	cpu.d[reg] = (uint32(remainder) << 16) | (uint32(quotient) & 0xFFFF)
	cpu.setFlagsLogical(uint32(quotient)&0xFFFF, 16)
	return 158
}

func opAbcd(cpu *CPU, opcode uint16) int {
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	memoryForm := opcode&0x08 != 0

	var dest, src uint32
	if memoryForm {
		cpu.a[rx] -= 1
		cpu.a[ry] -= 1
		dest = cpu.readMem(cpu.a[rx], 8)
		src = cpu.readMem(cpu.a[ry], 8)
	} else {
		dest = cpu.d[rx] & 0xFF
		src = cpu.d[ry] & 0xFF
	}
	var extend uint32
	if cpu.x {
		extend = 1
	}
	lo := (dest & 0x0F) + (src & 0x0F) + extend
	var carryLo uint32
	if lo > 9 {
		lo += 6
		carryLo = 1
	}
	hi := (dest >> 4 & 0x0F) + (src >> 4 & 0x0F) + carryLo
	var carryHi bool
	if hi > 9 {
		hi += 6
		carryHi = true
	}
	result := ((hi << 4) | (lo & 0x0F)) & 0xFF
	if memoryForm {
		cpu.writeMem(cpu.a[rx], result, 8)
	} else {
		cpu.d[rx] = (cpu.d[rx] &^ 0xFF) | result
	}
	cpu.c, cpu.x = carryHi, carryHi
	if result != 0 {
		cpu.z = false
	}
	return 6
}

func opSbcd(cpu *CPU, opcode uint16) int {
	rx := int((opcode >> 9) & 0x07)
	ry := int(opcode & 0x07)
	memoryForm := opcode&0x08 != 0

	var dest, src uint32
	if memoryForm {
		cpu.a[rx] -= 1
		cpu.a[ry] -= 1
		dest = cpu.readMem(cpu.a[rx], 8)
		src = cpu.readMem(cpu.a[ry], 8)
	} else {
		dest = cpu.d[rx] & 0xFF
		src = cpu.d[ry] & 0xFF
	}
	result, borrow := bcdSubtract(dest, src, cpu.x)
	if memoryForm {
		cpu.writeMem(cpu.a[rx], result, 8)
	} else {
		cpu.d[rx] = (cpu.d[rx] &^ 0xFF) | result
	}
	cpu.c, cpu.x = borrow, borrow
	if result != 0 {
		cpu.z = false
	}
	return 6
}

// quickData decodes the 3-bit immediate field ADDQ/SUBQ share, where a
// field value of 0 means 8, per the standard 68000 encoding.
func quickData(opcode uint16) uint32 {
	d := (opcode >> 9) & 0x07
	if d == 0 {
		return 8
	}
	return uint32(d)
}

// immediateFor reads the size-appropriate immediate operand for an
// immediate-group instruction (ORI/ANDI/SUBI/ADDI/EORI/CMPI): byte and
// word immediates occupy one instruction-stream word, long immediates two.
func (cpu *CPU) immediateFor(size int) uint32 {
	switch size {
	case 8:
		return uint32(cpu.nextWord() & 0xFF)
	case 16:
		return uint32(cpu.nextWord())
	default:
		return cpu.nextLong()
	}
}

// writeSized stores value into a data register's low byte/word/long,
// leaving the upper bits of the register untouched for sub-long sizes.
func writeSized(reg *uint32, value uint32, size int) {
	switch size {
	case 8:
		*reg = (*reg &^ 0xFF) | (value & 0xFF)
	case 16:
		*reg = (*reg &^ 0xFFFF) | (value & 0xFFFF)
	default:
		*reg = value
	}
}
