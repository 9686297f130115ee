package m68k

// MemoryBus is the host-supplied memory bridge. Accesses are big-endian;
// the core does not require 16/32-bit accesses to be aligned (alignment
// faults beyond the address-error vector are not modeled).
type MemoryBus interface {
	Read8(address uint32) uint8
	Read16(address uint32) uint16
	Read32(address uint32) uint32
	Write8(address uint32, value uint8)
	Write16(address uint32, value uint16)
	Write32(address uint32, value uint32)
}

// Addressing modes, extracted from the standard 68000 <ea> field.
const (
	ModeDataDirect   = 0
	ModeAddrDirect   = 1
	ModeAddrIndirect = 2
	ModeAddrPostInc  = 3
	ModeAddrPreDec   = 4
	ModeAddrDisplace = 5
	ModeAddrIndex    = 6
	ModeAbsShort     = 7
	ModeAbsLong      = 8
	ModePCDisplace   = 9
	ModePCIndex      = 10
	ModeImmediate    = 11
)

// getEAMode and getEAReg split an opcode's low 6 bits into the addressing
// mode class and register fields. Mode 7 is disambiguated into the
// synthetic ModeAbsShort..ModeImmediate constants by the register field.
func getEAMode(opcode uint16) int {
	m := int((opcode >> 3) & 0x07)
	r := int(opcode & 0x07)
	if m == 7 {
		return ModeAbsShort + r
	}
	return m
}

func getEAReg(opcode uint16) int {
	return int(opcode & 0x07)
}

// readMem dispatches a sized read to the memory bus.
func (cpu *CPU) readMem(address uint32, size int) uint32 {
	if cpu.mem == nil {
		return 0
	}
	switch size {
	case 8:
		return uint32(cpu.mem.Read8(address))
	case 16:
		return uint32(cpu.mem.Read16(address))
	default:
		return cpu.mem.Read32(address)
	}
}

// writeMem dispatches a sized write to the memory bus.
func (cpu *CPU) writeMem(address, value uint32, size int) {
	if cpu.mem == nil {
		return
	}
	switch size {
	case 8:
		cpu.mem.Write8(address, uint8(value))
	case 16:
		cpu.mem.Write16(address, uint16(value))
	default:
		cpu.mem.Write32(address, value)
	}
}

// refillPrefetch rehydrates the two-word prefetch queue from pc+offset,
// used after any control-flow change (branch, jump, exception entry).
func (cpu *CPU) refillPrefetch(pc uint32, offset uint32) {
	base := pc + offset
	cpu.prefetch[0] = uint16(cpu.readMem(base, 16))
	cpu.prefetch[1] = uint16(cpu.readMem(base+2, 16))
}

// fetchOpcode returns the opcode word at the head of the prefetch queue,
// advancing pc and the queue by one word.
func (cpu *CPU) fetchOpcode() uint16 {
	word := cpu.prefetch[0]
	cpu.pc += 2
	cpu.prefetch[0] = cpu.prefetch[1]
	cpu.prefetch[1] = uint16(cpu.readMem(cpu.pc+2, 16))
	return word
}

// nextWord consumes the next instruction-stream word (an extension word or
// a 16-bit immediate) from the prefetch queue, same discipline as
// fetchOpcode.
func (cpu *CPU) nextWord() uint16 {
	return cpu.fetchOpcode()
}

// nextLong consumes the next instruction-stream long word as two prefetch
// words, high word first (big-endian instruction stream).
func (cpu *CPU) nextLong() uint32 {
	hi := uint32(cpu.nextWord())
	lo := uint32(cpu.nextWord())
	return hi<<16 | lo
}

// readEA resolves and reads an effective address operand. mode/reg come
// from getEAMode/getEAReg; size is 8, 16, or 32.
func (cpu *CPU) readEA(mode, reg, size int) uint32 {
	switch mode {
	case ModeDataDirect:
		return maskValue(cpu.d[reg], size)
	case ModeAddrDirect:
		return cpu.a[reg]
	case ModeAddrIndirect:
		return cpu.readMem(cpu.a[reg], size)
	case ModeAddrPostInc:
		addr := cpu.a[reg]
		val := cpu.readMem(addr, size)
		cpu.a[reg] += incDecAmount(reg, size)
		return val
	case ModeAddrPreDec:
		cpu.a[reg] -= incDecAmount(reg, size)
		return cpu.readMem(cpu.a[reg], size)
	case ModeAddrDisplace:
		disp := signExtend16(uint32(cpu.nextWord()))
		return cpu.readMem(cpu.a[reg]+disp, size)
	case ModeAddrIndex:
		addr := cpu.a[reg] + cpu.indexedDisplacement()
		return cpu.readMem(addr, size)
	case ModeAbsShort:
		addr := signExtend16(uint32(cpu.nextWord()))
		return cpu.readMem(addr, size)
	case ModeAbsLong:
		return cpu.readMem(cpu.nextLong(), size)
	case ModePCDisplace:
		base := cpu.pc
		disp := signExtend16(uint32(cpu.nextWord()))
		return cpu.readMem(base+disp, size)
	case ModePCIndex:
		base := cpu.pc
		return cpu.readMem(base+cpu.indexedDisplacement(), size)
	case ModeImmediate:
		switch size {
		case 8:
			return uint32(cpu.nextWord() & 0xFF)
		case 16:
			return uint32(cpu.nextWord())
		default:
			return cpu.nextLong()
		}
	default:
		return 0
	}
}

// writeEA resolves and writes an effective address operand. Writes to An
// and Immediate are not legal 68000 encodings for most instructions; the
// handlers are responsible for not generating them.
func (cpu *CPU) writeEA(mode, reg, size int, value uint32) {
	value = maskValue(value, size)
	switch mode {
	case ModeDataDirect:
		switch size {
		case 8:
			cpu.d[reg] = (cpu.d[reg] &^ 0xFF) | value
		case 16:
			cpu.d[reg] = (cpu.d[reg] &^ 0xFFFF) | value
		default:
			cpu.d[reg] = value
		}
	case ModeAddrDirect:
		cpu.a[reg] = value
	case ModeAddrIndirect:
		cpu.writeMem(cpu.a[reg], value, size)
	case ModeAddrPostInc:
		cpu.writeMem(cpu.a[reg], value, size)
		cpu.a[reg] += incDecAmount(reg, size)
	case ModeAddrPreDec:
		cpu.a[reg] -= incDecAmount(reg, size)
		cpu.writeMem(cpu.a[reg], value, size)
	case ModeAddrDisplace:
		disp := signExtend16(uint32(cpu.nextWord()))
		cpu.writeMem(cpu.a[reg]+disp, value, size)
	case ModeAddrIndex:
		addr := cpu.a[reg] + cpu.indexedDisplacement()
		cpu.writeMem(addr, value, size)
	case ModeAbsShort:
		addr := signExtend16(uint32(cpu.nextWord()))
		cpu.writeMem(addr, value, size)
	case ModeAbsLong:
		cpu.writeMem(cpu.nextLong(), value, size)
	}
}

// incDecAmount is the byte count An advances by for post-increment/
// pre-decrement addressing: size/8, except A7 which always moves by 2 for
// byte-size accesses so the stack pointer stays word-aligned.
func incDecAmount(reg, size int) uint32 {
	if size == 8 && reg == 7 {
		return 2
	}
	return uint32(size / 8)
}

// indexedDisplacement decodes the brief extension word shared by
// (d8,An,Xn) and (d8,PC,Xn): an 8-bit displacement plus an indexed
// register (data or address, word- or long-sized).
func (cpu *CPU) indexedDisplacement() uint32 {
	ext := uint32(cpu.nextWord())
	disp := signExtend8(ext & 0xFF)
	xn := int((ext >> 12) & 0x0F)
	var index uint32
	if ext&0x8000 != 0 {
		index = cpu.a[xn&7]
	} else {
		index = cpu.d[xn&7]
	}
	if ext&0x800 == 0 {
		index = signExtend16(index)
	}
	return disp + index
}

// getSize decodes the standard two-bit size field (00=byte,01=word,10=long)
// at the given shift, returning the size in bits.
func getSize(opcode uint16, shift int) int {
	switch (opcode >> shift) & 0x03 {
	case 0:
		return 8
	case 1:
		return 16
	default:
		return 32
	}
}
